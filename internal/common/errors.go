// Package common defines sentinel errors and small helpers shared by the
// client layers of Tamamla. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Account errors.
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmptyUsername      = errors.New("username must not be empty")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrPasswordMismatch   = errors.New("passwords do not match")

	// Task errors.
	ErrEmptyText         = errors.New("task text must not be empty")
	ErrDeadlineNotFuture = errors.New("deadline must be in the future")
	ErrUnknownFilter     = errors.New("unknown task filter")

	// Shared lookups.
	ErrNotFound        = errors.New("not found")
	ErrNoActiveSession = errors.New("no active session")

	// Infrastructure.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNotificationSchedulingFailed is recoverable: the task write that
	// produced it has already been persisted, just without a reminder.
	ErrNotificationSchedulingFailed = errors.New("notification scheduling failed")
)

// IsWarning reports whether err only carries non-fatal conditions, meaning the
// operation that returned it still completed.
func IsWarning(err error) bool {
	return err != nil && errors.Is(err, ErrNotificationSchedulingFailed)
}
