package cli

import (
	"errors"
	"fmt"

	"github.com/Breathless11/Tamamla/internal/client/services"
	"github.com/Breathless11/Tamamla/internal/common"
)

var (
	errNotLoggedIn     = errors.New("not logged in")
	errTooManyAttempts = errors.New("too many login attempts")
	errBadDeadline     = errors.New("unrecognised deadline")
	errBadTaskRef      = errors.New("no task with that number")
	errNotConfirmed    = errors.New("confirmation did not match")
)

// userMessage turns an error into the line shown to the user. Unknown user
// and wrong password share one message.
func userMessage(err error) string {
	switch {
	case errors.Is(err, errNotLoggedIn), errors.Is(err, common.ErrNoActiveSession):
		return "Please log in first."
	case errors.Is(err, errTooManyAttempts):
		return "Too many login attempts, wait a moment and try again."
	case errors.Is(err, errBadDeadline):
		return "Deadline must look like 2025-03-01 or 2025-03-01 18:30."
	case errors.Is(err, errBadTaskRef), errors.Is(err, common.ErrNotFound):
		return "No such task. Use 'list' to see task numbers."
	case errors.Is(err, errNotConfirmed):
		return "Confirmation did not match, nothing was deleted."
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid username or password."
	case errors.Is(err, common.ErrDuplicateUsername):
		return "That username is already taken."
	case errors.Is(err, common.ErrEmptyUsername):
		return "Username must not be empty."
	case errors.Is(err, common.ErrPasswordTooShort):
		return fmt.Sprintf("Password must be at least %d characters long.", services.MinPasswordLength)
	case errors.Is(err, common.ErrPasswordMismatch):
		return "Passwords do not match."
	case errors.Is(err, common.ErrEmptyText):
		return "Task text must not be empty."
	case errors.Is(err, common.ErrDeadlineNotFuture):
		return "Deadline must be in the future."
	case errors.Is(err, common.ErrUnknownFilter):
		return "Unknown filter; use all, pending or completed."
	case errors.Is(err, common.ErrStorageUnavailable):
		return "Storage is unavailable right now, please try again."
	}
	return "Error: " + err.Error()
}

func report(err error) {
	if err != nil {
		printlnFn(userMessage(err))
	}
}

// warnIfReminderFailed prints a notice for recoverable scheduling failures and
// swallows them. Any other error is returned unchanged.
func warnIfReminderFailed(err error) error {
	if common.IsWarning(err) {
		printlnFn("Task saved, but its reminder could not be scheduled.")
		return nil
	}
	return err
}
