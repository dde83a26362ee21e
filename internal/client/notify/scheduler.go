package notify

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnknownHandle is returned by Cancel for handles that already fired,
	// were cancelled before, or never existed.
	ErrUnknownHandle = errors.New("unknown notification handle")

	// ErrPermissionDenied means the user has not allowed notifications.
	ErrPermissionDenied = errors.New("notification permission denied")

	ErrInvalidDelay = errors.New("delay must be positive")
)

// Scheduler delivers a message once after a delay.
type Scheduler interface {
	// ScheduleOneShot arranges delivery of title/body after delay and returns
	// an opaque handle.
	ScheduleOneShot(ctx context.Context, title, body string, delay time.Duration) (string, error)

	// Cancel prevents delivery of a pending handle.
	Cancel(ctx context.Context, handle string) error

	// RequestPermission asks for the right to deliver notifications. It is
	// called once at startup; ErrPermissionDenied is not fatal.
	RequestPermission(ctx context.Context) error
}

// Notification is a reminder as the scheduler stores and delivers it.
type Notification struct {
	Handle string    `json:"handle"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	FireAt time.Time `json:"fireAt"`
}
