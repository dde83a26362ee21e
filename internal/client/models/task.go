package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/Breathless11/Tamamla/internal/common"
)

// Task is one to-do item owned by a username.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Deadline  time.Time `json:"deadline"`

	// NotificationID is the handle of the reminder scheduled for Deadline,
	// empty when none is live.
	NotificationID string `json:"notificationId,omitempty"`
}

// HasReminder reports whether a reminder handle is attached.
func (t Task) HasReminder() bool {
	return t.NotificationID != ""
}

// Filter selects tasks by completion state.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// Match reports whether t passes the filter. Unknown filters match nothing.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterAll:
		return true
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	}
	return false
}

// ParseFilter accepts the filter names case-insensitively; "" means all.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterPending, FilterCompleted:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnknownFilter, s)
}
