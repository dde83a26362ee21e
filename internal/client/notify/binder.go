package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Breathless11/Tamamla/internal/common"
	"github.com/Breathless11/Tamamla/internal/logging"
	"github.com/Breathless11/Tamamla/internal/timex"
)

// ReminderTitle is the title of every task reminder.
const ReminderTitle = "Task reminder"

// Binder ties task deadlines to a Scheduler.
type Binder struct {
	scheduler Scheduler
	clock     timex.Clock
	logger    logging.Logger
}

func NewBinder(scheduler Scheduler, clock timex.Clock, logger logging.Logger) *Binder {
	return &Binder{scheduler: scheduler, clock: clock, logger: logger}
}

// Schedule asks for a reminder carrying text at when. A deadline that is not
// in the future yields an empty handle and no error. If the scheduler fails
// the handle is empty and the error wraps common.ErrNotificationSchedulingFailed.
func (b *Binder) Schedule(ctx context.Context, text string, when time.Time) (string, error) {
	delay := when.Sub(b.clock.Now())
	if delay <= 0 {
		return "", nil
	}

	handle, err := b.scheduler.ScheduleOneShot(ctx, ReminderTitle, text, delay)
	if err != nil {
		b.logger.Warn(ctx, "failed to schedule reminder", "deadline", when, "error", err)
		return "", fmt.Errorf("%w: %w", common.ErrNotificationSchedulingFailed, err)
	}
	return handle, nil
}

// Cancel is best-effort. Handles that already fired or are unknown are
// ignored; other failures are only logged.
func (b *Binder) Cancel(ctx context.Context, handle string) {
	if handle == "" {
		return
	}
	err := b.scheduler.Cancel(ctx, handle)
	switch {
	case err == nil:
	case errors.Is(err, ErrUnknownHandle):
		b.logger.Debug(ctx, "reminder already gone", "handle", handle)
	default:
		b.logger.Warn(ctx, "failed to cancel reminder", "handle", handle, "error", err)
	}
}
