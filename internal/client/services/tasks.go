package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Breathless11/Tamamla/internal/client/models"
	"github.com/Breathless11/Tamamla/internal/client/repositories/tasks"
	"github.com/Breathless11/Tamamla/internal/common"
	"github.com/Breathless11/Tamamla/internal/logging"
	"github.com/Breathless11/Tamamla/internal/timex"
)

// TaskStore manages each user's ordered task list and keeps reminders in
// step with it.
type TaskStore struct {
	*base
	binder ReminderBinder
	clock  timex.Clock
	logger logging.Logger
	newID  func() string
}

func (s *TaskStore) repo() tasks.Repository {
	return s.rm.Tasks(s.db)
}

// List returns the user's tasks in insertion order.
func (s *TaskStore) List(ctx context.Context, username string) ([]models.Task, error) {
	if username == "" {
		return nil, common.ErrNoActiveSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.repo().ListByUser(ctx, username)
	if err != nil {
		return nil, storageFailure(ctx, s.logger, "list tasks", err)
	}
	return list, nil
}

// Filter is List narrowed to completed or pending tasks.
func (s *TaskStore) Filter(ctx context.Context, username string, f models.Filter) ([]models.Task, error) {
	f, err := models.ParseFilter(string(f))
	if err != nil {
		return nil, err
	}
	list, err := s.List(ctx, username)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(list, func(t models.Task) bool { return !f.Match(t) }), nil
}

// Create appends a task and schedules its reminder.
//
// When only the reminder could not be scheduled the task is still saved and
// returned together with an error wrapping
// common.ErrNotificationSchedulingFailed.
func (s *TaskStore) Create(ctx context.Context, username, text string, deadline time.Time) (*models.Task, error) {
	if username == "" {
		return nil, common.ErrNoActiveSession
	}
	text, err := s.validate(text, deadline)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.repo().ListByUser(ctx, username)
	if err != nil {
		return nil, storageFailure(ctx, s.logger, "create task", err)
	}

	handle, schedErr := s.binder.Schedule(ctx, text, deadline)
	task := models.Task{
		ID:             s.newID(),
		Text:           text,
		Deadline:       deadline,
		NotificationID: handle,
	}

	if err := s.repo().ReplaceUser(ctx, username, append(list, task)); err != nil {
		s.binder.Cancel(ctx, handle)
		return nil, storageFailure(ctx, s.logger, "create task", err)
	}

	s.logger.Info(ctx, "task created", "username", username, "task_id", task.ID, "reminder", task.HasReminder())
	return &task, schedErr
}

// Update replaces text and deadline of task id and moves its reminder. The
// completion flag is kept. The old reminder is cancelled only once the change
// is stored.
func (s *TaskStore) Update(ctx context.Context, username, id, text string, deadline time.Time) (*models.Task, error) {
	if username == "" {
		return nil, common.ErrNoActiveSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, i, err := s.find(ctx, "update task", username, id)
	if err != nil {
		return nil, err
	}
	text, err = s.validate(text, deadline)
	if err != nil {
		return nil, err
	}

	oldHandle := list[i].NotificationID
	handle, schedErr := s.binder.Schedule(ctx, text, deadline)

	list[i].Text = text
	list[i].Deadline = deadline
	list[i].NotificationID = handle

	if err := s.repo().ReplaceUser(ctx, username, list); err != nil {
		s.binder.Cancel(ctx, handle)
		return nil, storageFailure(ctx, s.logger, "update task", err)
	}
	s.binder.Cancel(ctx, oldHandle)

	updated := list[i]
	s.logger.Info(ctx, "task updated", "username", username, "task_id", id, "reminder", updated.HasReminder())
	return &updated, schedErr
}

// ToggleCompleted flips the completion flag. The reminder is left alone.
func (s *TaskStore) ToggleCompleted(ctx context.Context, username, id string) (*models.Task, error) {
	if username == "" {
		return nil, common.ErrNoActiveSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, i, err := s.find(ctx, "toggle task", username, id)
	if err != nil {
		return nil, err
	}

	list[i].Completed = !list[i].Completed
	if err := s.repo().ReplaceUser(ctx, username, list); err != nil {
		return nil, storageFailure(ctx, s.logger, "toggle task", err)
	}

	toggled := list[i]
	return &toggled, nil
}

// Delete removes task id and cancels its reminder.
func (s *TaskStore) Delete(ctx context.Context, username, id string) error {
	if username == "" {
		return common.ErrNoActiveSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, i, err := s.find(ctx, "delete task", username, id)
	if err != nil {
		return err
	}

	handle := list[i].NotificationID
	if err := s.repo().ReplaceUser(ctx, username, slices.Delete(list, i, i+1)); err != nil {
		return storageFailure(ctx, s.logger, "delete task", err)
	}
	s.binder.Cancel(ctx, handle)

	s.logger.Info(ctx, "task deleted", "username", username, "task_id", id)
	return nil
}

// DeleteAllForUser cancels every reminder of username and drops the whole
// collection. Calling it for a user without tasks does nothing.
func (s *TaskStore) DeleteAllForUser(ctx context.Context, username string) error {
	if username == "" {
		return common.ErrNoActiveSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.repo().ListByUser(ctx, username)
	if err != nil {
		return storageFailure(ctx, s.logger, "delete all tasks", err)
	}
	if len(list) == 0 {
		return nil
	}

	s.cancelReminders(ctx, list)
	if err := s.repo().DeleteUser(ctx, username); err != nil {
		return storageFailure(ctx, s.logger, "delete all tasks", err)
	}
	return nil
}

func (s *TaskStore) cancelReminders(ctx context.Context, list []models.Task) {
	for _, t := range list {
		s.binder.Cancel(ctx, t.NotificationID)
	}
}

func (s *TaskStore) find(ctx context.Context, op, username, id string) ([]models.Task, int, error) {
	list, err := s.repo().ListByUser(ctx, username)
	if err != nil {
		return nil, -1, storageFailure(ctx, s.logger, op, err)
	}
	i := slices.IndexFunc(list, func(t models.Task) bool { return t.ID == id })
	if i < 0 {
		return nil, -1, fmt.Errorf("task %q: %w", id, common.ErrNotFound)
	}
	return list, i, nil
}

// validate returns the trimmed text.
func (s *TaskStore) validate(text string, deadline time.Time) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", common.ErrEmptyText
	}
	if !deadline.After(s.clock.Now()) {
		return "", common.ErrDeadlineNotFuture
	}
	return text, nil
}
