package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Breathless11/Tamamla/internal/client/models"
)

// List prints the user's tasks numbered by their position in the full list,
// so the numbers stay valid for edit, toggle and delete under any filter.
func (a *App) List(ctx context.Context, filter string) error {
	shown, err := a.tasks.Filter(ctx, a.userName, models.Filter(filter))
	if err != nil {
		return err
	}
	if len(shown) == 0 {
		printlnFn("No tasks.")
		return nil
	}

	all, err := a.tasks.List(ctx, a.userName)
	if err != nil {
		return err
	}
	pos := make(map[string]int, len(all))
	for i, t := range all {
		pos[t.ID] = i + 1
	}

	for _, t := range shown {
		printlnFn(formatTask(pos[t.ID], t))
	}
	return nil
}

// Add prompts for text and deadline and creates a task.
func (a *App) Add(ctx context.Context) error {
	text, err := getSimpleText(a.reader, "Task", a.out)
	if err != nil {
		return err
	}
	raw, err := getSimpleText(a.reader, "Deadline (YYYY-MM-DD [HH:MM])", a.out)
	if err != nil {
		return err
	}
	deadline, err := parseDeadline(raw, time.Local)
	if err != nil {
		return err
	}

	task, err := a.tasks.Create(ctx, a.userName, text, deadline)
	if err := warnIfReminderFailed(err); err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Added %q, due %s.", task.Text, formatDeadline(task.Deadline)))
	return nil
}

// Edit changes text and deadline of the referenced task. Empty answers keep
// the current values.
func (a *App) Edit(ctx context.Context, ref string) error {
	task, err := a.resolveTask(ctx, ref)
	if err != nil {
		return err
	}

	text, err := getSimpleText(a.reader, fmt.Sprintf("Text [%s]", task.Text), a.out)
	if err != nil {
		return err
	}
	if text == "" {
		text = task.Text
	}

	raw, err := getSimpleText(a.reader, fmt.Sprintf("Deadline [%s]", formatDeadline(task.Deadline)), a.out)
	if err != nil {
		return err
	}
	deadline := task.Deadline
	if raw != "" {
		if deadline, err = parseDeadline(raw, time.Local); err != nil {
			return err
		}
	}

	updated, err := a.tasks.Update(ctx, a.userName, task.ID, text, deadline)
	if err := warnIfReminderFailed(err); err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Updated %q, due %s.", updated.Text, formatDeadline(updated.Deadline)))
	return nil
}

// Toggle flips the completion state of the referenced task.
func (a *App) Toggle(ctx context.Context, ref string) error {
	task, err := a.resolveTask(ctx, ref)
	if err != nil {
		return err
	}

	toggled, err := a.tasks.ToggleCompleted(ctx, a.userName, task.ID)
	if err != nil {
		return err
	}

	if toggled.Completed {
		printlnFn(fmt.Sprintf("Done: %s", toggled.Text))
	} else {
		printlnFn(fmt.Sprintf("Not done: %s", toggled.Text))
	}
	return nil
}

// Delete removes the referenced task.
func (a *App) Delete(ctx context.Context, ref string) error {
	task, err := a.resolveTask(ctx, ref)
	if err != nil {
		return err
	}

	if err := a.tasks.Delete(ctx, a.userName, task.ID); err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Deleted %q.", task.Text))
	return nil
}

// resolveTask maps a list number or a task id to the task. It prompts when
// ref is empty.
func (a *App) resolveTask(ctx context.Context, ref string) (models.Task, error) {
	if ref == "" {
		var err error
		if ref, err = getSimpleText(a.reader, "Task number", a.out); err != nil {
			return models.Task{}, err
		}
	}

	all, err := a.tasks.List(ctx, a.userName)
	if err != nil {
		return models.Task{}, err
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(all) {
			return models.Task{}, errBadTaskRef
		}
		return all[n-1], nil
	}
	for _, t := range all {
		if t.ID == ref {
			return t, nil
		}
	}
	return models.Task{}, errBadTaskRef
}

func formatTask(n int, t models.Task) string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	line := fmt.Sprintf("%2d. [%s] %s  (due %s)", n, mark, t.Text, formatDeadline(t.Deadline))
	if t.HasReminder() {
		line += " *"
	}
	return line
}
