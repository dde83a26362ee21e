package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/Breathless11/Tamamla/internal/client/models"
	"github.com/Breathless11/Tamamla/internal/common"
	"github.com/Breathless11/Tamamla/internal/logging"
	"golang.org/x/time/rate"
)

// stubInputs feeds answers to getSimpleText and getPassword in order.
func stubInputs(t *testing.T, texts []string, passwords ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		v := texts[0]
		texts = texts[1:]
		return v, nil
	}
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		v := passwords[0]
		passwords = passwords[1:]
		return []byte(v), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

type fakeAccounts struct {
	regUser string
	regPass []byte
	regErr  error

	authUser string
	authPass []byte
	authErr  error

	deleted   []string
	deleteErr error

	confirmErr error
}

func (f *fakeAccounts) Register(_ context.Context, user string, pass []byte) error {
	f.regUser, f.regPass = user, append([]byte(nil), pass...)
	return f.regErr
}

func (f *fakeAccounts) Authenticate(_ context.Context, user string, pass []byte) (*models.Account, error) {
	f.authUser, f.authPass = user, append([]byte(nil), pass...)
	if f.authErr != nil {
		return nil, f.authErr
	}
	return &models.Account{Username: user}, nil
}

func (f *fakeAccounts) DeleteAccount(_ context.Context, user string) error {
	f.deleted = append(f.deleted, user)
	return f.deleteErr
}

func (f *fakeAccounts) ConfirmPassword(p, c []byte) error {
	if f.confirmErr != nil {
		return f.confirmErr
	}
	if !bytes.Equal(p, c) {
		return common.ErrPasswordMismatch
	}
	return nil
}

type fakeSession struct {
	current string
	setErr  error
	getErr  error
	sets    []string
}

func (f *fakeSession) SetCurrent(_ context.Context, user string) error {
	f.sets = append(f.sets, user)
	if f.setErr != nil {
		return f.setErr
	}
	f.current = user
	return nil
}

func (f *fakeSession) GetCurrent(context.Context) (string, bool, error) {
	return f.current, f.current != "", f.getErr
}

type updateCall struct {
	ID       string
	Text     string
	Deadline time.Time
}

type fakeTasks struct {
	list []models.Task
	err  error
	// warn is returned next to a successful Create/Update result
	warn error

	created  []models.Task
	updated  []updateCall
	toggled  []string
	deleted  []string
	filtered []models.Filter
}

func (f *fakeTasks) List(context.Context, string) ([]models.Task, error) {
	return append([]models.Task(nil), f.list...), f.err
}

func (f *fakeTasks) Filter(_ context.Context, _ string, flt models.Filter) ([]models.Task, error) {
	f.filtered = append(f.filtered, flt)
	if f.err != nil {
		return nil, f.err
	}
	parsed, err := models.ParseFilter(string(flt))
	if err != nil {
		return nil, err
	}
	var out []models.Task
	for _, t := range f.list {
		if parsed.Match(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTasks) Create(_ context.Context, _ string, text string, deadline time.Time) (*models.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	t := models.Task{ID: "new", Text: text, Deadline: deadline}
	f.created = append(f.created, t)
	return &t, f.warn
}

func (f *fakeTasks) Update(_ context.Context, _ string, id, text string, deadline time.Time) (*models.Task, error) {
	f.updated = append(f.updated, updateCall{ID: id, Text: text, Deadline: deadline})
	if f.err != nil {
		return nil, f.err
	}
	return &models.Task{ID: id, Text: text, Deadline: deadline}, f.warn
}

func (f *fakeTasks) ToggleCompleted(_ context.Context, _ string, id string) (*models.Task, error) {
	f.toggled = append(f.toggled, id)
	if f.err != nil {
		return nil, f.err
	}
	for _, t := range f.list {
		if t.ID == id {
			t.Completed = !t.Completed
			return &t, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeTasks) Delete(_ context.Context, _ string, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

type fakeReminder struct {
	permErr  error
	startErr error
	started  bool
	stopped  bool
}

func (f *fakeReminder) RequestPermission(context.Context) error { return f.permErr }
func (f *fakeReminder) Start(context.Context) error {
	f.started = true
	return f.startErr
}
func (f *fakeReminder) Stop() { f.stopped = true }

func newTestApp(acc *fakeAccounts, tasks *fakeTasks, sess *fakeSession) *App {
	return &App{
		logger:   logging.Discard(),
		accounts: acc,
		tasks:    tasks,
		session:  sess,
		limiter:  rate.NewLimiter(rate.Inf, 1),
		out:      io.Discard,
	}
}
