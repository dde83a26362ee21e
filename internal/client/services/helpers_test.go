package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/Breathless11/Tamamla/internal/client/models"
	"github.com/Breathless11/Tamamla/internal/client/repositories/repomanager"
	"github.com/Breathless11/Tamamla/internal/client/repositories/tasks"
	"github.com/Breathless11/Tamamla/internal/client/storage"
	"github.com/Breathless11/Tamamla/internal/common"
	"github.com/Breathless11/Tamamla/internal/cryptox"
	"github.com/Breathless11/Tamamla/internal/dbx"
	"github.com/Breathless11/Tamamla/internal/timex"
	"github.com/stretchr/testify/require"
)

var (
	t0         = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	testParams = cryptox.Params{Time: 1, Memory: 1024, Threads: 1, SaltLen: 8, KeyLen: 16}
)

// ---- fake binder ----

type scheduleCall struct {
	Text string
	When time.Time
}

type fakeBinder struct {
	clock timex.Clock
	err   error
	seq   int

	Scheduled []scheduleCall
	Cancelled []string
}

func (f *fakeBinder) Schedule(_ context.Context, text string, when time.Time) (string, error) {
	if !when.After(f.clock.Now()) {
		return "", nil
	}
	f.Scheduled = append(f.Scheduled, scheduleCall{Text: text, When: when})
	if f.err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrNotificationSchedulingFailed, f.err)
	}
	f.seq++
	return fmt.Sprintf("h-%d", f.seq), nil
}

func (f *fakeBinder) Cancel(_ context.Context, handle string) {
	if handle == "" {
		return
	}
	f.Cancelled = append(f.Cancelled, handle)
}

// ---- repository manager with failing task writes ----

// Nil errors pass the call through to the real repository, so tests can arm
// a failure after seeding data.
type failingTasksRM struct {
	repomanager.RepositoryManager
	replaceErr error
	deleteErr  error
}

func (m *failingTasksRM) Tasks(db dbx.DBTX) tasks.Repository {
	return &failingTasks{Repository: m.RepositoryManager.Tasks(db), replaceErr: m.replaceErr, deleteErr: m.deleteErr}
}

type failingTasks struct {
	tasks.Repository
	replaceErr error
	deleteErr  error
}

func (r *failingTasks) ReplaceUser(ctx context.Context, username string, list []models.Task) error {
	if r.replaceErr != nil {
		return r.replaceErr
	}
	return r.Repository.ReplaceUser(ctx, username, list)
}

func (r *failingTasks) DeleteUser(ctx context.Context, username string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	return r.Repository.DeleteUser(ctx, username)
}

// ---- setup ----

type fixture struct {
	core   *Core
	binder *fakeBinder
	db     *sql.DB
	rm     repomanager.RepositoryManager
	now    *time.Time
}

func (f *fixture) clock() timex.Clock {
	return timex.ClockFunc(func() time.Time { return *f.now })
}

func openDB(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	db, rm, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "tamamla.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, rm
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, rm := openDB(t)
	return newFixtureWith(t, db, rm)
}

func newFixtureWith(t *testing.T, db *sql.DB, rm repomanager.RepositoryManager) *fixture {
	t.Helper()
	now := t0
	f := &fixture{db: db, rm: rm, now: &now}
	f.binder = &fakeBinder{clock: f.clock()}

	ids := 0
	f.core = New(db, rm, f.binder, Options{
		Clock:        f.clock(),
		DigestParams: testParams,
		NewID: func() string {
			ids++
			return fmt.Sprintf("task-%d", ids)
		},
	})
	return f
}

func mustRegister(t *testing.T, f *fixture, username, password string) {
	t.Helper()
	require.NoError(t, f.core.Accounts.Register(context.Background(), username, []byte(password)))
}

var errDiskFull = errors.New("disk full")
