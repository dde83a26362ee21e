package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/Breathless11/Tamamla/internal/client/repositories/repomanager"
	"github.com/Breathless11/Tamamla/internal/common"
	"github.com/Breathless11/Tamamla/internal/cryptox"
	"github.com/Breathless11/Tamamla/internal/logging"
	"github.com/Breathless11/Tamamla/internal/timex"
	"github.com/google/uuid"
)

// DefaultSessionTTL is how long a login is remembered across restarts.
const DefaultSessionTTL = 30 * 24 * time.Hour

// ReminderBinder schedules and cancels task reminders. notify.Binder is the
// production implementation.
type ReminderBinder interface {
	// Schedule returns an empty handle without error for deadlines that are
	// not in the future.
	Schedule(ctx context.Context, text string, when time.Time) (string, error)
	// Cancel is best-effort and never fails.
	Cancel(ctx context.Context, handle string)
}

type Options struct {
	Clock        timex.Clock
	Logger       logging.Logger
	SessionTTL   time.Duration
	DigestParams cryptox.Params
	// NewID generates task ids. Defaults to random UUIDs.
	NewID func() string
}

// Core bundles the services that operate on one database.
type Core struct {
	Accounts *AccountDirectory
	Tasks    *TaskStore
	Session  *SessionState
}

func New(db *sql.DB, rm repomanager.RepositoryManager, binder ReminderBinder, opts Options) *Core {
	if opts.Clock == nil {
		opts.Clock = timex.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = DefaultSessionTTL
	}
	if opts.DigestParams == (cryptox.Params{}) {
		opts.DigestParams = cryptox.DefaultParams
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	b := &base{db: db, rm: rm, mu: &sync.Mutex{}}

	tasks := &TaskStore{
		base:   b,
		binder: binder,
		clock:  opts.Clock,
		logger: opts.Logger.With("service", "tasks"),
		newID:  opts.NewID,
	}
	return &Core{
		Accounts: &AccountDirectory{
			base:   b,
			tasks:  tasks,
			params: opts.DigestParams,
			logger: opts.Logger.With("service", "accounts"),
		},
		Tasks: tasks,
		Session: &SessionState{
			base:   b,
			clock:  opts.Clock,
			ttl:    opts.SessionTTL,
			logger: opts.Logger.With("service", "session"),
		},
	}
}

// base is the state shared by all services.
type base struct {
	db *sql.DB
	rm repomanager.RepositoryManager
	mu *sync.Mutex
}

func storageFailure(ctx context.Context, logger logging.Logger, op string, err error) error {
	logger.Error(ctx, "storage failure", "op", op, "error", err)
	return fmt.Errorf("%w: %s: %w", common.ErrStorageUnavailable, op, err)
}
