package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Breathless11/Tamamla/internal/client/config"
	"github.com/Breathless11/Tamamla/internal/client/models"
	"github.com/Breathless11/Tamamla/internal/client/notify"
	"github.com/Breathless11/Tamamla/internal/client/services"
	"github.com/Breathless11/Tamamla/internal/client/storage"
	"github.com/Breathless11/Tamamla/internal/logging"
	"github.com/Breathless11/Tamamla/internal/timex"
	"golang.org/x/time/rate"
)

type accountService interface {
	Register(ctx context.Context, username string, password []byte) error
	Authenticate(ctx context.Context, username string, password []byte) (*models.Account, error)
	DeleteAccount(ctx context.Context, username string) error
	ConfirmPassword(password, confirmation []byte) error
}

type taskService interface {
	List(ctx context.Context, username string) ([]models.Task, error)
	Filter(ctx context.Context, username string, f models.Filter) ([]models.Task, error)
	Create(ctx context.Context, username, text string, deadline time.Time) (*models.Task, error)
	Update(ctx context.Context, username, id, text string, deadline time.Time) (*models.Task, error)
	ToggleCompleted(ctx context.Context, username, id string) (*models.Task, error)
	Delete(ctx context.Context, username, id string) error
}

type sessionService interface {
	SetCurrent(ctx context.Context, username string) error
	GetCurrent(ctx context.Context) (string, bool, error)
}

// reminderRuntime is the part of the scheduler the App drives directly.
type reminderRuntime interface {
	RequestPermission(ctx context.Context) error
	Start(ctx context.Context) error
	Stop()
}

type App struct {
	config   *config.Config
	logger   logging.Logger
	accounts accountService
	tasks    taskService
	session  sessionService
	reminder reminderRuntime
	clock    timex.Clock
	limiter  *rate.Limiter
	userName string
	reader   *bufio.Reader
	out      io.Writer
	closers  []func()
}

// NewApp opens the database named by c, builds the reminder sink and
// scheduler, and wires the core services.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, rm, err := storage.Open(ctx, c.DatabaseDSN)
	if err != nil {
		logger.Error(ctx, "error initializing database", "dsn", c.DatabaseDSN, "error", err)
		return nil, err
	}

	a := &App{
		config:  c,
		logger:  logger,
		clock:   timex.SystemClock{},
		limiter: newLoginLimiter(c.LoginRate, c.LoginBurst),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		closers: []func(){func() { _ = db.Close() }},
	}

	sink, err := a.buildSink(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	permission := notify.PermissionGranted
	if !c.NotificationsEnabled {
		permission = notify.PermissionDenied
	}
	scheduler := notify.NewTimerScheduler(rm.Store(db), sink,
		notify.WithClock(a.clock),
		notify.WithLogger(logger.With("component", "scheduler")),
		notify.WithPermission(permission),
	)
	binder := notify.NewBinder(scheduler, a.clock, logger.With("component", "reminders"))

	core := services.New(db, rm, binder, services.Options{
		Clock:      a.clock,
		Logger:     logger,
		SessionTTL: c.SessionTTL,
	})

	a.accounts = core.Accounts
	a.tasks = core.Tasks
	a.session = core.Session
	a.reminder = scheduler
	return a, nil
}

func (a *App) buildSink(ctx context.Context) (notify.Sink, error) {
	switch a.config.NotificationSink {
	case config.SinkMQTT:
		s, err := notify.DialMQTT(a.config.MQTTBrokerURL, "tamamla-"+a.clock.Now().Format("20060102150405"), a.config.MQTTTopic)
		if err != nil {
			a.logger.Error(ctx, "mqtt sink unavailable", "broker", a.config.MQTTBrokerURL, "error", err)
			return nil, err
		}
		a.closers = append(a.closers, s.Close)
		return s, nil
	case config.SinkMail:
		s, err := notify.NewMailSink(a.config.SMTPHost, a.config.SMTPPort, a.config.SMTPUsername,
			a.config.SMTPPassword, a.config.SMTPSender, a.config.SMTPRecipient)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return notify.NewWriterSink(a.out), nil
	}
}

func newLoginLimiter(every time.Duration, burst int) *rate.Limiter {
	limit := rate.Inf
	if every > 0 {
		limit = rate.Every(every)
	}
	return rate.NewLimiter(limit, burst)
}

// Run starts reminders, restores the remembered login and blocks in the REPL
// until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.startReminders(ctx)
	a.restoreSession(ctx)

	printlnFn("Welcome to Tamamla (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) startReminders(ctx context.Context) {
	if err := a.reminder.RequestPermission(ctx); err != nil {
		a.logger.Warn(ctx, "notifications are disabled", "error", err)
		printlnFn("Notifications are disabled; tasks will be saved without reminders.")
	}
	if err := a.reminder.Start(ctx); err != nil {
		a.logger.Error(ctx, "failed to re-arm reminders", "error", err)
	}
	a.closers = append(a.closers, a.reminder.Stop)
}

func (a *App) restoreSession(ctx context.Context) {
	user, ok, err := a.session.GetCurrent(ctx)
	if err != nil {
		a.logger.Error(ctx, "failed to restore session", "error", err)
		return
	}
	if ok {
		a.userName = user
		printlnFn(fmt.Sprintf("Welcome back, %s.", user))
	}
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}
