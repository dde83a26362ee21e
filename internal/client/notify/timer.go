package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Breathless11/Tamamla/internal/client/repositories/kv"
	"github.com/Breathless11/Tamamla/internal/logging"
	"github.com/Breathless11/Tamamla/internal/timex"
	"github.com/google/uuid"
)

// JournalKey is the KV key holding pending notifications.
const JournalKey = "notifications"

// Permission is the startup decision on whether reminders may be delivered.
type Permission int

const (
	PermissionGranted Permission = iota
	PermissionDenied
)

type stopper interface {
	Stop() bool
}

// afterFunc is a test seam over time.AfterFunc.
var afterFunc = func(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

type journalEntry struct {
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	FireAt time.Time `json:"fireAt"`
}

// TimerScheduler is a Scheduler backed by in-process timers. Pending entries
// are journaled in the KV store under JournalKey; Start re-arms them.
type TimerScheduler struct {
	store      kv.Store
	sink       Sink
	clock      timex.Clock
	logger     logging.Logger
	permission Permission
	onFired    func(Notification)

	mu     sync.Mutex
	timers map[string]stopper
}

// Option configures a TimerScheduler.
type Option func(*TimerScheduler)

func WithClock(c timex.Clock) Option {
	return func(s *TimerScheduler) { s.clock = c }
}

func WithLogger(l logging.Logger) Option {
	return func(s *TimerScheduler) { s.logger = l }
}

func WithPermission(p Permission) Option {
	return func(s *TimerScheduler) { s.permission = p }
}

// WithOnFired registers a receipt callback invoked after each delivery.
func WithOnFired(fn func(Notification)) Option {
	return func(s *TimerScheduler) { s.onFired = fn }
}

func NewTimerScheduler(store kv.Store, sink Sink, opts ...Option) *TimerScheduler {
	s := &TimerScheduler{
		store:  store,
		sink:   sink,
		clock:  timex.SystemClock{},
		logger: logging.Discard(),
		timers: make(map[string]stopper),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TimerScheduler) RequestPermission(ctx context.Context) error {
	if s.permission != PermissionGranted {
		return ErrPermissionDenied
	}
	return nil
}

func (s *TimerScheduler) ScheduleOneShot(ctx context.Context, title, body string, delay time.Duration) (string, error) {
	if s.permission != PermissionGranted {
		return "", ErrPermissionDenied
	}
	if delay <= 0 {
		return "", ErrInvalidDelay
	}

	handle := uuid.NewString()
	entry := journalEntry{Title: title, Body: body, FireAt: s.clock.Now().Add(delay)}

	s.mu.Lock()
	defer s.mu.Unlock()

	journal, err := s.loadJournal(ctx)
	if err != nil {
		return "", err
	}
	journal[handle] = entry
	if err := s.saveJournal(ctx, journal); err != nil {
		return "", err
	}

	s.timers[handle] = afterFunc(delay, func() { s.fire(handle) })
	s.logger.Debug(ctx, "notification scheduled", "handle", handle, "fire_at", entry.FireAt)
	return handle, nil
}

// Cancel disarms handle and drops it from the journal. A journaled handle
// that was never armed (Start not called yet) is cancelled too.
func (s *TimerScheduler) Cancel(ctx context.Context, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	journal, err := s.loadJournal(ctx)
	if err != nil {
		return err
	}

	t, armed := s.timers[handle]
	_, journaled := journal[handle]
	if !armed && !journaled {
		return ErrUnknownHandle
	}
	if armed {
		t.Stop()
		delete(s.timers, handle)
	}
	if journaled {
		delete(journal, handle)
		if err := s.saveJournal(ctx, journal); err != nil {
			return err
		}
	}

	s.logger.Debug(ctx, "notification cancelled", "handle", handle)
	return nil
}

// Start arms a timer for every journaled entry. Entries whose time passed
// while the process was down are delivered right away.
func (s *TimerScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	journal, err := s.loadJournal(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	now := s.clock.Now()
	var overdue []Notification
	for handle, e := range journal {
		if _, armed := s.timers[handle]; armed {
			continue
		}
		if !e.FireAt.After(now) {
			overdue = append(overdue, Notification{Handle: handle, Title: e.Title, Body: e.Body, FireAt: e.FireAt})
			delete(journal, handle)
			continue
		}
		h := handle
		s.timers[h] = afterFunc(e.FireAt.Sub(now), func() { s.fire(h) })
	}

	if len(overdue) > 0 {
		if err := s.saveJournal(ctx, journal); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	armed := len(s.timers)
	s.mu.Unlock()

	s.logger.Info(ctx, "notification scheduler started", "armed", armed, "overdue", len(overdue))
	for _, n := range overdue {
		s.deliver(ctx, n)
	}
	return nil
}

// Stop disarms all timers. The journal is left as is, so a later Start picks
// the same entries up again.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for handle, t := range s.timers {
		t.Stop()
		delete(s.timers, handle)
	}
}

// Pending reports how many timers are armed.
func (s *TimerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *TimerScheduler) fire(handle string) {
	ctx := context.Background()

	s.mu.Lock()
	if _, ok := s.timers[handle]; !ok {
		// lost the race against Cancel or Stop
		s.mu.Unlock()
		return
	}
	delete(s.timers, handle)

	journal, err := s.loadJournal(ctx)
	if err != nil {
		s.mu.Unlock()
		s.logger.Error(ctx, "failed to read notification journal", "handle", handle, "error", err)
		return
	}
	e, ok := journal[handle]
	if !ok {
		s.mu.Unlock()
		s.logger.Warn(ctx, "fired notification missing from journal", "handle", handle)
		return
	}
	delete(journal, handle)
	if err := s.saveJournal(ctx, journal); err != nil {
		s.logger.Error(ctx, "failed to update notification journal", "handle", handle, "error", err)
	}
	s.mu.Unlock()

	s.deliver(ctx, Notification{Handle: handle, Title: e.Title, Body: e.Body, FireAt: e.FireAt})
}

func (s *TimerScheduler) deliver(ctx context.Context, n Notification) {
	if err := s.sink.Deliver(ctx, n); err != nil {
		s.logger.Error(ctx, "failed to deliver notification", "handle", n.Handle, "error", err)
	} else {
		s.logger.Info(ctx, "notification delivered", "handle", n.Handle)
	}
	if s.onFired != nil {
		s.onFired(n)
	}
}

func (s *TimerScheduler) loadJournal(ctx context.Context) (map[string]journalEntry, error) {
	raw, ok, err := s.store.GetString(ctx, JournalKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read notification journal: %w", err)
	}
	journal := make(map[string]journalEntry)
	if !ok || raw == "" {
		return journal, nil
	}
	if err := json.Unmarshal([]byte(raw), &journal); err != nil {
		return nil, fmt.Errorf("failed to decode notification journal: %w", err)
	}
	return journal, nil
}

func (s *TimerScheduler) saveJournal(ctx context.Context, journal map[string]journalEntry) error {
	if len(journal) == 0 {
		if err := s.store.Delete(ctx, JournalKey); err != nil {
			return fmt.Errorf("failed to clear notification journal: %w", err)
		}
		return nil
	}
	raw, err := json.Marshal(journal)
	if err != nil {
		return fmt.Errorf("failed to encode notification journal: %w", err)
	}
	if err := s.store.SetString(ctx, JournalKey, string(raw)); err != nil {
		return fmt.Errorf("failed to write notification journal: %w", err)
	}
	return nil
}

var _ Scheduler = (*TimerScheduler)(nil)

