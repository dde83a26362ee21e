package notify

import (
	"context"
	"sync"
	"testing"
	"time"
)

type memStore struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	setErr error
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (m *memStore) GetString(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) SetString(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	delete(m.data, key)
	return nil
}

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeTimers struct {
	list []*fakeTimer
}

func (f *fakeTimers) last() *fakeTimer { return f.list[len(f.list)-1] }

func useFakeTimers(t *testing.T) *fakeTimers {
	t.Helper()
	ft := &fakeTimers{}
	orig := afterFunc
	afterFunc = func(d time.Duration, fn func()) stopper {
		tm := &fakeTimer{delay: d, fn: fn}
		ft.list = append(ft.list, tm)
		return tm
	}
	t.Cleanup(func() { afterFunc = orig })
	return ft
}

type recordingSink struct {
	mu        sync.Mutex
	delivered []Notification
	err       error
}

func (s *recordingSink) Deliver(_ context.Context, n Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delivered = append(s.delivered, n)
	return s.err
}
