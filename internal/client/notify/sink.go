package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Sink delivers a fired notification somewhere the user will see it.
type Sink interface {
	Deliver(ctx context.Context, n Notification) error
}

// WriterSink prints reminders to a terminal or any other writer.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Deliver(_ context.Context, n Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := fmt.Fprintf(s.w, "\n%s: %s\n", n.Title, n.Body)
	return err
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(ctx context.Context, n Notification) error

func (f SinkFunc) Deliver(ctx context.Context, n Notification) error { return f(ctx, n) }
