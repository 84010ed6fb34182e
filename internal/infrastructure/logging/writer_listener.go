package logging

import (
	"github.com/google/uuid"

	"github.com/kodflow/msgbus/internal/domain/logging"
	"github.com/kodflow/msgbus/internal/domain/pubsub"
)

// WriterListener fans a LogMessage out to a fixed set of Writers. It
// implements pubsub.Subscriber so it can be subscribed directly on a log
// channel, and pubsub.Identifiable so that subscribing it on both a channel
// and one of its wildcard ancestors still delivers each message once.
type WriterListener struct {
	uid     string
	writers []logging.Writer
}

// NewWriterListener returns a WriterListener fanning out to writers.
func NewWriterListener(writers ...logging.Writer) *WriterListener {
	return &WriterListener{
		uid:     uuid.NewString(),
		writers: writers,
	}
}

// SubscriberUID returns the listener's stable identity for delivery dedup.
func (l *WriterListener) SubscriberUID() string {
	return l.uid
}

// Handle writes msg to every configured writer. A message that does not
// carry a LogMessage payload is ignored.
func (l *WriterListener) Handle(msg any) {
	lm, ok := msg.(logging.LogMessage)
	if !ok {
		return
	}
	for _, w := range l.writers {
		_ = w.Write(lm)
	}
}

// Close closes every writer, returning the first error encountered.
func (l *WriterListener) Close() error {
	var firstErr error
	for _, w := range l.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

var (
	_ pubsub.Subscriber   = (*WriterListener)(nil)
	_ pubsub.Identifiable = (*WriterListener)(nil)
)
