package logging

import (
	domainlogging "github.com/kodflow/msgbus/internal/domain/logging"
	"github.com/kodflow/msgbus/internal/domain/pubsub"
)

// WriterLogger binds a LogChannel to a set of Writers: every message logged
// on the channel is synchronously fanned out to the writers via a
// WriterListener subscription. Close cancels that subscription and closes
// every writer.
type WriterLogger struct {
	*domainlogging.LogChannel
	listener *WriterListener
	sub      *pubsub.Subscription
}

// NewWriterLogger subscribes a WriterListener fanning out to writers onto
// ch's underlying channel and returns the composed logger.
func NewWriterLogger(ch *domainlogging.LogChannel, writers ...domainlogging.Writer) *WriterLogger {
	listener := NewWriterListener(writers...)
	sub := ch.Channel().Subscribe(listener, false, false, pubsub.AnyThread)

	return &WriterLogger{
		LogChannel: ch,
		listener:   listener,
		sub:        sub,
	}
}

// Close cancels the writer subscription and closes every writer.
func (l *WriterLogger) Close() error {
	l.sub.Cancel()
	return l.listener.Close()
}
