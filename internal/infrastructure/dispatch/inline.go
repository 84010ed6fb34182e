package dispatch

import "github.com/kodflow/msgbus/internal/domain/pubsub"

// InlineDispatcher implements pubsub.AsyncDispatcher by invoking the
// subscriber immediately on the caller's goroutine. It backs a MessageBus
// that is not running in dedicated-thread mode: the async-flag semantics of
// a Subscription are preserved, but there is no background worker to hand
// delivery off to, so Channel.Send simply runs it in place after the
// synchronous pass.
type InlineDispatcher struct {
	reporter ErrorReporter
}

// NewInlineDispatcher returns an InlineDispatcher reporting panics through
// reporter, which may be nil to discard them silently.
func NewInlineDispatcher(reporter ErrorReporter) *InlineDispatcher {
	return &InlineDispatcher{reporter: reporter}
}

// Enqueue invokes sub's subscriber immediately. A panic is recovered and
// reported rather than propagated, matching the isolation the dedicated
// dispatcher provides on the async path.
func (d *InlineDispatcher) Enqueue(sub *pubsub.Subscription, msg any) {
	defer func() {
		if r := recover(); r != nil && d.reporter != nil {
			d.reporter.ReportDispatchError(sub, msg, r)
		}
	}()

	if !sub.IsActive() {
		return
	}
	sub.Deliver(msg)
}

var _ pubsub.AsyncDispatcher = (*InlineDispatcher)(nil)
