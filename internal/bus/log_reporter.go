package bus

import "github.com/kodflow/msgbus/internal/domain/pubsub"

// logReporter routes dispatcher panic reports to the bus's internal log
// channel, the way the dispatcher surfaces an async subscriber failure
// without crashing its own goroutine.
type logReporter struct {
	bus *MessageBus
}

// ReportDispatchError logs recovered at error level on the internal log
// channel, identifying the subscription's channel for context.
func (r *logReporter) ReportDispatchError(sub *pubsub.Subscription, msg any, recovered any) {
	r.bus.internalLog.Error("async subscriber panic recovered", map[string]any{
		"channel":   sub.Channel().Name(),
		"recovered": recovered,
	})
}
