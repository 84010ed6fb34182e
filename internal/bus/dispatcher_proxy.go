package bus

import (
	"sync/atomic"

	"github.com/kodflow/msgbus/internal/domain/pubsub"
)

// dispatcherHolder wraps a pubsub.AsyncDispatcher so dispatcherProxy's
// atomic.Value always stores the same concrete type, regardless of which
// concrete dispatcher is active.
type dispatcherHolder struct {
	d pubsub.AsyncDispatcher
}

// dispatcherProxy lets every Channel of a bus hold a stable
// pubsub.AsyncDispatcher reference while the bus swaps the concrete
// implementation underneath - an inline dispatcher, or a background
// dispatch.Dispatcher while the bus is in dedicated-thread mode (set at
// construction, by TurnOnDedicatedThreadMode, or afresh by Start after a
// Stop).
type dispatcherProxy struct {
	v atomic.Value
}

// newDispatcherProxy returns a proxy initially forwarding to d.
func newDispatcherProxy(d pubsub.AsyncDispatcher) *dispatcherProxy {
	p := &dispatcherProxy{}
	p.store(d)
	return p
}

// store atomically replaces the dispatcher the proxy forwards to.
func (p *dispatcherProxy) store(d pubsub.AsyncDispatcher) {
	p.v.Store(dispatcherHolder{d: d})
}

// Enqueue forwards to whichever dispatcher is currently active.
func (p *dispatcherProxy) Enqueue(sub *pubsub.Subscription, msg any) {
	p.v.Load().(dispatcherHolder).d.Enqueue(sub, msg)
}

var _ pubsub.AsyncDispatcher = (*dispatcherProxy)(nil)
