// Package dispatch provides the bus's single background worker that
// delivers asynchronous subscriptions off the sender's goroutine.
package dispatch

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/kodflow/msgbus/internal/domain/pubsub"
	"github.com/kodflow/msgbus/internal/infrastructure/concurrency"
)

// stopJoinTimeout bounds how long Stop waits for the worker to drain its
// backlog and observe the shutdown marker before giving up on the join.
const stopJoinTimeout = 5 * time.Second

// ErrorReporter is notified when an asynchronous subscriber panics. It is
// typically backed by the bus's log channel so dispatch failures are
// observable without crashing the dispatcher goroutine.
type ErrorReporter interface {
	ReportDispatchError(sub *pubsub.Subscription, msg any, recovered any)
}

type workItem struct {
	sub      *pubsub.Subscription
	msg      any
	shutdown bool
}

// Dispatcher runs exactly one goroutine that drains a bounded queue of
// pending deliveries and invokes each asynchronous Subscription's
// subscriber in the order messages were enqueued. Backlog beyond the
// queue's configured bound blocks the enqueuing caller, which is how the
// bus applies back-pressure to producers faster than a subscriber can
// consume.
type Dispatcher struct {
	queue    *concurrency.BlockingQueue[workItem]
	reporter ErrorReporter

	stopOnce  sync.Once
	done      chan struct{}
	workerID  uint64 // atomic: goroutine id of the running worker, 0 until Start
	messages  uint64 // atomic: total items dequeued by the worker
	dispatchN uint64 // atomic: total items delivered
}

// NewDispatcher returns a Dispatcher whose internal queue holds at most
// maxQueueSize pending deliveries. A maxQueueSize of 0 means unbounded.
func NewDispatcher(maxQueueSize int, reporter ErrorReporter) *Dispatcher {
	return &Dispatcher{
		queue:    concurrency.NewBlockingQueue[workItem](maxQueueSize),
		reporter: reporter,
		done:     make(chan struct{}),
	}
}

// Start launches the worker goroutine. It must be called at most once.
func (d *Dispatcher) Start() {
	go d.run()
}

// Enqueue hands sub and msg off to the worker goroutine, blocking the
// caller if the dispatcher's queue is at its configured bound.
func (d *Dispatcher) Enqueue(sub *pubsub.Subscription, msg any) {
	d.queue.Put(workItem{sub: sub, msg: msg})
}

// MessageCount returns the number of deliveries the worker has dequeued so
// far, whether or not the target subscription was still active.
func (d *Dispatcher) MessageCount() uint64 {
	return atomic.LoadUint64(&d.messages)
}

// DispatchCount returns the number of dequeued deliveries the worker has
// finished handling so far: successful, panicking, or skipped because the
// subscription had been canceled.
func (d *Dispatcher) DispatchCount() uint64 {
	return atomic.LoadUint64(&d.dispatchN)
}

// Stop signals the worker to exit after draining any deliveries already
// queued ahead of the shutdown marker. If Stop is called from the
// dispatcher's own worker goroutine - for example, from inside a subscriber
// invoked asynchronously that itself stops the bus - it returns immediately
// after enqueuing the marker rather than deadlocking by waiting on itself;
// the worker still exits on its next loop iteration. Stop is idempotent.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		if concurrency.CurrentGoroutineID() == atomic.LoadUint64(&d.workerID) {
			// Called reentrantly from the worker's own goroutine: jump the
			// queue and ignore the size bound so shutdown can never be
			// blocked behind the very backlog this goroutine would
			// otherwise have to drain itself.
			d.queue.PutLeft(workItem{shutdown: true}, false)
			return
		}

		// Enqueue normally, behind whatever is already queued, so the
		// worker delivers the existing backlog before it observes the
		// shutdown marker. The join is bounded: a subscriber stuck in its
		// callback must not hang the stopping goroutine forever.
		d.queue.Put(workItem{shutdown: true})
		select {
		case <-d.done:
		case <-time.After(stopJoinTimeout):
		}
	})
}

func (d *Dispatcher) run() {
	atomic.StoreUint64(&d.workerID, concurrency.CurrentGoroutineID())
	defer close(d.done)

	for {
		item := d.queue.Get()
		if item.shutdown {
			return
		}
		atomic.AddUint64(&d.messages, 1)
		d.deliver(item)
	}
}

func (d *Dispatcher) deliver(item workItem) {
	defer func() {
		atomic.AddUint64(&d.dispatchN, 1)
		if r := recover(); r != nil && d.reporter != nil {
			d.reporter.ReportDispatchError(item.sub, item.msg, r)
		}
	}()
	if !item.sub.IsActive() {
		return
	}
	item.sub.Deliver(item.msg)
}
