package pubsub

import (
	"sync/atomic"
	"time"
)

// AnyThread is the Subscription.ThreadID sentinel meaning "deliver
// regardless of which goroutine originated the Send call".
const AnyThread uint64 = 0

// Subscription represents one registration of a Subscriber against a
// Channel. It is returned by Channel.Subscribe and remains valid, tracking
// delivery counts, until Cancel is called.
type Subscription struct {
	channel            *Channel
	subscriber         Subscriber
	identity           Identifiable
	includeSubchannels bool
	async              bool
	threadID           uint64
	timestamp          time.Time

	messageCount uint64 // atomic
	active       int32  // atomic bool: 1 active, 0 canceled
}

// newSubscription builds a Subscription in the active state. The caller is
// responsible for registering it with the owning channel.
func newSubscription(ch *Channel, sub Subscriber, includeSubchannels, async bool, threadID uint64) *Subscription {
	s := &Subscription{
		channel:            ch,
		subscriber:         sub,
		includeSubchannels: includeSubchannels,
		async:              async,
		threadID:           threadID,
		timestamp:          time.Now(),
		active:             1,
	}
	if id, ok := any(sub).(Identifiable); ok {
		s.identity = id
	}
	return s
}

// Channel returns the channel this subscription was registered on.
func (s *Subscription) Channel() *Channel {
	return s.channel
}

// IncludeSubchannels reports whether this subscription also receives
// messages sent on any descendant of its channel.
func (s *Subscription) IncludeSubchannels() bool {
	return s.includeSubchannels
}

// Async reports whether delivery to this subscription happens on the bus
// dispatcher goroutine rather than synchronously on the sender's goroutine.
func (s *Subscription) Async() bool {
	return s.async
}

// ThreadID returns the goroutine-id filter for this subscription, or
// AnyThread if the subscription is not thread-local.
func (s *Subscription) ThreadID() uint64 {
	return s.threadID
}

// Timestamp returns when the subscription was created.
func (s *Subscription) Timestamp() time.Time {
	return s.timestamp
}

// MessageCount returns the number of messages delivered to this
// subscription's subscriber so far.
func (s *Subscription) MessageCount() uint64 {
	return atomic.LoadUint64(&s.messageCount)
}

// IsActive reports whether the subscription has not yet been canceled.
func (s *Subscription) IsActive() bool {
	return atomic.LoadInt32(&s.active) == 1
}

// Cancel deactivates the subscription and removes it from its channel. It is
// idempotent; canceling an already-canceled subscription is a no-op.
func (s *Subscription) Cancel() {
	if !atomic.CompareAndSwapInt32(&s.active, 1, 0) {
		return
	}
	s.channel.removeSubscription(s)
}

// uid returns the dedup identity of this subscription's subscriber, and
// false if the subscriber did not advertise an Identifiable capability.
func (s *Subscription) uid() (string, bool) {
	if s.identity == nil {
		return "", false
	}
	uid := s.identity.SubscriberUID()
	if uid == "" {
		return "", false
	}
	return uid, true
}

// acceptsThread reports whether a message sent from the goroutine
// identified by senderThreadID should be delivered to this subscription.
func (s *Subscription) acceptsThread(senderThreadID uint64) bool {
	return s.threadID == AnyThread || s.threadID == senderThreadID
}

// Deliver invokes the subscriber and records the delivery. It is called on
// whichever goroutine performs the actual delivery: the sender's goroutine
// for synchronous subscriptions, the bus dispatcher's goroutine for
// asynchronous ones.
func (s *Subscription) Deliver(msg any) {
	atomic.AddUint64(&s.messageCount, 1)
	s.subscriber.Handle(msg)
}
