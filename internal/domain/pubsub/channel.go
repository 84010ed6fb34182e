package pubsub

import (
	"sort"
	"sync"
	"sync/atomic"
)

// AsyncDispatcher takes over delivery of a message to an asynchronous
// subscription: either by handing it to a background worker that later
// invokes sub.Deliver(msg) on its own goroutine, or by invoking it inline on
// the caller's goroutine. Implementations must
// apply whatever back-pressure policy the bus was configured with; Enqueue
// may block the caller when that policy requires it.
type AsyncDispatcher interface {
	Enqueue(sub *Subscription, msg any)
}

// Channel is one node of the bus's hierarchical namespace. Messages sent on
// a channel are delivered to its own subscribers and to any ancestor
// channel's subscribers that opted into subtree delivery.
type Channel struct {
	name      string
	separator string

	mu             sync.Mutex
	parent         *Channel
	children       map[string]*Channel
	syncSubs       []*Subscription
	asyncSubs      []*Subscription
	dispatcher     AsyncDispatcher
	currentThreadF func() uint64
	runningF       func() bool

	messageCount uint64 // atomic
}

// newChannel constructs a channel node. parent is nil only for the root
// channel. dispatcher and currentThreadF are shared across every channel of
// a bus and supplied by the bus at construction time. runningF reports
// whether the owning bus is currently started; a nil runningF means the
// channel is always considered running (used by tests that exercise a
// Channel without a bus).
func newChannel(name, separator string, parent *Channel, dispatcher AsyncDispatcher, currentThreadF func() uint64, runningF func() bool) *Channel {
	return &Channel{
		name:           name,
		separator:      separator,
		parent:         parent,
		children:       make(map[string]*Channel),
		dispatcher:     dispatcher,
		currentThreadF: currentThreadF,
		runningF:       runningF,
	}
}

// NewRootChannel constructs the distinguished root channel, which has no
// parent. It is exported for use by the bus package that owns channel
// lifecycle; callers outside a MessageBus should not normally need it.
func NewRootChannel(name, separator string, dispatcher AsyncDispatcher, currentThreadF func() uint64, runningF func() bool) *Channel {
	return newChannel(name, separator, nil, dispatcher, currentThreadF, runningF)
}

// NewChildChannel constructs a channel as a direct child of parent and
// registers it in parent's child set. It is exported for use by the bus
// package, which is responsible for also indexing the result by name.
func NewChildChannel(name string, parent *Channel, dispatcher AsyncDispatcher, currentThreadF func() uint64, runningF func() bool) *Channel {
	child := newChannel(name, parent.separator, parent, dispatcher, currentThreadF, runningF)
	parent.addChild(child)
	return child
}

// Name returns the channel's fully-qualified name.
func (c *Channel) Name() string {
	return c.name
}

// ParentChannel returns the parent channel, or nil for the root channel.
func (c *Channel) ParentChannel() *Channel {
	return c.parent
}

// ChildChannels returns the direct children of this channel, sorted by name
// for deterministic iteration.
func (c *Channel) ChildChannels() []*Channel {
	c.mu.Lock()
	defer c.mu.Unlock()

	children := make([]*Channel, 0, len(c.children))
	for _, child := range c.children {
		children = append(children, child)
	}
	sort.Slice(children, func(i, j int) bool { return children[i].name < children[j].name })
	return children
}

// addChild registers child as a direct descendant of c. Callers must already
// hold whatever bus-level lock guards channel creation.
func (c *Channel) addChild(child *Channel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.children[child.name] = child
}

// MessageCount returns the number of Send calls made on this channel,
// irrespective of whether any subscription actually received the message.
func (c *Channel) MessageCount() uint64 {
	return atomic.LoadUint64(&c.messageCount)
}

// HasSubscriptions reports whether this channel has any active
// subscription, synchronous or asynchronous.
func (c *Channel) HasSubscriptions() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.syncSubs) > 0 || len(c.asyncSubs) > 0
}

// HasSynchronousSubscriptions reports whether this channel has any active
// synchronous subscription.
func (c *Channel) HasSynchronousSubscriptions() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.syncSubs) > 0
}

// HasAsyncSubscriptions reports whether this channel has any active
// asynchronous subscription.
func (c *Channel) HasAsyncSubscriptions() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.asyncSubs) > 0
}

// SynchronousSubscriptions returns a snapshot of this channel's active
// synchronous subscriptions, in registration order.
func (c *Channel) SynchronousSubscriptions() []*Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Subscription, len(c.syncSubs))
	copy(out, c.syncSubs)
	return out
}

// AsynchronousSubscriptions returns a snapshot of this channel's active
// asynchronous subscriptions, in registration order.
func (c *Channel) AsynchronousSubscriptions() []*Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Subscription, len(c.asyncSubs))
	copy(out, c.asyncSubs)
	return out
}

// Subscribe registers subscriber against this channel and returns the
// Subscription handle. When includeSubchannels is true, the subscription
// also receives messages sent on any descendant channel. When async is
// true, delivery happens on the bus dispatcher goroutine; otherwise the
// subscriber runs synchronously on the sender's goroutine inside Send. A
// non-zero threadID restricts delivery to messages sent from the matching
// goroutine, as reported by the bus's thread-identity function.
func (c *Channel) Subscribe(subscriber Subscriber, includeSubchannels, async bool, threadID uint64) *Subscription {
	sub := newSubscription(c, subscriber, includeSubchannels, async, threadID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if async {
		c.asyncSubs = append(c.asyncSubs, sub)
	} else {
		c.syncSubs = append(c.syncSubs, sub)
	}
	return sub
}

// removeSubscription drops sub from this channel's subscription lists. It is
// called by Subscription.Cancel and is a no-op if sub is not present.
func (c *Channel) removeSubscription(sub *Subscription) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if sub.async {
		c.asyncSubs = removeSub(c.asyncSubs, sub)
	} else {
		c.syncSubs = removeSub(c.syncSubs, sub)
	}
}

func removeSub(subs []*Subscription, target *Subscription) []*Subscription {
	for i, s := range subs {
		if s == target {
			return append(subs[:i:i], subs[i+1:]...)
		}
	}
	return subs
}

// Send delivers msg to every subscription eligible for this channel: the
// channel's own subscriptions, and any ancestor channel's subscriptions
// registered with includeSubchannels. Synchronous subscribers run in
// registration order on the caller's goroutine; a panic raised by one
// aborts delivery to the remaining synchronous subscribers and propagates
// to the caller after the offending subscription's delivery count has been
// recorded. Asynchronous subscribers are handed off to the bus dispatcher,
// which applies back-pressure and isolates panics from the caller. Send on
// a channel whose bus has not been started, or has since been stopped, is a
// silent no-op: message_count is not incremented and no subscriber runs.
func (c *Channel) Send(msg any) {
	if c.runningF != nil && !c.runningF() {
		return
	}

	atomic.AddUint64(&c.messageCount, 1)

	senderThreadID := c.currentThreadF()
	syncSubs, asyncSubs := c.effectiveSubscriptions(senderThreadID)

	deliverSync(syncSubs, msg)

	for _, sub := range asyncSubs {
		c.dispatcher.Enqueue(sub, msg)
	}
}

// effectiveSubscriptions resolves the full set of subscriptions that should
// receive a message sent on c, deduplicated by subscriber identity where
// the subscriber advertises one, and filtered by thread locality.
func (c *Channel) effectiveSubscriptions(senderThreadID uint64) (syncSubs, asyncSubs []*Subscription) {
	seen := make(map[string]struct{})

	collect := func(subs []*Subscription) []*Subscription {
		out := make([]*Subscription, 0, len(subs))
		for _, s := range subs {
			if !s.IsActive() || !s.acceptsThread(senderThreadID) {
				continue
			}
			if uid, ok := s.uid(); ok {
				if _, dup := seen[uid]; dup {
					continue
				}
				seen[uid] = struct{}{}
			}
			out = append(out, s)
		}
		return out
	}

	c.mu.Lock()
	syncSubs = collect(c.syncSubs)
	asyncSubs = collect(c.asyncSubs)
	c.mu.Unlock()

	for anc := c.parent; anc != nil; anc = anc.parent {
		anc.mu.Lock()
		wildcardSync := filterWildcard(anc.syncSubs)
		wildcardAsync := filterWildcard(anc.asyncSubs)
		anc.mu.Unlock()

		syncSubs = append(syncSubs, collect(wildcardSync)...)
		asyncSubs = append(asyncSubs, collect(wildcardAsync)...)
	}
	return syncSubs, asyncSubs
}

func filterWildcard(subs []*Subscription) []*Subscription {
	out := make([]*Subscription, 0, len(subs))
	for _, s := range subs {
		if s.includeSubchannels {
			out = append(out, s)
		}
	}
	return out
}

// deliverSync runs each synchronous subscription's subscriber in order. If a
// subscriber panics, Subscription.Deliver has already recorded its delivery
// count by the time the panic unwinds out of this loop, and any
// subscriptions after it in subs are skipped as the panic propagates to the
// caller of Send.
func deliverSync(subs []*Subscription, msg any) {
	for _, sub := range subs {
		sub.Deliver(msg)
	}
}
