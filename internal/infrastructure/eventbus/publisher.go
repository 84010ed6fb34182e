// Package eventbus implements the domain event.Publisher port on top of a
// MessageBus, giving the channel/subscription/dispatcher/bus lifecycle
// vocabulary defined in internal/domain/event a concrete transport.
package eventbus

import (
	"errors"
	"sync"

	"github.com/kodflow/msgbus/internal/bus"
	"github.com/kodflow/msgbus/internal/domain/event"
	"github.com/kodflow/msgbus/internal/domain/pubsub"
)

// eventsRootChannel is the channel every event is published under; a
// specific event is sent on eventsRootChannel + separator + its category,
// e.g. "events.dispatcher".
const eventsRootChannel = "events"

// subscriberQueueSize bounds how many events a Subscribe caller can fall
// behind by before further deliveries to it are dropped rather than
// stalling the bus's single dispatcher worker.
const subscriberQueueSize = 64

// Publisher routes Events onto a dedicated channel subtree of a
// bus.MessageBus: one wildcard async subscription per Subscribe call feeds
// a buffered Go channel, and Unsubscribe cancels that subscription.
type Publisher struct {
	bus *bus.MessageBus

	mu   sync.Mutex
	subs map[<-chan event.Event]*pubsub.Subscription
}

// NewPublisher returns a Publisher backed by b, creating the events root
// channel if it does not already exist.
func NewPublisher(b *bus.MessageBus) (*Publisher, error) {
	if _, err := b.CreateNewChannel(eventsRootChannel); err != nil && !errors.Is(err, pubsub.ErrChannelAlreadyExists) {
		return nil, err
	}
	return &Publisher{
		bus:  b,
		subs: make(map[<-chan event.Event]*pubsub.Subscription),
	}, nil
}

// Publish sends e on the channel named after its category, creating that
// channel on first use.
func (p *Publisher) Publish(e event.Event) {
	channelName := eventsRootChannel + p.bus.NameSeparator() + e.Type.Category()

	ch, err := p.bus.GetChannel(channelName)
	if err != nil {
		ch, err = p.bus.CreateNewChannel(channelName)
		if err != nil {
			if !errors.Is(err, pubsub.ErrChannelAlreadyExists) {
				return
			}
			ch, err = p.bus.GetChannel(channelName)
			if err != nil {
				return
			}
		}
	}
	ch.Send(e)
}

// Subscribe returns a channel receiving events published across all
// categories, delivered asynchronously off the publisher's goroutine. An
// event is forwarded only if every filter accepts it; no filters forwards
// everything.
func (p *Publisher) Subscribe(filters ...event.Filter) <-chan event.Event {
	out := make(chan event.Event, subscriberQueueSize)
	listener := &eventListener{out: out, filters: filters}

	sub, err := p.bus.Subscribe(eventsRootChannel, listener, true, true, pubsub.AnyThread)
	if err != nil {
		close(out)
		return out
	}

	p.mu.Lock()
	p.subs[out] = sub
	p.mu.Unlock()

	return out
}

// Unsubscribe cancels the subscription backing ch. Unsubscribing a channel
// not returned by Subscribe is a no-op.
func (p *Publisher) Unsubscribe(ch <-chan event.Event) {
	p.mu.Lock()
	sub, ok := p.subs[ch]
	if ok {
		delete(p.subs, ch)
	}
	p.mu.Unlock()

	if ok {
		sub.Cancel()
	}
}

var _ event.Publisher = (*Publisher)(nil)

// eventListener adapts a Go channel to pubsub.Subscriber. Delivery is
// non-blocking: a slow consumer drops events past its buffer rather than
// stalling the bus's single dispatcher worker.
type eventListener struct {
	out     chan event.Event
	filters []event.Filter
}

// Handle forwards msg to the listener's channel if it is an Event accepted
// by every filter.
func (l *eventListener) Handle(msg any) {
	e, ok := msg.(event.Event)
	if !ok {
		return
	}
	for _, accept := range l.filters {
		if !accept(e) {
			return
		}
	}
	select {
	case l.out <- e:
	default:
	}
}

var _ pubsub.Subscriber = (*eventListener)(nil)
