// Package event_test provides external tests for the event package.
package event_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kodflow/msgbus/internal/domain/event"
)

func TestType_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		eventType event.Type
		want      string
	}{
		{"channel created", event.TypeChannelCreated, "channel.created"},
		{"channel removed", event.TypeChannelRemoved, "channel.removed"},
		{"subscription created", event.TypeSubscriptionCreated, "subscription.created"},
		{"subscription cancelled", event.TypeSubscriptionCancelled, "subscription.cancelled"},
		{"dispatcher queue full", event.TypeDispatcherQueueFull, "dispatcher.queue.full"},
		{"dispatcher subscriber panic", event.TypeDispatcherSubscriberPanic, "dispatcher.subscriber.panic"},
		{"bus started", event.TypeBusStarted, "bus.started"},
		{"unknown", event.TypeUnknown, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.eventType.String())
		})
	}
}

func TestType_Category(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		eventType event.Type
		want      string
	}{
		{"channel event", event.TypeChannelCreated, "channel"},
		{"subscription event", event.TypeSubscriptionCancelled, "subscription"},
		{"dispatcher event", event.TypeDispatcherQueueFull, "dispatcher"},
		{"bus event", event.TypeBusStarted, "bus"},
		{"unknown event", event.TypeUnknown, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.eventType.Category())
		})
	}
}

func TestNewEvent(t *testing.T) {
	t.Parallel()

	before := time.Now()
	e := event.NewEvent(event.TypeChannelCreated, "channel created")
	after := time.Now()

	assert.Equal(t, event.TypeChannelCreated, e.Type)
	assert.Equal(t, "channel created", e.Message)
	assert.True(t, e.Timestamp.After(before) || e.Timestamp.Equal(before))
	assert.True(t, e.Timestamp.Before(after) || e.Timestamp.Equal(after))
}

func TestEvent_WithChannelName(t *testing.T) {
	t.Parallel()

	e := event.NewEvent(event.TypeChannelCreated, "created").
		WithChannelName("orders.shipped")

	assert.Equal(t, "orders.shipped", e.ChannelName)
}

func TestEvent_WithSubscriberUID(t *testing.T) {
	t.Parallel()

	e := event.NewEvent(event.TypeSubscriptionCancelled, "cancelled").
		WithSubscriberUID("sub-123")

	assert.Equal(t, "sub-123", e.SubscriberUID)
}

func TestEvent_WithData(t *testing.T) {
	t.Parallel()

	e := event.NewEvent(event.TypeDispatcherQueueFull, "backlog").
		WithData("queue_depth", 128).
		WithData("max_queue_size", 128)

	assert.Equal(t, 128, e.Data["queue_depth"])
	assert.Equal(t, 128, e.Data["max_queue_size"])
}

func TestEvent_Chaining(t *testing.T) {
	t.Parallel()

	e := event.NewEvent(event.TypeSubscriptionCancelled, "subscriber gone").
		WithChannelName("orders.shipped").
		WithSubscriberUID("sub-123").
		WithData("reason", "caller cancelled")

	assert.Equal(t, event.TypeSubscriptionCancelled, e.Type)
	assert.Equal(t, "subscriber gone", e.Message)
	assert.Equal(t, "orders.shipped", e.ChannelName)
	assert.Equal(t, "sub-123", e.SubscriberUID)
	assert.Equal(t, "caller cancelled", e.Data["reason"])
}

func TestFilterByType(t *testing.T) {
	t.Parallel()

	filter := event.FilterByType(event.TypeChannelCreated, event.TypeChannelRemoved)

	assert.True(t, filter(event.Event{Type: event.TypeChannelCreated}))
	assert.True(t, filter(event.Event{Type: event.TypeChannelRemoved}))
	assert.False(t, filter(event.Event{Type: event.TypeSubscriptionCreated}))
	assert.False(t, filter(event.Event{Type: event.TypeBusStarted}))
}

func TestFilterByCategory(t *testing.T) {
	t.Parallel()

	filter := event.FilterByCategory("subscription")

	assert.True(t, filter(event.Event{Type: event.TypeSubscriptionCreated}))
	assert.True(t, filter(event.Event{Type: event.TypeSubscriptionCancelled}))
	assert.False(t, filter(event.Event{Type: event.TypeChannelCreated}))
	assert.False(t, filter(event.Event{Type: event.TypeBusStarted}))
}

func TestFilterByChannelName(t *testing.T) {
	t.Parallel()

	filter := event.FilterByChannelName("orders.shipped")

	assert.True(t, filter(event.Event{ChannelName: "orders.shipped"}))
	assert.False(t, filter(event.Event{ChannelName: "orders.cancelled"}))
	assert.False(t, filter(event.Event{ChannelName: ""}))
}
