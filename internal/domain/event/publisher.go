// Package event provides domain types for event handling.
package event

// Publisher is the port for publishing and consuming bus lifecycle events.
type Publisher interface {
	// Publish delivers event to every subscriber whose filters accept it.
	Publish(event Event)
	// Subscribe returns a channel receiving published events. Filters are
	// combined with AND: an event is delivered only if every filter accepts
	// it. No filters means every event is delivered.
	Subscribe(filters ...Filter) <-chan Event
	// Unsubscribe stops delivery to a channel returned by Subscribe.
	Unsubscribe(ch <-chan Event)
}

// Filter decides whether a subscriber receives an event.
// Returns true if the event should be passed through.
type Filter func(Event) bool

// FilterByType returns a filter that only passes events of the given types.
func FilterByType(types ...Type) Filter {
	typeSet := make(map[Type]struct{}, len(types))
	for _, t := range types {
		typeSet[t] = struct{}{}
	}
	return func(e Event) bool {
		_, ok := typeSet[e.Type]
		return ok
	}
}

// FilterByCategory returns a filter that only passes events of the given category.
func FilterByCategory(category string) Filter {
	return func(e Event) bool {
		return e.Type.Category() == category
	}
}

// FilterByChannelName returns a filter that only passes events for the given channel.
func FilterByChannelName(channelName string) Filter {
	return func(e Event) bool {
		return e.ChannelName == channelName
	}
}
