// Package pubsub implements the hierarchical publish/subscribe message bus:
// channels, subscriptions, and message delivery.
package pubsub

import "errors"

// Sentinel errors identify the class of failure without carrying
// channel-specific context; wrap them with PubSubError for the offending name.
var (
	// ErrInvalidChannelName is returned when a channel name fails the naming grammar.
	ErrInvalidChannelName = errors.New("pubsub: invalid channel name")
	// ErrUnknownChannel is returned when a lookup targets a channel that does not exist.
	ErrUnknownChannel = errors.New("pubsub: unknown channel")
	// ErrChannelAlreadyExists is returned when creating a channel whose name is already registered.
	ErrChannelAlreadyExists = errors.New("pubsub: channel already exists")
)

// PubSubError wraps a sentinel error with the operation and channel name that
// triggered it, in the manner of a context-annotated kernel error.
type PubSubError struct {
	// Op names the operation that failed, e.g. "create_channel" or "subscribe".
	Op string
	// Name is the channel or subscription name involved, if any.
	Name string
	// Err is the underlying sentinel error.
	Err error
}

// Error implements the error interface.
func (e *PubSubError) Error() string {
	if e.Name == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Name + ": " + e.Err.Error()
}

// Unwrap allows errors.Is/errors.As to see through to the sentinel.
func (e *PubSubError) Unwrap() error {
	return e.Err
}

// WrapError annotates err with the operation and channel name that produced it.
func WrapError(op, name string, err error) error {
	if err == nil {
		return nil
	}
	return &PubSubError{Op: op, Name: name, Err: err}
}
