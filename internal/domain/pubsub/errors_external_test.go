package pubsub_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kodflow/msgbus/internal/domain/pubsub"
)

func TestWrapError(t *testing.T) {
	t.Parallel()

	err := pubsub.WrapError("get_channel", "root.workers", pubsub.ErrUnknownChannel)
	assert.EqualError(t, err, "get_channel root.workers: pubsub: unknown channel")
	assert.True(t, errors.Is(err, pubsub.ErrUnknownChannel))

	var pubSubErr *pubsub.PubSubError
	assert.True(t, errors.As(err, &pubSubErr))
	assert.Equal(t, "get_channel", pubSubErr.Op)
	assert.Equal(t, "root.workers", pubSubErr.Name)
}

func TestWrapError_NilErr(t *testing.T) {
	t.Parallel()

	assert.NoError(t, pubsub.WrapError("op", "name", nil))
}

func TestWrapError_NoName(t *testing.T) {
	t.Parallel()

	err := pubsub.WrapError("create_channel", "", pubsub.ErrInvalidChannelName)
	assert.EqualError(t, err, "create_channel: pubsub: invalid channel name")
}
