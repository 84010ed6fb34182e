package pubsub_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodflow/msgbus/internal/domain/pubsub"
)

func TestChannel_SendToDirectSubscriber(t *testing.T) {
	t.Parallel()

	root := pubsub.NewRootChannel("root", ".", noopDispatcher(), zeroThread, alwaysRunning)
	rec := &recordingSubscriber{}
	root.Subscribe(rec, false, false, pubsub.AnyThread)

	root.Send(1)
	assert.Equal(t, []any{1}, rec.received)
	assert.Equal(t, uint64(1), root.MessageCount())
}

func TestChannel_WildcardSubtreeDelivery(t *testing.T) {
	t.Parallel()

	root := pubsub.NewRootChannel("root", ".", noopDispatcher(), zeroThread, alwaysRunning)
	child := pubsub.NewChildChannel("root.workers", root, noopDispatcher(), zeroThread, alwaysRunning)
	grandchild := pubsub.NewChildChannel("root.workers.pool1", child, noopDispatcher(), zeroThread, alwaysRunning)

	rec := &recordingSubscriber{}
	root.Subscribe(rec, true, false, pubsub.AnyThread)

	grandchild.Send("deep")
	assert.Equal(t, []any{"deep"}, rec.received)
}

func TestChannel_NonWildcardSubscriberMissesSubtree(t *testing.T) {
	t.Parallel()

	root := pubsub.NewRootChannel("root", ".", noopDispatcher(), zeroThread, alwaysRunning)
	child := pubsub.NewChildChannel("root.workers", root, noopDispatcher(), zeroThread, alwaysRunning)

	rec := &recordingSubscriber{}
	root.Subscribe(rec, false, false, pubsub.AnyThread)

	child.Send("nested")
	assert.Empty(t, rec.received)
}

func TestChannel_DedupAcrossOverlappingSubscriptions(t *testing.T) {
	t.Parallel()

	root := pubsub.NewRootChannel("root", ".", noopDispatcher(), zeroThread, alwaysRunning)
	child := pubsub.NewChildChannel("root.workers", root, noopDispatcher(), zeroThread, alwaysRunning)

	shared := &identifiableSubscriber{uid: "listener-1"}
	root.Subscribe(shared, true, false, pubsub.AnyThread)
	child.Subscribe(shared, false, false, pubsub.AnyThread)

	child.Send("once")
	assert.Equal(t, []any{"once"}, shared.received)
}

func TestChannel_SendOnStoppedBusIsSilentNoOp(t *testing.T) {
	t.Parallel()

	running := false
	root := pubsub.NewRootChannel("root", ".", noopDispatcher(), zeroThread, func() bool { return running })
	rec := &recordingSubscriber{}
	root.Subscribe(rec, false, false, pubsub.AnyThread)

	root.Send("dropped")
	assert.Empty(t, rec.received)
	assert.Equal(t, uint64(0), root.MessageCount())
}

func TestChannel_SyncPanicAbortsRemainingSubscribers(t *testing.T) {
	t.Parallel()

	root := pubsub.NewRootChannel("root", ".", noopDispatcher(), zeroThread, alwaysRunning)
	rec := &recordingSubscriber{}

	root.Subscribe(pubsub.SubscriberFunc(func(msg any) { panic("boom") }), false, false, pubsub.AnyThread)
	root.Subscribe(rec, false, false, pubsub.AnyThread)

	assert.Panics(t, func() { root.Send("x") })
	assert.Empty(t, rec.received)
}

func TestChannel_CancelRemovesSubscription(t *testing.T) {
	t.Parallel()

	root := pubsub.NewRootChannel("root", ".", noopDispatcher(), zeroThread, alwaysRunning)
	rec := &recordingSubscriber{}
	sub := root.Subscribe(rec, false, false, pubsub.AnyThread)

	sub.Cancel()
	root.Send("after-cancel")
	assert.Empty(t, rec.received)
}

func TestChannel_ChildChannelsSortedByName(t *testing.T) {
	t.Parallel()

	root := pubsub.NewRootChannel("root", ".", noopDispatcher(), zeroThread, alwaysRunning)
	pubsub.NewChildChannel("root.zeta", root, noopDispatcher(), zeroThread, alwaysRunning)
	pubsub.NewChildChannel("root.alpha", root, noopDispatcher(), zeroThread, alwaysRunning)

	children := root.ChildChannels()
	require.Len(t, children, 2)
	assert.Equal(t, "root.alpha", children[0].Name())
	assert.Equal(t, "root.zeta", children[1].Name())
}

func TestChannel_AsyncSubscriptionUsesDispatcher(t *testing.T) {
	t.Parallel()

	var enqueued []any
	dispatcher := dispatcherFunc(func(sub *pubsub.Subscription, msg any) {
		enqueued = append(enqueued, msg)
		sub.Deliver(msg)
	})

	root := pubsub.NewRootChannel("root", ".", dispatcher, zeroThread, alwaysRunning)
	rec := &recordingSubscriber{}
	root.Subscribe(rec, false, true, pubsub.AnyThread)

	root.Send("async")
	assert.Equal(t, []any{"async"}, enqueued)
	assert.Equal(t, []any{"async"}, rec.received)
}
