package broker_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/memory/broker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveFrame(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case frame, ok := <-ch:
		require.True(t, ok, "channel closed before a frame arrived")
		return frame
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
		return nil
	}
}

func TestBroker_PublishAnnouncement(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers_to_all_subscribers", func(t *testing.T) {
		b := broker.NewBroker()
		defer b.Close()

		first, cancelFirst, err := b.SubscribeAnnouncements(ctx)
		require.NoError(t, err)
		defer cancelFirst()
		second, cancelSecond, err := b.SubscribeAnnouncements(ctx)
		require.NoError(t, err)
		defer cancelSecond()

		require.NoError(t, b.PublishAnnouncement(ctx, []byte(`{"type":"announcement"}`)))

		assert.Equal(t, []byte(`{"type":"announcement"}`), receiveFrame(t, first))
		assert.Equal(t, []byte(`{"type":"announcement"}`), receiveFrame(t, second))
	})

	t.Run("publish_without_subscribers_succeeds", func(t *testing.T) {
		b := broker.NewBroker()
		defer b.Close()

		require.NoError(t, b.PublishAnnouncement(ctx, []byte("frame")))
	})
}

func TestBroker_TopicsAreIsolated(t *testing.T) {
	ctx := context.Background()
	b := broker.NewBroker()
	defer b.Close()

	outcomes, cancel, err := b.SubscribeOutcomes(ctx)
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, b.PublishAnnouncement(ctx, []byte("announcement")))
	require.NoError(t, b.PublishConfirmation(ctx, []byte("confirmation")))
	require.NoError(t, b.PublishOutcome(ctx, []byte("outcome")))

	assert.Equal(t, []byte("outcome"), receiveFrame(t, outcomes))
	select {
	case frame := <-outcomes:
		t.Fatalf("unexpected extra frame on outcomes topic: %s", frame)
	default:
	}
}

func TestBroker_Cancel(t *testing.T) {
	ctx := context.Background()
	b := broker.NewBroker()
	defer b.Close()

	ch, cancel, err := b.SubscribeConfirmations(ctx)
	require.NoError(t, err)

	cancel()

	_, ok := <-ch
	assert.False(t, ok, "cancel should close the subscription channel")

	require.NoError(t, b.PublishConfirmation(ctx, []byte("frame")))

	// Cancel is idempotent.
	cancel()
}

func TestBroker_SlowSubscriberDropsFrames(t *testing.T) {
	ctx := context.Background()
	b := broker.NewBroker()
	defer b.Close()

	ch, cancel, err := b.SubscribeOutcomes(ctx)
	require.NoError(t, err)
	defer cancel()

	// Fill the buffer and push one more without draining.
	for i := 0; i < 65; i++ {
		require.NoError(t, b.PublishOutcome(ctx, []byte("frame")))
	}

	assert.Equal(t, uint64(1), b.Dropped())

	drained := 0
	for {
		select {
		case <-ch:
			drained++
		default:
			assert.Equal(t, 64, drained)
			return
		}
	}
}

func TestBroker_Close(t *testing.T) {
	ctx := context.Background()
	b := broker.NewBroker()

	ch, _, err := b.SubscribeAnnouncements(ctx)
	require.NoError(t, err)

	b.Close()

	_, ok := <-ch
	assert.False(t, ok, "close should close subscriber channels")

	assert.ErrorIs(t, b.PublishAnnouncement(ctx, []byte("frame")), broker.ErrBrokerClosed)
	_, _, err = b.SubscribeOutcomes(ctx)
	assert.ErrorIs(t, err, broker.ErrBrokerClosed)

	// Close is idempotent.
	b.Close()
}
