// Package broker provides an in-process implementation of the ports.Broker
// interface on top of Go channels. Each subscription gets its own buffered
// channel; publishing fans the frame out to every live subscriber on the
// topic without ever blocking the publisher.
package broker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"dispatch/internal/core/ports"
)

// subscriberBuffer is the per-subscription channel capacity. A subscriber
// that falls further behind than this loses frames rather than stalling
// the coordinator.
const subscriberBuffer = 64

// ErrBrokerClosed is returned from publish and subscribe calls after Close.
var ErrBrokerClosed = errors.New("broker is closed")

var _ ports.Broker = (*Broker)(nil)

// Broker fans protocol frames out over three in-process topics.
type Broker struct {
	announcements *topic
	outcomes      *topic
	confirmations *topic
}

// NewBroker creates a Broker with empty topics.
func NewBroker() *Broker {
	return &Broker{
		announcements: newTopic(),
		outcomes:      newTopic(),
		confirmations: newTopic(),
	}
}

// PublishAnnouncement broadcasts the frame to all announcement subscribers.
func (b *Broker) PublishAnnouncement(_ context.Context, frame []byte) error {
	return b.announcements.publish(frame)
}

// PublishOutcome broadcasts the frame to all outcome subscribers.
func (b *Broker) PublishOutcome(_ context.Context, frame []byte) error {
	return b.outcomes.publish(frame)
}

// PublishConfirmation broadcasts the frame to all confirmation subscribers.
func (b *Broker) PublishConfirmation(_ context.Context, frame []byte) error {
	return b.confirmations.publish(frame)
}

// SubscribeAnnouncements registers a new announcement subscriber.
func (b *Broker) SubscribeAnnouncements(_ context.Context) (<-chan []byte, func(), error) {
	return b.announcements.subscribe()
}

// SubscribeOutcomes registers a new outcome subscriber.
func (b *Broker) SubscribeOutcomes(_ context.Context) (<-chan []byte, func(), error) {
	return b.outcomes.subscribe()
}

// SubscribeConfirmations registers a new confirmation subscriber.
func (b *Broker) SubscribeConfirmations(_ context.Context) (<-chan []byte, func(), error) {
	return b.confirmations.subscribe()
}

// Dropped returns the total number of frames discarded because a
// subscriber's buffer was full.
func (b *Broker) Dropped() uint64 {
	return b.announcements.dropped.Load() +
		b.outcomes.dropped.Load() +
		b.confirmations.dropped.Load()
}

// Close shuts every topic down. All subscriber channels are closed and
// later publish or subscribe calls fail with ErrBrokerClosed.
func (b *Broker) Close() {
	b.announcements.close()
	b.outcomes.close()
	b.confirmations.close()
}

type topic struct {
	mu      sync.Mutex
	subs    map[uint64]chan []byte
	nextID  uint64
	closed  bool
	dropped atomic.Uint64
}

func newTopic() *topic {
	return &topic{
		subs: make(map[uint64]chan []byte),
	}
}

func (t *topic) publish(frame []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrBrokerClosed
	}

	for _, ch := range t.subs {
		select {
		case ch <- frame:
		default:
			t.dropped.Add(1)
		}
	}
	return nil
}

func (t *topic) subscribe() (<-chan []byte, func(), error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil, nil, ErrBrokerClosed
	}

	id := t.nextID
	t.nextID++
	ch := make(chan []byte, subscriberBuffer)
	t.subs[id] = ch

	cancel := func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if sub, ok := t.subs[id]; ok {
			delete(t.subs, id)
			close(sub)
		}
	}
	return ch, cancel, nil
}

func (t *topic) close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.closed = true
	for id, ch := range t.subs {
		delete(t.subs, id)
		close(ch)
	}
}
