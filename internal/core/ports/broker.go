package ports

import (
	"context"
)

// Broker is the publish/subscribe transport carrying protocol frames
// between the coordinator and the courier agents. Three logical channels
// exist: announcements flow coordinator to agents, outcomes flow
// coordinator to everyone, confirmations flow winner to coordinator.
//
// Subscribe returns a receive channel and a cancel function. The cancel
// function detaches the subscription; after it returns the channel is
// closed. Slow subscribers do not block publishers: frames that cannot
// be buffered are dropped.
type Broker interface {
	// PublishAnnouncement broadcasts an encoded course announcement to
	// all announcement subscribers.
	PublishAnnouncement(ctx context.Context, frame []byte) error

	// PublishOutcome broadcasts an encoded decision frame (selected,
	// no_interest, confirmed or expired) to all outcome subscribers.
	PublishOutcome(ctx context.Context, frame []byte) error

	// PublishConfirmation delivers an encoded winner confirmation to
	// all confirmation subscribers.
	PublishConfirmation(ctx context.Context, frame []byte) error

	// SubscribeAnnouncements registers a new announcement subscriber.
	SubscribeAnnouncements(ctx context.Context) (<-chan []byte, func(), error)

	// SubscribeOutcomes registers a new outcome subscriber.
	SubscribeOutcomes(ctx context.Context) (<-chan []byte, func(), error)

	// SubscribeConfirmations registers a new confirmation subscriber.
	SubscribeConfirmations(ctx context.Context) (<-chan []byte, func(), error)
}
