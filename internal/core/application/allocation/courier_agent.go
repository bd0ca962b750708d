package allocation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/bid"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/protocol"
	"dispatch/internal/core/ports"
)

// CourierAgent simulates one courier participating in the protocol. It
// listens for announcements, bids according to its policy and confirms
// courses it wins.
//
// The agent holds two separate broker subscriptions, one for announcements
// and one for outcomes, so that emitting a bid or a confirmation can never
// starve its own listening loop.
type CourierAgent struct {
	self   *courier.Courier
	ledger ports.BidLedger
	broker ports.Broker
	policy BidPolicy
	logger *slog.Logger

	mu     sync.Mutex
	placed map[string]bool
}

// NewCourierAgent creates an agent for the given courier identity.
func NewCourierAgent(
	self *courier.Courier,
	ledger ports.BidLedger,
	broker ports.Broker,
	policy BidPolicy,
	logger *slog.Logger,
) (*CourierAgent, error) {
	if err := self.Validate(); err != nil {
		return nil, err
	}

	return &CourierAgent{
		self:   self,
		ledger: ledger,
		broker: broker,
		policy: policy,
		logger: logger.With("component", "courier_agent", "courier_id", self.ID().String()),
		placed: make(map[string]bool),
	}, nil
}

// ID returns the agent's courier identifier.
func (a *CourierAgent) ID() kernel.UUID {
	return a.self.ID()
}

// Run consumes announcements and outcomes until the context is cancelled.
// Frame handling is isolated per message: a malformed or unprocessable
// frame is logged and dropped, never fatal to the loop.
func (a *CourierAgent) Run(ctx context.Context) error {
	announcements, cancelAnnouncements, err := a.broker.SubscribeAnnouncements(ctx)
	if err != nil {
		return err
	}
	defer cancelAnnouncements()

	outcomes, cancelOutcomes, err := a.broker.SubscribeOutcomes(ctx)
	if err != nil {
		return err
	}
	defer cancelOutcomes()

	a.logger.Info("courier agent started", "name", a.self.Name())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case frame, ok := <-announcements:
			if !ok {
				return nil
			}
			a.handleAnnouncement(ctx, frame)

		case frame, ok := <-outcomes:
			if !ok {
				return nil
			}
			a.handleOutcome(ctx, frame)
		}
	}
}

func (a *CourierAgent) handleAnnouncement(ctx context.Context, frame []byte) {
	announcement, err := protocol.DecodeAnnouncement(frame)
	if err != nil {
		a.logger.Warn("dropping malformed announcement", "error", err)
		return
	}

	if !a.policy.ShouldBid(announcement) {
		return
	}
	if a.hasPlaced(announcement.CourseID) {
		return
	}

	courseID, err := kernel.UUIDFromString(announcement.CourseID)
	if err != nil {
		a.logger.Warn("dropping announcement with bad course id", "error", err)
		return
	}

	placed, err := bid.NewBid(courseID, a.self.ID(), time.Now())
	if err != nil {
		a.logger.Warn("building bid failed", "error", err)
		return
	}

	recorded, err := a.ledger.Record(ctx, placed)
	if err != nil {
		// Not marked as placed: a re-announcement may retry the bid.
		a.logger.Warn("recording bid failed", "course_id", announcement.CourseID, "error", err)
		return
	}
	a.markPlaced(announcement.CourseID)
	if recorded {
		a.logger.Info("bid placed", "course_id", announcement.CourseID)
	}
}

func (a *CourierAgent) handleOutcome(ctx context.Context, frame []byte) {
	outcome, err := protocol.DecodeOutcome(frame)
	if err != nil {
		a.logger.Warn("dropping malformed outcome", "error", err)
		return
	}

	// Any decision on the course ends this agent's involvement in it.
	defer a.clearPlaced(outcome.CourseID)

	if outcome.Type != protocol.TypeSelected || outcome.CourierID != a.self.ID().String() {
		return
	}

	courseID, err := kernel.UUIDFromString(outcome.CourseID)
	if err != nil {
		a.logger.Warn("dropping outcome with bad course id", "error", err)
		return
	}

	confirmation := protocol.NewConfirmation(courseID, a.self.ID(), time.Now())
	encoded, err := confirmation.Encode()
	if err != nil {
		a.logger.Warn("encoding confirmation failed", "error", err)
		return
	}
	if err = a.broker.PublishConfirmation(ctx, encoded); err != nil {
		a.logger.Warn("publishing confirmation failed", "course_id", outcome.CourseID, "error", err)
		return
	}
	a.logger.Info("selection confirmed", "course_id", outcome.CourseID)
}

// hasPlaced reports whether this agent already recorded a bid on the course.
// Announcements are handled one at a time, so check-then-mark is safe; the
// ledger deduplicates in any case.
func (a *CourierAgent) hasPlaced(courseID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.placed[courseID]
}

func (a *CourierAgent) markPlaced(courseID string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.placed[courseID] = true
}

func (a *CourierAgent) clearPlaced(courseID string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.placed, courseID)
}
