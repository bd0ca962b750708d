// Package allocation contains the actors of the course-allocation protocol:
// the coordinator running each course's state machine, the courier agents
// bidding on announcements, and the stats listener feeding reporting.
//
// All actors communicate through the broker and the bid ledger; none of
// them share memory. A course moves Pending -> AwaitingConfirmation ->
// Confirmed on the happy path, or ends in NoInterest or Expired.
package allocation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/course"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/protocol"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// ErrDuplicateCourse indicates an attempt to announce a course that is
// still in flight.
var ErrDuplicateCourse = errors.New("course is already being allocated")

// Coordinator owns the allocation state machine. It announces one course,
// waits out the bid window, selects the winner from the ledger snapshot
// and resolves the confirmation sub-window. Only the Coordinator mutates
// a course's status.
type Coordinator struct {
	ledger        ports.BidLedger
	broker        ports.Broker
	selector      services.BidSelector
	bidWindow     time.Duration
	confirmWindow time.Duration
	logger        *slog.Logger

	mu       sync.Mutex
	inFlight map[kernel.UUID]bool
}

// NewCoordinator creates a Coordinator with the given windows. Both windows
// must be positive.
func NewCoordinator(
	ledger ports.BidLedger,
	broker ports.Broker,
	bidWindow time.Duration,
	confirmWindow time.Duration,
	logger *slog.Logger,
) *Coordinator {
	return &Coordinator{
		ledger:        ledger,
		broker:        broker,
		selector:      services.NewBidSelector(),
		bidWindow:     bidWindow,
		confirmWindow: confirmWindow,
		logger:        logger.With("component", "coordinator"),
		inFlight:      make(map[kernel.UUID]bool),
	}
}

// Allocate runs one course through the full protocol and returns once the
// course reaches a terminal status. Announcing a course that is still in
// flight fails with ErrDuplicateCourse. Context cancellation aborts the
// wait and returns the context error; no outcome is published in that case.
func (c *Coordinator) Allocate(ctx context.Context, aggregate *course.Course) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if err := c.markInFlight(aggregate.ID()); err != nil {
		return err
	}
	defer c.clearInFlight(aggregate.ID())

	// Subscribe before the announcement goes out so a winner confirming
	// immediately after selection can never be missed.
	confirmations, cancel, err := c.broker.SubscribeConfirmations(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	frame, err := protocol.NewAnnouncement(aggregate).Encode()
	if err != nil {
		return err
	}
	if err = c.broker.PublishAnnouncement(ctx, frame); err != nil {
		return err
	}
	c.logger.Info("course announced",
		"course_id", aggregate.ID().String(),
		"reward", aggregate.Reward().String())

	if err = c.wait(ctx, c.bidWindow); err != nil {
		return err
	}

	snapshot, err := c.ledger.Snapshot(ctx, aggregate.ID())
	if err != nil {
		return err
	}
	if err = c.ledger.Clear(ctx, aggregate.ID()); err != nil {
		return err
	}

	if len(snapshot) == 0 {
		return c.resolveNoInterest(ctx, aggregate)
	}

	winner, err := c.selector.SelectWinner(snapshot)
	if err != nil {
		return err
	}
	if err = aggregate.Select(winner.CourierID(), time.Now()); err != nil {
		return err
	}
	if err = c.publishOutcome(ctx, aggregate); err != nil {
		return err
	}
	c.logger.Info("courier selected",
		"course_id", aggregate.ID().String(),
		"courier_id", winner.CourierID().String(),
		"bids", len(snapshot))

	return c.resolveConfirmation(ctx, aggregate, winner.CourierID(), confirmations)
}

func (c *Coordinator) resolveNoInterest(ctx context.Context, aggregate *course.Course) error {
	if err := aggregate.MarkNoInterest(time.Now()); err != nil {
		return err
	}
	if err := c.publishOutcome(ctx, aggregate); err != nil {
		return err
	}
	c.logger.Info("no interest", "course_id", aggregate.ID().String())
	return nil
}

// resolveConfirmation waits for the winner's acknowledgment. A confirmation
// from anyone else, or for another course, is a protocol no-op. When the
// sub-window elapses the winner forfeits and the course expires; the course
// is never re-offered to a runner-up.
func (c *Coordinator) resolveConfirmation(
	ctx context.Context,
	aggregate *course.Course,
	winnerID kernel.UUID,
	confirmations <-chan []byte,
) error {
	deadline := time.NewTimer(c.confirmWindow)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case frame, ok := <-confirmations:
			if !ok {
				return errors.New("confirmation channel closed")
			}

			confirmation, err := protocol.DecodeConfirmation(frame)
			if err != nil {
				c.logger.Warn("dropping malformed confirmation", "error", err)
				continue
			}
			if confirmation.CourseID != aggregate.ID().String() {
				continue
			}
			if confirmation.CourierID != winnerID.String() {
				c.logger.Warn("ignoring confirmation from non-selected courier",
					"course_id", confirmation.CourseID,
					"courier_id", confirmation.CourierID)
				continue
			}

			if err = aggregate.Confirm(time.Now()); err != nil {
				return err
			}
			if err = c.publishOutcome(ctx, aggregate); err != nil {
				return err
			}
			c.logger.Info("course confirmed",
				"course_id", aggregate.ID().String(),
				"courier_id", winnerID.String())
			return nil

		case <-deadline.C:
			if err := aggregate.Expire(time.Now()); err != nil {
				return err
			}
			if err := c.publishOutcome(ctx, aggregate); err != nil {
				return err
			}
			c.logger.Info("confirmation window elapsed, course expired",
				"course_id", aggregate.ID().String(),
				"courier_id", winnerID.String())
			return nil
		}
	}
}

func (c *Coordinator) publishOutcome(ctx context.Context, aggregate *course.Course) error {
	outcome, err := protocol.NewOutcome(aggregate)
	if err != nil {
		return err
	}
	frame, err := outcome.Encode()
	if err != nil {
		return err
	}
	return c.broker.PublishOutcome(ctx, frame)
}

func (c *Coordinator) wait(ctx context.Context, window time.Duration) error {
	timer := time.NewTimer(window)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Coordinator) markInFlight(id kernel.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight[id] {
		return ErrDuplicateCourse
	}
	c.inFlight[id] = true
	return nil
}

func (c *Coordinator) clearInFlight(id kernel.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.inFlight, id)
}
