// Package bid defines the courier's timestamped expression of interest in an
// announced course. A Bid is an immutable value object; at most one bid per
// (course, courier) pair is ever kept, which the ledger enforces with
// first-write-wins semantics.
package bid

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrBidIsNotConstructed is returned when validating a zero-value Bid.
var ErrBidIsNotConstructed = errors.New("Bid must be created via NewBid constructor")

// Bid records that a courier is willing to take a course, stamped with the
// courier's local clock at the moment the decision was made. The timestamp
// drives winner selection: the earliest bid wins, ties broken by the
// lexical order of the courier identifier.
type Bid struct {
	courseID  kernel.UUID
	courierID kernel.UUID
	bidAt     time.Time
	guard     guard.ConstructorGuard
}

// NewBid creates a validated Bid.
//
// The timestamp must be non-zero; it is taken from the bidding courier's
// local clock, not assigned by the ledger, so that arrival order at the
// ledger never influences who wins.
func NewBid(courseID kernel.UUID, courierID kernel.UUID, bidAt time.Time) (Bid, error) {
	if err := courseID.Validate(); err != nil {
		return Bid{}, fmt.Errorf("course id: %w", err)
	}
	if err := courierID.Validate(); err != nil {
		return Bid{}, fmt.Errorf("courier id: %w", err)
	}
	if bidAt.IsZero() {
		return Bid{}, errs.NewValueIsRequiredError("bidAt")
	}

	return Bid{
		courseID:  courseID,
		courierID: courierID,
		bidAt:     bidAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Bid was created through NewBid.
func (b Bid) Validate() error {
	return b.guard.Validate(ErrBidIsNotConstructed)
}

// CourseID returns the course the bid applies to.
func (b Bid) CourseID() kernel.UUID {
	return b.courseID
}

// CourierID returns the bidding courier.
func (b Bid) CourierID() kernel.UUID {
	return b.courierID
}

// BidAt returns the courier-local timestamp of the bid.
func (b Bid) BidAt() time.Time {
	return b.bidAt
}

// Earlier reports whether b should rank before other in winner selection:
// strictly earlier timestamp, or equal timestamps with a lexically smaller
// courier identifier. The ordering is total for distinct couriers, which
// makes selection deterministic regardless of ledger arrival order.
func (b Bid) Earlier(other Bid) bool {
	if b.bidAt.Equal(other.bidAt) {
		return b.courierID.String() < other.courierID.String()
	}
	return b.bidAt.Before(other.bidAt)
}
