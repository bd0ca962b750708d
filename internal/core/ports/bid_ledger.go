package ports

import (
	"context"

	"dispatch/internal/core/domain/model/bid"
	"dispatch/internal/core/domain/model/kernel"
)

// BidLedger records courier interest in announced courses.
// The ledger is the shared rendezvous between agents expressing interest
// and the coordinator selecting a winner.
type BidLedger interface {
	// Record stores a bid for the bid's course. Only the first bid per
	// (course, courier) pair is kept; repeats are ignored. Returns true
	// when the bid was newly recorded, false when it was a duplicate.
	Record(ctx context.Context, b bid.Bid) (bool, error)

	// Snapshot returns all bids recorded for the course so far, ordered
	// by the winner-selection rule (earliest first). The returned slice
	// is a copy; later writes do not affect it.
	Snapshot(ctx context.Context, courseID kernel.UUID) ([]bid.Bid, error)

	// Clear removes every bid recorded for the course. Called once per
	// course after the decision is made; bids never survive the course
	// they were placed on.
	Clear(ctx context.Context, courseID kernel.UUID) error
}
