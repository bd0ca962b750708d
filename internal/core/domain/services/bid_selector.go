package services

import (
	"errors"

	"dispatch/internal/core/domain/model/bid"
)

// ErrNoBids is returned when selection runs on an empty snapshot.
// Callers treat it as the no-interest path, not a failure.
var ErrNoBids = errors.New("no bids")

// BidSelector is the domain service that picks the winning courier from a
// ledger snapshot.
//
// Selection rules:
//   - the earliest bid timestamp wins
//   - ties are broken by lexical order of the courier identifier
//
// The result is deterministic for a given set of bids regardless of the
// order bids arrived at the ledger or appear in the snapshot.
type BidSelector struct{}

// NewBidSelector creates a new BidSelector instance.
func NewBidSelector() BidSelector {
	return BidSelector{}
}

// SelectWinner returns the winning bid from the snapshot.
//
// Every bid is validated; an unconstructed bid in the snapshot indicates a
// ledger bug and fails selection. An empty snapshot returns ErrNoBids.
func (s BidSelector) SelectWinner(bids []bid.Bid) (bid.Bid, error) {
	if len(bids) == 0 {
		return bid.Bid{}, ErrNoBids
	}

	var (
		winner bid.Bid
		found  bool
	)

	for _, b := range bids {
		if err := b.Validate(); err != nil {
			return bid.Bid{}, err
		}

		if !found || b.Earlier(winner) {
			winner = b
			found = true
		}
	}

	return winner, nil
}
