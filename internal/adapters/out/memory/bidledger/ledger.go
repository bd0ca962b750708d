// Package bidledger provides an in-memory implementation of the
// ports.BidLedger interface. First-write-wins per (course, courier):
// concurrent agents may race to record interest in the same course, and
// only the earliest recorded bid per courier counts.
package bidledger

import (
	"context"
	"sort"
	"sync"

	"dispatch/internal/core/domain/model/bid"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

var _ ports.BidLedger = (*Ledger)(nil)

// Ledger is a mutex-guarded bid store keyed by course, then courier.
type Ledger struct {
	mu    sync.Mutex
	bids  map[kernel.UUID]map[kernel.UUID]bid.Bid
	order map[kernel.UUID][]kernel.UUID
}

// NewLedger creates an empty in-memory bid ledger.
func NewLedger() *Ledger {
	return &Ledger{
		bids:  make(map[kernel.UUID]map[kernel.UUID]bid.Bid),
		order: make(map[kernel.UUID][]kernel.UUID),
	}
}

// Record stores the bid unless the courier already bid on the course.
func (l *Ledger) Record(_ context.Context, b bid.Bid) (bool, error) {
	if err := b.Validate(); err != nil {
		return false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	courseID := b.CourseID()
	byCourier, ok := l.bids[courseID]
	if !ok {
		byCourier = make(map[kernel.UUID]bid.Bid)
		l.bids[courseID] = byCourier
	}

	courierID := b.CourierID()
	if _, exists := byCourier[courierID]; exists {
		return false, nil
	}

	byCourier[courierID] = b
	l.order[courseID] = append(l.order[courseID], courierID)
	return true, nil
}

// Snapshot returns a copy of the course's bids sorted by the
// winner-selection rule: earliest bid first, courier ID breaking ties.
func (l *Ledger) Snapshot(_ context.Context, courseID kernel.UUID) ([]bid.Bid, error) {
	if err := courseID.Validate(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	byCourier := l.bids[courseID]
	snapshot := make([]bid.Bid, 0, len(byCourier))
	for _, courierID := range l.order[courseID] {
		snapshot = append(snapshot, byCourier[courierID])
	}

	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].Earlier(snapshot[j])
	})
	return snapshot, nil
}

// Clear drops every bid recorded for the course.
func (l *Ledger) Clear(_ context.Context, courseID kernel.UUID) error {
	if err := courseID.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.bids, courseID)
	delete(l.order, courseID)
	return nil
}
