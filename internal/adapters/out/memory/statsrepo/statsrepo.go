// Package statsrepo provides in-memory implementations of the earnings and
// allocation-log repositories together with a lock-based unit of work that
// serializes concurrent read-modify-write cycles. It backs unit tests and
// the single-process mode where no database is configured; the postgres
// adapters replace it in deployments.
package statsrepo

import (
	"context"
	"errors"
	"sort"
	"sync"

	"dispatch/internal/core/domain/model/course"
	"dispatch/internal/core/domain/model/earnings"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var _ ports.EarningsRepository = (*Store)(nil)
var _ ports.AllocationLogRepository = (*Store)(nil)

type earningsKey struct {
	courierID kernel.UUID
	day       string
}

// Store keeps daily earnings and the allocation log behind one mutex so a
// unit of work sees both move together. txMu serializes whole units of work
// from Begin to Commit or Rollback.
type Store struct {
	mu       sync.Mutex
	txMu     sync.Mutex
	earnings map[earningsKey]*earnings.Record
	log      []*course.Course
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		earnings: make(map[earningsKey]*earnings.Record),
	}
}

// Get retrieves the earnings record for the courier and day.
func (s *Store) Get(_ context.Context, courierID kernel.UUID, day kernel.Day) (*earnings.Record, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}
	if err := day.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.earnings[earningsKey{courierID: courierID, day: day.String()}]
	if !ok {
		return nil, errs.NewObjectNotFoundError("earnings", courierID)
	}

	restored, err := earnings.RestoreRecord(
		record.CourierID(), record.Day(), record.JobsCompleted(), record.TotalEarned())
	if err != nil {
		return nil, err
	}
	return restored, nil
}

// Save upserts the earnings record keyed by (courier, day).
func (s *Store) Save(_ context.Context, record *earnings.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := earningsKey{courierID: record.CourierID(), day: record.Day().String()}
	stored, err := earnings.RestoreRecord(
		record.CourierID(), record.Day(), record.JobsCompleted(), record.TotalEarned())
	if err != nil {
		return err
	}
	s.earnings[key] = stored
	return nil
}

// PruneBefore removes earnings records for days strictly before the given day.
func (s *Store) PruneBefore(_ context.Context, day kernel.Day) (int64, error) {
	if err := day.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var pruned int64
	for key, record := range s.earnings {
		if record.Day().Before(day) {
			delete(s.earnings, key)
			pruned++
		}
	}
	return pruned, nil
}

// Add appends a decided course to the allocation log.
func (s *Store) Add(_ context.Context, aggregate *course.Course) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !aggregate.Status().IsTerminal() {
		return errs.NewValueIsInvalidError("status")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.log = append(s.log, aggregate)
	return nil
}

// GetConfirmedByDay retrieves confirmed courses decided on the given day,
// ordered by decision time.
func (s *Store) GetConfirmedByDay(_ context.Context, day kernel.Day) ([]*course.Course, error) {
	if err := day.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*course.Course
	for _, c := range s.log {
		if c.Status() != course.Confirmed || c.DecidedAt() == nil {
			continue
		}
		if kernel.DayFromTime(*c.DecidedAt()).IsEqual(day) {
			matched = append(matched, c)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].DecidedAt().Before(*matched[j].DecidedAt())
	})
	return matched, nil
}

var _ ports.UnitOfWork = (*UnitOfWork)(nil)
var _ ports.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)

// ErrNoActiveTransaction is returned when Commit or Rollback is called on a
// unit of work that was never begun or was already finished.
var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWork serializes read-modify-write cycles over the in-memory store.
// Begin takes the store's transaction lock and Commit or Rollback releases
// it, so concurrent units of work cannot interleave between a Get and the
// matching Save. Writes are applied immediately; Rollback releases the lock
// without undoing them.
type UnitOfWork struct {
	store  *Store
	active bool
}

// UnitOfWorkFactory creates units of work sharing one store.
type UnitOfWorkFactory struct {
	store *Store
}

// NewUnitOfWorkFactory creates a factory over the given store.
func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create returns a new UnitOfWork over the shared store.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// Begin takes the store's transaction lock, blocking until any other active
// unit of work commits or rolls back.
func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.active {
		return nil
	}
	u.store.txMu.Lock()
	u.active = true
	return nil
}

// Commit releases the transaction lock.
func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	u.active = false
	u.store.txMu.Unlock()
	return nil
}

// Rollback releases the transaction lock. Writes already applied to the
// store are not undone.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	u.active = false
	u.store.txMu.Unlock()
	return nil
}

// AllocationLogRepository returns the shared store.
func (u *UnitOfWork) AllocationLogRepository() ports.AllocationLogRepository {
	return u.store
}

// EarningsRepository returns the shared store.
func (u *UnitOfWork) EarningsRepository() ports.EarningsRepository {
	return u.store
}
