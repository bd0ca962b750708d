// Package earnings contains the per-courier, per-day earnings aggregate.
//
// A Record accumulates confirmed course rewards for one courier on one local
// calendar day. Counters only grow within a day; records age out after the
// retention window so the store stays bounded.
package earnings

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrRecordIsNotConstructed is returned when a Record instance was not
// created through NewRecord or RestoreRecord.
var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

// Record is the earnings aggregate keyed by (courier, day).
// Mutations happen only through Apply, which keeps both counters moving
// together: one confirmed course always means one more completed job and
// one reward added to the total.
type Record struct {
	courierID     kernel.UUID
	day           kernel.Day
	jobsCompleted int
	totalEarned   kernel.Money
	isConstructed bool
}

// NewRecord creates an empty Record for the given courier and day.
func NewRecord(courierID kernel.UUID, day kernel.Day) (*Record, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}
	if err := day.Validate(); err != nil {
		return nil, err
	}

	return &Record{
		courierID:     courierID,
		day:           day,
		jobsCompleted: 0,
		totalEarned:   kernel.ZeroMoney(),
		isConstructed: true,
	}, nil
}

// RestoreRecord reconstructs a Record from persistence.
func RestoreRecord(
	courierID kernel.UUID,
	day kernel.Day,
	jobsCompleted int,
	totalEarned kernel.Money,
) (*Record, error) {
	r, err := NewRecord(courierID, day)
	if err != nil {
		return nil, err
	}

	if jobsCompleted < 0 {
		return nil, errs.NewValueIsInvalidError("jobsCompleted")
	}
	if err = totalEarned.Validate(); err != nil {
		return nil, err
	}

	r.jobsCompleted = jobsCompleted
	r.totalEarned = totalEarned
	return r, nil
}

// Validate ensures the Record was created through a constructor.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// CourierID returns the courier the record belongs to.
func (r *Record) CourierID() kernel.UUID {
	return r.courierID
}

// Day returns the calendar day the record covers.
func (r *Record) Day() kernel.Day {
	return r.day
}

// JobsCompleted returns the number of confirmed courses for the day.
func (r *Record) JobsCompleted() int {
	return r.jobsCompleted
}

// TotalEarned returns the accumulated rewards for the day.
func (r *Record) TotalEarned() kernel.Money {
	return r.totalEarned
}

// Apply credits one confirmed course: increments the completed counter and
// adds the reward to the total. The reward must be a valid Money value.
func (r *Record) Apply(reward kernel.Money) error {
	if err := r.Validate(); err != nil {
		return err
	}

	total, err := r.totalEarned.Add(reward)
	if err != nil {
		return err
	}

	r.jobsCompleted++
	r.totalEarned = total
	return nil
}
