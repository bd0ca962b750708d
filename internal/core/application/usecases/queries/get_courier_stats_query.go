// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetCourierStatsQueryIsNotConstructed = errors.New(
		"GetCourierStatsQuery must be created via NewGetCourierStatsQuery constructor",
	)
)

// GetCourierStatsQuery retrieves one courier's earnings for one day.
// A courier with no confirmed course that day reports zero jobs and
// zero earnings rather than an error.
//
// Example:
//
//	query, err := NewGetCourierStatsQuery(courierID, kernel.Today())
//	if err != nil {
//	    return err
//	}
//
//	stats, err := NewGetCourierStatsQueryHandler(db).Handle(ctx, query)
//	fmt.Printf("%d jobs, %s earned\n", stats.JobsCompleted, stats.TotalEarned)
type GetCourierStatsQuery struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	day       kernel.Day

	guard guard.ConstructorGuard
}

// NewGetCourierStatsQuery creates a validated stats query.
func NewGetCourierStatsQuery(courierID kernel.UUID, day kernel.Day) (GetCourierStatsQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierStatsQuery{}, err
	}
	if err := day.Validate(); err != nil {
		return GetCourierStatsQuery{}, err
	}

	return GetCourierStatsQuery{
		courierID: courierID,
		day:       day,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierStatsQueryIsNotConstructed)
}

// CourierID returns the courier whose stats are requested.
func (q GetCourierStatsQuery) CourierID() kernel.UUID {
	return q.courierID
}

// Day returns the day the stats cover.
func (q GetCourierStatsQuery) Day() kernel.Day {
	return q.day
}

// GetCourierStatsQueryResponse is the per-courier, per-day read model.
// TotalEarned is formatted with two decimal places.
type GetCourierStatsQueryResponse struct {
	CourierID     kernel.UUID
	Day           kernel.Day
	JobsCompleted int
	TotalEarned   string
}
