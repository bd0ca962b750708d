package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetCompletedCoursesQueryIsNotConstructed = errors.New(
		"GetCompletedCoursesQuery must be created via NewGetCompletedCoursesQuery constructor",
	)
)

// GetCompletedCoursesQuery retrieves the confirmed courses of one day,
// ordered by the time the confirmation was received.
type GetCompletedCoursesQuery struct { //nolint:recvcheck //using for validation
	day kernel.Day

	guard guard.ConstructorGuard
}

// NewGetCompletedCoursesQuery creates a validated query for the given day.
func NewGetCompletedCoursesQuery(day kernel.Day) (GetCompletedCoursesQuery, error) {
	if err := day.Validate(); err != nil {
		return GetCompletedCoursesQuery{}, err
	}

	return GetCompletedCoursesQuery{
		day:   day,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCompletedCoursesQuery) Validate() error {
	return q.guard.Validate(ErrGetCompletedCoursesQueryIsNotConstructed)
}

// Day returns the day the query covers.
func (q GetCompletedCoursesQuery) Day() kernel.Day {
	return q.day
}

// GetCompletedCoursesQueryResponse is the completed-course read model.
type GetCompletedCoursesQueryResponse struct {
	CourseID  kernel.UUID
	Pickup    string
	Dropoff   string
	Reward    string
	CourierID kernel.UUID
	DecidedAt time.Time
}
