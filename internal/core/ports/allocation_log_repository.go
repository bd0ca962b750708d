package ports

import (
	"context"

	"dispatch/internal/core/domain/model/course"
	"dispatch/internal/core/domain/model/kernel"
)

// AllocationLogRepository persists finished courses for reporting.
// The log is append-only: a course is written once, with the terminal
// status the protocol reached for it.
type AllocationLogRepository interface {
	// Add appends a decided course to the log. The course must be in a
	// terminal status.
	Add(ctx context.Context, aggregate *course.Course) error

	// GetConfirmedByDay retrieves all confirmed courses decided on the
	// given local day, ordered by decision time.
	GetConfirmedByDay(ctx context.Context, day kernel.Day) ([]*course.Course, error)
}
