package ports

import (
	"context"

	"dispatch/internal/core/domain/model/course"
)

// CourseFeed supplies the coordinator with courses to announce.
// Implementations draw from a backing source (a file of pending orders,
// an HTTP intake queue) and hand out one course per call.
type CourseFeed interface {
	// Next returns the next course to announce, or an object-not-found
	// error when the feed is exhausted. Each course is returned at most
	// once.
	Next(ctx context.Context) (*course.Course, error)
}
