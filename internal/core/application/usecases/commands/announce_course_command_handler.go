package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/course"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ErrNoCourseAvailable indicates the course feed has no pending course.
var ErrNoCourseAvailable = errors.New("no course available")

// Allocator runs the full allocation protocol for one course:
// announcement, bid window, winner selection and confirmation.
type Allocator interface {
	Allocate(ctx context.Context, aggregate *course.Course) error
}

// AnnounceCourseCommandHandler pulls the next course off the feed and hands
// it to the allocator. Courses are announced one at a time; the handler
// does not return until the course reaches a terminal status.
type AnnounceCourseCommandHandler struct {
	feed      ports.CourseFeed
	allocator Allocator
}

// NewAnnounceCourseCommandHandler creates a handler wired to the given
// course feed and allocator.
func NewAnnounceCourseCommandHandler(feed ports.CourseFeed, allocator Allocator) AnnounceCourseCommandHandler {
	return AnnounceCourseCommandHandler{
		feed:      feed,
		allocator: allocator,
	}
}

// Handle announces the next pending course and runs its allocation.
// Returns ErrNoCourseAvailable when the feed is exhausted.
func (h AnnounceCourseCommandHandler) Handle(ctx context.Context, command AnnounceCourseCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	aggregate, err := h.feed.Next(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoCourseAvailable
	}
	if err != nil {
		return err
	}

	return h.allocator.Allocate(ctx, aggregate)
}
