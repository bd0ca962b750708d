package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrAnnounceCourseCommandIsNotConstructed = errors.New(
	"AnnounceCourseCommand must be created via NewAnnounceCourseCommand constructor",
)

// AnnounceCourseCommand triggers announcement of the next pending course.
// The course itself comes from the feed; the command carries no payload.
//
// Example:
//
//	cmd := NewAnnounceCourseCommand()
//	handler := NewAnnounceCourseCommandHandler(feed, coordinator)
//
//	// Run periodically to drain the feed one course at a time
//	if err := handler.Handle(ctx, cmd); errors.Is(err, ErrNoCourseAvailable) {
//	    log.Println("Feed exhausted")
//	}
type AnnounceCourseCommand struct {
	guard guard.ConstructorGuard
}

// NewAnnounceCourseCommand creates a command to announce the next course.
func NewAnnounceCourseCommand() AnnounceCourseCommand {
	return AnnounceCourseCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *AnnounceCourseCommand) Validate() error {
	return c.guard.Validate(ErrAnnounceCourseCommandIsNotConstructed)
}
