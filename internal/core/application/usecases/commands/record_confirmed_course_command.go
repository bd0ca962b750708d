package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrRecordConfirmedCourseCommandIsNotConstructed = errors.New(
		"RecordConfirmedCourseCommand must be created via NewRecordConfirmedCourseCommand constructor",
	)
)

// RecordConfirmedCourseCommand captures one confirmed course for reporting:
// the course goes into the allocation log and the winner's daily earnings
// grow by the reward. The command carries the full course snapshot because
// the caller assembles it from protocol frames, not from storage.
type RecordConfirmedCourseCommand struct { //nolint:recvcheck //using for validation
	courseID    kernel.UUID
	pickup      string
	dropoff     string
	reward      kernel.Money
	announcedAt time.Time
	courierID   kernel.UUID
	decidedAt   time.Time

	guard guard.ConstructorGuard
}

// NewRecordConfirmedCourseCommand creates a validated command from a
// confirmed course snapshot.
func NewRecordConfirmedCourseCommand(
	courseID kernel.UUID,
	pickup string,
	dropoff string,
	reward kernel.Money,
	announcedAt time.Time,
	courierID kernel.UUID,
	decidedAt time.Time,
) (RecordConfirmedCourseCommand, error) {
	command := RecordConfirmedCourseCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCourseID(courseID),
		command.setPickup(pickup),
		command.setDropoff(dropoff),
		command.setReward(reward),
		command.setAnnouncedAt(announcedAt),
		command.setCourierID(courierID),
		command.setDecidedAt(decidedAt),
	); err != nil {
		return RecordConfirmedCourseCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordConfirmedCourseCommand) Validate() error {
	return c.guard.Validate(ErrRecordConfirmedCourseCommandIsNotConstructed)
}

// CourseID returns the confirmed course identifier.
func (c RecordConfirmedCourseCommand) CourseID() kernel.UUID {
	return c.courseID
}

// Pickup returns the course pickup location.
func (c RecordConfirmedCourseCommand) Pickup() string {
	return c.pickup
}

// Dropoff returns the course dropoff location.
func (c RecordConfirmedCourseCommand) Dropoff() string {
	return c.dropoff
}

// Reward returns the course reward credited to the winner.
func (c RecordConfirmedCourseCommand) Reward() kernel.Money {
	return c.reward
}

// AnnouncedAt returns the time the course was announced.
func (c RecordConfirmedCourseCommand) AnnouncedAt() time.Time {
	return c.announcedAt
}

// CourierID returns the winning courier.
func (c RecordConfirmedCourseCommand) CourierID() kernel.UUID {
	return c.courierID
}

// DecidedAt returns the time the confirmation was received.
func (c RecordConfirmedCourseCommand) DecidedAt() time.Time {
	return c.decidedAt
}

func (c *RecordConfirmedCourseCommand) setCourseID(courseID kernel.UUID) error {
	if err := courseID.Validate(); err != nil {
		return err
	}

	c.courseID = courseID
	return nil
}

func (c *RecordConfirmedCourseCommand) setPickup(pickup string) error {
	if pickup == "" {
		return errs.NewValueIsRequiredError("pickup")
	}

	c.pickup = pickup
	return nil
}

func (c *RecordConfirmedCourseCommand) setDropoff(dropoff string) error {
	if dropoff == "" {
		return errs.NewValueIsRequiredError("dropoff")
	}

	c.dropoff = dropoff
	return nil
}

func (c *RecordConfirmedCourseCommand) setReward(reward kernel.Money) error {
	if err := reward.Validate(); err != nil {
		return err
	}

	c.reward = reward
	return nil
}

func (c *RecordConfirmedCourseCommand) setAnnouncedAt(announcedAt time.Time) error {
	if announcedAt.IsZero() {
		return errs.NewValueIsRequiredError("announcedAt")
	}

	c.announcedAt = announcedAt
	return nil
}

func (c *RecordConfirmedCourseCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *RecordConfirmedCourseCommand) setDecidedAt(decidedAt time.Time) error {
	if decidedAt.IsZero() {
		return errs.NewValueIsRequiredError("decidedAt")
	}

	c.decidedAt = decidedAt
	return nil
}
