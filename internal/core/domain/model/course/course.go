package course

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrCourseIsNotConstructed is returned when a Course instance was not
	// created through NewCourse or RestoreCourse.
	ErrCourseIsNotConstructed = errors.New("Course must be created via NewCourse constructor")
)

// Course is the aggregate root of the allocation protocol. It carries the
// announcement data (immutable once published) and owns the allocation
// outcome: status, selected courier and decision time. Only the Coordinator
// mutates a course after publication; every other component reads it.
//
// Invariants:
//   - id, pickup and dropoff are set and valid
//   - reward is a valid non-negative Money
//   - exactly one terminal status is ever reached
//   - selected courier is set iff status is AwaitingConfirmation or Confirmed
type Course struct {
	// id is the unique, stable identifier of the course
	id kernel.UUID

	// pickup is the restaurant address the courier collects from
	pickup string

	// dropoff is the client address the courier delivers to
	dropoff string

	// reward is what the courier earns on confirmation
	reward kernel.Money

	// announcedAt is when the coordinator published the announcement
	announcedAt time.Time

	// status is the current allocation state
	status Status

	// selectedCourierID is the winning courier (nil until selection)
	selectedCourierID *kernel.UUID

	// decidedAt is when the last status transition happened (nil while Pending)
	decidedAt *time.Time

	// isConstructed ensures the course was created via a constructor
	isConstructed bool
}

// NewCourse creates a ready-to-announce Course in Pending status.
//
// Parameters:
//   - id: unique course identifier
//   - pickup: pickup location (must be non-empty)
//   - dropoff: dropoff location (must be non-empty)
//   - reward: non-negative courier reward
//   - announcedAt: announcement timestamp (must be non-zero)
func NewCourse(
	id kernel.UUID,
	pickup string,
	dropoff string,
	reward kernel.Money,
	announcedAt time.Time,
) (*Course, error) {
	c := &Course{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setPickup(pickup),
		c.setDropoff(dropoff),
		c.setReward(reward),
		c.setAnnouncedAt(announcedAt),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourse reconstructs a Course from persistence, including its
// allocation outcome. The status/courier consistency invariant is enforced,
// so a stored row that drifted from the protocol rules fails to load.
func RestoreCourse(
	id kernel.UUID,
	pickup string,
	dropoff string,
	reward kernel.Money,
	announcedAt time.Time,
	status Status,
	selectedCourierID *kernel.UUID,
	decidedAt *time.Time,
) (*Course, error) {
	c, err := NewCourse(id, pickup, dropoff, reward, announcedAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if err = status.ValidateCanHaveCourier(selectedCourierID != nil); err != nil {
		return nil, err
	}
	if selectedCourierID != nil {
		if err = selectedCourierID.Validate(); err != nil {
			return nil, err
		}
	}

	c.status = status
	c.selectedCourierID = selectedCourierID
	c.decidedAt = decidedAt
	return c, nil
}

// Validate ensures the Course was created through a constructor.
func (c *Course) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCourseIsNotConstructed
	}

	return nil
}

// IsEqual compares two courses by their unique identifiers.
func (c *Course) IsEqual(other *Course) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the course's unique identifier.
func (c *Course) ID() kernel.UUID {
	return c.id
}

// Pickup returns the pickup location.
func (c *Course) Pickup() string {
	return c.pickup
}

// Dropoff returns the dropoff location.
func (c *Course) Dropoff() string {
	return c.dropoff
}

// Reward returns the courier reward.
func (c *Course) Reward() kernel.Money {
	return c.reward
}

// AnnouncedAt returns the announcement timestamp.
func (c *Course) AnnouncedAt() time.Time {
	return c.announcedAt
}

// Status returns the current allocation status.
func (c *Course) Status() Status {
	return c.status
}

// SelectedCourier returns the winning courier's ID.
// Returns nil until a courier has been selected.
func (c *Course) SelectedCourier() *kernel.UUID {
	return c.selectedCourierID
}

// DecidedAt returns when the last status transition happened.
// Returns nil while the course is still Pending.
func (c *Course) DecidedAt() *time.Time {
	return c.decidedAt
}

// Select records the winning courier and moves the course to
// AwaitingConfirmation. Allowed only from Pending.
func (c *Course) Select(courierID kernel.UUID, at time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	newStatus, err := c.status.Select()
	if err != nil {
		return err
	}

	c.status = newStatus
	c.selectedCourierID = &courierID
	c.decidedAt = &at
	return nil
}

// MarkNoInterest closes the course with the NoInterest terminal status.
// Allowed only from Pending, and only with an empty snapshot: selecting on
// an empty snapshot is not an error but this path.
func (c *Course) MarkNoInterest(at time.Time) error {
	newStatus, err := c.status.MarkNoInterest()
	if err != nil {
		return err
	}

	c.status = newStatus
	c.decidedAt = &at
	return nil
}

// Confirm closes the course with the Confirmed terminal status after the
// selected courier acknowledged within the confirmation sub-window.
func (c *Course) Confirm(at time.Time) error {
	newStatus, err := c.status.Confirm()
	if err != nil {
		return err
	}

	c.status = newStatus
	c.decidedAt = &at
	return nil
}

// Expire closes the course with the Expired terminal status after the
// confirmation sub-window elapsed without an acknowledgment. The forfeit
// revokes the selection, so the selected courier is cleared; the course is
// never re-offered to the runner-up.
func (c *Course) Expire(at time.Time) error {
	newStatus, err := c.status.Expire()
	if err != nil {
		return err
	}

	c.status = newStatus
	c.selectedCourierID = nil
	c.decidedAt = &at
	return nil
}

// setID validates and sets the course identifier.
func (c *Course) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

// setPickup validates and sets the pickup location.
func (c *Course) setPickup(pickup string) error {
	if pickup == "" {
		return errs.NewValueIsRequiredError("pickup")
	}
	c.pickup = pickup
	return nil
}

// setDropoff validates and sets the dropoff location.
func (c *Course) setDropoff(dropoff string) error {
	if dropoff == "" {
		return errs.NewValueIsRequiredError("dropoff")
	}
	c.dropoff = dropoff
	return nil
}

// setReward validates and sets the courier reward.
func (c *Course) setReward(reward kernel.Money) error {
	if err := reward.Validate(); err != nil {
		return err
	}
	c.reward = reward
	return nil
}

// setAnnouncedAt validates and sets the announcement timestamp.
func (c *Course) setAnnouncedAt(announcedAt time.Time) error {
	if announcedAt.IsZero() {
		return errs.NewValueIsRequiredError("announcedAt")
	}
	c.announcedAt = announcedAt
	return nil
}
