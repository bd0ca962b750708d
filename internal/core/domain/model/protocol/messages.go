// Package protocol defines the closed set of messages exchanged between the
// coordinator and courier agents, and their JSON wire encoding.
//
// Three frame families travel over the broker:
//   - Announcement: a course offered to all listening couriers
//   - Outcome: the coordinator's allocation decision (selected, no_interest,
//     expired, confirmed)
//   - Confirmation: the selected courier's acknowledgment
//
// Every frame carries a "type" discriminator. Decoding is strict: an unknown
// type or a missing required field yields ErrMalformedFrame, which listening
// loops log and drop without crashing.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/course"
	"dispatch/internal/core/domain/model/kernel"
)

// ErrMalformedFrame indicates an undecodable payload or a frame violating the
// schema. Listeners must treat it as log-and-drop, never as fatal.
var ErrMalformedFrame = errors.New("malformed frame")

// Type is the frame discriminator.
type Type string

const (
	TypeAnnouncement Type = "announcement"
	TypeSelected     Type = "selected"
	TypeNoInterest   Type = "no_interest"
	TypeExpired      Type = "expired"
	TypeConfirmed    Type = "confirmed"
	TypeConfirmation Type = "confirmation"
)

// outcomeTypes is the subset of types valid on the outcomes channel.
var outcomeTypes = map[Type]bool{
	TypeSelected:   true,
	TypeNoInterest: true,
	TypeExpired:    true,
	TypeConfirmed:  true,
}

// Announcement is the broadcast offering a course to all listening couriers.
type Announcement struct {
	Type        Type      `json:"type"`
	CourseID    string    `json:"course_id"`
	Pickup      string    `json:"pickup_location"`
	Dropoff     string    `json:"dropoff_location"`
	Reward      string    `json:"reward"`
	AnnouncedAt time.Time `json:"announced_at"`
}

// NewAnnouncement builds the wire form of a course announcement.
func NewAnnouncement(c *course.Course) Announcement {
	return Announcement{
		Type:        TypeAnnouncement,
		CourseID:    c.ID().String(),
		Pickup:      c.Pickup(),
		Dropoff:     c.Dropoff(),
		Reward:      c.Reward().String(),
		AnnouncedAt: c.AnnouncedAt(),
	}
}

// Encode serializes the announcement to its JSON wire form.
func (a Announcement) Encode() ([]byte, error) {
	return json.Marshal(a)
}

// RewardMoney parses the reward field back into a Money value.
func (a Announcement) RewardMoney() (kernel.Money, error) {
	return kernel.MoneyFromString(a.Reward)
}

// DecodeAnnouncement parses and validates an announcement frame.
func DecodeAnnouncement(data []byte) (Announcement, error) {
	var a Announcement
	if err := json.Unmarshal(data, &a); err != nil {
		return Announcement{}, fmt.Errorf("%w: %w", ErrMalformedFrame, err)
	}
	if a.Type != TypeAnnouncement {
		return Announcement{}, fmt.Errorf("%w: unexpected type %q", ErrMalformedFrame, a.Type)
	}
	if a.CourseID == "" || a.Pickup == "" || a.Dropoff == "" {
		return Announcement{}, fmt.Errorf("%w: announcement is missing required fields", ErrMalformedFrame)
	}
	if _, err := kernel.MoneyFromString(a.Reward); err != nil {
		return Announcement{}, fmt.Errorf("%w: bad reward: %w", ErrMalformedFrame, err)
	}
	if a.AnnouncedAt.IsZero() {
		return Announcement{}, fmt.Errorf("%w: announcement has no timestamp", ErrMalformedFrame)
	}
	return a, nil
}

// Outcome is the coordinator's broadcast of an allocation decision.
// CourierID is set only for selected and confirmed outcomes.
type Outcome struct {
	Type      Type      `json:"type"`
	CourseID  string    `json:"course_id"`
	CourierID string    `json:"courier_id,omitempty"`
	Reward    string    `json:"reward"`
	DecidedAt time.Time `json:"decided_at"`
}

// NewOutcome builds the wire form of a course's current allocation decision.
// The course must have left the Pending state.
func NewOutcome(c *course.Course) (Outcome, error) {
	var frameType Type
	switch c.Status() {
	case course.AwaitingConfirmation:
		frameType = TypeSelected
	case course.NoInterest:
		frameType = TypeNoInterest
	case course.Expired:
		frameType = TypeExpired
	case course.Confirmed:
		frameType = TypeConfirmed
	default:
		return Outcome{}, fmt.Errorf("no outcome frame for status %s", c.Status())
	}

	out := Outcome{
		Type:     frameType,
		CourseID: c.ID().String(),
		Reward:   c.Reward().String(),
	}
	if decidedAt := c.DecidedAt(); decidedAt != nil {
		out.DecidedAt = *decidedAt
	}
	if courierID := c.SelectedCourier(); courierID != nil {
		out.CourierID = courierID.String()
	}
	return out, nil
}

// Encode serializes the outcome to its JSON wire form.
func (o Outcome) Encode() ([]byte, error) {
	return json.Marshal(o)
}

// RewardMoney parses the reward field back into a Money value.
func (o Outcome) RewardMoney() (kernel.Money, error) {
	return kernel.MoneyFromString(o.Reward)
}

// DecodeOutcome parses and validates an outcome frame.
func DecodeOutcome(data []byte) (Outcome, error) {
	var o Outcome
	if err := json.Unmarshal(data, &o); err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrMalformedFrame, err)
	}
	if !outcomeTypes[o.Type] {
		return Outcome{}, fmt.Errorf("%w: unexpected type %q", ErrMalformedFrame, o.Type)
	}
	if o.CourseID == "" {
		return Outcome{}, fmt.Errorf("%w: outcome has no course id", ErrMalformedFrame)
	}

	selected := o.Type == TypeSelected || o.Type == TypeConfirmed
	if selected && o.CourierID == "" {
		return Outcome{}, fmt.Errorf("%w: %s outcome has no courier id", ErrMalformedFrame, o.Type)
	}
	if !selected && o.CourierID != "" {
		return Outcome{}, fmt.Errorf("%w: %s outcome carries a courier id", ErrMalformedFrame, o.Type)
	}
	return o, nil
}

// Confirmation is the selected courier's acknowledgment of a selection.
type Confirmation struct {
	Type        Type      `json:"type"`
	CourseID    string    `json:"course_id"`
	CourierID   string    `json:"courier_id"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// NewConfirmation builds the acknowledgment frame a courier sends after
// seeing itself selected.
func NewConfirmation(courseID kernel.UUID, courierID kernel.UUID, at time.Time) Confirmation {
	return Confirmation{
		Type:        TypeConfirmation,
		CourseID:    courseID.String(),
		CourierID:   courierID.String(),
		ConfirmedAt: at,
	}
}

// Encode serializes the confirmation to its JSON wire form.
func (c Confirmation) Encode() ([]byte, error) {
	return json.Marshal(c)
}

// DecodeConfirmation parses and validates a confirmation frame.
func DecodeConfirmation(data []byte) (Confirmation, error) {
	var c Confirmation
	if err := json.Unmarshal(data, &c); err != nil {
		return Confirmation{}, fmt.Errorf("%w: %w", ErrMalformedFrame, err)
	}
	if c.Type != TypeConfirmation {
		return Confirmation{}, fmt.Errorf("%w: unexpected type %q", ErrMalformedFrame, c.Type)
	}
	if c.CourseID == "" || c.CourierID == "" {
		return Confirmation{}, fmt.Errorf("%w: confirmation is missing required fields", ErrMalformedFrame)
	}
	return c, nil
}
