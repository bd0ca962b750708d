package course

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the allocation state of a course.
// It implements a state machine with defined transitions so that every course
// reaches exactly one terminal outcome.
//
// State transitions:
//
//	Pending ──┬──> AwaitingConfirmation ──┬──> Confirmed
//	          │                           └──> Expired
//	          └──> NoInterest
//
// NoInterest, Confirmed and Expired are terminal; once reached, no further
// transition is allowed.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the course has been announced and the
	// bidding window is open or awaiting the coordinator's decision.
	Pending

	// NoInterest is the terminal status of a course whose bidding window
	// closed with an empty ledger snapshot.
	NoInterest

	// AwaitingConfirmation indicates a winner has been selected and must
	// acknowledge within the confirmation sub-window.
	AwaitingConfirmation

	// Confirmed is the terminal status of a course whose selected courier
	// acknowledged in time. Only confirmed courses contribute to earnings.
	Confirmed

	// Expired is the terminal status of a course whose selected courier
	// never acknowledged. The course is not re-offered to other bidders.
	Expired
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:              "Unknown",
		Pending:              "Pending",
		NoInterest:           "NoInterest",
		AwaitingConfirmation: "AwaitingConfirmation",
		Confirmed:            "Confirmed",
		Expired:              "Expired",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:              "Pending",
		NoInterest:           "NoInterest",
		AwaitingConfirmation: "AwaitingConfirmation",
		Confirmed:            "Confirmed",
		Expired:              "Expired",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == NoInterest || s == Confirmed || s == Expired
}

// ValidateCanHaveCourier validates the consistency between allocation status
// and winner selection: a course carries a selected courier if and only if
// its status is AwaitingConfirmation or Confirmed.
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && s != AwaitingConfirmation && s != Confirmed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a selected courier", s.String()),
		)
	}

	if !courier && (s == AwaitingConfirmation || s == Confirmed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no selected courier", s.String()),
		)
	}

	return nil
}

// Select transitions the status to AwaitingConfirmation.
//
// Valid transitions:
//   - Pending -> AwaitingConfirmation (winner chosen from the snapshot)
func (s Status) Select() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to select a courier from", s.String()),
		)
	}

	return AwaitingConfirmation, nil
}

// MarkNoInterest transitions the status to NoInterest.
//
// Valid transitions:
//   - Pending -> NoInterest (bidding window closed with zero bids)
func (s Status) MarkNoInterest() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to mark as no interest", s.String()),
		)
	}

	return NoInterest, nil
}

// Confirm transitions the status to Confirmed.
//
// Valid transitions:
//   - AwaitingConfirmation -> Confirmed (selected courier acknowledged in time)
func (s Status) Confirm() (Status, error) {
	if s != AwaitingConfirmation {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to confirm", s.String()),
		)
	}

	return Confirmed, nil
}

// Expire transitions the status to Expired.
//
// Valid transitions:
//   - AwaitingConfirmation -> Expired (confirmation sub-window elapsed)
func (s Status) Expire() (Status, error) {
	if s != AwaitingConfirmation {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to expire", s.String()),
		)
	}

	return Expired, nil
}
