// Package courier contains the courier identity used across the allocation
// protocol. Couriers are external actors: the system never authenticates
// them, it only needs a stable identifier and a display name sourced from
// the roster.
package courier

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrCourierIsNotConstructed is returned when a Courier instance was not
// created through the NewCourier factory method.
var ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")

// Courier is the identity of a delivery courier: who can bid, win and earn.
// It carries no allocation state; bids and earnings reference couriers by ID.
type Courier struct {
	id            kernel.UUID
	name          string
	isConstructed bool
}

// NewCourier creates a validated Courier.
func NewCourier(id kernel.UUID, name string) (*Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	return &Courier{
		id:            id,
		name:          name,
		isConstructed: true,
	}, nil
}

// Validate ensures the Courier was created through NewCourier.
func (c *Courier) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCourierIsNotConstructed
	}
	return nil
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}
