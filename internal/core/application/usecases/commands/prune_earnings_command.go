package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrPruneEarningsCommandIsNotConstructed = errors.New(
	"PruneEarningsCommand must be created via NewPruneEarningsCommand constructor",
)

// PruneEarningsCommand removes earnings records older than the retention
// cutoff. Records for days strictly before the cutoff day are deleted.
type PruneEarningsCommand struct { //nolint:recvcheck //using for validation
	cutoff kernel.Day

	guard guard.ConstructorGuard
}

// NewPruneEarningsCommand creates a validated prune command.
func NewPruneEarningsCommand(cutoff kernel.Day) (PruneEarningsCommand, error) {
	if err := cutoff.Validate(); err != nil {
		return PruneEarningsCommand{}, err
	}

	return PruneEarningsCommand{
		cutoff: cutoff,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PruneEarningsCommand) Validate() error {
	return c.guard.Validate(ErrPruneEarningsCommandIsNotConstructed)
}

// Cutoff returns the retention cutoff day. Records before it are pruned.
func (c PruneEarningsCommand) Cutoff() kernel.Day {
	return c.cutoff
}
