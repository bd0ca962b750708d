// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// EarningsRepoFactory provides access to the earnings repository within a transaction.
	EarningsRepoFactory interface {
		EarningsRepository() ports.EarningsRepository
	}

	// AllocationLogRepoFactory provides access to the allocation log within a transaction.
	AllocationLogRepoFactory interface {
		AllocationLogRepository() ports.AllocationLogRepository
	}

	// EarningsUoW manages transactions for earnings-only operations,
	// such as pruning records past the retention window.
	EarningsUoW interface {
		TxManager
		EarningsRepoFactory
	}

	// EarningsUoWFactory creates new earnings unit of work instances.
	EarningsUoWFactory interface {
		Create() EarningsUoW
	}

	// StatsUoW manages transactions spanning the allocation log and the
	// earnings records. A confirmed course writes to both, atomically.
	StatsUoW interface {
		TxManager
		AllocationLogRepoFactory
		EarningsRepoFactory
	}

	// StatsUoWFactory creates new unit of work instances for cross-repository operations.
	StatsUoWFactory interface {
		Create() StatsUoW
	}
)
