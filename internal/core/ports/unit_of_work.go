package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// A confirmed course touches two tables: the allocation log and the
// courier's daily earnings. The unit of work keeps those writes atomic.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// AllocationLogRepository returns a repository bound to the current
	// transaction.
	AllocationLogRepository() AllocationLogRepository

	// EarningsRepository returns a repository bound to the current
	// transaction.
	EarningsRepository() EarningsRepository
}
