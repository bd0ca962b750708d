package ports

import (
	"context"

	"dispatch/internal/core/domain/model/earnings"
	"dispatch/internal/core/domain/model/kernel"
)

// EarningsRepository persists per-courier, per-day earnings records.
type EarningsRepository interface {
	// Get retrieves the record for the courier and day. Returns an
	// object-not-found error when no course was confirmed for that pair.
	Get(ctx context.Context, courierID kernel.UUID, day kernel.Day) (*earnings.Record, error)

	// Save upserts the record keyed by (courier, day).
	Save(ctx context.Context, record *earnings.Record) error

	// PruneBefore removes every record for days strictly before the
	// given day. Keeps the store bounded to the retention window.
	PruneBefore(ctx context.Context, day kernel.Day) (int64, error)
}
