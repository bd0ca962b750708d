package earningsrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/earnings"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEarningsRepository implements EarningsRepository using GORM.
type GormEarningsRepository struct {
	db *gorm.DB
}

// NewGormEarningsRepository creates a new GORM earnings repository.
func NewGormEarningsRepository(db *gorm.DB) *GormEarningsRepository {
	return &GormEarningsRepository{db: db}
}

// Get retrieves the earnings record for the courier and day.
//
// Inside a transaction the (courier, day) key is locked for the remainder
// of the transaction: an advisory lock serializes concurrent increments of
// the same key even when no row exists yet, and the row itself is read FOR
// UPDATE. Without this, two confirmations landing at once both read the
// same count and one increment is lost.
func (r *GormEarningsRepository) Get(ctx context.Context, courierID kernel.UUID, day kernel.Day) (*earnings.Record, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}
	if err := day.Validate(); err != nil {
		return nil, err
	}

	err := r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", courierID.String()+"/"+day.String()).Error
	if err != nil {
		return nil, err
	}

	var dto EarningsDTO
	err = r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "courier_id = ? AND day = ?", courierID.Bytes(), day.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("earnings", courierID.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// Save upserts the record keyed by (courier, day). Day keys lexically
// compare in chronological order, which PruneBefore relies on.
func (r *GormEarningsRepository) Save(ctx context.Context, record *earnings.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "courier_id"}, {Name: "day"}},
			DoUpdates: clause.AssignmentColumns([]string{"jobs_completed", "total_earned"}),
		}).
		Create(&dto).Error
}

// PruneBefore removes every record for days strictly before the given day.
func (r *GormEarningsRepository) PruneBefore(ctx context.Context, day kernel.Day) (int64, error) {
	if err := day.Validate(); err != nil {
		return 0, err
	}

	result := r.db.WithContext(ctx).
		Where("day < ?", day.String()).
		Delete(&EarningsDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
