// Package earningsrepo provides data transfer objects and mapping functions
// for per-courier daily earnings persistence.
package earningsrepo

import (
	"dispatch/internal/core/domain/model/earnings"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EarningsDTO represents the database structure for persisting daily
// earnings records. The (courier_id, day) pair forms the composite primary
// key; day is the courier-local calendar day in "YYYY-MM-DD" form.
type EarningsDTO struct {
	CourierID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Day           string          `gorm:"type:varchar(10);primaryKey"`
	JobsCompleted int             `gorm:"not null"`
	TotalEarned   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

// TableName specifies the database table name for earnings records.
func (EarningsDTO) TableName() string {
	return "daily_earnings"
}

// fromDomain converts an earnings record to its database representation.
func fromDomain(record *earnings.Record) EarningsDTO {
	return EarningsDTO{
		CourierID:     record.CourierID().Bytes(),
		Day:           record.Day().String(),
		JobsCompleted: record.JobsCompleted(),
		TotalEarned:   record.TotalEarned().Amount(),
	}
}

// toDomain converts a database DTO back to an earnings record.
func toDomain(dto EarningsDTO) (*earnings.Record, error) {
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	day, err := kernel.DayFromString(dto.Day)
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.TotalEarned)
	if err != nil {
		return nil, err
	}

	return earnings.RestoreRecord(courierID, day, dto.JobsCompleted, total)
}
