// Package allocationrepo provides data transfer objects and mapping functions
// for the allocation log. The log is the append-only record of decided
// courses backing the completed-courses reporting queries.
package allocationrepo

import (
	"time"

	"dispatch/internal/core/domain/model/course"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationDTO represents the database structure for persisting decided
// courses. Indexed by status and decision time to serve the per-day
// reporting queries efficiently.
type AllocationDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Pickup      string          `gorm:"not null"`
	Dropoff     string          `gorm:"not null"`
	Reward      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	AnnouncedAt time.Time       `gorm:"not null"`
	Status      int             `gorm:"index"`
	CourierID   *uuid.UUID      `gorm:"type:uuid;index"`
	DecidedAt   *time.Time      `gorm:"index"`
}

// TableName specifies the database table name for allocation entries.
func (AllocationDTO) TableName() string {
	return "allocations"
}

// fromDomain converts a course aggregate to its database representation.
func fromDomain(aggregate *course.Course) AllocationDTO {
	var courierID *uuid.UUID
	if id := aggregate.SelectedCourier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return AllocationDTO{
		ID:          aggregate.ID().Bytes(),
		Pickup:      aggregate.Pickup(),
		Dropoff:     aggregate.Dropoff(),
		Reward:      aggregate.Reward().Amount(),
		AnnouncedAt: aggregate.AnnouncedAt(),
		Status:      int(aggregate.Status()),
		CourierID:   courierID,
		DecidedAt:   aggregate.DecidedAt(),
	}
}

// toDomain converts a database DTO back to a course aggregate.
func toDomain(dto AllocationDTO) (*course.Course, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	reward, err := kernel.NewMoney(dto.Reward)
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	return course.RestoreCourse(
		id,
		dto.Pickup,
		dto.Dropoff,
		reward,
		dto.AnnouncedAt,
		course.Status(dto.Status),
		courierID,
		dto.DecidedAt,
	)
}
