package allocationrepo

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/course"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAllocationLogRepository implements AllocationLogRepository using GORM.
type GormAllocationLogRepository struct {
	db *gorm.DB
}

// NewGormAllocationLogRepository creates a new GORM allocation log repository.
func NewGormAllocationLogRepository(db *gorm.DB) *GormAllocationLogRepository {
	return &GormAllocationLogRepository{db: db}
}

// Add appends a decided course to the allocation log.
func (r *GormAllocationLogRepository) Add(ctx context.Context, aggregate *course.Course) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !aggregate.Status().IsTerminal() {
		return errs.NewValueIsInvalidError("status")
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetConfirmedByDay retrieves confirmed courses decided on the given local
// day, ordered by decision time.
func (r *GormAllocationLogRepository) GetConfirmedByDay(ctx context.Context, day kernel.Day) ([]*course.Course, error) {
	if err := day.Validate(); err != nil {
		return nil, err
	}

	dayStart := day.Start()
	dayEnd := dayStart.Add(24 * time.Hour)

	var dtos []AllocationDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND decided_at >= ? AND decided_at < ?", int(course.Confirmed), dayStart, dayEnd).
		Order("decided_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	courses := make([]*course.Course, 0, len(dtos))
	for _, dto := range dtos {
		c, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		courses = append(courses, c)
	}

	return courses, nil
}
