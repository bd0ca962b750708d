package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/course"
	"dispatch/internal/core/domain/model/earnings"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// RecordConfirmedCourseCommandHandler persists the reporting side of a
// confirmed course. Both writes happen in one transaction: the course
// appended to the allocation log and the winner's daily earnings updated.
//
// Example:
//
//	handler := NewRecordConfirmedCourseCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Recording confirmed course failed: %v", err)
//	}
type RecordConfirmedCourseCommandHandler struct {
	uowFactory StatsUoWFactory
}

// NewRecordConfirmedCourseCommandHandler creates a handler for recording
// confirmed courses. Requires a StatsUoWFactory for transactional writes
// across the allocation log and earnings repositories.
func NewRecordConfirmedCourseCommandHandler(uowFactory StatsUoWFactory) RecordConfirmedCourseCommandHandler {
	return RecordConfirmedCourseCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle restores the confirmed course aggregate, appends it to the
// allocation log and credits the reward to the winner's record for the
// decision day. The earnings record is created on first confirmation.
func (h RecordConfirmedCourseCommandHandler) Handle(ctx context.Context, command RecordConfirmedCourseCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	courierID := command.CourierID()
	decidedAt := command.DecidedAt()
	aggregate, err := course.RestoreCourse(
		command.CourseID(),
		command.Pickup(),
		command.Dropoff(),
		command.Reward(),
		command.AnnouncedAt(),
		course.Confirmed,
		&courierID,
		&decidedAt,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.AllocationLogRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	earningsRepo := uow.EarningsRepository()
	day := kernel.DayFromTime(decidedAt)

	record, err := earningsRepo.Get(ctx, courierID, day)
	if errors.Is(err, errs.ErrObjectNotFound) {
		record, err = earnings.NewRecord(courierID, day)
	}
	if err != nil {
		return err
	}

	if err = record.Apply(command.Reward()); err != nil {
		return err
	}

	if err = earningsRepo.Save(ctx, record); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
