package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetCourierStatsQueryHandler reads daily earnings straight from the
// database. Uses direct SQL queries for optimal read performance in the
// CQRS pattern.
type GetCourierStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierStatsQueryHandler creates a handler for courier stats queries.
// Requires a GORM database connection for query execution.
func NewGetCourierStatsQueryHandler(db *gorm.DB) GetCourierStatsQueryHandler {
	return GetCourierStatsQueryHandler{db: db}
}

// Handle executes the stats query. A missing row means the courier earned
// nothing that day; the response reports zeros instead of failing.
func (h GetCourierStatsQueryHandler) Handle(
	ctx context.Context,
	query GetCourierStatsQuery,
) (GetCourierStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierStatsQueryResponse{}, err
	}

	response := GetCourierStatsQueryResponse{
		CourierID:   query.CourierID(),
		Day:         query.Day(),
		TotalEarned: kernel.ZeroMoney().String(),
	}

	var jobsCompleted int
	var totalEarned string

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			jobs_completed,
			total_earned::text
		FROM daily_earnings
		WHERE courier_id = ? AND day = ?
	`, query.CourierID().String(), query.Day().String()).Row()

	err := row.Scan(&jobsCompleted, &totalEarned)
	if errors.Is(err, sql.ErrNoRows) {
		return response, nil
	}
	if err != nil {
		return GetCourierStatsQueryResponse{}, err
	}

	earned, err := kernel.MoneyFromString(totalEarned)
	if err != nil {
		return GetCourierStatsQueryResponse{}, err
	}

	response.JobsCompleted = jobsCompleted
	response.TotalEarned = earned.String()
	return response, nil
}
