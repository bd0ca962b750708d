package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/course"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCompletedCoursesQueryHandler lists confirmed courses from the
// allocation log. Uses direct SQL queries for optimal read performance in
// the CQRS pattern.
type GetCompletedCoursesQueryHandler struct {
	db *gorm.DB
}

// NewGetCompletedCoursesQueryHandler creates a handler for completed-course queries.
// Requires a GORM database connection for query execution.
func NewGetCompletedCoursesQueryHandler(db *gorm.DB) GetCompletedCoursesQueryHandler {
	return GetCompletedCoursesQueryHandler{db: db}
}

// Handle executes the query. Only courses confirmed on the queried local
// day are returned, earliest decision first.
func (h GetCompletedCoursesQueryHandler) Handle(
	ctx context.Context,
	query GetCompletedCoursesQuery,
) ([]GetCompletedCoursesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	dayStart := query.Day().Start()
	dayEnd := dayStart.Add(24 * time.Hour)

	courses := make([]GetCompletedCoursesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			pickup,
			dropoff,
			reward::text,
			courier_id,
			decided_at
		FROM allocations
		WHERE status = ?
		  AND decided_at >= ? AND decided_at < ?
		ORDER BY decided_at
	`, int(course.Confirmed), dayStart, dayEnd).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetCompletedCoursesQueryResponse
		var id, courierID uuid.UUID
		var reward string

		err = rows.Scan(
			&id,
			&response.Pickup,
			&response.Dropoff,
			&reward,
			&courierID,
			&response.DecidedAt,
		)
		if err != nil {
			return nil, err
		}

		courseID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.CourseID = courseID

		winnerID, idErr := kernel.UUIDFromBytes(courierID[:])
		if idErr != nil {
			return nil, idErr
		}
		response.CourierID = winnerID

		rewardMoney, moneyErr := kernel.MoneyFromString(reward)
		if moneyErr != nil {
			return nil, moneyErr
		}
		response.Reward = rewardMoney.String()

		courses = append(courses, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}
