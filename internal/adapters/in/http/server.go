package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Courier is the roster read model served over HTTP.
type Courier struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CourierStats is one courier's earnings for one day.
type CourierStats struct {
	CourierID     string `json:"courier_id"`
	Day           string `json:"day"`
	JobsCompleted int    `json:"jobs_completed"`
	TotalEarned   string `json:"total_earned"`
}

// CompletedCourse is one confirmed course of a day.
type CompletedCourse struct {
	ID        string    `json:"id"`
	Pickup    string    `json:"pickup_location"`
	Dropoff   string    `json:"dropoff_location"`
	Reward    string    `json:"reward"`
	CourierID string    `json:"courier_id"`
	DecidedAt time.Time `json:"decided_at"`
}

// Server exposes the dispatch read models and the manual announce trigger.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	announceCourseHandler commands.AnnounceCourseCommandHandler

	// Query handlers
	getCourierStatsHandler     queries.GetCourierStatsQueryHandler
	getCompletedCoursesHandler queries.GetCompletedCoursesQueryHandler

	roster []*courier.Courier
	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
// The roster is the static courier list loaded at startup.
func NewServer(
	announceCourseHandler commands.AnnounceCourseCommandHandler,
	getCourierStatsHandler queries.GetCourierStatsQueryHandler,
	getCompletedCoursesHandler queries.GetCompletedCoursesQueryHandler,
	roster []*courier.Courier,
	logger *slog.Logger,
) *Server {
	return &Server{
		announceCourseHandler:      announceCourseHandler,
		getCourierStatsHandler:     getCourierStatsHandler,
		getCompletedCoursesHandler: getCompletedCoursesHandler,
		roster:                     roster,
		logger:                     logger.With("component", "http_server"),
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/couriers", s.GetCouriers)
	e.GET("/api/v1/couriers/:id/stats", s.GetCourierStats)
	e.GET("/api/v1/courses/completed", s.GetCompletedCourses)
	e.POST("/api/v1/courses", s.AnnounceCourse)
}

// GetCouriers handles GET /api/v1/couriers - returns the courier roster.
func (s *Server) GetCouriers(ctx echo.Context) error {
	response := make([]Courier, len(s.roster))
	for i, member := range s.roster {
		response[i] = Courier{
			ID:   member.ID().String(),
			Name: member.Name(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetCourierStats handles GET /api/v1/couriers/:id/stats - returns one
// courier's earnings for the requested day (today when absent). A courier
// with no confirmed course that day reports zeroes, not an error.
func (s *Server) GetCourierStats(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid courier id",
		})
	}

	day, err := s.dayParam(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid day, expected YYYY-MM-DD",
		})
	}

	query, err := queries.NewGetCourierStatsQuery(courierID, day)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid stats query: " + err.Error(),
		})
	}

	stats, err := s.getCourierStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve courier stats",
		})
	}

	return ctx.JSON(http.StatusOK, CourierStats{
		CourierID:     stats.CourierID.String(),
		Day:           stats.Day.String(),
		JobsCompleted: stats.JobsCompleted,
		TotalEarned:   stats.TotalEarned,
	})
}

// GetCompletedCourses handles GET /api/v1/courses/completed - returns the
// confirmed courses of the requested day (today when absent).
func (s *Server) GetCompletedCourses(ctx echo.Context) error {
	day, err := s.dayParam(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid day, expected YYYY-MM-DD",
		})
	}

	query, err := queries.NewGetCompletedCoursesQuery(day)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid courses query: " + err.Error(),
		})
	}

	courses, err := s.getCompletedCoursesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve completed courses",
		})
	}

	response := make([]CompletedCourse, len(courses))
	for i, completed := range courses {
		response[i] = CompletedCourse{
			ID:        completed.CourseID.String(),
			Pickup:    completed.Pickup,
			Dropoff:   completed.Dropoff,
			Reward:    completed.Reward,
			CourierID: completed.CourierID.String(),
			DecidedAt: completed.DecidedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AnnounceCourse handles POST /api/v1/courses - announces the next pending
// course from the feed. The allocation runs in the background; the request
// returns as soon as the announcement is scheduled.
func (s *Server) AnnounceCourse(ctx echo.Context) error {
	cmd := commands.NewAnnounceCourseCommand()

	go func() {
		err := s.announceCourseHandler.Handle(context.Background(), cmd)
		switch {
		case errors.Is(err, commands.ErrNoCourseAvailable):
			s.logger.Info("No pending course to announce")
		case err != nil:
			s.logger.Error("Manual course announcement failed", "error", err)
		}
	}()

	return ctx.NoContent(http.StatusAccepted)
}

func (s *Server) dayParam(ctx echo.Context) (kernel.Day, error) {
	raw := ctx.QueryParam("day")
	if raw == "" {
		return kernel.Today(), nil
	}
	return kernel.DayFromString(raw)
}
