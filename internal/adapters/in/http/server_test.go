package http_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/course"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptyFeed struct{}

func (emptyFeed) Next(_ context.Context) (*course.Course, error) {
	return nil, errs.NewObjectNotFoundError("order", "next")
}

type noopAllocator struct{}

func (noopAllocator) Allocate(_ context.Context, _ *course.Course) error {
	return nil
}

func newTestServer(t *testing.T) *httpin.Server {
	t.Helper()

	member, err := courier.NewCourier(kernel.NewUUID(), "Auguste Tanguy")
	require.NoError(t, err)

	return httpin.NewServer(
		commands.NewAnnounceCourseCommandHandler(emptyFeed{}, noopAllocator{}),
		queries.GetCourierStatsQueryHandler{},
		queries.GetCompletedCoursesQueryHandler{},
		[]*courier.Courier{member},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func performRequest(server *httpin.Server, method, target string,
	handler func(echo.Context) error, params map[string]string,
) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	for name, value := range params {
		ctx.SetParamNames(name)
		ctx.SetParamValues(value)
	}
	_ = handler(ctx)
	return rec
}

func TestServer_GetCouriers(t *testing.T) {
	server := newTestServer(t)

	rec := performRequest(server, http.MethodGet, "/api/v1/couriers", server.GetCouriers, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Auguste Tanguy")
}

func TestServer_GetCourierStats_RejectsBadInput(t *testing.T) {
	server := newTestServer(t)

	t.Run("invalid_courier_id", func(t *testing.T) {
		rec := performRequest(server, http.MethodGet, "/api/v1/couriers/42/stats",
			server.GetCourierStats, map[string]string{"id": "42"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid_day", func(t *testing.T) {
		id := kernel.NewUUID().String()
		rec := performRequest(server, http.MethodGet,
			"/api/v1/couriers/"+id+"/stats?day=yesterday",
			server.GetCourierStats, map[string]string{"id": id})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_GetCompletedCourses_RejectsBadDay(t *testing.T) {
	server := newTestServer(t)

	rec := performRequest(server, http.MethodGet, "/api/v1/courses/completed?day=not-a-day",
		server.GetCompletedCourses, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_AnnounceCourse_Accepted(t *testing.T) {
	server := newTestServer(t)

	rec := performRequest(server, http.MethodPost, "/api/v1/courses", server.AnnounceCourse, nil)

	assert.Equal(t, http.StatusAccepted, rec.Code)
}
