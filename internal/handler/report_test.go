package handler

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every report endpoint must resolve as a route handler on the struct;
// in particular the user-dropdown endpoint must not collide with the
// Users repository field.
var _ = []echo.HandlerFunc{
	(&ReportHandler{}).List,
	(&ReportHandler{}).Export,
	(&ReportHandler{}).ListUsers,
}

func reportCtx(t *testing.T, query string) echo.Context {
	t.Helper()
	req := httptest.NewRequest("GET", "/v1/admin/reports?"+query, nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestFilterFromQuery(t *testing.T) {
	f, err := filterFromQuery(reportCtx(t, "room_id=room-1&user_id=user-1&start_date=2026-09-01&end_date=2026-09-30"))
	require.NoError(t, err)
	assert.Equal(t, "room-1", f.RoomID)
	assert.Equal(t, "user-1", f.UserID)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), f.StartDate)
	assert.Equal(t, time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC), f.EndDate)
}

func TestFilterFromQueryEmpty(t *testing.T) {
	f, err := filterFromQuery(reportCtx(t, ""))
	require.NoError(t, err)
	assert.Empty(t, f.RoomID)
	assert.Empty(t, f.UserID)
	assert.True(t, f.StartDate.IsZero())
	assert.True(t, f.EndDate.IsZero())
}

func TestFilterFromQueryRejectsBadDates(t *testing.T) {
	_, err := filterFromQuery(reportCtx(t, "start_date=01-09-2026"))
	assert.Error(t, err)

	_, err = filterFromQuery(reportCtx(t, "end_date=2026-09-31T00:00:00Z"))
	assert.Error(t, err)
}
