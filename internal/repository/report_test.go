package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReportQueryNoFilters(t *testing.T) {
	q, args := buildReportQuery(ReportFilter{})
	assert.NotContains(t, q, "WHERE")
	assert.Contains(t, q, "ORDER BY b.start_time DESC")
	assert.Empty(t, args)
}

func TestBuildReportQueryAllFilters(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	f := ReportFilter{
		RoomID:    "room-1",
		UserID:    "user-1",
		StartDate: start,
		EndDate:   end,
	}
	q, args := buildReportQuery(f)

	assert.Contains(t, q, "b.room_id = ?")
	assert.Contains(t, q, "b.user_id = ?")
	assert.Contains(t, q, "b.start_time >= ?")
	assert.Contains(t, q, "b.end_time <= ?")
	require.Len(t, args, 4)
	assert.Equal(t, "room-1", args[0])
	assert.Equal(t, "user-1", args[1])
	assert.Equal(t, start, args[2])
	// End date is inclusive of the whole day.
	assert.Equal(t, end.AddDate(0, 0, 1), args[3])
}

func TestBuildReportQuerySingleFilterHasNoDanglingAnd(t *testing.T) {
	q, args := buildReportQuery(ReportFilter{UserID: "user-1"})
	require.Len(t, args, 1)
	assert.Equal(t, 1, strings.Count(q, "WHERE"))
	assert.NotContains(t, q, "AND  ")
	// The JOIN clause legitimately mentions b.room_id; only the filter
	// fragment must be absent.
	assert.NotContains(t, q, "b.room_id = ?")
}
