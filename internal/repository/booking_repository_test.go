package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivaldez/meeting-room-reservation/internal/model"
)

func TestStatusPlaceholders(t *testing.T) {
	in, args := statusPlaceholders([]model.BookingStatus{model.StatusPending, model.StatusApproved})
	assert.Equal(t, "?,?", in)
	assert.Equal(t, []any{"PENDING", "APPROVED"}, args)
}

func TestBlockingQueryShape(t *testing.T) {
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	q, args := blockingQuery("room-1", start, end, []model.BookingStatus{model.StatusPending}, "", false)
	assert.Contains(t, q, "room_id = ?")
	assert.Contains(t, q, "status IN (?)")
	// Half-open overlap: candidate end bounds start_time, candidate
	// start bounds end_time.
	assert.Contains(t, q, "start_time < ? AND end_time > ?")
	assert.NotContains(t, q, "FOR UPDATE")
	assert.NotContains(t, q, "id <> ?")
	require.Len(t, args, 4)
	assert.Equal(t, end, args[2])
	assert.Equal(t, start, args[3])
}

func TestBlockingQueryExcludeAndLock(t *testing.T) {
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	q, args := blockingQuery("room-1", start, end,
		[]model.BookingStatus{model.StatusPending, model.StatusApproved}, "self-id", true)
	assert.Contains(t, q, "status IN (?,?)")
	assert.Contains(t, q, "id <> ?")
	assert.True(t, len(q) > 10 && q[len(q)-10:] == "FOR UPDATE", "lock clause must come last")
	require.Len(t, args, 6)
	assert.Equal(t, "self-id", args[5])
}
