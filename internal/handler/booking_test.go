package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivaldez/meeting-room-reservation/internal/booking"
)

func TestStatusForReason(t *testing.T) {
	cases := map[booking.Reason]int{
		booking.ReasonMissingField:         http.StatusBadRequest,
		booking.ReasonPastBooking:          http.StatusBadRequest,
		booking.ReasonOutsideBusinessHours: http.StatusBadRequest,
		booking.ReasonInvalidRange:         http.StatusBadRequest,
		booking.ReasonSchedulingConflict:   http.StatusConflict,
		booking.ReasonInvalidDecision:      http.StatusConflict,
		booking.ReasonNotFound:             http.StatusNotFound,
		booking.ReasonTransactionFailed:    http.StatusInternalServerError,
	}
	for reason, want := range cases {
		assert.Equal(t, want, statusForReason(reason), string(reason))
	}
}

func TestParseRFC3339(t *testing.T) {
	got, err := parseRFC3339("2026-09-15T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC), got.UTC())

	// The zoneless variant is accepted and read as UTC.
	got, err = parseRFC3339("2026-09-15T10:00:00")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Hour())

	_, err = parseRFC3339("15/09/2026 10:00")
	assert.Error(t, err)
}
