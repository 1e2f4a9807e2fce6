package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC) // a Monday

func day(h, m, s int) time.Time {
	return time.Date(2026, 9, 15, h, m, s, 0, time.UTC)
}

func TestValidateRequestAccepts(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
	}{
		{"ordinary slot", day(10, 0, 0), day(11, 0, 0)},
		{"opens at 8:00 exactly", day(8, 0, 0), day(9, 0, 0)},
		{"ends at 18:00 exactly", day(17, 0, 0), day(18, 0, 0)},
		{"full business day", day(8, 0, 0), day(18, 0, 0)},
		{"one minute slot", day(12, 0, 0), day(12, 1, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NoError(t, ValidateRequest("room-1", tc.start, tc.end, testNow))
		})
	}
}

func TestValidateRequestStartEqualToNowIsAllowed(t *testing.T) {
	now := day(10, 0, 0)
	assert.NoError(t, ValidateRequest("room-1", now, day(11, 0, 0), now))
}

func TestValidateRequestRefusals(t *testing.T) {
	cases := []struct {
		name       string
		roomID     string
		start, end time.Time
		want       Reason
	}{
		{"missing room", "", day(10, 0, 0), day(11, 0, 0), ReasonMissingField},
		{"missing start", "room-1", time.Time{}, day(11, 0, 0), ReasonMissingField},
		{"missing end", "room-1", day(10, 0, 0), time.Time{}, ReasonMissingField},
		{"start in the past", "room-1", testNow.Add(-time.Minute), testNow.Add(time.Hour), ReasonPastBooking},
		{"starts before opening", "room-1", day(7, 59, 59), day(9, 0, 0), ReasonOutsideBusinessHours},
		{"ends one second past closing", "room-1", day(17, 0, 0), day(18, 0, 1), ReasonOutsideBusinessHours},
		{"ends well past closing", "room-1", day(17, 0, 0), day(19, 0, 0), ReasonOutsideBusinessHours},
		{"starts at closing", "room-1", day(18, 0, 0), day(19, 0, 0), ReasonOutsideBusinessHours},
		{"end before start", "room-1", day(11, 0, 0), day(10, 0, 0), ReasonInvalidRange},
		{"zero duration", "room-1", day(10, 0, 0), day(10, 0, 0), ReasonInvalidRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRequest(tc.roomID, tc.start, tc.end, testNow)
			require.Error(t, err)
			assert.Equal(t, tc.want, ReasonOf(err))
		})
	}
}

// Rules stop at the first failure, so a request that is both in the
// past and outside business hours reports PAST_BOOKING.
func TestValidateRequestRuleOrder(t *testing.T) {
	past := testNow.AddDate(0, 0, -1)
	err := ValidateRequest("room-1", past.Add(3*time.Hour), past.Add(4*time.Hour), testNow)
	require.Error(t, err)
	assert.Equal(t, ReasonPastBooking, ReasonOf(err))

	// Missing field wins over everything.
	err = ValidateRequest("", past, past, testNow)
	assert.Equal(t, ReasonMissingField, ReasonOf(err))

	// Outside hours wins over the inverted range.
	err = ValidateRequest("room-1", day(19, 0, 0), day(18, 30, 0), testNow)
	assert.Equal(t, ReasonOutsideBusinessHours, ReasonOf(err))
}

// Times are judged on their own wall clock, whatever the zone.
func TestValidateRequestUsesWallClock(t *testing.T) {
	lima := time.FixedZone("America/Lima", -5*60*60)
	start := time.Date(2026, 9, 15, 9, 0, 0, 0, lima)  // 14:00 UTC
	end := time.Date(2026, 9, 15, 17, 30, 0, 0, lima)  // 22:30 UTC
	assert.NoError(t, ValidateRequest("room-1", start, end, testNow))
}
