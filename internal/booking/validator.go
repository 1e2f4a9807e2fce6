package booking

import "time"

// Business hours for all rooms.  A booking must start at or after
// 8:00 and end at or before 18:00 on the wall clock of the submitted
// times.  The values are interpreted exactly as given by the caller;
// no timezone conversion happens here.
const (
	businessOpenHour  = 8
	businessCloseHour = 18
)

// ValidateRequest checks a proposed booking against the acceptance
// rules and returns nil when it may proceed to conflict detection.
// Rules run in order and stop at the first failure:
//
//  1. room, start and end must be present       -> MISSING_FIELD
//  2. start must not be before now (equal ok)   -> PAST_BOOKING
//  3. start and end within business hours       -> OUTSIDE_BUSINESS_HOURS
//  4. start strictly before end                 -> INVALID_RANGE
//
// The reference instant is passed in by the caller so the check is a
// pure function; no side effects, no ambient clock.
func ValidateRequest(roomID string, start, end, now time.Time) error {
	if roomID == "" || start.IsZero() || end.IsZero() {
		return reject(ReasonMissingField)
	}
	if start.Before(now) {
		return reject(ReasonPastBooking)
	}
	if !startWithinHours(start) || !endWithinHours(end) {
		return reject(ReasonOutsideBusinessHours)
	}
	if !start.Before(end) {
		return reject(ReasonInvalidRange)
	}
	return nil
}

// startWithinHours accepts start instants from 8:00:00 up to but not
// including 18:00:00.
func startWithinHours(t time.Time) bool {
	h := t.Hour()
	return h >= businessOpenHour && h < businessCloseHour
}

// endWithinHours accepts end instants from 8:00:00 up to and including
// 18:00:00 sharp.  18:00:01 is already outside.
func endWithinHours(t time.Time) bool {
	h := t.Hour()
	if h < businessOpenHour || h > businessCloseHour {
		return false
	}
	if h == businessCloseHour {
		return t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
	}
	return true
}
