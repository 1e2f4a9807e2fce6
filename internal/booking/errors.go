// Package booking implements the reservation core: validation of
// proposed bookings, conflict detection against blocking bookings and
// the approve-with-cascade-rejection workflow.  The package owns the
// business rules; persistence is reached through the Store interface
// so the same logic runs against MySQL in production and an in-memory
// store in tests.
package booking

import "fmt"

// Reason is a stable machine-readable code describing why a booking
// request was refused.  Callers are expected to surface the paired
// message without reinterpretation.
type Reason string

const (
	ReasonMissingField         Reason = "MISSING_FIELD"
	ReasonPastBooking          Reason = "PAST_BOOKING"
	ReasonOutsideBusinessHours Reason = "OUTSIDE_BUSINESS_HOURS"
	ReasonInvalidRange         Reason = "INVALID_RANGE"
	ReasonSchedulingConflict   Reason = "SCHEDULING_CONFLICT"
	ReasonNotFound             Reason = "NOT_FOUND"
	ReasonInvalidDecision      Reason = "INVALID_DECISION"
	ReasonTransactionFailed    Reason = "TRANSACTION_FAILED"
)

// messages maps each reason to its user-visible text.  One stable
// message per reason.
var messages = map[Reason]string{
	ReasonMissingField:         "all booking fields are required",
	ReasonPastBooking:          "bookings cannot start in the past",
	ReasonOutsideBusinessHours: "bookings must fall within business hours (8:00-18:00)",
	ReasonInvalidRange:         "end time must be after start time",
	ReasonSchedulingConflict:   "the room is already booked or pending for that time",
	ReasonNotFound:             "booking not found",
	ReasonInvalidDecision:      "the booking has already been decided",
	ReasonTransactionFailed:    "the operation could not be completed",
}

// Error is a typed refusal returned by the booking core.  Reason
// identifies the rule that failed; handlers map it to an HTTP status.
type Error struct {
	Reason Reason
}

func (e *Error) Error() string {
	if msg, ok := messages[e.Reason]; ok {
		return msg
	}
	return fmt.Sprintf("booking rejected: %s", string(e.Reason))
}

// reject builds an *Error for the given reason.
func reject(r Reason) *Error { return &Error{Reason: r} }

// ReasonOf extracts the Reason from err when it is a booking *Error.
// It returns an empty Reason for any other error.
func ReasonOf(err error) Reason {
	if be, ok := err.(*Error); ok {
		return be.Reason
	}
	return ""
}
