package model

import (
	"errors"
	"fmt"
	"time"
)

// BookingStatus is the closed set of states a booking can be in.  The
// values match the `status` column of the bookings table.  No other
// value is valid; repositories must never write a status that does not
// come from this enumeration.
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"   // awaiting a coordinator decision
	StatusApproved  BookingStatus = "APPROVED"  // confirmed; blocks the room
	StatusRejected  BookingStatus = "REJECTED"  // declined, explicitly or by cascade
	StatusCancelled BookingStatus = "CANCELLED" // withdrawn by the requester
)

// Valid reports whether s is one of the known booking statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s admits no further decisions.  Only
// PENDING bookings are still open; every other status is final.
func (s BookingStatus) Terminal() bool {
	return s != StatusPending
}

// Decision is a coordinator's verdict on a pending booking.
type Decision string

const (
	DecisionApprove Decision = "APPROVED"
	DecisionReject  Decision = "REJECTED"
)

// ErrInvalidTransition is returned by Apply when the requested decision
// is not allowed from the current status, e.g. rejecting an already
// approved booking or deciding on a cancelled one.
var ErrInvalidTransition = errors.New("invalid status transition")

// Apply returns the status that results from taking the given decision
// while in status s.  The transition table is explicit rather than a
// blind overwrite of the status column:
//
//	PENDING  + APPROVED -> APPROVED
//	PENDING  + REJECTED -> REJECTED
//	APPROVED + APPROVED -> APPROVED (idempotent re-approval)
//	REJECTED + REJECTED -> REJECTED (idempotent re-rejection)
//
// Everything else is an invalid transition.  Idempotent same-state
// decisions are allowed so that a resubmitted request does not fail.
func (s BookingStatus) Apply(d Decision) (BookingStatus, error) {
	switch {
	case s == StatusPending && d == DecisionApprove:
		return StatusApproved, nil
	case s == StatusPending && d == DecisionReject:
		return StatusRejected, nil
	case s == StatusApproved && d == DecisionApprove:
		return StatusApproved, nil
	case s == StatusRejected && d == DecisionReject:
		return StatusRejected, nil
	}
	return s, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, d)
}

// Booking is a request to occupy a room for a time interval.  Start
// and end instants are stored in UTC and form a half-open interval
// [StartTime, EndTime).  The invariant StartTime < EndTime holds for
// every persisted booking.
type Booking struct {
	ID        string        // bookings.id (UUID)
	UserID    string        // bookings.user_id (UUID, requester)
	RoomID    string        // bookings.room_id (UUID)
	StartTime time.Time     // bookings.start_time (UTC)
	EndTime   time.Time     // bookings.end_time (UTC)
	Status    BookingStatus // bookings.status
	CreatedAt time.Time     // bookings.created_at
}

// OverlapsRange reports whether the booking's interval intersects the
// half-open interval [start, end).  Touching endpoints do not overlap:
// a booking ending at 10:00 does not conflict with one starting at
// 10:00.
func (b *Booking) OverlapsRange(start, end time.Time) bool {
	return b.StartTime.Before(end) && start.Before(b.EndTime)
}

// Overlaps reports whether two bookings conflict: same room and
// intersecting intervals.  The relation is symmetric.
func (b *Booking) Overlaps(other *Booking) bool {
	if b.RoomID != other.RoomID {
		return false
	}
	return b.OverlapsRange(other.StartTime, other.EndTime)
}
