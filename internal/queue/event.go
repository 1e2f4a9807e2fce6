// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingDecidedEvent is published after a coordinator decision commits.
// It carries enough information for downstream consumers to log, notify,
// or trigger analytics without querying the primary database.
type BookingDecidedEvent struct {
	BookingID    string   `json:"booking_id"`
	UserID       string   `json:"user_id"`
	RoomID       string   `json:"room_id"`
	RoomName     string   `json:"room_name"`
	Status       string   `json:"status"`
	StartsAt     string   `json:"starts_at"`
	EndsAt       string   `json:"ends_at"`
	AutoRejected []string `json:"auto_rejected"`
	DecidedAt    string   `json:"decided_at"`
}
