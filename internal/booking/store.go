package booking

import (
	"context"
	"errors"
	"time"

	"github.com/ivaldez/meeting-room-reservation/internal/model"
)

// ErrNoBooking is returned by Tx.GetForUpdate when no booking with the
// requested id exists.  Store implementations translate their own
// not-found signal (e.g. sql.ErrNoRows) into this sentinel.
var ErrNoBooking = errors.New("booking does not exist")

// BlockingStatuses is the default set of statuses that make an
// existing booking count toward conflict detection.
var BlockingStatuses = []model.BookingStatus{model.StatusPending, model.StatusApproved}

// Store is the persistence boundary of the booking core.  The MySQL
// implementation lives in the repository package; tests provide an
// in-memory one.
type Store interface {
	// InTx runs fn inside a single transaction.  When fn returns an
	// error the transaction is rolled back and the error returned;
	// otherwise the transaction commits.  No partial state from fn may
	// become visible to other readers.
	InTx(ctx context.Context, fn func(Tx) error) error

	// ListBlocking returns the bookings for a room whose status is in
	// statuses and whose [start_time, end_time) interval overlaps
	// [start, end).  excludeID, when non-empty, removes that booking
	// from consideration.  Read-only; runs outside any transaction.
	ListBlocking(ctx context.Context, roomID string, start, end time.Time, statuses []model.BookingStatus, excludeID string) ([]model.Booking, error)
}

// Tx exposes the booking mutations available inside one transaction.
// Implementations must scope every call to the same underlying
// transaction so that the approve-and-cascade sequence is atomic.
type Tx interface {
	// Insert persists a new booking row.
	Insert(ctx context.Context, b *model.Booking) error

	// GetForUpdate loads a booking by id and locks its row for the
	// remainder of the transaction.  Returns ErrNoBooking when absent.
	GetForUpdate(ctx context.Context, id string) (*model.Booking, error)

	// UpdateStatus sets the status of a single booking.
	UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error

	// ListBlockingForUpdate is ListBlocking evaluated against the
	// transaction snapshot, locking the matched rows so a concurrent
	// approval for the same room serializes behind this one.
	ListBlockingForUpdate(ctx context.Context, roomID string, start, end time.Time, statuses []model.BookingStatus, excludeID string) ([]model.Booking, error)
}
