package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/ivaldez/meeting-room-reservation/internal/booking"
	"github.com/ivaldez/meeting-room-reservation/internal/model"
)

// BookingRepo provides persistence for bookings.  It implements
// booking.Store so the reservation core can run its conflict check and
// approval cascade inside a single MySQL transaction, and additionally
// offers the read queries used by handlers (listing, dashboard counts,
// coordinator queues).  All timestamp columns are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying sql.DB for callers that need to compose
// transactions across repositories.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = `id, user_id, room_id, start_time, end_time, status, created_at`

// scanBooking reads one bookings row from a *sql.Row or *sql.Rows.
func scanBooking(scan func(dest ...any) error) (*model.Booking, error) {
	var b model.Booking
	var status string
	if err := scan(&b.ID, &b.UserID, &b.RoomID, &b.StartTime, &b.EndTime, &status, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.Status = model.BookingStatus(status)
	b.StartTime = b.StartTime.UTC()
	b.EndTime = b.EndTime.UTC()
	return &b, nil
}

// statusPlaceholders renders an IN (...) clause fragment and its
// arguments for a status set.
func statusPlaceholders(statuses []model.BookingStatus) (string, []any) {
	ph := make([]string, len(statuses))
	args := make([]any, len(statuses))
	for i, s := range statuses {
		ph[i] = "?"
		args[i] = string(s)
	}
	return strings.Join(ph, ","), args
}

// InTx opens a transaction, runs fn against it and commits when fn
// succeeds.  On any error the deferred rollback undoes every change,
// so callers never observe a partially applied unit of work.
func (r *BookingRepo) InTx(ctx context.Context, fn func(booking.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(&bookingTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListBlocking returns the bookings for a room whose status is in the
// given set and whose half-open interval overlaps [start, end).  The
// overlap predicate is start_time < end AND end_time > start, so
// touching endpoints do not match.  excludeID removes one booking from
// consideration when non-empty.
func (r *BookingRepo) ListBlocking(ctx context.Context, roomID string, start, end time.Time, statuses []model.BookingStatus, excludeID string) ([]model.Booking, error) {
	q, args := blockingQuery(roomID, start, end, statuses, excludeID, false)
	return queryBookings(ctx, r.db, q, args)
}

// blockingQuery builds the conflict-detection SELECT shared by the
// plain and the FOR UPDATE variants.
func blockingQuery(roomID string, start, end time.Time, statuses []model.BookingStatus, excludeID string, forUpdate bool) (string, []any) {
	in, inArgs := statusPlaceholders(statuses)
	q := `SELECT ` + bookingColumns + ` FROM bookings
		  WHERE room_id = ? AND status IN (` + in + `)
		  AND start_time < ? AND end_time > ?`
	args := append([]any{roomID}, inArgs...)
	args = append(args, end, start)
	if excludeID != "" {
		q += ` AND id <> ?`
		args = append(args, excludeID)
	}
	q += ` ORDER BY start_time`
	if forUpdate {
		q += ` FOR UPDATE`
	}
	return q, args
}

// queryExecer is satisfied by both *sql.DB and *sql.Tx.
type queryExecer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func queryBookings(ctx context.Context, q queryExecer, query string, args []any) ([]model.Booking, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// bookingTx implements booking.Tx over one *sql.Tx.  Every statement
// it issues participates in that transaction.
type bookingTx struct {
	tx *sql.Tx
}

// Insert persists a new booking row.  The id is generated by the core
// before insertion, so no LastInsertId round trip is needed.
func (t *bookingTx) Insert(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (id, user_id, room_id, start_time, end_time, status, created_at)
			   VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := t.tx.ExecContext(ctx, q, b.ID, b.UserID, b.RoomID, b.StartTime, b.EndTime, string(b.Status), b.CreatedAt)
	return err
}

// GetForUpdate loads a booking and locks its row for the remainder of
// the transaction, serializing concurrent decisions on the same
// booking.  Returns booking.ErrNoBooking when the id is unknown.
func (t *bookingTx) GetForUpdate(ctx context.Context, id string) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ? FOR UPDATE`
	b, err := scanBooking(t.tx.QueryRowContext(ctx, q, id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, booking.ErrNoBooking
		}
		return nil, err
	}
	return b, nil
}

// UpdateStatus sets the status of one booking.
func (t *bookingTx) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error {
	const q = `UPDATE bookings SET status = ? WHERE id = ?`
	_, err := t.tx.ExecContext(ctx, q, string(status), id)
	return err
}

// ListBlockingForUpdate is the locking variant of ListBlocking.  The
// matched rows stay locked until commit, so a concurrent approval or
// creation for the same room blocks until this transaction's outcome
// is visible.
func (t *bookingTx) ListBlockingForUpdate(ctx context.Context, roomID string, start, end time.Time, statuses []model.BookingStatus, excludeID string) ([]model.Booking, error) {
	q, args := blockingQuery(roomID, start, end, statuses, excludeID, true)
	return queryBookings(ctx, t.tx, q, args)
}

// BookingDetail is a booking joined with its room for display to the
// requester.  Times are serialized as RFC3339 UTC strings.
type BookingDetail struct {
	ID        string  `json:"id"`
	RoomID    string  `json:"room_id"`
	RoomName  string  `json:"room_name"`
	ImageURL  *string `json:"image_url,omitempty"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

// ListByUser returns all bookings made by a user, newest start time
// first, with room name and image for listing screens.
func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.room_id, rm.name, rm.image_url,
					  b.start_time, b.end_time, b.status, b.created_at
			   FROM bookings b
			   JOIN rooms rm ON rm.id = b.room_id
			   WHERE b.user_id = ?
			   ORDER BY b.start_time DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		var imageURL sql.NullString
		var start, end, created time.Time
		if err := rows.Scan(&d.ID, &d.RoomID, &d.RoomName, &imageURL, &start, &end, &d.Status, &created); err != nil {
			return nil, err
		}
		if imageURL.Valid {
			u := imageURL.String
			d.ImageURL = &u
		}
		d.StartTime = start.UTC().Format(time.RFC3339)
		d.EndTime = end.UTC().Format(time.RFC3339)
		d.CreatedAt = created.UTC().Format(time.RFC3339)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// ListUpcomingByUser returns the next `limit` approved bookings of a
// user starting after `after`, soonest first.  Used by the dashboard.
func (r *BookingRepo) ListUpcomingByUser(ctx context.Context, userID string, after time.Time, limit int) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.room_id, rm.name, rm.image_url,
					  b.start_time, b.end_time, b.status, b.created_at
			   FROM bookings b
			   JOIN rooms rm ON rm.id = b.room_id
			   WHERE b.user_id = ? AND b.status = ? AND b.start_time > ?
			   ORDER BY b.start_time ASC
			   LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, userID, string(model.StatusApproved), after, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		var imageURL sql.NullString
		var start, end, created time.Time
		if err := rows.Scan(&d.ID, &d.RoomID, &d.RoomName, &imageURL, &start, &end, &d.Status, &created); err != nil {
			return nil, err
		}
		if imageURL.Valid {
			u := imageURL.String
			d.ImageURL = &u
		}
		d.StartTime = start.UTC().Format(time.RFC3339)
		d.EndTime = end.UTC().Format(time.RFC3339)
		d.CreatedAt = created.UTC().Format(time.RFC3339)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// PendingDetail is a pending booking joined with requester and room
// names for the coordinator review queue.
type PendingDetail struct {
	ID        string `json:"id"`
	UserName  string `json:"user_name"`
	RoomName  string `json:"room_name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// ListPendingByArea returns the pending bookings requested by users of
// one area in chronological creation order, so coordinators review
// requests first come, first served.
func (r *BookingRepo) ListPendingByArea(ctx context.Context, areaID string) ([]PendingDetail, error) {
	const q = `SELECT b.id, u.full_name, rm.name,
					  b.start_time, b.end_time, b.status, b.created_at
			   FROM bookings b
			   JOIN users u ON u.id = b.user_id
			   JOIN rooms rm ON rm.id = b.room_id
			   WHERE u.area_id = ? AND b.status = ?
			   ORDER BY b.created_at ASC`
	rows, err := r.db.QueryContext(ctx, q, areaID, string(model.StatusPending))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]PendingDetail, 0)
	for rows.Next() {
		var d PendingDetail
		var start, end, created time.Time
		if err := rows.Scan(&d.ID, &d.UserName, &d.RoomName, &start, &end, &d.Status, &created); err != nil {
			return nil, err
		}
		d.StartTime = start.UTC().Format(time.RFC3339)
		d.EndTime = end.UTC().Format(time.RFC3339)
		d.CreatedAt = created.UTC().Format(time.RFC3339)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// CountByStatus returns the number of bookings per status for the
// dashboard counters.  Statuses with no bookings are absent from the
// returned map.
func (r *BookingRepo) CountByStatus(ctx context.Context) (map[model.BookingStatus]int, error) {
	const q = `SELECT status, COUNT(*) FROM bookings GROUP BY status`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[model.BookingStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[model.BookingStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}
