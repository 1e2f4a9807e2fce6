package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ivaldez/meeting-room-reservation/internal/model"
)

// Service wires the validator, the conflict query and the approval
// workflow to a Store.  One instance is shared by all handlers.
type Service struct {
	store Store
	now   func() time.Time // injected clock; tests override it
}

// NewService returns a Service backed by the given store and the real
// clock.
func NewService(store Store) *Service {
	if store == nil {
		panic("nil store passed to NewService")
	}
	return &Service{store: store, now: time.Now}
}

// ValidateAndConflictCheck runs the acceptance rules for a proposed
// booking and, when they pass, checks the slot against existing
// blocking bookings.  It returns nil when the slot can be requested,
// or a typed *Error naming the first rule that failed.
func (s *Service) ValidateAndConflictCheck(ctx context.Context, roomID string, start, end time.Time) error {
	if err := ValidateRequest(roomID, start, end, s.now()); err != nil {
		return err
	}
	blocking, err := s.store.ListBlocking(ctx, roomID, start, end, BlockingStatuses, "")
	if err != nil {
		return reject(ReasonTransactionFailed)
	}
	if len(blocking) > 0 {
		return reject(ReasonSchedulingConflict)
	}
	return nil
}

// ListBlockingConflicts exposes the conflict detector for read-only
// "is this slot free" checks.  An empty statuses slice defaults to the
// blocking set {PENDING, APPROVED}.
func (s *Service) ListBlockingConflicts(ctx context.Context, roomID string, start, end time.Time, statuses []model.BookingStatus, excludeID string) ([]model.Booking, error) {
	if len(statuses) == 0 {
		statuses = BlockingStatuses
	}
	out, err := s.store.ListBlocking(ctx, roomID, start, end, statuses, excludeID)
	if err != nil {
		return nil, reject(ReasonTransactionFailed)
	}
	return out, nil
}

// CreateBooking validates the request and persists a new PENDING
// booking.  The conflict check and the insert share one transaction so
// a concurrent creation or approval for the same room cannot slip a
// conflicting row in between.
func (s *Service) CreateBooking(ctx context.Context, userID, roomID string, start, end time.Time) (*model.Booking, error) {
	if userID == "" {
		return nil, reject(ReasonMissingField)
	}
	if err := ValidateRequest(roomID, start, end, s.now()); err != nil {
		return nil, err
	}
	b := &model.Booking{
		ID:        uuid.NewString(),
		UserID:    userID,
		RoomID:    roomID,
		StartTime: start.UTC(),
		EndTime:   end.UTC(),
		Status:    model.StatusPending,
		CreatedAt: s.now().UTC(),
	}
	err := s.store.InTx(ctx, func(tx Tx) error {
		blocking, err := tx.ListBlockingForUpdate(ctx, roomID, b.StartTime, b.EndTime, BlockingStatuses, "")
		if err != nil {
			return err
		}
		if len(blocking) > 0 {
			return reject(ReasonSchedulingConflict)
		}
		return tx.Insert(ctx, b)
	})
	if err != nil {
		return nil, asBookingError(err)
	}
	return b, nil
}

// DecideBooking applies a coordinator decision to a booking.  A
// rejection is a single guarded status update.  An approval
// additionally re-runs conflict detection against the remaining
// PENDING bookings of the same room and rejects every one that now
// overlaps, all inside one transaction: either the approval and
// the full cascade become visible together or nothing does.  The ids
// of cascade-rejected bookings are returned alongside the decided one.
func (s *Service) DecideBooking(ctx context.Context, id string, d model.Decision) (*model.Booking, []string, error) {
	if id == "" {
		return nil, nil, reject(ReasonMissingField)
	}
	if d != model.DecisionApprove && d != model.DecisionReject {
		return nil, nil, reject(ReasonInvalidDecision)
	}
	var (
		decided  *model.Booking
		cascaded []string
	)
	err := s.store.InTx(ctx, func(tx Tx) error {
		b, err := tx.GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNoBooking) {
				return reject(ReasonNotFound)
			}
			return err
		}
		next, err := b.Status.Apply(d)
		if err != nil {
			return reject(ReasonInvalidDecision)
		}
		if next != b.Status {
			if err := tx.UpdateStatus(ctx, b.ID, next); err != nil {
				return err
			}
		}
		b.Status = next
		decided = b
		if d != model.DecisionApprove {
			return nil
		}
		// The approved booking wins the slot: every still-pending
		// request that overlaps it is rejected in the same instant.
		conflicts, err := tx.ListBlockingForUpdate(ctx, b.RoomID, b.StartTime, b.EndTime,
			[]model.BookingStatus{model.StatusPending}, b.ID)
		if err != nil {
			return err
		}
		for i := range conflicts {
			if err := tx.UpdateStatus(ctx, conflicts[i].ID, model.StatusRejected); err != nil {
				return err
			}
			cascaded = append(cascaded, conflicts[i].ID)
		}
		return nil
	})
	if err != nil {
		return nil, nil, asBookingError(err)
	}
	return decided, cascaded, nil
}

// asBookingError passes typed refusals through untouched and collapses
// everything else (driver failures, rollbacks) into the generic
// TRANSACTION_FAILED reason.  The transaction has already been rolled
// back, so resubmitting is safe.
func asBookingError(err error) error {
	var be *Error
	if errors.As(err, &be) {
		return be
	}
	return reject(ReasonTransactionFailed)
}
