package booking

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivaldez/meeting-room-reservation/internal/model"
)

// memStore is an in-memory Store with real transaction semantics: a
// snapshot is taken when a transaction starts and restored when the
// callback returns an error, so rollback behaviour can be asserted.
type memStore struct {
	bookings map[string]*model.Booking

	// failUpdateAt makes the nth UpdateStatus call fail (1-based).
	failUpdateAt int
	updateCalls  int
}

func newMemStore() *memStore {
	return &memStore{bookings: make(map[string]*model.Booking)}
}

func (m *memStore) add(b model.Booking) {
	cp := b
	m.bookings[b.ID] = &cp
}

func (m *memStore) snapshot() map[string]*model.Booking {
	out := make(map[string]*model.Booking, len(m.bookings))
	for id, b := range m.bookings {
		cp := *b
		out[id] = &cp
	}
	return out
}

func (m *memStore) InTx(ctx context.Context, fn func(Tx) error) error {
	saved := m.snapshot()
	if err := fn(&memTx{store: m}); err != nil {
		m.bookings = saved
		return err
	}
	return nil
}

func (m *memStore) ListBlocking(ctx context.Context, roomID string, start, end time.Time, statuses []model.BookingStatus, excludeID string) ([]model.Booking, error) {
	allowed := make(map[model.BookingStatus]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}
	var out []model.Booking
	for _, b := range m.bookings {
		if b.RoomID != roomID || b.ID == excludeID || !allowed[b.Status] {
			continue
		}
		if b.OverlapsRange(start, end) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

type memTx struct {
	store *memStore
}

func (t *memTx) Insert(ctx context.Context, b *model.Booking) error {
	t.store.add(*b)
	return nil
}

func (t *memTx) GetForUpdate(ctx context.Context, id string) (*model.Booking, error) {
	b, ok := t.store.bookings[id]
	if !ok {
		return nil, ErrNoBooking
	}
	cp := *b
	return &cp, nil
}

func (t *memTx) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error {
	t.store.updateCalls++
	if t.store.failUpdateAt > 0 && t.store.updateCalls == t.store.failUpdateAt {
		return errors.New("simulated write failure")
	}
	b, ok := t.store.bookings[id]
	if !ok {
		return ErrNoBooking
	}
	b.Status = status
	return nil
}

func (t *memTx) ListBlockingForUpdate(ctx context.Context, roomID string, start, end time.Time, statuses []model.BookingStatus, excludeID string) ([]model.Booking, error) {
	return t.store.ListBlocking(ctx, roomID, start, end, statuses, excludeID)
}

func newTestService(store *memStore) *Service {
	s := NewService(store)
	s.now = func() time.Time { return testNow }
	return s
}

func slot(h int) (time.Time, time.Time) {
	return day(h, 0, 0), day(h+1, 0, 0)
}

func TestCreateBookingStoresPending(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	start, end := slot(10)
	b, err := svc.CreateBooking(context.Background(), "user-1", "room-1", start, end)
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, model.StatusPending, b.Status)

	stored := store.bookings[b.ID]
	require.NotNil(t, stored)
	assert.Equal(t, "user-1", stored.UserID)
}

func TestCreateBookingRefusesConflict(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	start, end := slot(10)
	store.add(model.Booking{ID: "existing", RoomID: "room-1", StartTime: start, EndTime: end, Status: model.StatusApproved})

	b, err := svc.CreateBooking(context.Background(), "user-1", "room-1", day(10, 30, 0), day(11, 30, 0))
	require.Error(t, err)
	assert.Nil(t, b)
	assert.Equal(t, ReasonSchedulingConflict, ReasonOf(err))
	assert.Len(t, store.bookings, 1, "nothing written on refusal")
}

func TestCreateBookingPendingAlsoBlocks(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	start, end := slot(10)
	store.add(model.Booking{ID: "rival", RoomID: "room-1", StartTime: start, EndTime: end, Status: model.StatusPending})

	_, err := svc.CreateBooking(context.Background(), "user-1", "room-1", start, end)
	assert.Equal(t, ReasonSchedulingConflict, ReasonOf(err))
}

func TestCreateBookingIgnoresNonBlockingStatuses(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	start, end := slot(10)
	store.add(model.Booking{ID: "r1", RoomID: "room-1", StartTime: start, EndTime: end, Status: model.StatusRejected})
	store.add(model.Booking{ID: "r2", RoomID: "room-1", StartTime: start, EndTime: end, Status: model.StatusCancelled})

	_, err := svc.CreateBooking(context.Background(), "user-1", "room-1", start, end)
	assert.NoError(t, err)
}

func TestCreateBookingOtherRoomDoesNotConflict(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	start, end := slot(10)
	store.add(model.Booking{ID: "other", RoomID: "room-2", StartTime: start, EndTime: end, Status: model.StatusApproved})

	_, err := svc.CreateBooking(context.Background(), "user-1", "room-1", start, end)
	assert.NoError(t, err)
}

func TestCreateBookingTouchingSlotsDoNotConflict(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	store.add(model.Booking{ID: "before", RoomID: "room-1", StartTime: day(9, 0, 0), EndTime: day(10, 0, 0), Status: model.StatusApproved})
	store.add(model.Booking{ID: "after", RoomID: "room-1", StartTime: day(11, 0, 0), EndTime: day(12, 0, 0), Status: model.StatusApproved})

	_, err := svc.CreateBooking(context.Background(), "user-1", "room-1", day(10, 0, 0), day(11, 0, 0))
	assert.NoError(t, err)
}

func TestCreateBookingRequiresUser(t *testing.T) {
	svc := newTestService(newMemStore())
	start, end := slot(10)
	_, err := svc.CreateBooking(context.Background(), "", "room-1", start, end)
	assert.Equal(t, ReasonMissingField, ReasonOf(err))
}

func TestDecideBookingApproveCascadesRejections(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	store.add(model.Booking{ID: "target", RoomID: "room-1", StartTime: day(10, 0, 0), EndTime: day(12, 0, 0), Status: model.StatusPending})
	store.add(model.Booking{ID: "overlap-a", RoomID: "room-1", StartTime: day(9, 30, 0), EndTime: day(10, 30, 0), Status: model.StatusPending})
	store.add(model.Booking{ID: "overlap-b", RoomID: "room-1", StartTime: day(11, 0, 0), EndTime: day(13, 0, 0), Status: model.StatusPending})
	store.add(model.Booking{ID: "later", RoomID: "room-1", StartTime: day(12, 0, 0), EndTime: day(13, 0, 0), Status: model.StatusPending})
	store.add(model.Booking{ID: "elsewhere", RoomID: "room-2", StartTime: day(10, 0, 0), EndTime: day(12, 0, 0), Status: model.StatusPending})

	decided, rejected, err := svc.DecideBooking(context.Background(), "target", model.DecisionApprove)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, decided.Status)
	assert.ElementsMatch(t, []string{"overlap-a", "overlap-b"}, rejected)

	assert.Equal(t, model.StatusApproved, store.bookings["target"].Status)
	assert.Equal(t, model.StatusRejected, store.bookings["overlap-a"].Status)
	assert.Equal(t, model.StatusRejected, store.bookings["overlap-b"].Status)
	assert.Equal(t, model.StatusPending, store.bookings["later"].Status, "touching slot survives")
	assert.Equal(t, model.StatusPending, store.bookings["elsewhere"].Status, "other room untouched")
}

func TestDecideBookingReject(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	store.add(model.Booking{ID: "target", RoomID: "room-1", StartTime: day(10, 0, 0), EndTime: day(11, 0, 0), Status: model.StatusPending})
	store.add(model.Booking{ID: "rival", RoomID: "room-1", StartTime: day(10, 0, 0), EndTime: day(11, 0, 0), Status: model.StatusPending})

	decided, rejected, err := svc.DecideBooking(context.Background(), "target", model.DecisionReject)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, decided.Status)
	assert.Empty(t, rejected, "rejection never cascades")
	assert.Equal(t, model.StatusPending, store.bookings["rival"].Status)
}

func TestDecideBookingRepeatedApproveIsIdempotent(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	store.add(model.Booking{ID: "target", RoomID: "room-1", StartTime: day(10, 0, 0), EndTime: day(11, 0, 0), Status: model.StatusApproved})

	decided, rejected, err := svc.DecideBooking(context.Background(), "target", model.DecisionApprove)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, decided.Status)
	assert.Empty(t, rejected)
}

func TestDecideBookingInvalidTransition(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	store.add(model.Booking{ID: "target", RoomID: "room-1", StartTime: day(10, 0, 0), EndTime: day(11, 0, 0), Status: model.StatusRejected})

	_, _, err := svc.DecideBooking(context.Background(), "target", model.DecisionApprove)
	assert.Equal(t, ReasonInvalidDecision, ReasonOf(err))
	assert.Equal(t, model.StatusRejected, store.bookings["target"].Status)
}

func TestDecideBookingUnknownID(t *testing.T) {
	svc := newTestService(newMemStore())
	_, _, err := svc.DecideBooking(context.Background(), "nope", model.DecisionApprove)
	assert.Equal(t, ReasonNotFound, ReasonOf(err))
}

func TestDecideBookingUnknownDecision(t *testing.T) {
	svc := newTestService(newMemStore())
	_, _, err := svc.DecideBooking(context.Background(), "target", model.Decision("MAYBE"))
	assert.Equal(t, ReasonInvalidDecision, ReasonOf(err))
}

// A failure halfway through the cascade must leave every booking as it
// was, including the approval itself.
func TestDecideBookingRollsBackWholeCascade(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	store.add(model.Booking{ID: "target", RoomID: "room-1", StartTime: day(10, 0, 0), EndTime: day(12, 0, 0), Status: model.StatusPending})
	store.add(model.Booking{ID: "overlap-a", RoomID: "room-1", StartTime: day(10, 0, 0), EndTime: day(11, 0, 0), Status: model.StatusPending})
	store.add(model.Booking{ID: "overlap-b", RoomID: "room-1", StartTime: day(11, 0, 0), EndTime: day(12, 0, 0), Status: model.StatusPending})

	// Call 1 approves the target, call 2 rejects the first overlap,
	// call 3 blows up on the second.
	store.failUpdateAt = 3

	_, _, err := svc.DecideBooking(context.Background(), "target", model.DecisionApprove)
	require.Error(t, err)
	assert.Equal(t, ReasonTransactionFailed, ReasonOf(err))

	assert.Equal(t, model.StatusPending, store.bookings["target"].Status)
	assert.Equal(t, model.StatusPending, store.bookings["overlap-a"].Status)
	assert.Equal(t, model.StatusPending, store.bookings["overlap-b"].Status)
}

func TestValidateAndConflictCheck(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	start, end := slot(10)
	require.NoError(t, svc.ValidateAndConflictCheck(context.Background(), "room-1", start, end))

	store.add(model.Booking{ID: "existing", RoomID: "room-1", StartTime: start, EndTime: end, Status: model.StatusPending})
	err := svc.ValidateAndConflictCheck(context.Background(), "room-1", start, end)
	assert.Equal(t, ReasonSchedulingConflict, ReasonOf(err))
}

func TestListBlockingConflictsDefaultsToBlockingSet(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	start, end := slot(10)
	store.add(model.Booking{ID: "p", RoomID: "room-1", StartTime: start, EndTime: end, Status: model.StatusPending})
	store.add(model.Booking{ID: "a", RoomID: "room-1", StartTime: start, EndTime: end, Status: model.StatusApproved})
	store.add(model.Booking{ID: "x", RoomID: "room-1", StartTime: start, EndTime: end, Status: model.StatusRejected})

	out, err := svc.ListBlockingConflicts(context.Background(), "room-1", start, end, nil, "")
	require.NoError(t, err)
	assert.Len(t, out, 2)

	// The exclude id carves the caller's own booking out of the result.
	out, err = svc.ListBlockingConflicts(context.Background(), "room-1", start, end, nil, "p")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)
}
