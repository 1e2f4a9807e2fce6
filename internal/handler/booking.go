package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ivaldez/meeting-room-reservation/internal/booking"
	"github.com/ivaldez/meeting-room-reservation/internal/model"
	"github.com/ivaldez/meeting-room-reservation/internal/queue"
	"github.com/ivaldez/meeting-room-reservation/internal/repository"
	queue_publisher "github.com/ivaldez/meeting-room-reservation/internal/service"
)

// BookingHandler exposes the reservation workflow over HTTP: creating
// bookings, checking availability, deciding pending bookings and
// listing a user's own bookings.
type BookingHandler struct {
	Svc      *booking.Service
	Bookings *repository.BookingRepo
	Rooms    *repository.RoomRepo
}

func NewBookingHandler(svc *booking.Service, b *repository.BookingRepo, r *repository.RoomRepo) *BookingHandler {
	return &BookingHandler{Svc: svc, Bookings: b, Rooms: r}
}

type createBookingReq struct {
	RoomID    string `json:"room_id" validate:"required,uuid4"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type decideReq struct {
	Decision string `json:"decision" validate:"required,oneof=APPROVED REJECTED"`
}

// bookingResp is the wire form of a booking.  Instants are RFC 3339 UTC.
type bookingResp struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	RoomID    string `json:"room_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func toBookingResp(b model.Booking) bookingResp {
	return bookingResp{
		ID:        b.ID,
		UserID:    b.UserID,
		RoomID:    b.RoomID,
		StartTime: b.StartTime.UTC().Format(time.RFC3339),
		EndTime:   b.EndTime.UTC().Format(time.RFC3339),
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// statusForReason maps a refusal reason to its HTTP status.  Every
// reason has exactly one status so clients can rely on the pairing.
func statusForReason(r booking.Reason) int {
	switch r {
	case booking.ReasonSchedulingConflict, booking.ReasonInvalidDecision:
		return http.StatusConflict
	case booking.ReasonNotFound:
		return http.StatusNotFound
	case booking.ReasonTransactionFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// refusalJSON writes the standard refusal body for a booking error.
func refusalJSON(c echo.Context, err error) error {
	r := booking.ReasonOf(err)
	if r == "" {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(statusForReason(r), echo.Map{"reason": string(r), "error": err.Error()})
}

// parseRFC3339 accepts both full RFC 3339 timestamps and the
// second-precision variant without a zone, which is treated as UTC.
func parseRFC3339(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}

// Create registers a new PENDING booking for the authenticated user.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return refusalJSON(c, &booking.Error{Reason: booking.ReasonMissingField})
	}
	start, err := parseRFC3339(req.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be RFC 3339"})
	}
	end, err := parseRFC3339(req.EndTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be RFC 3339"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Rooms.GetByID(ctx, req.RoomID); err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	b, err := h.Svc.CreateBooking(ctx, uid, req.RoomID, start, end)
	if err != nil {
		return refusalJSON(c, err)
	}
	return c.JSON(http.StatusCreated, toBookingResp(*b))
}

// Decide approves or rejects a pending booking.  Approval atomically
// rejects every overlapping pending booking for the same room; the
// response lists the cascaded ids.  A committed decision is also
// published to the message broker for downstream consumers.
func (h *BookingHandler) Decide(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking id required"})
	}

	var req decideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "decision must be APPROVED or REJECTED"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	decided, rejected, err := h.Svc.DecideBooking(ctx, id, model.Decision(req.Decision))
	if err != nil {
		return refusalJSON(c, err)
	}

	// Publishing is best effort; the decision is already committed.
	go func(b model.Booking, rejected []string) {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pubCancel()
		ev := queue.BookingDecidedEvent{
			BookingID:    b.ID,
			UserID:       b.UserID,
			RoomID:       b.RoomID,
			Status:       string(b.Status),
			StartsAt:     b.StartTime.UTC().Format(time.RFC3339),
			EndsAt:       b.EndTime.UTC().Format(time.RFC3339),
			AutoRejected: rejected,
			DecidedAt:    time.Now().UTC().Format(time.RFC3339),
		}
		if room, err := h.Rooms.GetByID(pubCtx, b.RoomID); err == nil {
			ev.RoomName = room.Name
		}
		if err := queue_publisher.PublishBookingDecided(pubCtx, ev); err != nil {
			log.Printf("booking: publish decision event failed: %v", err)
		}
	}(*decided, rejected)

	if rejected == nil {
		rejected = []string{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"booking":       toBookingResp(*decided),
		"auto_rejected": rejected,
	})
}

// Availability reports the blocking bookings that overlap a candidate
// window for a room.  An empty conflict list means the window is free.
func (h *BookingHandler) Availability(c echo.Context) error {
	roomID := strings.TrimSpace(c.Param("id"))
	start, err := parseRFC3339(c.QueryParam("start"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must be RFC 3339"})
	}
	end, err := parseRFC3339(c.QueryParam("end"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end must be RFC 3339"})
	}
	exclude := strings.TrimSpace(c.QueryParam("exclude"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	conflicts, err := h.Svc.ListBlockingConflicts(ctx, roomID, start, end, nil, exclude)
	if err != nil {
		return refusalJSON(c, err)
	}
	out := make([]bookingResp, 0, len(conflicts))
	for _, b := range conflicts {
		out = append(out, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"available": len(out) == 0,
		"conflicts": out,
	})
}

// ListMine returns the authenticated user's bookings, newest start first.
func (h *BookingHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Bookings.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if items == nil {
		items = []repository.BookingDetail{}
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": items})
}

// ListUpcoming returns the user's next approved bookings, at most three.
func (h *BookingHandler) ListUpcoming(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Bookings.ListUpcomingByUser(ctx, uid, time.Now().UTC(), 3)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if items == nil {
		items = []repository.BookingDetail{}
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": items})
}

// ListPendingByArea returns the pending bookings awaiting decision for
// one area, oldest first so coordinators work the queue in order.
func (h *BookingHandler) ListPendingByArea(c echo.Context) error {
	areaID := strings.TrimSpace(c.Param("id"))
	if areaID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "area id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Bookings.ListPendingByArea(ctx, areaID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if items == nil {
		items = []repository.PendingDetail{}
	}
	return c.JSON(http.StatusOK, echo.Map{"pending": items})
}
