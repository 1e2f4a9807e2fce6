package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ivaldez/meeting-room-reservation/internal/model"
	"github.com/ivaldez/meeting-room-reservation/internal/repository"
)

// DashboardHandler serves aggregate counters for the admin dashboard.
type DashboardHandler struct {
	Bookings *repository.BookingRepo
}

func NewDashboardHandler(b *repository.BookingRepo) *DashboardHandler {
	return &DashboardHandler{Bookings: b}
}

// Stats returns booking counts grouped by status.  Statuses with no
// bookings are reported as zero so the dashboard always sees all four.
func (h *DashboardHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	counts, err := h.Bookings.CountByStatus(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"pending":   counts[model.StatusPending],
		"approved":  counts[model.StatusApproved],
		"rejected":  counts[model.StatusRejected],
		"cancelled": counts[model.StatusCancelled],
	})
}
