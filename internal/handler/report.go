package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"github.com/ivaldez/meeting-room-reservation/internal/repository"
)

// ReportHandler serves the filtered reservation report for
// administrators, as JSON or as a downloadable spreadsheet.
type ReportHandler struct {
	Bookings *repository.BookingRepo
	Users    *repository.UserRepo
}

func NewReportHandler(b *repository.BookingRepo, u *repository.UserRepo) *ReportHandler {
	return &ReportHandler{Bookings: b, Users: u}
}

const reportDateLayout = "2006-01-02"

// filterFromQuery reads the optional room_id, user_id, start_date and
// end_date query parameters.  Dates use YYYY-MM-DD.
func filterFromQuery(c echo.Context) (repository.ReportFilter, error) {
	f := repository.ReportFilter{
		RoomID: strings.TrimSpace(c.QueryParam("room_id")),
		UserID: strings.TrimSpace(c.QueryParam("user_id")),
	}
	if s := strings.TrimSpace(c.QueryParam("start_date")); s != "" {
		t, err := time.Parse(reportDateLayout, s)
		if err != nil {
			return f, fmt.Errorf("start_date must be YYYY-MM-DD")
		}
		f.StartDate = t
	}
	if s := strings.TrimSpace(c.QueryParam("end_date")); s != "" {
		t, err := time.Parse(reportDateLayout, s)
		if err != nil {
			return f, fmt.Errorf("end_date must be YYYY-MM-DD")
		}
		f.EndDate = t
	}
	return f, nil
}

// List returns the filtered report as JSON.
func (h *ReportHandler) List(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	rows, err := h.Bookings.ListReport(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"report": rows, "count": len(rows)})
}

// Export streams the filtered report as an XLSX workbook.
func (h *ReportHandler) Export(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	rows, err := h.Bookings.ListReport(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()

	const sheet = "Bookings"
	wb.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "User", "Room", "Area", "Start", "End", "Status", "Created"}
	for i, head := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = wb.SetCellValue(sheet, cell, head)
	}
	for i, row := range rows {
		area := ""
		if row.AreaName != nil {
			area = *row.AreaName
		}
		values := []any{row.ID, row.UserName, row.RoomName, area, row.StartTime, row.EndTime, row.Status, row.CreatedAt}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			_ = wb.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("bookings-report-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)

	if err := wb.Write(c.Response()); err != nil {
		return err
	}
	return nil
}

// ListUsers returns id and name for every user so the report UI can
// build its filter dropdown.
func (h *ReportHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	names, err := h.Users.ListNames(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": names})
}
