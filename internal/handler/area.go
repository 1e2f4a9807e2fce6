package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ivaldez/meeting-room-reservation/internal/repository"
)

// AreaHandler lists the organisational areas users register under.
type AreaHandler struct {
	Areas *repository.AreaRepo
}

func NewAreaHandler(a *repository.AreaRepo) *AreaHandler {
	return &AreaHandler{Areas: a}
}

type areaResp struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// List returns every area.  Public so the registration form can offer
// the choices before an account exists.
func (h *AreaHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	areas, err := h.Areas.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]areaResp, 0, len(areas))
	for _, a := range areas {
		out = append(out, areaResp{ID: a.ID, Name: a.Name})
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": out})
}
