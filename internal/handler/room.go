package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ivaldez/meeting-room-reservation/internal/model"
	"github.com/ivaldez/meeting-room-reservation/internal/repository"
)

// RoomHandler serves the meeting room catalogue.
type RoomHandler struct {
	Rooms *repository.RoomRepo
}

func NewRoomHandler(r *repository.RoomRepo) *RoomHandler {
	return &RoomHandler{Rooms: r}
}

type createRoomReq struct {
	Name      string   `json:"name" validate:"required,min=1"`
	Location  *string  `json:"location"`
	Capacity  uint32   `json:"capacity" validate:"required,min=1"`
	Equipment []string `json:"equipment"`
	ImageURL  *string  `json:"image_url"`
}

type roomResp struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Location  *string  `json:"location,omitempty"`
	Capacity  uint32   `json:"capacity"`
	Equipment []string `json:"equipment"`
	ImageURL  *string  `json:"image_url,omitempty"`
	CreatedAt string   `json:"created_at"`
}

func toRoomResp(r model.Room) roomResp {
	eq := r.Equipment
	if eq == nil {
		eq = []string{}
	}
	return roomResp{
		ID:        r.ID,
		Name:      r.Name,
		Location:  r.Location,
		Capacity:  r.Capacity,
		Equipment: eq,
		ImageURL:  r.ImageURL,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// List returns every room ordered by name.  The route sits behind the
// response cache middleware since the catalogue changes rarely.
func (h *RoomHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]roomResp, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomResp(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": out})
}

// Get returns a single room by id.
func (h *RoomHandler) Get(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toRoomResp(*room))
}

// Create adds a room.  Admin only (enforced by middleware on the route).
func (h *RoomHandler) Create(c echo.Context) error {
	var req createRoomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and capacity are required"})
	}

	room := &model.Room{
		Name:      req.Name,
		Location:  req.Location,
		Capacity:  req.Capacity,
		Equipment: req.Equipment,
		ImageURL:  req.ImageURL,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rooms.Create(ctx, room); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	return c.JSON(http.StatusCreated, toRoomResp(*room))
}
