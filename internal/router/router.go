package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/ivaldez/meeting-room-reservation/internal/handler"
	"github.com/ivaldez/meeting-room-reservation/internal/middleware"
	"github.com/ivaldez/meeting-room-reservation/internal/model"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth      *handler.AuthHandler
	Booking   *handler.BookingHandler
	Room      *handler.RoomHandler
	Area      *handler.AreaHandler
	Dashboard *handler.DashboardHandler
	Report    *handler.ReportHandler
}

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check, used by load balancers to
// verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers unauthenticated browse endpoints: the room
// catalogue and the area list, both needed before a session exists.
// cacheMW wraps the room list since the catalogue changes rarely; pass
// a pass-through middleware to disable caching.
func RegisterPublic(e *echo.Echo, h Handlers, cacheMW echo.MiddlewareFunc) {
	e.GET("/v1/rooms", h.Room.List, cacheMW)
	e.GET("/v1/rooms/:id", h.Room.Get)
	e.GET("/v1/areas", h.Area.List)
}

// RegisterAuth registers authentication routes.  Unauthenticated
// operations live under /v1/auth; /v1/me requires a valid token.
// Logout deliberately sits outside the JWT middleware so a client can
// always end a session with just its refresh token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterBooking registers the reservation workflow.  Any
// authenticated user can create bookings and list their own; deciding
// bookings and browsing an area's pending queue require the
// COORDINATOR or ADMIN role.
func RegisterBooking(e *echo.Echo, h Handlers, jwtSecret string) {
	user := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	user.POST("/bookings", h.Booking.Create)
	user.GET("/my-bookings", h.Booking.ListMine)
	user.GET("/bookings/upcoming", h.Booking.ListUpcoming)
	user.GET("/rooms/:id/availability", h.Booking.Availability)

	decide := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCoordinator, model.RoleAdmin),
	)
	decide.PUT("/bookings/:id/decision", h.Booking.Decide)
	decide.GET("/areas/:id/pending", h.Booking.ListPendingByArea)
}

// RegisterAdmin registers administrator endpoints: room management,
// dashboard counters and the reservation report with its XLSX export.
func RegisterAdmin(e *echo.Echo, h Handlers, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
	g.POST("/rooms", h.Room.Create)
	g.GET("/dashboard", h.Dashboard.Stats)
	g.GET("/reports", h.Report.List)
	g.GET("/reports/export", h.Report.Export)
	g.GET("/users", h.Report.ListUsers)
}
