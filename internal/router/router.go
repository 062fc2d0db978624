// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"net/http"

	"github.com/bookline/reservation/internal/handler"
	"github.com/bookline/reservation/internal/middleware"
	"github.com/labstack/echo/v4"
)

// New builds the Echo instance: global middlewares first, then the
// route registrations.
//
// Middleware order matters: request IDs and tracing come before the
// context enhancer so the request-scoped logger can pick them up, and
// the request logger runs after the enhancer so it logs with full
// context.
func New(h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = m.Global.GlobalErrorHandler

	e.Use(middleware.RequestID())
	e.Use(m.Tracing.NewRelicMiddleware())
	e.Use(m.Tracing.EnhanceTracing())
	e.Use(m.ContextEnhancer.EnhanceContext())
	e.Use(m.Global.RequestLogger())
	e.Use(m.Global.CORS())
	e.Use(m.Global.Secure())
	e.Use(m.Global.Recover())

	registerSystemRoutes(e, h)
	registerReservationRoutes(e, h)

	return e
}

// registerReservationRoutes maps the reservation endpoints.
func registerReservationRoutes(r *echo.Echo, h *handler.Handlers) {
	res := h.Reservations

	r.POST("/reservations", handler.Handle(
		res.Handler, res.Create, http.StatusCreated,
		func() *handler.CreateReservationRequest { return &handler.CreateReservationRequest{} },
	))

	r.GET("/reservations", handler.Handle(
		res.Handler, res.List, http.StatusOK,
		func() *handler.ListReservationsRequest { return &handler.ListReservationsRequest{} },
	))

	r.GET("/reservations/:id", handler.Handle(
		res.Handler, res.Get, http.StatusOK,
		func() *handler.GetReservationRequest { return &handler.GetReservationRequest{} },
	))

	r.PUT("/reservations/:id", handler.Handle(
		res.Handler, res.Update, http.StatusOK,
		func() *handler.UpdateReservationRequest { return &handler.UpdateReservationRequest{} },
	))

	r.DELETE("/reservations/:id", handler.HandleNoContent(
		res.Handler, res.Delete, http.StatusNoContent,
		func() *handler.DeleteReservationRequest { return &handler.DeleteReservationRequest{} },
	))
}
