package handler

import (
	"github.com/bookline/reservation/internal/server"
	"github.com/bookline/reservation/internal/service"
)

// Handlers aggregates every HTTP handler in the application.
type Handlers struct {
	Health       *HealthHandler
	Version      *VersionHandler
	Reservations *ReservationHandler
}

// NewHandlers constructs all handlers with their service dependencies.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(s),
		Version:      NewVersionHandler(s),
		Reservations: NewReservationHandler(s, services.Reservations),
	}
}
