package repository

import (
	"github.com/bookline/reservation/internal/server"
)

// Repositories is the container for all repository instances, wired
// once and passed to the service layer.
type Repositories struct {
	Persons      *PersonRepository
	Reservations *ReservationRepository
}

// NewRepositories constructs the repository container using the shared
// application container (the DB pool lives on s.DB).
func NewRepositories(s *server.Server) *Repositories {
	persons := NewPersonRepository(s)

	return &Repositories{
		Persons:      persons,
		Reservations: NewReservationRepository(s, persons),
	}
}
