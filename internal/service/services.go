package service

import (
	"github.com/bookline/reservation/internal/lib/job"
	"github.com/bookline/reservation/internal/repository"
	"github.com/bookline/reservation/internal/server"
)

// Services is the container for the business layer, wired once and
// handed to the handlers.
type Services struct {
	Reservations *ReservationService
	Job          *job.JobService
}

// NewServices constructs the service container from the application
// container and the repositories.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	// Assign through the interface only when a job service exists, so
	// the reservation service sees a true nil rather than a typed one.
	var enqueuer TaskEnqueuer
	if s.Job != nil && s.Job.Client != nil {
		enqueuer = s.Job.Client
	}

	return &Services{
		Reservations: NewReservationService(repos.Reservations, enqueuer, s.Logger),
		Job:          s.Job,
	}, nil
}
