package service

import (
	"context"
	"time"

	"github.com/bookline/reservation/internal/errs"
	"github.com/bookline/reservation/internal/lib/job"
	"github.com/bookline/reservation/internal/repository"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// ReservationStore is the persistence surface the reservation service
// depends on. *repository.ReservationRepository satisfies it; tests
// substitute a stub.
type ReservationStore interface {
	Create(ctx context.Context, params repository.CreateReservationParams) (*repository.Reservation, error)
	List(ctx context.Context) ([]repository.ReservationSummary, error)
	GetByID(ctx context.Context, id int64) (*repository.ReservationDetail, error)
	Update(ctx context.Context, params repository.UpdateReservationParams) (*repository.Reservation, error)
	Delete(ctx context.Context, id int64, version int32) error
}

// TaskEnqueuer is the slice of asynq.Client the service uses to queue
// confirmation emails.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ReservationService implements the reservation domain rules:
// reservations must be in the future, parties have at least one guest,
// and a successful creation queues a confirmation email.
type ReservationService struct {
	store    ReservationStore
	enqueuer TaskEnqueuer
	logger   *zerolog.Logger

	// now is stubbed in tests; defaults to time.Now.
	now func() time.Time
}

// NewReservationService constructs a ReservationService.
func NewReservationService(store ReservationStore, enqueuer TaskEnqueuer, logger *zerolog.Logger) *ReservationService {
	return &ReservationService{
		store:    store,
		enqueuer: enqueuer,
		logger:   logger,
		now:      time.Now,
	}
}

// Create validates the domain rules and persists a new reservation.
//
// The handler layer already checked field presence and formats; this
// layer owns the time-dependent rule (the reservation must lie in the
// future) and the party-size floor. The confirmation email is queued
// best-effort: a queue failure is logged, never surfaced to the client.
func (s *ReservationService) Create(ctx context.Context, params repository.CreateReservationParams) (*repository.Reservation, error) {
	if !params.StartTime.After(s.now()) {
		return nil, errs.NewBadRequestError("The reservation must be in the future", true, nil, nil, nil)
	}
	if params.PartySize < 1 {
		return nil, errs.NewBadRequestError("Your party size must be of at least 1", true, nil, nil, nil)
	}

	created, err := s.store.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	s.enqueueConfirmation(ctx, params, created)

	return created, nil
}

// enqueueConfirmation queues the confirmation email for a created
// reservation. Failures are logged and swallowed: the reservation is
// already committed, the email is a side channel.
func (s *ReservationService) enqueueConfirmation(ctx context.Context, params repository.CreateReservationParams, created *repository.Reservation) {
	if s.enqueuer == nil {
		return
	}

	task, err := job.NewReservationConfirmationTask(
		params.Email,
		params.Name,
		params.StartTime.Format(time.RFC3339),
		params.PartySize,
	)
	if err != nil {
		s.logger.Error().Err(err).
			Int64("reservation_id", created.ID).
			Msg("failed to build confirmation email task")
		return
	}

	if _, err := s.enqueuer.EnqueueContext(ctx, task); err != nil {
		s.logger.Error().Err(err).
			Int64("reservation_id", created.ID).
			Msg("failed to enqueue confirmation email")
		return
	}

	s.logger.Info().
		Int64("reservation_id", created.ID).
		Msg("queued confirmation email")
}

// List returns the abstract view of all reservations.
func (s *ReservationService) List(ctx context.Context) ([]repository.ReservationSummary, error) {
	return s.store.List(ctx)
}

// Get returns the full details of one reservation.
func (s *ReservationService) Get(ctx context.Context, id int64) (*repository.ReservationDetail, error) {
	return s.store.GetByID(ctx, id)
}

// Update rewrites a reservation under the same domain rules as Create,
// guarded by the version the client read (409 on mismatch).
func (s *ReservationService) Update(ctx context.Context, params repository.UpdateReservationParams) (*repository.Reservation, error) {
	if !params.StartTime.After(s.now()) {
		return nil, errs.NewBadRequestError("The reservation must be in the future", true, nil, nil, nil)
	}
	if params.PartySize < 1 {
		return nil, errs.NewBadRequestError("Your party size must be of at least 1", true, nil, nil, nil)
	}

	return s.store.Update(ctx, params)
}

// Delete removes a reservation, guarded by the version the client read.
func (s *ReservationService) Delete(ctx context.Context, id int64, version int32) error {
	return s.store.Delete(ctx, id, version)
}
