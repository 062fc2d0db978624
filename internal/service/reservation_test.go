package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookline/reservation/internal/errs"
	"github.com/bookline/reservation/internal/repository"
)

// stubStore records calls and returns canned results.
type stubStore struct {
	created      *repository.Reservation
	createErr    error
	createParams *repository.CreateReservationParams

	updated      *repository.Reservation
	updateErr    error
	updateParams *repository.UpdateReservationParams

	deleteErr     error
	deletedID     int64
	deleteVersion int32

	summaries []repository.ReservationSummary
	detail    *repository.ReservationDetail
	getErr    error
}

func (s *stubStore) Create(_ context.Context, params repository.CreateReservationParams) (*repository.Reservation, error) {
	s.createParams = &params
	return s.created, s.createErr
}

func (s *stubStore) List(context.Context) ([]repository.ReservationSummary, error) {
	return s.summaries, nil
}

func (s *stubStore) GetByID(_ context.Context, id int64) (*repository.ReservationDetail, error) {
	return s.detail, s.getErr
}

func (s *stubStore) Update(_ context.Context, params repository.UpdateReservationParams) (*repository.Reservation, error) {
	s.updateParams = &params
	return s.updated, s.updateErr
}

func (s *stubStore) Delete(_ context.Context, id int64, version int32) error {
	s.deletedID = id
	s.deleteVersion = version
	return s.deleteErr
}

// stubEnqueuer records enqueued tasks and optionally fails.
type stubEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (e *stubEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func newTestService(store ReservationStore, enqueuer TaskEnqueuer, now time.Time) *ReservationService {
	logger := zerolog.Nop()
	svc := NewReservationService(store, enqueuer, &logger)
	svc.now = func() time.Time { return now }
	return svc
}

func TestCreateRejectsPastTime(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &stubStore{}
	svc := newTestService(store, nil, now)

	_, err := svc.Create(context.Background(), repository.CreateReservationParams{
		Name:      "Ada",
		Email:     "ada@example.com",
		StartTime: now.Add(-time.Hour),
		PartySize: 2,
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Status)
	assert.Equal(t, "The reservation must be in the future", httpErr.Message)
	assert.Nil(t, store.createParams, "store must not be called")
}

func TestCreateRejectsExactlyNow(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(&stubStore{}, nil, now)

	_, err := svc.Create(context.Background(), repository.CreateReservationParams{
		Name:      "Ada",
		Email:     "ada@example.com",
		StartTime: now,
		PartySize: 2,
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Status)
}

func TestCreateRejectsEmptyParty(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(&stubStore{}, nil, now)

	_, err := svc.Create(context.Background(), repository.CreateReservationParams{
		Name:      "Ada",
		Email:     "ada@example.com",
		StartTime: now.Add(time.Hour),
		PartySize: 0,
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Status)
	assert.Equal(t, "Your party size must be of at least 1", httpErr.Message)
}

func TestCreatePersistsAndQueuesConfirmation(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &stubStore{
		created: &repository.Reservation{ID: 7, Version: 1},
	}
	enqueuer := &stubEnqueuer{}
	svc := newTestService(store, enqueuer, now)

	created, err := svc.Create(context.Background(), repository.CreateReservationParams{
		Name:      "Ada",
		Email:     "ada@example.com",
		StartTime: now.Add(2 * time.Hour),
		PartySize: 4,
		Note:      "window seat",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, int32(1), created.Version)
	require.NotNil(t, store.createParams)
	assert.Equal(t, "window seat", store.createParams.Note)
	require.Len(t, enqueuer.tasks, 1)
	assert.Equal(t, "email:reservation_confirmation", enqueuer.tasks[0].Type())
}

func TestCreateSurvivesEnqueueFailure(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &stubStore{
		created: &repository.Reservation{ID: 3, Version: 1},
	}
	enqueuer := &stubEnqueuer{err: errors.New("redis down")}
	svc := newTestService(store, enqueuer, now)

	created, err := svc.Create(context.Background(), repository.CreateReservationParams{
		Name:      "Ada",
		Email:     "ada@example.com",
		StartTime: now.Add(time.Hour),
		PartySize: 2,
	})

	require.NoError(t, err, "queue failures must not surface to the client")
	assert.Equal(t, int64(3), created.ID)
}

func TestCreateWithoutEnqueuer(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &stubStore{
		created: &repository.Reservation{ID: 9, Version: 1},
	}
	svc := newTestService(store, nil, now)

	_, err := svc.Create(context.Background(), repository.CreateReservationParams{
		Name:      "Ada",
		Email:     "ada@example.com",
		StartTime: now.Add(time.Hour),
		PartySize: 2,
	})

	require.NoError(t, err)
}

func TestUpdateEnforcesDomainRules(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &stubStore{
		updated: &repository.Reservation{ID: 5, Version: 3},
	}
	svc := newTestService(store, nil, now)

	_, err := svc.Update(context.Background(), repository.UpdateReservationParams{
		ID:        5,
		Version:   2,
		StartTime: now.Add(-time.Minute),
		PartySize: 2,
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Status)

	updated, err := svc.Update(context.Background(), repository.UpdateReservationParams{
		ID:        5,
		Version:   2,
		StartTime: now.Add(time.Hour),
		PartySize: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, int32(3), updated.Version)
	require.NotNil(t, store.updateParams)
	assert.Equal(t, int32(2), store.updateParams.Version)
}

func TestDeletePassesVersionThrough(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(store, nil, time.Now())

	require.NoError(t, svc.Delete(context.Background(), 11, 4))
	assert.Equal(t, int64(11), store.deletedID)
	assert.Equal(t, int32(4), store.deleteVersion)
}
