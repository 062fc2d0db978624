package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bookline/reservation/internal/errs"
	"github.com/bookline/reservation/internal/server"
)

// reservationDB is the pool surface the reservation repository needs.
// *pgxpool.Pool satisfies it; tests substitute a stub.
type reservationDB interface {
	querier
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ReservationRepository owns the SQL for the reservation table.
//
// All mutations are guarded by optimistic concurrency: UPDATE and
// DELETE match on both id and version, and a zero-row result is
// disambiguated into "gone" (404) or "stale" (409) by re-reading.
type ReservationRepository struct {
	db      reservationDB
	persons *PersonRepository
}

// NewReservationRepository constructs a ReservationRepository.
// It takes the person repository so reservation creation can find or
// create the client inside the same transaction.
func NewReservationRepository(s *server.Server, persons *PersonRepository) *ReservationRepository {
	return &ReservationRepository{
		db:      s.DB.Pool,
		persons: persons,
	}
}

// Create inserts a reservation, finding or creating the client first.
// Both steps run in one transaction, so a failed reservation insert
// never leaves an orphan person behind.
func (r *ReservationRepository) Create(ctx context.Context, params CreateReservationParams) (*Reservation, error) {
	var created Reservation

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		person, err := r.persons.FindOrCreate(ctx, tx, params.Name, params.Email)
		if err != nil {
			return err
		}

		const query = `
			INSERT INTO reservation (client_id, start_time, party_size, note)
			VALUES ($1, $2, $3, $4)
			RETURNING id, version`

		created = Reservation{
			ClientID:  person.ID,
			StartTime: &params.StartTime,
			PartySize: params.PartySize,
			Note:      params.Note,
		}
		return tx.QueryRow(ctx, query,
			person.ID, params.StartTime, params.PartySize, params.Note,
		).Scan(&created.ID, &created.Version)
	})
	if err != nil {
		return nil, fmt.Errorf("creating reservation: %w", err)
	}

	return &created, nil
}

// List returns the abstract view of every reservation, newest id last,
// with the client name joined in.
func (r *ReservationRepository) List(ctx context.Context) ([]ReservationSummary, error) {
	const query = `
		SELECT res.id, p.name, res.party_size, res.start_time
		FROM reservation res
		JOIN person p ON p.id = res.client_id
		ORDER BY res.id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing reservations: %w", err)
	}
	defer rows.Close()

	summaries := make([]ReservationSummary, 0)
	for rows.Next() {
		var s ReservationSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.PartySize, &s.StartTime); err != nil {
			return nil, fmt.Errorf("scanning reservation row: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reservation rows: %w", err)
	}

	return summaries, nil
}

// GetByID returns the full details of one reservation.
func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*ReservationDetail, error) {
	const query = `
		SELECT res.id, res.version, p.name, p.email, res.party_size, res.start_time, res.note
		FROM reservation res
		JOIN person p ON p.id = res.client_id
		WHERE res.id = $1`

	var d ReservationDetail
	err := r.db.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Version, &d.Name, &d.Email, &d.PartySize, &d.StartTime, &d.Note,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("table:reservation: %w", pgx.ErrNoRows)
		}
		return nil, fmt.Errorf("getting reservation: %w", err)
	}

	return &d, nil
}

// Update rewrites a reservation's mutable fields with a compare-and-swap
// on version, bumping the version on success.
func (r *ReservationRepository) Update(ctx context.Context, params UpdateReservationParams) (*Reservation, error) {
	const query = `
		UPDATE reservation
		SET start_time = $1, party_size = $2, note = $3, version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING id, version, client_id`

	var updated Reservation
	updated.StartTime = &params.StartTime
	updated.PartySize = params.PartySize
	updated.Note = params.Note

	err := r.db.QueryRow(ctx, query,
		params.StartTime, params.PartySize, params.Note, params.ID, params.Version,
	).Scan(&updated.ID, &updated.Version, &updated.ClientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.staleOrMissing(ctx, params.ID)
		}
		return nil, fmt.Errorf("updating reservation: %w", err)
	}

	return &updated, nil
}

// Delete removes a reservation with a compare-and-swap on version.
func (r *ReservationRepository) Delete(ctx context.Context, id int64, version int32) error {
	const query = `
		DELETE FROM reservation
		WHERE id = $1 AND version = $2`

	tag, err := r.db.Exec(ctx, query, id, version)
	if err != nil {
		return fmt.Errorf("deleting reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.staleOrMissing(ctx, id)
	}

	return nil
}

// staleOrMissing disambiguates a zero-row CAS result: when the row
// still exists the caller lost the race (409), otherwise it is gone
// (404 via the annotated ErrNoRows).
func (r *ReservationRepository) staleOrMissing(ctx context.Context, id int64) error {
	const query = `SELECT version FROM reservation WHERE id = $1`

	var current int32
	err := r.db.QueryRow(ctx, query, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("table:reservation: %w", pgx.ErrNoRows)
		}
		return fmt.Errorf("checking reservation version: %w", err)
	}

	return errs.NewConflictError("The reservation was modified by another request, reload and try again", nil)
}
