package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bookline/reservation/internal/server"
)

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx,
// so person lookups can run standalone or inside a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PersonRepository owns the SQL for the person table.
type PersonRepository struct {
	server *server.Server
}

// NewPersonRepository constructs a PersonRepository.
func NewPersonRepository(s *server.Server) *PersonRepository {
	return &PersonRepository{server: s}
}

// FindByNameEmail looks a person up by case-insensitive name and email
// match. ILIKE without wildcards is case-insensitive equality, which is
// exactly the identity rule for clients.
//
// Returns (nil, nil) when no person matches.
func (r *PersonRepository) FindByNameEmail(ctx context.Context, q querier, name, email string) (*Person, error) {
	const query = `
		SELECT id, version, name, email
		FROM person
		WHERE name ILIKE $1 AND email ILIKE $2
		LIMIT 1`

	var p Person
	err := q.QueryRow(ctx, query, name, email).Scan(&p.ID, &p.Version, &p.Name, &p.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding person: %w", err)
	}

	return &p, nil
}

// Create inserts a new person and returns the stored row.
func (r *PersonRepository) Create(ctx context.Context, q querier, name, email string) (*Person, error) {
	const query = `
		INSERT INTO person (name, email)
		VALUES ($1, $2)
		RETURNING id, version`

	p := Person{Name: name, Email: email}
	err := q.QueryRow(ctx, query, name, email).Scan(&p.ID, &p.Version)
	if err != nil {
		return nil, fmt.Errorf("creating person: %w", err)
	}

	return &p, nil
}

// FindOrCreate returns the person matching name+email, creating one
// when absent. Runs against whatever querier the caller supplies, so
// it can participate in the reservation-creation transaction.
func (r *PersonRepository) FindOrCreate(ctx context.Context, q querier, name, email string) (*Person, error) {
	person, err := r.FindByNameEmail(ctx, q, name, email)
	if err != nil {
		return nil, err
	}
	if person != nil {
		return person, nil
	}

	return r.Create(ctx, q, name, email)
}

// GetByID fetches a person by primary key.
func (r *PersonRepository) GetByID(ctx context.Context, id int64) (*Person, error) {
	const query = `
		SELECT id, version, name, email
		FROM person
		WHERE id = $1`

	var p Person
	err := r.server.DB.Pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Version, &p.Name, &p.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The "table:" marker lets sqlerr surface the entity name
			// in the 404 message.
			return nil, fmt.Errorf("table:person: %w", pgx.ErrNoRows)
		}
		return nil, fmt.Errorf("getting person: %w", err)
	}

	return &p, nil
}
