package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRow satisfies pgx.Row with a canned Scan.
type stubRow struct {
	scan func(dest ...any) error
}

func (r stubRow) Scan(dest ...any) error {
	return r.scan(dest...)
}

// stubQuerier returns one prepared row per QueryRow call, in order,
// and records the queries it saw.
type stubQuerier struct {
	rows    []stubRow
	queries []string
	args    [][]any
}

func (q *stubQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.queries = append(q.queries, sql)
	q.args = append(q.args, args)

	row := q.rows[0]
	q.rows = q.rows[1:]
	return row
}

func personRow(id int64, version int32, name, email string) stubRow {
	return stubRow{scan: func(dest ...any) error {
		*dest[0].(*int64) = id
		*dest[1].(*int32) = version
		*dest[2].(*string) = name
		*dest[3].(*string) = email
		return nil
	}}
}

func noRows() stubRow {
	return stubRow{scan: func(...any) error { return pgx.ErrNoRows }}
}

func TestFindByNameEmailFound(t *testing.T) {
	q := &stubQuerier{rows: []stubRow{personRow(4, 1, "Ada", "ada@example.com")}}
	repo := NewPersonRepository(nil)

	person, err := repo.FindByNameEmail(context.Background(), q, "ada", "ADA@example.com")

	require.NoError(t, err)
	require.NotNil(t, person)
	assert.Equal(t, int64(4), person.ID)
	assert.Equal(t, "Ada", person.Name)
	require.Len(t, q.args, 1)
	assert.Equal(t, []any{"ada", "ADA@example.com"}, q.args[0])
}

func TestFindByNameEmailAbsent(t *testing.T) {
	q := &stubQuerier{rows: []stubRow{noRows()}}
	repo := NewPersonRepository(nil)

	person, err := repo.FindByNameEmail(context.Background(), q, "ada", "ada@example.com")

	require.NoError(t, err, "no match is not an error, the caller decides")
	assert.Nil(t, person)
}

func TestFindOrCreateReturnsExisting(t *testing.T) {
	q := &stubQuerier{rows: []stubRow{personRow(4, 2, "Ada", "ada@example.com")}}
	repo := NewPersonRepository(nil)

	person, err := repo.FindOrCreate(context.Background(), q, "Ada", "ada@example.com")

	require.NoError(t, err)
	assert.Equal(t, int64(4), person.ID)
	assert.Len(t, q.queries, 1, "no insert when the person exists")
}

func TestFindOrCreateInsertsWhenAbsent(t *testing.T) {
	insertedRow := stubRow{scan: func(dest ...any) error {
		*dest[0].(*int64) = 9
		*dest[1].(*int32) = 1
		return nil
	}}
	q := &stubQuerier{rows: []stubRow{noRows(), insertedRow}}
	repo := NewPersonRepository(nil)

	person, err := repo.FindOrCreate(context.Background(), q, "Ada", "ada@example.com")

	require.NoError(t, err)
	assert.Equal(t, int64(9), person.ID)
	assert.Equal(t, int32(1), person.Version)
	assert.Equal(t, "Ada", person.Name)
	require.Len(t, q.queries, 2)
	assert.Contains(t, q.queries[1], "INSERT INTO person")
}
