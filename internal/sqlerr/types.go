// Package sqlerr handles database driver errors.
//
// It parses cryptic SQLSTATE codes from the Postgres driver and
// converts them into user-friendly messages (e.g. converting a
// "foreign key violation" into a "Bad Request" error).
package sqlerr

import "github.com/jackc/pgx/v5/pgconn"

// Code classifies a database error into a category the application
// can switch on without knowing SQLSTATE numbers.
type Code int

const (
	// Other is any database error not covered by a specific category.
	Other Code = iota

	// UniqueViolation: a row with the same unique key already exists (23505).
	UniqueViolation

	// ForeignKeyViolation: a referenced row does not exist (23503).
	ForeignKeyViolation

	// NotNullViolation: a required column received NULL (23502).
	NotNullViolation

	// CheckViolation: a CHECK constraint rejected a value (23514).
	CheckViolation
)

// Severity mirrors the severity field of a Postgres error.
type Severity int

const (
	SeverityError Severity = iota
	SeverityFatal
	SeverityPanic
	SeverityOther
)

// MapCode maps a raw SQLSTATE string onto a Code.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23505":
		return UniqueViolation
	case "23503":
		return ForeignKeyViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	default:
		return Other
	}
}

// MapSeverity maps the Postgres severity string onto a Severity.
func MapSeverity(severity string) Severity {
	switch severity {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	default:
		return SeverityOther
	}
}

// Error is the application-level view of a Postgres server error.
//
// It keeps the original SQLSTATE and the schema metadata the server
// reported (table, column, constraint) so callers can build precise
// user-facing messages and machine codes.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr *pgconn.PgError
}

// Error satisfies the error interface with the database's own message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the original driver error for errors.As/Is chains.
func (e *Error) Unwrap() error {
	if e.driverErr == nil {
		return nil
	}
	return e.driverErr
}
