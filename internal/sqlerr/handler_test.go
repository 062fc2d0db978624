package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookline/reservation/internal/errs"
)

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, ForeignKeyViolation, MapCode("23503"))
	assert.Equal(t, NotNullViolation, MapCode("23502"))
	assert.Equal(t, CheckViolation, MapCode("23514"))
	assert.Equal(t, Other, MapCode("42P01"))
}

func TestErrCode(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", Severity: "ERROR"}
	wrapped := fmt.Errorf("insert failed: %w", ConvertPgError(pgErr))

	assert.Equal(t, UniqueViolation, ErrCode(wrapped))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
}

func TestGenerateErrorCode(t *testing.T) {
	assert.Equal(t, "PERSON_ALREADY_EXISTS", generateErrorCode("persons", UniqueViolation))
	assert.Equal(t, "RESERVATION_INVALID", generateErrorCode("reservations", CheckViolation))
	assert.Equal(t, "RECORD_ERROR", generateErrorCode("", Other))
}

func TestGetEntityName(t *testing.T) {
	assert.Equal(t, "Client", getEntityName("reservation", "client_id"))
	assert.Equal(t, "Reservation", getEntityName("reservations", ""))
	assert.Equal(t, "record", getEntityName("", ""))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_person_email"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("person_email_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation("weird_constraint"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}

func TestHandleErrorPassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewConflictError("The reservation was modified by someone else", nil)

	assert.Same(t, error(original), HandleError(original))
}

func TestHandleErrorForeignKeyViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23503",
		Severity:   "ERROR",
		TableName:  "reservation",
		ColumnName: "client_id",
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "RESERVATION_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced Client does not exist", httpErr.Message)
}

func TestHandleErrorCheckViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23514",
		Severity:   "ERROR",
		TableName:  "reservation",
		ColumnName: "party_size",
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "RESERVATION_INVALID", httpErr.Code)
	assert.Equal(t, "The Party Size value does not meet required conditions", httpErr.Message)
}

func TestHandleErrorNotNullViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23502",
		Severity:   "ERROR",
		TableName:  "person",
		ColumnName: "email",
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "email", httpErr.Errors[0].Field)
}

func TestHandleErrorUnknownPgErrorHidesDetail(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:     "42P01",
		Severity: "ERROR",
		Message:  "relation does not exist",
	})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.NotContains(t, httpErr.Message, "relation")
}

func TestHandleErrorNoRowsWithTableAnnotation(t *testing.T) {
	annotated := fmt.Errorf("table:reservation: %w", pgx.ErrNoRows)

	err := HandleError(annotated)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Reservation not found", httpErr.Message)
}

func TestHandleErrorNoRowsWithoutAnnotation(t *testing.T) {
	err := HandleError(pgx.ErrNoRows)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Resource not found", httpErr.Message)
}

func TestHandleErrorFallback(t *testing.T) {
	err := HandleError(errors.New("connection reset"))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}
