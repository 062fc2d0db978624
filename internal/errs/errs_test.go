package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", MakeUpperCaseWithUnderscores("Internal Server Error"))
	assert.Equal(t, "CONFLICT", MakeUpperCaseWithUnderscores("Conflict"))
}

func TestNewBadRequestErrorDefaults(t *testing.T) {
	err := NewBadRequestError("party size too small", true, nil, nil, nil)

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "BAD_REQUEST", err.Code)
	assert.Equal(t, "party size too small", err.Message)
	assert.True(t, err.Override)
}

func TestNewBadRequestErrorCustomCode(t *testing.T) {
	code := "RESERVATION_CREATE_FAILED"
	err := NewBadRequestError("nope", false, &code, nil, nil)

	assert.Equal(t, "RESERVATION_CREATE_FAILED", err.Code)
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("Reservation not found", true, nil)

	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "NOT_FOUND", err.Code)
}

func TestNewConflictError(t *testing.T) {
	err := NewConflictError("The reservation was modified by someone else", nil)

	assert.Equal(t, http.StatusConflict, err.Status)
	assert.Equal(t, "CONFLICT", err.Code)
	assert.True(t, err.Override)
}

func TestNewInternalServerErrorHidesDetail(t *testing.T) {
	err := NewInternalServerError()

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), err.Message)
	assert.False(t, err.Override)
}

func TestHTTPErrorIsMatchesByType(t *testing.T) {
	base := NewBadRequestError("x", false, nil, nil, nil)
	wrapped := fmt.Errorf("handler failed: %w", base)

	assert.True(t, errors.Is(wrapped, &HTTPError{}))
	assert.False(t, errors.Is(errors.New("plain"), &HTTPError{}))
}

func TestWithMessageCopies(t *testing.T) {
	base := NewNotFoundError("Person not found", true, nil)
	derived := base.WithMessage("Reservation not found")

	assert.Equal(t, "Person not found", base.Message)
	assert.Equal(t, "Reservation not found", derived.Message)
	assert.Equal(t, base.Code, derived.Code)
	assert.Equal(t, base.Status, derived.Status)
}
