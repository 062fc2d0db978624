package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookline/reservation/internal/errs"
)

var testValidator = validator.New()

type signupPayload struct {
	Name  string `json:"name" validate:"required,max=10"`
	Email string `json:"email" validate:"required,email"`
}

func (p *signupPayload) Validate() error {
	return testValidator.Struct(p)
}

type customPayload struct {
	When string `json:"when"`
}

func (p *customPayload) Validate() error {
	if p.When == "never" {
		return CustomValidationErrors{
			{Field: "when", Message: "must be a real moment"},
		}
	}
	return nil
}

func newJSONContext(t *testing.T, body string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestBindAndValidateSuccess(t *testing.T) {
	c := newJSONContext(t, `{"name":"Ada","email":"ada@example.com"}`)

	payload := &signupPayload{}
	require.NoError(t, BindAndValidate(c, payload))
	assert.Equal(t, "Ada", payload.Name)
}

func TestBindAndValidateMissingFields(t *testing.T) {
	c := newJSONContext(t, `{}`)

	err := BindAndValidate(c, &signupPayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Len(t, httpErr.Errors, 2)
	assert.Equal(t, "name", httpErr.Errors[0].Field)
	assert.Equal(t, "is required", httpErr.Errors[0].Error)
	assert.Equal(t, "email", httpErr.Errors[1].Field)
}

func TestBindAndValidateFieldMessages(t *testing.T) {
	c := newJSONContext(t, `{"name":"a name that is way too long","email":"not-an-email"}`)

	err := BindAndValidate(c, &signupPayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Len(t, httpErr.Errors, 2)
	assert.Equal(t, "must not exceed 10 characters", httpErr.Errors[0].Error)
	assert.Equal(t, "must be a valid email address", httpErr.Errors[1].Error)
}

func TestBindAndValidateCustomErrors(t *testing.T) {
	c := newJSONContext(t, `{"when":"never"}`)

	err := BindAndValidate(c, &customPayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "when", httpErr.Errors[0].Field)
	assert.Equal(t, "must be a real moment", httpErr.Errors[0].Error)
}

func TestBindAndValidateMalformedJSON(t *testing.T) {
	c := newJSONContext(t, `{"name":`)

	err := BindAndValidate(c, &signupPayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestBindAndValidateTypeMismatch(t *testing.T) {
	c := newJSONContext(t, `{"size":"four"}`)

	err := BindAndValidate(c, &customSized{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

type customSized struct {
	Size int `json:"size"`
}

func (p *customSized) Validate() error { return nil }
