// Package errs defines the error types the API returns to clients.
//
// Every error that leaves the service is eventually shaped into an
// HTTPError, so clients always receive a consistent JSON schema:
// a machine-readable code, a human-readable message, the HTTP status,
// and optionally field-level validation errors.
package errs

import "strings"

// FieldError represents a single field-level validation failure.
//
// Example:
//
//	{ "field": "email", "error": "must be a valid email address" }
type FieldError struct {
	// Field is the field name the error relates to (e.g. "email").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// ActionType is a string-based enum describing what the client should do next.
type ActionType string

const (
	// ActionTypeRedirect tells the client to redirect; Value holds the target.
	ActionTypeRedirect ActionType = "redirect"
)

// Action is an optional client instruction attached to an error response.
type Action struct {
	// Type is the kind of action (e.g. "redirect").
	Type ActionType `json:"type"`

	// Message is human-readable guidance for the client/UI.
	Message string `json:"message"`

	// Value is the payload for the action (e.g. a redirect URL).
	Value string `json:"value"`
}

// HTTPError is the error type serialized to API clients.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: whether the message is safe for the client UI to show verbatim.
//   - Errors: list of per-field validation errors.
//   - Action: optional client instruction.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors, typically for request bodies.
	Errors []FieldError `json:"errors"`

	// Action is an optional client instruction (redirect, etc.).
	Action *Action `json:"action"`
}

// Error makes *HTTPError satisfy the built-in error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also a *HTTPError.
//
// It intentionally matches on type only, not on Code/Status, so
// errors.Is(err, &HTTPError{}) answers "is this one of ours".
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
//
// Useful when a base error acts as a template and only the message varies.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
		Action:   e.Action,
	}
}

// MakeUpperCaseWithUnderscores converts a string into UPPER_CASE_WITH_UNDERSCORES.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
//
// Used to derive stable machine-readable error codes from HTTP status text.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
