package handler

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/bookline/reservation/internal/repository"
	"github.com/bookline/reservation/internal/server"
	"github.com/bookline/reservation/internal/service"
	"github.com/bookline/reservation/internal/validation"
)

// validate is the shared validator instance for request structs.
// validator.Validate is safe for concurrent use and caches struct info.
var validate = validator.New()

// ReservationHandler exposes the reservation endpoints.
type ReservationHandler struct {
	Handler
	reservations *service.ReservationService
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(s *server.Server, reservations *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		Handler:      NewHandler(s),
		reservations: reservations,
	}
}

// --- Requests ----------------------------------------------------------------

// CreateReservationRequest is the JSON body for POST /reservations.
//
// Field names match the original public API: name, email, size, time,
// and an optional note. Time is an RFC 3339 timestamp.
type CreateReservationRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email,max=100"`
	Size  int    `json:"size" validate:"required"`
	Time  string `json:"time" validate:"required"`
	Note  string `json:"note"`
}

// Validate applies tag validation plus the time-format check that tags
// cannot express.
func (r *CreateReservationRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}

	if _, err := time.Parse(time.RFC3339, r.Time); err != nil {
		return validation.CustomValidationErrors{
			{Field: "time", Message: "must be a valid RFC 3339 timestamp, e.g. 2026-01-02T19:30:00Z"},
		}
	}

	return nil
}

// ListReservationsRequest is the (empty) payload for GET /reservations.
type ListReservationsRequest struct{}

func (r *ListReservationsRequest) Validate() error { return nil }

// GetReservationRequest binds the path parameter for
// GET /reservations/:id. A non-integer id fails binding with a 400.
type GetReservationRequest struct {
	ID int64 `param:"id"`
}

func (r *GetReservationRequest) Validate() error { return nil }

// UpdateReservationRequest is the JSON body for PUT /reservations/:id.
// Version carries the row version the client read; the update only
// applies when it still matches.
type UpdateReservationRequest struct {
	ID      int64  `param:"id" json:"-"`
	Version int32  `json:"version" validate:"required"`
	Size    int    `json:"size" validate:"required"`
	Time    string `json:"time" validate:"required"`
	Note    string `json:"note"`
}

func (r *UpdateReservationRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}

	if _, err := time.Parse(time.RFC3339, r.Time); err != nil {
		return validation.CustomValidationErrors{
			{Field: "time", Message: "must be a valid RFC 3339 timestamp, e.g. 2026-01-02T19:30:00Z"},
		}
	}

	return nil
}

// DeleteReservationRequest binds DELETE /reservations/:id. The version
// guard travels as a query parameter since DELETE carries no body.
type DeleteReservationRequest struct {
	ID      int64 `param:"id"`
	Version int32 `query:"version" validate:"required"`
}

func (r *DeleteReservationRequest) Validate() error {
	return validate.Struct(r)
}

// --- Responses ---------------------------------------------------------------

// ReservationSummaryResponse is one element of the list view.
type ReservationSummaryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Size int    `json:"size"`
	Time string `json:"time"`
}

// ReservationDetailResponse is the full single-reservation view.
type ReservationDetailResponse struct {
	ID      int64  `json:"id"`
	Version int32  `json:"version"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Size    int    `json:"size"`
	Time    string `json:"time"`
	Note    string `json:"note"`
}

// ReservationCreatedResponse acknowledges a creation or update with
// the identifiers the client needs for follow-up requests.
type ReservationCreatedResponse struct {
	ID      int64 `json:"id"`
	Version int32 `json:"version"`
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// --- Endpoints ---------------------------------------------------------------

// Create handles POST /reservations.
func (h *ReservationHandler) Create(c echo.Context, req *CreateReservationRequest) (*ReservationCreatedResponse, error) {
	// Time format was checked during validation.
	startTime, _ := time.Parse(time.RFC3339, req.Time)

	created, err := h.reservations.Create(c.Request().Context(), repository.CreateReservationParams{
		Name:      req.Name,
		Email:     req.Email,
		StartTime: startTime,
		PartySize: req.Size,
		Note:      req.Note,
	})
	if err != nil {
		return nil, err
	}

	return &ReservationCreatedResponse{
		ID:      created.ID,
		Version: created.Version,
	}, nil
}

// List handles GET /reservations. Only the abstract view of each
// reservation is returned for efficiency.
func (h *ReservationHandler) List(c echo.Context, _ *ListReservationsRequest) ([]ReservationSummaryResponse, error) {
	summaries, err := h.reservations.List(c.Request().Context())
	if err != nil {
		return nil, err
	}

	response := make([]ReservationSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		response = append(response, ReservationSummaryResponse{
			ID:   s.ID,
			Name: s.Name,
			Size: s.PartySize,
			Time: formatTime(s.StartTime),
		})
	}

	return response, nil
}

// Get handles GET /reservations/:id.
func (h *ReservationHandler) Get(c echo.Context, req *GetReservationRequest) (*ReservationDetailResponse, error) {
	detail, err := h.reservations.Get(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}

	return &ReservationDetailResponse{
		ID:      detail.ID,
		Version: detail.Version,
		Name:    detail.Name,
		Email:   detail.Email,
		Size:    detail.PartySize,
		Time:    formatTime(detail.StartTime),
		Note:    detail.Note,
	}, nil
}

// Update handles PUT /reservations/:id.
func (h *ReservationHandler) Update(c echo.Context, req *UpdateReservationRequest) (*ReservationCreatedResponse, error) {
	startTime, _ := time.Parse(time.RFC3339, req.Time)

	updated, err := h.reservations.Update(c.Request().Context(), repository.UpdateReservationParams{
		ID:        req.ID,
		Version:   req.Version,
		StartTime: startTime,
		PartySize: req.Size,
		Note:      req.Note,
	})
	if err != nil {
		return nil, err
	}

	return &ReservationCreatedResponse{
		ID:      updated.ID,
		Version: updated.Version,
	}, nil
}

// Delete handles DELETE /reservations/:id.
func (h *ReservationHandler) Delete(c echo.Context, req *DeleteReservationRequest) error {
	return h.reservations.Delete(c.Request().Context(), req.ID, req.Version)
}
