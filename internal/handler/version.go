package handler

import (
	"net/http"

	"github.com/bookline/reservation/internal/config"
	"github.com/bookline/reservation/internal/server"
	"github.com/labstack/echo/v4"
)

// VersionHandler serves the service identity endpoint.
type VersionHandler struct {
	Handler
}

// NewVersionHandler constructs a VersionHandler.
func NewVersionHandler(s *server.Server) *VersionHandler {
	return &VersionHandler{
		Handler: NewHandler(s),
	}
}

// VersionResponse reports which service answered and at what version.
type VersionResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
}

// GetVersion handles GET /version.
func (h *VersionHandler) GetVersion(c echo.Context) error {
	return c.JSON(http.StatusOK, VersionResponse{
		Service: config.ServiceName,
		Version: config.ServiceVersion,
	})
}
