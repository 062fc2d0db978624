package router

import (
	"github.com/bookline/reservation/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers "system" endpoints that are not part
// of business logic: health status for monitors and the build version.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	// Health status endpoint (used by Kubernetes/monitors).
	r.GET("/status", h.Health.CheckHealth)

	// Service name and version, also a cheap liveness probe.
	r.GET("/version", h.Version.GetVersion)
}
