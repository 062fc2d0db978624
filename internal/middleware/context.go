package middleware

import (
	"context"

	"github.com/bookline/reservation/internal/logger"
	"github.com/bookline/reservation/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

const (
	// LoggerKey is the key for the request-scoped logger in both the
	// Echo context and the request's context.Context.
	LoggerKey = "logger"
)

// ContextEnhancer enriches each request with a request-scoped logger
// carrying correlation fields: request_id, method, path, ip, and
// trace.id/span.id when a New Relic transaction exists.
//
// The logger is stored both in Echo context (for handlers) and in the
// Go request context (for layers that only see context.Context).
type ContextEnhancer struct {
	server *server.Server
}

// NewContextEnhancer creates a ContextEnhancer using the app container.
func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext returns the Echo middleware. It must run after the
// RequestID middleware so the correlation ID is available.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := GetRequestID(c)

			contextLogger := ce.server.Logger.With().
				Str("request_id", requestID).
				Str("method", c.Request().Method).
				Str("path", c.Path()). // route template ("/reservations/:id"), not raw URL
				Str("ip", c.RealIP()).
				Logger()

			// Correlate log lines with the New Relic trace when one exists.
			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			c.Set(LoggerKey, &contextLogger)

			// Also stored in the Go request context so repositories and
			// services can fetch the request logger without Echo types.
			ctx := context.WithValue(c.Request().Context(), loggerCtxKey{}, &contextLogger)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// loggerCtxKey is an unexported context key type, so no other package
// can collide with the logger value.
type loggerCtxKey struct{}

// GetLogger retrieves the request-scoped logger from Echo context.
// Returns a no-op logger when EnhanceContext did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}

	logger := zerolog.Nop()
	return &logger
}

// LoggerFromContext retrieves the request-scoped logger from a plain
// context.Context. Returns a no-op logger when absent.
func LoggerFromContext(ctx context.Context) *zerolog.Logger {
	if logger, ok := ctx.Value(loggerCtxKey{}).(*zerolog.Logger); ok {
		return logger
	}

	logger := zerolog.Nop()
	return &logger
}
