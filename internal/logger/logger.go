// Package logger configures the application's logging,
// monitoring, and observability.
//
// It uses zerolog for logging and integrates with New Relic to
// instrument the codebase, forwarding logs, metrics, and traces
// for debugging.
package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/bookline/reservation/internal/config"
	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// LoggerService wraps the optional New Relic application instance.
//
// When New Relic is not configured (empty license key), the service
// still exists but GetApplication returns nil, and every caller is
// expected to degrade into a no-op.
type LoggerService struct {
	nrApp *newrelic.Application
}

// GetApplication returns the New Relic application, or nil when the
// agent is not configured.
func (ls *LoggerService) GetApplication() *newrelic.Application {
	return ls.nrApp
}

// Shutdown flushes remaining agent data. Safe to call with a nil app.
func (ls *LoggerService) Shutdown(timeout time.Duration) {
	if ls.nrApp != nil {
		ls.nrApp.Shutdown(timeout)
	}
}

// New builds the application logger and the observability service.
//
// Behavior:
//   - Log level comes from ObservabilityConfig.GetLogLevel().
//   - "console" format writes pretty output to stderr (local dev);
//     anything else writes JSON.
//   - When a New Relic license key is configured, the agent is started
//     and logs are routed through zerologWriter so each entry carries
//     linking metadata for log-in-context.
func New(cfg *config.Config) (*zerolog.Logger, *LoggerService, error) {
	obs := cfg.Observability

	level, err := zerolog.ParseLevel(obs.GetLogLevel())
	if err != nil {
		return nil, nil, fmt.Errorf("parsing log level: %w", err)
	}

	service := &LoggerService{}

	if obs.NewRelic.LicenseKey != "" {
		nrApp, err := newrelic.NewApplication(
			newrelic.ConfigAppName(obs.ServiceName),
			newrelic.ConfigLicense(obs.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(obs.NewRelic.DistributedTracingEnabled),
			newrelic.ConfigAppLogForwardingEnabled(obs.NewRelic.AppLogForwardingEnabled),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("initializing new relic application: %w", err)
		}
		service.nrApp = nrApp
	}

	var logger zerolog.Logger
	switch {
	case obs.Logging.Format == "console":
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().
			Str("service", obs.ServiceName).
			Logger()

	case service.nrApp != nil:
		// JSON to stdout, decorated with New Relic linking metadata so
		// log forwarding can correlate entries with traces.
		writer := zerologWriter.New(os.Stdout, service.nrApp)
		if obs.NewRelic.DebugLogging {
			writer.DebugLogging(true)
		}
		logger = zerolog.New(writer).
			Level(level).
			With().Timestamp().
			Str("service", obs.ServiceName).
			Str("env", obs.Environment).
			Logger()

	default:
		logger = zerolog.New(os.Stdout).
			Level(level).
			With().Timestamp().
			Str("service", obs.ServiceName).
			Str("env", obs.Environment).
			Logger()
	}

	return &logger, service, nil
}

// WithTraceContext returns a child logger enriched with the trace and
// span ids of the given transaction, so log lines correlate with traces.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}

	md := txn.GetLinkingMetadata()
	return logger.With().
		Str("trace.id", md.TraceID).
		Str("span.id", md.SpanID).
		Logger()
}

// NewPgxLogger builds the logger used for pgx SQL tracelog output.
//
// SQL logging is noisy, so it gets its own logger tagged with a
// component field instead of reusing the application logger directly.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().
		Str("component", "pgx").
		Logger()
}

// GetPgxTraceLogLevel converts a zerolog level into the pgx tracelog
// level scale (tracelog counts from None=1 up to Trace=6).
func GetPgxTraceLogLevel(level zerolog.Level) int {
	switch level {
	case zerolog.TraceLevel:
		return 6 // tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return 5 // tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return 4 // tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return 3 // tracelog.LogLevelWarn
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return 2 // tracelog.LogLevelError
	default:
		return 1 // tracelog.LogLevelNone
	}
}
