// Package config manages environment variables.
//
// It reads variables from the environment (optionally seeded from a
// `.env` file), loads them into structured Go types, and validates
// that required values are present so the app fails fast on bad or
// missing config.
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before anything reads env vars.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

const (
	// ServiceName identifies this service in the /version endpoint,
	// logs, and APM dashboards.
	ServiceName = "reservation"

	// ServiceVersion is reported by the /version endpoint.
	ServiceVersion = "0.1.0"
)

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf should map values from;
// env keys use the RESERVATION_ prefix with "." nesting, so
// RESERVATION_SERVER.PORT maps to Config.Server.Port.
//
// Observability is a pointer because it is optional; defaults are
// injected at load time when it is absent.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment,
// used to tag logs/traces and switch behavior per environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are stored as integer seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details ("host:port").
// Redis backs the background job queue for confirmation emails.
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// IntegrationConfig stores third-party API credentials.
//
// ResendAPIKey may be empty: the email client then runs in dry-run
// mode and only logs what it would have sent.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
}

// Load loads configuration from environment variables, unmarshals it
// into Config, validates it, and applies observability defaults.
//
// Behavior:
//   - Loads env vars with the RESERVATION_ prefix
//   - Converts env keys into koanf keys using "." nesting
//   - Validates required fields (fails fast via Fatal on errors)
//   - Injects default observability config when missing
//   - Forces observability service name + environment
func Load() (*Config, error) {
	// Early logger for config-time failures; the real logger doesn't
	// exist yet because it needs the config.
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.Provider("RESERVATION_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "RESERVATION_"))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load initial env variables")
	}

	mainConfig := &Config{}
	if err = k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("could not unmarshal main config")
	}

	validate := validator.New()
	if err = validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("config validation failed")
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Force consistent service naming regardless of what was configured.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return mainConfig, nil
}
