// Package config loads the admin service configuration from the
// environment and validates it on startup.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	API     APIConfig
	Journal JournalConfig
	Logging LoggingConfig
	Tracing TracingConfig
}

// ServerConfig holds admin facade settings.
type ServerConfig struct {
	// Addr is the listen address (default: :8080)
	Addr string `env:"FOODADMIN_ADDR" envAlt:"ADDR" default:":8080"`

	// ShutdownTimeout bounds graceful shutdown (default: 10s)
	ShutdownTimeout time.Duration `env:"FOODADMIN_SHUTDOWN_TIMEOUT" default:"10s"`
}

// APIConfig holds the backend REST API settings.
type APIConfig struct {
	// BaseURL is the backend root, e.g. http://localhost:3000/api (required)
	BaseURL string `env:"FOODADMIN_API_BASE_URL" required:"true"`

	// Timeout is the per-call timeout (default: 10s)
	Timeout time.Duration `env:"FOODADMIN_API_TIMEOUT" default:"10s"`
}

// JournalConfig holds action journal settings. An empty URL keeps the
// journal in memory.
type JournalConfig struct {
	URL string `env:"FOODADMIN_DATABASE_URL" envAlt:"DATABASE_URL"`

	// Stream names the action stream inside the journal (default: admin)
	Stream string `env:"FOODADMIN_STREAM" default:"admin"`

	// SnapshotEvery saves a state snapshot every N actions; 0 disables (default: 100)
	SnapshotEvery int `env:"FOODADMIN_SNAPSHOT_EVERY" default:"100"`

	// MaxConns caps the PostgreSQL pool (default: 4)
	MaxConns int `env:"FOODADMIN_DB_MAX_CONNS" default:"4"`
}

// LoggingConfig holds slog settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" default:"info"`
	Format string `env:"LOG_FORMAT" default:"text"`
}

// TracingConfig holds OpenTelemetry settings.
type TracingConfig struct {
	Stdout bool `env:"OTEL_STDOUT" default:"false"`
}
