package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rezkam/todo/internal/env"
)

// ServerConfig holds all configuration for the server binary.
type ServerConfig struct {
	Database        DatabaseConfig
	HTTP            HTTPConfig
	Observability   ObservabilityConfig
	ShutdownTimeout time.Duration `env:"TODO_SHUTDOWN_TIMEOUT" default:"10s"`
}

// HTTPConfig holds HTTP server configuration.
// Zero durations and sizes fall back to the server package defaults.
type HTTPConfig struct {
	Host              string        `env:"TODO_HTTP_HOST"`
	Port              string        `env:"TODO_HTTP_PORT" default:"8000"`
	ReadTimeout       time.Duration `env:"TODO_HTTP_READ_TIMEOUT"`
	WriteTimeout      time.Duration `env:"TODO_HTTP_WRITE_TIMEOUT"`
	IdleTimeout       time.Duration `env:"TODO_HTTP_IDLE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `env:"TODO_HTTP_READ_HEADER_TIMEOUT"`
	MaxHeaderBytes    int           `env:"TODO_HTTP_MAX_HEADER_BYTES"`
	MaxBodyBytes      int64         `env:"TODO_HTTP_MAX_BODY_BYTES"`

	// MountPath is the prefix the todo resource is served under.
	MountPath string `env:"TODO_HTTP_MOUNT_PATH" default:"/api/todo"`
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	if !strings.HasPrefix(c.MountPath, "/") {
		return fmt.Errorf("TODO_HTTP_MOUNT_PATH must start with '/', got %q", c.MountPath)
	}
	return nil
}

// ObservabilityConfig holds observability configuration.
type ObservabilityConfig struct {
	OTelEnabled bool   `env:"TODO_OTEL_ENABLED" default:"false"`
	ServiceName string `env:"OTEL_SERVICE_NAME" default:"todo"`
}

// LoadServerConfig loads and validates server configuration from environment.
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	return cfg, nil
}
