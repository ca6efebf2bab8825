package config

import (
	"errors"
	"fmt"

	"github.com/rezkam/todo/internal/env"
)

// ErrTestDSNRequired is returned when integration tests have no database to talk to.
var ErrTestDSNRequired = errors.New("TODO_TEST_DB_DSN is required")

// TestConfig holds configuration for PostgreSQL integration tests.
type TestConfig struct {
	DSN string `env:"TODO_TEST_DB_DSN"`
}

// Validate validates the test configuration.
func (c *TestConfig) Validate() error {
	if c.DSN == "" {
		return ErrTestDSNRequired
	}
	return nil
}

// LoadTestConfig loads and validates test configuration from environment.
func LoadTestConfig() (*TestConfig, error) {
	cfg := &TestConfig{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load test config: %w", err)
	}

	return cfg, nil
}
