// Package config parses the backend's configuration from environment
// variables using caarlos0/env.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load parses environment variables into the provided struct. Fields map
// through `env` tags, the way the server config does:
//
//	type Config struct {
//	    PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
//	    HTTPPort     int    `env:"HTTP_PORT" envDefault:"8000"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
