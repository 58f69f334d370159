// Package config provides configuration loading and validation for the resume builder.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds server configuration read from the environment. A .env file,
// if present, is loaded by the entry point before this runs.
type Config struct {
	Port      int    // HTTP listen port
	StorePath string // Path to the SQLite store file
}

// Load reads configuration from environment variables, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:      8080,
		StorePath: "resume.db",
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	if path := os.Getenv("RESUME_DB_PATH"); path != "" {
		cfg.StorePath = path
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: port out of range: %d", c.Port)
	}
	if c.StorePath == "" {
		return fmt.Errorf("config error: store path is empty")
	}
	return nil
}
