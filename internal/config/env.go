package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"hbnb/internal/logging"
)

// applyEnvOverrides overwrites fields whose HBNB_* variable is set.
// Unset variables leave the YAML or default value in place.
func (c *Config) applyEnvOverrides() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoggingOptions converts the logging section for logging.Initialize.
func (c *Config) LoggingOptions() logging.Config {
	return logging.Config{
		DebugMode:  c.Logging.DebugMode,
		Level:      c.Logging.Level,
		Dir:        c.Logging.Dir,
		JSONFormat: c.Logging.JSONFormat,
		Categories: c.Logging.Categories,
	}
}
