package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Enrichment knobs are checked
// here so invalid values fail at startup rather than mid-run.
func (c *Config) Validate() error {
	if err := c.validateLookup(); err != nil {
		return err
	}
	if err := c.validateEnrichment(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateLookup() error {
	if c.Lookup.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/filmdex/config.toml"
		}
		return fmt.Errorf("lookup.api_key is required. Set LOOKUP_API_KEY env var or edit %s (create with 'filmdex config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateEnrichment() error {
	if c.Enrichment.BatchSize <= 0 {
		return errors.New("enrichment.batch_size must be positive")
	}
	if c.Enrichment.MaxBatches < 0 {
		return errors.New("enrichment.max_batches must not be negative")
	}
	if c.Enrichment.Workers <= 0 {
		return errors.New("enrichment.workers must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
