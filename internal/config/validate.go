package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateTracking(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateAPI()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	if strings.TrimSpace(c.Paths.SettingsFile) == "" {
		return errors.New("paths.settings_file must be set")
	}
	return nil
}

func (c *Config) validateStorage() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendJSON:
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendSQLite, BackendJSON, c.Storage.Backend)
	}
	if c.Storage.RecordsFile == c.Paths.SettingsFile {
		return errors.New("storage.records_file and paths.settings_file must differ")
	}
	return nil
}

func (c *Config) validateTracking() error {
	if c.Tracking.IntervalSeconds < minTrackingIntervalSecond {
		return fmt.Errorf("tracking.interval_seconds must be at least %d", minTrackingIntervalSecond)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
}

func (c *Config) validateAPI() error {
	if c.API.Bind == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(c.API.Bind); err != nil {
		return fmt.Errorf("api.bind must be host:port: %w", err)
	}
	return nil
}
