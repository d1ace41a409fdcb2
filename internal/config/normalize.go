package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeStorage(); err != nil {
		return err
	}
	c.normalizeTracking()
	c.normalizeLogging()
	c.API.Bind = strings.TrimSpace(c.API.Bind)
	c.API.Token = strings.TrimSpace(c.API.Token)
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.DataDir, "logs")
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.SettingsFile) == "" {
		c.Paths.SettingsFile = filepath.Join(c.Paths.DataDir, defaultSettingsFileName)
	}
	if c.Paths.SettingsFile, err = expandPath(c.Paths.SettingsFile); err != nil {
		return fmt.Errorf("paths.settings_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeStorage() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaultBackend
	}
	if strings.TrimSpace(c.Storage.RecordsFile) == "" {
		name := defaultSQLiteFileName
		if c.Storage.Backend == BackendJSON {
			name = defaultJSONFileName
		}
		c.Storage.RecordsFile = filepath.Join(c.Paths.DataDir, name)
	}
	var err error
	if c.Storage.RecordsFile, err = expandPath(c.Storage.RecordsFile); err != nil {
		return fmt.Errorf("storage.records_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeTracking() {
	if c.Tracking.IntervalSeconds == 0 {
		c.Tracking.IntervalSeconds = defaultIntervalSeconds
	}
	if len(c.Tracking.TitleCommand) == 0 {
		c.Tracking.TitleCommand = nil
		return
	}
	args := make([]string, 0, len(c.Tracking.TitleCommand))
	for _, arg := range c.Tracking.TitleCommand {
		if trimmed := strings.TrimSpace(arg); trimmed != "" || len(args) > 0 {
			args = append(args, arg)
		}
	}
	if len(args) == 0 {
		args = nil
	}
	c.Tracking.TitleCommand = args
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	if c.Logging.MaxBackups < 0 {
		c.Logging.MaxBackups = 0
	}
}
