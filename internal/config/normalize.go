package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeStorage(); err != nil {
		return err
	}
	c.normalizeReader()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeStorage() error {
	if strings.TrimSpace(c.Storage.DatabasePath) == "" {
		c.Storage.DatabasePath = defaultDatabasePath
	}
	var err error
	if c.Storage.DatabasePath, err = expandPath(strings.TrimSpace(c.Storage.DatabasePath)); err != nil {
		return fmt.Errorf("storage.database_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeReader() {
	if c.Reader.LocationGranularity == 0 {
		c.Reader.LocationGranularity = defaultLocationGranularity
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	switch c.Logging.Level {
	case "":
		c.Logging.Level = defaultLogLevel
	case "warning":
		c.Logging.Level = "warn"
	}
}
