package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Output formats accepted by --format.
const (
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Config holds application runtime configuration
type Config struct {
	Columns     int
	Language    string
	LogLevel    string
	Concurrency int
	Upscale     float64
	Strict      bool
	RowBands    bool
	Format      string
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	return &Config{
		Columns:     6,
		Language:    "eng",
		LogLevel:    "info",
		Concurrency: 4,
		Upscale:     0,
		Strict:      false,
		RowBands:    false,
		Format:      FormatCSV,
	}
}

// LoadConfigWithEnvOverrides creates config and applies environment variable overrides
func LoadConfigWithEnvOverrides() *Config {
	config := NewConfig()

	if value := os.Getenv("SCANTABLE_COLUMNS"); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil && intVal > 0 {
			config.Columns = intVal
		}
	}
	if value := os.Getenv("SCANTABLE_LANG"); value != "" {
		config.Language = value
	}
	if value := os.Getenv("SCANTABLE_LOG_LEVEL"); value != "" {
		config.LogLevel = value
	}
	if value := os.Getenv("SCANTABLE_CONCURRENCY"); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil && intVal > 0 {
			config.Concurrency = intVal
		}
	}
	if value := os.Getenv("SCANTABLE_UPSCALE"); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			config.Upscale = f
		}
	}
	if value := os.Getenv("SCANTABLE_STRICT"); value != "" {
		config.Strict = value == "true" || value == "1"
	}

	return config
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Columns < 1 {
		return fmt.Errorf("column count must be at least 1, got %d", c.Columns)
	}
	if c.Concurrency < 1 || c.Concurrency > 64 {
		return fmt.Errorf("concurrency must be between 1 and 64, got %d", c.Concurrency)
	}
	if c.Upscale < 0 {
		return fmt.Errorf("upscale must not be negative, got %v", c.Upscale)
	}
	switch c.Format {
	case FormatCSV, FormatJSON, FormatMarkdown:
	default:
		return fmt.Errorf("unknown format %q (want csv, json or markdown)", c.Format)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// parseLevel maps a level name such as "debug" or "warn" to a slog level.
func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}
