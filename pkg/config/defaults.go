package config

import (
	"os"

	"github.com/ccollicutt/roslog/pkg/display"
)

// Default values for configuration.
const (
	DefaultFile      = "roslog.yaml"
	DefaultMaxPoints = 5000
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// Environment variable names.
const (
	EnvLogLevel = "ROSLOG_LOG_LEVEL"
)

// DefaultConfig returns a configuration with the viewer's display settings.
func DefaultConfig() *Config {
	return &Config{
		Display:   display.DefaultSettings(),
		MaxPoints: DefaultMaxPoints,
		Chart: ChartConfig{
			Width:  display.DefaultWidth,
			Height: display.DefaultHeight,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Log.Level = level
	}
}
