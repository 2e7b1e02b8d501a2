// Package config provides loading and validation of roslog settings files.
package config

import (
	"github.com/ccollicutt/roslog/pkg/display"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Display holds the per-channel display options.
	Display display.Settings `yaml:"display"`

	// MaxPoints caps the points handed to the renderer per channel.
	MaxPoints int `yaml:"max_points" default:"5000" validate:"gte=0"`

	Chart ChartConfig `yaml:"chart"`
	Log   LogConfig   `yaml:"log"`
}

// ChartConfig sizes rendered charts.
type ChartConfig struct {
	Width  int `yaml:"width" default:"1280" validate:"gte=100,lte=10000"`
	Height int `yaml:"height" default:"500" validate:"gte=100,lte=10000"`

	// ClockAxis labels the time axis as HH:MM:SS UTC.
	ClockAxis bool `yaml:"clock_axis"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" default:"console" validate:"oneof=console json"`
}
