package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/roslog/pkg/config"
)

// NewLogger builds a logger writing to w. Format is "console" for
// human-readable output or "json".
func NewLogger(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level: %w", err)
	}

	out := w
	switch format {
	case "console":
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.TimeOnly,
		}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q (use console or json)", format)
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}

// commandLogger returns the stderr logger for cmd. Explicit --log-level and
// --log-format flags win over the settings file, which already carries the
// environment override.
func commandLogger(cmd *cobra.Command, cfg *config.Config) (zerolog.Logger, error) {
	level, format := config.DefaultLogLevel, config.DefaultLogFormat
	if cfg != nil {
		level, format = cfg.Log.Level, cfg.Log.Format
	} else if env := os.Getenv(config.EnvLogLevel); env != "" {
		level = env
	}

	if f := cmd.Flag("log-level"); f != nil && f.Changed {
		level = f.Value.String()
	}
	if f := cmd.Flag("log-format"); f != nil && f.Changed {
		format = f.Value.String()
	}

	return NewLogger(cmd.ErrOrStderr(), level, format)
}
