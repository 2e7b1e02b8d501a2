// Package cli provides the command-line interface for roslog.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/roslog/internal/cli/commands"
	"github.com/ccollicutt/roslog/pkg/config"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors prevents Cobra from printing this
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return commands.ExitError
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "roslog",
		Short: "Parse and plot ROS telemetry logs",
		Long: `roslog parses ROS telemetry logs into time series.

It decodes:
  - Direction/Offset records into the cumulative ROS offset and Dir 3/6 markers
  - Fine-balance records, timed by the latest direction record
  - Frame2 environmental records
  - Two-line UTC time-sync records

Every channel is corrected so time never goes backwards, and each
correction is reported.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel,
		"Log level (trace|debug|info|warn|error), overrides $"+config.EnvLogLevel)
	rootCmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "Log format (console|json)")

	rootCmd.AddCommand(commands.NewParseCommand())
	rootCmd.AddCommand(commands.NewPlotCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
