package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/roslog/pkg/config"
	"github.com/ccollicutt/roslog/pkg/series"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a settings file",
		Long: `Validate a roslog settings file without parsing any log.

Checks:
  - YAML syntax
  - Display colours are hex colours (#rgb or #rrggbb)
  - Chart types are line, lineWithMarkers or scatter
  - Marker sizes are positive, the Frame2 limit is not negative
  - Chart size, point cap and log settings`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Max points: %d\n", cfg.MaxPoints)
	fmt.Fprintf(w, "  Chart:      %dx%d\n", cfg.Chart.Width, cfg.Chart.Height)
	fmt.Fprintf(w, "  Log:        %s (%s)\n", cfg.Log.Level, cfg.Log.Format)

	fmt.Fprintf(w, "\nChannels:\n")
	for _, ch := range series.Channels {
		opts := cfg.Display.For(ch)
		state := "shown"
		if !opts.Show {
			state = "hidden"
		}
		fmt.Fprintf(w, "  %-7s %-6s %-15s %s size=%g", ch.Key(), state, opts.Type, opts.Color, opts.MarkerSize)
		if ch == series.Frame2 {
			fmt.Fprintf(w, " limit=%g jumps=%t", opts.Limit, opts.ShowJumps)
		}
		fmt.Fprintln(w)
	}

	return nil
}
