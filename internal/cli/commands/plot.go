package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/roslog/pkg/analyzer"
	"github.com/ccollicutt/roslog/pkg/config"
	"github.com/ccollicutt/roslog/pkg/display"
)

// PlotOptions holds command-line options for the plot command.
type PlotOptions struct {
	Output    string
	Config    string
	Channels  []string
	Title     string
	Width     int
	Height    int
	MaxPoints int
	Clock     bool
}

// NewPlotCommand creates the plot command.
func NewPlotCommand() *cobra.Command {
	opts := &PlotOptions{}

	cmd := &cobra.Command{
		Use:   "plot <log-file>",
		Short: "Render a ROS log as a PNG chart",
		Long: `Parse a ROS log and draw its channels as a PNG chart.

Channel colours, chart types, visibility and the Frame2 jump limit come from
the display section of the settings file. Long series are reduced to
--max-points per channel, keeping peaks; 0 draws every point.

Example:
  roslog plot -o session.png session.log
  roslog plot --channel ros --channel utc --clock -o sync.png session.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "roslog.png", "PNG file to write")
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Settings file (default ./"+config.DefaultFile+" if present)")
	cmd.Flags().StringSliceVar(&opts.Channels, "channel", nil, "Draw only these channel(s) (can be repeated)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "Chart title (default: log file name)")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "Chart width in pixels (default from settings)")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "Chart height in pixels (default from settings)")
	cmd.Flags().IntVar(&opts.MaxPoints, "max-points", 0, "Maximum points per channel, 0 for all (default from settings)")
	cmd.Flags().BoolVar(&opts.Clock, "clock", false, "Label the time axis as HH:MM:SS UTC")

	return cmd
}

func runPlot(cmd *cobra.Command, args []string, opts *PlotOptions) error {
	logFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, _, err := config.LoadOrDefault(ctx, opts.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := commandLogger(cmd, cfg)
	if err != nil {
		return err
	}

	settings := cfg.Display
	if len(opts.Channels) > 0 {
		channels, err := parseChannels(opts.Channels)
		if err != nil {
			return err
		}
		settings.ShowOnly(channels...)
	}

	result, err := analyzer.ParseFile(ctx, logFile, analyzer.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", logFile, err)
	}
	logCorrections(logger, result)

	maxPoints := cfg.MaxPoints
	if cmd.Flags().Changed("max-points") {
		maxPoints = opts.MaxPoints
	}
	traces := display.Project(result, settings, display.BucketDownsample, maxPoints)

	renderer := display.NewRenderer(pick(cmd, "width", opts.Width, cfg.Chart.Width), pick(cmd, "height", opts.Height, cfg.Chart.Height))
	renderer.ClockAxis = opts.Clock || cfg.Chart.ClockAxis
	renderer.Title = opts.Title
	if renderer.Title == "" {
		renderer.Title = logFile
	}

	if err := writeChart(renderer, traces, opts.Output); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d trace(s) to %s\n", len(traces), opts.Output)
	return nil
}

// writeChart renders into path, removing the file again if rendering fails.
func writeChart(r *display.Renderer, traces []display.Trace, path string) error {
	if len(traces) == 0 {
		return fmt.Errorf("nothing to plot: %w", display.ErrNoData)
	}

	// #nosec G304 - output path is provided by user via CLI
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}

	renderErr := r.Render(traces, f)
	closeErr := f.Close()
	if err := errors.Join(renderErr, closeErr); err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}

func logCorrections(logger zerolog.Logger, result *analyzer.Result) {
	for _, d := range result.Corrections() {
		logger.Warn().
			Str("channel", d.Channel.String()).
			Int("line", d.Line).
			Str("details", d.Details).
			Msg(d.Message)
	}
}

// pick returns the flag value when the flag was set and fallback otherwise.
func pick(cmd *cobra.Command, name string, value, fallback int) int {
	if cmd.Flags().Changed(name) {
		return value
	}
	return fallback
}
