package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/roslog/pkg/analyzer"
	"github.com/ccollicutt/roslog/pkg/config"
	"github.com/ccollicutt/roslog/pkg/output"
	"github.com/ccollicutt/roslog/pkg/parser"
	"github.com/ccollicutt/roslog/pkg/series"
)

// Exit codes reported through ExitCode.
const (
	ExitOK          = 0
	ExitCorrections = 1
	ExitError       = 2
)

// ExitCode is set by commands to indicate the result
var ExitCode = ExitOK

// ParseOptions holds command-line options for the parse command.
type ParseOptions struct {
	Output   string
	Config   string
	Channels []string
	Verbose  bool
	Quiet    bool
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <log-file>...",
		Short: "Parse ROS logs into corrected channel series",
		Long: `Parse one or more ROS telemetry logs and report the assembled channels.

Each file is parsed on its own. Every channel is checked for time going
backwards; regressed points are moved to one second after the last valid
time and reported as corrections.

Channels: ros, dir3, fineB, frame2, utc

Exit codes:
  0 - All files parsed, no corrections
  1 - At least one point time was corrected
  2 - A file could not be processed, or a runtime error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Settings file (default ./"+config.DefaultFile+" if present)")
	cmd.Flags().StringSliceVar(&opts.Channels, "channel", nil, "Report only these channel(s) (can be repeated)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show decoder stats and fine-balance transitions")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, configPath, err := config.LoadOrDefault(ctx, opts.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := commandLogger(cmd, cfg)
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(opts.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	channels, err := parseChannels(opts.Channels)
	if err != nil {
		return err
	}

	files, err := parser.ExpandGlobs(args)
	if err != nil {
		return fmt.Errorf("expanding log files: %w", err)
	}

	analyzerOpts := []analyzer.AnalyzerOption{
		analyzer.WithLogger(logger),
		analyzer.WithChannels(channels...),
	}

	results := make([]*analyzer.Result, 0, len(files))
	for _, file := range files {
		result, err := analyzer.ParseFile(ctx, file, analyzerOpts...)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			logger.Warn().Err(err).Str("source", file).Msg(analyzer.FailureMessage)
		}
		results = append(results, result)
	}

	report := output.NewReport(results, configPath)

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	switch {
	case report.HasFailures():
		ExitCode = ExitError
	case report.HasCorrections():
		ExitCode = ExitCorrections
	}

	return nil
}

// parseChannels resolves channel names given on the command line.
func parseChannels(names []string) ([]series.Channel, error) {
	channels := make([]series.Channel, 0, len(names))
	for _, name := range names {
		ch, err := series.ParseChannel(name)
		if err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, nil
}
