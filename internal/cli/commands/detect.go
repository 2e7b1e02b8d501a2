package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/roslog/pkg/config"
	"github.com/ccollicutt/roslog/pkg/detector"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output      string
	SampleSize  int
	WriteConfig string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <log-file>",
		Short: "Detect ROS record kinds in a log file",
		Long: `Sample the head of a log file and report which ROS record kinds it carries.

Recognised records:
  - Direction/Offset ("Dir")       feeds ros and dir3
  - Fine balance ("FineB")         feeds fineB
  - Frame2 environment ("Frame2")  feeds frame2
  - UTC time sync marker           feeds utc

Optionally generates a starter settings file with --write-config, hiding
the channels the sample cannot feed.

Example:
  roslog detect session.log
  roslog detect --sample 500 session.log
  roslog detect -w roslog.yaml session.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", detector.DefaultSampleSize, "Number of non-empty lines to sample")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter settings to file (will not overwrite)")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	logFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := commandLogger(cmd, nil)
	if err != nil {
		return err
	}

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		return fmt.Errorf("log file not found: %s", logFile)
	}

	d := detector.New(detector.WithSampleSize(opts.SampleSize))

	result, err := d.DetectFromFile(ctx, logFile)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}
	logger.Debug().
		Str("source", logFile).
		Int("sampled", result.SampledLines).
		Int("classified", result.ClassifiedLines).
		Msg("log sampled")

	w := cmd.OutOrStdout()

	if opts.WriteConfig != "" {
		if err := writeStarterConfig(result, logFile, opts.WriteConfig); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote starter settings to: %s\n\n", opts.WriteConfig)
	}

	switch opts.Output {
	case "json":
		return outputDetectJSON(w, result, logFile)
	case "text":
		return outputDetectText(w, result, logFile)
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

func outputDetectText(w io.Writer, result *detector.DetectionResult, logFile string) error {
	fmt.Fprintln(w, "=== ROS Record Detection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: %s\n", logFile)
	fmt.Fprintf(w, "Lines sampled: %d\n", result.SampledLines)
	fmt.Fprintf(w, "Lines with records: %d\n", result.ClassifiedLines)
	fmt.Fprintln(w)

	if !result.HasMatch() {
		fmt.Fprintln(w, "No ROS records detected.")
		if result.Note != "" {
			fmt.Fprintf(w, "Note: %s\n", result.Note)
		}
		writeMissing(w, result.Missing)
		return nil
	}

	for _, m := range result.Matches {
		fmt.Fprintf(w, "%s: %d line(s), %.1f%%\n", m.Format.Name, m.MatchCount, m.Confidence*100)
		fmt.Fprintf(w, "  first at line %d: %s\n", m.SampleNum, m.SampleLine)
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, "Channels:")
	for _, ch := range result.Channels() {
		fmt.Fprintf(w, " %s", ch.Key())
	}
	fmt.Fprintln(w)
	writeMissing(w, result.Missing)

	return nil
}

// writeMissing lists the kinds the sample lacked, with a line each would match.
func writeMissing(w io.Writer, missing []*detector.RecordFormat) {
	if len(missing) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Not seen:")
	for _, f := range missing {
		if len(f.Examples) == 0 {
			fmt.Fprintf(w, "  %s\n", f.Name)
			continue
		}
		fmt.Fprintf(w, "  %s, e.g. %s\n", f.Name, f.Examples[0])
	}
}

// JSONMatch represents a record kind in JSON output.
type JSONMatch struct {
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Channels   []string `json:"channels"`
	Confidence float64  `json:"confidence"`
	MatchCount int      `json:"match_count"`
	SampleLine string   `json:"sample_line"`
	SampleNum  int      `json:"sample_line_number"`
}

// JSONOutput represents the full JSON output.
type JSONOutput struct {
	File            string      `json:"file"`
	Matches         []JSONMatch `json:"matches"`
	SampledLines    int         `json:"sampled_lines"`
	ClassifiedLines int         `json:"classified_lines"`
	Note            string      `json:"note,omitempty"`
}

func outputDetectJSON(w io.Writer, result *detector.DetectionResult, logFile string) error {
	out := JSONOutput{
		File:            logFile,
		SampledLines:    result.SampledLines,
		ClassifiedLines: result.ClassifiedLines,
		Note:            result.Note,
		Matches:         make([]JSONMatch, 0, len(result.Matches)),
	}

	for _, m := range result.Matches {
		channels := make([]string, 0, len(m.Format.Channels))
		for _, ch := range m.Format.Channels {
			channels = append(channels, ch.Key())
		}
		out.Matches = append(out.Matches, JSONMatch{
			Name:       m.Format.Name,
			Kind:       m.Format.Kind.String(),
			Channels:   channels,
			Confidence: m.Confidence,
			MatchCount: m.MatchCount,
			SampleLine: m.SampleLine,
			SampleNum:  m.SampleNum,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// writeStarterConfig writes default settings with undetected channels hidden.
func writeStarterConfig(result *detector.DetectionResult, logFile, configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	if !result.HasMatch() {
		return fmt.Errorf("cannot generate config: no ROS records detected")
	}

	cfg := config.DefaultConfig()
	cfg.Display = result.SuggestSettings()

	// #nosec G304 - config path is provided by user via CLI
	f, err := os.OpenFile(configPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(f, "# roslog settings\n# Generated by: roslog detect %s\n\n", logFile)
	writeErr := config.Write(f, cfg)
	if err := f.Close(); writeErr == nil {
		writeErr = err
	}
	if writeErr != nil {
		return fmt.Errorf("failed to write config file: %w", writeErr)
	}
	return nil
}
