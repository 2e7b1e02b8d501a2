package output

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var (
	failedColor    = color.New(color.FgRed, color.Bold)
	correctedColor = color.New(color.FgYellow, color.Bold)
	okColor        = color.New(color.FgGreen)
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "roslog: %d file(s) parsed, %d failed, %d point(s), %d correction(s)\n",
		report.Summary.FilesParsed,
		report.Summary.FilesFailed,
		report.Summary.TotalPoints,
		report.Summary.TotalCorrections)
	return nil
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintln(w, "=== ROS Log Report ===")
	fmt.Fprintln(w)

	for i := range report.Files {
		if err := f.formatFile(&report.Files[i], w); err != nil {
			return err
		}
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d file(s) parsed, %d failed, %d with corrections, %d correction(s)\n",
		report.Summary.FilesParsed,
		report.Summary.FilesFailed,
		report.Summary.FilesCorrected,
		report.Summary.TotalCorrections)

	if f.opts.Verbose {
		fmt.Fprintf(w, "Lines processed: %d\n", report.Summary.LinesProcessed)
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
		if report.Metadata.ConfigFile != "" {
			fmt.Fprintf(w, "Config: %s\n", report.Metadata.ConfigFile)
		}
	}

	return nil
}

func (f *TextFormatter) formatFile(file *FileReport, w io.Writer) error {
	fmt.Fprintf(w, "[%s] %s\n", status(file), file.Source)

	if file.Failed {
		for _, d := range file.Diagnostics {
			fmt.Fprintf(w, "  %s\n", d)
		}
		fmt.Fprintln(w)
		return nil
	}

	fmt.Fprintf(w, "  Session: %s - %s (%s)\n",
		file.Session.Start, file.Session.End, file.Session.DurationHMS)
	fmt.Fprintf(w, "  Lines: %d\n", file.LinesProcessed)
	fmt.Fprintln(w)

	if err := f.channelTable(file, w); err != nil {
		return err
	}

	if f.opts.Verbose {
		if err := f.statsTable(file, w); err != nil {
			return err
		}
		for _, t := range file.Transitions {
			fmt.Fprintf(w, "  FineB %s at line %d: offset %s, time %s\n",
				t.Kind, t.Line, formatFloat(t.Offset), formatFloat(t.Time))
		}
	}

	if len(file.Diagnostics) == 0 {
		fmt.Fprintln(w, "  No corrections")
		fmt.Fprintln(w)
		return nil
	}

	fmt.Fprintf(w, "  Corrections: %d\n", len(file.Diagnostics))
	if err := f.diagnosticTable(file, w); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}

func (f *TextFormatter) channelTable(file *FileReport, w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Channel", "Points"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(file.Channels))
	for _, c := range file.Channels {
		data = append(data, []string{c.Name, strconv.Itoa(c.Points)})
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("writing channel table: %w", err)
	}
	return table.Render()
}

func (f *TextFormatter) statsTable(file *FileReport, w io.Writer) error {
	if len(file.Stats) == 0 {
		return nil
	}

	names := make([]string, 0, len(file.Stats))
	for name := range file.Stats {
		names = append(names, name)
	}
	sort.Strings(names)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Decoder", "Matched", "Emitted", "Skipped"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(names))
	for _, name := range names {
		s := file.Stats[name]
		data = append(data, []string{
			name,
			strconv.Itoa(s.Matched),
			strconv.Itoa(s.Emitted),
			strconv.Itoa(s.Skipped),
		})
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("writing stats table: %w", err)
	}
	return table.Render()
}

func (f *TextFormatter) diagnosticTable(file *FileReport, w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Line", "Channel", "Message", "Details"})

	data := make([][]string, 0, len(file.Diagnostics))
	for _, d := range file.Diagnostics {
		data = append(data, []string{
			strconv.Itoa(d.Line),
			d.Channel.String(),
			d.Message,
			d.Details,
		})
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("writing diagnostics table: %w", err)
	}
	return table.Render()
}

func status(file *FileReport) string {
	switch {
	case file.Failed:
		return failedColor.Sprint("FAILED")
	case len(file.Diagnostics) > 0:
		return correctedColor.Sprint("CORRECTED")
	default:
		return okColor.Sprint("OK")
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
