// Package output provides formatting and output generation for parse results.
package output

import (
	"time"

	"github.com/ccollicutt/roslog/pkg/analyzer"
	"github.com/ccollicutt/roslog/pkg/decoder"
	"github.com/ccollicutt/roslog/pkg/series"
)

// Report is the complete parse output for one or more logs.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// Files holds one entry per parsed log, in argument order.
	Files []FileReport `json:"files"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate statistics across files.
type Summary struct {
	FilesParsed      int `json:"files_parsed"`
	FilesFailed      int `json:"files_failed"`
	FilesCorrected   int `json:"files_corrected"`
	TotalPoints      int `json:"total_points"`
	TotalCorrections int `json:"total_corrections"`
	LinesProcessed   int `json:"lines_processed"`
}

// FileReport describes the parse of a single log.
type FileReport struct {
	Source         string `json:"source"`
	Failed         bool   `json:"failed"`
	LinesProcessed int    `json:"lines_processed"`

	Session     Session                  `json:"session"`
	Channels    []ChannelCount           `json:"channels"`
	Transitions []decoder.Transition     `json:"transitions,omitempty"`
	Diagnostics []series.Diagnostic      `json:"diagnostics"`
	Stats       map[string]decoder.Stats `json:"stats,omitempty"`
}

// Session holds the session bounds in device seconds and as clock text.
type Session struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Duration  float64 `json:"duration"`

	Start       string `json:"start"`
	End         string `json:"end"`
	DurationHMS string `json:"duration_hms"`
}

// ChannelCount is the number of points assembled for one channel.
type ChannelCount struct {
	Channel series.Channel `json:"channel"`
	Name    string         `json:"name"`
	Points  int            `json:"points"`
}

// Metadata provides context about the run.
type Metadata struct {
	// ConfigFile is the settings file used, empty for built-in defaults.
	ConfigFile string `json:"config_file,omitempty"`

	// AnalyzedAt is when the last parse completed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Duration is the total time spent parsing.
	Duration time.Duration `json:"duration"`
}

// NewReport creates a Report from parse results.
func NewReport(results []*analyzer.Result, configFile string) *Report {
	report := &Report{
		Files: make([]FileReport, 0, len(results)),
		Metadata: Metadata{
			ConfigFile: configFile,
		},
	}

	for _, result := range results {
		if result == nil {
			continue
		}
		file := newFileReport(result)
		report.Files = append(report.Files, file)

		report.Summary.FilesParsed++
		report.Summary.LinesProcessed += file.LinesProcessed
		report.Summary.TotalPoints += result.TotalPoints()
		if file.Failed {
			report.Summary.FilesFailed++
		}
		if n := len(result.Corrections()); n > 0 {
			report.Summary.FilesCorrected++
			report.Summary.TotalCorrections += n
		}

		meta := result.Metadata
		report.Metadata.Duration += meta.FinishedAt.Sub(meta.StartedAt)
		if meta.FinishedAt.After(report.Metadata.AnalyzedAt) {
			report.Metadata.AnalyzedAt = meta.FinishedAt
		}
	}

	return report
}

func newFileReport(result *analyzer.Result) FileReport {
	sum := result.Summary
	file := FileReport{
		Source:         result.Metadata.Source,
		Failed:         result.Failed(),
		LinesProcessed: result.Metadata.LinesProcessed,
		Session: Session{
			StartTime:   sum.StartTime,
			EndTime:     sum.EndTime,
			Duration:    sum.Duration,
			Start:       series.FormatClock(sum.StartTime),
			End:         series.FormatClock(sum.EndTime),
			DurationHMS: series.FormatDuration(sum.Duration),
		},
		Transitions: result.Transitions,
		Diagnostics: result.Diagnostics,
		Stats:       result.Metadata.Stats,
	}
	if file.Diagnostics == nil {
		file.Diagnostics = []series.Diagnostic{}
	}

	for _, ch := range series.Channels {
		s, ok := result.Series[ch]
		if !ok {
			continue
		}
		file.Channels = append(file.Channels, ChannelCount{
			Channel: ch,
			Name:    ch.String(),
			Points:  s.Len(),
		})
	}

	return file
}

// HasCorrections returns true if any file had point times rewritten.
func (r *Report) HasCorrections() bool {
	return r.Summary.TotalCorrections > 0
}

// HasFailures returns true if any file could not be processed.
func (r *Report) HasFailures() bool {
	return r.Summary.FilesFailed > 0
}
