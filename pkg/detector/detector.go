// Package detector samples ROS logs to report which record kinds they carry.
package detector

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/ccollicutt/roslog/pkg/decoder"
	"github.com/ccollicutt/roslog/pkg/display"
	"github.com/ccollicutt/roslog/pkg/parser"
	"github.com/ccollicutt/roslog/pkg/series"
)

// DefaultSampleSize is the number of non-empty lines sampled.
const DefaultSampleSize = 100

// DetectionResult holds the result of sampling a log file.
type DetectionResult struct {
	Matches         []KindMatch     // Kinds seen, most frequent first
	SampledLines    int             // Non-empty lines sampled
	ClassifiedLines int             // Lines matching at least one kind
	Missing         []*RecordFormat // Known kinds absent from the sample
	Note            string          // Warning when nothing was recognised
}

// KindMatch reports how often one record kind appeared in the sample.
type KindMatch struct {
	Format     *RecordFormat
	Confidence float64 // Share of sampled lines, 0.0 to 1.0
	MatchCount int
	SampleLine string
	SampleNum  int // 1-based line number of SampleLine
}

// Detector classifies sampled log lines.
type Detector struct {
	formats    []*RecordFormat
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// New creates a new Detector with the default record formats.
func New(opts ...Option) *Detector {
	d := &Detector{
		formats:    DefaultFormats(),
		sampleSize: DefaultSampleSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile samples the head of a log file and classifies it.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	source := parser.NewFileSource(path)
	defer source.Close()
	return d.Detect(ctx, source)
}

// Detect samples up to the configured number of non-empty lines from source.
func (d *Detector) Detect(ctx context.Context, source parser.LineSource) (*DetectionResult, error) {
	var lines []*parser.Line
	for len(lines) < d.sampleSize {
		line, err := source.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(line.Text) != "" {
			lines = append(lines, line)
		}
	}
	return d.detect(lines), nil
}

// DetectFromLines classifies a slice of log lines numbered from 1.
func (d *Detector) DetectFromLines(texts []string) *DetectionResult {
	lines := make([]*parser.Line, 0, len(texts))
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, &parser.Line{Text: text, Num: i + 1})
	}
	return d.detect(lines)
}

func (d *Detector) detect(lines []*parser.Line) *DetectionResult {
	result := &DetectionResult{
		SampledLines: len(lines),
	}

	if len(lines) == 0 {
		result.Note = "no lines to sample"
		result.Missing = d.formats
		return result
	}

	matches := make([]*KindMatch, len(d.formats))
	for _, line := range lines {
		kind := decoder.Classify(line.Text)
		if kind == decoder.KindNone {
			continue
		}
		result.ClassifiedLines++

		for i, format := range d.formats {
			if !kind.Has(format.Kind) {
				continue
			}
			if matches[i] == nil {
				matches[i] = &KindMatch{
					Format:     format,
					SampleLine: line.Text,
					SampleNum:  line.Num,
				}
			}
			matches[i].MatchCount++
		}
	}

	for i, m := range matches {
		if m == nil {
			result.Missing = append(result.Missing, d.formats[i])
			continue
		}
		m.Confidence = float64(m.MatchCount) / float64(len(lines))
		result.Matches = append(result.Matches, *m)
	}

	// Stable keeps format order among equal counts
	sort.SliceStable(result.Matches, func(i, j int) bool {
		return result.Matches[i].MatchCount > result.Matches[j].MatchCount
	})

	if result.ClassifiedLines == 0 {
		result.Note = "no ROS telemetry records found in the sampled lines. " +
			"Check that this is a ROS log or sample more lines with --sample"
	}

	return result
}

// BestMatch returns the most frequent kind, or nil if none was found.
func (r *DetectionResult) BestMatch() *KindMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one record kind was found.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}

// Channels returns the channels fed by the detected kinds, in channel order.
func (r *DetectionResult) Channels() []series.Channel {
	seen := make(map[series.Channel]bool)
	for _, m := range r.Matches {
		for _, ch := range m.Format.Channels {
			seen[ch] = true
		}
	}

	var channels []series.Channel
	for _, ch := range series.Channels {
		if seen[ch] {
			channels = append(channels, ch)
		}
	}
	return channels
}

// SuggestSettings returns the default display settings with every channel
// the sample cannot feed hidden.
func (r *DetectionResult) SuggestSettings() display.Settings {
	settings := display.DefaultSettings()
	settings.ShowOnly(r.Channels()...)
	return settings
}
