package analyzer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/ccollicutt/roslog/pkg/decoder"
	"github.com/ccollicutt/roslog/pkg/parser"
	"github.com/ccollicutt/roslog/pkg/series"
)

// primaryChannels feed the session summary.
var primaryChannels = []series.Channel{series.ROS, series.Frame2, series.UTC}

// Analyzer runs the decoders over a log and assembles the corrected result.
// An Analyzer may be reused but not shared between goroutines.
type Analyzer struct {
	logger zerolog.Logger

	// channels filters the assembled result; nil means all channels.
	channels map[series.Channel]bool

	direction   *decoder.Direction
	fineBalance *decoder.FineBalance
	frame2      *decoder.Frame2
	utc         *decoder.UTC

	// decoders in dispatch order; Direction runs before Fine-Balance.
	decoders []decoder.Decoder
}

// AnalyzerOption configures analyzer behavior.
type AnalyzerOption func(*Analyzer)

// WithLogger sets the logger used for dropped lines and run summaries.
func WithLogger(logger zerolog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithChannels limits the result to the given channels.
func WithChannels(channels ...series.Channel) AnalyzerOption {
	return func(a *Analyzer) {
		if len(channels) > 0 {
			a.channels = make(map[series.Channel]bool, len(channels))
			for _, ch := range channels {
				a.channels[ch] = true
			}
		}
	}
}

// NewAnalyzer creates an analyzer with a fresh set of decoders.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(a)
	}

	a.direction = decoder.NewDirection()
	a.fineBalance = decoder.NewFineBalance(a.direction)
	a.frame2 = decoder.NewFrame2()
	a.utc = decoder.NewUTC()
	a.decoders = []decoder.Decoder{a.direction, a.fineBalance, a.frame2, a.utc}

	return a
}

// Analyze reads every line of source once, in order, and returns the
// corrected result. A read failure aborts the pass with an error and no
// result.
func (a *Analyzer) Analyze(ctx context.Context, source parser.LineSource) (*Result, error) {
	result := &Result{
		Series: make(map[series.Channel]*series.Series, len(series.Channels)),
		Metadata: Metadata{
			Source:    source.Name(),
			StartedAt: time.Now(),
			Stats:     make(map[string]decoder.Stats, len(a.decoders)),
		},
	}

	for _, d := range a.decoders {
		d.Reset()
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		line, err := source.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading log source: %w", err)
		}

		result.Metadata.LinesProcessed++
		if line.Truncated {
			a.logger.Debug().
				Str("source", line.Source).
				Int("line", line.Num).
				Str("reason", "line too long").
				Msg("line dropped")
		}
		a.dispatch(line)
	}

	if a.utc.Pending() {
		a.logger.Debug().
			Str("source", result.Metadata.Source).
			Str("channel", a.utc.Name()).
			Str("reason", "marker without payload").
			Msg("line dropped")
	}

	a.assemble(result)
	result.Metadata.FinishedAt = time.Now()

	a.logger.Debug().
		Str("source", result.Metadata.Source).
		Int("lines", result.Metadata.LinesProcessed).
		Int("points", result.TotalPoints()).
		Int("corrections", len(result.Corrections())).
		Dur("elapsed", result.Metadata.FinishedAt.Sub(result.Metadata.StartedAt)).
		Msg("log parsed")

	return result, nil
}

// dispatch hands the line to every decoder that wants its kinds.
func (a *Analyzer) dispatch(line *parser.Line) {
	kind := decoder.Classify(line.Text)
	for _, d := range a.decoders {
		if !d.Wants(kind) {
			continue
		}
		res := d.Process(line)
		if res.Outcome == decoder.Skipped {
			a.logger.Debug().
				Str("source", line.Source).
				Str("channel", d.Name()).
				Int("line", line.Num).
				Str("reason", res.Reason).
				Msg("line dropped")
		}
	}
}

// assemble corrects every decoder series and fills in the result.
func (a *Analyzer) assemble(result *Result) {
	raw := make(map[series.Channel]*series.Series, len(series.Channels))
	for _, d := range a.decoders {
		for _, s := range d.Series() {
			raw[s.Channel] = s
		}
		result.Metadata.Stats[d.Name()] = d.Stats()
	}

	corrected := make(map[series.Channel]*series.Series, len(raw))
	for _, ch := range series.Channels {
		s, diags := series.Correct(raw[ch])
		if s == nil {
			s = series.New(ch)
		}
		corrected[ch] = s

		if a.wants(ch) {
			result.Series[ch] = s
			result.Diagnostics = append(result.Diagnostics, diags...)
		}
	}

	primary := make([]*series.Series, 0, len(primaryChannels))
	for _, ch := range primaryChannels {
		primary = append(primary, corrected[ch])
	}
	result.Summary = series.Summarize(primary...)

	if a.wants(series.FineB) {
		result.Transitions = a.fineBalance.Transitions()
	}
}

func (a *Analyzer) wants(ch series.Channel) bool {
	return a.channels == nil || a.channels[ch]
}

// ParseText parses an in-memory log.
func ParseText(ctx context.Context, text string, opts ...AnalyzerOption) (*Result, error) {
	source := parser.NewStringSource(text)
	defer source.Close()
	return NewAnalyzer(opts...).Analyze(ctx, source)
}

// ParseFile parses the log at path. If the file cannot be opened or read
// the returned result carries a single line-0 diagnostic along with the
// error.
func ParseFile(ctx context.Context, path string, opts ...AnalyzerOption) (*Result, error) {
	source := parser.NewFileSource(path)
	defer source.Close()

	result, err := NewAnalyzer(opts...).Analyze(ctx, source)
	if err != nil {
		return FailedResult(path, err), err
	}
	return result, nil
}
