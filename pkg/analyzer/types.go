// Package analyzer runs the ROS log pipeline: classification, decoding,
// series assembly, monotonicity correction and the session summary.
package analyzer

import (
	"time"

	"github.com/ccollicutt/roslog/pkg/decoder"
	"github.com/ccollicutt/roslog/pkg/series"
)

// FailureMessage is the message of the diagnostic reported when a whole
// file could not be processed.
const FailureMessage = "failed to process file"

// Result is the outcome of one parse pass over one log.
type Result struct {
	// Series holds the corrected series of every assembled channel.
	Series map[series.Channel]*series.Series `json:"series"`

	// Transitions are the fine-balance zero and non-zero transitions.
	Transitions []decoder.Transition `json:"transitions,omitempty"`

	// Diagnostics are the user-visible findings, in channel order.
	Diagnostics []series.Diagnostic `json:"diagnostics"`

	// Summary holds the session time bounds.
	Summary series.Summary `json:"summary"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Metadata provides context about a parse run.
type Metadata struct {
	// Source names the parsed log.
	Source string `json:"source"`

	// LinesProcessed is the number of lines read.
	LinesProcessed int `json:"lines_processed"`

	// StartedAt is when the parse began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the parse completed.
	FinishedAt time.Time `json:"finished_at"`

	// Stats holds per-decoder line counters, keyed by decoder name.
	Stats map[string]decoder.Stats `json:"stats"`
}

// Channel returns the series of ch, or an empty series if the channel was
// not assembled.
func (r *Result) Channel(ch series.Channel) *series.Series {
	if s, ok := r.Series[ch]; ok && s != nil {
		return s
	}
	return series.New(ch)
}

// TotalPoints returns the number of points across all series.
func (r *Result) TotalPoints() int {
	total := 0
	for _, s := range r.Series {
		total += s.Len()
	}
	return total
}

// Corrections returns the monotonicity diagnostics.
func (r *Result) Corrections() []series.Diagnostic {
	var out []series.Diagnostic
	for _, d := range r.Diagnostics {
		if d.Line != 0 {
			out = append(out, d)
		}
	}
	return out
}

// HasCorrections returns true if any point time was rewritten.
func (r *Result) HasCorrections() bool {
	return len(r.Corrections()) > 0
}

// Failed returns true if the log could not be processed at all.
func (r *Result) Failed() bool {
	for _, d := range r.Diagnostics {
		if d.Line == 0 {
			return true
		}
	}
	return false
}

// FailedResult returns the result reported for a log that could not be
// read: no points and a single line-0 diagnostic carrying err.
func FailedResult(source string, err error) *Result {
	now := time.Now()
	r := &Result{
		Series: make(map[series.Channel]*series.Series, len(series.Channels)),
		Metadata: Metadata{
			Source:     source,
			StartedAt:  now,
			FinishedAt: now,
		},
	}
	for _, ch := range series.Channels {
		r.Series[ch] = series.New(ch)
	}
	r.Diagnostics = []series.Diagnostic{{
		Line:    0,
		Message: FailureMessage,
		Details: err.Error(),
	}}
	return r
}
