// Package decoder turns classified ROS log lines into channel points.
//
// Each decoder owns the running state of one record kind for a single parse
// pass. Lines must be fed in file order. A line a decoder cannot use is
// reported as skipped and leaves the decoder state as it was.
package decoder

import (
	"github.com/ccollicutt/roslog/pkg/parser"
	"github.com/ccollicutt/roslog/pkg/series"
)

// Decoder consumes the lines of one record kind.
type Decoder interface {
	// Name returns the decoder name for logging and stats.
	Name() string

	// Wants reports whether a line of the given kinds must be handed to
	// Process.
	Wants(kind Kind) bool

	// Process decodes one line.
	Process(line *parser.Line) Result

	// Series returns the points emitted so far, in line order.
	Series() []*series.Series

	// Stats returns the line counters.
	Stats() Stats

	// Reset clears all state for reuse.
	Reset()
}

// Outcome tags what a decoder did with a line.
type Outcome int

const (
	// Skipped means the line produced nothing and state is unchanged.
	Skipped Outcome = iota

	// Emitted means at least one point was appended.
	Emitted

	// Pending means the line was consumed and output depends on a later line.
	Pending
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Emitted:
		return "emitted"
	case Pending:
		return "pending"
	default:
		return "skipped"
	}
}

// Result is the outcome of processing one line.
type Result struct {
	Outcome Outcome

	// Reason explains a skip.
	Reason string
}

func emitted() Result { return Result{Outcome: Emitted} }

func skip(reason string) Result { return Result{Outcome: Skipped, Reason: reason} }

// Stats counts the lines a decoder was handed.
type Stats struct {
	Matched int `json:"matched"`
	Emitted int `json:"emitted"`
	Skipped int `json:"skipped"`
}

func (s *Stats) record(r Result) Result {
	s.Matched++
	switch r.Outcome {
	case Emitted:
		s.Emitted++
	case Skipped:
		s.Skipped++
	}
	return r
}
