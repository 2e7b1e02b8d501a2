package decoder

import (
	"strings"

	"github.com/ccollicutt/roslog/pkg/parser"
	"github.com/ccollicutt/roslog/pkg/series"
)

// Fine-Balance record fields, separated by ';'.
const (
	fineFieldValue    = 0
	fineFieldIntegral = 1
	fineFieldMorion   = 2
	fineFieldCorr     = 3
)

// fineZeroMarker is the text of a zero fine-balance reading.
const fineZeroMarker = "FineB = 00"

// TransitionKind distinguishes the two fine-balance transitions.
type TransitionKind string

const (
	// TransitionZero is the first zero reading.
	TransitionZero TransitionKind = "zero"

	// TransitionNonZero is the first non-zero reading after a zero one.
	TransitionNonZero TransitionKind = "non_zero"
)

// Transition records where the fine-balance reading first reached zero or
// first left it. Offset is the cumulative direction offset at that line.
type Transition struct {
	Kind   TransitionKind `json:"kind"`
	Offset float64        `json:"offset"`
	Time   float64        `json:"time"`
	Line   int            `json:"line"`
}

// FineBalance decodes Fine-Balance lines. Lines are ignored until the
// Direction decoder has emitted a point, and every point takes the time of
// the latest Direction point.
type FineBalance struct {
	dir DirectionView

	baseline    int64
	baselineSet bool

	zero    *Transition
	nonZero *Transition

	points *series.Series
	stats  Stats
}

// NewFineBalance creates a Fine-Balance decoder reading direction state
// from dir.
func NewFineBalance(dir DirectionView) *FineBalance {
	f := &FineBalance{dir: dir}
	f.Reset()
	return f
}

// Name returns "fine_balance".
func (f *FineBalance) Name() string { return "fine_balance" }

// Wants accepts lines containing the Fine-Balance marker.
func (f *FineBalance) Wants(kind Kind) bool { return kind.Has(KindFineBalance) }

// Process decodes one Fine-Balance line.
func (f *FineBalance) Process(line *parser.Line) Result {
	return f.stats.record(f.process(line))
}

func (f *FineBalance) process(line *parser.Line) Result {
	latest, ok := f.dir.Latest()
	if !ok {
		return skip("no direction record yet")
	}

	fields := strings.Split(line.Text, ";")

	value, ok := intField(fields, fineFieldValue)
	if !ok {
		return skip("unparseable value")
	}
	integral, ok := intField(fields, fineFieldIntegral)
	if !ok {
		return skip("unparseable integral")
	}
	morion, ok := intField(fields, fineFieldMorion)
	if !ok {
		return skip("unparseable morion")
	}
	corr, ok := intField(fields, fineFieldCorr)
	if !ok {
		corr = 0
	}

	if !f.baselineSet {
		f.baseline = morion
		f.baselineSet = true
	}

	f.points.Append(series.Point{
		Time:  latest.Time,
		Value: float64(value),
		Line:  line.Num,
		FineBalance: &series.FineBalanceExtras{
			Integral:     integral,
			MorionRaw:    morion,
			MorionOffset: morion - f.baseline,
			Corr:         corr,
		},
	})

	isZero := strings.Contains(line.Text, fineZeroMarker)
	switch {
	case isZero && f.zero == nil:
		f.zero = f.transition(TransitionZero, latest, line)
	case !isZero && f.zero != nil && f.nonZero == nil:
		f.nonZero = f.transition(TransitionNonZero, latest, line)
	}

	return emitted()
}

func (f *FineBalance) transition(kind TransitionKind, latest series.Point, line *parser.Line) *Transition {
	return &Transition{
		Kind:   kind,
		Offset: f.dir.Offset(),
		Time:   latest.Time,
		Line:   line.Num,
	}
}

func intField(fields []string, i int) (int64, bool) {
	raw, ok := parser.FieldValue(fields, i)
	if !ok {
		return 0, false
	}
	return parser.LeadingInt(raw)
}

// Transitions returns the recorded zero and non-zero transitions, in order.
func (f *FineBalance) Transitions() []Transition {
	var out []Transition
	if f.zero != nil {
		out = append(out, *f.zero)
	}
	if f.nonZero != nil {
		out = append(out, *f.nonZero)
	}
	return out
}

// Series returns the FineB series.
func (f *FineBalance) Series() []*series.Series {
	return []*series.Series{f.points}
}

// Stats returns the line counters.
func (f *FineBalance) Stats() Stats { return f.stats }

// Reset clears all state. The direction view is kept.
func (f *FineBalance) Reset() {
	f.baseline = 0
	f.baselineSet = false
	f.zero = nil
	f.nonZero = nil
	f.points = series.New(series.FineB)
	f.stats = Stats{}
}
