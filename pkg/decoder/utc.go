package decoder

import (
	"math"
	"strings"

	"github.com/ccollicutt/roslog/pkg/parser"
	"github.com/ccollicutt/roslog/pkg/series"
)

// UTC payload normalisation and rejection limits.
const (
	utcModulus   = 1e15
	maxUTCOffset = 1e6
)

type utcState int

const (
	awaitingMarker utcState = iota
	awaitingPayload
)

// UTC decodes two-line time-sync records: a marker line followed by the
// payload line. The point is attributed to the marker line.
type UTC struct {
	state      utcState
	markerLine int

	// baseline 0 means unset.
	baseline float64

	points *series.Series
	stats  Stats
}

// NewUTC creates a UTC decoder.
func NewUTC() *UTC {
	u := &UTC{}
	u.Reset()
	return u
}

// Name returns "utc".
func (u *UTC) Name() string { return "utc" }

// Wants accepts marker lines and, while armed, the line after a marker.
func (u *UTC) Wants(kind Kind) bool {
	return u.state == awaitingPayload || kind.Has(KindUTCMarker)
}

// Pending reports whether a marker is waiting for its payload line.
func (u *UTC) Pending() bool { return u.state == awaitingPayload }

// Process advances the state machine by one line. A payload line that is
// itself a marker is decoded first and then arms the machine again.
func (u *UTC) Process(line *parser.Line) Result {
	var res Result
	handled := false

	if u.state == awaitingPayload {
		u.state = awaitingMarker
		res = u.stats.record(u.payload(line))
		handled = true
	}

	if strings.Contains(line.Text, UTCMarker) {
		u.state = awaitingPayload
		u.markerLine = line.Num
		if !handled {
			u.stats.Matched++
			res = Result{Outcome: Pending}
		}
	}

	return res
}

func (u *UTC) payload(line *parser.Line) Result {
	if line.Text == "" {
		return skip("empty payload")
	}

	field, ok := parser.Token(line.Text, ":", 1)
	if !ok {
		return skip("missing payload field")
	}
	tok, ok := parser.Token(field, " ", 1)
	if !ok {
		return skip("missing payload token")
	}
	valueTok, ok := parser.Token(tok, ",", 1)
	if !ok {
		return skip("missing payload value")
	}
	v, ok := parser.LeadingFloat(valueTok)
	if !ok {
		return skip("unparseable payload value")
	}

	// The time is the leading number of the token, before the value's comma.
	t, ok := parser.LeadingFloat(tok)
	if !ok {
		return skip("unparseable time")
	}

	normalized := math.Mod(v, utcModulus) / readingDivisor * readingScale
	if u.baseline == 0 {
		u.baseline = normalized
	}

	delta := normalized - u.baseline
	if !(math.Abs(delta) <= maxUTCOffset) {
		return skip("offset out of range")
	}

	u.points.Append(series.Point{Time: t, Value: delta, Line: u.markerLine})
	return emitted()
}

// Series returns the UTC series.
func (u *UTC) Series() []*series.Series {
	return []*series.Series{u.points}
}

// Stats returns the line counters.
func (u *UTC) Stats() Stats { return u.stats }

// Reset clears all state.
func (u *UTC) Reset() {
	u.state = awaitingMarker
	u.markerLine = 0
	u.baseline = 0
	u.points = series.New(series.UTC)
	u.stats = Stats{}
}
