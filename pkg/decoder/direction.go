package decoder

import (
	"math"
	"strings"

	"github.com/ccollicutt/roslog/pkg/parser"
	"github.com/ccollicutt/roslog/pkg/series"
)

// Direction record fields, separated by ';'.
const (
	dirFieldTime    = 0
	dirFieldCode    = 1
	dirFieldBalance = 3
)

// initialDirectionCode is the previous code assumed before the first line.
const initialDirectionCode = 1

// Textual codes that feed the Dir-3/6 series.
var dir36Markers = []string{"Dir = 003", "Dir = 006"}

// DirectionView is the read-only view of the Direction decoder that other
// decoders depend on.
type DirectionView interface {
	// Latest returns the most recently emitted offset point.
	Latest() (series.Point, bool)

	// Offset returns the current cumulative offset.
	Offset() float64
}

// Direction decodes Direction lines into the cumulative ROS offset and the
// derived Dir-3/6 series.
type Direction struct {
	prevCode int
	offset   float64

	ros   *series.Series
	dir36 *series.Series
	stats Stats
}

// NewDirection creates a Direction decoder.
func NewDirection() *Direction {
	d := &Direction{}
	d.Reset()
	return d
}

// Name returns "direction".
func (d *Direction) Name() string { return "direction" }

// Wants accepts lines containing the Direction marker.
func (d *Direction) Wants(kind Kind) bool { return kind.Has(KindDirection) }

// Process decodes one Direction line.
func (d *Direction) Process(line *parser.Line) Result {
	return d.stats.record(d.process(line))
}

func (d *Direction) process(line *parser.Line) Result {
	fields := strings.Split(line.Text, ";")

	raw, ok := parser.FieldValue(fields, dirFieldTime)
	if !ok {
		return skip("missing time field")
	}
	t, ok := parser.LeadingFloat(raw)
	if !ok {
		return skip("unparseable time")
	}

	code, codeOK := directionCode(fields)
	d.offset += d.delta(code, codeOK, fields)

	d.ros.Append(series.Point{Time: t, Value: d.offset, Line: line.Num})

	dir36 := 0.0
	for _, m := range dir36Markers {
		if strings.Contains(line.Text, m) {
			dir36 = d.offset
			break
		}
	}
	d.dir36.Append(series.Point{Time: t, Value: dir36, Line: line.Num})

	if codeOK {
		d.prevCode = code
	}
	return emitted()
}

// delta returns the offset change for the current code given the previous one.
func (d *Direction) delta(code int, ok bool, fields []string) float64 {
	if !ok {
		return 0
	}
	switch code {
	case 1, 2:
		raw, ok := parser.FieldValue(fields, dirFieldBalance)
		if !ok {
			return 0
		}
		balance, ok := parser.LeadingFloat(raw)
		if !ok {
			return 0
		}
		return balance
	case 3:
		switch d.prevCode {
		case 1, 4:
			return 2
		case 2, 5:
			return -2
		}
		return 0
	case 4:
		return 1
	case 5:
		return -1
	default:
		return 0
	}
}

// directionCode parses field 1. Fractional codes map to -1, which matches no
// rule.
func directionCode(fields []string) (int, bool) {
	raw, ok := parser.FieldValue(fields, dirFieldCode)
	if !ok {
		return 0, false
	}
	v, ok := parser.LeadingFloat(raw)
	if !ok {
		return 0, false
	}
	if v != math.Trunc(v) {
		return -1, true
	}
	return int(v), true
}

// Latest returns the most recently emitted ROS point.
func (d *Direction) Latest() (series.Point, bool) {
	if d.ros.Len() == 0 {
		return series.Point{}, false
	}
	return d.ros.Points[d.ros.Len()-1], true
}

// Offset returns the current cumulative offset.
func (d *Direction) Offset() float64 { return d.offset }

// Series returns the ROS and Dir-3/6 series, index-aligned.
func (d *Direction) Series() []*series.Series {
	return []*series.Series{d.ros, d.dir36}
}

// Stats returns the line counters.
func (d *Direction) Stats() Stats { return d.stats }

// Reset clears all state.
func (d *Direction) Reset() {
	d.prevCode = initialDirectionCode
	d.offset = 0
	d.ros = series.New(series.ROS)
	d.dir36 = series.New(series.Dir36)
	d.stats = Stats{}
}
