package decoder

import (
	"math"
	"strings"

	"github.com/ccollicutt/roslog/pkg/parser"
	"github.com/ccollicutt/roslog/pkg/series"
)

// Frame2 record segments, separated by ':'.
const (
	frame2SegID          = 1
	frame2SegReading     = 2
	frame2SegHumidity    = 3
	frame2SegPressure    = 4
	frame2SegTemperature = 5
	frame2Segments       = 6
)

// Reading normalisation and plausibility limits.
const (
	readingDivisor = 1e10
	readingScale   = 3

	maxHumidity    = 101
	maxPressure    = 150001
	maxTemperature = 101
)

// Frame2 decodes Frame2 environmental lines. The primary reading is
// normalised and reported relative to the first accepted line.
type Frame2 struct {
	// baseline 0 means unset.
	baseline float64

	points *series.Series
	stats  Stats
}

// NewFrame2 creates a Frame2 decoder.
func NewFrame2() *Frame2 {
	f := &Frame2{}
	f.Reset()
	return f
}

// Name returns "frame2".
func (f *Frame2) Name() string { return "frame2" }

// Wants accepts lines carrying the Frame2 marker and sentinel.
func (f *Frame2) Wants(kind Kind) bool { return kind.Has(KindFrame2) }

// Process decodes one Frame2 line.
func (f *Frame2) Process(line *parser.Line) Result {
	return f.stats.record(f.process(line))
}

func (f *Frame2) process(line *parser.Line) Result {
	segs := strings.Split(line.Text, ":")
	if len(segs) < frame2Segments {
		return skip("missing segments")
	}

	id, ok := parser.LeadingInt(segs[frame2SegID])
	if !ok {
		return skip("unparseable id")
	}
	rawTok, ok := parser.Token(segs[frame2SegReading], ",", 1)
	if !ok {
		return skip("missing reading")
	}
	raw, ok := parser.LeadingFloat(rawTok)
	if !ok {
		return skip("unparseable reading")
	}
	t, ok := parser.LeadingFloat(segs[frame2SegReading])
	if !ok {
		return skip("unparseable time")
	}

	normalized := raw / readingDivisor * readingScale
	if f.baseline == 0 {
		f.baseline = normalized
	}

	f.points.Append(series.Point{
		Time:  t,
		Value: normalized - f.baseline,
		Line:  line.Num,
		Environment: &series.EnvironmentExtras{
			ID:          id,
			Humidity:    plausible(envReading(segs[frame2SegHumidity]), maxHumidity),
			Pressure:    plausible(envReading(segs[frame2SegPressure]), maxPressure),
			Temperature: plausible(envReading(segs[frame2SegTemperature]), maxTemperature),
		},
	})
	return emitted()
}

// envReading parses a decimal-comma reading; failures are NaN.
func envReading(s string) float64 {
	v, ok := parser.LeadingFloat(parser.NormalizeDecimal(s))
	if !ok {
		return math.NaN()
	}
	return v
}

// plausible returns v when it is below limit and NaN otherwise.
func plausible(v, limit float64) float64 {
	if v < limit {
		return v
	}
	return math.NaN()
}

// Series returns the Frame2 series.
func (f *Frame2) Series() []*series.Series {
	return []*series.Series{f.points}
}

// Stats returns the line counters.
func (f *Frame2) Stats() Stats { return f.stats }

// Reset clears all state.
func (f *Frame2) Reset() {
	f.baseline = 0
	f.points = series.New(series.Frame2)
	f.stats = Stats{}
}
