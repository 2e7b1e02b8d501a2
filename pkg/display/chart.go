package display

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ccollicutt/roslog/pkg/series"
)

// Default chart dimensions in pixels.
const (
	DefaultWidth  = 1280
	DefaultHeight = 500
)

const lineWidth = 2

// Renderer draws traces as a PNG chart. Lines are drawn through every
// point; GapBefore markers are not rendered.
type Renderer struct {
	Title  string
	Width  int
	Height int

	// ClockAxis labels the x axis as HH:MM:SS UTC instead of raw seconds.
	ClockAxis bool
}

// NewRenderer creates a renderer with the given size. Non-positive sizes
// fall back to the defaults.
func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Renderer{
		Title:  "ROS data",
		Width:  width,
		Height: height,
	}
}

// Render writes the traces to w as a PNG image.
// Returns ErrNoData if there are no traces.
func (r *Renderer) Render(traces []Trace, w io.Writer) error {
	if len(traces) == 0 {
		return ErrNoData
	}

	seriesList := make([]chart.Series, 0, len(traces))
	var allX, allY []float64
	for i := range traces {
		cs := continuousSeries(&traces[i])
		seriesList = append(seriesList, cs)
		allX = append(allX, cs.XValues...)
		allY = append(allY, cs.YValues...)
	}

	xAxis := chart.XAxis{Name: "Time (UNIX)", Range: flatRange(allX)}
	if r.ClockAxis {
		xAxis.Name = "Time (UTC)"
		xAxis.ValueFormatter = clockFormatter
	}

	ch := chart.Chart{
		Title:      r.Title,
		Width:      r.Width,
		Height:     r.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      xAxis,
		YAxis:      chart.YAxis{Name: "Value", Range: flatRange(allY)},
		Series:     seriesList,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

func continuousSeries(t *Trace) chart.ContinuousSeries {
	xs, ys := t.Xs(), t.Ys()
	// go-chart needs two x values to build a range
	if len(xs) == 1 {
		xs = append(xs, xs[0]+1)
		ys = append(ys, ys[0])
	}
	return chart.ContinuousSeries{
		Name:    t.Name,
		XValues: xs,
		YValues: ys,
		Style:   traceStyle(t),
	}
}

// flatRange returns an explicit range around a constant set of values, which
// go-chart cannot scale on its own. Other sets return nil for auto-ranging.
func flatRange(values []float64) chart.Range {
	if len(values) == 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi > lo {
		return nil
	}
	return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
}

func traceStyle(t *Trace) chart.Style {
	col := parseColor(t.Color)
	dot := t.MarkerSize / 2

	switch t.Mode {
	case ModeLines:
		return chart.Style{StrokeColor: col, StrokeWidth: lineWidth}
	case ModeLinesMarkers:
		return chart.Style{StrokeColor: col, StrokeWidth: lineWidth, DotColor: col, DotWidth: dot}
	default:
		return chart.Style{StrokeColor: col, StrokeWidth: chart.Disabled, DotColor: col, DotWidth: dot}
	}
}

// parseColor accepts #rgb and #rrggbb; anything else draws black.
func parseColor(hex string) drawing.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 3 && len(hex) != 6 {
		return drawing.ColorBlack
	}
	return drawing.ColorFromHex(hex)
}

func clockFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return series.FormatClock(f)
	}
	return ""
}
