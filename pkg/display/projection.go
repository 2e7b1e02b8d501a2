package display

import (
	"errors"
	"math"

	"github.com/ccollicutt/roslog/pkg/series"
)

// ErrNoData is returned when there is nothing visible to render.
var ErrNoData = errors.New("no visible data to render")

// traceNames are the legend names of each channel.
var traceNames = map[series.Channel]string{
	series.ROS:    "ROS offset",
	series.Dir36:  "Dir 3/6",
	series.FineB:  "FineB",
	series.Frame2: "Frame 2",
	series.UTC:    "UTC time",
}

// SeriesSource gives access to corrected series by channel.
// analyzer.Result implements it.
type SeriesSource interface {
	Channel(ch series.Channel) *series.Series
}

// TracePoint is one renderable point. GapBefore marks that points between
// this one and the previous one were filtered out.
type TracePoint struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Line      int     `json:"line"`
	GapBefore bool    `json:"gap_before,omitempty"`

	// FineBalance carries hover details for FineB points.
	FineBalance *series.FineBalanceExtras `json:"fine_balance,omitempty"`
}

// Trace is one renderer-ready series.
type Trace struct {
	Channel    series.Channel `json:"channel"`
	Name       string         `json:"name"`
	Mode       Mode           `json:"mode"`
	Color      string         `json:"color"`
	MarkerSize float64        `json:"marker_size"`
	Points     []TracePoint   `json:"points"`
}

// Xs returns the x value of every point.
func (t *Trace) Xs() []float64 {
	out := make([]float64, len(t.Points))
	for i, p := range t.Points {
		out[i] = p.X
	}
	return out
}

// Ys returns the y value of every point.
func (t *Trace) Ys() []float64 {
	out := make([]float64, len(t.Points))
	for i, p := range t.Points {
		out[i] = p.Y
	}
	return out
}

// Project maps the series of src to traces using settings. Hidden channels
// and channels left without points are omitted. Dir-3/6 keeps only its
// non-zero values; Frame2 drops values whose magnitude reaches its limit
// unless jumps are shown, and marks the point after a dropped run with
// GapBefore. Non-finite points are always dropped. Traces longer than
// maxPoints are reduced with ds; a nil ds or a non-positive maxPoints keeps
// every point.
func Project(src SeriesSource, settings Settings, ds Downsampler, maxPoints int) []Trace {
	var traces []Trace

	for _, ch := range series.Channels {
		opts := settings.For(ch)
		if !opts.Show {
			continue
		}

		points := filterPoints(ch, src.Channel(ch), opts)
		if len(points) == 0 {
			continue
		}

		trace := Trace{
			Channel:    ch,
			Name:       traceNames[ch],
			Mode:       opts.Type.Mode(),
			Color:      opts.Color,
			MarkerSize: opts.MarkerSize,
			Points:     points,
		}
		if ds != nil && maxPoints > 0 && len(points) > maxPoints {
			trace.Points = reduce(points, ds(trace.Xs(), trace.Ys(), maxPoints))
		}
		traces = append(traces, trace)
	}

	return traces
}

func filterPoints(ch series.Channel, s *series.Series, opts *Options) []TracePoint {
	if s == nil {
		return nil
	}
	out := make([]TracePoint, 0, s.Len())
	gap := false

	for _, p := range s.Points {
		if !keep(ch, p, opts) {
			// only Frame2 drops break the line
			gap = ch == series.Frame2 && len(out) > 0
			continue
		}
		out = append(out, TracePoint{
			X:           p.Time,
			Y:           p.Value,
			Line:        p.Line,
			GapBefore:   gap,
			FineBalance: p.FineBalance,
		})
		gap = false
	}

	return out
}

func keep(ch series.Channel, p series.Point, opts *Options) bool {
	if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) || math.IsNaN(p.Time) || math.IsInf(p.Time, 0) {
		return false
	}
	switch ch {
	case series.Dir36:
		return p.Value != 0
	case series.Frame2:
		return opts.ShowJumps || math.Abs(p.Value) < opts.Limit
	}
	return true
}

// reduce keeps the points at idx. A kept point is marked GapBefore when any
// point since the previous kept one was.
func reduce(points []TracePoint, idx []int) []TracePoint {
	out := make([]TracePoint, 0, len(idx))
	prev := -1
	for _, i := range idx {
		if i < 0 || i >= len(points) || i <= prev {
			continue
		}
		p := points[i]
		if prev >= 0 {
			for j := prev + 1; j < i; j++ {
				if points[j].GapBefore {
					p.GapBefore = true
					break
				}
			}
		}
		out = append(out, p)
		prev = i
	}
	return out
}
