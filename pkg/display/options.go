// Package display projects corrected series and per-channel display options
// into renderer-ready traces, and renders them to PNG charts.
package display

import (
	"github.com/ccollicutt/roslog/pkg/series"
)

// ChartType is the user-facing drawing style of a channel.
type ChartType string

const (
	TypeLine            ChartType = "line"
	TypeLineWithMarkers ChartType = "lineWithMarkers"
	TypeScatter         ChartType = "scatter"
)

// Mode is the renderer drawing mode derived from a ChartType.
type Mode string

const (
	ModeLines        Mode = "lines"
	ModeLinesMarkers Mode = "lines+markers"
	ModeMarkers      Mode = "markers"
)

// Mode maps the chart type to a renderer mode. Unknown types draw markers.
func (t ChartType) Mode() Mode {
	switch t {
	case TypeLine:
		return ModeLines
	case TypeLineWithMarkers:
		return ModeLinesMarkers
	default:
		return ModeMarkers
	}
}

// Options controls how one channel is drawn. Limit and ShowJumps only apply
// to Frame2.
type Options struct {
	Show       bool      `yaml:"show" json:"show"`
	Color      string    `yaml:"color" json:"color" validate:"required,hexcolor"`
	MarkerSize float64   `yaml:"marker_size" json:"marker_size" validate:"gt=0"`
	Type       ChartType `yaml:"type" json:"type" validate:"oneof=line lineWithMarkers scatter"`
	Limit      float64   `yaml:"limit,omitempty" json:"limit,omitempty" validate:"gte=0"`
	ShowJumps  bool      `yaml:"show_jumps,omitempty" json:"show_jumps,omitempty"`
}

// Settings holds the display options of every channel.
type Settings struct {
	ROS    Options `yaml:"ros" json:"ros"`
	Dir3   Options `yaml:"dir3" json:"dir3"`
	FineB  Options `yaml:"fineB" json:"fineB"`
	Frame2 Options `yaml:"frame2" json:"frame2"`
	UTC    Options `yaml:"utc" json:"utc"`
}

// DefaultSettings returns the settings the viewer starts with.
func DefaultSettings() Settings {
	return Settings{
		ROS:    Options{Show: true, Color: "#ff0000", MarkerSize: 5, Type: TypeLine},
		Dir3:   Options{Show: true, Color: "#00ff00", MarkerSize: 5, Type: TypeLine},
		FineB:  Options{Show: true, Color: "#0000ff", MarkerSize: 5, Type: TypeScatter},
		Frame2: Options{Show: true, Color: "#00ffff", MarkerSize: 5, Type: TypeLine, Limit: 1000},
		UTC:    Options{Show: true, Color: "#ff00ff", MarkerSize: 5, Type: TypeLine},
	}
}

// For returns the options of ch. Unknown channels get hidden options.
func (s *Settings) For(ch series.Channel) *Options {
	switch ch {
	case series.ROS:
		return &s.ROS
	case series.Dir36:
		return &s.Dir3
	case series.FineB:
		return &s.FineB
	case series.Frame2:
		return &s.Frame2
	case series.UTC:
		return &s.UTC
	}
	return &Options{}
}

// ShowOnly hides every channel not listed.
func (s *Settings) ShowOnly(channels ...series.Channel) {
	keep := make(map[series.Channel]bool, len(channels))
	for _, ch := range channels {
		keep[ch] = true
	}
	for _, ch := range series.Channels {
		if !keep[ch] {
			s.For(ch).Show = false
		}
	}
}
