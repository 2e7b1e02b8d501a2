// Package series holds the typed time series produced by a ROS log parse,
// the monotonicity corrector and the session summary.
package series

import (
	"fmt"
	"strings"
)

// Channel identifies one of the five series a parse produces.
type Channel int

const (
	// ROS is the cumulative rotational offset from Direction lines.
	ROS Channel = iota

	// Dir36 mirrors ROS on direction code 3 and 6 lines and is 0 elsewhere.
	Dir36

	// FineB is the fine-balance reading keyed by the latest Direction time.
	FineB

	// Frame2 is the baseline-subtracted environmental primary reading.
	Frame2

	// UTC is the baseline-subtracted time-sync reading.
	UTC
)

// Channels lists every channel in assembly order.
var Channels = []Channel{ROS, Dir36, FineB, Frame2, UTC}

var channelNames = map[Channel]string{
	ROS:    "ROS",
	Dir36:  "Dir3/6",
	FineB:  "FineB",
	Frame2: "Frame2",
	UTC:    "UTC",
}

// channelKeys are the stable identifiers used in settings files and JSON.
var channelKeys = map[Channel]string{
	ROS:    "ros",
	Dir36:  "dir3",
	FineB:  "fineB",
	Frame2: "frame2",
	UTC:    "utc",
}

// String returns the display name of the channel.
func (c Channel) String() string {
	if name, ok := channelNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// Key returns the stable identifier of the channel.
func (c Channel) Key() string {
	return channelKeys[c]
}

// MarshalText encodes the channel as its key.
func (c Channel) MarshalText() ([]byte, error) {
	key := c.Key()
	if key == "" {
		return nil, fmt.Errorf("unknown channel %d", int(c))
	}
	return []byte(key), nil
}

// UnmarshalText decodes a channel key.
func (c *Channel) UnmarshalText(text []byte) error {
	parsed, err := ParseChannel(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseChannel resolves a channel from its key or display name, ignoring case.
func ParseChannel(s string) (Channel, error) {
	for _, ch := range Channels {
		if strings.EqualFold(s, ch.Key()) || strings.EqualFold(s, ch.String()) {
			return ch, nil
		}
	}
	return 0, fmt.Errorf("unknown channel %q", s)
}

// FineBalanceExtras are the additional readings of a fine-balance point.
type FineBalanceExtras struct {
	Integral     int64 `json:"integral"`
	MorionRaw    int64 `json:"morion_raw"`
	MorionOffset int64 `json:"morion_offset"`
	Corr         int64 `json:"corr"`
}

// EnvironmentExtras are the environmental readings of a Frame2 point.
// Readings that fail their plausibility filter are NaN.
type EnvironmentExtras struct {
	ID          int64   `json:"id"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	Temperature float64 `json:"temperature"`
}

// Point is one emitted sample. Line is the 1-based source line and survives
// time correction.
type Point struct {
	Time  float64 `json:"time"`
	Value float64 `json:"value"`
	Line  int     `json:"line"`

	FineBalance *FineBalanceExtras `json:"fine_balance,omitempty"`
	Environment *EnvironmentExtras `json:"environment,omitempty"`
}

// Series is the ordered list of points for one channel, in line order.
type Series struct {
	Channel Channel `json:"channel"`
	Points  []Point `json:"points"`
}

// New creates an empty series for the channel.
func New(ch Channel) *Series {
	return &Series{Channel: ch}
}

// Append adds a point to the end of the series.
func (s *Series) Append(p Point) {
	s.Points = append(s.Points, p)
}

// Len returns the number of points. A nil series has none.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Points)
}

// Times returns the time of every point.
func (s *Series) Times() []float64 {
	out := make([]float64, s.Len())
	for i := range out {
		out[i] = s.Points[i].Time
	}
	return out
}

// Values returns the value of every point.
func (s *Series) Values() []float64 {
	out := make([]float64, s.Len())
	for i := range out {
		out[i] = s.Points[i].Value
	}
	return out
}

// Clone returns a copy of the series. Extras are shared; they are never
// mutated after emission.
func (s *Series) Clone() *Series {
	if s == nil {
		return nil
	}
	out := &Series{Channel: s.Channel}
	if s.Points != nil {
		out.Points = make([]Point, len(s.Points))
		copy(out.Points, s.Points)
	}
	return out
}

// IsMonotonic reports whether point times never decrease.
func (s *Series) IsMonotonic() bool {
	for i := 1; i < s.Len(); i++ {
		if s.Points[i].Time < s.Points[i-1].Time {
			return false
		}
	}
	return true
}

// Diagnostic is a user-visible finding tied to a source line.
// Line 0 marks a failure of the whole file.
type Diagnostic struct {
	Line    int     `json:"line"`
	Channel Channel `json:"channel"`
	Message string  `json:"message"`
	Details string  `json:"details"`
}

// String formats the diagnostic for logs and terminal output.
func (d Diagnostic) String() string {
	if d.Line == 0 {
		return fmt.Sprintf("%s: %s", d.Message, d.Details)
	}
	return fmt.Sprintf("line %d: %s: %s", d.Line, d.Message, d.Details)
}
