package series

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seriesOf(ch Channel, times ...float64) *Series {
	s := New(ch)
	for i, t := range times {
		s.Append(Point{Time: t, Value: float64(i), Line: i + 1})
	}
	return s
}

func TestCorrect_RewritesRegressions(t *testing.T) {
	in := seriesOf(ROS, 1, 5, 3)

	out, diags := Correct(in)

	assert.Equal(t, []float64{1, 5, 6}, out.Times())
	require.Len(t, diags, 1)
	assert.Equal(t, 3, diags[0].Line)
	assert.Equal(t, ROS, diags[0].Channel)
	assert.Equal(t, "time decreased in ROS data", diags[0].Message)
	assert.Contains(t, diags[0].Details, "time 3 < previous 5")

	// input untouched
	assert.Equal(t, []float64{1, 5, 3}, in.Times())
}

func TestCorrect_ChainedRegressions(t *testing.T) {
	out, diags := Correct(seriesOf(UTC, 10, 2, 4, 20, 19.5))

	assert.Equal(t, []float64{10, 11, 12, 20, 21}, out.Times())
	require.Len(t, diags, 4)
	assert.Contains(t, diags[1].Details, "time 4 < previous 11")
	assert.Contains(t, diags[3].Details, "time 19.5 < previous 20")
	assert.True(t, out.IsMonotonic())
}

func TestCorrect_KeepsLinesAndValues(t *testing.T) {
	in := seriesOf(Frame2, 7, 1)
	in.Points[1].Line = 42

	out, _ := Correct(in)

	assert.Equal(t, 42, out.Points[1].Line)
	assert.Equal(t, in.Values(), out.Values())
}

func TestCorrect_EqualTimesAreValid(t *testing.T) {
	out, diags := Correct(seriesOf(FineB, 3, 3, 3))

	assert.Empty(t, diags)
	assert.Equal(t, []float64{3, 3, 3}, out.Times())
}

func TestCorrect_Idempotent(t *testing.T) {
	once, first := Correct(seriesOf(ROS, 5, 4, 3, 9, 1))
	require.NotEmpty(t, first)

	twice, second := Correct(once)

	assert.Empty(t, second)
	assert.Equal(t, once, twice)
}

func TestCorrect_Empty(t *testing.T) {
	out, diags := Correct(New(Dir36))
	assert.Equal(t, 0, out.Len())
	assert.Empty(t, diags)

	out, diags = Correct(nil)
	assert.Nil(t, out)
	assert.Empty(t, diags)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		series []*Series
		want   Summary
	}{
		{
			name: "pools all series",
			series: []*Series{
				seriesOf(ROS, 10, 20),
				seriesOf(Frame2, 5, 12),
				seriesOf(UTC, 30),
			},
			want: Summary{StartTime: 5, EndTime: 30, Duration: 25},
		},
		{
			name:   "empty pool",
			series: []*Series{New(ROS), nil},
			want:   Summary{},
		},
		{
			name:   "single point",
			series: []*Series{seriesOf(UTC, 7)},
			want:   Summary{StartTime: 7, EndTime: 7},
		},
		{
			name:   "negative times",
			series: []*Series{seriesOf(ROS, -4, 2)},
			want:   Summary{StartTime: -4, EndTime: 2, Duration: 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.series...))
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatClock(0))
	assert.Equal(t, "00:00:00", FormatClock(math.NaN()))
	assert.Equal(t, "01:01:01", FormatClock(3661))
	assert.Equal(t, "22:13:20", FormatClock(1_700_000_000))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatDuration(0))
	assert.Equal(t, "00:02:05", FormatDuration(125.9))
	assert.Equal(t, "26:00:00", FormatDuration(26*3600))
}

func TestParseChannel(t *testing.T) {
	for _, ch := range Channels {
		got, err := ParseChannel(ch.Key())
		require.NoError(t, err)
		assert.Equal(t, ch, got)

		got, err = ParseChannel(ch.String())
		require.NoError(t, err)
		assert.Equal(t, ch, got)
	}

	_, err := ParseChannel("pressure")
	assert.Error(t, err)
}

func TestDiagnostic_JSONUsesChannelKey(t *testing.T) {
	data, err := json.Marshal(Diagnostic{Line: 3, Channel: Dir36, Message: "m", Details: "d"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"line":3,"channel":"dir3","message":"m","details":"d"}`, string(data))
}

func TestSeries_IsMonotonic(t *testing.T) {
	assert.True(t, seriesOf(ROS).IsMonotonic())
	assert.True(t, seriesOf(ROS, 1, 1, 2).IsMonotonic())
	assert.False(t, seriesOf(ROS, 1, 0).IsMonotonic())
}
