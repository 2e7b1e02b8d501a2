package display

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/roslog/pkg/series"
)

type sourceMap map[series.Channel]*series.Series

func (m sourceMap) Channel(ch series.Channel) *series.Series {
	if s, ok := m[ch]; ok {
		return s
	}
	return series.New(ch)
}

func makeSeries(ch series.Channel, values ...float64) *series.Series {
	s := series.New(ch)
	for i, v := range values {
		s.Append(series.Point{Time: float64(i), Value: v, Line: i + 1})
	}
	return s
}

func TestChartType_Mode(t *testing.T) {
	assert.Equal(t, ModeLines, TypeLine.Mode())
	assert.Equal(t, ModeLinesMarkers, TypeLineWithMarkers.Mode())
	assert.Equal(t, ModeMarkers, TypeScatter.Mode())
	assert.Equal(t, ModeMarkers, ChartType("bars").Mode())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	for _, ch := range series.Channels {
		opts := s.For(ch)
		assert.True(t, opts.Show, ch.String())
		assert.Equal(t, 5.0, opts.MarkerSize, ch.String())
	}
	assert.Equal(t, "#ff0000", s.ROS.Color)
	assert.Equal(t, TypeScatter, s.FineB.Type)
	assert.Equal(t, 1000.0, s.Frame2.Limit)
	assert.False(t, s.Frame2.ShowJumps)
}

func TestSettings_ShowOnly(t *testing.T) {
	s := DefaultSettings()
	s.ShowOnly(series.ROS, series.UTC)

	assert.True(t, s.ROS.Show)
	assert.True(t, s.UTC.Show)
	assert.False(t, s.Dir3.Show)
	assert.False(t, s.FineB.Show)
	assert.False(t, s.Frame2.Show)
}

func TestProject_HiddenAndEmptyChannelsOmitted(t *testing.T) {
	settings := DefaultSettings()
	settings.UTC.Show = false

	src := sourceMap{
		series.ROS: makeSeries(series.ROS, 1, 2),
		series.UTC: makeSeries(series.UTC, 1),
	}

	traces := Project(src, settings, nil, 0)

	require.Len(t, traces, 1)
	assert.Equal(t, series.ROS, traces[0].Channel)
	assert.Equal(t, "ROS offset", traces[0].Name)
	assert.Equal(t, ModeLines, traces[0].Mode)
	assert.Equal(t, "#ff0000", traces[0].Color)
	assert.Equal(t, []float64{1, 2}, traces[0].Ys())
}

func TestProject_Dir36KeepsNonZero(t *testing.T) {
	src := sourceMap{series.Dir36: makeSeries(series.Dir36, 0, 5, 0, 0, 7)}

	traces := Project(src, DefaultSettings(), nil, 0)

	require.Len(t, traces, 1)
	assert.Equal(t, []float64{5, 7}, traces[0].Ys())
	assert.Equal(t, []float64{1, 4}, traces[0].Xs())
	for _, p := range traces[0].Points {
		assert.False(t, p.GapBefore)
	}
}

func TestProject_Dir36AllZeroOmitted(t *testing.T) {
	src := sourceMap{series.Dir36: makeSeries(series.Dir36, 0, 0)}
	assert.Empty(t, Project(src, DefaultSettings(), nil, 0))
}

func TestProject_Frame2Limit(t *testing.T) {
	src := sourceMap{series.Frame2: makeSeries(series.Frame2, 0, 10, 5000, -2000, 20, 999.9, 1000)}

	t.Run("jumps hidden", func(t *testing.T) {
		traces := Project(src, DefaultSettings(), nil, 0)

		require.Len(t, traces, 1)
		points := traces[0].Points
		assert.Equal(t, []float64{0, 10, 20, 999.9}, traces[0].Ys())
		assert.Equal(t, []bool{false, false, true, false},
			[]bool{points[0].GapBefore, points[1].GapBefore, points[2].GapBefore, points[3].GapBefore})
		assert.Equal(t, 5, points[2].Line)
	})

	t.Run("jumps shown", func(t *testing.T) {
		settings := DefaultSettings()
		settings.Frame2.ShowJumps = true

		traces := Project(src, settings, nil, 0)

		require.Len(t, traces, 1)
		assert.Len(t, traces[0].Points, 7)
	})
}

func TestProject_DropsNonFinite(t *testing.T) {
	src := sourceMap{series.UTC: makeSeries(series.UTC, 1, math.NaN(), math.Inf(1), 2)}

	traces := Project(src, DefaultSettings(), nil, 0)

	require.Len(t, traces, 1)
	assert.Equal(t, []float64{1, 2}, traces[0].Ys())
}

func TestProject_FineBalanceHover(t *testing.T) {
	s := series.New(series.FineB)
	extras := &series.FineBalanceExtras{Integral: 3, MorionRaw: 100, MorionOffset: -4, Corr: 1}
	s.Append(series.Point{Time: 1, Value: 5, Line: 9, FineBalance: extras})

	traces := Project(sourceMap{series.FineB: s}, DefaultSettings(), nil, 0)

	require.Len(t, traces, 1)
	assert.Equal(t, ModeMarkers, traces[0].Mode)
	assert.Same(t, extras, traces[0].Points[0].FineBalance)
}

func TestProject_Downsamples(t *testing.T) {
	values := make([]float64, 1000)
	for i := range values {
		values[i] = math.Sin(float64(i) / 20)
	}
	src := sourceMap{series.ROS: makeSeries(series.ROS, values...)}

	traces := Project(src, DefaultSettings(), BucketDownsample, 100)

	require.Len(t, traces, 1)
	points := traces[0].Points
	assert.Len(t, points, 100)
	assert.Equal(t, 0.0, points[0].X)
	assert.Equal(t, 999.0, points[len(points)-1].X)
}

func TestProject_DownsampleKeepsGaps(t *testing.T) {
	values := make([]float64, 200)
	for i := range values {
		values[i] = float64(i % 7)
	}
	values[100] = 5000
	src := sourceMap{series.Frame2: makeSeries(series.Frame2, values...)}

	traces := Project(src, DefaultSettings(), BucketDownsample, 20)

	require.Len(t, traces, 1)
	gaps := 0
	for _, p := range traces[0].Points {
		if p.GapBefore {
			gaps++
		}
	}
	assert.Equal(t, 1, gaps)
}

func TestBucketDownsample(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	ys := []float64{0, 0, 0, 10, 0, 0, 0, 0, -10, 0}

	t.Run("short input kept", func(t *testing.T) {
		assert.Equal(t, []int{0, 1, 2}, BucketDownsample(xs[:3], ys[:3], 5))
	})

	t.Run("non-positive max keeps all", func(t *testing.T) {
		assert.Len(t, BucketDownsample(xs, ys, 0), 10)
	})

	t.Run("keeps peaks and ends", func(t *testing.T) {
		idx := BucketDownsample(xs, ys, 4)

		require.Len(t, idx, 4)
		assert.Equal(t, 0, idx[0])
		assert.Equal(t, 9, idx[3])
		assert.Contains(t, idx, 3)
		assert.Contains(t, idx, 8)
	})

	t.Run("ascending unique", func(t *testing.T) {
		idx := BucketDownsample(xs, ys, 6)
		for i := 1; i < len(idx); i++ {
			assert.Greater(t, idx[i], idx[i-1])
		}
	})

	t.Run("tiny max", func(t *testing.T) {
		assert.Equal(t, []int{0, 9}, BucketDownsample(xs, ys, 2))
		assert.Equal(t, []int{0}, BucketDownsample(xs, ys, 1))
	})
}

func TestRenderer_Render(t *testing.T) {
	src := sourceMap{
		series.ROS:    makeSeries(series.ROS, 1, 3, 2, 5),
		series.FineB:  makeSeries(series.FineB, 4, 4, 4),
		series.Frame2: makeSeries(series.Frame2, 0.5),
	}
	traces := Project(src, DefaultSettings(), BucketDownsample, 500)
	require.Len(t, traces, 3)

	r := NewRenderer(640, 0)
	assert.Equal(t, DefaultHeight, r.Height)

	var buf bytes.Buffer
	require.NoError(t, r.Render(traces, &buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, DefaultHeight, img.Bounds().Dy())
}

func TestRenderer_ClockAxisAndFlatData(t *testing.T) {
	s := series.New(series.UTC)
	s.Append(series.Point{Time: 1_700_000_000, Value: 2, Line: 1})
	s.Append(series.Point{Time: 1_700_000_060, Value: 2, Line: 3})

	r := NewRenderer(320, 240)
	r.ClockAxis = true

	var buf bytes.Buffer
	require.NoError(t, r.Render(Project(sourceMap{series.UTC: s}, DefaultSettings(), nil, 0), &buf))

	_, err := png.Decode(&buf)
	require.NoError(t, err)
}

func TestRenderer_NoData(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer(0, 0).Render(nil, &buf)
	assert.ErrorIs(t, err, ErrNoData)
	assert.Zero(t, buf.Len())
}

func TestParseColor(t *testing.T) {
	assert.Equal(t, uint8(255), parseColor("#ff0000").R)
	assert.Equal(t, uint8(0), parseColor("#ff0000").G)
	assert.Equal(t, uint8(255), parseColor("#0f0").G)
	assert.Equal(t, parseColor("bogus"), parseColor("#12"))
}
