package series

import (
	"fmt"
	"math"
	"time"
)

// Summary holds the time bounds of a parsed session in device seconds.
type Summary struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Duration  float64 `json:"duration"`
}

// Summarize pools the times of the given series and returns their bounds.
// With no points at all every field is 0.
func Summarize(primary ...*Series) Summary {
	var sum Summary
	seen := false

	for _, s := range primary {
		for _, p := range s.pointsOrNil() {
			if !seen {
				sum.StartTime, sum.EndTime = p.Time, p.Time
				seen = true
				continue
			}
			sum.StartTime = math.Min(sum.StartTime, p.Time)
			sum.EndTime = math.Max(sum.EndTime, p.Time)
		}
	}

	if !seen {
		return Summary{}
	}
	sum.Duration = sum.EndTime - sum.StartTime
	return sum
}

func (s *Series) pointsOrNil() []Point {
	if s == nil {
		return nil
	}
	return s.Points
}

// FormatClock renders seconds since the UNIX epoch as HH:MM:SS in UTC.
// Zero and non-finite values render as "00:00:00".
func FormatClock(seconds float64) string {
	if seconds == 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "00:00:00"
	}
	sec, frac := math.Modf(seconds)
	t := time.Unix(int64(sec), int64(frac*1e9)).UTC()
	return t.Format("15:04:05")
}

// FormatDuration renders a duration in seconds as HH:MM:SS. Hours are not
// wrapped at 24.
func FormatDuration(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "00:00:00"
	}
	total := int64(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
