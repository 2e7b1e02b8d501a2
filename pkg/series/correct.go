package series

import (
	"fmt"
	"strconv"
)

// Correct returns a copy of s in which no point's time is lower than the
// time of the point before it. A point that regresses is moved to one second
// after the last valid time and reported with one diagnostic. Line numbers
// are kept. The input series is not modified.
//
// Correcting an already corrected series yields an identical series and no
// diagnostics.
func Correct(s *Series) (*Series, []Diagnostic) {
	out := s.Clone()
	if out.Len() == 0 {
		return out, nil
	}

	var diags []Diagnostic
	lastValid := out.Points[0].Time

	for i := 1; i < len(out.Points); i++ {
		p := &out.Points[i]
		if p.Time < lastValid {
			diags = append(diags, Diagnostic{
				Line:    p.Line,
				Channel: out.Channel,
				Message: fmt.Sprintf("time decreased in %s data", out.Channel),
				Details: fmt.Sprintf("time %s < previous %s, corrected to %s",
					formatTime(p.Time), formatTime(lastValid), formatTime(lastValid+1)),
			})
			p.Time = lastValid + 1
		}
		lastValid = p.Time
	}

	return out, diags
}

func formatTime(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
