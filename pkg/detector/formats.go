package detector

import (
	"github.com/ccollicutt/roslog/pkg/decoder"
	"github.com/ccollicutt/roslog/pkg/series"
)

// RecordFormat describes one ROS record kind the detector looks for.
type RecordFormat struct {
	Name     string           // Human-readable name
	Kind     decoder.Kind     // Classifier bit
	Channels []series.Channel // Channels the record feeds
	Examples []string         // Example lines
}

// DefaultFormats returns the record kinds known to the decoders, in the
// order reports list them on equal counts.
func DefaultFormats() []*RecordFormat {
	return []*RecordFormat{
		{
			Name:     "Direction/Offset",
			Kind:     decoder.KindDirection,
			Channels: []series.Channel{series.ROS, series.Dir36},
			Examples: []string{"Time=100;Dir = 001;x;Balance = 10"},
		},
		{
			Name:     "Fine balance",
			Kind:     decoder.KindFineBalance,
			Channels: []series.Channel{series.FineB},
			Examples: []string{"FineB = 015; Integral = 3; Morion = 1000; Corr = 1"},
		},
		{
			Name:     "Frame2 environment",
			Kind:     decoder.KindFrame2,
			Channels: []series.Channel{series.Frame2},
			Examples: []string{"Frame2  :1:100.5, 10000000000:45,2:101325:22,5"},
		},
		{
			Name:     "UTC time sync",
			Kind:     decoder.KindUTCMarker,
			Channels: []series.Channel{series.UTC},
			Examples: []string{"10:00:00 " + decoder.UTCMarker},
		},
	}
}
