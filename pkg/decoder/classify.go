package decoder

import (
	"strings"
)

// Kind is a bit set of the record kinds a line matches.
type Kind uint8

const (
	// KindDirection marks a Direction/Offset record ("Dir").
	KindDirection Kind = 1 << iota

	// KindFineBalance marks a Fine-Balance record ("FineB").
	KindFineBalance

	// KindFrame2 marks a Frame2 environmental record ("Frame2" plus a
	// double-space sentinel).
	KindFrame2

	// KindUTCMarker marks the first line of a two-line UTC time-sync record.
	KindUTCMarker
)

// KindNone is returned for lines that match no record kind.
const KindNone Kind = 0

// Markers used to recognise record kinds.
const (
	DirectionMarker   = "Dir"
	FineBalanceMarker = "FineB"
	Frame2Marker      = "Frame2"
	Frame2Sentinel    = "  "
	UTCMarker         = "Выдача времени прихода сообщения по UTC"
)

// Classify returns every record kind whose marker the line contains.
func Classify(text string) Kind {
	var k Kind
	if strings.Contains(text, DirectionMarker) {
		k |= KindDirection
	}
	if strings.Contains(text, FineBalanceMarker) {
		k |= KindFineBalance
	}
	if strings.Contains(text, Frame2Marker) && strings.Contains(text, Frame2Sentinel) {
		k |= KindFrame2
	}
	if strings.Contains(text, UTCMarker) {
		k |= KindUTCMarker
	}
	return k
}

// Has reports whether every kind in o is set in k.
func (k Kind) Has(o Kind) bool {
	return o != 0 && k&o == o
}

// String lists the set kinds, e.g. "direction|fine_balance".
func (k Kind) String() string {
	if k == KindNone {
		return "none"
	}
	var names []string
	for _, kn := range []struct {
		kind Kind
		name string
	}{
		{KindDirection, "direction"},
		{KindFineBalance, "fine_balance"},
		{KindFrame2, "frame2"},
		{KindUTCMarker, "utc"},
	} {
		if k.Has(kn.kind) {
			names = append(names, kn.name)
		}
	}
	return strings.Join(names, "|")
}
