// Package parser provides line-by-line reading of device logs and the
// lenient numeric field extraction shared by the record decoders.
package parser

// Line is a single raw log line. It is never mutated after the source
// produces it.
type Line struct {
	// Text is the line content without the trailing newline.
	Text string

	// Num is the 1-based line number in the source.
	Num int

	// Source names where the line came from (file path or "<text>").
	Source string

	// Truncated is set when the line exceeded the size cap; Text is then
	// empty.
	Truncated bool
}
