package parser

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Device fields often carry trailing units or separators ("12.5 mm", "17,3"),
// so numbers are read as the longest numeric prefix of the field.
var (
	leadingFloatPattern = regexp.MustCompile(`^([+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)
	leadingIntPattern   = regexp.MustCompile(`^([+-]?\d+)`)
)

// LeadingFloat parses the numeric prefix of s after leading whitespace.
// Returns false if s does not start with a number.
func LeadingFloat(s string) (float64, bool) {
	matches := leadingFloatPattern.FindStringSubmatch(strings.TrimLeft(s, " \t\r\n"))
	if len(matches) < 2 {
		return 0, false
	}
	v, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// LeadingInt parses the integer prefix of s after leading whitespace.
// Leading zeros are accepted ("007" is 7). Digit runs beyond int64
// saturate to math.MaxInt64 or math.MinInt64.
func LeadingInt(s string) (int64, bool) {
	matches := leadingIntPattern.FindStringSubmatch(strings.TrimLeft(s, " \t\r\n"))
	if len(matches) < 2 {
		return 0, false
	}
	// ParseInt returns the clamped value alongside ErrRange
	v, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}

// FieldValue returns the text after the first '=' of fields[i].
// Returns false if the field is missing or has no '='.
func FieldValue(fields []string, i int) (string, bool) {
	if i < 0 || i >= len(fields) {
		return "", false
	}
	parts := strings.Split(fields[i], "=")
	if len(parts) < 2 {
		return "", false
	}
	return parts[1], true
}

// Token returns the i-th element of strings.Split(s, sep).
func Token(s, sep string, i int) (string, bool) {
	parts := strings.Split(s, sep)
	if i < 0 || i >= len(parts) {
		return "", false
	}
	return parts[i], true
}

// NormalizeDecimal converts a locale decimal comma into a decimal point.
func NormalizeDecimal(s string) string {
	return strings.ReplaceAll(s, ",", ".")
}
