package geo

import (
	"math"
	"strconv"
	"strings"
)

// Round4 rounds a coordinate to 4 decimal places (~11 m at the equator).
// Coordinates are always rounded before comparison or storage.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// Round4Ptr rounds through a pointer, keeping nil as nil.
func Round4Ptr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := Round4(*v)
	return &r
}

// ParseFloat parses a lenient numeric string. Empty, garbage, NaN and Inf
// all normalize to nil rather than an error.
func ParseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ValidNumber reports whether v points at a real, finite number.
func ValidNumber(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}
