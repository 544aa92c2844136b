package util

import (
	"math"
	"strconv"
)

// Round3 rounds to three decimal places, the precision reported by the
// prediction endpoints.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// ParseIntDefault parses s as an int, returning def when empty or invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// ParseFloatDefault parses s as a float64, returning def when empty or invalid.
func ParseFloatDefault(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}
