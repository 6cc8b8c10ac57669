package csvparse

import (
	"strconv"
	"strings"
)

// ParseDecimal parses a numeric field, substituting the locale decimal comma
// before parsing. ok=false means the field is absent or not a number; callers
// decide whether absent maps to nil or to a counter default.
func ParseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseInteger parses a whole-number field, tolerating a decimal comma tail
// (some exports render counters as "1234,0").
func ParseInteger(s string) (int64, bool) {
	v, ok := ParseDecimal(s)
	if !ok {
		return 0, false
	}
	return int64(v), true
}

// decimalPtr returns a pointer for an optional measurement, nil when absent.
func decimalPtr(s string) *float64 {
	if v, ok := ParseDecimal(s); ok {
		return &v
	}
	return nil
}

// integerPtr returns a pointer for an optional whole-number field.
func integerPtr(s string) *int64 {
	if v, ok := ParseInteger(s); ok {
		return &v
	}
	return nil
}
