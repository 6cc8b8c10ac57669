package csvparse

import (
	"strconv"
	"strings"
	"time"
)

// ParseDateTime parses the export timestamp format "DD/MM/YY HH:MM" (two- or
// four-digit year). It returns ok=false for anything malformed: no '/', no
// space-separated time part, non-numeric components, or a calendar-invalid
// date such as 31/02 (time.Date would silently normalize that to March, so
// the composed value is round-trip checked against the parsed components).
func ParseDateTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "/") {
		return time.Time{}, false
	}

	parts := strings.Fields(s)
	if len(parts) < 2 {
		return time.Time{}, false
	}

	dateParts := strings.Split(parts[0], "/")
	if len(dateParts) != 3 {
		return time.Time{}, false
	}
	timeParts := strings.Split(parts[1], ":")
	if len(timeParts) < 2 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(dateParts[0])
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(dateParts[1])
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(dateParts[2])
	if err != nil {
		return time.Time{}, false
	}
	hour, err := strconv.Atoi(timeParts[0])
	if err != nil {
		return time.Time{}, false
	}
	minute, err := strconv.Atoi(timeParts[1])
	if err != nil {
		return time.Time{}, false
	}

	if year < 100 {
		year += 2000
	}
	if day < 1 || month < 1 || month > 12 {
		return time.Time{}, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
