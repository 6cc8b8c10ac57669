package csvparse

import (
	"testing"
	"time"
)

func TestParseDateTime_Valid(t *testing.T) {
	got, ok := ParseDateTime("05/03/24 14:30")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseDateTime_FourDigitYear(t *testing.T) {
	got, ok := ParseDateTime("31/12/2023 23:59")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Year() != 2023 || got.Month() != time.December || got.Day() != 31 {
		t.Fatalf("got %v", got)
	}
}

func TestParseDateTime_Rejections(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"calendar overflow", "31/02/24 10:00"}, // Feb 31 would normalize to March
		{"garbage", "bad"},
		{"no slash", "2024-03-05 14:30"},
		{"no time part", "05/03/24"},
		{"non-numeric day", "xx/03/24 14:30"},
		{"non-numeric minute", "05/03/24 14:xx"},
		{"month out of range", "05/13/24 14:30"},
		{"hour out of range", "05/03/24 25:00"},
		{"negative minute", "05/03/24 14:-5"}, // time.Date would fold this to 13:55
		{"negative hour", "05/03/24 -1:30"},
		{"zero day", "00/03/24 14:30"},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := ParseDateTime(tc.input); ok {
				t.Fatalf("ParseDateTime(%q) accepted, want rejection", tc.input)
			}
		})
	}
}

func TestParseDecimal_LocaleComma(t *testing.T) {
	v, ok := ParseDecimal("12,5")
	if !ok || v != 12.5 {
		t.Fatalf("got %v ok=%v, want 12.5", v, ok)
	}
	if _, ok := ParseDecimal(""); ok {
		t.Fatalf("empty string should be absent, not zero")
	}
	if _, ok := ParseDecimal("n/a"); ok {
		t.Fatalf("non-numeric should be absent")
	}
}
