package utils

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	day, err := time.Parse(DateLayout, s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return day
}

func TestHours(t *testing.T) {
	cases := []struct {
		name    string
		date    string
		timeIn  string
		timeOut string
		want    float64
	}{
		{"full working day", "2025-01-15", "08:00", "17:00", 9.00},
		{"half hour", "2025-01-15", "08:00", "08:30", 0.5},
		{"quarter rounded", "2025-01-15", "09:00", "09:20", 0.33},
		{"zero duration", "2025-01-15", "08:00", "08:00", 0},
		{"negative clamped to zero", "2025-01-15", "17:00", "08:00", 0},
		{"with seconds", "2025-01-15", "08:00:00", "12:15:00", 4.25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Hours(tc.date, tc.timeIn, tc.timeOut)
			if err != nil {
				t.Fatalf("Hours(%q, %q, %q) error: %v", tc.date, tc.timeIn, tc.timeOut, err)
			}
			if got != tc.want {
				t.Fatalf("Hours(%q, %q, %q) = %v, want %v", tc.date, tc.timeIn, tc.timeOut, got, tc.want)
			}
		})
	}
}

func TestHoursRejectsBadInput(t *testing.T) {
	if _, err := Hours("not-a-date", "08:00", "17:00"); err == nil {
		t.Fatal("expected error for invalid date")
	}
	if _, err := Hours("2025-01-15", "", "17:00"); err == nil {
		t.Fatal("expected error for empty time_in")
	}
	if _, err := Hours("2025-01-15", "08:00", "25:99"); err == nil {
		t.Fatal("expected error for invalid time_out")
	}
}

func TestParseClockAppliesDate(t *testing.T) {
	day, _ := ParseClock("13:45", mustDate(t, "2025-06-01"))
	if day.Hour() != 13 || day.Minute() != 45 {
		t.Fatalf("unexpected clock: %v", day)
	}
	if day.Year() != 2025 || int(day.Month()) != 6 || day.Day() != 1 {
		t.Fatalf("date not preserved: %v", day)
	}
}
