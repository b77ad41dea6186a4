package utils

import (
	"testing"
	"time"
)

func TestParseDateRoundTrip(t *testing.T) {
	day, err := ParseDate("2026-06-15")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	if FormatDate(day) != "2026-06-15" {
		t.Fatalf("round trip mismatch: %s", FormatDate(day))
	}

	if _, err := ParseDate("15/06/2026"); err == nil {
		t.Fatalf("expected error for non ISO date")
	}
}

func TestDayStartTruncates(t *testing.T) {
	at := time.Date(2026, 6, 15, 17, 45, 12, 0, time.Local)
	got := DayStart(at)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
		t.Fatalf("DayStart did not truncate: %v", got)
	}
	if got.Day() != 15 || got.Month() != time.June {
		t.Fatalf("DayStart moved the calendar day: %v", got)
	}
}

func TestIsClockTime(t *testing.T) {
	valid := []string{"00:00", "9:30", "09:30", "23:59"}
	invalid := []string{"24:00", "9:60", "930", "nine", "", "10:5"}

	for _, v := range valid {
		if !IsClockTime(v) {
			t.Errorf("%q should be valid", v)
		}
	}
	for _, v := range invalid {
		if IsClockTime(v) {
			t.Errorf("%q should be invalid", v)
		}
	}
}
