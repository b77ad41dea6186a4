package utils

import (
	"regexp"
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

var timeSlotPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// DayStart truncates t to midnight of its local calendar day. Availability
// entries compare by calendar day, never by timestamp.
func DayStart(t time.Time) time.Time {
	lt := t.In(time.Local)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.Local)
}

// IsClockTime reports whether s is a HH:MM 24-hour clock string.
func IsClockTime(s string) bool {
	return timeSlotPattern.MatchString(strings.TrimSpace(s))
}
