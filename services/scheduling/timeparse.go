package scheduling

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// timePattern tolerates "H:MM", "HH:MM" and "HHMM" spellings.
var timePattern = regexp.MustCompile(`(\d{1,2}):?(\d{2})`)

// NormalizeTime canonicalizes an accepted time spelling into 24-hour "HH:MM".
// Every slot key, stored time and comparison in the system passes through
// here exactly once at the boundary; internal logic never re-parses raw text.
func NormalizeTime(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidTimeFormat)
	}

	m := timePattern.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, raw)
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, raw)
	}
	minute, err := strconv.Atoi(m[2])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, raw)
	}
	if hour > 23 || minute > 59 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, raw)
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// minutesOfDay converts a canonical "HH:MM" string to minutes from midnight.
func minutesOfDay(normalized string) int {
	hour, _ := strconv.Atoi(normalized[:2])
	minute, _ := strconv.Atoi(normalized[3:])
	return hour*60 + minute
}

// clockString formats minutes from midnight back to "HH:MM".
func clockString(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// SlotInstant resolves a (date, canonical time) pair to a wall-clock instant
// in the server's local zone.
func SlotInstant(date, normalized string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+normalized, time.Local)
}

// FormatClock renders a canonical "HH:MM" as a 12-hour display time, e.g.
// "14:30" -> "2:30 PM". Used only for user-facing messages.
func FormatClock(normalized string) string {
	t, err := time.Parse("15:04", normalized)
	if err != nil {
		return normalized
	}
	return t.Format("3:04 PM")
}

// FormatDate renders an ISO date for user-facing messages, e.g.
// "2026-09-07" -> "Monday, 07 Sep 2026".
func FormatDate(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.Format("Monday, 02 Jan 2006")
}
