package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the calendar date format used for appointment dates.
	DateLayout = "2006-01-02"

	minutesPerDay = 24 * 60
)

// ParseDate parses a YYYY-MM-DD calendar date in local wall-clock time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// ParseClock converts an HH:MM wall-clock string to minutes after midnight.
// "24:00" is accepted as the end of the day.
func ParseClock(s string) (int, error) {
	h, m, ok := strings.Cut(s, ":")
	if !ok || len(h) != 2 || len(m) != 2 || !digits(h) || !digits(m) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	mins, err := strconv.Atoi(m)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	if hours < 0 || mins < 0 || mins > 59 || hours > 24 || (hours == 24 && mins != 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return hours*60 + mins, nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatClock renders minutes after midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// IsSlotTime reports whether s is a bookable start time (00:00 to 23:59).
func IsSlotTime(s string) bool {
	m, err := ParseClock(s)
	return err == nil && m < minutesPerDay
}
