package domain

import (
	"fmt"
	"time"
)

const (
	// ClockLayout is the time-of-day format used by schedules
	ClockLayout = "15:04"
	// DateLayout is the calendar day format used across entities
	DateLayout = "2006-01-02"
)

// DefaultReminderClock is used as start time for schedules without one
const DefaultReminderClock = "09:00"

// ParseDate parses a calendar day as UTC midnight
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrValidation, s)
	}
	return t, nil
}

// FormatDate returns the calendar day of t in its own location
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays shifts a calendar day by n days
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}

// ParseClock converts "HH:mm" into minutes since midnight
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid time of day %q", ErrValidation, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ValidateRange checks both bounds are dates and start <= end
func ValidateRange(start, end string) error {
	if _, err := ParseDate(start); err != nil {
		return err
	}
	if _, err := ParseDate(end); err != nil {
		return err
	}
	if start > end {
		return ErrInvalidDateRange
	}
	return nil
}

// dayNumber returns the number of whole days since the unix epoch
func dayNumber(t time.Time) int64 {
	return t.Unix() / 86400
}
