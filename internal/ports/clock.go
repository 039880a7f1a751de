package ports

import "time"

// Clock provides the current time
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface
type ClockFunc func() time.Time

// Now returns f()
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock returns the local wall clock
func SystemClock() Clock {
	return ClockFunc(time.Now)
}
