package services

import (
	"testing"
	"time"

	"github.com/renato0307/studycal/internal/adapters/storage"
	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/ports"
)

// testNow is Sunday 2024-03-03 08:00 UTC
var testNow = time.Date(2024, 3, 3, 8, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) ports.Clock {
	return ports.ClockFunc(func() time.Time { return t })
}

func newRepositories(t *testing.T) *storage.Repositories {
	t.Helper()
	return storage.NewRepositories(storage.NewMemoryKVStore(), fixedClock(testNow))
}

func at(date string, hour, minute int) time.Time {
	d, err := domain.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC)
}

func timeEqual(want time.Time) func(time.Time) bool {
	return func(got time.Time) bool { return got.Equal(want) }
}
