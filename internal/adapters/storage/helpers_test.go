package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/ports"
)

var testNow = time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) ports.Clock {
	return ports.ClockFunc(func() time.Time { return t })
}

func newMemoryRepositories(t *testing.T) (*Repositories, *MemoryKVStore) {
	t.Helper()
	kv := NewMemoryKVStore()
	return NewRepositories(kv, fixedClock(testNow)), kv
}

func newSQLiteStore(t *testing.T, dir string) *GormKVStore {
	t.Helper()
	store, err := NewSQLiteKVStore(filepath.Join(dir, "studycal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func ptr[T any](v T) *T {
	return &v
}

func sampleSchedule(title, date string) domain.Schedule {
	return domain.Schedule{
		Title:    title,
		Date:     date,
		Category: domain.CategoryPython,
	}
}
