package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/ports"
)

func TestRepositories_AtomicCommitsBothWrites(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(newSQLiteStore(t, t.TempDir()), fixedClock(testNow))
	s, err := repos.Schedules.Create(ctx, sampleSchedule("A", "2024-03-03"))
	require.NoError(t, err)

	err = repos.Atomic(ctx, func(log ports.StudyLog) error {
		if _, err := log.Records.Create(ctx, sampleRecord(s.ID, testNow, 30)); err != nil {
			return err
		}
		_, err := log.Schedules.MarkCompleted(ctx, s.ID)
		return err
	})
	require.NoError(t, err)

	stored, err := repos.Schedules.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsCompleted)
	records, err := repos.Records.FindByScheduleID(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestRepositories_AtomicRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	repos, _ := newMemoryRepositories(t)

	err := repos.Atomic(ctx, func(log ports.StudyLog) error {
		if _, err := log.Records.Create(ctx, sampleRecord("missing", testNow, 30)); err != nil {
			return err
		}
		_, err := log.Schedules.MarkCompleted(ctx, "missing")
		return err
	})

	assert.ErrorIs(t, err, domain.ErrScheduleNotFound)
	records, err := repos.Records.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRepositories_AtomicPropagatesCallerError(t *testing.T) {
	ctx := context.Background()
	repos, _ := newMemoryRepositories(t)
	boom := errors.New("boom")

	err := repos.Atomic(ctx, func(log ports.StudyLog) error {
		_, _ = log.Schedules.Create(ctx, sampleSchedule("A", "2024-03-03"))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	all, _ := repos.Schedules.FindAll(ctx)
	assert.Empty(t, all)
}
