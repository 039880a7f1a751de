package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/studycal/internal/domain"
)

func TestSettingsRepository_DefaultsWhenAbsent(t *testing.T) {
	repos, _ := newMemoryRepositories(t)

	got, err := repos.Settings.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), got)
}

func TestSettingsRepository_PartialDataMergedOverDefaults(t *testing.T) {
	ctx := context.Background()
	repos, kv := newMemoryRepositories(t)
	require.NoError(t, kv.Set(ctx, KeySettings, `{"theme":"dark"}`))

	got, err := repos.Settings.Get(ctx)

	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, got.Theme)
	assert.Equal(t, domain.DefaultNotificationTime, got.DefaultNotificationTime)
	assert.Equal(t, domain.DefaultStudyDuration, got.DefaultStudyDuration)
}

func TestSettingsRepository_InvalidDataFallsBack(t *testing.T) {
	ctx := context.Background()
	repos, kv := newMemoryRepositories(t)
	require.NoError(t, kv.Set(ctx, KeySettings, `{"theme":"sepia"}`))

	got, err := repos.Settings.Get(ctx)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), got)
}

func TestSettingsRepository_UpdateAndReset(t *testing.T) {
	ctx := context.Background()
	repos, kv := newMemoryRepositories(t)

	updated, err := repos.Settings.Update(ctx, domain.SettingsUpdate{DefaultStudyDuration: ptr(45)})
	require.NoError(t, err)
	assert.Equal(t, 45, updated.DefaultStudyDuration)
	assert.Equal(t, domain.ThemeAuto, updated.Theme)

	got, err := repos.Settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	_, err = repos.Settings.Update(ctx, domain.SettingsUpdate{DefaultNotificationTime: ptr(domain.NotificationTime(7))})
	assert.ErrorIs(t, err, domain.ErrValidation)

	reset, err := repos.Settings.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), reset)
	_, found, err := kv.Get(ctx, KeySettings)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStatisticsCache_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	repos, _ := newMemoryRepositories(t)

	_, err := repos.Statistics.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrStatisticsNotCached)

	stats := domain.NewStatistics()
	stats.TotalStudyTime = 90
	stats.StudyTimeByCategory[domain.CategoryPython] = 90
	stats.StudyTimeByDate["2024-03-03"] = 90
	require.NoError(t, repos.Statistics.Save(ctx, stats))

	loaded, err := repos.Statistics.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, stats, *loaded)

	require.NoError(t, repos.Statistics.Clear(ctx))
	_, err = repos.Statistics.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrStatisticsNotCached)
}
