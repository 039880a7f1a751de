package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/studycal/internal/adapters/storage"
	"github.com/renato0307/studycal/internal/application/mocks"
	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/ports"
	"github.com/renato0307/studycal/internal/services"
)

// testNow is Sunday 2024-03-03 08:00 UTC
var testNow = time.Date(2024, 3, 3, 8, 0, 0, 0, time.UTC)

func newTestCoordinator(t *testing.T, reminders ReminderSync) (*Coordinator, *storage.Repositories) {
	t.Helper()
	clock := ports.ClockFunc(func() time.Time { return testNow })
	repos := storage.NewRepositories(storage.NewMemoryKVStore(), clock)

	c := NewCoordinator(Dependencies{
		Clock:      clock,
		Prompts:    repos.Prompts,
		Records:    repos.Records,
		Reminders:  reminders,
		Schedules:  repos.Schedules,
		Settings:   repos.Settings,
		Statistics: services.NewStatisticsService(repos.Records, repos.Prompts, repos.Schedules, repos.Settings, repos.Statistics, clock),
		Study:      services.NewStudyService(repos.Schedules, repos.Records, repos, clock),
	})
	return c, repos
}

func TestCoordinator_Load(t *testing.T) {
	ctx := context.Background()
	c, repos := newTestCoordinator(t, nil)

	_, err := repos.Schedules.Create(ctx, domain.Schedule{Title: "Goroutines", Date: "2024-03-04", Category: domain.CategoryPython,
		RepeatPattern: &domain.RepeatPattern{Type: domain.RepeatWeekly, Interval: 1}})
	require.NoError(t, err)
	_, err = repos.Schedules.Create(ctx, domain.Schedule{Title: "Too old", Date: "2023-12-01", Category: domain.CategoryAILiteracy})
	require.NoError(t, err)
	_, err = repos.Records.Create(ctx, domain.Record{CompletedAt: testNow.Add(-time.Hour), Duration: 40})
	require.NoError(t, err)
	_, err = repos.Prompts.Create(ctx, domain.Prompt{Content: "Explain channels", Label: domain.LabelClaude})
	require.NoError(t, err)
	theme := domain.ThemeDark
	_, err = repos.Settings.Update(ctx, domain.SettingsUpdate{Theme: &theme})
	require.NoError(t, err)

	require.NoError(t, c.Load(ctx))

	state := c.Snapshot()
	assert.False(t, state.Loading)
	assert.NoError(t, state.LastError)
	// weekly from 03-04 until 04-02 inside the +30 day window
	assert.Len(t, state.Schedules, 5)
	assert.Len(t, state.Records, 1)
	assert.Len(t, state.Prompts, 1)
	assert.Equal(t, domain.ThemeDark, state.Settings.Theme)
	assert.Equal(t, 40, state.Statistics.TotalStudyTime)
	assert.Equal(t, 1, state.Statistics.PromptsByLabel[domain.LabelClaude])
}

func TestCoordinator_SnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCoordinator(t, nil)
	_, err := c.CreatePrompt(ctx, domain.Prompt{Content: "Explain maps", Label: domain.LabelOther})
	require.NoError(t, err)

	snap := c.Snapshot()
	snap.Prompts[0].Content = "changed"

	assert.Equal(t, "Explain maps", c.Snapshot().Prompts[0].Content)

	snap.Statistics.PromptsByLabel[domain.LabelOther] = 99
	snap.Statistics.StudyTimeByCategory[domain.CategoryPython] = 99
	state := c.Snapshot()
	assert.Equal(t, 1, state.Statistics.PromptsByLabel[domain.LabelOther])
	assert.Equal(t, 0, state.Statistics.StudyTimeByCategory[domain.CategoryPython])
}

func TestCoordinator_SnapshotDuringMutations(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCoordinator(t, nil)
	require.NoError(t, c.Load(ctx))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 20 {
			_, _ = c.CreatePrompt(ctx, domain.Prompt{Content: "Explain iota", Label: domain.LabelGemini})
		}
	}()

	for range 20 {
		snap := c.Snapshot()
		total := 0
		for _, n := range snap.Statistics.PromptsByLabel {
			total += n
		}
		assert.Equal(t, snap.Statistics.TotalPrompts, total)
	}
	<-done
	assert.Equal(t, 20, c.Snapshot().Statistics.PromptsByLabel[domain.LabelGemini])
}

func TestCoordinator_CreateScheduleSyncsReminder(t *testing.T) {
	ctx := context.Background()
	reminders := mocks.NewMockReminderSync(t)
	c, _ := newTestCoordinator(t, reminders)

	reminders.EXPECT().SyncSeries(mock.Anything, mock.AnythingOfType("string")).Return(nil).Once()

	created, err := c.CreateSchedule(ctx, domain.Schedule{Title: "Interfaces", Date: "2024-03-05", StartTime: "10:00", Category: domain.CategoryPython})
	require.NoError(t, err)

	state := c.Snapshot()
	require.Len(t, state.Schedules, 1)
	assert.Equal(t, created.ID, state.Schedules[0].ID)
	reminders.AssertCalled(t, "SyncSeries", mock.Anything, created.ID)
}

func TestCoordinator_InvalidScheduleKeepsCache(t *testing.T) {
	ctx := context.Background()
	reminders := mocks.NewMockReminderSync(t)
	c, _ := newTestCoordinator(t, reminders)

	_, err := c.CreateSchedule(ctx, domain.Schedule{Title: "", Date: "2024-03-05", Category: domain.CategoryPython})

	require.ErrorIs(t, err, domain.ErrValidation)
	state := c.Snapshot()
	assert.Empty(t, state.Schedules)
	assert.ErrorIs(t, state.LastError, domain.ErrValidation)

	c.ClearError()
	assert.NoError(t, c.Snapshot().LastError)
}

func TestCoordinator_DeleteScheduleCancelsReminder(t *testing.T) {
	ctx := context.Background()
	reminders := mocks.NewMockReminderSync(t)
	c, _ := newTestCoordinator(t, reminders)

	reminders.EXPECT().SyncSeries(mock.Anything, mock.Anything).Return(nil).Once()
	created, err := c.CreateSchedule(ctx, domain.Schedule{Title: "Slices", Date: "2024-03-05", Category: domain.CategoryAILiteracy,
		RepeatPattern: &domain.RepeatPattern{Type: domain.RepeatDaily, Interval: 1, EndDate: "2024-03-07"}})
	require.NoError(t, err)
	require.Len(t, c.Snapshot().Schedules, 3)

	reminders.EXPECT().CancelSeries(mock.Anything, created.ID).Return(nil).Once()
	require.NoError(t, c.DeleteSchedule(ctx, created.ID))

	assert.Empty(t, c.Snapshot().Schedules)
}

func TestCoordinator_CreateRecordCompletesSchedule(t *testing.T) {
	ctx := context.Background()
	reminders := mocks.NewMockReminderSync(t)
	c, repos := newTestCoordinator(t, reminders)

	reminders.EXPECT().SyncSeries(mock.Anything, mock.Anything).Return(nil).Once()
	schedule, err := c.CreateSchedule(ctx, domain.Schedule{Title: "Context", Date: "2024-03-03", StartTime: "09:00", Category: domain.CategoryPython})
	require.NoError(t, err)

	reminders.EXPECT().SyncSeries(mock.Anything, schedule.ID).Return(nil).Once()
	record, err := c.CreateRecord(ctx, services.RecordStudyParams{ScheduleID: schedule.ID, Duration: 50})
	require.NoError(t, err)

	state := c.Snapshot()
	require.NotEmpty(t, state.Records)
	assert.Equal(t, record.ID, state.Records[0].ID)
	require.Len(t, state.Schedules, 1)
	assert.True(t, state.Schedules[0].IsCompleted)
	assert.Equal(t, 50, state.Statistics.TotalStudyTime)
	assert.Equal(t, 50, state.Statistics.StudyTimeByCategory[domain.CategoryPython])

	cached, err := repos.Statistics.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, cached.TotalStudyTime)
}

func TestCoordinator_RefreshSyncsExternalChanges(t *testing.T) {
	ctx := context.Background()
	reminders := mocks.NewMockReminderSync(t)
	c, repos := newTestCoordinator(t, reminders)

	external, err := repos.Schedules.Create(ctx, domain.Schedule{Title: "Generics", Date: "2024-03-04", StartTime: "10:00",
		Category: domain.CategoryPython, IsNotificationEnabled: true,
		RepeatPattern: &domain.RepeatPattern{Type: domain.RepeatDaily, Interval: 1, EndDate: "2024-03-06"}})
	require.NoError(t, err)

	reminders.EXPECT().SyncSeries(mock.Anything, external.ID).Return(nil).Once()
	require.NoError(t, c.Refresh(ctx))
	assert.Len(t, c.Snapshot().Schedules, 3)

	// nothing changed, nothing synced
	require.NoError(t, c.Refresh(ctx))

	title := "Generics in depth"
	_, err = repos.Schedules.Update(ctx, external.ID, domain.ScheduleUpdate{Title: &title})
	require.NoError(t, err)
	reminders.EXPECT().SyncSeries(mock.Anything, external.ID).Return(nil).Once()
	require.NoError(t, c.Refresh(ctx))

	require.NoError(t, repos.Schedules.Delete(ctx, external.ID))
	reminders.EXPECT().CancelSeries(mock.Anything, external.ID).Return(nil).Once()
	require.NoError(t, c.Refresh(ctx))
	assert.Empty(t, c.Snapshot().Schedules)
}

func TestCoordinator_CreateRecordUnknownSchedule(t *testing.T) {
	ctx := context.Background()
	c, repos := newTestCoordinator(t, nil)

	_, err := c.CreateRecord(ctx, services.RecordStudyParams{ScheduleID: "missing", Duration: 30})

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, c.Snapshot().Records)
	all, err := repos.Records.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCoordinator_DeleteRecord(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCoordinator(t, nil)

	record, err := c.CreateRecord(ctx, services.RecordStudyParams{Duration: 25})
	require.NoError(t, err)

	require.NoError(t, c.DeleteRecord(ctx, record.ID))
	state := c.Snapshot()
	assert.Empty(t, state.Records)
	assert.Equal(t, 0, state.Statistics.TotalStudyTime)

	err = c.DeleteRecord(ctx, record.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, c.Snapshot().LastError, domain.ErrNotFound)
}

func TestCoordinator_ResetStatisticsKeepsPromptCounts(t *testing.T) {
	ctx := context.Background()
	c, repos := newTestCoordinator(t, nil)

	_, err := c.CreatePrompt(ctx, domain.Prompt{Content: "Explain defer", Label: domain.LabelGemini})
	require.NoError(t, err)
	_, err = c.CreateRecord(ctx, services.RecordStudyParams{Duration: 25})
	require.NoError(t, err)

	require.NoError(t, c.ResetStatistics(ctx))

	state := c.Snapshot()
	assert.Empty(t, state.Records)
	assert.Equal(t, 0, state.Statistics.TotalStudyTime)
	assert.Equal(t, 1, state.Statistics.TotalPrompts)
	assert.Equal(t, 1, state.Statistics.PromptsByLabel[domain.LabelGemini])

	all, err := repos.Records.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	_, err = repos.Statistics.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrStatisticsNotCached)
}

func TestCoordinator_PromptLifecycle(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCoordinator(t, nil)

	created, err := c.CreatePrompt(ctx, domain.Prompt{Content: "Explain select", Label: domain.LabelChatGPT})
	require.NoError(t, err)

	label := domain.LabelDeepSeek
	_, err = c.UpdatePrompt(ctx, created.ID, domain.PromptUpdate{Label: &label})
	require.NoError(t, err)

	state := c.Snapshot()
	assert.Equal(t, domain.LabelDeepSeek, state.Prompts[0].Label)
	assert.Equal(t, 0, state.Statistics.PromptsByLabel[domain.LabelChatGPT])
	assert.Equal(t, 1, state.Statistics.PromptsByLabel[domain.LabelDeepSeek])

	require.NoError(t, c.DeletePrompt(ctx, created.ID))
	state = c.Snapshot()
	assert.Empty(t, state.Prompts)
	assert.Equal(t, 0, state.Statistics.TotalPrompts)
}

func TestCoordinator_Settings(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCoordinator(t, nil)

	duration := 45
	updated, err := c.UpdateSettings(ctx, domain.SettingsUpdate{DefaultStudyDuration: &duration})
	require.NoError(t, err)
	assert.Equal(t, 45, updated.DefaultStudyDuration)
	assert.Equal(t, 45, c.Snapshot().Settings.DefaultStudyDuration)

	bad := domain.Theme("sepia")
	_, err = c.UpdateSettings(ctx, domain.SettingsUpdate{Theme: &bad})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, domain.ThemeAuto, c.Snapshot().Settings.Theme)

	reset, err := c.ResetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), reset)
	assert.Equal(t, domain.DefaultSettings(), c.Snapshot().Settings)
}
