package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/studycal/internal/adapters/notify"
	"github.com/renato0307/studycal/internal/adapters/storage"
	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/ports"
	"github.com/renato0307/studycal/internal/services"
)

type reminderFixture struct {
	backend     *notify.TimerBackend
	coordinator *Coordinator
	reminders   *services.NotificationService
	repos       *storage.Repositories
}

func newReminderFixture(t *testing.T) reminderFixture {
	t.Helper()
	clock := ports.ClockFunc(func() time.Time { return testNow })
	backend := notify.NewTimerBackend(notify.LogNotifier{}, clock)
	t.Cleanup(func() { _ = backend.CancelAll(context.Background()) })

	repos := storage.NewRepositories(storage.NewMemoryKVStore(), clock)
	reminders := services.NewNotificationService(repos.Schedules, backend, clock)
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
	return reminderFixture{backend: backend, coordinator: c, reminders: reminders, repos: repos}
}

// dailyWithReminders starts today at 10:00, so today plus the next seven
// days all get a reminder
func dailyWithReminders() domain.Schedule {
	return domain.Schedule{
		Title:                 "Pointers",
		Date:                  "2024-03-03",
		StartTime:             "10:00",
		Category:              domain.CategoryPython,
		IsNotificationEnabled: true,
		NotificationTime:      15,
		RepeatPattern:         &domain.RepeatPattern{Type: domain.RepeatDaily, Interval: 1},
	}
}

func TestCoordinator_RepeatingScheduleReminders(t *testing.T) {
	ctx := context.Background()
	f := newReminderFixture(t)

	created, err := f.coordinator.CreateSchedule(ctx, dailyWithReminders())
	require.NoError(t, err)
	assert.Equal(t, 8, f.reminders.Count())
	assert.Equal(t, 8, f.backend.Pending())

	require.NoError(t, f.reminders.SetupAllNotifications(ctx))
	assert.Equal(t, 8, f.backend.Pending())

	title := "Pointers and escape analysis"
	_, err = f.coordinator.UpdateSchedule(ctx, created.ID, domain.ScheduleUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, 8, f.reminders.Count())
	assert.Equal(t, 8, f.backend.Pending())

	require.NoError(t, f.coordinator.DeleteSchedule(ctx, created.ID))
	assert.Equal(t, 0, f.reminders.Count())
	assert.Equal(t, 0, f.backend.Pending())
}

func TestCoordinator_DisablingRemindersCancelsSeries(t *testing.T) {
	ctx := context.Background()
	f := newReminderFixture(t)

	created, err := f.coordinator.CreateSchedule(ctx, dailyWithReminders())
	require.NoError(t, err)
	require.Equal(t, 8, f.backend.Pending())

	off := false
	_, err = f.coordinator.UpdateSchedule(ctx, created.ID, domain.ScheduleUpdate{IsNotificationEnabled: &off})
	require.NoError(t, err)

	assert.Equal(t, 0, f.reminders.Count())
	assert.Equal(t, 0, f.backend.Pending())
}

func TestCoordinator_RecordOnOccurrenceKeepsSeriesReminders(t *testing.T) {
	ctx := context.Background()
	f := newReminderFixture(t)

	created, err := f.coordinator.CreateSchedule(ctx, dailyWithReminders())
	require.NoError(t, err)
	require.Equal(t, 8, f.backend.Pending())

	occurrenceID := domain.OccurrenceID(created.ID, "2024-03-04")
	_, err = f.coordinator.CreateRecord(ctx, services.RecordStudyParams{ScheduleID: occurrenceID, Duration: 30})
	require.NoError(t, err)

	require.NoError(t, f.reminders.SetupAllNotifications(ctx))
	assert.Equal(t, 8, f.backend.Pending())
	_, ok := f.reminders.Handle(domain.OccurrenceID(created.ID, "2024-03-05"))
	assert.True(t, ok)

	stored, err := f.repos.Schedules.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsCompleted)
}

func TestCoordinator_CompletingSeriesCancelsReminders(t *testing.T) {
	ctx := context.Background()
	f := newReminderFixture(t)

	created, err := f.coordinator.CreateSchedule(ctx, dailyWithReminders())
	require.NoError(t, err)
	require.Equal(t, 8, f.backend.Pending())

	_, err = f.coordinator.CompleteSchedule(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, f.backend.Pending())
}
