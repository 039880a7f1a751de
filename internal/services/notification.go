package services

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/logging"
	"github.com/renato0307/studycal/internal/ports"
)

const (
	// reminderWindowDays is how far ahead reminders are registered
	reminderWindowDays = 7

	dailyReminderBody  = "Time for today's study session"
	dailyReminderTitle = "Daily study reminder"
	reminderTitle      = "Study reminder"
)

// NotificationService keeps the notification backend in line with the
// reminder-enabled schedules. The schedule id to backend handle table is
// process memory only and starts empty.
type NotificationService struct {
	backend    ports.NotificationBackend
	clock      ports.Clock
	daily      *dailyReminder
	handles    map[string]string
	mu         sync.Mutex
	reconciled bool
	schedules  ports.ScheduleExpander
}

type dailyReminder struct {
	handle string
	hour   int
	minute int
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(schedules ports.ScheduleExpander, backend ports.NotificationBackend, clock ports.Clock) *NotificationService {
	if clock == nil {
		clock = ports.SystemClock()
	}
	return &NotificationService{
		backend:   backend,
		clock:     clock,
		handles:   make(map[string]string),
		schedules: schedules,
	}
}

// SetupAllNotifications registers reminders for every incomplete,
// reminder-enabled occurrence from today through the next week. The first
// call in a process clears whatever the backend still holds from earlier
// runs; later calls cancel reminders whose schedule is gone.
func (s *NotificationService) SetupAllNotifications(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.reconciled {
		if err := s.resetLocked(ctx); err != nil {
			return err
		}
		if s.daily != nil {
			if err := s.registerDailyLocked(ctx, s.daily.hour, s.daily.minute); err != nil {
				return err
			}
		}
		s.reconciled = true
	}

	today := domain.FormatDate(s.clock.Now())
	end, err := domain.AddDays(today, reminderWindowDays)
	if err != nil {
		return err
	}
	schedules, err := s.schedules.ExpandRepeatingSchedules(ctx, today, end)
	if err != nil {
		return fmt.Errorf("failed to load schedules: %w", err)
	}

	wanted := make(map[string]bool, len(schedules))
	var errs []error
	for _, schedule := range schedules {
		if !schedule.IsNotificationEnabled || schedule.IsCompleted {
			continue
		}
		wanted[schedule.ID] = true
		if err := s.scheduleLocked(ctx, schedule); err != nil {
			errs = append(errs, err)
		}
	}

	for id := range maps.Clone(s.handles) {
		if !wanted[id] {
			if err := s.cancelLocked(ctx, id); err != nil {
				errs = append(errs, err)
			}
		}
	}

	logging.Logger.Info("Reminders synchronized", "window_start", today, "window_end", end,
		"scheduled", len(s.handles), "failures", len(errs))
	return errors.Join(errs...)
}

// ScheduleNotification replaces the reminder of schedule. Nothing is
// registered when reminders are off, the schedule is completed or the
// reminder time has already passed.
func (s *NotificationService) ScheduleNotification(ctx context.Context, schedule domain.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduleLocked(ctx, schedule)
}

// CancelNotification removes the reminder of scheduleID. Unknown ids are ignored.
func (s *NotificationService) CancelNotification(ctx context.Context, scheduleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelLocked(ctx, scheduleID)
}

// SyncSeries replaces every reminder of the schedule with baseID, repeating
// occurrences included, with reminders for its stored occurrences in the
// reminder window. A schedule that no longer exists ends up with none.
func (s *NotificationService) SyncSeries(ctx context.Context, baseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cancelSeriesLocked(ctx, baseID); err != nil {
		return err
	}

	today := domain.FormatDate(s.clock.Now())
	end, err := domain.AddDays(today, reminderWindowDays)
	if err != nil {
		return err
	}
	schedules, err := s.schedules.ExpandRepeatingSchedules(ctx, today, end)
	if err != nil {
		return fmt.Errorf("failed to load schedules: %w", err)
	}

	var errs []error
	for _, schedule := range schedules {
		if !isSameSchedule(schedule.ID, baseID) {
			continue
		}
		if err := s.scheduleLocked(ctx, schedule); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CancelSeries removes the reminders of baseID and of all its occurrences
func (s *NotificationService) CancelSeries(ctx context.Context, baseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelSeriesLocked(ctx, baseID)
}

// SetupDailyReminder registers the recurring daily reminder, replacing a
// previous one
func (s *NotificationService) SetupDailyReminder(ctx context.Context, hour, minute int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.daily != nil {
		if err := s.backend.Cancel(ctx, s.daily.handle); err != nil {
			return fmt.Errorf("%w: failed to cancel daily reminder: %w", domain.ErrBackend, err)
		}
		s.daily = nil
	}
	return s.registerDailyLocked(ctx, hour, minute)
}

// ClearAllNotifications cancels every backend reminder and empties the table
func (s *NotificationService) ClearAllNotifications(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.resetLocked(ctx); err != nil {
		return err
	}
	s.daily = nil
	logging.Logger.Info("All reminders cleared")
	return nil
}

// Handle returns the backend handle registered for scheduleID
func (s *NotificationService) Handle(scheduleID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	handle, ok := s.handles[scheduleID]
	return handle, ok
}

// Count returns the number of schedule reminders registered
func (s *NotificationService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}

func (s *NotificationService) scheduleLocked(ctx context.Context, schedule domain.Schedule) error {
	if err := s.cancelLocked(ctx, schedule.ID); err != nil {
		return err
	}
	if !schedule.IsNotificationEnabled || schedule.IsCompleted {
		return nil
	}

	now := s.clock.Now()
	start, err := schedule.EffectiveStart(now.Location(), domain.DefaultReminderClock)
	if err != nil {
		return err
	}
	notifyAt := start.Add(-schedule.ReminderOffset())
	if !notifyAt.After(now) {
		logging.Logger.Debug("Reminder time already passed, skipping", "schedule_id", schedule.ID, "notify_at", notifyAt)
		return nil
	}

	payload := ports.NotificationPayload{
		Body:       fmt.Sprintf("%s starts in %d minutes", schedule.Title, int(schedule.ReminderOffset().Minutes())),
		ScheduleID: schedule.ID,
		Title:      reminderTitle,
	}
	handle, err := s.backend.ScheduleOneShot(ctx, notifyAt, payload)
	if errors.Is(err, ports.ErrFireTimePassed) {
		logging.Logger.Debug("Reminder time passed before it was armed, skipping", "schedule_id", schedule.ID, "notify_at", notifyAt)
		return nil
	}
	if err != nil {
		logging.Logger.Error("Failed to schedule reminder", "schedule_id", schedule.ID, "error", err)
		return fmt.Errorf("%w: failed to schedule reminder for %s: %w", domain.ErrBackend, schedule.ID, err)
	}

	s.handles[schedule.ID] = handle
	logging.Logger.Debug("Reminder scheduled", "schedule_id", schedule.ID, "notify_at", notifyAt, "handle", handle)
	return nil
}

func (s *NotificationService) cancelLocked(ctx context.Context, scheduleID string) error {
	handle, ok := s.handles[scheduleID]
	if !ok {
		return nil
	}
	if err := s.backend.Cancel(ctx, handle); err != nil {
		logging.Logger.Error("Failed to cancel reminder", "schedule_id", scheduleID, "error", err)
		return fmt.Errorf("%w: failed to cancel reminder for %s: %w", domain.ErrBackend, scheduleID, err)
	}
	delete(s.handles, scheduleID)
	return nil
}

func (s *NotificationService) cancelSeriesLocked(ctx context.Context, baseID string) error {
	var errs []error
	for id := range maps.Clone(s.handles) {
		if isSameSchedule(id, baseID) {
			errs = append(errs, s.cancelLocked(ctx, id))
		}
	}
	return errors.Join(errs...)
}

func (s *NotificationService) resetLocked(ctx context.Context) error {
	if err := s.backend.CancelAll(ctx); err != nil {
		logging.Logger.Error("Failed to cancel all reminders", "error", err)
		return fmt.Errorf("%w: failed to cancel all reminders: %w", domain.ErrBackend, err)
	}
	clear(s.handles)
	return nil
}

func (s *NotificationService) registerDailyLocked(ctx context.Context, hour, minute int) error {
	handle, err := s.backend.ScheduleRecurring(ctx, hour, minute, ports.NotificationPayload{
		Body:  dailyReminderBody,
		Title: dailyReminderTitle,
	})
	if err != nil {
		logging.Logger.Error("Failed to schedule daily reminder", "hour", hour, "minute", minute, "error", err)
		return fmt.Errorf("%w: failed to schedule daily reminder: %w", domain.ErrBackend, err)
	}

	s.daily = &dailyReminder{handle: handle, hour: hour, minute: minute}
	logging.Logger.Info("Daily reminder scheduled", "hour", hour, "minute", minute)
	return nil
}
