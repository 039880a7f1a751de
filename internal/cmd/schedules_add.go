package cmd

import (
	"context"
	"fmt"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/logging"
	"github.com/renato0307/studycal/internal/services"
)

// RepeatFlags describe a recurrence on the command line
type RepeatFlags struct {
	Days     []int  `help:"Weekdays for a custom repeat, 0=Sunday..6=Saturday" sep:","`
	Interval int    `help:"Repeat every N days/weeks/months" default:"1"`
	Repeat   string `help:"Recurrence: none, daily, weekly, monthly or custom" enum:"none,daily,weekly,monthly,custom" default:"none"`
	Until    string `help:"Last day of the recurrence (YYYY-MM-DD)"`
}

func (r RepeatFlags) pattern() *domain.RepeatPattern {
	if r.Repeat == string(domain.RepeatNone) {
		return nil
	}
	return &domain.RepeatPattern{
		DaysOfWeek: r.Days,
		EndDate:    r.Until,
		Interval:   r.Interval,
		Type:       domain.RepeatType(r.Repeat),
	}
}

// SchedulesAddCmd plans a study session
type SchedulesAddCmd struct {
	AllowOverlap bool   `help:"Create the schedule even when it overlaps another session"`
	Category     string `help:"Study category" enum:"python,ai_literacy,prompt_engineering" default:"python" short:"c"`
	Date         string `help:"Day (YYYY-MM-DD), today by default"`
	Description  string `help:"Longer description"`
	End          string `help:"End time (HH:mm)"`
	Notify       bool   `help:"Remind before the session starts"`
	NotifyBefore int    `help:"Minutes before the start to remind (5, 15, 30, 60, 120, 180); the settings default when 0"`
	Start        string `help:"Start time (HH:mm)"`
	Title        string `arg:"" help:"What you will study"`

	RepeatFlags `embed:""`
}

// Run executes the add command
func (s *SchedulesAddCmd) Run(cli *CLI) error {
	ctx := context.Background()
	c := cli.Container

	date := s.Date
	if date == "" {
		date = c.today()
	}

	schedule := domain.Schedule{
		Category:              domain.Category(s.Category),
		Date:                  date,
		Description:           s.Description,
		EndTime:               s.End,
		IsNotificationEnabled: s.Notify,
		RepeatPattern:         s.pattern(),
		StartTime:             s.Start,
		Title:                 s.Title,
	}
	if s.Notify {
		schedule.NotificationTime = domain.NotificationTime(s.NotifyBefore)
		if s.NotifyBefore == 0 {
			settings, err := c.SettingsService.Get(ctx)
			if err != nil {
				return err
			}
			schedule.NotificationTime = settings.DefaultNotificationTime
		}
	}

	if err := checkOverlap(ctx, c, schedule, "", s.AllowOverlap); err != nil {
		return err
	}

	created, err := c.Coordinator.CreateSchedule(ctx, schedule)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}

	logging.Logger.Info("Schedule created via CLI", "id", created.ID)
	fmt.Printf("Schedule '%s' created on %s (id: %s)\n", created.Title, created.Date, created.ID)
	return nil
}

// SchedulesEditCmd changes a schedule. Only given flags are applied.
type SchedulesEditCmd struct {
	AllowOverlap bool    `help:"Save even when the new slot overlaps another session"`
	Category     *string `help:"Study category (python, ai_literacy, prompt_engineering)"`
	Date         *string `help:"Day (YYYY-MM-DD)"`
	Description  *string `help:"Longer description"`
	End          *string `help:"End time (HH:mm), empty to clear"`
	ID           string  `arg:"" help:"Schedule id"`
	Notify       *bool   `help:"Turn the reminder on or off"`
	NotifyBefore *int    `help:"Minutes before the start to remind"`
	Repeat       *string `help:"Recurrence: none, daily, weekly, monthly or custom"`
	Days         []int   `help:"Weekdays for a custom repeat, 0=Sunday..6=Saturday" sep:","`
	Interval     int     `help:"Repeat every N days/weeks/months" default:"1"`
	Until        string  `help:"Last day of the recurrence (YYYY-MM-DD)"`
	Start        *string `help:"Start time (HH:mm), empty to clear"`
	Title        *string `help:"What you will study"`
}

// Run executes the edit command
func (s *SchedulesEditCmd) Run(cli *CLI) error {
	ctx := context.Background()
	c := cli.Container

	current, err := c.Repositories.Schedules.FindByID(ctx, s.ID)
	if err != nil {
		return fmt.Errorf("failed to get schedule: %w", err)
	}

	update := domain.ScheduleUpdate{
		Date:                  s.Date,
		Description:           s.Description,
		EndTime:               s.End,
		IsNotificationEnabled: s.Notify,
		StartTime:             s.Start,
		Title:                 s.Title,
	}
	if s.Category != nil {
		category := domain.Category(*s.Category)
		update.Category = &category
	}
	if s.NotifyBefore != nil {
		n := domain.NotificationTime(*s.NotifyBefore)
		update.NotificationTime = &n
	}
	if s.Repeat != nil {
		flags := RepeatFlags{Days: s.Days, Interval: s.Interval, Repeat: *s.Repeat, Until: s.Until}
		pattern := flags.pattern()
		if pattern == nil {
			pattern = &domain.RepeatPattern{Type: domain.RepeatNone}
		}
		update.RepeatPattern = pattern
	}
	if update.IsEmpty() {
		return fmt.Errorf("nothing to change, pass at least one flag")
	}

	next := current.Clone()
	update.Apply(&next)
	if err := checkOverlap(ctx, c, next, current.ID, s.AllowOverlap); err != nil {
		return err
	}

	updated, err := c.Coordinator.UpdateSchedule(ctx, s.ID, update)
	if err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}

	fmt.Printf("Schedule '%s' updated\n", updated.Title)
	return nil
}

// SchedulesDoneCmd marks a schedule completed without logging time
type SchedulesDoneCmd struct {
	ID string `arg:"" help:"Schedule id"`
}

// Run executes the done command
func (s *SchedulesDoneCmd) Run(cli *CLI) error {
	completed, err := cli.Container.Coordinator.CompleteSchedule(context.Background(), s.ID)
	if err != nil {
		return fmt.Errorf("failed to complete schedule: %w", err)
	}
	fmt.Printf("Schedule '%s' marked as completed\n", completed.Title)
	return nil
}

// SchedulesDelCmd deletes a schedule
type SchedulesDelCmd struct {
	Force bool   `help:"Delete without confirmation" short:"f"`
	ID    string `arg:"" help:"Schedule id"`
}

// Run executes the del command
func (s *SchedulesDelCmd) Run(cli *CLI) error {
	ctx := context.Background()
	schedule, err := cli.Container.Repositories.Schedules.FindByID(ctx, s.ID)
	if err != nil {
		return fmt.Errorf("failed to get schedule: %w", err)
	}

	if !s.Force {
		description := "This cannot be undone."
		if schedule.IsRepeating() {
			description = "Every occurrence of this repeating schedule will be removed."
		}
		ok, err := confirm(fmt.Sprintf("Delete schedule '%s'?", schedule.Title), description)
		if err != nil || !ok {
			return err
		}
	}

	if err := cli.Container.Coordinator.DeleteSchedule(ctx, s.ID); err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	fmt.Printf("Schedule '%s' deleted\n", schedule.Title)
	return nil
}

// checkOverlap refuses a timed slot that overlaps another session unless allowed
func checkOverlap(ctx context.Context, c *Container, s domain.Schedule, excludeID string, allow bool) error {
	overlap, err := c.StudyService.CheckScheduleConflict(ctx, services.ConflictQuery{
		Date:      s.Date,
		EndTime:   s.EndTime,
		ExcludeID: excludeID,
		StartTime: s.StartTime,
	})
	if err != nil {
		return err
	}
	if !overlap {
		return nil
	}
	if allow {
		fmt.Printf("Warning: %s %s overlaps another session\n", s.Date, scheduleSlot(s))
		return nil
	}
	return fmt.Errorf("%s %s overlaps another session (use --allow-overlap to keep it)", s.Date, scheduleSlot(s))
}
