package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/logging"
	"github.com/renato0307/studycal/internal/services"
	"github.com/renato0307/studycal/internal/theme"
)

// SchedulesCmd manages planned study sessions
type SchedulesCmd struct {
	Add      SchedulesAddCmd      `cmd:"add" help:"Plan a study session"`
	Conflict SchedulesConflictCmd `cmd:"conflict" help:"Check whether a time slot overlaps another session"`
	Del      SchedulesDelCmd      `cmd:"del" help:"Delete a schedule"`
	Done     SchedulesDoneCmd     `cmd:"done" help:"Mark a schedule completed"`
	Edit     SchedulesEditCmd     `cmd:"edit" help:"Change a schedule"`
	Expand   SchedulesExpandCmd   `cmd:"expand" help:"List every occurrence in a date range, repeats included"`
	List     SchedulesListCmd     `cmd:"list" help:"List stored schedules" default:"1"`
	Upcoming SchedulesUpcomingCmd `cmd:"upcoming" help:"List the next sessions that have not started"`
	View     SchedulesViewCmd     `cmd:"view" help:"View a schedule"`
}

// SchedulesListCmd lists stored schedules
type SchedulesListCmd struct {
	Category string `help:"Only this category (python, ai_literacy, prompt_engineering)"`
	Date     string `help:"Only this day (YYYY-MM-DD)"`
	Format   string `help:"Output format: table or json" enum:"table,json" default:"table"`
	From     string `help:"Range start (YYYY-MM-DD)"`
	To       string `help:"Range end (YYYY-MM-DD)"`
}

// Run executes the list command
func (s *SchedulesListCmd) Run(cli *CLI) error {
	ctx := context.Background()
	repo := cli.Container.Repositories.Schedules

	var schedules []domain.Schedule
	var err error
	switch {
	case s.Date != "":
		schedules, err = repo.FindByDate(ctx, s.Date)
	case s.From != "" || s.To != "":
		var from, to string
		from, to, err = cli.Container.dateRange(s.From, s.To)
		if err != nil {
			return err
		}
		schedules, err = repo.FindByDateRange(ctx, from, to)
	case s.Category != "":
		schedules, err = repo.FindByCategory(ctx, domain.Category(s.Category))
	default:
		schedules, err = repo.FindAll(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to list schedules: %w", err)
	}

	if s.Category != "" {
		schedules = filterCategory(schedules, domain.Category(s.Category))
	}
	domain.SortSchedules(schedules)

	logging.Logger.Debug("Listing schedules", "count", len(schedules))
	if s.Format == "json" {
		return printJSON(schedules)
	}
	printScheduleTable(schedules, cli.Container.today())
	return nil
}

// SchedulesViewCmd shows one schedule
type SchedulesViewCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	ID     string `arg:"" help:"Schedule id"`
}

// Run executes the view command
func (s *SchedulesViewCmd) Run(cli *CLI) error {
	ctx := context.Background()
	schedule, err := cli.Container.Repositories.Schedules.FindByID(ctx, s.ID)
	if err != nil {
		return fmt.Errorf("failed to get schedule: %w", err)
	}

	if s.Format == "json" {
		return printJSON(schedule)
	}

	records, err := cli.Container.Repositories.Records.FindByScheduleID(ctx, schedule.ID)
	if err != nil {
		return fmt.Errorf("failed to get records: %w", err)
	}

	fmt.Println(theme.TitleStyle.Render(schedule.Title))
	fmt.Printf("ID: %s\n", schedule.ID)
	fmt.Printf("Category: %s\n", theme.CategoryStyle(schedule.Category).Render(schedule.Category.DisplayName()))
	fmt.Printf("Date: %s %s\n", schedule.Date, scheduleSlot(*schedule))
	fmt.Printf("Status: %s\n", scheduleStatus(*schedule, cli.Container.today()))
	fmt.Printf("Repeat: %s\n", repeatSummary(schedule.RepeatPattern))
	if schedule.IsNotificationEnabled {
		fmt.Printf("Reminder: %d minutes before\n", int(schedule.ReminderOffset().Minutes()))
	} else {
		fmt.Println("Reminder: off")
	}
	if schedule.Description != "" {
		fmt.Printf("Description: %s\n", schedule.Description)
	}
	fmt.Printf("Created: %s\n", schedule.CreatedAt.Local().Format(dateTimeLayout))
	fmt.Printf("Updated: %s\n", schedule.UpdatedAt.Local().Format(dateTimeLayout))

	if len(records) > 0 {
		fmt.Printf("\nStudy records (%d):\n", len(records))
		for _, r := range records {
			fmt.Printf("  %s  %s  %s\n", r.CompletedAt.Local().Format(dateTimeLayout), minutes(r.Duration), truncate(r.Memo, 50))
		}
	}
	return nil
}

// SchedulesUpcomingCmd lists the next sessions
type SchedulesUpcomingCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Limit  int    `help:"Maximum number of schedules" default:"10" short:"n"`
}

// Run executes the upcoming command
func (s *SchedulesUpcomingCmd) Run(cli *CLI) error {
	schedules, err := cli.Container.Repositories.Schedules.FindUpcoming(context.Background(), s.Limit)
	if err != nil {
		return fmt.Errorf("failed to list upcoming schedules: %w", err)
	}
	if s.Format == "json" {
		return printJSON(schedules)
	}
	printScheduleTable(schedules, cli.Container.today())
	return nil
}

// SchedulesExpandCmd lists occurrences in a range
type SchedulesExpandCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	From   string `help:"Range start (YYYY-MM-DD), today by default"`
	To     string `help:"Range end (YYYY-MM-DD), a week after the start by default"`
}

// Run executes the expand command
func (s *SchedulesExpandCmd) Run(cli *CLI) error {
	from := s.From
	if from == "" {
		from = cli.Container.today()
	}
	to := s.To
	if to == "" {
		var err error
		if to, err = domain.AddDays(from, 7); err != nil {
			return err
		}
	}

	occurrences, err := cli.Container.Repositories.Schedules.ExpandRepeatingSchedules(context.Background(), from, to)
	if err != nil {
		return fmt.Errorf("failed to expand schedules: %w", err)
	}
	if s.Format == "json" {
		return printJSON(occurrences)
	}
	printScheduleTable(occurrences, cli.Container.today())
	return nil
}

// SchedulesConflictCmd checks a time slot
type SchedulesConflictCmd struct {
	Date    string `arg:"" help:"Day (YYYY-MM-DD)"`
	Start   string `arg:"" help:"Start time (HH:mm)"`
	End     string `arg:"" help:"End time (HH:mm)"`
	Exclude string `help:"Schedule id to ignore, e.g. the one being edited"`
}

// Run executes the conflict command
func (s *SchedulesConflictCmd) Run(cli *CLI) error {
	conflict, err := cli.Container.StudyService.CheckScheduleConflict(context.Background(), services.ConflictQuery{
		Date:      s.Date,
		EndTime:   s.End,
		ExcludeID: s.Exclude,
		StartTime: s.Start,
	})
	if err != nil {
		return err
	}

	if conflict {
		fmt.Println(theme.OverdueStyle.Render(fmt.Sprintf("%s %s-%s overlaps another session", s.Date, s.Start, s.End)))
		return nil
	}
	fmt.Println(theme.CompletedStyle.Render(fmt.Sprintf("%s %s-%s is free", s.Date, s.Start, s.End)))
	return nil
}

func printScheduleTable(schedules []domain.Schedule, today string) {
	if len(schedules) == 0 {
		fmt.Println("No schedules found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTIME\tTITLE\tCATEGORY\tSTATUS\tREPEAT\tID")
	for _, s := range schedules {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Date,
			scheduleSlot(s),
			truncate(s.Title, 40),
			s.Category.DisplayName(),
			scheduleStatus(s, today),
			repeatSummary(s.RepeatPattern),
			s.ID)
	}
	w.Flush()
}

func filterCategory(schedules []domain.Schedule, category domain.Category) []domain.Schedule {
	result := make([]domain.Schedule, 0, len(schedules))
	for _, s := range schedules {
		if s.Category == category {
			result = append(result, s)
		}
	}
	return result
}
