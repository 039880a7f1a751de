package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/logging"
	"github.com/renato0307/studycal/internal/services"
	"github.com/renato0307/studycal/internal/theme"
)

// RecordsCmd manages study records
type RecordsCmd struct {
	Add   RecordsAddCmd   `cmd:"add" help:"Log a study session"`
	Clear RecordsClearCmd `cmd:"clear" help:"Delete every record and reset statistics"`
	Del   RecordsDelCmd   `cmd:"del" help:"Delete a record"`
	List  RecordsListCmd  `cmd:"list" help:"List study records" default:"1"`
}

// RecordsAddCmd logs a study session
type RecordsAddCmd struct {
	At       string   `help:"When the session ended (YYYY-MM-DD HH:mm), now by default"`
	Duration int      `arg:"" optional:"" help:"Minutes studied; the suggested duration when omitted"`
	Memo     string   `help:"What you learned" short:"m"`
	Schedule string   `help:"Schedule this session completes, or an occurrence id to log against without completing the series" short:"s"`
	URL      []string `help:"Reference links" name:"url"`
}

// Run executes the add command
func (r *RecordsAddCmd) Run(cli *CLI) error {
	ctx := context.Background()
	c := cli.Container

	var completedAt time.Time
	if r.At != "" {
		t, err := time.ParseInLocation(dateTimeLayout, r.At, time.Local)
		if err != nil {
			return fmt.Errorf("%w: invalid --at %q, expected YYYY-MM-DD HH:mm", domain.ErrValidation, r.At)
		}
		completedAt = t
	}

	duration := r.Duration
	if duration == 0 {
		suggested, err := r.suggestDuration(ctx, c)
		if err != nil {
			return err
		}
		duration = suggested
		fmt.Printf("No duration given, using suggested %s\n", minutes(duration))
	}

	record, err := c.Coordinator.CreateRecord(ctx, services.RecordStudyParams{
		CompletedAt: completedAt,
		Duration:    duration,
		Memo:        r.Memo,
		ScheduleID:  r.Schedule,
		URLs:        r.URL,
	})
	if err != nil {
		return err
	}

	logging.Logger.Info("Record created via CLI", "id", record.ID)
	fmt.Printf("Logged %s of study (id: %s)\n", minutes(record.Duration), record.ID)
	if _, date, ok := domain.SplitOccurrenceID(r.Schedule); ok {
		fmt.Printf("Logged against the %s occurrence; the series stays open\n", date)
	} else if r.Schedule != "" {
		fmt.Println(theme.CompletedStyle.Render("Schedule marked as completed"))
	}
	today, err := c.StudyService.GetTodayStudyTime(ctx)
	if err == nil {
		fmt.Printf("Studied today: %s\n", minutes(today))
	}
	return nil
}

// suggestDuration uses the linked schedule category, or the settings default
func (r *RecordsAddCmd) suggestDuration(ctx context.Context, c *Container) (int, error) {
	if r.Schedule == "" {
		settings, err := c.SettingsService.Get(ctx)
		if err != nil {
			return 0, err
		}
		return settings.DefaultStudyDuration, nil
	}

	id := r.Schedule
	if base, _, ok := domain.SplitOccurrenceID(id); ok {
		id = base
	}
	schedule, err := c.Repositories.Schedules.FindByID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to get schedule: %w", err)
	}
	return c.StudyService.SuggestStudyDuration(ctx, schedule.Category)
}

// RecordsListCmd lists study records
type RecordsListCmd struct {
	Format   string `help:"Output format: table or json" enum:"table,json" default:"table"`
	From     string `help:"Range start (YYYY-MM-DD)"`
	Limit    int    `help:"Maximum number of latest records" default:"20" short:"n"`
	Schedule string `help:"Only records of this schedule or occurrence id"`
	To       string `help:"Range end (YYYY-MM-DD)"`
}

// Run executes the list command
func (r *RecordsListCmd) Run(cli *CLI) error {
	ctx := context.Background()
	repo := cli.Container.Repositories.Records

	var records []domain.Record
	var err error
	switch {
	case r.Schedule != "":
		records, err = repo.FindByScheduleID(ctx, r.Schedule)
	case r.From != "" || r.To != "":
		var from, to string
		from, to, err = cli.Container.dateRange(r.From, r.To)
		if err != nil {
			return err
		}
		records, err = repo.FindByDateRange(ctx, from, to)
	default:
		records, err = repo.FindLatest(ctx, r.Limit)
	}
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	if r.Format == "json" {
		return printJSON(records)
	}
	if len(records) == 0 {
		fmt.Println("No study records yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COMPLETED\tDURATION\tSCHEDULE\tMEMO\tID")
	total := 0
	for _, rec := range records {
		total += rec.Duration
		schedule := rec.ScheduleID
		if schedule == "" {
			schedule = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			rec.CompletedAt.Local().Format(dateTimeLayout),
			minutes(rec.Duration),
			schedule,
			truncate(rec.Memo, 40),
			rec.ID)
	}
	w.Flush()
	fmt.Printf("\nTotal: %s in %d sessions\n", minutes(total), len(records))
	return nil
}

// RecordsDelCmd deletes a record
type RecordsDelCmd struct {
	Force bool   `help:"Delete without confirmation" short:"f"`
	ID    string `arg:"" help:"Record id"`
}

// Run executes the del command
func (r *RecordsDelCmd) Run(cli *CLI) error {
	ctx := context.Background()
	record, err := cli.Container.Repositories.Records.FindByID(ctx, r.ID)
	if err != nil {
		return fmt.Errorf("failed to get record: %w", err)
	}

	if !r.Force {
		title := fmt.Sprintf("Delete the %s record from %s?", minutes(record.Duration), record.CompletedDate())
		ok, err := confirm(title, "The linked schedule stays completed.")
		if err != nil || !ok {
			return err
		}
	}

	if err := cli.Container.Coordinator.DeleteRecord(ctx, r.ID); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	fmt.Println("Record deleted")
	return nil
}

// RecordsClearCmd deletes every record
type RecordsClearCmd struct {
	Force bool `help:"Clear without confirmation" short:"f"`
}

// Run executes the clear command
func (r *RecordsClearCmd) Run(cli *CLI) error {
	return resetStatistics(cli, r.Force)
}

// resetStatistics removes every record and the statistics snapshot
func resetStatistics(cli *CLI, force bool) error {
	if !force {
		ok, err := confirm("Delete every study record?", "Statistics and streaks start over. Schedules and prompts are kept.")
		if err != nil || !ok {
			return err
		}
	}

	if err := cli.Container.Coordinator.ResetStatistics(context.Background()); err != nil {
		return fmt.Errorf("failed to reset statistics: %w", err)
	}
	fmt.Println("All study records deleted")
	return nil
}
