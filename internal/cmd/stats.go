package cmd

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/theme"
	"github.com/renato0307/studycal/internal/ui"
)

// StatsCmd shows study statistics
type StatsCmd struct {
	Goal    StatsGoalCmd    `cmd:"goal" help:"How often the daily goal was met"`
	Pattern StatsPatternCmd `cmd:"pattern" help:"Study time by weekday"`
	Reset   StatsResetCmd   `cmd:"reset" help:"Delete every record and start statistics over"`
	Show    StatsShowCmd    `cmd:"show" help:"Overall or date range statistics" default:"withargs"`
	Streak  StatsStreakCmd  `cmd:"streak" help:"Current and longest study streak"`
	Trend   StatsTrendCmd   `cmd:"trend" help:"Compare the two halves of the last week or month"`
}

// StatsShowCmd shows aggregate statistics
type StatsShowCmd struct {
	Cached bool   `help:"Show the last saved snapshot instead of recomputing"`
	Format string `help:"Output format (table, chart or json)" default:"table" enum:"table,chart,json"`
	From   string `help:"Range start (YYYY-MM-DD); overall statistics when no range is given"`
	To     string `help:"Range end (YYYY-MM-DD)"`
}

// Run executes the stats command
func (s *StatsShowCmd) Run(cli *CLI) error {
	ctx := context.Background()
	c := cli.Container

	var stats domain.Statistics
	title := "Study statistics"
	switch {
	case s.Cached:
		cached, err := c.StatisticsService.GetCachedStatistics(ctx)
		if err != nil {
			return fmt.Errorf("failed to load statistics snapshot: %w", err)
		}
		stats = *cached
		title += " (snapshot)"
	case s.From != "" || s.To != "":
		from, to, err := c.dateRange(s.From, s.To)
		if err != nil {
			return err
		}
		if stats, err = c.StatisticsService.GetStatisticsByDateRange(ctx, from, to); err != nil {
			return fmt.Errorf("failed to get statistics: %w", err)
		}
		title = fmt.Sprintf("Study statistics %s to %s", from, to)
	default:
		var err error
		if stats, err = c.StatisticsService.GetOverallStatistics(ctx); err != nil {
			return fmt.Errorf("failed to get statistics: %w", err)
		}
	}

	switch s.Format {
	case "json":
		return printJSON(stats)
	case "chart":
		s.renderChart(title, stats)
	default:
		s.renderTable(title, stats)
	}
	return nil
}

// renderTable displays statistics in table format
func (s *StatsShowCmd) renderTable(title string, stats domain.Statistics) {
	fmt.Println(theme.TitleStyle.Render(title))
	fmt.Printf("Total study time: %s\n", minutes(stats.TotalStudyTime))
	if stats.CurrentStreak > 0 || stats.LongestStreak > 0 {
		fmt.Printf("Streak: %s (longest %d days)\n",
			theme.StreakStyle.Render(fmt.Sprintf("%d days", stats.CurrentStreak)), stats.LongestStreak)
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tTIME")
	for _, c := range domain.Categories {
		fmt.Fprintf(w, "%s\t%s\n", c.DisplayName(), minutes(stats.StudyTimeByCategory[c]))
	}
	fmt.Fprintln(w, strings.Repeat("─", 12)+"\t")
	fmt.Fprintf(w, "Prompts saved\t%d\n", stats.TotalPrompts)
	for _, l := range domain.PromptLabels {
		if n := stats.PromptsByLabel[l]; n > 0 {
			fmt.Fprintf(w, "  %s\t%d\n", l, n)
		}
	}
	w.Flush()
}

// renderChart displays category totals and the last days as bar charts
func (s *StatsShowCmd) renderChart(title string, stats domain.Statistics) {
	fmt.Println(theme.TitleStyle.Render(title))
	if stats.TotalStudyTime == 0 {
		fmt.Println("No study time recorded yet.")
		return
	}

	fmt.Println(ui.RenderCategoryChart(stats))
	fmt.Println()

	dates := make([]string, 0, len(stats.StudyTimeByDate))
	for d := range stats.StudyTimeByDate {
		dates = append(dates, d)
	}
	slices.Sort(dates)
	// the chart only fits about two weeks
	if len(dates) > 14 {
		dates = dates[len(dates)-14:]
	}
	fmt.Println(ui.RenderDailyChart(dates, stats.StudyTimeByDate))
}

// StatsStreakCmd shows the streak
type StatsStreakCmd struct{}

// Run executes the streak command
func (s *StatsStreakCmd) Run(cli *CLI) error {
	streak, err := cli.Container.StatisticsService.GetStreakInfo(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get streak: %w", err)
	}

	fmt.Printf("Current streak: %s\n", theme.StreakStyle.Render(fmt.Sprintf("%d days", streak.Current)))
	fmt.Printf("Longest streak: %d days\n", streak.Longest)
	if streak.LastStudyDate != "" {
		fmt.Printf("Last studied: %s\n", streak.LastStudyDate)
	}
	return nil
}

// StatsPatternCmd shows the weekly pattern
type StatsPatternCmd struct {
	From string `help:"Range start (YYYY-MM-DD), four weeks ago by default"`
	To   string `help:"Range end (YYYY-MM-DD), today by default"`
}

// Run executes the pattern command
func (s *StatsPatternCmd) Run(cli *CLI) error {
	from, to, err := lastDays(cli.Container, s.From, s.To, 28)
	if err != nil {
		return err
	}

	pattern, err := cli.Container.StatisticsService.GetWeeklyPattern(context.Background(), from, to)
	if err != nil {
		return fmt.Errorf("failed to get weekly pattern: %w", err)
	}

	fmt.Printf("Average per session, %s to %s\n\n", from, to)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for d := time.Sunday; d <= time.Saturday; d++ {
		marker := ""
		if pattern.StudiedAnything && d == pattern.MostProductive {
			marker = theme.StreakStyle.Render(" ★")
		}
		fmt.Fprintf(w, "%s\t%s%s\n", d, minutes(pattern.ByWeekday[d]), marker)
	}
	w.Flush()
	fmt.Printf("\nAverage on study days: %s\n", minutes(pattern.AveragePerDay))
	return nil
}

// StatsGoalCmd shows goal achievement
type StatsGoalCmd struct {
	Daily int    `help:"Daily goal in minutes; the default study duration when 0"`
	From  string `help:"Range start (YYYY-MM-DD), four weeks ago by default"`
	To    string `help:"Range end (YYYY-MM-DD), today by default"`
}

// Run executes the goal command
func (s *StatsGoalCmd) Run(cli *CLI) error {
	from, to, err := lastDays(cli.Container, s.From, s.To, 28)
	if err != nil {
		return err
	}

	goal, err := cli.Container.StatisticsService.GetGoalAchievement(context.Background(), from, to, s.Daily)
	if err != nil {
		return fmt.Errorf("failed to get goal achievement: %w", err)
	}

	fmt.Printf("Daily goal: %s\n", minutes(goal.DailyGoal))
	fmt.Printf("Met on %d of %d days (%d%%)\n", goal.DaysAchieved, goal.TotalDays, goal.Rate)

	rate, err := cli.Container.StudyService.GetCompletionRate(context.Background(), from, to)
	if err == nil {
		fmt.Printf("Schedules completed: %d%%\n", rate)
	}
	return nil
}

// StatsTrendCmd shows the progress trend
type StatsTrendCmd struct {
	Chart  bool   `help:"Draw the daily totals as a bar chart"`
	Period string `arg:"" optional:"" help:"week or month" enum:"week,month" default:"week"`
}

// Run executes the trend command
func (s *StatsTrendCmd) Run(cli *CLI) error {
	trend, err := cli.Container.StatisticsService.GetProgressTrend(context.Background(), domain.TrendPeriod(s.Period))
	if err != nil {
		return fmt.Errorf("failed to get progress trend: %w", err)
	}

	fmt.Printf("Last %s: %s (%+d%%)\n", trend.Period, theme.TrendStyle(trend.Trend).Render(string(trend.Trend)), trend.ChangePercent)
	fmt.Printf("First part: %s, second part: %s\n", minutes(trend.FirstHalf), minutes(trend.SecondHalf))

	if s.Chart {
		from, err := domain.AddDays(cli.Container.today(), -(len(trend.DailyTotals) - 1))
		if err != nil {
			return err
		}
		dates := make([]string, len(trend.DailyTotals))
		byDate := make(map[string]int, len(trend.DailyTotals))
		for i, total := range trend.DailyTotals {
			dates[i], _ = domain.AddDays(from, i)
			byDate[dates[i]] = total
		}
		fmt.Println()
		fmt.Println(ui.RenderDailyChart(dates, byDate))
	}
	return nil
}

// StatsResetCmd clears records and statistics
type StatsResetCmd struct {
	Force bool `help:"Reset without confirmation" short:"f"`
}

// Run executes the reset command
func (s *StatsResetCmd) Run(cli *CLI) error {
	return resetStatistics(cli, s.Force)
}

// lastDays defaults an empty range to the n days ending today
func lastDays(c *Container, from, to string, n int) (string, string, error) {
	if to == "" {
		to = c.today()
	}
	if from == "" {
		var err error
		if from, err = domain.AddDays(to, -(n - 1)); err != nil {
			return "", "", err
		}
	}
	if err := domain.ValidateRange(from, to); err != nil {
		return "", "", err
	}
	return from, to, nil
}
