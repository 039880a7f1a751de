package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/theme"
	"github.com/renato0307/studycal/internal/ui"
)

const dateTimeLayout = "2006-01-02 15:04"

// printJSON writes v as indented JSON to stdout
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// today returns the current calendar day
func (c *Container) today() string {
	return domain.FormatDate(c.Clock.Now())
}

// dateRange fills missing bounds with today
func (c *Container) dateRange(from, to string) (string, string, error) {
	if from == "" {
		from = c.today()
	}
	if to == "" {
		to = from
	}
	if err := domain.ValidateRange(from, to); err != nil {
		return "", "", err
	}
	return from, to, nil
}

// scheduleSlot renders the time part of a schedule
func scheduleSlot(s domain.Schedule) string {
	switch {
	case s.StartTime != "" && s.EndTime != "":
		return s.StartTime + "-" + s.EndTime
	case s.StartTime != "":
		return s.StartTime
	default:
		return "all day"
	}
}

// scheduleStatus renders the completion state of a schedule
func scheduleStatus(s domain.Schedule, today string) string {
	switch {
	case s.IsCompleted:
		return theme.CompletedStyle.Render("✓ done")
	case s.Date < today:
		return theme.OverdueStyle.Render("✗ missed")
	default:
		return theme.PendingStyle.Render("○ pending")
	}
}

// repeatSummary describes the recurrence of a schedule
func repeatSummary(p *domain.RepeatPattern) string {
	if p == nil || p.Type == domain.RepeatNone {
		return "-"
	}

	var sb strings.Builder
	sb.WriteString(string(p.Type))
	if p.Interval > 1 {
		fmt.Fprintf(&sb, " every %d", p.Interval)
	}
	if len(p.DaysOfWeek) > 0 {
		days := make([]string, 0, len(p.DaysOfWeek))
		for _, d := range p.DaysOfWeek {
			days = append(days, weekdayNames[d][:3])
		}
		fmt.Fprintf(&sb, " on %s", strings.Join(days, ","))
	}
	if p.EndDate != "" {
		fmt.Fprintf(&sb, " until %s", p.EndDate)
	}
	return sb.String()
}

var weekdayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// minutes renders a duration for tables
func minutes(n int) string {
	return ui.FormatMinutes(n)
}

// truncate shortens s to n runes, adding an ellipsis
func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
