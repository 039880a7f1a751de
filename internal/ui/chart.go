package ui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/studycal/internal/domain"
	"github.com/renato0307/studycal/internal/theme"
)

const (
	chartHeight   = 8
	chartBarWidth = 3
	chartBarGap   = 1
)

// RenderDailyChart renders minutes studied per day for the given dates, one
// bar per date in order
func RenderDailyChart(dates []string, minutesByDate map[string]int) string {
	var sb strings.Builder

	var total, maxMinutes int
	for _, d := range dates {
		total += minutesByDate[d]
		maxMinutes = max(maxMinutes, minutesByDate[d])
	}

	sb.WriteString(theme.ChartLegendStyle.Render(
		fmt.Sprintf("Minutes per day  total: %s  max: %s", FormatMinutes(total), FormatMinutes(maxMinutes))))
	sb.WriteString("\n\n")

	chart := newChart(len(dates), float64(max(maxMinutes, 1)))
	barStyle := lipgloss.NewStyle().Foreground(theme.ColorSecondary)
	for _, d := range dates {
		// label with the day of month only
		chart.Push(barchart.BarData{
			Label: d[len(d)-2:],
			Values: []barchart.BarValue{
				{Name: d, Value: float64(minutesByDate[d]), Style: barStyle},
			},
		})
	}

	chart.Draw()
	sb.WriteString(chart.View())
	return sb.String()
}

// RenderCategoryChart renders minutes studied per category
func RenderCategoryChart(stats domain.Statistics) string {
	var sb strings.Builder

	var maxMinutes int
	for _, c := range domain.Categories {
		maxMinutes = max(maxMinutes, stats.StudyTimeByCategory[c])
	}

	for _, c := range domain.Categories {
		sb.WriteString(theme.CategoryStyle(c).Render("■ "))
		sb.WriteString(theme.ChartLegendStyle.Render(
			fmt.Sprintf("%s %s  ", c.DisplayName(), FormatMinutes(stats.StudyTimeByCategory[c]))))
	}
	sb.WriteString("\n\n")

	chart := newChart(len(domain.Categories), float64(max(maxMinutes, 1)))
	for _, c := range domain.Categories {
		chart.Push(barchart.BarData{
			Label: categoryInitials(c),
			Values: []barchart.BarValue{
				{Name: string(c), Value: float64(stats.StudyTimeByCategory[c]), Style: theme.CategoryStyle(c)},
			},
		})
	}

	chart.Draw()
	sb.WriteString(chart.View())
	return sb.String()
}

func newChart(bars int, maxValue float64) barchart.Model {
	axisStyle := lipgloss.NewStyle().Foreground(theme.ColorMuted)
	labelStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)

	width := max(bars*(chartBarWidth+chartBarGap), chartBarWidth)
	chart := barchart.New(width, chartHeight, barchart.WithStyles(axisStyle, labelStyle))
	chart.SetBarWidth(chartBarWidth)
	chart.SetBarGap(chartBarGap)
	chart.SetMax(maxValue)
	return chart
}

// categoryInitials returns a short bar label such as "PE"
func categoryInitials(c domain.Category) string {
	var initials strings.Builder
	for _, word := range strings.Fields(c.DisplayName()) {
		initials.WriteString(strings.ToUpper(word[:1]))
	}
	if initials.Len() == 1 {
		return c.DisplayName()[:min(len(c.DisplayName()), chartBarWidth)]
	}
	return initials.String()
}

// FormatMinutes formats a duration in minutes as "1h 30m", "45m" or "2h"
func FormatMinutes(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}
