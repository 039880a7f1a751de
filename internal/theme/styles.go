package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/studycal/internal/domain"
)

// Main CLI styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0)
)

// Schedule state styles
var (
	CompletedStyle = lipgloss.NewStyle().
			Foreground(ColorCompleted)

	OverdueStyle = lipgloss.NewStyle().
			Foreground(ColorOverdue)

	PendingStyle = lipgloss.NewStyle().
			Foreground(ColorPending)
)

// Statistics styles
var (
	ChartLegendStyle = lipgloss.NewStyle().
				Foreground(ColorSubtle)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	StreakStyle = lipgloss.NewStyle().
			Foreground(ColorStreak).
			Bold(true)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// CategoryStyle returns a style colored for the category
func CategoryStyle(c domain.Category) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CategoryColor(c))
}

// TrendStyle returns a style colored for the trend direction
func TrendStyle(t domain.Trend) lipgloss.Style {
	switch t {
	case domain.TrendImproving:
		return lipgloss.NewStyle().Foreground(ColorImproving).Bold(true)
	case domain.TrendDeclining:
		return lipgloss.NewStyle().Foreground(ColorDeclining).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(ColorStable)
	}
}
