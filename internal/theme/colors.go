package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/studycal/internal/domain"
)

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Schedule state colors
const (
	ColorCompleted Color = "2" // Green
	ColorOverdue   Color = "1" // Red
	ColorPending   Color = "3" // Yellow
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
	ColorVersion   Color = "240" // Dark gray
)

// Trend colors
const (
	ColorDeclining Color = "1"   // Red
	ColorImproving Color = "2"   // Green
	ColorStable    Color = "245" // Gray
	ColorStreak     Color = "208" // Orange
)

// categoryColors maps each study category to a chart color
var categoryColors = map[domain.Category]Color{
	domain.CategoryAILiteracy:        "33",
	domain.CategoryPromptEngineering: "141",
	domain.CategoryPython:            "226",
}

// CategoryColor returns the display color of a category
func CategoryColor(c domain.Category) Color {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return ColorNormal
}
