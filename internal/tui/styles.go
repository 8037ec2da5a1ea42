package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/wellsgz/pingpong/internal/report"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorWarning   = lipgloss.Color("#F59E0B") // Yellow
	ColorDanger    = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorText      = lipgloss.Color("#F9FAFB") // Light text
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	LatencyGoodStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	LatencyWarnStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	LatencyBadStyle  = lipgloss.NewStyle().Foreground(ColorDanger)
	MissingStyle     = lipgloss.NewStyle().Foreground(ColorMuted)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	BoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)
)

// LatencyStyle returns the appropriate style based on latency value
func LatencyStyle(ms int64) lipgloss.Style {
	switch {
	case ms < 50:
		return LatencyGoodStyle
	case ms < 200:
		return LatencyWarnStyle
	default:
		return LatencyBadStyle
	}
}

// LossPercentStyle returns the appropriate style based on loss percentage
func LossPercentStyle(pct float64) lipgloss.Style {
	switch {
	case pct == 0:
		return LatencyGoodStyle
	case pct < 5:
		return LatencyWarnStyle
	default:
		return LatencyBadStyle
	}
}

// FormatLatency formats a millisecond value with color; ok=false renders a
// placeholder
func FormatLatency(ms int64, ok bool) string {
	if !ok {
		return MissingStyle.Render("--")
	}
	return LatencyStyle(ms).Render(fmt.Sprintf("%dms", ms))
}

// FormatLoss formats a loss percentage with color
func FormatLoss(pct float64) string {
	return LossPercentStyle(pct).Render(report.FormatPercent(pct) + "%")
}
