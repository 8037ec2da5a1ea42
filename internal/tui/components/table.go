package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines a table column
type Column struct {
	Title string
	Width int
	Align lipgloss.Position
}

// Table renders rows of pre-formatted cells in fixed-width columns
type Table struct {
	Columns     []Column
	HeaderStyle lipgloss.Style
	CellStyle   lipgloss.Style
	RuleColor   lipgloss.Color
}

// NewTable creates a new table with the given columns
func NewTable(columns []Column) *Table {
	return &Table{
		Columns: columns,
		HeaderStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#06B6D4")).
			Padding(0, 1),
		CellStyle: lipgloss.NewStyle().
			Padding(0, 1),
		RuleColor: lipgloss.Color("#6B7280"),
	}
}

// RenderHeader renders the column titles
func (t *Table) RenderHeader() string {
	cells := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		cells[i] = t.HeaderStyle.Render(pad(col.Title, col.Width, col.Align))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// RenderRow renders one row; missing cells are left blank
func (t *Table) RenderRow(values []string) string {
	cells := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		cells[i] = t.CellStyle.Render(pad(value, col.Width, col.Align))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// RenderSeparator renders a rule as wide as the table
func (t *Table) RenderSeparator() string {
	total := 0
	for _, col := range t.Columns {
		total += col.Width + 2 // cell padding
	}
	return lipgloss.NewStyle().Foreground(t.RuleColor).Render(strings.Repeat("─", total))
}

// pad aligns value within width visible cells, ignoring ANSI sequences
func pad(value string, width int, align lipgloss.Position) string {
	gap := width - lipgloss.Width(value)
	if gap <= 0 {
		return value
	}

	switch align {
	case lipgloss.Right:
		return strings.Repeat(" ", gap) + value
	case lipgloss.Center:
		left := gap / 2
		return strings.Repeat(" ", left) + value + strings.Repeat(" ", gap-left)
	default:
		return value + strings.Repeat(" ", gap)
	}
}

// MetricColumns returns the columns of the realtime/average table. The
// history column takes whatever width is left, within bounds.
func MetricColumns(width int) []Column {
	const (
		labelWidth = 8
		valueWidth = 10
		minHistory = 10
		maxHistory = 60
	)

	history := width - labelWidth - 2*valueWidth - 8 // 8 for padding
	history = max(minHistory, min(history, maxHistory))

	return []Column{
		{Title: "", Width: labelWidth, Align: lipgloss.Left},
		{Title: "Realtime", Width: valueWidth, Align: lipgloss.Right},
		{Title: "Average", Width: valueWidth, Align: lipgloss.Right},
		{Title: "History", Width: history, Align: lipgloss.Left},
	}
}
