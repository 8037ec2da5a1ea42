package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wellsgz/pingpong/internal/tui/components"
)

// View renders the current state
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.renderError())
		b.WriteString("\n\n")
	}

	if !m.hasSnapshot {
		b.WriteString(SubtitleStyle.Render("Waiting for the first probe..."))
		b.WriteString("\n\n")
	} else {
		b.WriteString(m.renderTable())
		b.WriteString("\n\n")
		b.WriteString(m.renderCounters())
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderHelp())
	return b.String()
}

// renderHeader renders the title, target and API address
func (m Model) renderHeader() string {
	title := TitleStyle.Render("Ping-Pong!")
	subtitle := SubtitleStyle.Render("TCP " + m.target)
	left := lipgloss.JoinHorizontal(lipgloss.Center, title, " ", subtitle)

	if m.apiAddr == "" {
		return left
	}

	apiInfo := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Render(fmt.Sprintf("API: %s", m.apiAddr))

	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(apiInfo) - 2
	if spacing < 1 {
		spacing = 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, left, strings.Repeat(" ", spacing), apiInfo)
}

// renderTable renders realtime and average ping and jitter
func (m Model) renderTable() string {
	columns := components.MetricColumns(m.width)
	table := components.NewTable(columns)
	s := m.snapshot

	rows := []string{
		table.RenderHeader(),
		table.RenderSeparator(),
		table.RenderRow([]string{
			LabelStyle.Render("Ping"),
			FormatLatency(s.PingMs, s.HasPing),
			FormatLatency(s.AvgPingMs, true),
			components.Sparkline(s.PingHistory, columns[3].Width),
		}),
		table.RenderRow([]string{
			LabelStyle.Render("Jitter"),
			FormatLatency(s.JitterMs, s.HasJitter),
			FormatLatency(s.AvgJitterMs, true),
		}),
	}
	return strings.Join(rows, "\n")
}

// renderCounters renders attempts, successes and packet loss
func (m Model) renderCounters() string {
	s := m.snapshot
	lines := []string{
		fmt.Sprintf("%s %d", LabelStyle.Render("Pings:"), s.Attempts),
		fmt.Sprintf("%s %d", LabelStyle.Render("Pongs:"), s.Successes),
		fmt.Sprintf("%s %s", LabelStyle.Render("Packet Loss:"), FormatLoss(s.PacketLoss)),
	}
	return BoxStyle.Render(strings.Join(lines, "\n"))
}

// renderError renders an error message
func (m Model) renderError() string {
	return lipgloss.NewStyle().
		Foreground(ColorDanger).
		Bold(true).
		Render("Error: " + m.err.Error())
}

// renderHelp renders the key bindings
func (m Model) renderHelp() string {
	return HelpStyle.Render(HelpKeyStyle.Render("q") + " quit")
}
