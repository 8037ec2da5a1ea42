package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/wellsgz/pingpong/internal/report"
)

// Message types
type (
	// SnapshotMsg is sent when a new snapshot is rendered
	SnapshotMsg report.Snapshot

	// ErrMsg is sent when an error occurs
	ErrMsg struct{ Err error }
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case SnapshotMsg:
		m.snapshot = report.Snapshot(msg)
		m.hasSnapshot = true
		return m, waitForSnapshot(m.snapshots)

	case ErrMsg:
		if msg.Err == nil {
			// Snapshot stream closed
			return m, tea.Quit
		}
		m.err = msg.Err
		return m, waitForError(m.errs)
	}

	return m, nil
}

// waitForSnapshot creates a command that waits for the next snapshot
func waitForSnapshot(ch <-chan report.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return ErrMsg{Err: nil}
		}
		return SnapshotMsg(snap)
	}
}

// waitForError creates a command that waits for the next background error.
// A nil channel yields no command.
func waitForError(errs <-chan error) tea.Cmd {
	if errs == nil {
		return nil
	}
	return func() tea.Msg {
		err, ok := <-errs
		if !ok {
			return nil
		}
		return ErrMsg{Err: err}
	}
}
