package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Init waits for the first snapshot
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForSnapshot(m.snapshots), waitForError(m.errs))
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled
func Run(ctx context.Context, target, apiAddr string, sink *Sink) error {
	model := NewModel(target, apiAddr, sink.Snapshots()).WithErrors(sink.Errors())

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
