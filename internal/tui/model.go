package tui

import (
	"github.com/wellsgz/pingpong/internal/report"
)

// Model holds all application state
type Model struct {
	target  string
	apiAddr string

	snapshot    report.Snapshot
	hasSnapshot bool
	snapshots   <-chan report.Snapshot
	errs        <-chan error

	// UI state
	width  int
	height int
	ready  bool

	err error
}

// NewModel creates a model fed by snapshots
func NewModel(target, apiAddr string, snapshots <-chan report.Snapshot) Model {
	return Model{
		target:    target,
		apiAddr:   apiAddr,
		snapshots: snapshots,
	}
}

// WithErrors makes the model show errors received on errs
func (m Model) WithErrors(errs <-chan error) Model {
	m.errs = errs
	return m
}

// Snapshot returns the most recent snapshot and whether one has arrived
func (m Model) Snapshot() (report.Snapshot, bool) {
	return m.snapshot, m.hasSnapshot
}

// Sink is a report.Renderer that forwards snapshots to the TUI. Renders
// never block the measurement loop; a snapshot is dropped when the TUI is
// behind.
type Sink struct {
	ch   chan report.Snapshot
	errs chan error
}

// NewSink creates a sink with a small buffer
func NewSink() *Sink {
	return &Sink{
		ch:   make(chan report.Snapshot, 16),
		errs: make(chan error, 1),
	}
}

// Fail reports err to the TUI. Only the first pending error is kept.
func (s *Sink) Fail(err error) {
	select {
	case s.errs <- err:
	default:
	}
}

// Errors returns the receiving side of Fail
func (s *Sink) Errors() <-chan error {
	return s.errs
}

// Render forwards s if there is room
func (s *Sink) Render(snap report.Snapshot) error {
	select {
	case s.ch <- snap:
	default:
	}
	return nil
}

// Snapshots returns the receiving side of the sink
func (s *Sink) Snapshots() <-chan report.Snapshot {
	return s.ch
}
