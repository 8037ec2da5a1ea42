// Package report turns the statistics store into rate-limited snapshots and
// hands them to one or more renderers.
package report

import (
	"time"

	"github.com/wellsgz/pingpong/internal/logging"
	"github.com/wellsgz/pingpong/internal/stats"
)

// Renderer consumes snapshots
type Renderer interface {
	Render(s Snapshot) error
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(s Snapshot) error

// Render calls f(s)
func (f RendererFunc) Render(s Snapshot) error {
	return f(s)
}

// Reporter renders snapshots no more often than its throttle allows
type Reporter struct {
	throttle  *Throttle
	renderers []Renderer
}

// NewReporter creates a reporter that renders at most once per interval
func NewReporter(interval time.Duration, renderers ...Renderer) *Reporter {
	return &Reporter{
		throttle:  NewThrottle(interval),
		renderers: renderers,
	}
}

// AddRenderer registers another renderer
func (r *Reporter) AddRenderer(rd Renderer) {
	r.renderers = append(r.renderers, rd)
}

// MaybeRender takes a snapshot and renders it if the throttle allows.
// It reports whether a render happened.
func (r *Reporter) MaybeRender(now time.Time, store *stats.Store) bool {
	if !r.throttle.Allow(now) {
		return false
	}

	snap := TakeSnapshot(store, now)
	for _, rd := range r.renderers {
		if err := rd.Render(snap); err != nil {
			logging.Error("Reporter", "render failed", err)
		}
	}
	return true
}
