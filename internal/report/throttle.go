package report

import "time"

// DefaultInterval is the minimum time between two renders
const DefaultInterval = 200 * time.Millisecond

// Throttle limits how often a render may happen
type Throttle struct {
	interval time.Duration
	last     time.Time
	rendered bool
}

// NewThrottle creates a throttle allowing one render per interval
func NewThrottle(interval time.Duration) *Throttle {
	if interval < 0 {
		interval = 0
	}
	return &Throttle{interval: interval}
}

// ShouldRender reports whether a render at now is allowed. The first render
// is always allowed; later ones need strictly more than interval since the
// last one.
func (t *Throttle) ShouldRender(now time.Time) bool {
	if !t.rendered {
		return true
	}
	return now.Sub(t.last) > t.interval
}

// Mark records a render at now
func (t *Throttle) Mark(now time.Time) {
	t.last = now
	t.rendered = true
}

// Allow marks and returns true when a render at now is allowed
func (t *Throttle) Allow(now time.Time) bool {
	if !t.ShouldRender(now) {
		return false
	}
	t.Mark(now)
	return true
}
