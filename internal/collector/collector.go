// Package collector runs the probe loop and feeds its outcomes to the
// statistics store and the reporter.
package collector

import (
	"context"
	"time"

	"github.com/wellsgz/pingpong/internal/logging"
	"github.com/wellsgz/pingpong/internal/probe"
	"github.com/wellsgz/pingpong/internal/report"
	"github.com/wellsgz/pingpong/internal/stats"
)

// Collector drives the measurement loop: launch a probe, wait for its
// outcome, record it, report, and start again at once. Only one probe is
// in flight at a time.
type Collector struct {
	probe    probe.Probe
	store    *stats.Store
	reporter *report.Reporter
	now      func() time.Time

	// Completion instant of the previous attempt, used for jitter
	lastCompletion time.Time
}

// NewCollector creates a collector. The store is owned by the collector
// from here on.
func NewCollector(p probe.Probe, store *stats.Store, reporter *report.Reporter) *Collector {
	return &Collector{
		probe:    p,
		store:    store,
		reporter: reporter,
		now:      time.Now,
	}
}

// Run loops until ctx is cancelled. Probe failures never stop it.
func (c *Collector) Run(ctx context.Context) error {
	logging.Info("Collector", "Probing "+c.probe.Target()+" over "+c.probe.Type(), map[string]string{
		"target": c.probe.Target(),
	})

	c.lastCompletion = c.now()
	for {
		if _, err := c.Step(ctx); err != nil {
			logging.Info("Collector", "Stopping collection", nil)
			return err
		}
	}
}

// Step performs one LAUNCH, AWAIT, RECORD, REPORT cycle and returns the
// probe outcome. It returns ctx.Err() without recording anything when ctx
// is cancelled.
func (c *Collector) Step(ctx context.Context) (probe.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return probe.Outcome{}, err
	}
	if c.lastCompletion.IsZero() {
		c.lastCompletion = c.now()
	}

	outcome := <-c.probe.Start(ctx)
	if err := ctx.Err(); err != nil {
		return outcome, err
	}

	jitter := outcome.Completed.Sub(c.lastCompletion)
	c.lastCompletion = outcome.Completed
	c.record(outcome, jitter)

	c.reporter.MaybeRender(c.now(), c.store)

	logging.Outcome(c.probe.Target(), outcome.Kind.String(), outcome.Elapsed, jitter)
	return outcome, nil
}

// record folds one outcome into the store
func (c *Collector) record(outcome probe.Outcome, jitter time.Duration) {
	c.store.RecordAttempt()

	if outcome.Success() {
		c.store.RecordSuccess()
		c.store.PushPing(stats.Present(outcome.Elapsed))
	} else {
		c.store.PushPing(stats.Absent)
	}

	c.store.PushJitter(stats.Present(jitter))
}
