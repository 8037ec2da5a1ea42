// Package stats keeps the rolling ping and jitter series and the attempt
// counters of a single measurement run. A Store is owned by one goroutine
// and is not safe for concurrent use.
package stats

import (
	"math"
	"time"
)

// Store holds the observed ping and jitter durations and the attempt and
// success counters. successes never exceeds attempts.
type Store struct {
	ping      *Series
	jitter    *Series
	attempts  uint64
	successes uint64
}

// NewStore creates a store whose series hold at most capacity entries
func NewStore(capacity int) *Store {
	return &Store{
		ping:   NewSeries(capacity),
		jitter: NewSeries(capacity),
	}
}

// RecordAttempt counts one launched probe
func (s *Store) RecordAttempt() {
	s.attempts++
}

// RecordSuccess counts one connected probe. It is ignored when it would make
// successes exceed attempts.
func (s *Store) RecordSuccess() {
	if s.successes < s.attempts {
		s.successes++
	}
}

// PushPing appends a round-trip duration; absences are dropped
func (s *Store) PushPing(m Measurement) {
	s.ping.Push(m)
}

// PushJitter appends an inter-completion duration; absences are dropped
func (s *Store) PushJitter(m Measurement) {
	s.jitter.Push(m)
}

// Ping returns the ping series
func (s *Store) Ping() *Series {
	return s.ping
}

// Jitter returns the jitter series
func (s *Store) Jitter() *Series {
	return s.jitter
}

// Attempts returns the number of launched probes
func (s *Store) Attempts() uint64 {
	return s.attempts
}

// Successes returns the number of connected probes
func (s *Store) Successes() uint64 {
	return s.successes
}

// PacketLoss returns |successes/max(attempts,1)*100 - 100|, a percentage in
// [0, 100]
func (s *Store) PacketLoss() float64 {
	ratio := float64(s.successes) / float64(max(s.attempts, 1))
	return math.Abs(ratio*100 - 100)
}

// Average returns the mean of series in milliseconds, 0 when empty
func Average(series *Series) float64 {
	return series.AverageMs()
}

// Latest returns the most recent entry of series
func Latest(series *Series) (time.Duration, bool) {
	return series.Latest()
}
