package stats

import "time"

// DefaultCapacity bounds each series. It only guards memory on very long
// runs; it is not a sliding window.
const DefaultCapacity = 50000

// Measurement is either a present duration or an absence
type Measurement struct {
	Value time.Duration
	Valid bool
}

// Absent is the measurement of a failed or timed-out attempt
var Absent = Measurement{}

// Present wraps a duration as a valid measurement
func Present(d time.Duration) Measurement {
	return Measurement{Value: d, Valid: true}
}

// Series is a bounded, append-only ring buffer of durations. When full,
// appending evicts the oldest entry.
type Series struct {
	values   []time.Duration
	head     int // Next write position
	count    int // Number of valid entries
	capacity int
}

// NewSeries creates a series holding at most capacity entries
func NewSeries(capacity int) *Series {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Series{capacity: capacity}
}

// Push appends m if it is present. Absences are not stored.
// It reports whether an entry was appended.
func (s *Series) Push(m Measurement) bool {
	if !m.Valid {
		return false
	}

	// Grow lazily so a large capacity costs nothing until used
	if len(s.values) < s.capacity {
		s.values = append(s.values, m.Value)
		s.count++
		s.head = len(s.values) % s.capacity
		return true
	}

	s.values[s.head] = m.Value
	s.head = (s.head + 1) % s.capacity
	return true
}

// Len returns the number of stored entries
func (s *Series) Len() int {
	return s.count
}

// Cap returns the maximum number of entries
func (s *Series) Cap() int {
	return s.capacity
}

// Latest returns the most recent entry, or false if the series is empty
func (s *Series) Latest() (time.Duration, bool) {
	if s.count == 0 {
		return 0, false
	}
	idx := s.head - 1
	if idx < 0 {
		idx = len(s.values) - 1
	}
	return s.values[idx], true
}

// Last returns up to n most recent entries, oldest first
func (s *Series) Last(n int) []time.Duration {
	if n <= 0 || n > s.count {
		n = s.count
	}

	result := make([]time.Duration, n)
	start := s.head - n
	if start < 0 {
		start += len(s.values)
	}
	for i := 0; i < n; i++ {
		result[i] = s.values[(start+i)%len(s.values)]
	}
	return result
}

// Values returns every entry, oldest first
func (s *Series) Values() []time.Duration {
	return s.Last(s.count)
}

// AverageMs returns the arithmetic mean in milliseconds. Each entry is
// truncated to whole milliseconds before summing. An empty series averages
// to 0.
func (s *Series) AverageMs() float64 {
	var sum float64
	for _, v := range s.values[:s.count] {
		sum += float64(Milliseconds(v))
	}
	return sum / float64(max(s.count, 1))
}

// Milliseconds converts d to whole milliseconds by integer division
func Milliseconds(d time.Duration) int64 {
	return int64(d) / int64(time.Millisecond)
}
