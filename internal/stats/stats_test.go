package stats

import (
	"math"
	"reflect"
	"testing"
	"time"
)

func TestAverage(t *testing.T) {
	tests := []struct {
		name   string
		values []time.Duration
		want   float64
	}{
		{
			name:   "empty",
			values: nil,
			want:   0,
		},
		{
			name:   "single value",
			values: []time.Duration{10 * time.Millisecond},
			want:   10,
		},
		{
			name: "three values",
			values: []time.Duration{
				100 * time.Millisecond,
				200 * time.Millisecond,
				300 * time.Millisecond,
			},
			want: 200,
		},
		{
			name: "sub-millisecond parts truncated per entry",
			values: []time.Duration{
				1999 * time.Microsecond, // 1ms
				2999 * time.Microsecond, // 2ms
			},
			want: 1.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSeries(10)
			for _, v := range tt.values {
				s.Push(Present(v))
			}
			got := Average(s)
			if math.IsNaN(got) {
				t.Fatalf("Average() = NaN")
			}
			if got != tt.want {
				t.Errorf("Average() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeriesAbsentNotStored(t *testing.T) {
	s := NewSeries(10)
	if s.Push(Absent) {
		t.Error("Push(Absent) should report nothing appended")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if _, ok := s.Latest(); ok {
		t.Error("Latest() on empty series should report false")
	}
}

func TestSeriesEvictsOldestFirst(t *testing.T) {
	s := NewSeries(3)
	for i := 1; i <= 5; i++ {
		s.Push(Present(time.Duration(i) * time.Millisecond))
	}

	want := []time.Duration{3 * time.Millisecond, 4 * time.Millisecond, 5 * time.Millisecond}
	if got := s.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("Values() = %v, want %v", got, want)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if latest, _ := s.Latest(); latest != 5*time.Millisecond {
		t.Errorf("Latest() = %v, want 5ms", latest)
	}
	if got := s.AverageMs(); got != 4 {
		t.Errorf("AverageMs() = %v, want 4", got)
	}
}

func TestSeriesLast(t *testing.T) {
	s := NewSeries(4)
	for i := 1; i <= 6; i++ {
		s.Push(Present(time.Duration(i)))
	}

	tests := []struct {
		name string
		n    int
		want []time.Duration
	}{
		{"fewer than stored", 2, []time.Duration{5, 6}},
		{"all", 4, []time.Duration{3, 4, 5, 6}},
		{"more than stored", 10, []time.Duration{3, 4, 5, 6}},
		{"zero means all", 0, []time.Duration{3, 4, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Last(tt.n); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Last(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestNewSeriesDefaultCapacity(t *testing.T) {
	if got := NewSeries(0).Cap(); got != DefaultCapacity {
		t.Errorf("Cap() = %d, want %d", got, DefaultCapacity)
	}
}

func TestPacketLoss(t *testing.T) {
	tests := []struct {
		name      string
		attempts  int
		successes int
		want      float64
	}{
		{"no attempts", 0, 0, 100},
		{"all success", 10, 10, 0},
		{"all failed", 10, 0, 100},
		{"half", 4, 2, 50},
		{"one in four lost", 4, 3, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(10)
			for i := 0; i < tt.attempts; i++ {
				s.RecordAttempt()
				if i < tt.successes {
					s.RecordSuccess()
				}
			}
			got := s.PacketLoss()
			if got != tt.want {
				t.Errorf("PacketLoss() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("PacketLoss() = %v, out of [0, 100]", got)
			}
		})
	}
}

func TestSuccessesNeverExceedAttempts(t *testing.T) {
	s := NewStore(10)
	s.RecordSuccess()
	if s.Successes() != 0 {
		t.Errorf("Successes() = %d before any attempt, want 0", s.Successes())
	}

	for i := 0; i < 100; i++ {
		s.RecordAttempt()
		s.RecordSuccess()
		s.RecordSuccess()
		if s.Successes() > s.Attempts() {
			t.Fatalf("Successes() = %d > Attempts() = %d", s.Successes(), s.Attempts())
		}
	}
	if s.Attempts() != 100 || s.Successes() != 100 {
		t.Errorf("Attempts/Successes = %d/%d, want 100/100", s.Attempts(), s.Successes())
	}
}

func TestStoreSeries(t *testing.T) {
	s := NewStore(5)
	s.PushPing(Present(12 * time.Millisecond))
	s.PushPing(Absent)
	s.PushJitter(Present(30 * time.Millisecond))
	s.PushJitter(Absent)

	if s.Ping().Len() != 1 {
		t.Errorf("Ping().Len() = %d, want 1", s.Ping().Len())
	}
	if s.Jitter().Len() != 1 {
		t.Errorf("Jitter().Len() = %d, want 1", s.Jitter().Len())
	}
	if d, ok := Latest(s.Ping()); !ok || d != 12*time.Millisecond {
		t.Errorf("Latest(ping) = %v, %v; want 12ms, true", d, ok)
	}
}

func TestMilliseconds(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want int64
	}{
		{0, 0},
		{999 * time.Microsecond, 0},
		{time.Millisecond, 1},
		{1500 * time.Microsecond, 1},
		{2 * time.Second, 2000},
	}

	for _, tt := range tests {
		if got := Milliseconds(tt.in); got != tt.want {
			t.Errorf("Milliseconds(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
