package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestSparklineWidth(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		width  int
	}{
		{"empty", nil, 10},
		{"fewer than width", []float64{1, 2, 3}, 10},
		{"more than width", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, 5},
		{"flat", []float64{7, 7, 7}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sparkline(tt.values, tt.width)
			if w := lipgloss.Width(got); w != tt.width {
				t.Errorf("Sparkline() width = %d, want %d", w, tt.width)
			}
		})
	}
}

func TestSparklineScaling(t *testing.T) {
	got := Sparkline([]float64{10, 20, 30}, 3)
	if !strings.Contains(got, "▁") || !strings.Contains(got, "█") {
		t.Errorf("Sparkline() = %q, want lowest and highest blocks", got)
	}
}

func TestLevelBounds(t *testing.T) {
	tests := []struct {
		v, lo, hi float64
		want      int
	}{
		{0, 0, 10, 0},
		{10, 0, 10, 7},
		{5, 0, 10, 3},
		{-5, 0, 10, 0},
		{50, 0, 10, 7},
	}

	for _, tt := range tests {
		if got := level(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("level(%v, %v, %v) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		value string
		width int
		align lipgloss.Position
		want  string
	}{
		{"ab", 5, lipgloss.Left, "ab   "},
		{"ab", 5, lipgloss.Right, "   ab"},
		{"ab", 6, lipgloss.Center, "  ab  "},
		{"abcdef", 3, lipgloss.Left, "abcdef"},
	}

	for _, tt := range tests {
		if got := pad(tt.value, tt.width, tt.align); got != tt.want {
			t.Errorf("pad(%q, %d) = %q, want %q", tt.value, tt.width, got, tt.want)
		}
	}
}

func TestMetricColumns(t *testing.T) {
	tests := []struct {
		width       int
		wantHistory int
	}{
		{20, 10},
		{80, 44},
		{300, 60},
	}

	for _, tt := range tests {
		cols := MetricColumns(tt.width)
		if len(cols) != 4 {
			t.Fatalf("MetricColumns(%d) returned %d columns", tt.width, len(cols))
		}
		if got := cols[3].Width; got != tt.wantHistory {
			t.Errorf("MetricColumns(%d) history width = %d, want %d", tt.width, got, tt.wantHistory)
		}
	}
}
