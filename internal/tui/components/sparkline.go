package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline block characters from lowest to highest
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

var sparkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")) // Cyan

// Sparkline draws the last width values scaled between their own min and
// max. The result is padded to width cells.
func Sparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	if len(values) == 0 {
		return strings.Repeat(" ", width)
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	var b strings.Builder
	for _, v := range values {
		b.WriteRune(sparkBlocks[level(v, lo, hi)])
	}

	return sparkStyle.Render(b.String()) + strings.Repeat(" ", width-len(values))
}

// level maps v onto an index into sparkBlocks
func level(v, lo, hi float64) int {
	idx := int((v - lo) / (hi - lo) * float64(len(sparkBlocks)-1))
	return max(0, min(idx, len(sparkBlocks)-1))
}
