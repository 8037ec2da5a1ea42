package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// clearScreen resets the terminal before each report
const clearScreen = "\x1bc"

// ConsoleRenderer prints the plain text report to a terminal
type ConsoleRenderer struct {
	w io.Writer
}

// NewConsoleRenderer creates a renderer writing to w
func NewConsoleRenderer(w io.Writer) *ConsoleRenderer {
	return &ConsoleRenderer{w: w}
}

// Render clears the screen and prints the report
func (c *ConsoleRenderer) Render(s Snapshot) error {
	if _, err := io.WriteString(c.w, clearScreen+"\n"+Format(s)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Format returns the report text for s
func Format(s Snapshot) string {
	var b strings.Builder

	b.WriteString("  Ping-Pong!\n\n")
	b.WriteString("  \t\t[Realtime]\t[Average]\n")
	fmt.Fprintf(&b, "  Ping:  \t%sms\t\t%dms\n", instant(s.PingMs, s.HasPing), s.AvgPingMs)
	fmt.Fprintf(&b, "  Jitter:\t%sms\t\t%dms\n", instant(s.JitterMs, s.HasJitter), s.AvgJitterMs)
	fmt.Fprintf(&b, "\n  Pings: %d\n  Pongs: %d\n\n", s.Attempts, s.Successes)
	fmt.Fprintf(&b, "  Packet Loss: %s%%\n\n\n", FormatPercent(s.PacketLoss))

	return b.String()
}

func instant(ms int64, ok bool) string {
	if !ok {
		return "--"
	}
	return strconv.FormatInt(ms, 10)
}
