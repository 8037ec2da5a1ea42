package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// Format represents the logging output format
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown log format %q (use text or json)", s)
	}
}

// Logger wraps the standard logger with format options
type Logger struct {
	mu      sync.Mutex
	format  Format
	writer  io.Writer
	verbose bool
}

// Global logger instance
var defaultLogger = &Logger{
	format: FormatText,
	writer: os.Stderr,
}

// SetFormat sets the logging format globally
func SetFormat(format Format) {
	defaultLogger.mu.Lock()
	defaultLogger.format = format
	defaultLogger.mu.Unlock()
}

// SetWriter sets the output writer
func SetWriter(w io.Writer) {
	defaultLogger.mu.Lock()
	defaultLogger.writer = w
	defaultLogger.mu.Unlock()
	log.SetOutput(w)
}

// SetVerbose enables per-attempt outcome records
func SetVerbose(v bool) {
	defaultLogger.mu.Lock()
	defaultLogger.verbose = v
	defaultLogger.mu.Unlock()
}

// Verbose reports whether per-attempt outcome records are enabled
func Verbose() bool {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	return defaultLogger.verbose
}

// LogEntry represents a structured log entry for JSON output
type LogEntry struct {
	Timestamp string      `json:"timestamp"`
	Level     string      `json:"level"`
	Component string      `json:"component"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
}

// OutcomeLogEntry represents one probe attempt
type OutcomeLogEntry struct {
	Timestamp string  `json:"timestamp"`
	Level     string  `json:"level"`
	Component string  `json:"component"`
	Target    string  `json:"target"`
	Outcome   string  `json:"outcome"`
	ElapsedMs float64 `json:"elapsed_ms"`
	JitterMs  float64 `json:"jitter_ms"`
}

func (l *Logger) writeJSON(v interface{}) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer.Write(append(jsonBytes, '\n'))
}

func (l *Logger) currentFormat() Format {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.format
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Info logs an info message
func Info(component, message string, data interface{}) {
	if defaultLogger.currentFormat() == FormatJSON {
		defaultLogger.writeJSON(LogEntry{
			Timestamp: timestamp(),
			Level:     "info",
			Component: component,
			Message:   message,
			Data:      data,
		})
		return
	}
	log.Printf("[%s] %s", component, message)
}

// Outcome logs a single probe attempt. It is a no-op unless verbose output
// is enabled.
func Outcome(target, outcome string, elapsed, jitter time.Duration) {
	if !Verbose() {
		return
	}

	elapsedMs := float64(elapsed.Microseconds()) / 1000.0
	jitterMs := float64(jitter.Microseconds()) / 1000.0

	if defaultLogger.currentFormat() == FormatJSON {
		defaultLogger.writeJSON(OutcomeLogEntry{
			Timestamp: timestamp(),
			Level:     "info",
			Component: "Probe",
			Target:    target,
			Outcome:   outcome,
			ElapsedMs: elapsedMs,
			JitterMs:  jitterMs,
		})
		return
	}
	if outcome == "connected" {
		log.Printf("[Probe] %s: %.2fms (jitter %.2fms)", target, elapsedMs, jitterMs)
	} else {
		log.Printf("[Probe] %s: %s (jitter %.2fms)", target, outcome, jitterMs)
	}
}

// Error logs an error message
func Error(component, message string, err error) {
	errStr := ""
	if err != nil {
		errStr = err.Error()
	}

	if defaultLogger.currentFormat() == FormatJSON {
		defaultLogger.writeJSON(LogEntry{
			Timestamp: timestamp(),
			Level:     "error",
			Component: component,
			Message:   message,
			Data:      map[string]string{"error": errStr},
		})
		return
	}
	if err != nil {
		log.Printf("[%s] %s: %v", component, message, err)
	} else {
		log.Printf("[%s] %s", component, message)
	}
}

// GetFormat returns the current logging format
func GetFormat() Format {
	return defaultLogger.currentFormat()
}
