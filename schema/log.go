package schema

import (
	"strings"
	"time"
)

// Severity classifies a console log entry. It only affects presentation.
type Severity int

const (
	// SeverityUser marks an echoed user command line.
	SeverityUser Severity = iota
	// SeveritySystem marks command output and console notices.
	SeveritySystem
	// SeverityWarning marks warnings.
	SeverityWarning
	// SeverityError marks errors.
	SeverityError
)

// String returns the lower-case severity name.
func (s Severity) String() string {
	switch s {
	case SeverityUser:
		return "user"
	case SeveritySystem:
		return "system"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseSeverity maps a severity name to its value.
func ParseSeverity(name string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "user":
		return SeverityUser, true
	case "system", "sys", "info":
		return SeveritySystem, true
	case "warning", "warn":
		return SeverityWarning, true
	case "error", "err":
		return SeverityError, true
	default:
		return 0, false
	}
}

// LogEntry is one line of console output.
type LogEntry struct {
	Text     string
	Severity Severity
	Time     time.Time
}
