package format

import (
	"strings"

	"pkt.systems/devconsole/internal/eventbus"
	"pkt.systems/devconsole/schema"
)

// Line markers prefix the first line of an entry by severity.
const (
	UserMarker    = "> "
	WarningMarker = "warning: "
	ErrorMarker   = "error: "
)

const timestampLayout = "15:04"

// PlainRenderer formats console events as plain text lines.
type PlainRenderer struct {
	Timestamps bool
}

// NewPlainRenderer returns a plain-text renderer that prefixes timestamps.
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{Timestamps: true}
}

// FormatEvent converts a console event into user-facing lines. Clear events
// produce no lines.
func (p *PlainRenderer) FormatEvent(event eventbus.Event) []string {
	if event.Type != eventbus.EventLog {
		return nil
	}
	return p.FormatEntry(event.Entry)
}

// FormatEntry converts one entry into lines. Continuation lines of a
// multi-line entry are indented under the first.
func (p *PlainRenderer) FormatEntry(entry schema.LogEntry) []string {
	lines := splitLines(entry.Text)
	if len(lines) == 0 {
		return nil
	}
	prefix := MarkerFor(entry.Severity)
	if p.Timestamps && !entry.Time.IsZero() {
		prefix = "[" + entry.Time.Format(timestampLayout) + "] " + prefix
	}
	return markLines(prefix, lines)
}

// MarkerFor returns the first-line marker for a severity.
func MarkerFor(severity schema.Severity) string {
	switch severity {
	case schema.SeverityUser:
		return UserMarker
	case schema.SeverityWarning:
		return WarningMarker
	case schema.SeverityError:
		return ErrorMarker
	default:
		return ""
	}
}

func splitLines(text string) []string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func markLines(marker string, lines []string) []string {
	if marker == "" || len(lines) == 0 {
		return lines
	}
	indent := strings.Repeat(" ", len(marker))
	marked := make([]string, 0, len(lines))
	for i, line := range lines {
		if i == 0 {
			marked = append(marked, marker+line)
			continue
		}
		marked = append(marked, indent+line)
	}
	return marked
}
