package format

import (
	"slices"
	"testing"
	"time"

	"pkt.systems/devconsole/internal/eventbus"
	"pkt.systems/devconsole/schema"
)

func TestFormatEntryMarksSeverity(t *testing.T) {
	r := &PlainRenderer{}
	cases := []struct {
		severity schema.Severity
		want     string
	}{
		{schema.SeverityUser, "> help"},
		{schema.SeveritySystem, "help"},
		{schema.SeverityWarning, "warning: help"},
		{schema.SeverityError, "error: help"},
	}
	for _, tc := range cases {
		lines := r.FormatEntry(schema.LogEntry{Text: "help", Severity: tc.severity})
		if len(lines) != 1 || lines[0] != tc.want {
			t.Fatalf("severity %v: expected %q, got %v", tc.severity, tc.want, lines)
		}
	}
}

func TestFormatEntryIndentsContinuationLines(t *testing.T) {
	r := NewPlainRenderer()
	stamp := time.Date(2025, time.March, 1, 9, 5, 0, 0, time.UTC)
	lines := r.FormatEntry(schema.LogEntry{Text: "save failed\ndisk full\n", Severity: schema.SeverityError, Time: stamp})
	want := []string{
		"[09:05] error: save failed",
		"               disk full",
	}
	if !slices.Equal(lines, want) {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestFormatEventSkipsClearAndEmpty(t *testing.T) {
	r := NewPlainRenderer()
	if lines := r.FormatEvent(eventbus.Event{Type: eventbus.EventClear}); lines != nil {
		t.Fatalf("expected no lines for clear, got %v", lines)
	}
	if lines := r.FormatEvent(eventbus.Event{Type: eventbus.EventLog}); lines != nil {
		t.Fatalf("expected no lines for empty entry, got %v", lines)
	}
}
