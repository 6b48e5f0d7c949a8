// Package hostlog forwards the host application's structured log output into
// the console broadcast.
package hostlog

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"sync/atomic"

	"pkt.systems/devconsole/internal/eventbus"
	"pkt.systems/devconsole/schema"
)

// Forwarder is an io.Writer for a pslog structured logger. Each complete JSON
// line is turned into a console entry while forwarding is enabled. Writes may
// come from any goroutine.
type Forwarder struct {
	enabled atomic.Bool
	// ignored holds the session id whose records are never forwarded.
	ignored atomic.Pointer[string]

	mu      sync.Mutex
	out     eventbus.Publisher
	partial []byte
}

// NewForwarder constructs a disabled forwarder. out may be attached later.
func NewForwarder(out eventbus.Publisher) *Forwarder {
	return &Forwarder{out: out}
}

// Attach sets the publisher lines are forwarded to.
func (f *Forwarder) Attach(out eventbus.Publisher) {
	f.mu.Lock()
	f.out = out
	f.mu.Unlock()
}

// SetEnabled turns forwarding on or off.
func (f *Forwarder) SetEnabled(enabled bool) {
	f.enabled.Store(enabled)
}

// IgnoreSession drops records whose session field equals id, so a console
// logging through the same writer never sees its own log lines. An empty id
// forwards everything.
func (f *Forwarder) IgnoreSession(id schema.SessionID) {
	if id == "" {
		f.ignored.Store(nil)
		return
	}
	value := string(id)
	f.ignored.Store(&value)
}

// Enabled reports whether forwarding is on.
func (f *Forwarder) Enabled() bool {
	return f.enabled.Load()
}

// Write implements io.Writer. It never fails; lines are dropped while
// disabled or before a publisher is attached.
func (f *Forwarder) Write(p []byte) (int, error) {
	f.mu.Lock()
	f.partial = append(f.partial, p...)
	var lines [][]byte
	for {
		idx := bytes.IndexByte(f.partial, '\n')
		if idx == -1 {
			break
		}
		lines = append(lines, append([]byte(nil), f.partial[:idx]...))
		f.partial = f.partial[idx+1:]
	}
	if len(f.partial) == 0 {
		f.partial = nil
	}
	out := f.out
	f.mu.Unlock()

	if out == nil || !f.enabled.Load() {
		return len(p), nil
	}
	ignored := ""
	if id := f.ignored.Load(); id != nil {
		ignored = *id
	}
	for _, line := range lines {
		rec, ok := parseRecord(line)
		if !ok || (ignored != "" && rec.session == ignored) {
			continue
		}
		out.Log(rec.text, rec.severity)
	}
	return len(p), nil
}

type record struct {
	text     string
	severity schema.Severity
	session  string
}

// ParseLine converts one structured log line into console text and severity.
// Lines that are not JSON objects pass through as system entries.
func ParseLine(line []byte) (string, schema.Severity, bool) {
	rec, ok := parseRecord(line)
	return rec.text, rec.severity, ok
}

func parseRecord(line []byte) (record, bool) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return record{}, false
	}
	payload := map[string]any{}
	if err := json.Unmarshal(line, &payload); err != nil {
		return record{text: string(line), severity: schema.SeveritySystem}, true
	}
	message := stringField(payload, "message", "msg")
	if message == "" {
		return record{}, false
	}
	severity := SeverityForLevel(stringField(payload, "level", "lvl"))
	if severity == schema.SeverityError {
		if detail := stringField(payload, "err", "error"); detail != "" {
			message += "\n" + detail
		}
	}
	return record{text: message, severity: severity, session: stringField(payload, "session")}, true
}

// SeverityForLevel maps a log level name to a console severity.
func SeverityForLevel(level string) schema.Severity {
	level = strings.ToLower(strings.TrimSpace(level))
	switch {
	case strings.HasPrefix(level, "w"):
		return schema.SeverityWarning
	case strings.HasPrefix(level, "e"),
		strings.HasPrefix(level, "f"),
		strings.HasPrefix(level, "p"),
		strings.HasPrefix(level, "c"):
		return schema.SeverityError
	default:
		return schema.SeveritySystem
	}
}

func stringField(payload map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := payload[key].(string); ok {
			return value
		}
	}
	return ""
}
