package hostlog

import (
	"context"
	"errors"
	"testing"

	"pkt.systems/devconsole/schema"
	"pkt.systems/pslog"
)

type entry struct {
	text     string
	severity schema.Severity
}

type recordingPublisher struct {
	entries []entry
	clears  int
}

func (p *recordingPublisher) Log(text string, severity schema.Severity) {
	p.entries = append(p.entries, entry{text: text, severity: severity})
}

func (p *recordingPublisher) Clear() {
	p.clears++
}

func TestForwarderDropsWhileDisabled(t *testing.T) {
	out := &recordingPublisher{}
	fwd := NewForwarder(out)
	n, err := fwd.Write([]byte(`{"level":"info","message":"hello"}` + "\n"))
	if err != nil || n == 0 {
		t.Fatalf("unexpected write result: %d %v", n, err)
	}
	if len(out.entries) != 0 {
		t.Fatalf("expected nothing forwarded, got %+v", out.entries)
	}
}

func TestForwarderMapsLevels(t *testing.T) {
	out := &recordingPublisher{}
	fwd := NewForwarder(out)
	fwd.SetEnabled(true)

	input := `{"level":"debug","message":"d"}` + "\n" +
		`{"lvl":"info","msg":"i"}` + "\n" +
		`{"level":"warn","message":"w"}` + "\n" +
		`{"level":"error","message":"e","err":"disk full"}` + "\n" +
		`{"level":"fatal","message":"f"}` + "\n"
	if _, err := fwd.Write([]byte(input)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := []entry{
		{"d", schema.SeveritySystem},
		{"i", schema.SeveritySystem},
		{"w", schema.SeverityWarning},
		{"e\ndisk full", schema.SeverityError},
		{"f", schema.SeverityError},
	}
	if len(out.entries) != len(want) {
		t.Fatalf("expected %d entries, got %+v", len(want), out.entries)
	}
	for i := range want {
		if out.entries[i] != want[i] {
			t.Fatalf("entry %d: expected %+v, got %+v", i, want[i], out.entries[i])
		}
	}
}

func TestForwarderJoinsPartialWrites(t *testing.T) {
	out := &recordingPublisher{}
	fwd := NewForwarder(out)
	fwd.SetEnabled(true)

	_, _ = fwd.Write([]byte(`{"level":"info",`))
	if len(out.entries) != 0 {
		t.Fatalf("expected partial line to be held back")
	}
	_, _ = fwd.Write([]byte(`"message":"joined"}` + "\nplain text\n"))
	if len(out.entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", out.entries)
	}
	if out.entries[0].text != "joined" {
		t.Fatalf("unexpected joined entry: %+v", out.entries[0])
	}
	if out.entries[1] != (entry{"plain text", schema.SeveritySystem}) {
		t.Fatalf("expected non-JSON passthrough, got %+v", out.entries[1])
	}
}

func TestForwarderAttachLater(t *testing.T) {
	fwd := NewForwarder(nil)
	fwd.SetEnabled(true)
	_, _ = fwd.Write([]byte(`{"level":"info","message":"lost"}` + "\n"))

	out := &recordingPublisher{}
	fwd.Attach(out)
	_, _ = fwd.Write([]byte(`{"level":"info","message":"kept"}` + "\n"))
	if len(out.entries) != 1 || out.entries[0].text != "kept" {
		t.Fatalf("expected only lines after attach, got %+v", out.entries)
	}
}

func TestForwarderWithPslog(t *testing.T) {
	out := &recordingPublisher{}
	fwd := NewForwarder(out)
	fwd.SetEnabled(true)
	logger := pslog.NewWithOptions(fwd, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		MinLevel:      pslog.InfoLevel,
		VerboseFields: true,
	})
	ctx := pslog.ContextWithLogger(context.Background(), logger)

	pslog.Ctx(ctx).Info("level loaded", "name", "forest")
	pslog.Ctx(ctx).Warn("low memory")
	pslog.Ctx(ctx).Error("save failed", "err", errors.New("disk full"))
	pslog.Ctx(ctx).Debug("hidden")

	if len(out.entries) != 3 {
		t.Fatalf("expected 3 forwarded entries, got %+v", out.entries)
	}
	if out.entries[0] != (entry{"level loaded", schema.SeveritySystem}) {
		t.Fatalf("unexpected info entry: %+v", out.entries[0])
	}
	if out.entries[1] != (entry{"low memory", schema.SeverityWarning}) {
		t.Fatalf("unexpected warn entry: %+v", out.entries[1])
	}
	if out.entries[2].severity != schema.SeverityError || out.entries[2].text != "save failed\ndisk full" {
		t.Fatalf("unexpected error entry: %+v", out.entries[2])
	}
}

func TestParseLineSkipsEmpty(t *testing.T) {
	for _, line := range []string{"", "   ", `{"level":"info"}`} {
		if _, _, ok := ParseLine([]byte(line)); ok {
			t.Fatalf("expected %q to be skipped", line)
		}
	}
}

func TestForwarderIgnoresOwnSession(t *testing.T) {
	out := &recordingPublisher{}
	fwd := NewForwarder(out)
	fwd.SetEnabled(true)
	fwd.IgnoreSession("console-1")
	logger := pslog.NewWithOptions(fwd, pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: pslog.InfoLevel,
	})

	logger.With("session", "console-1").Info("console command dispatch")
	logger.With("session", "other").Info("other console")
	logger.Info("engine tick")
	_, _ = fwd.Write([]byte("plain text\n"))

	want := []entry{
		{"other console", schema.SeveritySystem},
		{"engine tick", schema.SeveritySystem},
		{"plain text", schema.SeveritySystem},
	}
	if len(out.entries) != len(want) {
		t.Fatalf("expected %d forwarded entries, got %+v", len(want), out.entries)
	}
	for i := range want {
		if out.entries[i] != want[i] {
			t.Fatalf("entry %d: expected %+v, got %+v", i, want[i], out.entries[i])
		}
	}

	fwd.IgnoreSession("")
	logger.With("session", "console-1").Info("now visible")
	if last := out.entries[len(out.entries)-1]; last.text != "now visible" {
		t.Fatalf("expected records forwarded after clearing the ignored session, got %+v", last)
	}
}
