package schema

import (
	"errors"
	"testing"
)

func TestNormalizeCommandName(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  CommandName
		valid bool
	}{
		{"simple", "help", "help", true},
		{"uppercase", "HeLp", "help", true},
		{"trimmed", "  time-scale ", "time-scale", true},
		{"with-digits", "spawn2", "spawn2", true},
		{"empty", "", "", false},
		{"blank", "   ", "", false},
		{"inner-space", "time scale", "", false},
		{"tab", "time\tscale", "", false},
		{"control", "bad\x07", "", false},
	}

	for _, tc := range cases {
		got, err := NormalizeCommandName(tc.input)
		if tc.valid {
			if err != nil {
				t.Fatalf("case %q expected valid, got error: %v", tc.name, err)
			}
			if got != tc.want {
				t.Fatalf("case %q expected %q, got %q", tc.name, tc.want, got)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidCommand) {
			t.Fatalf("case %q expected ErrInvalidCommand, got %v", tc.name, err)
		}
	}
}

func TestNormalizeThemeName(t *testing.T) {
	cases := map[string]ThemeName{
		"":               "classic",
		"Classic":        "classic",
		"gruvbox":        "gruvbox",
		"tokyo_midnight": "tokyo-midnight",
		"tokyo":          "tokyo-midnight",
	}
	for input, want := range cases {
		got, ok := NormalizeThemeName(input)
		if !ok || got != want {
			t.Fatalf("theme %q: expected %q, got %q (%v)", input, want, got, ok)
		}
	}
	if _, ok := NormalizeThemeName("outrun"); ok {
		t.Fatalf("expected unknown theme to be rejected")
	}
}

func TestParseSeverity(t *testing.T) {
	cases := map[string]Severity{
		"user":    SeverityUser,
		"System":  SeveritySystem,
		"warn":    SeverityWarning,
		"WARNING": SeverityWarning,
		"error":   SeverityError,
	}
	for input, want := range cases {
		got, ok := ParseSeverity(input)
		if !ok || got != want {
			t.Fatalf("severity %q: expected %v, got %v (%v)", input, want, got, ok)
		}
		if _, ok := ParseSeverity(got.String()); !ok {
			t.Fatalf("severity %v does not round-trip its name", got)
		}
	}
	if _, ok := ParseSeverity("fatal"); ok {
		t.Fatalf("expected unknown severity to be rejected")
	}
}
