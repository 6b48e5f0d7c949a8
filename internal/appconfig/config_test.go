package appconfig

import (
	"testing"

	"pkt.systems/devconsole/schema"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	if cfg.ConfigVersion != CurrentConfigVersion {
		t.Fatalf("expected current config version, got %d", cfg.ConfigVersion)
	}
	if cfg.Terminal.Theme != string(schema.DefaultTheme) {
		t.Fatalf("expected default theme, got %q", cfg.Terminal.Theme)
	}
	if cfg.Host.TimeScale != 1 {
		t.Fatalf("expected unit time scale, got %v", cfg.Host.TimeScale)
	}
	if cfg.Console.ForwardHostLogs {
		t.Fatalf("expected host log forwarding off by default")
	}
	if err := validate(&cfg); err != nil {
		t.Fatalf("expected defaults to validate: %v", err)
	}
}
