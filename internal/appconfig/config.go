package appconfig

import (
	"os"
	"path/filepath"

	"pkt.systems/devconsole/schema"
)

// Config is the top-level application configuration.
type Config struct {
	ConfigVersion int            `mapstructure:"config_version" yaml:"config_version"`
	Console       ConsoleConfig  `mapstructure:"console" yaml:"console"`
	Terminal      TerminalConfig `mapstructure:"terminal" yaml:"terminal"`
	Host          HostConfig     `mapstructure:"host" yaml:"host"`
	Logging       LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// ConsoleConfig controls the console core.
type ConsoleConfig struct {
	Prompt          string `mapstructure:"prompt" yaml:"prompt"`
	StartVisible    bool   `mapstructure:"start_visible" yaml:"start_visible"`
	ForwardHostLogs bool   `mapstructure:"forward_host_logs" yaml:"forward_host_logs"`
}

// TerminalConfig controls the local terminal front end.
type TerminalConfig struct {
	Theme           string `mapstructure:"theme" yaml:"theme"`
	ScrollbackLines int    `mapstructure:"scrollback_lines" yaml:"scrollback_lines"`
	FrameIntervalMS int    `mapstructure:"frame_interval_ms" yaml:"frame_interval_ms"`
	SuggestionLines int    `mapstructure:"suggestion_lines" yaml:"suggestion_lines"`
}

// HostConfig controls the demo host.
type HostConfig struct {
	TimeScale float64 `mapstructure:"time_scale" yaml:"time_scale"`
}

// LoggingConfig controls log output and audit logging.
type LoggingConfig struct {
	File               string `mapstructure:"file" yaml:"file"`
	DisableAuditTrails bool   `mapstructure:"disable_audit_trails" yaml:"disable_audit_trails"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		ConfigVersion: CurrentConfigVersion,
		Console: ConsoleConfig{
			Prompt:          "> ",
			StartVisible:    true,
			ForwardHostLogs: false,
		},
		Terminal: TerminalConfig{
			Theme:           string(schema.DefaultTheme),
			ScrollbackLines: 1000,
			FrameIntervalMS: 100,
			SuggestionLines: 5,
		},
		Host: HostConfig{
			TimeScale: 1,
		},
		Logging: LoggingConfig{
			File:               filepath.Join(home, ".devconsole", "devconsole.log"),
			DisableAuditTrails: false,
		},
	}, nil
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".devconsole", "config.yaml"), nil
}
