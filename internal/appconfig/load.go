package appconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
	"pkt.systems/devconsole/schema"
)

// EnvPrefix prefixes environment overrides, e.g. DEVCONSOLE_TERMINAL_THEME.
const EnvPrefix = "DEVCONSOLE"

// Load reads configuration from the provided path. If path is empty, uses DefaultConfigPath.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("config_version", cfg.ConfigVersion)
	v.SetDefault("console.prompt", cfg.Console.Prompt)
	v.SetDefault("console.start_visible", cfg.Console.StartVisible)
	v.SetDefault("console.forward_host_logs", cfg.Console.ForwardHostLogs)
	v.SetDefault("terminal.theme", cfg.Terminal.Theme)
	v.SetDefault("terminal.scrollback_lines", cfg.Terminal.ScrollbackLines)
	v.SetDefault("terminal.frame_interval_ms", cfg.Terminal.FrameIntervalMS)
	v.SetDefault("terminal.suggestion_lines", cfg.Terminal.SuggestionLines)
	v.SetDefault("host.time_scale", cfg.Host.TimeScale)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.disable_audit_trails", cfg.Logging.DisableAuditTrails)

	configLoaded := false
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	} else {
		configLoaded = true
	}

	if configLoaded {
		if !v.InConfig("config_version") {
			return Config{}, fmt.Errorf("config_version is required; expected %d", CurrentConfigVersion)
		}
		if v.GetInt("config_version") != CurrentConfigVersion {
			return Config{}, fmt.Errorf("unsupported config_version %d; expected %d", v.GetInt("config_version"), CurrentConfigVersion)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	expandConfigEnv(&cfg)
	if err := validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	theme, ok := schema.NormalizeThemeName(cfg.Terminal.Theme)
	if !ok {
		return fmt.Errorf("unsupported terminal.theme %q; expected one of %v", cfg.Terminal.Theme, schema.AvailableThemes())
	}
	cfg.Terminal.Theme = string(theme)
	if cfg.Terminal.ScrollbackLines <= 0 {
		return fmt.Errorf("terminal.scrollback_lines must be positive")
	}
	if cfg.Terminal.FrameIntervalMS <= 0 {
		return fmt.Errorf("terminal.frame_interval_ms must be positive")
	}
	if cfg.Terminal.SuggestionLines < 0 {
		return fmt.Errorf("terminal.suggestion_lines must not be negative")
	}
	if math.IsNaN(cfg.Host.TimeScale) || math.IsInf(cfg.Host.TimeScale, 0) || cfg.Host.TimeScale < 0 {
		return fmt.Errorf("host.time_scale must be a finite, non-negative number")
	}
	return nil
}

func expandConfigEnv(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.Logging.File = expandEnv(cfg.Logging.File)
}

func expandEnv(value string) string {
	if value == "" {
		return value
	}
	return os.Expand(value, func(key string) string {
		if key == "" {
			return ""
		}
		if val, ok := lookupEnv(key); ok {
			return val
		}
		return "$" + key
	})
}

func lookupEnv(key string) (string, bool) {
	if val, ok := os.LookupEnv(key); ok {
		return val, true
	}
	switch key {
	case "UID":
		return fmt.Sprintf("%d", os.Getuid()), true
	case "GID":
		return fmt.Sprintf("%d", os.Getgid()), true
	}
	return "", false
}

// WriteDefault writes the default config to the target path.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
