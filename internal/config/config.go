// Package config loads the startup configuration: modifier choice, window
// policy rules, timing, and logging.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/macpaste/internal/platform"
	"github.com/mj1618/macpaste/internal/policy"
)

// DefaultFileName is looked up under the user config directory.
const DefaultFileName = "config.yaml"

// Config is the startup configuration.
type Config struct {
	// Modifier is "cmd" (default) or "ctrl".
	Modifier string `yaml:"modifier" toml:"modifier"`

	// Skip lists window owners that never receive copy or paste shortcuts.
	Skip []string `yaml:"skip" toml:"skip"`

	// NoFocus lists window owners that never receive the focusing click.
	NoFocus []string `yaml:"no_focus" toml:"no_focus"`

	// Windows holds per-window rules in long form.
	Windows []policy.Rule `yaml:"windows" toml:"windows"`

	DoubleClickMs int `yaml:"double_click_ms" toml:"double_click_ms"`
	SettleMs      int `yaml:"settle_ms"       toml:"settle_ms"`

	Log LogConfig `yaml:"log" toml:"log"`

	// Source is where the configuration came from: "defaults" or a file path.
	Source string `yaml:"-" toml:"-"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level"  toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Modifier:      "cmd",
		DoubleClickMs: 500,
		SettleMs:      1,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Source: "defaults",
	}
}

// DefaultPath returns ~/.config/macpaste/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "macpaste", DefaultFileName)
}

// Load reads the file at path over the defaults. A missing file at the
// default path is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (use .yaml or .toml)", filepath.Ext(path))
	}
	cfg.Source = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if _, err := platform.ParseModifier(c.Modifier); err != nil {
		return err
	}
	if c.DoubleClickMs < 0 {
		return fmt.Errorf("double_click_ms must not be negative")
	}
	if c.SettleMs < 0 {
		return fmt.Errorf("settle_ms must not be negative")
	}
	if _, err := NormalizeLogLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Flags are command-line overrides applied on top of the file.
type Flags struct {
	Ctrl          bool
	Skip          []string
	NoFocus       []string
	Verbose       bool
	LogFormat     string
	DoubleClickMs int
	SettleMs      int
}

// ApplyFlags merges command-line overrides into c. Window names are
// appended; the policy table merges duplicates.
func (c *Config) ApplyFlags(f Flags) {
	if f.Ctrl {
		c.Modifier = "ctrl"
	}
	c.Skip = append(c.Skip, f.Skip...)
	c.NoFocus = append(c.NoFocus, f.NoFocus...)
	if f.Verbose {
		c.Log.Level = "debug"
	}
	if f.LogFormat != "" {
		c.Log.Format = f.LogFormat
	}
	if f.DoubleClickMs > 0 {
		c.DoubleClickMs = f.DoubleClickMs
	}
	if f.SettleMs > 0 {
		c.SettleMs = f.SettleMs
	}
}

// Rules flattens every configured window name into policy rules.
func (c *Config) Rules() []policy.Rule {
	rules := make([]policy.Rule, 0, len(c.Windows)+len(c.Skip)+len(c.NoFocus))
	rules = append(rules, c.Windows...)
	for _, name := range c.Skip {
		rules = append(rules, policy.Rule{Name: name, Skip: true})
	}
	for _, name := range c.NoFocus {
		rules = append(rules, policy.Rule{Name: name, NoFocus: true})
	}
	return rules
}

// ModifierKey returns the parsed modifier.
func (c *Config) ModifierKey() (platform.Modifier, error) {
	return platform.ParseModifier(c.Modifier)
}

// DoubleClick returns the double-click threshold.
func (c *Config) DoubleClick() time.Duration {
	return time.Duration(c.DoubleClickMs) * time.Millisecond
}

// Settle returns the delay between focusing click and paste.
func (c *Config) Settle() time.Duration {
	return time.Duration(c.SettleMs) * time.Millisecond
}

// NormalizeLogLevel lower-cases a level name and checks it is supported.
func NormalizeLogLevel(level string) (string, error) {
	l := strings.ToLower(strings.TrimSpace(level))
	switch l {
	case "":
		return "info", nil
	case "debug", "info", "warn", "error":
		return l, nil
	default:
		return "", fmt.Errorf("unsupported log level %q", level)
	}
}
