package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/macpaste/internal/platform"
	"github.com/mj1618/macpaste/internal/policy"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "cmd", cfg.Modifier)
	assert.Equal(t, 500*time.Millisecond, cfg.DoubleClick())
	assert.Equal(t, time.Millisecond, cfg.Settle())
	assert.Empty(t, cfg.Rules())
	assert.Equal(t, "defaults", cfg.Source)
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	if path == "" {
		t.Skip("no home directory")
	}
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, DefaultFileName, filepath.Base(path))
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
modifier: ctrl
skip: [Terminal]
no_focus: [Xcode]
windows:
  - name: iTerm2
    skip: true
    no_focus: true
double_click_ms: 400
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	mod, err := cfg.ModifierKey()
	require.NoError(t, err)
	assert.Equal(t, platform.ModifierControl, mod)
	assert.Equal(t, 400*time.Millisecond, cfg.DoubleClick())
	assert.Equal(t, time.Millisecond, cfg.Settle(), "unset fields keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, []policy.Rule{
		{Name: "iTerm2", Skip: true, NoFocus: true},
		{Name: "Terminal", Skip: true},
		{Name: "Xcode", NoFocus: true},
	}, cfg.Rules())
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
modifier = "cmd"
skip = ["Terminal"]
settle_ms = 3

[[windows]]
name = "Emacs"
no_focus = true

[log]
format = "json"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Millisecond, cfg.Settle())
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []policy.Rule{
		{Name: "Emacs", NoFocus: true},
		{Name: "Terminal", Skip: true},
	}, cfg.Rules())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"bad yaml", "c.yaml", "skip: [unterminated"},
		{"bad toml", "c.toml", "skip = ["},
		{"bad modifier", "c.yaml", "modifier: hyper"},
		{"negative timing", "c.yaml", "double_click_ms: -1"},
		{"bad log level", "c.yaml", "log: {level: loud}"},
		{"unknown extension", "c.ini", "modifier=cmd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApplyFlags(t *testing.T) {
	cfg := Default()
	cfg.Skip = []string{"Terminal"}
	cfg.ApplyFlags(Flags{
		Ctrl:          true,
		Skip:          []string{"iTerm2"},
		NoFocus:       []string{"Terminal"},
		Verbose:       true,
		LogFormat:     "json",
		DoubleClickMs: 300,
	})

	assert.Equal(t, "ctrl", cfg.Modifier)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 300*time.Millisecond, cfg.DoubleClick())
	assert.Equal(t, time.Millisecond, cfg.Settle())

	table, err := policy.Load(cfg.Rules())
	require.NoError(t, err)
	assert.Equal(t, policy.Entry{Skip: true, NoFocus: true}, table.Lookup("Terminal"))
	assert.Equal(t, policy.Entry{Skip: true}, table.Lookup("iTerm2"))
}

func TestApplyFlags_ZeroValueKeepsFile(t *testing.T) {
	cfg := Default()
	cfg.Modifier = "ctrl"
	cfg.Log.Level = "warn"
	cfg.ApplyFlags(Flags{})
	assert.Equal(t, "ctrl", cfg.Modifier)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestNormalizeLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "info"},
		{"DEBUG", "debug"},
		{" warn ", "warn"},
		{"error", "error"},
	}
	for _, tt := range tests {
		got, err := NormalizeLogLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "NormalizeLogLevel(%q)", tt.in)
	}
	_, err := NormalizeLogLevel("trace")
	assert.Error(t, err)
}
