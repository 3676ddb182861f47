package panes

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/panes/retained"
	"github.com/agiangrant/panes/theme"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoadConfigMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ConfigFileName, `
log_level = "debug"
theme = "themes/dark.toml"
layout = "/abs/login.yaml"
width = 320

[gui]
unfocus_on_outside_click = false
focus_key = "F6"
bubble_signals = ["clicked"]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "themes", "dark.toml"), cfg.Theme, "relative paths follow the file")
	assert.Equal(t, "/abs/login.yaml", cfg.Layout)
	assert.Equal(t, float32(320), cfg.Width)
	assert.Equal(t, float32(600), cfg.Height, "unset keys keep their defaults")
	assert.False(t, cfg.GUI.UnfocusOnOutsideClick)
	assert.True(t, cfg.GUI.TabFocus)
	assert.Equal(t, "F6", cfg.GUI.FocusKey)
	assert.Equal(t, []string{retained.SignalClicked}, cfg.GUI.BubbleSignals)
	assert.Equal(t, 64, cfg.GUI.InboxSize)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "log_level = \n"},
		{"unknown key", "colour = \"red\"\n"},
		{"bad level", "log_level = \"loud\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), ConfigFileName, tt.data)
			cfg, err := LoadConfig(path)
			assert.Error(t, err)
			assert.Equal(t, DefaultConfig(), cfg)
		})
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	cfg := DefaultConfig()
	cfg.LogLevel = "warn"
	cfg.GUI.InboxSize = 8
	require.NoError(t, SaveConfig(path, cfg))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	want := writeFile(t, root, ConfigFileName, "")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := FindConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewGui(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "theme.toml", "name = \"custom\"\n")
	writeFile(t, dir, "form.toml", `version = '1.0.0'

[[widgets]]
type = 'Button'
name = 'ok'

[[widgets.properties]]
key = 'text'
value = 'OK'
`)

	cfg := DefaultConfig()
	cfg.Theme = filepath.Join(dir, "theme.toml")
	cfg.Layout = filepath.Join(dir, "form.toml")
	cfg.Font = filepath.Join(dir, "missing.ttf")

	var logs bytes.Buffer
	g, err := NewGui(cfg, cfg.NewLogger(&logs))
	require.NoError(t, err)
	assert.Equal(t, "custom", g.Theme().Name)
	assert.Equal(t, theme.DefaultFont(), g.Font(), "a font that fails to load falls back")
	assert.Contains(t, logs.String(), "failed to load font")

	b, ok := retained.Get[*retained.Button](g.Container(), "ok")
	require.True(t, ok)
	assert.Equal(t, "OK", b.Text())
}

func TestNewGuiLayoutError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout = filepath.Join(t.TempDir(), "missing.toml")
	_, err := NewGui(cfg, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	assert.Error(t, err)
}
