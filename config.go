// Package panes wires the retained widget toolkit to its configuration file:
// log level, theme, global font, the layout document to load and the input
// policy of the Gui.
package panes

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/agiangrant/panes/geom"
	"github.com/agiangrant/panes/persist"
	"github.com/agiangrant/panes/retained"
)

// ConfigFileName is looked up in the working directory and its parents.
const ConfigFileName = "panes.toml"

// Config represents the panes.toml configuration file.
type Config struct {
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `toml:"log_level"`

	// Theme is a TOML or YAML theme file; empty uses the built-in theme.
	Theme string `toml:"theme"`

	// Font is a TrueType or OpenType file used as the global font at
	// FontSize points; empty uses the built-in bitmap font.
	Font     string  `toml:"font"`
	FontSize float32 `toml:"font_size"`

	// Layout is the widget document loaded into the root container.
	Layout string `toml:"layout"`

	// Width and Height size the root area when the host does not report one.
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`

	GUI retained.Config `toml:"gui"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		FontSize: 13,
		Width:    800,
		Height:   600,
		GUI:      retained.DefaultConfig(),
	}
}

// LoadConfig reads a configuration file on top of the defaults. A missing
// file yields the defaults. Relative paths in the file are taken relative to
// the file's directory.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if _, err := ParseLevel(config.LogLevel); err != nil {
		return DefaultConfig(), fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for _, p := range []*string{&config.Theme, &config.Font, &config.Layout} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	return config, nil
}

// SaveConfig writes the configuration as TOML.
func SaveConfig(path string, config Config) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// FindConfig walks up from dir looking for panes.toml and returns its path,
// or "" when there is none.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// ParseLevel maps a log level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var l slog.Level
	if name == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q", name)
	}
	return l, nil
}

// NewLogger creates a text logger writing to w at the configured level.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := ParseLevel(c.LogLevel)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewGui creates a Gui from the configuration. A theme or font that fails to
// load is logged and replaced by the built-in one; a layout document that
// fails to load is an error.
func NewGui(c Config, logger *slog.Logger) (*retained.Gui, error) {
	g := retained.New(c.GUI)
	g.SetLogger(logger)
	g.SetSize(geom.V2(c.Width, c.Height))

	if c.Theme != "" {
		_ = g.LoadTheme(c.Theme)
	}
	if c.Font != "" {
		_ = g.LoadGlobalFont(c.Font, c.FontSize)
	}
	if c.Layout != "" {
		if err := persist.LoadFile(c.Layout, g.Container()); err != nil {
			return nil, err
		}
		if err := g.Container().CheckLayout(); err != nil {
			return nil, fmt.Errorf("%s: %w", c.Layout, err)
		}
		g.Logger().Debug("layout loaded", "path", c.Layout, "widgets", g.Container().Len())
	}
	return g, nil
}
