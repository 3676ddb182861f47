package theme

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Style is the set of colors and metrics a widget type draws with.
type Style struct {
	Background         Color   `toml:"background" yaml:"background"`
	BackgroundHover    Color   `toml:"background_hover" yaml:"background_hover"`
	BackgroundDown     Color   `toml:"background_down" yaml:"background_down"`
	BackgroundFocused  Color   `toml:"background_focused" yaml:"background_focused"`
	BackgroundDisabled Color   `toml:"background_disabled" yaml:"background_disabled"`
	Foreground         Color   `toml:"foreground" yaml:"foreground"`
	ForegroundDisabled Color   `toml:"foreground_disabled" yaml:"foreground_disabled"`
	Border             Color   `toml:"border" yaml:"border"`
	BorderFocused      Color   `toml:"border_focused" yaml:"border_focused"`
	BorderWidth        float32 `toml:"border_width" yaml:"border_width"`
	Padding            float32 `toml:"padding" yaml:"padding"`
}

// DefaultStyleKey is the Styles entry used for widget types without one.
const DefaultStyleKey = "default"

// Theme maps widget type names ("Button", "Panel", ...) to styles.
// A theme is shared by reference between a container and every descendant
// that does not override it.
type Theme struct {
	Name   string            `toml:"name" yaml:"name"`
	Styles map[string]*Style `toml:"styles" yaml:"styles"`
}

// Style returns the style for a widget type, falling back to the default
// entry and finally to a built-in style. It never returns nil.
func (t *Theme) Style(widgetType string) *Style {
	if t != nil {
		if s, ok := t.Styles[widgetType]; ok && s != nil {
			return s
		}
		if s, ok := t.Styles[DefaultStyleKey]; ok && s != nil {
			return s
		}
	}
	return &fallbackStyle
}

// Clone returns a deep copy that can be modified without affecting widgets
// sharing the original.
func (t *Theme) Clone() *Theme {
	if t == nil {
		return nil
	}
	out := &Theme{}
	if err := copier.CopyWithOption(out, t, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on mismatched kinds, which cannot happen for
		// identical types
		panic(err)
	}
	return out
}

var fallbackStyle = Style{
	Background:         RGBA(0xF5, 0xF5, 0xF5, 0xFF),
	BackgroundHover:    RGBA(0xFF, 0xFF, 0xFF, 0xFF),
	BackgroundDown:     RGBA(0xDD, 0xDD, 0xDD, 0xFF),
	BackgroundFocused:  RGBA(0xF5, 0xF5, 0xF5, 0xFF),
	BackgroundDisabled: RGBA(0xE6, 0xE6, 0xE6, 0xFF),
	Foreground:         RGBA(0x3C, 0x3C, 0x3C, 0xFF),
	ForegroundDisabled: RGBA(0x7D, 0x7D, 0x7D, 0xFF),
	Border:             RGBA(0x3C, 0x3C, 0x3C, 0xFF),
	BorderFocused:      RGBA(0x1E, 0x1E, 0xB4, 0xFF),
	BorderWidth:        1,
	Padding:            2,
}

// Default returns the built-in light theme.
func Default() *Theme {
	panel := fallbackStyle
	panel.Background = White
	panel.BorderWidth = 0

	label := fallbackStyle
	label.Background = Transparent
	label.BorderWidth = 0

	edit := fallbackStyle
	edit.Background = White
	edit.BackgroundHover = White
	edit.BackgroundFocused = White

	base := fallbackStyle
	return &Theme{
		Name: "default",
		Styles: map[string]*Style{
			DefaultStyleKey: &base,
			"Panel":         &panel,
			"ScrollPanel":   &panel,
			"Label":         &label,
			"EditBox":       &edit,
		},
	}
}

// Format selects a theme file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("theme: unknown file extension %q", filepath.Ext(path))
}

// Decode reads a theme. Styles missing from the file keep the defaults;
// unknown keys are rejected so that typos surface as configuration errors.
func Decode(r io.Reader, format Format) (*Theme, error) {
	t := Default()
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(t); err != nil {
			return nil, fmt.Errorf("theme: decode toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(t); err != nil && err != io.EOF {
			return nil, fmt.Errorf("theme: decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("theme: unknown format %q", format)
	}
	return t, nil
}

// Load reads a theme file, choosing the syntax from its extension.
func Load(path string) (*Theme, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	return Decode(bytes.NewReader(data), format)
}
