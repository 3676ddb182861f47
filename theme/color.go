// Package theme holds the shared, read-mostly rendering resources that a
// container hands down to its descendants: colors, per-widget-type styles
// and the default font face.
package theme

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// Color is a packed 0xRRGGBBAA value.
type Color uint32

const (
	Transparent Color = 0x00000000
	Black       Color = 0x000000FF
	White       Color = 0xFFFFFFFF
)

// RGBA builds a Color from components.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// Components returns the color channels.
func (c Color) Components() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Alpha returns the alpha channel.
func (c Color) Alpha() uint8 { return uint8(c) }

// WithOpacity scales the alpha channel by opacity in [0, 1].
func (c Color) WithOpacity(opacity float32) Color {
	if opacity >= 1 {
		return c
	}
	if opacity <= 0 {
		return c &^ 0xFF
	}
	a := math32.Floor(float32(c.Alpha())*opacity + 0.5)
	return c&^0xFF | Color(uint8(a))
}

// Hex returns "#rrggbb", dropping alpha. Terminal styling uses this form.
func (c Color) Hex() string {
	r, g, b, _ := c.Components()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// String returns "#rrggbbaa".
func (c Color) String() string {
	return fmt.Sprintf("#%08x", uint32(c))
}

// ParseColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA".
func ParseColor(value string) (Color, error) {
	value = strings.TrimSpace(value)
	hex, ok := strings.CutPrefix(value, "#")
	if !ok {
		return 0, fmt.Errorf("theme: color %q must start with '#'", value)
	}

	// Expand shorthand: #RGB → #RRGGBB
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}

	var r, g, b, a uint32
	switch len(hex) {
	case 6:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
			return 0, fmt.Errorf("theme: bad color %q: %w", value, err)
		}
		a = 0xFF
	case 8:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return 0, fmt.Errorf("theme: bad color %q: %w", value, err)
		}
	default:
		return 0, fmt.Errorf("theme: bad color %q", value)
	}
	return Color(r<<24 | g<<16 | b<<8 | a), nil
}

// MarshalText implements encoding.TextMarshaler so colors appear as hex
// strings in TOML and YAML.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
