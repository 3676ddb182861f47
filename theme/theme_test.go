package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Color
		wantErr bool
	}{
		{"short", "#fff", White, false},
		{"six digits", "#1e1eb4", 0x1E1EB4FF, false},
		{"eight digits", "#11223344", 0x11223344, false},
		{"surrounding space", "  #000000 ", Black, false},
		{"missing hash", "ffffff", 0, true},
		{"bad length", "#12345", 0, true},
		{"not hex", "#zzzzzz", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorOpacity(t *testing.T) {
	c := RGBA(10, 20, 30, 200)
	assert.Equal(t, c, c.WithOpacity(1))
	assert.Equal(t, uint8(100), c.WithOpacity(0.5).Alpha())
	assert.Equal(t, uint8(0), c.WithOpacity(0).Alpha())

	r, g, b, _ := c.WithOpacity(0.25).Components()
	assert.Equal(t, []uint8{10, 20, 30}, []uint8{r, g, b})
	assert.Equal(t, "#0a141e", c.Hex())
	assert.Equal(t, "#0a141ec8", c.String())
}

func TestThemeStyleFallback(t *testing.T) {
	th := Default()
	assert.Same(t, th.Styles["Panel"], th.Style("Panel"))
	assert.Same(t, th.Styles[DefaultStyleKey], th.Style("Button"))

	var none *Theme
	assert.NotNil(t, none.Style("Button"))
}

func TestThemeCloneIsDeep(t *testing.T) {
	th := Default()
	c := th.Clone()
	c.Styles["Panel"].Background = Black
	c.Name = "copy"

	assert.Equal(t, White, th.Styles["Panel"].Background)
	assert.Equal(t, "default", th.Name)
}

func TestDecodeTOML(t *testing.T) {
	src := `
name = "dark"

[styles.Button]
background = "#202020"
foreground = "#eeeeee"
border_width = 2
`
	th, err := Decode(strings.NewReader(src), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, "dark", th.Name)
	assert.Equal(t, Color(0x202020FF), th.Style("Button").Background)
	assert.Equal(t, float32(2), th.Style("Button").BorderWidth)
	// untouched entries keep their defaults
	assert.Equal(t, White, th.Style("Panel").Background)

	_, err = Decode(strings.NewReader("bogus = 1\n"), FormatTOML)
	assert.Error(t, err)
}

func TestDecodeYAML(t *testing.T) {
	src := `
name: contrast
styles:
  Label:
    foreground: "#ff0000"
`
	th, err := Decode(strings.NewReader(src), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "contrast", th.Name)
	assert.Equal(t, Color(0xFF0000FF), th.Style("Label").Foreground)

	_, err = Decode(strings.NewReader("styles:\n  Label:\n    colour: \"#fff\"\n"), FormatYAML)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.toml")
	require.NoError(t, os.WriteFile(path, []byte("name = \"file\"\n"), 0o644))

	th, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file", th.Name)

	_, err = Load(filepath.Join(dir, "theme.ini"))
	assert.Error(t, err)
	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestMeasureString(t *testing.T) {
	face := DefaultFont()
	// basicfont.Face7x13 has a fixed 7px advance
	assert.Equal(t, float32(35), MeasureString(face, "hello"))
	assert.Equal(t, float32(35), MeasureString(nil, "world"))
	assert.Equal(t, float32(0), MeasureString(face, ""))
	assert.Equal(t, float32(13), LineHeight(face))
	assert.Greater(t, Ascent(nil), float32(0))
}

func TestTextMeasureCacheEvicts(t *testing.T) {
	c := newTextMeasureCache(2)
	c.put(measureKey{text: "a"}, 1)
	c.put(measureKey{text: "b"}, 2)
	_, _ = c.get(measureKey{text: "a"})
	c.put(measureKey{text: "c"}, 3)

	assert.Equal(t, 2, c.len())
	_, ok := c.get(measureKey{text: "b"})
	assert.False(t, ok, "least recently used entry is evicted")
	w, ok := c.get(measureKey{text: "a"})
	assert.True(t, ok)
	assert.Equal(t, float32(1), w)
}
