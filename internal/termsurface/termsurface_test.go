package termsurface

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/panes/geom"
	"github.com/agiangrant/panes/retained"
	"github.com/agiangrant/panes/theme"
)

func TestFaceMeasuresCells(t *testing.T) {
	assert.Equal(t, float32(5), theme.MeasureString(Face{}, "hello"))
	assert.Equal(t, float32(4), theme.MeasureString(Face{}, "日本"), "wide runes take two cells")
	assert.Equal(t, float32(1), theme.LineHeight(Face{}))
}

func TestFillAndText(t *testing.T) {
	s := New(10, 3)
	s.FillRect(geom.Rect(geom.V2(1, 1), geom.V2(4, 1)), theme.Black)
	s.DrawText("hi", geom.V2(2, 1), Face{}, theme.White)

	assert.Equal(t, "          ", s.Row(0))
	assert.Equal(t, "  hi      ", s.Row(1))
	assert.Equal(t, theme.Black, s.Cell(1, 1).BG)
	assert.Equal(t, theme.White, s.Cell(1, 0).BG)
	assert.Equal(t, theme.White, s.Cell(2, 1).FG)
}

func TestTranslucentFillBlends(t *testing.T) {
	s := New(2, 1)
	s.DrawText("x", geom.V2(0, 0), Face{}, theme.Black)
	s.FillRect(geom.Rect(geom.V2(0, 0), geom.V2(2, 1)), theme.Black.WithOpacity(0.5))

	assert.Equal(t, 'x', s.Cell(0, 0).Rune, "translucent fills keep the text")
	assert.Equal(t, theme.RGBA(0x7F, 0x7F, 0x7F, 0xFF), s.Cell(0, 0).BG)
}

func TestClipping(t *testing.T) {
	s := New(10, 2)
	s.PushClip(geom.Rect(geom.V2(0, 0), geom.V2(3, 1)))
	s.DrawText("abcdef", geom.V2(0, 0), Face{}, theme.Black)
	s.DrawText("zz", geom.V2(0, 1), Face{}, theme.Black)
	s.PopClip()
	s.DrawText("ok", geom.V2(5, 1), Face{}, theme.Black)

	assert.Equal(t, "abc       ", s.Row(0))
	assert.Equal(t, "     ok   ", s.Row(1))
}

func TestWideRunes(t *testing.T) {
	s := New(5, 1)
	s.DrawText("日本", geom.V2(0, 0), Face{}, theme.Black)
	assert.Equal(t, "日本 ", s.Row(0))
	assert.Equal(t, rune(0), s.Cell(1, 0).Rune)

	s.Clear(theme.White)
	s.PushClip(geom.Rect(geom.V2(0, 0), geom.V2(3, 1)))
	s.DrawText("日本", geom.V2(0, 0), Face{}, theme.Black)
	assert.Equal(t, "日   ", s.Row(0), "half-visible wide runes are dropped")
}

func TestStrokeRect(t *testing.T) {
	s := New(4, 3)
	s.StrokeRect(geom.Rect(geom.V2(0, 0), geom.V2(4, 3)), 1, theme.Black)
	assert.Equal(t, "┌──┐\n│  │\n└──┘", s.String())
}

func TestDrawsWidgetTree(t *testing.T) {
	g := retained.New(retained.DefaultConfig())
	g.SetTheme(Theme())
	g.SetGlobalFont(Face{})
	g.SetSize(geom.V2(20, 4))

	b := retained.NewButton("OK")
	b.SetPosition(2, 1)
	g.Add(b)
	// caption plus one line height of slack
	assert.Equal(t, geom.V2(3, 1), b.Size())

	s := New(20, 4)
	g.Draw(s)
	require.Equal(t, 4, len(strings.Split(s.String(), "\n")))
	assert.Contains(t, s.Row(1), "OK")
	assert.NotEmpty(t, s.Render())
}
