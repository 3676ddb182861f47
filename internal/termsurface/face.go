package termsurface

import (
	"image"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Face measures text in terminal cells: a rune advances by its display width
// and a line is one cell high. It lets the widgets' own text measurement work
// unchanged when one pixel is one cell.
type Face struct{}

var _ font.Face = Face{}

func (Face) Close() error { return nil }

func (Face) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	adv := fixed.I(runewidth.RuneWidth(r))
	return image.Rectangle{}, image.Transparent, image.Point{}, adv, true
}

func (Face) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	adv := fixed.I(runewidth.RuneWidth(r))
	return fixed.Rectangle26_6{Max: fixed.Point26_6{X: adv, Y: fixed.I(1)}}, adv, true
}

func (Face) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	return fixed.I(runewidth.RuneWidth(r)), true
}

func (Face) Kern(r0, r1 rune) fixed.Int26_6 { return 0 }

func (Face) Metrics() font.Metrics {
	return font.Metrics{
		Height:    fixed.I(1),
		Ascent:    fixed.I(1),
		XHeight:   fixed.I(1),
		CapHeight: fixed.I(1),
	}
}
