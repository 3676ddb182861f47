// Package render defines the drawing surface that widgets paint onto. The
// surface is opaque: a host adapts whatever graphics backend it has, and the
// widget tree only ever issues rectangles, text and clip regions through it.
package render

import (
	"golang.org/x/image/font"

	"github.com/agiangrant/panes/geom"
	"github.com/agiangrant/panes/theme"
)

// Surface is the drawing target handed to widgets each frame. Coordinates are
// absolute surface pixels; widgets convert from local space with a Transform.
type Surface interface {
	FillRect(b geom.Bounds, c theme.Color)
	StrokeRect(b geom.Bounds, width float32, c theme.Color)
	// DrawText draws a single line with its top-left corner at at.
	DrawText(text string, at geom.Vec2, face font.Face, c theme.Color)
	PushClip(b geom.Bounds)
	PopClip()
}

// Transform carries the accumulated origin and opacity from the root down to
// the widget being drawn. Opacity is the product of every ancestor's opacity
// and is never stored on the widgets themselves.
type Transform struct {
	Offset  geom.Vec2
	Opacity float32
}

// Identity is the root transform.
func Identity() Transform {
	return Transform{Opacity: 1}
}

// Translate returns a transform whose origin is moved by d.
func (t Transform) Translate(d geom.Vec2) Transform {
	t.Offset = t.Offset.Add(d)
	return t
}

// Fade multiplies the opacity by o.
func (t Transform) Fade(o float32) Transform {
	t.Opacity *= o
	return t
}

// Rect maps local bounds to surface bounds.
func (t Transform) Rect(b geom.Bounds) geom.Bounds {
	return b.Translate(t.Offset)
}

// Point maps a local point to surface coordinates.
func (t Transform) Point(p geom.Vec2) geom.Vec2 {
	return p.Add(t.Offset)
}

// Color applies the accumulated opacity to c.
func (t Transform) Color(c theme.Color) theme.Color {
	return c.WithOpacity(t.Opacity)
}

// Visible reports whether anything drawn with this transform would show.
func (t Transform) Visible() bool {
	return t.Opacity > 0
}
