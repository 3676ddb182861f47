package retained

import (
	"github.com/agiangrant/panes/geom"
	"github.com/agiangrant/panes/render"
	"github.com/agiangrant/panes/theme"
)

// ============================================================================
// Clickable
// ============================================================================

// Clickable is a widget that reports presses and clicks. It is the base of
// Button, CheckBox, EditBox and Panel.
//
// Signals: mouse-pressed and mouse-released carry the local point; clicked
// fires on a left release over the widget that follows a press on it.
type Clickable struct {
	WidgetBase
}

// NewClickable creates an invisible clickable area.
func NewClickable() *Clickable {
	c := &Clickable{}
	c.Init(c, "ClickableWidget")
	return c
}

// Clone implements Widget.
func (c *Clickable) Clone() Widget {
	out := &Clickable{}
	out.WidgetBase = c.cloneBase(out)
	return out
}

// OnMouseDown implements MouseHandler.
func (c *Clickable) OnMouseDown(p geom.Vec2, button MouseButton) {
	c.emit(SignalMousePressed, p)
}

// OnMouseUp implements MouseHandler.
func (c *Clickable) OnMouseUp(p geom.Vec2, button MouseButton) {
	c.release(p, button)
}

// OnMouseMove implements MouseHandler.
func (c *Clickable) OnMouseMove(p geom.Vec2) {}

// release emits mouse-released, then clicked when the release completes a
// click. It reports whether it did.
func (c *Clickable) release(p geom.Vec2, button MouseButton) bool {
	pressed := c.mouseDown
	c.emit(SignalMouseReleased, p)
	if button != MouseButtonLeft || !pressed || !c.containsLocal(p) {
		return false
	}
	c.emit(SignalClicked, p)
	return true
}

// ----------------------------------------------------------------------------
// Shared drawing
// ----------------------------------------------------------------------------

// background picks the fill color for the widget's current state.
func background(s *theme.Style, b *WidgetBase) theme.Color {
	if !b.enabled {
		return s.BackgroundDisabled
	}
	switch b.State() {
	case StatePressed:
		return s.BackgroundDown
	case StateHovered, StateFocusedHovered:
		return s.BackgroundHover
	case StateFocused:
		return s.BackgroundFocused
	}
	return s.Background
}

func foreground(s *theme.Style, b *WidgetBase) theme.Color {
	if !b.enabled {
		return s.ForegroundDisabled
	}
	return s.Foreground
}

// drawFrame fills the widget's rectangle and strokes its border.
func drawFrame(dst render.Surface, t render.Transform, b *WidgetBase, s *theme.Style) {
	r := t.Rect(geom.Rect(geom.Vec2{}, b.resolvedSize))
	if bg := background(s, b); bg.Alpha() > 0 {
		dst.FillRect(r, t.Color(bg))
	}
	if s.BorderWidth > 0 {
		border := s.Border
		if b.focused {
			border = s.BorderFocused
		}
		dst.StrokeRect(r, s.BorderWidth, t.Color(border))
	}
}

// drawCenteredText draws one line of text centered in the widget.
func drawCenteredText(dst render.Surface, t render.Transform, b *WidgetBase, text string, c theme.Color) {
	if text == "" {
		return
	}
	face := b.Font()
	w := theme.MeasureString(face, text)
	h := theme.LineHeight(face)
	at := geom.V2((b.resolvedSize.X-w)/2, (b.resolvedSize.Y-h)/2)
	dst.DrawText(text, t.Point(at), face, t.Color(c))
}
