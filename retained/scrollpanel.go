package retained

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"

	"github.com/agiangrant/panes/geom"
	"github.com/agiangrant/panes/render"
)

const scrollbarWidth = 6

// ScrollPanel is a panel whose contents can be larger than the panel and are
// scrolled with the mouse wheel. The scrollable area is the explicit content
// size, or else the extent of the children.
type ScrollPanel struct {
	Panel
	contentSize geom.Vec2
	scroll      geom.Vec2
	scrollStep  float32
}

// NewScrollPanel creates a scroll panel that fills its parent.
func NewScrollPanel() *ScrollPanel {
	s := &ScrollPanel{scrollStep: 20}
	s.initPanel(s, "ScrollPanel")
	return s
}

// Clone implements Widget.
func (s *ScrollPanel) Clone() Widget {
	out := &ScrollPanel{
		contentSize: s.contentSize,
		scroll:      s.scroll,
		scrollStep:  s.scrollStep,
	}
	out.background = s.background
	out.hasBackground = s.hasBackground
	out.WidgetBase = s.cloneBase(out)
	out.contents = s.contents.cloneFor(out)
	return out
}

// ContentSize implements ContentSizer: children resolve percentages against
// the explicit content size when one is set, else against the viewport.
func (s *ScrollPanel) ContentSize() geom.Vec2 {
	if s.contentSize != (geom.Vec2{}) {
		return s.contentSize
	}
	return s.viewport()
}

// SetContentSize fixes the scrollable area; a zero size derives it from the
// children.
func (s *ScrollPanel) SetContentSize(size geom.Vec2) {
	s.contentSize = size
	s.contents.UpdateLayout()
	s.SetScroll(s.scroll)
}

// ScrollStep is the number of pixels one wheel step scrolls.
func (s *ScrollPanel) ScrollStep() float32 { return s.scrollStep }

func (s *ScrollPanel) SetScrollStep(step float32) { s.scrollStep = max(step, 0) }

// Scroll returns the current scroll position.
func (s *ScrollPanel) Scroll() geom.Vec2 { return s.scroll }

// SetScroll scrolls to pos, clamped to the scrollable range.
func (s *ScrollPanel) SetScroll(pos geom.Vec2) {
	limit := s.maxScroll()
	s.scroll = geom.V2(
		math32.Max(0, math32.Min(pos.X, limit.X)),
		math32.Max(0, math32.Min(pos.Y, limit.Y)),
	)
	s.applyOffset()
}

// viewport is the visible area inside the border.
func (s *ScrollPanel) viewport() geom.Vec2 {
	return s.Panel.ContentSize()
}

// extent is the size of everything that can be scrolled into view.
func (s *ScrollPanel) extent() geom.Vec2 {
	if s.contentSize != (geom.Vec2{}) {
		return s.contentSize
	}
	var ext geom.Vec2
	for _, w := range s.contents.widgets {
		b := w.Base()
		if !b.visible {
			continue
		}
		ext.X = math32.Max(ext.X, b.Bounds().Right())
		ext.Y = math32.Max(ext.Y, b.Bounds().Bottom())
	}
	return ext
}

func (s *ScrollPanel) maxScroll() geom.Vec2 {
	ext, view := s.extent(), s.viewport()
	return geom.V2(math32.Max(ext.X-view.X, 0), math32.Max(ext.Y-view.Y, 0))
}

func (s *ScrollPanel) applyOffset() {
	bw := s.borderWidth()
	s.contents.SetContentOffset(geom.V2(bw-s.scroll.X, bw-s.scroll.Y))
}

// Arrange implements Arranger.
func (s *ScrollPanel) Arrange() {
	s.SetScroll(s.scroll)
}

// OnMouseWheel implements WheelHandler. It reports false at either end so
// that an enclosing scroll panel can take over.
func (s *ScrollPanel) OnMouseWheel(delta float32, p geom.Vec2) bool {
	old := s.scroll
	s.SetScroll(geom.V2(s.scroll.X, s.scroll.Y-delta*s.scrollStep))
	return s.scroll != old
}

// Draw implements Drawable.
func (s *ScrollPanel) Draw(dst render.Surface, t render.Transform) {
	s.Panel.Draw(dst, t)

	ext, view := s.extent(), s.viewport()
	if ext.Y <= view.Y || ext.Y == 0 {
		return
	}
	bw := s.borderWidth()
	h := view.Y * view.Y / ext.Y
	y := bw + s.scroll.Y/ext.Y*view.Y
	thumb := geom.Rect(geom.V2(bw+view.X-scrollbarWidth, y), geom.V2(scrollbarWidth, h))
	dst.FillRect(t.Rect(thumb), t.Color(s.Style().Border))
}

// SaveProperties implements PropertySaver.
func (s *ScrollPanel) SaveProperties(n *Node) {
	s.Panel.SaveProperties(n)
	if s.contentSize != (geom.Vec2{}) {
		n.Set("content_size", formatFloat(s.contentSize.X)+", "+formatFloat(s.contentSize.Y))
	}
	n.Set("scroll_step", formatFloat(s.scrollStep))
}

// LoadProperty implements PropertyLoader.
func (s *ScrollPanel) LoadProperty(key, value string) (bool, error) {
	switch key {
	case "content_size":
		x, y, ok := strings.Cut(value, ",")
		if !ok {
			return true, fmt.Errorf("%w: content size %q", ErrInvalidProperty, value)
		}
		w, err := parseFloat(x)
		if err != nil {
			return true, err
		}
		h, err := parseFloat(y)
		if err != nil {
			return true, err
		}
		s.SetContentSize(geom.V2(w, h))
	case "scroll_step":
		v, err := parseFloat(value)
		if err != nil {
			return true, err
		}
		s.SetScrollStep(v)
	default:
		return s.Panel.LoadProperty(key, value)
	}
	return true, nil
}
