package retained

import (
	"fmt"

	"github.com/agiangrant/panes/geom"
	"github.com/agiangrant/panes/layout"
	"github.com/agiangrant/panes/render"
	"github.com/agiangrant/panes/theme"
)

// Panel is a clickable container with a background and an optional border.
// Children are laid out inside the border.
type Panel struct {
	Clickable
	contents *Container

	background    theme.Color
	hasBackground bool
}

// NewPanel creates a panel that fills its parent.
func NewPanel() *Panel {
	p := &Panel{}
	p.initPanel(p, "Panel")
	return p
}

func (p *Panel) initPanel(self Composite, kind string) {
	p.Init(self, kind)
	p.contents = NewContainer(self)
	p.SetSizeLayout(layout.Relative(100, 100))
}

// Clone implements Widget.
func (p *Panel) Clone() Widget {
	out := &Panel{background: p.background, hasBackground: p.hasBackground}
	out.WidgetBase = p.cloneBase(out)
	out.contents = p.contents.cloneFor(out)
	return out
}

// Contents implements Composite.
func (p *Panel) Contents() *Container { return p.contents }

// Add adds a child; shorthand for Contents().Add.
func (p *Panel) Add(w Widget, name ...string) { p.contents.Add(w, name...) }

// Get looks a child up by name; shorthand for Contents().Get.
func (p *Panel) Get(name string) Widget { return p.contents.Get(name) }

// BackgroundColor returns the panel's own background, or the theme's.
func (p *Panel) BackgroundColor() theme.Color {
	if p.hasBackground {
		return p.background
	}
	return p.Style().Background
}

// SetBackgroundColor overrides the theme's background.
func (p *Panel) SetBackgroundColor(c theme.Color) {
	p.background = c
	p.hasBackground = true
}

func (p *Panel) borderWidth() float32 {
	return p.Style().BorderWidth
}

// ContentSize implements ContentSizer.
func (p *Panel) ContentSize() geom.Vec2 {
	bw := p.borderWidth()
	return geom.V2(max(p.resolvedSize.X-2*bw, 0), max(p.resolvedSize.Y-2*bw, 0))
}

// Arrange implements Arranger.
func (p *Panel) Arrange() {
	bw := p.borderWidth()
	p.contents.SetContentOffset(geom.V2(bw, bw))
}

// Draw implements Drawable.
func (p *Panel) Draw(s render.Surface, t render.Transform) {
	st := p.Style()
	r := t.Rect(geom.Rect(geom.Vec2{}, p.resolvedSize))
	if bg := p.BackgroundColor(); bg.Alpha() > 0 {
		s.FillRect(r, t.Color(bg))
	}
	if st.BorderWidth > 0 {
		s.StrokeRect(r, st.BorderWidth, t.Color(st.Border))
	}
}

// SaveProperties implements PropertySaver.
func (p *Panel) SaveProperties(n *Node) {
	if p.hasBackground {
		n.Set("background_color", p.background.String())
	}
}

// LoadProperty implements PropertyLoader.
func (p *Panel) LoadProperty(key, value string) (bool, error) {
	if key != "background_color" {
		return false, nil
	}
	c, err := theme.ParseColor(value)
	if err != nil {
		return true, fmt.Errorf("%w: %w", ErrInvalidProperty, err)
	}
	p.SetBackgroundColor(c)
	return true, nil
}
