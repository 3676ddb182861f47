package retained

import (
	"fmt"
	"strings"

	"github.com/agiangrant/panes/geom"
	"github.com/agiangrant/panes/layout"
)

// Orientation is the direction a BoxLayout stacks its children in.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// BoxLayout stacks its children side by side (Horizontal) or top to bottom
// (Vertical). Each child gets a share of the length proportional to its
// ratio, default 1, and the full breadth. The layout overwrites the
// children's own position and size expressions.
type BoxLayout struct {
	WidgetBase
	contents    *Container
	orientation Orientation
	spacing     float32
	ratios      map[Widget]float32
}

// NewHorizontalLayout creates a left-to-right layout filling its parent.
func NewHorizontalLayout() *BoxLayout {
	return newBoxLayout(Horizontal, "HorizontalLayout")
}

// NewVerticalLayout creates a top-to-bottom layout filling its parent.
func NewVerticalLayout() *BoxLayout {
	return newBoxLayout(Vertical, "VerticalLayout")
}

func newBoxLayout(o Orientation, kind string) *BoxLayout {
	l := &BoxLayout{orientation: o, ratios: make(map[Widget]float32)}
	l.Init(l, kind)
	l.contents = NewContainer(l)
	l.SetSizeLayout(layout.Relative(100, 100))
	return l
}

// Clone implements Widget.
func (l *BoxLayout) Clone() Widget {
	out := &BoxLayout{
		orientation: l.orientation,
		spacing:     l.spacing,
		ratios:      make(map[Widget]float32, len(l.ratios)),
	}
	out.WidgetBase = l.cloneBase(out)
	out.contents = l.contents.cloneFor(out)
	for i, w := range l.contents.widgets {
		if r, ok := l.ratios[w]; ok {
			out.ratios[out.contents.widgets[i]] = r
		}
	}
	return out
}

// Contents implements Composite.
func (l *BoxLayout) Contents() *Container { return l.contents }

func (l *BoxLayout) Orientation() Orientation { return l.orientation }
func (l *BoxLayout) Spacing() float32         { return l.spacing }

// SetSpacing sets the gap between neighbouring children.
func (l *BoxLayout) SetSpacing(s float32) {
	l.spacing = max(s, 0)
	l.contents.UpdateLayout()
}

// Add appends a child with ratio 1.
func (l *BoxLayout) Add(w Widget, name ...string) {
	l.AddWithRatio(w, 1, name...)
}

// AddWithRatio appends a child with the given ratio.
func (l *BoxLayout) AddWithRatio(w Widget, ratio float32, name ...string) {
	l.ratios[w] = max(ratio, 0)
	l.contents.Add(w, name...)
}

// Get looks a child up by name; shorthand for Contents().Get.
func (l *BoxLayout) Get(name string) Widget { return l.contents.Get(name) }

// AddSpace appends an empty gap with the given ratio.
func (l *BoxLayout) AddSpace(ratio float32) {
	l.AddWithRatio(NewSpacer(), ratio)
}

// Ratio returns a child's ratio; children added through Contents have 1.
func (l *BoxLayout) Ratio(w Widget) float32 {
	if r, ok := l.ratios[w]; ok {
		return r
	}
	return 1
}

// SetRatio changes a child's ratio. It reports false when w is not a child.
func (l *BoxLayout) SetRatio(w Widget, ratio float32) bool {
	if !l.contents.owns(w) {
		return false
	}
	l.ratios[w] = max(ratio, 0)
	l.contents.UpdateLayout()
	return true
}

// Arrange implements Arranger.
func (l *BoxLayout) Arrange() {
	for w := range l.ratios {
		if !l.contents.owns(w) {
			delete(l.ratios, w)
		}
	}

	children := l.contents.widgets
	if len(children) == 0 {
		return
	}
	var total float32
	for _, w := range children {
		total += l.Ratio(w)
	}
	size := l.contents.Size()
	length, breadth := size.X, size.Y
	if l.orientation == Vertical {
		length, breadth = size.Y, size.X
	}
	avail := max(length-l.spacing*float32(len(children)-1), 0)

	var at float32
	for _, w := range children {
		var share float32
		if total > 0 {
			share = avail * l.Ratio(w) / total
		}
		b := w.Base()
		if l.orientation == Vertical {
			b.pos = layout.Fixed(0, at)
			b.size = layout.Fixed(breadth, share)
		} else {
			b.pos = layout.Fixed(at, 0)
			b.size = layout.Fixed(share, breadth)
		}
		at += share + l.spacing
	}
}

// SaveProperties implements PropertySaver.
func (l *BoxLayout) SaveProperties(n *Node) {
	n.Set("spacing", formatFloat(l.spacing))
	ratios := make([]string, len(l.contents.widgets))
	for i, w := range l.contents.widgets {
		ratios[i] = formatFloat(l.Ratio(w))
	}
	n.Set("ratios", strings.Join(ratios, ", "))
}

// LoadProperty implements PropertyLoader. Ratios apply to the children in
// z-order, so they must be loaded after the children.
func (l *BoxLayout) LoadProperty(key, value string) (bool, error) {
	switch key {
	case "spacing":
		v, err := parseFloat(value)
		if err != nil {
			return true, err
		}
		l.SetSpacing(v)
	case "ratios":
		if strings.TrimSpace(value) == "" {
			return true, nil
		}
		parts := strings.Split(value, ",")
		if len(parts) != len(l.contents.widgets) {
			return true, fmt.Errorf("%w: %d ratios for %d children", ErrInvalidProperty, len(parts), len(l.contents.widgets))
		}
		for i, part := range parts {
			v, err := parseFloat(part)
			if err != nil {
				return true, err
			}
			l.ratios[l.contents.widgets[i]] = max(v, 0)
		}
		l.contents.UpdateLayout()
	default:
		return false, nil
	}
	return true, nil
}

// ============================================================================
// Spacer
// ============================================================================

// Spacer is an empty widget that takes up room in a layout and lets mouse
// events fall through.
type Spacer struct {
	WidgetBase
}

// NewSpacer creates a spacer.
func NewSpacer() *Spacer {
	s := &Spacer{}
	s.Init(s, "Spacer")
	return s
}

// Clone implements Widget.
func (s *Spacer) Clone() Widget {
	out := &Spacer{}
	out.WidgetBase = s.cloneBase(out)
	return out
}

// HitTest implements HitTester.
func (s *Spacer) HitTest(geom.Vec2) bool { return false }
