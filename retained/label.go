package retained

import (
	"strings"

	"github.com/agiangrant/panes/geom"
	"github.com/agiangrant/panes/layout"
	"github.com/agiangrant/panes/render"
	"github.com/agiangrant/panes/theme"
)

// Label displays one or more lines of text. It sizes itself to the text and
// the inherited font until a size is set explicitly.
type Label struct {
	WidgetBase
	text     string
	autoSize bool
}

// NewLabel creates an auto-sized label.
func NewLabel(text string) *Label {
	l := &Label{text: text, autoSize: true}
	l.Init(l, "Label")
	l.fit()
	return l
}

// Clone implements Widget.
func (l *Label) Clone() Widget {
	out := &Label{text: l.text, autoSize: l.autoSize}
	out.WidgetBase = l.cloneBase(out)
	return out
}

func (l *Label) Text() string   { return l.text }
func (l *Label) AutoSize() bool { return l.autoSize }

// SetText changes the text; "\n" starts a new line.
func (l *Label) SetText(text string) {
	l.text = text
	l.fit()
}

// SetSize gives the label a fixed size and stops auto sizing.
func (l *Label) SetSize(w, h float32) {
	l.SetSizeLayout(layout.Fixed(w, h))
}

// SetSizeLayout sets the size expressions and stops auto sizing.
func (l *Label) SetSizeLayout(s layout.Layout2d) {
	l.autoSize = false
	l.WidgetBase.SetSizeLayout(s)
}

// SetAutoSize makes the label follow its text and font.
func (l *Label) SetAutoSize(auto bool) {
	l.autoSize = auto
	l.fit()
}

func (l *Label) lines() []string {
	return strings.Split(l.text, "\n")
}

func (l *Label) fit() {
	if !l.autoSize {
		return
	}
	face := l.Font()
	pad := l.Style().Padding
	var w float32
	lines := l.lines()
	for _, line := range lines {
		w = max(w, theme.MeasureString(face, line))
	}
	h := theme.LineHeight(face) * float32(len(lines))
	l.WidgetBase.SetSize(w+2*pad, h+2*pad)
}

// OnAttach implements Attacher.
func (l *Label) OnAttach(*Container) { l.fit() }

// OnFontChanged implements FontObserver.
func (l *Label) OnFontChanged() { l.fit() }

// Draw implements Drawable.
func (l *Label) Draw(s render.Surface, t render.Transform) {
	st := l.Style()
	if st.Background.Alpha() > 0 {
		s.FillRect(t.Rect(geom.Rect(geom.Vec2{}, l.resolvedSize)), t.Color(st.Background))
	}
	face := l.Font()
	lh := theme.LineHeight(face)
	fg := t.Color(foreground(st, &l.WidgetBase))
	for i, line := range l.lines() {
		if line == "" {
			continue
		}
		at := geom.V2(st.Padding, st.Padding+float32(i)*lh)
		s.DrawText(line, t.Point(at), face, fg)
	}
}

// SaveProperties implements PropertySaver.
func (l *Label) SaveProperties(n *Node) {
	n.Set("text", l.text)
	if l.autoSize {
		n.Set("auto_size", "true")
	}
}

// LoadProperty implements PropertyLoader.
func (l *Label) LoadProperty(key, value string) (bool, error) {
	switch key {
	case "text":
		l.SetText(value)
	case "auto_size":
		v, err := parseBool(value)
		if err != nil {
			return true, err
		}
		l.SetAutoSize(v)
	default:
		return false, nil
	}
	return true, nil
}
