package retained

import (
	"github.com/agiangrant/panes/geom"
	"github.com/agiangrant/panes/layout"
	"github.com/agiangrant/panes/render"
	"github.com/agiangrant/panes/theme"
)

// Button is a focusable clickable with a text caption. It emits pressed,
// carrying the caption, when clicked or when Enter or Space is pressed while
// it has focus.
type Button struct {
	Clickable
	text     string
	autoSize bool
}

// NewButton creates a button that sizes itself to its caption until a size
// is set explicitly.
func NewButton(text string) *Button {
	b := &Button{text: text, autoSize: true}
	b.Init(b, "Button")
	b.focusable = true
	b.fit()
	return b
}

// Clone implements Widget.
func (b *Button) Clone() Widget {
	out := &Button{text: b.text, autoSize: b.autoSize}
	out.WidgetBase = b.cloneBase(out)
	return out
}

func (b *Button) Text() string { return b.text }

// SetText changes the caption.
func (b *Button) SetText(text string) {
	b.text = text
	b.fit()
}

// SetSize gives the button a fixed size and stops auto sizing.
func (b *Button) SetSize(w, h float32) {
	b.SetSizeLayout(layout.Fixed(w, h))
}

// SetSizeLayout sets the size expressions and stops auto sizing.
func (b *Button) SetSizeLayout(l layout.Layout2d) {
	b.autoSize = false
	b.WidgetBase.SetSizeLayout(l)
}

// SetAutoSize makes the button follow its caption and font.
func (b *Button) SetAutoSize(auto bool) {
	b.autoSize = auto
	b.fit()
}

func (b *Button) fit() {
	if !b.autoSize {
		return
	}
	face := b.Font()
	pad := b.Style().Padding
	lh := theme.LineHeight(face)
	b.WidgetBase.SetSize(theme.MeasureString(face, b.text)+2*pad+lh, lh+4*pad)
}

// OnAttach implements Attacher.
func (b *Button) OnAttach(*Container) { b.fit() }

// OnFontChanged implements FontObserver.
func (b *Button) OnFontChanged() { b.fit() }

// OnMouseUp implements MouseHandler.
func (b *Button) OnMouseUp(p geom.Vec2, button MouseButton) {
	if b.release(p, button) {
		b.emit(SignalPressed, b.text)
	}
}

// OnKey implements KeyHandler.
func (b *Button) OnKey(ev KeyDown) bool {
	switch ev.Key {
	case KeyEnter, KeySpace:
		b.emit(SignalPressed, b.text)
		return true
	}
	return false
}

// Draw implements Drawable.
func (b *Button) Draw(s render.Surface, t render.Transform) {
	st := b.Style()
	drawFrame(s, t, &b.WidgetBase, st)
	drawCenteredText(s, t, &b.WidgetBase, b.text, foreground(st, &b.WidgetBase))
}

// SaveProperties implements PropertySaver.
func (b *Button) SaveProperties(n *Node) {
	n.Set("text", b.text)
	if b.autoSize {
		n.Set("auto_size", "true")
	}
}

// LoadProperty implements PropertyLoader.
func (b *Button) LoadProperty(key, value string) (bool, error) {
	switch key {
	case "text":
		b.SetText(value)
	case "auto_size":
		v, err := parseBool(value)
		if err != nil {
			return true, err
		}
		b.SetAutoSize(v)
	default:
		return false, nil
	}
	return true, nil
}
