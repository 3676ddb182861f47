package retained

import (
	"strconv"

	"github.com/agiangrant/panes/geom"
	"github.com/agiangrant/panes/render"
	"github.com/agiangrant/panes/theme"
)

// CheckBox toggles between checked and unchecked on click, Space or Enter.
// Its size is the box; the text is drawn to the right of it.
//
// Signals: checked, unchecked, and value-changed carrying the new state.
type CheckBox struct {
	Clickable
	text    string
	checked bool
	radio   bool
}

// NewCheckBox creates an unchecked 24x24 check box.
func NewCheckBox(text string) *CheckBox {
	c := &CheckBox{text: text}
	c.initCheckBox(c, "CheckBox")
	return c
}

func (c *CheckBox) initCheckBox(self Widget, kind string) {
	c.Init(self, kind)
	c.focusable = true
	c.WidgetBase.SetSize(24, 24)
}

// Clone implements Widget.
func (c *CheckBox) Clone() Widget {
	out := &CheckBox{text: c.text, checked: c.checked}
	out.WidgetBase = c.cloneBase(out)
	return out
}

func (c *CheckBox) Text() string     { return c.text }
func (c *CheckBox) SetText(t string) { c.text = t }
func (c *CheckBox) Checked() bool    { return c.checked }

// SetChecked changes the state and emits the matching signals. Checking a
// radio button first unchecks its siblings.
func (c *CheckBox) SetChecked(checked bool) {
	if checked == c.checked {
		return
	}
	if checked && c.radio && c.parent != nil {
		c.parent.UncheckRadioButtons()
	}
	c.checked = checked
	if checked {
		c.emit(SignalChecked, true)
	} else {
		c.emit(SignalUnchecked, false)
	}
	c.emit(SignalValueChanged, checked)
}

// activate is a click or key press. Radio buttons only ever check.
func (c *CheckBox) activate() {
	if c.radio {
		c.SetChecked(true)
		return
	}
	c.SetChecked(!c.checked)
}

// OnMouseUp implements MouseHandler.
func (c *CheckBox) OnMouseUp(p geom.Vec2, button MouseButton) {
	if c.release(p, button) {
		c.activate()
	}
}

// OnKey implements KeyHandler.
func (c *CheckBox) OnKey(ev KeyDown) bool {
	switch ev.Key {
	case KeySpace, KeyEnter:
		c.activate()
		return true
	}
	return false
}

// Draw implements Drawable.
func (c *CheckBox) Draw(s render.Surface, t render.Transform) {
	st := c.Style()
	drawFrame(s, t, &c.WidgetBase, st)
	fg := foreground(st, &c.WidgetBase)
	if c.checked {
		inset := max(st.Padding, 1) + st.BorderWidth
		mark := geom.Rect(geom.V2(inset, inset), c.resolvedSize.Sub(geom.V2(2*inset, 2*inset)))
		if !mark.Empty() {
			s.FillRect(t.Rect(mark), t.Color(fg))
		}
	}
	if c.text != "" {
		face := c.Font()
		at := geom.V2(c.resolvedSize.X+st.Padding*2, (c.resolvedSize.Y-theme.LineHeight(face))/2)
		s.DrawText(c.text, t.Point(at), face, t.Color(fg))
	}
}

// SaveProperties implements PropertySaver.
func (c *CheckBox) SaveProperties(n *Node) {
	n.Set("text", c.text)
	n.Set("checked", strconv.FormatBool(c.checked))
}

// LoadProperty implements PropertyLoader.
func (c *CheckBox) LoadProperty(key, value string) (bool, error) {
	switch key {
	case "text":
		c.text = value
	case "checked":
		v, err := parseBool(value)
		if err != nil {
			return true, err
		}
		c.checked = v
	default:
		return false, nil
	}
	return true, nil
}

// ============================================================================
// RadioButton
// ============================================================================

// RadioButton is a check box that unchecks the other radio buttons in its
// container when it becomes checked. Clicking a checked radio button keeps
// it checked.
type RadioButton struct {
	CheckBox
}

// NewRadioButton creates an unchecked radio button.
func NewRadioButton(text string) *RadioButton {
	r := &RadioButton{}
	r.text = text
	r.radio = true
	r.initCheckBox(r, "RadioButton")
	return r
}

// Clone implements Widget.
func (r *RadioButton) Clone() Widget {
	out := &RadioButton{}
	out.text = r.text
	out.checked = r.checked
	out.radio = true
	out.WidgetBase = r.cloneBase(out)
	return out
}
