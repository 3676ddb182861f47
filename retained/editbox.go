package retained

import (
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/agiangrant/panes/geom"
	"github.com/agiangrant/panes/render"
	"github.com/agiangrant/panes/theme"
)

// caretBlink is how long the caret stays visible or hidden.
const caretBlink = 500 * time.Millisecond

// EditBox is a single-line text field.
//
// Signals: text-changed carries the new text after every edit;
// return-key-pressed carries the text when Enter is pressed.
type EditBox struct {
	Clickable

	text         []rune
	caret        int
	defaultText  string
	maxChars     int
	passwordChar rune
	readOnly     bool

	blink        time.Duration
	caretVisible bool
}

// NewEditBox creates an empty 160x24 edit box.
func NewEditBox() *EditBox {
	e := &EditBox{}
	e.Init(e, "EditBox")
	e.focusable = true
	e.WidgetBase.SetSize(160, 24)
	return e
}

// Clone implements Widget.
func (e *EditBox) Clone() Widget {
	out := &EditBox{
		text:         slices.Clone(e.text),
		caret:        e.caret,
		defaultText:  e.defaultText,
		maxChars:     e.maxChars,
		passwordChar: e.passwordChar,
		readOnly:     e.readOnly,
	}
	out.WidgetBase = e.cloneBase(out)
	return out
}

// Text returns the current contents.
func (e *EditBox) Text() string { return string(e.text) }

// SetText replaces the contents, truncated to the character limit, and moves
// the caret to the end.
func (e *EditBox) SetText(text string) {
	r := []rune(text)
	if e.maxChars > 0 && len(r) > e.maxChars {
		r = r[:e.maxChars]
	}
	e.text = r
	e.caret = len(r)
	e.emit(SignalTextChanged, string(r))
}

func (e *EditBox) DefaultText() string     { return e.defaultText }
func (e *EditBox) SetDefaultText(t string) { e.defaultText = t }
func (e *EditBox) MaxChars() int           { return e.maxChars }
func (e *EditBox) PasswordChar() rune      { return e.passwordChar }
func (e *EditBox) SetPasswordChar(r rune)  { e.passwordChar = r }
func (e *EditBox) ReadOnly() bool          { return e.readOnly }
func (e *EditBox) SetReadOnly(ro bool)     { e.readOnly = ro }
func (e *EditBox) Caret() int              { return e.caret }

// SetMaxChars limits the number of characters; 0 means no limit. Existing
// text beyond the limit is cut.
func (e *EditBox) SetMaxChars(n int) {
	e.maxChars = max(n, 0)
	if e.maxChars > 0 && len(e.text) > e.maxChars {
		e.SetText(string(e.text[:e.maxChars]))
	}
}

// SetCaret moves the caret, clamped to the text.
func (e *EditBox) SetCaret(i int) {
	e.caret = min(max(i, 0), len(e.text))
	e.restartBlink()
}

// CaretVisible reports the blink phase.
func (e *EditBox) CaretVisible() bool { return e.caretVisible }

func (e *EditBox) restartBlink() {
	e.blink = 0
	e.caretVisible = e.focused
}

// displayText is what is drawn: the text, or password characters.
func (e *EditBox) displayText() string {
	if e.passwordChar == 0 {
		return string(e.text)
	}
	return strings.Repeat(string(e.passwordChar), len(e.text))
}

// ----------------------------------------------------------------------------
// Input
// ----------------------------------------------------------------------------

// OnTextInput implements TextHandler.
func (e *EditBox) OnTextInput(r rune) bool {
	if e.readOnly || !unicode.IsPrint(r) {
		return false
	}
	if e.maxChars > 0 && len(e.text) >= e.maxChars {
		return true
	}
	e.text = slices.Insert(e.text, e.caret, r)
	e.caret++
	e.restartBlink()
	e.emit(SignalTextChanged, string(e.text))
	return true
}

// OnKey implements KeyHandler. The focus key is left to the container.
func (e *EditBox) OnKey(ev KeyDown) bool {
	switch ev.Key {
	case KeyBackspace:
		if e.readOnly || e.caret == 0 {
			return true
		}
		e.text = slices.Delete(e.text, e.caret-1, e.caret)
		e.caret--
		e.restartBlink()
		e.emit(SignalTextChanged, string(e.text))
	case KeyDelete:
		if e.readOnly || e.caret >= len(e.text) {
			return true
		}
		e.text = slices.Delete(e.text, e.caret, e.caret+1)
		e.restartBlink()
		e.emit(SignalTextChanged, string(e.text))
	case KeyArrowLeft:
		e.SetCaret(e.caret - 1)
	case KeyArrowRight:
		e.SetCaret(e.caret + 1)
	case KeyHome:
		e.SetCaret(0)
	case KeyEnd:
		e.SetCaret(len(e.text))
	case KeyEnter:
		e.emit(SignalReturnKeyPressed, string(e.text))
	default:
		return false
	}
	return true
}

// OnMouseDown implements MouseHandler; it also places the caret.
func (e *EditBox) OnMouseDown(p geom.Vec2, button MouseButton) {
	e.Clickable.OnMouseDown(p, button)
	e.SetCaret(e.caretAt(p.X - e.textLeft()))
}

// caretAt returns the caret index closest to x pixels into the text.
func (e *EditBox) caretAt(x float32) int {
	face := e.Font()
	shown := []rune(e.displayText())
	prev := float32(0)
	for i := range shown {
		w := theme.MeasureString(face, string(shown[:i+1]))
		if x < (prev+w)/2 {
			return i
		}
		prev = w
	}
	return len(shown)
}

func (e *EditBox) textLeft() float32 {
	st := e.Style()
	return st.BorderWidth + st.Padding
}

// OnFocus implements FocusHandler.
func (e *EditBox) OnFocus() { e.restartBlink() }

// OnUnfocus implements FocusHandler.
func (e *EditBox) OnUnfocus() { e.caretVisible = false }

// Update implements Updater.
func (e *EditBox) Update(dt time.Duration) {
	if !e.focused {
		return
	}
	e.blink += dt
	for e.blink >= caretBlink {
		e.blink -= caretBlink
		e.caretVisible = !e.caretVisible
	}
}

// ----------------------------------------------------------------------------
// Drawing and persistence
// ----------------------------------------------------------------------------

// Draw implements Drawable.
func (e *EditBox) Draw(s render.Surface, t render.Transform) {
	st := e.Style()
	drawFrame(s, t, &e.WidgetBase, st)

	face := e.Font()
	left := e.textLeft()
	top := (e.resolvedSize.Y - theme.LineHeight(face)) / 2
	shown := e.displayText()
	switch {
	case shown != "":
		s.DrawText(shown, t.Point(geom.V2(left, top)), face, t.Color(foreground(st, &e.WidgetBase)))
	case e.defaultText != "":
		s.DrawText(e.defaultText, t.Point(geom.V2(left, top)), face, t.Color(st.ForegroundDisabled))
	}

	if e.focused && e.caretVisible {
		x := left + theme.MeasureString(face, string([]rune(shown)[:e.caret]))
		caret := geom.Rect(geom.V2(x, top), geom.V2(1, theme.LineHeight(face)))
		s.FillRect(t.Rect(caret), t.Color(st.Foreground))
	}
}

// SaveProperties implements PropertySaver.
func (e *EditBox) SaveProperties(n *Node) {
	n.Set("text", string(e.text))
	if e.defaultText != "" {
		n.Set("default_text", e.defaultText)
	}
	if e.maxChars > 0 {
		n.Set("max_chars", strconv.Itoa(e.maxChars))
	}
	if e.passwordChar != 0 {
		n.Set("password_char", string(e.passwordChar))
	}
	if e.readOnly {
		n.Set("read_only", "true")
	}
}

// LoadProperty implements PropertyLoader.
func (e *EditBox) LoadProperty(key, value string) (bool, error) {
	switch key {
	case "text":
		e.text = []rune(value)
		e.caret = len(e.text)
	case "default_text":
		e.defaultText = value
	case "max_chars":
		n, err := parseInt(value)
		if err != nil {
			return true, err
		}
		e.SetMaxChars(n)
	case "password_char":
		r := []rune(value)
		if len(r) > 1 {
			return true, ErrInvalidProperty
		}
		e.passwordChar = 0
		if len(r) == 1 {
			e.passwordChar = r[0]
		}
	case "read_only":
		v, err := parseBool(value)
		if err != nil {
			return true, err
		}
		e.readOnly = v
	default:
		return false, nil
	}
	return true, nil
}
