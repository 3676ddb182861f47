// Package retained provides a retained-mode widget tree: widgets that keep
// their own layout, state and signal bindings, containers that own and order
// them, and the router that delivers host input events through the tree.
//
// Everything in this package runs on the host's thread. A Gui is driven by
// calling HandleEvent for every input event and Update then Draw once per
// frame; there are no goroutines and no locks.
package retained

import (
	"sync/atomic"
	"time"

	"golang.org/x/image/font"

	"github.com/agiangrant/panes/geom"
	"github.com/agiangrant/panes/layout"
	"github.com/agiangrant/panes/render"
	"github.com/agiangrant/panes/theme"
)

// WidgetID uniquely identifies a widget instance. Clones get a fresh ID.
type WidgetID uint64

var nextWidgetID atomic.Uint64

func newWidgetID() WidgetID {
	return WidgetID(nextWidgetID.Add(1))
}

// Widget is implemented by every element of the tree. Concrete widgets embed
// WidgetBase and opt into behaviour by implementing the capability
// interfaces below; the router checks for them with type assertions.
type Widget interface {
	Base() *WidgetBase
	// Clone returns a deep copy with a new identity and no parent.
	Clone() Widget
}

// ============================================================================
// Capabilities
// ============================================================================

// Drawable widgets paint themselves. The transform's origin is the widget's
// top-left corner.
type Drawable interface {
	Draw(s render.Surface, t render.Transform)
}

// HitTester decides whether a point, given in the parent's content space,
// is inside the widget's interactive area. WidgetBase provides the
// rectangular default.
type HitTester interface {
	HitTest(p geom.Vec2) bool
}

// MouseHandler receives button and motion events. Points are local to the
// widget's top-left corner and may lie outside it while the mouse is
// captured.
type MouseHandler interface {
	OnMouseDown(p geom.Vec2, button MouseButton)
	OnMouseUp(p geom.Vec2, button MouseButton)
	OnMouseMove(p geom.Vec2)
}

// WheelHandler receives scroll steps and reports whether it used them.
type WheelHandler interface {
	OnMouseWheel(delta float32, p geom.Vec2) bool
}

// KeyHandler receives key presses while focused and reports whether the key
// was consumed.
type KeyHandler interface {
	OnKey(ev KeyDown) bool
}

// TextHandler receives typed characters while focused.
type TextHandler interface {
	OnTextInput(r rune) bool
}

// FocusHandler is told when the widget gains or loses focus.
type FocusHandler interface {
	OnFocus()
	OnUnfocus()
}

// Updater is called once per frame with the elapsed time.
type Updater interface {
	Update(dt time.Duration)
}

// Attacher is called after the widget was added to a container, once font
// and theme can be resolved through it.
type Attacher interface {
	OnAttach(c *Container)
}

// Detacher is called after the widget was removed from a container.
type Detacher interface {
	OnDetach(c *Container)
}

// FontObserver is told when the inherited font changed.
type FontObserver interface {
	OnFontChanged()
}

// Composite widgets own a Container of children.
type Composite interface {
	Widget
	Contents() *Container
}

// ContentSizer composites give their children less room than their own size,
// for example inside a border.
type ContentSizer interface {
	ContentSize() geom.Vec2
}

// Arranger composites position their children themselves; Arrange runs at
// the start of every layout pass of the composite's contents.
type Arranger interface {
	Arrange()
}

// ============================================================================
// WidgetBase
// ============================================================================

// WidgetState is the visual interaction state.
type WidgetState uint8

const (
	StateNormal WidgetState = iota
	StateHovered
	StatePressed
	StateFocused
	StateFocusedHovered
)

func (s WidgetState) String() string {
	switch s {
	case StateHovered:
		return "hovered"
	case StatePressed:
		return "pressed"
	case StateFocused:
		return "focused"
	case StateFocusedHovered:
		return "focused+hovered"
	}
	return "normal"
}

// WidgetBase holds the state every widget shares: layout, flags, inherited
// resources and signals. Embed it and call Init from the constructor.
type WidgetBase struct {
	id   WidgetID
	self Widget
	kind string

	parent *Container

	pos  layout.Layout2d
	size layout.Layout2d

	// last resolved values
	position     geom.Vec2
	resolvedSize geom.Vec2

	visible   bool
	enabled   bool
	focusable bool
	opacity   float32

	hovered   bool
	mouseDown bool
	focused   bool

	// local overrides; nil means inherit from the parent container
	font  font.Face
	theme *theme.Theme

	signals Signals
}

// Init prepares the base. self is the concrete widget embedding it and kind
// its type name as used by persistence and themes ("Button", "Panel").
func (b *WidgetBase) Init(self Widget, kind string) {
	b.id = newWidgetID()
	b.self = self
	b.kind = kind
	b.pos = layout.Fixed(0, 0)
	b.size = layout.Fixed(0, 0)
	b.visible = true
	b.enabled = true
	b.opacity = 1
}

// Base implements Widget.
func (b *WidgetBase) Base() *WidgetBase { return b }

// cloneBase copies the configuration for a clone whose outer widget is self.
func (b *WidgetBase) cloneBase(self Widget) WidgetBase {
	c := *b
	c.id = newWidgetID()
	c.self = self
	c.parent = nil
	c.pos = b.pos.Clone()
	c.size = b.size.Clone()
	c.hovered = false
	c.mouseDown = false
	c.focused = false
	c.signals = b.signals.clone()
	return c
}

func (b *WidgetBase) ID() WidgetID        { return b.id }
func (b *WidgetBase) Kind() string        { return b.kind }
func (b *WidgetBase) Parent() *Container  { return b.parent }
func (b *WidgetBase) Signals() *Signals   { return &b.signals }
func (b *WidgetBase) Self() Widget        { return b.self }
func (b *WidgetBase) Visible() bool       { return b.visible }
func (b *WidgetBase) Enabled() bool       { return b.enabled }
func (b *WidgetBase) Focusable() bool     { return b.focusable }
func (b *WidgetBase) Focused() bool       { return b.focused }
func (b *WidgetBase) Hovered() bool       { return b.hovered }
func (b *WidgetBase) Pressed() bool       { return b.mouseDown }
func (b *WidgetBase) Opacity() float32    { return b.opacity }
func (b *WidgetBase) Position() geom.Vec2 { return b.position }
func (b *WidgetBase) Size() geom.Vec2     { return b.resolvedSize }

// Bounds returns the resolved rectangle in the parent's content space.
func (b *WidgetBase) Bounds() geom.Bounds {
	return geom.Rect(b.position, b.resolvedSize)
}

// Name returns the name the parent container knows this widget by.
func (b *WidgetBase) Name() string {
	if b.parent == nil {
		return ""
	}
	name, _ := b.parent.WidgetName(b.self)
	return name
}

// Bind registers a signal handler; see Signals.Bind.
func (b *WidgetBase) Bind(name string, fn Handler, args ...any) BindingID {
	return b.signals.Bind(name, fn, args...)
}

// State reports the visual state. A press that left the widget's bounds
// shows as normal, although the press itself is still pending.
func (b *WidgetBase) State() WidgetState {
	switch {
	case b.mouseDown && b.hovered:
		return StatePressed
	case b.focused && b.hovered:
		return StateFocusedHovered
	case b.focused:
		return StateFocused
	case b.hovered:
		return StateHovered
	}
	return StateNormal
}

// HitTest implements the rectangular default.
func (b *WidgetBase) HitTest(p geom.Vec2) bool {
	return b.Bounds().Contains(p)
}

// containsLocal tests a point relative to the widget's own origin.
func (b *WidgetBase) containsLocal(p geom.Vec2) bool {
	return geom.Bounds{Width: b.resolvedSize.X, Height: b.resolvedSize.Y}.Contains(p)
}

// ----------------------------------------------------------------------------
// Layout
// ----------------------------------------------------------------------------

// PositionLayout returns the position expressions.
func (b *WidgetBase) PositionLayout() layout.Layout2d { return b.pos }

// SizeLayout returns the size expressions.
func (b *WidgetBase) SizeLayout() layout.Layout2d { return b.size }

// SetPosition places the widget at fixed pixel coordinates.
func (b *WidgetBase) SetPosition(x, y float32) {
	b.SetPositionLayout(layout.Fixed(x, y))
}

// SetPositionLayout sets the position expressions and re-resolves.
func (b *WidgetBase) SetPositionLayout(l layout.Layout2d) {
	b.pos = l
	b.invalidate()
}

// SetSize gives the widget a fixed pixel size.
func (b *WidgetBase) SetSize(w, h float32) {
	b.SetSizeLayout(layout.Fixed(w, h))
}

// SetSizeLayout sets the size expressions and re-resolves.
func (b *WidgetBase) SetSizeLayout(l layout.Layout2d) {
	b.size = l
	b.invalidate()
}

// invalidate re-resolves after an expression changed. Attached widgets
// re-run their container's layout pass so that siblings referencing this
// widget pick up the new value.
func (b *WidgetBase) invalidate() {
	if b.parent == nil {
		b.resolve(nil, geom.Vec2{})
		return
	}
	if b.parent.layingOut {
		b.resolve(b.parent, b.parent.Size())
		return
	}
	b.parent.UpdateLayout()
}

// resolve evaluates the layout against the parent's size and emits change
// signals.
func (b *WidgetBase) resolve(r layout.Resolver, parent geom.Vec2) {
	pos := b.pos.Resolve(r, parent)
	size := b.size.Resolve(r, parent)
	size.X = max(size.X, 0)
	size.Y = max(size.Y, 0)

	posChanged := pos != b.position
	sizeChanged := size != b.resolvedSize
	b.position = pos
	b.resolvedSize = size

	if sizeChanged {
		b.emit(SignalSizeChanged, size)
	}
	if posChanged {
		b.emit(SignalPositionChanged, pos)
	}
}

// ----------------------------------------------------------------------------
// Flags
// ----------------------------------------------------------------------------

// SetVisible shows or hides the widget. Hidden widgets are not drawn, not
// hit-tested and lose focus.
func (b *WidgetBase) SetVisible(visible bool) {
	b.visible = visible
	if !visible {
		b.dropInteraction()
	}
}

// SetEnabled enables or disables input. Disabled widgets lose focus.
func (b *WidgetBase) SetEnabled(enabled bool) {
	b.enabled = enabled
	if !enabled {
		b.dropInteraction()
	}
}

// SetFocusable controls whether clicks and the focus key can focus the widget.
func (b *WidgetBase) SetFocusable(focusable bool) {
	b.focusable = focusable
	if !focusable && b.focused && b.parent != nil {
		b.parent.setFocused(nil)
		b.parent.releaseFocusPath()
	}
}

func (b *WidgetBase) dropInteraction() {
	if b.parent != nil {
		b.parent.forget(b.self)
	}
	b.mouseDown = false
}

// SetOpacity sets the widget's own opacity in [0, 1]. Drawn opacity is the
// product with every ancestor's.
func (b *WidgetBase) SetOpacity(o float32) {
	b.opacity = min(max(o, 0), 1)
}

// EffectiveOpacity multiplies the opacities of the widget and its ancestors.
func (b *WidgetBase) EffectiveOpacity() float32 {
	o := b.opacity
	for c := b.parent; c != nil; c = c.parentContainer() {
		o *= c.opacity
		if c.owner != nil {
			o *= c.owner.Base().opacity
		}
	}
	return o
}

// Focus asks the parent container to focus this widget.
func (b *WidgetBase) Focus() bool {
	if b.parent == nil {
		return false
	}
	return b.parent.Focus(b.self)
}

// ----------------------------------------------------------------------------
// Inherited resources
// ----------------------------------------------------------------------------

// Font returns the local font, or the one inherited from the parent.
func (b *WidgetBase) Font() font.Face {
	if b.font != nil {
		return b.font
	}
	if b.parent != nil {
		return b.parent.Font()
	}
	return theme.DefaultFont()
}

// SetFont overrides the inherited font; nil restores inheritance.
func (b *WidgetBase) SetFont(f font.Face) {
	b.font = f
	if o, ok := b.self.(FontObserver); ok {
		o.OnFontChanged()
	}
	if comp, ok := b.self.(Composite); ok {
		comp.Contents().notifyFontChanged()
	}
}

// Theme returns the local theme, or the one inherited from the parent.
func (b *WidgetBase) Theme() *theme.Theme {
	if b.theme != nil {
		return b.theme
	}
	if b.parent != nil {
		return b.parent.Theme()
	}
	return defaultTheme
}

// SetTheme overrides the inherited theme; nil restores inheritance.
func (b *WidgetBase) SetTheme(t *theme.Theme) {
	b.theme = t
}

// Style returns the theme entry for this widget's kind.
func (b *WidgetBase) Style() *theme.Style {
	return b.Theme().Style(b.kind)
}

var defaultTheme = theme.Default()

// ----------------------------------------------------------------------------
// Router hooks
// ----------------------------------------------------------------------------

// emit fires a signal. Unhandled notifications listed in the configuration's
// bubble set are posted to the parent container.
func (b *WidgetBase) emit(name string, value any) bool {
	if b.signals.Emit(Signal{Name: name, Widget: b.self, Value: value}) {
		return true
	}
	if b.parent != nil && b.parent.config().bubbles(name) {
		b.parent.post(Notification{
			Signal:     name,
			Widget:     b.self,
			WidgetName: b.Name(),
			Value:      value,
		})
	}
	return false
}

func (b *WidgetBase) mouseEntered() {
	if b.hovered {
		return
	}
	b.hovered = true
	b.emit(SignalMouseEntered, nil)
}

func (b *WidgetBase) mouseLeft() {
	if !b.hovered {
		return
	}
	b.hovered = false
	b.emit(SignalMouseLeft, nil)
}

func (b *WidgetBase) gainedFocus() {
	b.focused = true
	if h, ok := b.self.(FocusHandler); ok {
		h.OnFocus()
	}
	b.emit(SignalFocused, nil)
}

func (b *WidgetBase) lostFocus() {
	b.focused = false
	if h, ok := b.self.(FocusHandler); ok {
		h.OnUnfocus()
	}
	b.emit(SignalUnfocused, nil)
}
