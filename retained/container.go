package retained

import (
	"cmp"
	"slices"
	"time"

	"golang.org/x/image/font"

	"github.com/agiangrant/panes/geom"
	"github.com/agiangrant/panes/layout"
	"github.com/agiangrant/panes/render"
	"github.com/agiangrant/panes/theme"
)

// Container owns an ordered sequence of widgets. The order is the z-order,
// back to front: the last child is drawn last and hit-tested first.
//
// A Container is either the root of a Gui or the contents of a Composite
// widget. Each container keeps its own focused, hovered and captured child;
// the full focus or hover path is the chain of these through nested
// composites.
type Container struct {
	owner Widget // composite owning this container; nil for the root
	gui   *Gui   // set on the root only

	widgets []Widget
	meta    map[Widget]*childMeta
	addSeq  uint64

	focused  Widget
	hovered  Widget
	captured [mouseButtonCount]Widget

	offset  geom.Vec2
	opacity float32

	font  font.Face
	theme *theme.Theme

	globalCallbacks []func(Notification)

	layingOut bool
}

type childMeta struct {
	name string
	seq  uint64 // insertion order, for name lookup
}

// NewContainer returns an empty container owned by the given composite.
// Composite widgets call it from their constructors.
func NewContainer(owner Composite) *Container {
	c := newContainer()
	c.owner = owner
	return c
}

func newContainer() *Container {
	return &Container{
		meta:    make(map[Widget]*childMeta),
		opacity: 1,
	}
}

// Owner returns the composite this container belongs to, or nil for the root.
func (c *Container) Owner() Widget { return c.owner }

// parentContainer returns the container holding this container's owner.
func (c *Container) parentContainer() *Container {
	if c.owner == nil {
		return nil
	}
	return c.owner.Base().parent
}

// root walks up to the outermost container.
func (c *Container) root() *Container {
	for {
		p := c.parentContainer()
		if p == nil {
			return c
		}
		c = p
	}
}

// Gui returns the host this container is attached to, or nil.
func (c *Container) Gui() *Gui {
	return c.root().gui
}

func (c *Container) config() *Config {
	if g := c.Gui(); g != nil {
		return &g.config
	}
	return &defaultConfig
}

// Size is the area children lay out in: the owner's content size, or the
// Gui's size for the root.
func (c *Container) Size() geom.Vec2 {
	if c.owner != nil {
		if cs, ok := c.owner.(ContentSizer); ok {
			return cs.ContentSize()
		}
		return c.owner.Base().resolvedSize
	}
	if c.gui != nil {
		return c.gui.size
	}
	return geom.Vec2{}
}

// ContentOffset is the distance between the container's origin and a child
// placed at (0, 0). Scrolling containers move it.
func (c *Container) ContentOffset() geom.Vec2 { return c.offset }

// SetContentOffset moves all children without re-resolving their layout.
func (c *Container) SetContentOffset(o geom.Vec2) { c.offset = o }

// ============================================================================
// Tree mutation
// ============================================================================

// Add appends w to the front of the z-order under an optional name. A widget
// that already has a parent is removed from it first.
func (c *Container) Add(w Widget, name ...string) {
	if w == nil {
		return
	}
	b := w.Base()
	if b.parent != nil {
		b.parent.Remove(w)
	}
	c.addSeq++
	m := &childMeta{seq: c.addSeq}
	if len(name) > 0 {
		m.name = name[0]
	}
	c.widgets = append(c.widgets, w)
	c.meta[w] = m
	b.parent = c

	if a, ok := w.(Attacher); ok {
		a.OnAttach(c)
	}
	b.invalidate()
}

// Get returns the most recently added child with the given name, or nil.
func (c *Container) Get(name string) Widget {
	var found Widget
	var seq uint64
	for _, w := range c.widgets {
		if m := c.meta[w]; m.name == name && m.seq >= seq {
			found, seq = w, m.seq
		}
	}
	return found
}

// Get looks up a named child and asserts its type.
func Get[T Widget](c *Container, name string) (T, bool) {
	t, ok := c.Get(name).(T)
	return t, ok
}

// GetAll returns the children in z-order.
func (c *Container) GetAll() []Widget {
	return slices.Clone(c.widgets)
}

// Names returns the children's names in z-order; unnamed children give "".
func (c *Container) Names() []string {
	names := make([]string, len(c.widgets))
	for i, w := range c.widgets {
		names[i] = c.meta[w].name
	}
	return names
}

// Len returns the number of children.
func (c *Container) Len() int { return len(c.widgets) }

// Copy adds a clone of w under newName and returns it.
func (c *Container) Copy(w Widget, newName string) Widget {
	if w == nil {
		return nil
	}
	clone := w.Clone()
	c.Add(clone, newName)
	return clone
}

// Remove detaches w. It reports false when w is not a child.
func (c *Container) Remove(w Widget) bool {
	if !c.owns(w) {
		return false
	}
	c.forget(w)

	// forget may have run handlers that already removed w
	i := slices.Index(c.widgets, w)
	if i < 0 {
		return true
	}
	c.widgets = slices.Delete(c.widgets, i, i+1)
	delete(c.meta, w)

	b := w.Base()
	b.parent = nil
	b.hovered = false
	b.mouseDown = false
	if d, ok := w.(Detacher); ok {
		d.OnDetach(c)
	}
	return true
}

// forget drops every reference the container's routing state holds to w.
func (c *Container) forget(w Widget) {
	for i := range c.captured {
		if c.captured[i] == w {
			c.captured[i] = nil
		}
	}
	if c.hovered == w {
		c.hovered = nil
		c.leave(w)
	}
	if c.focused == w {
		c.setFocused(nil)
		c.releaseFocusPath()
	}
}

// RemoveAll detaches every child.
func (c *Container) RemoveAll() {
	for n := len(c.widgets); n > 0; n = len(c.widgets) {
		if !c.Remove(c.widgets[n-1]) {
			c.widgets = c.widgets[:n-1]
		}
	}
}

// SetWidgetName renames a child. It reports false when w is not a child.
func (c *Container) SetWidgetName(w Widget, name string) bool {
	m, ok := c.meta[w]
	if !ok {
		return false
	}
	m.name = name
	return true
}

// WidgetName returns the name a child was added under.
func (c *Container) WidgetName(w Widget) (string, bool) {
	m, ok := c.meta[w]
	if !ok {
		return "", false
	}
	return m.name, true
}

// MoveToFront places w in front of its siblings.
func (c *Container) MoveToFront(w Widget) bool {
	i := slices.Index(c.widgets, w)
	if i < 0 {
		return false
	}
	c.widgets = append(slices.Delete(c.widgets, i, i+1), w)
	return true
}

// MoveToBack places w behind its siblings.
func (c *Container) MoveToBack(w Widget) bool {
	i := slices.Index(c.widgets, w)
	if i < 0 {
		return false
	}
	c.widgets = slices.Insert(slices.Delete(c.widgets, i, i+1), 0, w)
	return true
}

// UncheckRadioButtons unchecks every direct child radio button.
func (c *Container) UncheckRadioButtons() {
	children := c.snapshot()
	defer releaseWidgetSlice(children)
	for _, w := range children {
		if rb, ok := w.(*RadioButton); ok && c.owns(rb) {
			rb.SetChecked(false)
		}
	}
}

// ============================================================================
// Inherited resources
// ============================================================================

// Font returns the font children inherit.
func (c *Container) Font() font.Face {
	if c.font != nil {
		return c.font
	}
	if c.owner != nil {
		return c.owner.Base().Font()
	}
	if c.gui != nil && c.gui.font != nil {
		return c.gui.font
	}
	return theme.DefaultFont()
}

// SetFont overrides the font for every descendant that does not set its own.
func (c *Container) SetFont(f font.Face) {
	c.font = f
	c.notifyFontChanged()
}

func (c *Container) notifyFontChanged() {
	children := c.snapshot()
	defer releaseWidgetSlice(children)
	for _, w := range children {
		if !c.owns(w) || w.Base().font != nil {
			continue
		}
		if o, ok := w.(FontObserver); ok {
			o.OnFontChanged()
		}
		if comp, ok := w.(Composite); ok {
			comp.Contents().notifyFontChanged()
		}
	}
}

// Theme returns the theme children inherit.
func (c *Container) Theme() *theme.Theme {
	if c.theme != nil {
		return c.theme
	}
	if c.owner != nil {
		return c.owner.Base().Theme()
	}
	if c.gui != nil && c.gui.theme != nil {
		return c.gui.theme
	}
	return defaultTheme
}

// SetTheme overrides the theme for every descendant that does not set its own.
func (c *Container) SetTheme(t *theme.Theme) { c.theme = t }

// Opacity returns the multiplier applied to all children.
func (c *Container) Opacity() float32 { return c.opacity }

// SetOpacity sets the multiplier applied to all children, recursively.
func (c *Container) SetOpacity(o float32) {
	c.opacity = min(max(o, 0), 1)
}

// ============================================================================
// Layout
// ============================================================================

// Resolve implements layout.Resolver. Names are looked up among the
// children first, then in each enclosing container. "parent" is this
// container's own area in its local space, and "gui" is the root area.
func (c *Container) Resolve(name string, prop layout.Property) (float32, bool) {
	if name == layout.ParentRef {
		return boundsProperty(geom.Rect(geom.Vec2{}, c.Size()), prop), true
	}
	for cc := c; cc != nil; cc = cc.parentContainer() {
		if w := cc.Get(name); w != nil {
			return boundsProperty(w.Base().Bounds(), prop), true
		}
	}
	if name == "gui" {
		return boundsProperty(geom.Rect(geom.Vec2{}, c.root().Size()), prop), true
	}
	return 0, false
}

func boundsProperty(b geom.Bounds, prop layout.Property) float32 {
	switch prop {
	case layout.PropX:
		return b.X
	case layout.PropY:
		return b.Y
	case layout.PropWidth:
		return b.Width
	case layout.PropHeight:
		return b.Height
	case layout.PropRight:
		return b.Right()
	case layout.PropBottom:
		return b.Bottom()
	}
	return 0
}

// UpdateLayout lets an arranging owner place the children, then re-resolves
// every child in declaration order, then the children of nested composites.
func (c *Container) UpdateLayout() {
	if c.layingOut {
		return
	}
	c.layingOut = true
	defer func() { c.layingOut = false }()

	if a, ok := c.owner.(Arranger); ok {
		a.Arrange()
	}
	size := c.Size()
	children := c.snapshot()
	defer releaseWidgetSlice(children)
	for _, w := range children {
		if !c.owns(w) {
			continue
		}
		w.Base().resolve(c, size)
		if comp, ok := w.(Composite); ok {
			comp.Contents().UpdateLayout()
		}
	}
}

// CheckLayout reports reference cycles among the children's layouts, in
// this container and every nested one.
func (c *Container) CheckLayout() error {
	if err := checkCycles(c.widgets, c.Names()); err != nil {
		return err
	}
	for _, w := range c.widgets {
		if comp, ok := w.(Composite); ok {
			if err := comp.Contents().CheckLayout(); err != nil {
				return err
			}
		}
	}
	return nil
}

// ============================================================================
// Frame pump
// ============================================================================

func (c *Container) update(dt time.Duration) {
	children := c.snapshot()
	defer releaseWidgetSlice(children)
	for _, w := range children {
		if !c.owns(w) {
			continue
		}
		if u, ok := w.(Updater); ok {
			u.Update(dt)
		}
		if comp, ok := w.(Composite); ok && c.owns(w) {
			comp.Contents().update(dt)
		}
	}
}

// draw paints children back to front. t's origin is the container's
// content origin.
func (c *Container) draw(s render.Surface, t render.Transform) {
	t = t.Fade(c.opacity)
	children := c.snapshot()
	defer releaseWidgetSlice(children)
	for _, w := range children {
		if !c.owns(w) {
			continue
		}
		b := w.Base()
		if !b.visible {
			continue
		}
		wt := t.Translate(b.position).Fade(b.opacity)
		if !wt.Visible() {
			continue
		}
		if d, ok := w.(Drawable); ok {
			d.Draw(s, wt)
		}
		if comp, ok := w.(Composite); ok && c.owns(w) {
			inner := comp.Contents()
			s.PushClip(wt.Rect(geom.Rect(geom.Vec2{}, b.resolvedSize)))
			inner.draw(s, wt.Translate(inner.offset))
			s.PopClip()
		}
	}
}

// ============================================================================
// Notifications
// ============================================================================

// Notification is a signal that no handler consumed, travelling up the tree
// towards the global callbacks.
type Notification struct {
	Signal     string
	Widget     Widget
	WidgetName string
	Value      any
}

// BindGlobalCallback registers fn for notifications bubbling out of any
// descendant. Once a container has a global callback, notifications stop
// there.
func (c *Container) BindGlobalCallback(fn func(Notification)) {
	c.globalCallbacks = append(c.globalCallbacks, fn)
}

// UnbindGlobalCallback removes all global callbacks of this container.
func (c *Container) UnbindGlobalCallback() {
	c.globalCallbacks = nil
}

// post delivers a notification to this container's inbox: the global
// callbacks consume it, otherwise it moves to the enclosing container and
// finally to the Gui's queue.
func (c *Container) post(n Notification) {
	if len(c.globalCallbacks) > 0 {
		for _, fn := range slices.Clone(c.globalCallbacks) {
			fn(n)
		}
		return
	}
	if p := c.parentContainer(); p != nil {
		p.post(n)
		return
	}
	if c.gui != nil {
		c.gui.enqueue(n)
	}
}

// cloneFor deep-copies the container and its children for a cloned owner.
func (c *Container) cloneFor(owner Composite) *Container {
	out := NewContainer(owner)
	out.offset = c.offset
	out.opacity = c.opacity
	out.font = c.font
	out.theme = c.theme
	out.globalCallbacks = slices.Clone(c.globalCallbacks)

	// clone in insertion order so that name lookup keeps its precedence,
	// then restore the z-order
	byAge := slices.Clone(c.widgets)
	slices.SortFunc(byAge, func(a, b Widget) int {
		return cmp.Compare(c.meta[a].seq, c.meta[b].seq)
	})
	clones := make(map[Widget]Widget, len(byAge))
	for _, w := range byAge {
		cw := w.Clone()
		clones[w] = cw
		out.addSeq++
		out.meta[cw] = &childMeta{name: c.meta[w].name, seq: out.addSeq}
		cw.Base().parent = out
	}
	for _, w := range c.widgets {
		out.widgets = append(out.widgets, clones[w])
	}
	return out
}
