package retained

import "github.com/agiangrant/panes/geom"

// ============================================================================
// Event Router
// ============================================================================
//
// Positional events arrive at a container as a point in its content space.
// The container hit-tests its visible, enabled children front to back and
// hands the event to the first one hit. A composite target converts the
// point into its own content space (subtracting its position and content
// offset) and routes again; if nothing inside takes the event, the composite
// itself receives it.
//
// Every container also remembers which child received a mouse-down for each
// button. The matching mouse-up and any motion while the button is held go
// to that child wherever the pointer is.

// childAt returns the front-most child hit by p, or nil.
func (c *Container) childAt(p geom.Vec2) Widget {
	for i := len(c.widgets) - 1; i >= 0; i-- {
		if w := c.widgets[i]; c.hits(w, p) {
			return w
		}
	}
	return nil
}

func (c *Container) hits(w Widget, p geom.Vec2) bool {
	b := w.Base()
	if !b.visible || !b.enabled {
		return false
	}
	if h, ok := w.(HitTester); ok {
		return h.HitTest(p)
	}
	return b.HitTest(p)
}

// capturedWidget returns the child holding any mouse button, if one does.
func (c *Container) capturedWidget() Widget {
	for _, w := range c.captured {
		if w != nil {
			return w
		}
	}
	return nil
}

// ----------------------------------------------------------------------------
// Mouse
// ----------------------------------------------------------------------------

// knownButton reports whether button has a capture slot. Events for other
// buttons are dropped before any routing state changes.
func knownButton(button MouseButton) bool {
	return button < mouseButtonCount
}

func (c *Container) mouseDown(p geom.Vec2, button MouseButton) bool {
	if !knownButton(button) {
		return false
	}
	target := c.childAt(p)
	if target == nil {
		if c.config().UnfocusOnOutsideClick {
			c.setFocused(nil)
		}
		return false
	}

	c.setHovered(target)
	c.captured[button] = target
	b := target.Base()
	b.mouseDown = true
	local := p.Sub(b.position)

	handled := false
	if comp, ok := target.(Composite); ok {
		inner := comp.Contents()
		handled = inner.mouseDown(local.Sub(inner.offset), button)
		if !c.owns(target) {
			return true
		}
		if inner.focused != nil || b.focusable {
			c.setFocused(target)
		} else {
			c.setFocused(nil)
		}
	} else if b.focusable {
		c.setFocused(target)
	} else {
		c.setFocused(nil)
	}

	if !handled && c.owns(target) {
		if h, ok := target.(MouseHandler); ok {
			h.OnMouseDown(local, button)
		}
	}
	return true
}

func (c *Container) mouseUp(p geom.Vec2, button MouseButton) bool {
	if !knownButton(button) {
		return false
	}
	target := c.captured[button]
	c.captured[button] = nil
	if target == nil || !c.owns(target) {
		target = c.childAt(p)
	}
	if target == nil {
		c.mouseNoLongerDown(nil)
		return false
	}

	b := target.Base()
	// release handlers still see the pressed flag; it is cleared even if one
	// of them panics
	defer func() {
		b.mouseDown = false
		c.mouseNoLongerDown(target)
	}()
	local := p.Sub(b.position)
	handled := false
	if comp, ok := target.(Composite); ok {
		inner := comp.Contents()
		handled = inner.mouseUp(local.Sub(inner.offset), button)
	}
	if !handled && c.owns(target) {
		if h, ok := target.(MouseHandler); ok {
			h.OnMouseUp(local, button)
		}
	}
	return true
}

// mouseNoLongerDown clears a stale pressed state on every child except the
// one that just received the release.
func (c *Container) mouseNoLongerDown(except Widget) {
	for _, w := range c.widgets {
		if w == except {
			continue
		}
		w.Base().mouseDown = false
		if comp, ok := w.(Composite); ok {
			comp.Contents().mouseNoLongerDown(nil)
		}
	}
}

func (c *Container) mouseMove(p geom.Vec2) bool {
	if w := c.capturedWidget(); w != nil && c.owns(w) {
		if c.hits(w, p) {
			c.setHovered(w)
		} else if c.hovered == w {
			c.hovered = nil
			c.leave(w)
		}
		c.deliverMove(w, p)
		return true
	}

	// leave the old target before looking for a new one
	if old := c.hovered; old != nil && (!c.owns(old) || !c.hits(old, p)) {
		c.hovered = nil
		c.leave(old)
	}
	target := c.childAt(p)
	if target == nil {
		return false
	}
	c.setHovered(target)
	c.deliverMove(target, p)
	return true
}

func (c *Container) deliverMove(w Widget, p geom.Vec2) {
	local := p.Sub(w.Base().position)
	handled := false
	if comp, ok := w.(Composite); ok {
		inner := comp.Contents()
		handled = inner.mouseMove(local.Sub(inner.offset))
	}
	if !handled && c.owns(w) {
		if h, ok := w.(MouseHandler); ok {
			h.OnMouseMove(local)
		}
	}
}

// setHovered makes w the hovered child, telling the previous one it was left.
func (c *Container) setHovered(w Widget) {
	if old := c.hovered; old != nil && old != w {
		c.hovered = nil
		c.leave(old)
	}
	c.hovered = w
	if w != nil {
		w.Base().mouseEntered()
	}
}

// leave tells w, and whatever was hovered inside it, that the mouse left.
func (c *Container) leave(w Widget) {
	if comp, ok := w.(Composite); ok {
		comp.Contents().mouseNotOnWidget()
	}
	w.Base().mouseLeft()
}

// mouseNotOnWidget clears hover state in this container.
func (c *Container) mouseNotOnWidget() {
	if old := c.hovered; old != nil {
		c.hovered = nil
		c.leave(old)
	}
}

func (c *Container) mouseWheel(delta float32, p geom.Vec2) bool {
	target := c.childAt(p)
	if target == nil {
		return false
	}
	local := p.Sub(target.Base().position)
	if comp, ok := target.(Composite); ok {
		inner := comp.Contents()
		if inner.mouseWheel(delta, local.Sub(inner.offset)) {
			return true
		}
	}
	if h, ok := target.(WheelHandler); ok && c.owns(target) {
		return h.OnMouseWheel(delta, local)
	}
	return false
}

// ----------------------------------------------------------------------------
// Keyboard
// ----------------------------------------------------------------------------

// keyDown offers the key to the focused widget, innermost first.
func (c *Container) keyDown(ev KeyDown) bool {
	w := c.focused
	if w == nil || !c.owns(w) {
		return false
	}
	if comp, ok := w.(Composite); ok && comp.Contents().keyDown(ev) {
		return true
	}
	if h, ok := w.(KeyHandler); ok && c.owns(w) {
		return h.OnKey(ev)
	}
	return false
}

// handleKey delivers a key and falls back to moving focus when the key is
// the focus key and nobody consumed it.
func (c *Container) handleKey(ev KeyDown) bool {
	if c.keyDown(ev) {
		return true
	}
	cfg := c.config()
	if !cfg.TabFocus || ev.Key != cfg.FocusKey {
		return false
	}
	if ev.Mods.Shift() {
		c.FocusPrevious()
	} else {
		c.FocusNext()
	}
	return true
}

func (c *Container) textInput(r rune) bool {
	w := c.focused
	if w == nil || !c.owns(w) {
		return false
	}
	if comp, ok := w.(Composite); ok && comp.Contents().textInput(r) {
		return true
	}
	if h, ok := w.(TextHandler); ok && c.owns(w) {
		return h.OnTextInput(r)
	}
	return false
}
