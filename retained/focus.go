package retained

import (
	"log/slog"
	"slices"
)

// ============================================================================
// Focus Chain
// ============================================================================
//
// Each container remembers one focused child. When that child is a
// composite, its own container continues the chain, so the widget that
// receives keys is found by following focused children down from the root.
//
// Tabbing past the last eligible widget of a container clears its focus
// (the "none" state) and reports false, which lets the enclosing container
// move on to the next sibling. At the root the following tab starts over at
// the first eligible widget.

// FocusedWidget returns the focused direct child, or nil.
func (c *Container) FocusedWidget() Widget { return c.focused }

// FocusedLeaf follows the focus chain down to the innermost focused widget.
func (c *Container) FocusedLeaf() Widget {
	w := c.focused
	for w != nil {
		comp, ok := w.(Composite)
		if !ok || comp.Contents().focused == nil {
			return w
		}
		w = comp.Contents().focused
	}
	return nil
}

// Focus focuses a child and marks the path to it in every enclosing
// container. It reports false, changing nothing, when w is not a visible,
// enabled, focusable child.
func (c *Container) Focus(w Widget) bool {
	if !c.owns(w) {
		return false
	}
	b := w.Base()
	if !b.visible || !b.enabled || !b.focusable {
		return false
	}
	c.setFocused(w)
	for cc := c; cc.owner != nil; {
		p := cc.owner.Base().parent
		if p == nil {
			break
		}
		p.setFocused(cc.owner)
		cc = p
	}
	return true
}

// Unfocus clears focus in this container and every nested one.
func (c *Container) Unfocus() {
	c.setFocused(nil)
}

// FocusNext moves focus to the next eligible child and reports whether one
// was found. Past the last one focus is cleared and FocusNext returns false;
// the call after that focuses the first eligible child again.
func (c *Container) FocusNext() bool {
	start := 0
	if f := c.focused; f != nil {
		if comp, ok := f.(Composite); ok && comp.Contents().FocusNext() {
			return true
		}
		start = slices.Index(c.widgets, f) + 1
	}
	children := c.snapshot()
	defer releaseWidgetSlice(children)
	for i := start; i < len(children); i++ {
		if c.owns(children[i]) && c.focusEntering(children[i], true) {
			return true
		}
	}
	c.setFocused(nil)
	return false
}

// FocusPrevious is FocusNext in reverse.
func (c *Container) FocusPrevious() bool {
	children := c.snapshot()
	defer releaseWidgetSlice(children)
	start := len(children) - 1
	if f := c.focused; f != nil {
		if comp, ok := f.(Composite); ok && comp.Contents().FocusPrevious() {
			return true
		}
		start = slices.Index(children, f) - 1
	}
	for i := start; i >= 0; i-- {
		if c.owns(children[i]) && c.focusEntering(children[i], false) {
			return true
		}
	}
	c.setFocused(nil)
	return false
}

// focusEntering focuses w when the focus key reaches it. A composite hands
// focus on to its first (or last) eligible child and is skipped when it has
// none and is not focusable itself.
func (c *Container) focusEntering(w Widget, forward bool) bool {
	if !c.canFocus(w) {
		return false
	}
	if comp, ok := w.(Composite); ok {
		inner := comp.Contents()
		inner.setFocused(nil)
		var moved bool
		if forward {
			moved = inner.FocusNext()
		} else {
			moved = inner.FocusPrevious()
		}
		if !moved && !w.Base().focusable {
			return false
		}
	}
	c.setFocused(w)
	return true
}

// canFocus reports whether w is a stop in the focus chain.
func (c *Container) canFocus(w Widget) bool {
	b := w.Base()
	if !b.visible || !b.enabled {
		return false
	}
	if b.focusable {
		return true
	}
	if comp, ok := w.(Composite); ok {
		inner := comp.Contents()
		for _, child := range inner.widgets {
			if inner.canFocus(child) {
				return true
			}
		}
	}
	return false
}

// setFocused is the single place focus changes. Unfocusing a composite
// clears the focus inside it as well.
func (c *Container) setFocused(w Widget) {
	if c.focused == w {
		return
	}
	old := c.focused
	c.focused = w
	c.logger().Debug("focus changed", "from", describe(old), "to", describe(w))

	if old != nil {
		if comp, ok := old.(Composite); ok {
			comp.Contents().setFocused(nil)
		}
		old.Base().lostFocus()
	}
	// handlers of the unfocused signal may already have moved focus on
	if w != nil && c.focused == w {
		w.Base().gainedFocus()
	}
}

// releaseFocusPath clears the marks that led to this container once it no
// longer focuses anything, stopping at the first owner that is focusable on
// its own. It runs when a focused widget drops out of the chain.
func (c *Container) releaseFocusPath() {
	for cc := c; cc.focused == nil && cc.owner != nil; {
		owner := cc.owner
		p := owner.Base().parent
		if p == nil || p.focused != owner || owner.Base().focusable {
			return
		}
		p.setFocused(nil)
		cc = p
	}
}

func (c *Container) logger() *slog.Logger {
	if g := c.Gui(); g != nil {
		return g.logger
	}
	return slog.Default()
}

// describe names a widget for log output.
func describe(w Widget) string {
	if w == nil {
		return "none"
	}
	b := w.Base()
	if name := b.Name(); name != "" {
		return b.kind + " " + name
	}
	return b.kind
}
