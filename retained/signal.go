package retained

import (
	"slices"
	"sync/atomic"
	"weak"
)

// Signal names emitted by WidgetBase and the built-in widgets.
const (
	SignalMouseEntered     = "mouse-entered"
	SignalMouseLeft        = "mouse-left"
	SignalFocused          = "focused"
	SignalUnfocused        = "unfocused"
	SignalPositionChanged  = "position-changed"
	SignalSizeChanged      = "size-changed"
	SignalMousePressed     = "mouse-pressed"
	SignalMouseReleased    = "mouse-released"
	SignalClicked          = "clicked"
	SignalPressed          = "pressed"
	SignalChecked          = "checked"
	SignalUnchecked        = "unchecked"
	SignalValueChanged     = "value-changed"
	SignalTextChanged      = "text-changed"
	SignalReturnKeyPressed = "return-key-pressed"
)

// Signal is what a handler receives.
type Signal struct {
	Name   string
	Widget Widget
	// Value is the payload supplied by the emitter (new text, checked state, ...).
	Value any
	// Args are the fixed arguments given when the handler was bound.
	Args []any
}

// Handler is a signal callback.
type Handler func(Signal)

// BindingID identifies one binding so it can be removed on its own.
type BindingID uint64

var nextBindingID atomic.Uint64

type binding struct {
	id    BindingID
	fn    Handler
	args  []any
	alive func() bool // nil for strong bindings
}

// Signals is a per-widget registry of event name to handlers. Handlers run
// synchronously in registration order. The zero value is ready to use.
type Signals struct {
	bindings map[string][]binding
}

// Bind registers fn for the named event. args are passed back to fn in
// Signal.Args on every emission.
func (s *Signals) Bind(name string, fn Handler, args ...any) BindingID {
	return s.bind(name, binding{fn: fn, args: args})
}

func (s *Signals) bind(name string, b binding) BindingID {
	if s.bindings == nil {
		s.bindings = make(map[string][]binding)
	}
	b.id = BindingID(nextBindingID.Add(1))
	s.bindings[name] = append(s.bindings[name], b)
	return b.id
}

// BindWeak binds fn for as long as owner is reachable from elsewhere. The bus
// holds only a weak pointer; once owner has been collected the binding is
// dropped the next time the event fires.
func BindWeak[T any](s *Signals, name string, owner *T, fn func(owner *T, sig Signal), args ...any) BindingID {
	wp := weak.Make(owner)
	return s.bind(name, binding{
		fn: func(sig Signal) {
			if o := wp.Value(); o != nil {
				fn(o, sig)
			}
		},
		args:  args,
		alive: func() bool { return wp.Value() != nil },
	})
}

// Unbind removes every handler for the named event. It is a no-op when none
// are bound.
func (s *Signals) Unbind(name string) {
	delete(s.bindings, name)
}

// UnbindID removes a single binding and reports whether it existed.
func (s *Signals) UnbindID(id BindingID) bool {
	for name, list := range s.bindings {
		for i, b := range list {
			if b.id != id {
				continue
			}
			list = slices.Delete(slices.Clone(list), i, i+1)
			if len(list) == 0 {
				delete(s.bindings, name)
			} else {
				s.bindings[name] = list
			}
			return true
		}
	}
	return false
}

// UnbindAll removes every binding.
func (s *Signals) UnbindAll() {
	s.bindings = nil
}

// Bound reports whether at least one live handler is bound for the event.
func (s *Signals) Bound(name string) bool {
	for _, b := range s.bindings[name] {
		if b.alive == nil || b.alive() {
			return true
		}
	}
	return false
}

// Emit calls every handler bound for sig.Name and reports whether any ran.
// Handlers may bind, unbind or emit again; the set of handlers called is the
// one bound when Emit started.
func (s *Signals) Emit(sig Signal) bool {
	list := s.bindings[sig.Name]
	if len(list) == 0 {
		return false
	}
	// Removals always clone and appends never write below len(list), so
	// list stays a stable snapshot while handlers run.
	ran := false
	for _, b := range list {
		if b.alive != nil && !b.alive() {
			s.UnbindID(b.id)
			continue
		}
		sig.Args = b.args
		b.fn(sig)
		ran = true
	}
	return ran
}

// clone copies the bindings into fresh slices.
func (s *Signals) clone() Signals {
	if s.bindings == nil {
		return Signals{}
	}
	out := Signals{bindings: make(map[string][]binding, len(s.bindings))}
	for name, list := range s.bindings {
		out.bindings[name] = slices.Clone(list)
	}
	return out
}
