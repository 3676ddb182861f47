package retained

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"
)

// Configuration errors returned by loading and validation.
var (
	ErrUnknownWidgetType = errors.New("unknown widget type")
	ErrUnknownProperty   = errors.New("unknown property")
	ErrInvalidProperty   = errors.New("invalid property value")
	ErrLayoutCycle       = errors.New("layout reference cycle")
)

// PropertyError reports which widget and property failed to load.
type PropertyError struct {
	Widget   string // type name, plus the widget name when it has one
	Property string
	Err      error
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("%s: property %q: %v", e.Widget, e.Property, e.Err)
}

func (e *PropertyError) Unwrap() error { return e.Err }

// PanicError represents a panic recovered at the host boundary.
type PanicError struct {
	// Op is the entry point that panicked (e.g., "HandleEvent").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// recoverPanic turns a value returned by recover() into a logged PanicError.
// It returns nil when nothing panicked.
func recoverPanic(logger *slog.Logger, op string, r any) *PanicError {
	if r == nil {
		return nil
	}
	err := &PanicError{
		Op:         op,
		Value:      r,
		StackTrace: string(debug.Stack()),
		Timestamp:  time.Now(),
	}
	logger.Error("recovered panic", "op", op, "panic", r, "stack", err.StackTrace)
	return err
}
