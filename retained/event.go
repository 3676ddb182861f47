package retained

import "github.com/agiangrant/panes/geom"

// ============================================================================
// Input Types
// ============================================================================

// MouseButton identifies which mouse button was pressed.
type MouseButton uint8

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle

	mouseButtonCount
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	}
	return "none"
}

// Modifier keys
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper // Cmd on Mac, Win on Windows
)

func (m Modifiers) Shift() bool { return m&ModShift != 0 }
func (m Modifiers) Ctrl() bool  { return m&ModCtrl != 0 }
func (m Modifiers) Alt() bool   { return m&ModAlt != 0 }
func (m Modifiers) Super() bool { return m&ModSuper != 0 }

// Logical key names used by KeyDown.Key.
const (
	KeyTab        = "Tab"
	KeyEnter      = "Enter"
	KeyEscape     = "Escape"
	KeyBackspace  = "Backspace"
	KeyDelete     = "Delete"
	KeyArrowLeft  = "Left"
	KeyArrowRight = "Right"
	KeyArrowUp    = "Up"
	KeyArrowDown  = "Down"
	KeyHome       = "Home"
	KeyEnd        = "End"
	KeySpace      = "Space"
)

// ============================================================================
// Events
// ============================================================================

// Event is the tagged union accepted by Gui.HandleEvent. Positions are in the
// root's coordinate space.
type Event interface {
	isEvent()
}

// MouseDown is a button press.
type MouseDown struct {
	Pos    geom.Vec2
	Button MouseButton
	Mods   Modifiers
}

// MouseUp is a button release.
type MouseUp struct {
	Pos    geom.Vec2
	Button MouseButton
	Mods   Modifiers
}

// MouseMove is pointer motion, with or without a button held.
type MouseMove struct {
	Pos  geom.Vec2
	Mods Modifiers
}

// MouseWheel is a scroll step. Positive Delta scrolls towards the top.
type MouseWheel struct {
	Pos   geom.Vec2
	Delta float32
	Mods  Modifiers
}

// KeyDown is a key press that is not (only) text entry.
type KeyDown struct {
	Key  string
	Mods Modifiers
}

// TextInput carries one typed character.
type TextInput struct {
	Char rune
}

// Resized reports the new size of the host surface.
type Resized struct {
	Size geom.Vec2
}

func (MouseDown) isEvent()  {}
func (MouseUp) isEvent()    {}
func (MouseMove) isEvent()  {}
func (MouseWheel) isEvent() {}
func (KeyDown) isEvent()    {}
func (TextInput) isEvent()  {}
func (Resized) isEvent()    {}
