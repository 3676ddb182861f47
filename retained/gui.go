package retained

import (
	"log/slog"
	"slices"
	"time"

	"golang.org/x/image/font"

	"github.com/agiangrant/panes/geom"
	"github.com/agiangrant/panes/render"
	"github.com/agiangrant/panes/theme"
)

// ============================================================================
// Configuration
// ============================================================================

// Config configures input policy for a Gui.
type Config struct {
	// UnfocusOnOutsideClick clears focus when a mouse-down hits no widget
	// (default: true).
	UnfocusOnOutsideClick bool `toml:"unfocus_on_outside_click"`

	// TabFocus lets an unconsumed FocusKey move focus (default: true).
	TabFocus bool `toml:"tab_focus"`

	// FocusKey advances focus; with Shift it goes backwards (default: "Tab").
	FocusKey string `toml:"focus_key"`

	// BubbleSignals lists the notifications that travel to the global
	// callbacks when the emitting widget has no handler for them.
	BubbleSignals []string `toml:"bubble_signals"`

	// InboxSize caps the number of queued notifications waiting for
	// PollCallback (default: 64).
	InboxSize int `toml:"inbox_size"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		UnfocusOnOutsideClick: true,
		TabFocus:              true,
		FocusKey:              KeyTab,
		BubbleSignals: []string{
			SignalClicked,
			SignalPressed,
			SignalValueChanged,
			SignalChecked,
			SignalUnchecked,
			SignalReturnKeyPressed,
		},
		InboxSize: 64,
	}
}

// defaultConfig applies to containers that are not attached to a Gui.
var defaultConfig = DefaultConfig()

func (c *Config) bubbles(signal string) bool {
	return slices.Contains(c.BubbleSignals, signal)
}

// ============================================================================
// Gui
// ============================================================================

// Gui is the root host. The application calls HandleEvent for every input
// event and Update then Draw once per frame.
type Gui struct {
	root   *Container
	config Config
	logger *slog.Logger

	size  geom.Vec2
	font  font.Face
	theme *theme.Theme

	queue []Notification
	mouse geom.Vec2
}

// New creates a Gui with the given configuration.
func New(cfg Config) *Gui {
	if cfg.InboxSize <= 0 {
		cfg.InboxSize = DefaultConfig().InboxSize
	}
	if cfg.FocusKey == "" {
		cfg.FocusKey = KeyTab
	}
	g := &Gui{
		root:   newContainer(),
		config: cfg,
		logger: slog.Default(),
	}
	g.root.gui = g
	return g
}

// Container returns the root container.
func (g *Gui) Container() *Container { return g.root }

// Config returns the active configuration.
func (g *Gui) Config() Config { return g.config }

// SetLogger replaces the logger; nil restores slog.Default().
func (g *Gui) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	g.logger = l
}

// Logger returns the logger used for recovered panics and diagnostics.
func (g *Gui) Logger() *slog.Logger { return g.logger }

// Size returns the area the root lays out in.
func (g *Gui) Size() geom.Vec2 { return g.size }

// SetSize resizes the root area and re-resolves every layout.
func (g *Gui) SetSize(size geom.Vec2) {
	g.size = size
	g.root.UpdateLayout()
}

// MousePosition returns the last pointer position seen by HandleEvent.
func (g *Gui) MousePosition() geom.Vec2 { return g.mouse }

// ----------------------------------------------------------------------------
// Frame pump
// ----------------------------------------------------------------------------

// HandleEvent routes one input event and reports whether a widget consumed
// it. A panic raised by widget or handler code is logged and the event is
// reported as not consumed.
func (g *Gui) HandleEvent(ev Event) (consumed bool) {
	defer func() {
		if recoverPanic(g.logger, "HandleEvent", recover()) != nil {
			consumed = false
		}
	}()

	switch ev := ev.(type) {
	case MouseDown:
		g.mouse = ev.Pos
		return g.root.mouseDown(ev.Pos, ev.Button)
	case MouseUp:
		g.mouse = ev.Pos
		return g.root.mouseUp(ev.Pos, ev.Button)
	case MouseMove:
		g.mouse = ev.Pos
		return g.root.mouseMove(ev.Pos)
	case MouseWheel:
		g.mouse = ev.Pos
		return g.root.mouseWheel(ev.Delta, ev.Pos)
	case KeyDown:
		return g.root.handleKey(ev)
	case TextInput:
		return g.root.textInput(ev.Char)
	case Resized:
		g.SetSize(ev.Size)
		return true
	}
	return false
}

// Update advances time-based widget state (caret blink and the like).
func (g *Gui) Update(dt time.Duration) {
	defer func() { recoverPanic(g.logger, "Update", recover()) }()
	g.root.update(dt)
}

// Draw paints the tree back to front onto s.
func (g *Gui) Draw(s render.Surface) {
	defer func() { recoverPanic(g.logger, "Draw", recover()) }()
	g.root.draw(s, render.Identity())
}

// ----------------------------------------------------------------------------
// Shared resources
// ----------------------------------------------------------------------------

// Font returns the global font.
func (g *Gui) Font() font.Face {
	if g.font == nil {
		return theme.DefaultFont()
	}
	return g.font
}

// SetGlobalFont sets the font every widget without its own font uses.
func (g *Gui) SetGlobalFont(f font.Face) {
	g.font = f
	g.root.notifyFontChanged()
}

// LoadGlobalFont loads a TrueType or OpenType file as the global font. The
// current font is kept when loading fails.
func (g *Gui) LoadGlobalFont(path string, size float32) error {
	f, err := theme.LoadFontFace(path, size)
	if err != nil {
		g.logger.Warn("failed to load font", "path", path, "error", err)
		return err
	}
	g.SetGlobalFont(f)
	return nil
}

// Theme returns the global theme.
func (g *Gui) Theme() *theme.Theme {
	if g.theme == nil {
		return defaultTheme
	}
	return g.theme
}

// SetTheme sets the theme every widget without its own theme uses.
func (g *Gui) SetTheme(t *theme.Theme) { g.theme = t }

// LoadTheme reads a TOML or YAML theme file. The current theme is kept when
// loading fails.
func (g *Gui) LoadTheme(path string) error {
	t, err := theme.Load(path)
	if err != nil {
		g.logger.Warn("failed to load theme", "path", path, "error", err)
		return err
	}
	g.SetTheme(t)
	return nil
}

// ----------------------------------------------------------------------------
// Global callbacks
// ----------------------------------------------------------------------------

// BindGlobalCallback receives every bubbled notification synchronously.
// While one is bound the queue read by PollCallback stays empty.
func (g *Gui) BindGlobalCallback(fn func(Notification)) {
	g.root.BindGlobalCallback(fn)
}

// PollCallback pops the oldest queued notification.
func (g *Gui) PollCallback() (Notification, bool) {
	if len(g.queue) == 0 {
		return Notification{}, false
	}
	n := g.queue[0]
	g.queue[0] = Notification{}
	g.queue = g.queue[1:]
	return n, true
}

func (g *Gui) enqueue(n Notification) {
	if len(g.queue) >= g.config.InboxSize {
		g.logger.Debug("notification dropped, inbox full", "signal", n.Signal, "widget", n.WidgetName)
		return
	}
	g.queue = append(g.queue, n)
}

// ----------------------------------------------------------------------------
// Root container shortcuts
// ----------------------------------------------------------------------------

// Add adds a widget to the root container.
func (g *Gui) Add(w Widget, name ...string) { g.root.Add(w, name...) }

// Get looks a widget up by name in the root container.
func (g *Gui) Get(name string) Widget { return g.root.Get(name) }

// Remove removes a widget from the root container.
func (g *Gui) Remove(w Widget) bool { return g.root.Remove(w) }

// RemoveAll empties the root container.
func (g *Gui) RemoveAll() { g.root.RemoveAll() }

// FocusNext moves focus forward through the whole tree.
func (g *Gui) FocusNext() bool { return g.root.FocusNext() }

// FocusPrevious moves focus backward through the whole tree.
func (g *Gui) FocusPrevious() bool { return g.root.FocusPrevious() }

// UnfocusAll clears focus everywhere.
func (g *Gui) UnfocusAll() { g.root.Unfocus() }

// SetOpacity sets the opacity multiplier of the whole tree.
func (g *Gui) SetOpacity(o float32) { g.root.SetOpacity(o) }
