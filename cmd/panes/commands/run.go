package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"github.com/agiangrant/panes"
	"github.com/agiangrant/panes/geom"
	"github.com/agiangrant/panes/internal/termsurface"
	"github.com/agiangrant/panes/retained"
)

const (
	frameInterval = time.Second / 30
	logFileName   = "panes.log"
)

// Run implements the 'panes run' command: it hosts a layout document in the
// terminal, feeding keyboard and mouse input through the event router.
func Run(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := configFlag(fs)
	watch := fs.Bool("watch", false, "Reload the layout document when it changes")
	demo := fs.Bool("demo", false, "Show the built-in login form")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if fs.NArg() > 1 {
		return errors.New("usage: panes run [--watch] [--demo] [layout]")
	}
	if fs.NArg() == 1 {
		cfg.Layout = fs.Arg(0)
	}
	if *demo || cfg.Layout == "" {
		cfg.Layout = ""
		*watch = false
	}

	// The terminal belongs to bubbletea, so the log goes to a file when
	// debugging and nowhere otherwise.
	var logOut io.Writer = io.Discard
	if level, _ := panes.ParseLevel(cfg.LogLevel); level <= slog.LevelDebug {
		f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", logFileName, err)
		}
		defer f.Close()
		logOut = f
	}
	logger := cfg.NewLogger(logOut)

	m := &model{cfg: cfg, logger: logger}
	if err := m.load(); err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	if *watch {
		w, err := watchLayout(cfg.Layout, func() { p.Send(reloadMsg{}) })
		if err != nil {
			return err
		}
		defer w.Close()
	}

	_, err = p.Run()
	return err
}

// ============================================================================
// Model
// ============================================================================

type tickMsg time.Time

type reloadMsg struct{}

type model struct {
	cfg    panes.Config
	logger *slog.Logger

	gui     *retained.Gui
	surface *termsurface.Surface
	status  string
	last    time.Time
	held    retained.MouseButton
}

// load builds the Gui from the configured layout, or the demo form when
// there is none.
func (m *model) load() error {
	g, err := panes.NewGui(m.cfg, m.logger)
	if err != nil {
		return err
	}
	if m.cfg.Layout == "" {
		buildDemo(g)
	}
	useTerminal(g)
	bindDemo(g)
	if m.surface != nil {
		cols, rows := m.surface.Size()
		g.HandleEvent(retained.Resized{Size: geom.V2(float32(cols), float32(rows))})
	}
	m.gui = g
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *model) Init() tea.Cmd {
	m.last = time.Now()
	return tick()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// The last row is the status line.
		rows := max(msg.Height-1, 0)
		if m.surface == nil {
			m.surface = termsurface.New(msg.Width, rows)
		} else {
			m.surface.Resize(msg.Width, rows)
		}
		m.gui.HandleEvent(retained.Resized{Size: geom.V2(float32(msg.Width), float32(rows))})

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		consumed := false
		for _, ev := range translateKey(msg) {
			if m.gui.HandleEvent(ev) {
				consumed = true
			}
		}
		if msg.Type == tea.KeyEsc && !consumed {
			return m, tea.Quit
		}

	case tea.MouseMsg:
		var events []retained.Event
		events, m.held = translateMouse(msg, m.held)
		for _, ev := range events {
			m.gui.HandleEvent(ev)
		}

	case tickMsg:
		now := time.Time(msg)
		m.gui.Update(now.Sub(m.last))
		m.last = now
		for {
			n, ok := m.gui.PollCallback()
			if !ok {
				break
			}
			m.status = describeNotification(n)
		}
		return m, tick()

	case reloadMsg:
		if err := m.load(); err != nil {
			m.status = "reload failed: " + err.Error()
		} else {
			m.status = "reloaded " + filepath.Base(m.cfg.Layout)
		}
	}
	return m, nil
}

var statusStyle = lipgloss.NewStyle().Reverse(true)

func (m *model) View() string {
	if m.surface == nil {
		return ""
	}
	m.surface.Clear(m.gui.Theme().Style("Panel").Background)
	m.gui.Draw(m.surface)
	cols, _ := m.surface.Size()
	return m.surface.Render() + "\n" + statusStyle.Width(cols).MaxWidth(cols).Render(m.status)
}

func describeNotification(n retained.Notification) string {
	name := n.WidgetName
	if name == "" && n.Widget != nil {
		name = n.Widget.Base().Kind()
	}
	if n.Value == nil {
		return fmt.Sprintf("%s %s", name, n.Signal)
	}
	return fmt.Sprintf("%s %s: %v", name, n.Signal, n.Value)
}

// ============================================================================
// Input translation
// ============================================================================

var keyNames = map[tea.KeyType]string{
	tea.KeyEnter:     retained.KeyEnter,
	tea.KeyBackspace: retained.KeyBackspace,
	tea.KeyDelete:    retained.KeyDelete,
	tea.KeyTab:       retained.KeyTab,
	tea.KeyLeft:      retained.KeyArrowLeft,
	tea.KeyRight:     retained.KeyArrowRight,
	tea.KeyUp:        retained.KeyArrowUp,
	tea.KeyDown:      retained.KeyArrowDown,
	tea.KeyHome:      retained.KeyHome,
	tea.KeyEnd:       retained.KeyEnd,
	tea.KeyEsc:       retained.KeyEscape,
}

// translateKey maps one terminal key press onto router events. Space is both
// a key (it activates buttons) and text.
func translateKey(msg tea.KeyMsg) []retained.Event {
	var mods retained.Modifiers
	if msg.Alt {
		mods |= retained.ModAlt
	}
	switch msg.Type {
	case tea.KeyRunes:
		events := make([]retained.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, retained.TextInput{Char: r})
		}
		return events
	case tea.KeySpace:
		return []retained.Event{
			retained.KeyDown{Key: retained.KeySpace, Mods: mods},
			retained.TextInput{Char: ' '},
		}
	case tea.KeyShiftTab:
		return []retained.Event{retained.KeyDown{Key: retained.KeyTab, Mods: mods | retained.ModShift}}
	}
	if name, ok := keyNames[msg.Type]; ok {
		return []retained.Event{retained.KeyDown{Key: name, Mods: mods}}
	}
	return nil
}

// translateMouse maps a terminal mouse report onto router events. Terminals
// often report releases without a button, so the held button is carried
// between calls.
func translateMouse(msg tea.MouseMsg, held retained.MouseButton) ([]retained.Event, retained.MouseButton) {
	pos := geom.V2(float32(msg.X), float32(msg.Y))
	var mods retained.Modifiers
	if msg.Shift {
		mods |= retained.ModShift
	}
	if msg.Alt {
		mods |= retained.ModAlt
	}
	if msg.Ctrl {
		mods |= retained.ModCtrl
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return []retained.Event{retained.MouseWheel{Pos: pos, Delta: 1, Mods: mods}}, held
	case tea.MouseButtonWheelDown:
		return []retained.Event{retained.MouseWheel{Pos: pos, Delta: -1, Mods: mods}}, held
	}

	button := mouseButton(msg.Button)
	switch msg.Action {
	case tea.MouseActionPress:
		return []retained.Event{retained.MouseDown{Pos: pos, Button: button, Mods: mods}}, button
	case tea.MouseActionRelease:
		if button == retained.MouseButtonNone {
			button = held
		}
		return []retained.Event{retained.MouseUp{Pos: pos, Button: button, Mods: mods}}, retained.MouseButtonNone
	case tea.MouseActionMotion:
		return []retained.Event{retained.MouseMove{Pos: pos, Mods: mods}}, held
	}
	return nil, held
}

func mouseButton(b tea.MouseButton) retained.MouseButton {
	switch b {
	case tea.MouseButtonLeft:
		return retained.MouseButtonLeft
	case tea.MouseButtonRight:
		return retained.MouseButtonRight
	case tea.MouseButtonMiddle:
		return retained.MouseButtonMiddle
	}
	return retained.MouseButtonNone
}

// ============================================================================
// Watching
// ============================================================================

// watchLayout calls reload after the layout file changes. Editors often
// write a file in several steps, so events are debounced. The directory is
// watched rather than the file, since editors may replace it.
func watchLayout(path string, reload func()) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	target := filepath.Clean(path)
	go func() {
		var debounce *time.Timer
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(100*time.Millisecond, reload)
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return w, nil
}
