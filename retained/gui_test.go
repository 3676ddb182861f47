package retained

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/panes/geom"
	"github.com/agiangrant/panes/theme"
)

func TestUnhandledNotificationsBubble(t *testing.T) {
	g := newTestGui(400, 300)
	p := NewPanel()
	g.Add(p, "panel")
	ok := box(0, 0, 50, 20)
	p.Add(ok, "ok")

	var got []Notification
	g.BindGlobalCallback(func(n Notification) { got = append(got, n) })

	click(g, 10, 10)
	require.Len(t, got, 1, "only signals in the bubble set travel")
	assert.Equal(t, SignalClicked, got[0].Signal)
	assert.Equal(t, "ok", got[0].WidgetName)
	assert.Same(t, ok, got[0].Widget)

	ok.Bind(SignalClicked, func(Signal) {})
	click(g, 10, 10)
	assert.Len(t, got, 1, "handled signals stay with the widget")

	_, queued := g.PollCallback()
	assert.False(t, queued, "global callbacks leave the queue empty")
}

func TestContainerCallbackStopsBubbling(t *testing.T) {
	g := newTestGui(400, 300)
	p := NewPanel()
	g.Add(p)
	p.Add(box(0, 0, 50, 20), "inner")

	var inner, outer int
	p.Contents().BindGlobalCallback(func(Notification) { inner++ })
	g.BindGlobalCallback(func(Notification) { outer++ })

	click(g, 10, 10)
	assert.Equal(t, 1, inner)
	assert.Equal(t, 0, outer)

	p.Contents().UnbindGlobalCallback()
	click(g, 10, 10)
	assert.Equal(t, 1, outer)
}

func TestPollCallbackQueue(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InboxSize = 2
	g := newTestGuiWith(cfg, 400, 300)
	g.Add(box(0, 0, 50, 20), "a")

	for range 3 {
		click(g, 10, 10)
	}

	var n int
	for {
		got, ok := g.PollCallback()
		if !ok {
			break
		}
		assert.Equal(t, SignalClicked, got.Signal)
		assert.Equal(t, "a", got.WidgetName)
		n++
	}
	assert.Equal(t, 2, n, "notifications beyond the inbox size are dropped")
}

func TestBubbleSetIsConfigurable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BubbleSignals = []string{SignalMousePressed}
	g := newTestGuiWith(cfg, 400, 300)
	g.Add(box(0, 0, 50, 20))

	click(g, 10, 10)
	got, ok := g.PollCallback()
	require.True(t, ok)
	assert.Equal(t, SignalMousePressed, got.Signal)
	assert.Equal(t, geom.V2(10, 10), got.Value)
	_, ok = g.PollCallback()
	assert.False(t, ok)
}

func TestNewFillsDefaults(t *testing.T) {
	g := New(Config{})
	assert.Equal(t, DefaultConfig().InboxSize, g.Config().InboxSize)
	assert.Equal(t, KeyTab, g.Config().FocusKey)
	assert.False(t, g.Config().TabFocus, "explicit booleans are kept")
}

func TestResizeEvent(t *testing.T) {
	g := newTestGui(100, 100)
	assert.True(t, g.HandleEvent(Resized{Size: geom.V2(640, 480)}))
	assert.Equal(t, geom.V2(640, 480), g.Size())
}

func TestMousePositionTracksEvents(t *testing.T) {
	g := newTestGui(400, 300)
	g.HandleEvent(MouseMove{Pos: geom.V2(12, 34)})
	assert.Equal(t, geom.V2(12, 34), g.MousePosition())
}

func TestLoadThemeFailureKeepsTheme(t *testing.T) {
	var buf bytes.Buffer
	g := newTestGui(400, 300)
	g.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	custom := theme.Default()
	g.SetTheme(custom)
	err := g.LoadTheme(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Same(t, custom, g.Theme())
	assert.Contains(t, buf.String(), "failed to load theme")
}

func TestLoadThemeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dark.toml")
	data := `name = "dark"

[styles.Button]
background = "#202020"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	g := newTestGui(400, 300)
	b := NewButton("x")
	g.Add(b)
	require.NoError(t, g.LoadTheme(path))
	assert.Equal(t, "dark", g.Theme().Name)
	assert.Equal(t, theme.Color(0x202020FF), b.Style().Background)
}

func TestLoadGlobalFontFailureKeepsFont(t *testing.T) {
	g := newTestGui(400, 300)
	before := g.Font()
	require.Error(t, g.LoadGlobalFont(filepath.Join(t.TempDir(), "none.ttf"), 12))
	assert.Equal(t, before, g.Font())
}

func TestUpdateBlinksFocusedCaret(t *testing.T) {
	g := newTestGui(400, 300)
	e := NewEditBox()
	g.Add(e)
	require.True(t, e.Focus())
	assert.True(t, e.CaretVisible())

	g.Update(caretBlink)
	assert.False(t, e.CaretVisible())
	g.Update(caretBlink / 2)
	assert.False(t, e.CaretVisible())
	g.Update(caretBlink / 2)
	assert.True(t, e.CaretVisible())

	g.UnfocusAll()
	assert.False(t, e.CaretVisible())
	g.Update(3 * time.Second)
	assert.False(t, e.CaretVisible(), "unfocused edit boxes do not blink")
}
