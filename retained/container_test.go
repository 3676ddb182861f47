package retained

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/agiangrant/panes/geom"
	"github.com/agiangrant/panes/layout"
	"github.com/agiangrant/panes/render"
	"github.com/agiangrant/panes/theme"
)

func newTestGui(w, h float32) *Gui {
	return newTestGuiWith(DefaultConfig(), w, h)
}

func newTestGuiWith(cfg Config, w, h float32) *Gui {
	g := New(cfg)
	g.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	g.SetSize(geom.V2(w, h))
	return g
}

// box returns a clickable area with fixed bounds.
func box(x, y, w, h float32) *Clickable {
	c := NewClickable()
	c.SetPosition(x, y)
	c.SetSize(w, h)
	return c
}

func button(text string, x, y, w, h float32) *Button {
	b := NewButton(text)
	b.SetPosition(x, y)
	b.SetSize(w, h)
	return b
}

func press(g *Gui, x, y float32) bool {
	return g.HandleEvent(MouseDown{Pos: geom.V2(x, y), Button: MouseButtonLeft})
}

func release(g *Gui, x, y float32) bool {
	return g.HandleEvent(MouseUp{Pos: geom.V2(x, y), Button: MouseButtonLeft})
}

func click(g *Gui, x, y float32) {
	press(g, x, y)
	release(g, x, y)
}

func TestContainerAddGetRemove(t *testing.T) {
	g := newTestGui(400, 300)
	c := g.Container()

	first := box(0, 0, 10, 10)
	second := box(0, 0, 10, 10)
	anon := box(0, 0, 10, 10)
	c.Add(first, "item")
	c.Add(second, "item")
	c.Add(anon)

	assert.Equal(t, 3, c.Len())
	assert.Same(t, second, c.Get("item"), "duplicate names resolve to the most recent")
	assert.Nil(t, c.Get("missing"))
	assert.Equal(t, []string{"item", "item", ""}, c.Names())
	assert.Same(t, c, first.Parent())

	got, ok := Get[*Clickable](c, "item")
	require.True(t, ok)
	assert.Same(t, second, got)
	_, ok = Get[*Button](c, "item")
	assert.False(t, ok)

	assert.True(t, c.Remove(second))
	assert.Same(t, first, c.Get("item"))
	assert.Nil(t, second.Parent())
	assert.False(t, c.Remove(second), "removing twice is a no-op")

	assert.True(t, c.SetWidgetName(anon, "anon"))
	name, ok := c.WidgetName(anon)
	assert.True(t, ok)
	assert.Equal(t, "anon", name)
	assert.Equal(t, "anon", anon.Name())

	c.RemoveAll()
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, first.Parent())
}

func TestContainerAddReparents(t *testing.T) {
	g := newTestGui(400, 300)
	p := NewPanel()
	g.Add(p, "panel")

	w := box(0, 0, 10, 10)
	g.Add(w, "w")
	p.Add(w, "w")

	assert.Nil(t, g.Get("w"))
	assert.Same(t, w, p.Get("w"))
	assert.Same(t, p.Contents(), w.Parent())
}

func TestContainerZOrder(t *testing.T) {
	g := newTestGui(400, 300)
	c := g.Container()

	var order []string
	for _, name := range []string{"a", "b", "c"} {
		w := box(10, 10, 50, 50)
		w.Bind(SignalMousePressed, func(Signal) { order = append(order, name) })
		c.Add(w, name)
	}

	click(g, 20, 20)
	assert.Equal(t, []string{"c"}, order, "the most recently added widget is in front")

	require.True(t, c.MoveToFront(c.Get("a")))
	assert.Equal(t, []string{"b", "c", "a"}, c.Names())
	click(g, 20, 20)
	assert.Equal(t, []string{"c", "a"}, order)

	require.True(t, c.MoveToBack(c.Get("a")))
	assert.Equal(t, []string{"a", "b", "c"}, c.Names())
	assert.Same(t, c.Get("a"), c.GetAll()[0], "names survive reordering")
}

func TestCopy(t *testing.T) {
	g := newTestGui(400, 300)
	orig := button("OK", 10, 10, 80, 30)
	g.Add(orig, "ok")

	clone := g.Container().Copy(orig, "ok2")
	require.NotNil(t, clone)
	assert.NotSame(t, orig, clone)
	assert.NotEqual(t, orig.ID(), clone.Base().ID())
	assert.Equal(t, "OK", clone.(*Button).Text())
	assert.Equal(t, orig.Bounds(), clone.Base().Bounds())
	assert.Same(t, clone, g.Get("ok2"))
}

func TestLayoutPercentFollowsResize(t *testing.T) {
	g := newTestGui(200, 100)
	w := NewClickable()
	w.SetSizeLayout(layout.Relative(50, 100))
	g.Add(w)

	assert.Equal(t, float32(100), w.Size().X)

	g.HandleEvent(Resized{Size: geom.V2(400, 100)})
	assert.Equal(t, float32(200), w.Size().X)
	assert.Equal(t, float32(100), w.Size().Y)
}

func TestLayoutReferencesSiblings(t *testing.T) {
	g := newTestGui(400, 300)
	ok := box(10, 20, 80, 30)
	g.Add(ok, "ok")

	cancel := NewClickable()
	pos, err := layout.Parse2d("(ok.right + 10, ok.y)")
	require.NoError(t, err)
	cancel.SetPositionLayout(pos)
	cancel.SetSizeLayout(layout.Layout2d{X: layout.BindWidth("ok"), Y: layout.BindHeight("ok")})
	g.Add(cancel, "cancel")

	assert.Equal(t, geom.V2(100, 20), cancel.Position())
	assert.Equal(t, geom.V2(80, 30), cancel.Size())

	ok.SetPosition(50, 20)
	assert.Equal(t, geom.V2(140, 20), cancel.Position(), "moving the referenced widget re-resolves dependents")

	g.Remove(ok)
	g.Container().UpdateLayout()
	assert.Equal(t, geom.V2(140, 20), cancel.Position(), "dangling references keep their last value")
}

func TestLayoutParentAndGuiReferences(t *testing.T) {
	g := newTestGui(400, 300)
	p := NewPanel()
	p.SetPosition(50, 50)
	p.SetSize(200, 100)
	g.Add(p)

	w := NewClickable()
	size, err := layout.Parse2d("(parent.width - 20, gui.height / 3)")
	require.NoError(t, err)
	w.SetSizeLayout(size)
	p.Add(w)

	assert.Equal(t, geom.V2(180, 100), w.Size())
}

func TestCheckLayoutCycle(t *testing.T) {
	g := newTestGui(400, 300)
	a := NewClickable()
	b := NewClickable()
	g.Add(a, "a")
	g.Add(b, "b")
	a.SetSizeLayout(layout.Layout2d{X: layout.BindWidth("b"), Y: layout.Px(10)})
	b.SetSizeLayout(layout.Layout2d{X: layout.BindWidth("a"), Y: layout.Px(10)})

	err := g.Container().CheckLayout()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLayoutCycle))
	assert.Contains(t, err.Error(), "a -> b -> a")

	b.SetSize(10, 10)
	assert.NoError(t, g.Container().CheckLayout())
}

func TestOpacityIsAProduct(t *testing.T) {
	g := newTestGui(400, 300)
	g.SetOpacity(0.5)

	p := NewPanel()
	p.SetOpacity(0.5)
	g.Add(p)

	b := button("OK", 10, 10, 80, 30)
	p.Add(b)

	assert.Equal(t, float32(1), b.Opacity(), "own opacity is not denormalized")
	assert.InDelta(t, 0.25, b.EffectiveOpacity(), 1e-6)

	rec := render.NewRecorder()
	g.Draw(rec)

	var fill *render.Command
	for i, cmd := range rec.Commands() {
		if cmd.Kind == render.CmdFillRect && cmd.Bounds == geom.Rect(geom.V2(10, 10), geom.V2(80, 30)) {
			fill = &rec.Commands()[i]
			break
		}
	}
	require.NotNil(t, fill, "button background drawn")
	assert.Equal(t, uint8(64), fill.Color.Alpha())
}

func TestDrawOrderAndClipping(t *testing.T) {
	g := newTestGui(400, 300)
	p := NewPanel()
	p.SetPosition(100, 100)
	p.SetSize(50, 50)
	g.Add(p)

	p.Add(button("inside", 0, 0, 40, 20))
	p.Add(button("outside", 200, 200, 40, 20))
	g.Add(button("front", 0, 0, 40, 20))

	rec := render.NewRecorder()
	g.Draw(rec)

	assert.Equal(t, []string{"inside", "front"}, rec.Texts(), "clipped children are not visible")
	cmds := rec.Commands()
	var kinds []render.CommandKind
	for _, c := range cmds {
		if c.Kind == render.CmdPushClip || c.Kind == render.CmdPopClip {
			kinds = append(kinds, c.Kind)
		}
	}
	assert.Equal(t, []render.CommandKind{render.CmdPushClip, render.CmdPopClip}, kinds)
}

func TestHiddenWidgetsAreSkipped(t *testing.T) {
	g := newTestGui(400, 300)
	b := button("hidden", 0, 0, 40, 20)
	g.Add(b)
	b.SetVisible(false)

	rec := render.NewRecorder()
	g.Draw(rec)
	assert.Empty(t, rec.Texts())
	assert.False(t, press(g, 10, 10), "hidden widgets are not hit")
}

func TestFontInheritance(t *testing.T) {
	g := newTestGui(400, 300)
	p := NewPanel()
	g.Add(p)
	l := NewLabel("hello")
	p.Add(l)

	assert.Equal(t, theme.DefaultFont(), l.Font())
	before := l.Size()

	big := &scaledFace{Face: theme.DefaultFont(), scale: 2}
	g.SetGlobalFont(big)
	assert.Same(t, big, l.Font())
	assert.Greater(t, l.Size().X, before.X, "auto-sized labels follow the font")

	own := &scaledFace{Face: theme.DefaultFont(), scale: 3}
	l.SetFont(own)
	g.SetGlobalFont(theme.DefaultFont())
	assert.Same(t, own, l.Font(), "local overrides win")

	l.SetFont(nil)
	assert.Equal(t, theme.DefaultFont(), l.Font())
}

func TestThemeInheritance(t *testing.T) {
	g := newTestGui(400, 300)
	p := NewPanel()
	g.Add(p)
	b := NewButton("x")
	p.Add(b)

	custom := theme.Default().Clone()
	custom.Styles["Button"] = &theme.Style{Background: theme.Black}
	g.SetTheme(custom)
	assert.Equal(t, theme.Black, b.Style().Background)

	local := theme.Default()
	p.Contents().SetTheme(local)
	assert.Same(t, local, b.Theme())
}

// scaledFace widens every glyph advance of the wrapped face.
type scaledFace struct {
	font.Face
	scale int
}

func (f *scaledFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	a, ok := f.Face.GlyphAdvance(r)
	return a * fixed.Int26_6(f.scale), ok
}
