package retained

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/panes/geom"
	"github.com/agiangrant/panes/layout"
	"github.com/agiangrant/panes/theme"
)

// buildForm fills g with one widget of every registered kind.
func buildForm(t *testing.T, g *Gui) {
	t.Helper()

	title := NewLabel("Sign in")
	title.SetPosition(10, 10)
	g.Add(title, "title")

	user := NewEditBox()
	user.SetPosition(10, 40)
	user.SetDefaultText("user name")
	user.SetMaxChars(32)
	g.Add(user, "user")

	pass := NewEditBox()
	pos, err := layout.Parse2d("(user.x, user.bottom + 8)")
	require.NoError(t, err)
	pass.SetPositionLayout(pos)
	pass.SetPasswordChar('*')
	pass.SetText("hunter2")
	g.Add(pass, "password")

	options := NewPanel()
	options.SetPosition(200, 10)
	options.SetSize(150, 100)
	options.SetBackgroundColor(theme.RGBA(0x10, 0x20, 0x30, 0xFF))
	remember := NewCheckBox("remember")
	remember.SetChecked(true)
	options.Add(remember, "remember")
	light := NewRadioButton("light")
	light.SetPosition(0, 30)
	light.SetChecked(true)
	options.Add(light, "light")
	dark := NewRadioButton("dark")
	dark.SetPosition(0, 60)
	options.Add(dark, "dark")
	g.Add(options, "options")

	row := NewHorizontalLayout()
	row.SetPosition(10, 150)
	row.SetSize(300, 30)
	row.SetSpacing(5)
	ok := NewButton("OK")
	row.AddWithRatio(ok, 2, "ok")
	row.AddSpace(1)
	row.Add(NewButton("Cancel"), "cancel")
	g.Add(row, "buttons")

	scroll := NewScrollPanel()
	scroll.SetPosition(10, 200)
	scroll.SetSize(100, 80)
	scroll.SetContentSize(geom.V2(100, 400))
	scroll.SetScrollStep(15)
	scroll.Add(NewClickable(), "area")
	g.Add(scroll, "scroll")

	hidden := NewButton("hidden")
	hidden.SetVisible(false)
	hidden.SetOpacity(0.5)
	g.Add(hidden)
}

// shape lists names, kinds and bounds depth first.
func shape(c *Container) []string {
	var out []string
	for i, w := range c.GetAll() {
		b := w.Base()
		out = append(out, fmt.Sprintf("%s %s %v", c.Names()[i], b.Kind(), b.Bounds()))
		if comp, ok := w.(Composite); ok {
			for _, s := range shape(comp.Contents()) {
				out = append(out, "  "+s)
			}
		}
	}
	return out
}

func TestSaveLoadRoundTrip(t *testing.T) {
	g := newTestGui(400, 300)
	buildForm(t, g)
	saved := g.Container().Save()

	h := newTestGui(400, 300)
	require.NoError(t, h.Container().Load(saved))

	assert.Equal(t, shape(g.Container()), shape(h.Container()))
	assert.Equal(t, saved, h.Container().Save(), "saving a loaded tree reproduces the nodes")

	pass, ok := Get[*EditBox](h.Container(), "password")
	require.True(t, ok)
	assert.Equal(t, "hunter2", pass.Text())
	assert.Equal(t, '*', pass.PasswordChar())
	assert.Equal(t, "(user.x, user.bottom + 8)", pass.PositionLayout().String())

	options, ok := Get[*Panel](h.Container(), "options")
	require.True(t, ok)
	light, ok := Get[*RadioButton](options.Contents(), "light")
	require.True(t, ok)
	assert.True(t, light.Checked())
	assert.Equal(t, theme.RGBA(0x10, 0x20, 0x30, 0xFF), options.BackgroundColor())

	row, ok := Get[*BoxLayout](h.Container(), "buttons")
	require.True(t, ok)
	assert.Equal(t, float32(2), row.Ratio(row.Get("ok")))
	assert.Equal(t, float32(5), row.Spacing())

	scroll, ok := Get[*ScrollPanel](h.Container(), "scroll")
	require.True(t, ok)
	assert.Equal(t, geom.V2(100, 400), scroll.ContentSize())
	assert.Equal(t, float32(15), scroll.ScrollStep())

	hidden := h.Container().GetAll()[h.Container().Len()-1]
	assert.False(t, hidden.Base().Visible())
	assert.Equal(t, float32(0.5), hidden.Base().Opacity())
}

func TestLoadErrorsLeaveContainerUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		node    *Node
		wantErr error
	}{
		{
			name:    "unknown type",
			node:    &Node{Type: RootType, Children: []*Node{{Type: "Slider"}}},
			wantErr: ErrUnknownWidgetType,
		},
		{
			name: "unknown property",
			node: &Node{Type: RootType, Children: []*Node{
				{Type: "Button", Properties: []Property{{Key: "colour", Value: "red"}}},
			}},
			wantErr: ErrUnknownProperty,
		},
		{
			name: "malformed layout",
			node: &Node{Type: RootType, Children: []*Node{
				{Type: "Button", Properties: []Property{{Key: "size", Value: "(10 +, 5)"}}},
			}},
			wantErr: ErrInvalidProperty,
		},
		{
			name: "bad boolean",
			node: &Node{Type: RootType, Children: []*Node{
				{Type: "Label", Properties: []Property{{Key: "visible", Value: "maybe"}}},
			}},
			wantErr: ErrInvalidProperty,
		},
		{
			name: "layout cycle",
			node: &Node{Type: RootType, Children: []*Node{
				{Type: "ClickableWidget", Name: "a", Properties: []Property{{Key: "size", Value: "(b.width, 10)"}}},
				{Type: "ClickableWidget", Name: "b", Properties: []Property{{Key: "size", Value: "(a.width, 10)"}}},
			}},
			wantErr: ErrLayoutCycle,
		},
		{
			name:    "wrong root",
			node:    &Node{Type: "Panel"},
			wantErr: ErrUnknownWidgetType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGui(400, 300)
			existing := NewButton("keep")
			g.Add(existing, "keep")

			err := g.Container().Load(tt.node)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Same(t, existing, g.Get("keep"))
			assert.Equal(t, 1, g.Container().Len())
		})
	}
}

func TestLoadPropertyErrorNamesWidget(t *testing.T) {
	_, err := LoadWidget(&Node{Type: "Button", Name: "ok", Properties: []Property{{Key: "colour", Value: "red"}}})
	var perr *PropertyError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "colour", perr.Property)
	assert.Contains(t, err.Error(), `Button "ok"`)
}

func TestBoxLayoutRatiosMustMatchChildren(t *testing.T) {
	_, err := LoadWidget(&Node{
		Type:       "HorizontalLayout",
		Properties: []Property{{Key: "ratios", Value: "1, 2"}},
		Children:   []*Node{{Type: "Button"}},
	})
	assert.True(t, errors.Is(err, ErrInvalidProperty))
}

func TestRegisterCustomType(t *testing.T) {
	Register("TestBadge", func() Widget {
		c := &Clickable{}
		c.Init(c, "TestBadge")
		return c
	})
	assert.Contains(t, RegisteredTypes(), "TestBadge")

	w, err := NewWidget("TestBadge")
	require.NoError(t, err)
	assert.Equal(t, "TestBadge", w.Base().Kind())

	_, err = NewWidget("Nope")
	assert.True(t, errors.Is(err, ErrUnknownWidgetType))
}
