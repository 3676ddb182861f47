package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agiangrant/panes/geom"
	"github.com/agiangrant/panes/theme"
)

func TestTransform(t *testing.T) {
	tr := Identity().Translate(geom.V2(10, 20)).Translate(geom.V2(5, 5)).Fade(0.5).Fade(0.5)

	assert.Equal(t, geom.V2(15, 25), tr.Offset)
	assert.Equal(t, float32(0.25), tr.Opacity)
	assert.Equal(t, geom.Bounds{X: 16, Y: 27, Width: 3, Height: 4}, tr.Rect(geom.Bounds{X: 1, Y: 2, Width: 3, Height: 4}))
	assert.Equal(t, geom.V2(15, 25), tr.Point(geom.Vec2{}))
	assert.Equal(t, uint8(64), tr.Color(theme.White).Alpha())
	assert.True(t, tr.Visible())
	assert.False(t, Identity().Fade(0).Visible())
}

func TestRecorderClipping(t *testing.T) {
	r := NewRecorder()
	r.PushClip(geom.Bounds{Width: 100, Height: 100})
	r.FillRect(geom.Bounds{X: 10, Y: 10, Width: 10, Height: 10}, theme.Black)
	r.FillRect(geom.Bounds{X: 200, Y: 10, Width: 10, Height: 10}, theme.Black)
	r.PushClip(geom.Bounds{X: 50, Y: 50, Width: 100, Height: 100})
	r.DrawText("inside", geom.V2(60, 60), nil, theme.Black)
	r.DrawText("outside", geom.V2(0, 0), nil, theme.Black)
	r.PopClip()
	r.PopClip()
	r.PopClip() // unbalanced pops are ignored

	kinds := make([]CommandKind, 0, len(r.Commands()))
	for _, c := range r.Commands() {
		kinds = append(kinds, c.Kind)
	}
	assert.Equal(t, []CommandKind{CmdPushClip, CmdFillRect, CmdPushClip, CmdText, CmdPopClip, CmdPopClip}, kinds)
	assert.Equal(t, []string{"inside"}, r.Texts())
	// nested clips intersect
	assert.Equal(t, geom.Bounds{X: 50, Y: 50, Width: 50, Height: 50}, r.Commands()[2].Bounds)

	r.Reset()
	assert.Empty(t, r.Commands())
}
