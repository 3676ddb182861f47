package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/panes/geom"
)

type mapResolver map[string]map[Property]float32

func (m mapResolver) Resolve(name string, prop Property) (float32, bool) {
	props, ok := m[name]
	if !ok {
		return 0, false
	}
	v, ok := props[prop]
	return v, ok
}

func TestParseAndEval(t *testing.T) {
	r := mapResolver{
		"parent": {PropWidth: 400, PropHeight: 300},
		"ok":     {PropX: 10, PropY: 20, PropWidth: 80, PropHeight: 30, PropBottom: 50},
	}

	tests := []struct {
		name   string
		input  string
		parent float32
		want   float32
	}{
		{"literal", "42", 0, 42},
		{"pixels", "42px", 0, 42},
		{"percentage", "50%", 200, 100},
		{"percentage minus literal", "50% - 10", 200, 90},
		{"percentage with signed number", "50%-10", 200, 90},
		{"precedence", "10 + 2 * 3", 0, 16},
		{"parentheses", "(10 + 2) * 3", 0, 36},
		{"fraction", "parent.width * 2 / 3", 0, 266.66666},
		{"ampersand alias", "&.height / 2", 0, 150},
		{"sibling reference", "ok.bottom + 10", 0, 60},
		{"min", "min(300, parent.width / 2)", 0, 200},
		{"max", "max(800, parent.width)", 0, 800},
		{"unary minus", "-(ok.width)", 0, -80},
		{"short property alias", "ok.w + ok.h", 0, 110},
		{"division by zero", "10 / 0", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Parse(tt.input)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, e.Eval(r, tt.parent), 0.001)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"dangling operator", "10 +"},
		{"unknown unit", "10em"},
		{"unknown function", "clamp(1, 2)"},
		{"missing property", "ok"},
		{"unknown property", "ok.depth"},
		{"unbalanced", "(10 + 2"},
		{"trailing token", "10 20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			var perr *ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	inputs := []string{
		"50%",
		"50% - 10",
		"parent.width * 2 / 3",
		"min(300, ok.height + 4)",
		"(10 + 2) * 3",
		"10 - (4 - 2)",
		"-5",
	}
	r := mapResolver{"parent": {PropWidth: 300}, "ok": {PropHeight: 20}}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			e := MustParse(in)
			again, err := Parse(e.String())
			require.NoError(t, err, "re-parsing %q", e.String())
			assert.Equal(t, e.String(), again.String())
			assert.InDelta(t, e.Eval(r, 200), again.Eval(r, 200), 0.0001)
		})
	}
}

func TestDanglingReferenceKeepsLastValue(t *testing.T) {
	r := mapResolver{"ok": {PropWidth: 120}}
	e := MustParse("ok.width + 5")

	assert.Equal(t, float32(125), e.Eval(r, 0))

	delete(r, "ok")
	assert.Equal(t, float32(125), e.Eval(r, 0), "missing widget yields the cached value")
	assert.Equal(t, float32(125), e.Eval(nil, 0))
}

func TestLayout2d(t *testing.T) {
	l, err := Parse2d("(50%, parent.height - 20)")
	require.NoError(t, err)

	r := mapResolver{"parent": {PropHeight: 100}}
	assert.Equal(t, geom.V2(100, 80), l.Resolve(r, geom.V2(200, 100)))
	assert.Equal(t, "(50%, parent.height - 20)", l.String())

	braces, err := Parse2d("{10, 20}")
	require.NoError(t, err)
	assert.Equal(t, geom.V2(10, 20), braces.Resolve(nil, geom.Vec2{}))

	bare, err := Parse2d("min(1, 2), 3")
	require.NoError(t, err)
	assert.Equal(t, geom.V2(1, 3), bare.Resolve(nil, geom.Vec2{}))

	_, err = Parse2d("10")
	assert.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	r := mapResolver{"ok": {PropWidth: 10}}
	e := MustParse("ok.width")
	e.Eval(r, 0)

	c := e.Clone()
	r["ok"][PropWidth] = 99
	e.Eval(r, 0)

	assert.Equal(t, float32(10), c.Eval(nil, 0))
	assert.Equal(t, float32(99), e.Eval(nil, 0))
}

func TestRefsAndCycles(t *testing.T) {
	l := Layout2d{X: MustParse("a.right + parent.width"), Y: MustParse("b.bottom + a.y")}
	assert.Equal(t, []string{"a", "b"}, l.Refs())

	assert.Nil(t, FindCycle(map[string][]string{"a": {"b"}, "b": {"c"}, "c": nil}))
	assert.Equal(t, []string{"a", "b", "c"},
		FindCycle(map[string][]string{"a": {"b"}, "b": {"c"}, "c": {"a"}}))
	assert.Equal(t, []string{"self"}, FindCycle(map[string][]string{"self": {"self"}}))
}
