package layout

import (
	"strings"

	"github.com/agiangrant/panes/geom"
)

// Layout2d pairs the expressions for a widget's x and y (or width and
// height). Percentages in X resolve against the parent's width and
// percentages in Y against its height.
type Layout2d struct {
	X, Y *Expr
}

// Fixed returns a layout of two pixel literals.
func Fixed(x, y float32) Layout2d {
	return Layout2d{X: Px(x), Y: Px(y)}
}

// Relative returns a layout of two percentages.
func Relative(px, py float32) Layout2d {
	return Layout2d{X: Percent(px), Y: Percent(py)}
}

// Resolve evaluates both components against the parent's size.
func (l Layout2d) Resolve(r Resolver, parent geom.Vec2) geom.Vec2 {
	return geom.Vec2{
		X: l.X.Eval(r, parent.X),
		Y: l.Y.Eval(r, parent.Y),
	}
}

// Clone deep-copies both components.
func (l Layout2d) Clone() Layout2d {
	return Layout2d{X: l.X.Clone(), Y: l.Y.Clone()}
}

// Refs returns the names referenced by either component.
func (l Layout2d) Refs() []string {
	refs := l.X.Refs()
	for _, r := range l.Y.Refs() {
		dup := false
		for _, have := range refs {
			if have == r {
				dup = true
				break
			}
		}
		if !dup {
			refs = append(refs, r)
		}
	}
	return refs
}

// String renders the layout as "(x, y)".
func (l Layout2d) String() string {
	return "(" + l.X.String() + ", " + l.Y.String() + ")"
}

// Parse2d parses "(x, y)", "{x, y}" or "x, y".
func Parse2d(s string) (Layout2d, error) {
	parts := splitTopLevel(s)
	if len(parts) == 1 {
		inner := strings.TrimSpace(s)
		if n := len(inner); n >= 2 &&
			(inner[0] == '(' && inner[n-1] == ')' || inner[0] == '{' && inner[n-1] == '}') {
			parts = splitTopLevel(inner[1 : n-1])
		}
	}
	if len(parts) != 2 {
		return Layout2d{}, &ParseError{Input: s, Msg: "expected two comma-separated expressions"}
	}
	x, err := Parse(parts[0])
	if err != nil {
		return Layout2d{}, err
	}
	y, err := Parse(parts[1])
	if err != nil {
		return Layout2d{}, err
	}
	return Layout2d{X: x, Y: y}, nil
}

// splitTopLevel splits on commas that are not nested in brackets.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
