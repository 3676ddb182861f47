// Package layout evaluates the symbolic size and position expressions that
// widgets are configured with: pixel literals, percentages of the parent's
// size, references to another widget's last-resolved geometry, arithmetic,
// and min/max.
//
// Evaluation never recurses into another widget's expression. A reference
// reads the value that widget resolved to most recently, so evaluation always
// terminates even if references form a cycle. Cycles are still reported as
// configuration errors by FindCycle, because the result of a cyclic layout
// depends on evaluation order.
package layout

import (
	"strconv"
	"strings"

	"github.com/chewxy/math32"
)

// Property names a scalar that a reference can read from another widget.
type Property uint8

const (
	PropX Property = iota
	PropY
	PropWidth
	PropHeight
	PropRight  // X + Width
	PropBottom // Y + Height
)

var propertyNames = map[Property]string{
	PropX:      "x",
	PropY:      "y",
	PropWidth:  "width",
	PropHeight: "height",
	PropRight:  "right",
	PropBottom: "bottom",
}

func (p Property) String() string {
	if s, ok := propertyNames[p]; ok {
		return s
	}
	return "unknown"
}

// ParseProperty accepts the canonical names plus the short aliases
// left, top, w and h.
func ParseProperty(s string) (Property, bool) {
	switch strings.ToLower(s) {
	case "x", "left":
		return PropX, true
	case "y", "top":
		return PropY, true
	case "width", "w":
		return PropWidth, true
	case "height", "h":
		return PropHeight, true
	case "right":
		return PropRight, true
	case "bottom":
		return PropBottom, true
	}
	return 0, false
}

// ParentRef is the reference name that always means the owning container.
// "&" is accepted as an alias when parsing.
const ParentRef = "parent"

// Resolver supplies the last-resolved geometry of named widgets.
// Implementations return false when the name does not resolve; the
// expression then falls back to the value it read last time.
type Resolver interface {
	Resolve(name string, prop Property) (float32, bool)
}

// Op identifies an expression node kind.
type Op uint8

const (
	OpConst   Op = iota // literal pixels
	OpPercent           // percentage of the parent dimension on the evaluated axis
	OpRef               // another widget's resolved property
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMin
	OpMax
)

// Expr is a node in a layout expression tree. The zero value and the nil
// pointer both evaluate to 0.
type Expr struct {
	op    Op
	value float32 // pixels for OpConst, percent (0-100) for OpPercent
	ref   string
	prop  Property
	lhs   *Expr
	rhs   *Expr

	// last value read through a reference; survives the referenced widget
	// going away
	cached float32
}

// Px returns a literal pixel value.
func Px(v float32) *Expr { return &Expr{op: OpConst, value: v} }

// Percent returns p percent of the parent's size on the evaluated axis.
func Percent(p float32) *Expr { return &Expr{op: OpPercent, value: p} }

// Bind references a property of the named widget.
func Bind(name string, prop Property) *Expr {
	return &Expr{op: OpRef, ref: name, prop: prop}
}

// BindWidth references the named widget's resolved width.
func BindWidth(name string) *Expr { return Bind(name, PropWidth) }

// BindHeight references the named widget's resolved height.
func BindHeight(name string) *Expr { return Bind(name, PropHeight) }

// Add returns a + b.
func Add(a, b *Expr) *Expr { return binary(OpAdd, a, b) }

// Sub returns a - b.
func Sub(a, b *Expr) *Expr { return binary(OpSub, a, b) }

// Mul returns a * b.
func Mul(a, b *Expr) *Expr { return binary(OpMul, a, b) }

// Div returns a / b. Division by zero evaluates to 0.
func Div(a, b *Expr) *Expr { return binary(OpDiv, a, b) }

// Min returns the smaller of a and b.
func Min(a, b *Expr) *Expr { return binary(OpMin, a, b) }

// Max returns the larger of a and b.
func Max(a, b *Expr) *Expr { return binary(OpMax, a, b) }

func binary(op Op, a, b *Expr) *Expr {
	return &Expr{op: op, lhs: a, rhs: b}
}

// Op returns the node kind.
func (e *Expr) Op() Op {
	if e == nil {
		return OpConst
	}
	return e.op
}

// Eval resolves the expression. parent is the parent's size on the axis
// being evaluated (width for x and width, height for y and height).
func (e *Expr) Eval(r Resolver, parent float32) float32 {
	if e == nil {
		return 0
	}
	switch e.op {
	case OpConst:
		return e.value
	case OpPercent:
		return parent * e.value / 100
	case OpRef:
		if r != nil {
			if v, ok := r.Resolve(e.ref, e.prop); ok {
				e.cached = v
			}
		}
		return e.cached
	case OpAdd:
		return e.lhs.Eval(r, parent) + e.rhs.Eval(r, parent)
	case OpSub:
		return e.lhs.Eval(r, parent) - e.rhs.Eval(r, parent)
	case OpMul:
		return e.lhs.Eval(r, parent) * e.rhs.Eval(r, parent)
	case OpDiv:
		d := e.rhs.Eval(r, parent)
		if d == 0 {
			return 0
		}
		return e.lhs.Eval(r, parent) / d
	case OpMin:
		return math32.Min(e.lhs.Eval(r, parent), e.rhs.Eval(r, parent))
	case OpMax:
		return math32.Max(e.lhs.Eval(r, parent), e.rhs.Eval(r, parent))
	}
	return 0
}

// IsConstant reports whether the expression depends on nothing but literals.
func (e *Expr) IsConstant() bool {
	if e == nil {
		return true
	}
	switch e.op {
	case OpConst:
		return true
	case OpPercent, OpRef:
		return false
	}
	return e.lhs.IsConstant() && e.rhs.IsConstant()
}

// Refs returns the distinct widget names this expression references,
// excluding the parent.
func (e *Expr) Refs() []string {
	var out []string
	seen := make(map[string]bool)
	e.walk(func(n *Expr) {
		if n.op == OpRef && n.ref != ParentRef && !seen[n.ref] {
			seen[n.ref] = true
			out = append(out, n.ref)
		}
	})
	return out
}

func (e *Expr) walk(fn func(*Expr)) {
	if e == nil {
		return
	}
	fn(e)
	e.lhs.walk(fn)
	e.rhs.walk(fn)
}

// Clone returns a deep copy, including reference caches.
func (e *Expr) Clone() *Expr {
	if e == nil {
		return nil
	}
	c := *e
	c.lhs = e.lhs.Clone()
	c.rhs = e.rhs.Clone()
	return &c
}

// String renders the expression in the syntax Parse accepts.
func (e *Expr) String() string {
	var sb strings.Builder
	e.format(&sb, 0)
	return sb.String()
}

func precedence(op Op) int {
	switch op {
	case OpAdd, OpSub:
		return 1
	case OpMul, OpDiv:
		return 2
	}
	return 3
}

func (e *Expr) format(sb *strings.Builder, outer int) {
	if e == nil {
		sb.WriteString("0")
		return
	}
	switch e.op {
	case OpConst:
		sb.WriteString(formatFloat(e.value))
	case OpPercent:
		sb.WriteString(formatFloat(e.value))
		sb.WriteByte('%')
	case OpRef:
		sb.WriteString(e.ref)
		sb.WriteByte('.')
		sb.WriteString(e.prop.String())
	case OpMin, OpMax:
		if e.op == OpMin {
			sb.WriteString("min(")
		} else {
			sb.WriteString("max(")
		}
		e.lhs.format(sb, 0)
		sb.WriteString(", ")
		e.rhs.format(sb, 0)
		sb.WriteByte(')')
	default:
		prec := precedence(e.op)
		paren := prec < outer
		if paren {
			sb.WriteByte('(')
		}
		e.lhs.format(sb, prec)
		switch e.op {
		case OpAdd:
			sb.WriteString(" + ")
		case OpSub:
			sb.WriteString(" - ")
		case OpMul:
			sb.WriteString(" * ")
		case OpDiv:
			sb.WriteString(" / ")
		}
		// right operand binds tighter so that a - (b - c) keeps its parens
		e.rhs.format(sb, prec+1)
		if paren {
			sb.WriteByte(')')
		}
	}
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}
