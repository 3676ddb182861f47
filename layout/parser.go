package layout

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ParseError reports a malformed layout expression.
type ParseError struct {
	Input  string
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("layout: %s at offset %d in %q", e.Msg, e.Offset, e.Input)
}

type token struct {
	tt     css.TokenType
	text   string
	offset int
}

// tokenize runs the CSS lexer over the input, dropping whitespace and
// comments. Expressions follow CSS calc() conventions: "-" must be
// surrounded by spaces when it follows an identifier, since CSS
// identifiers may contain dashes.
func tokenize(s string) ([]token, error) {
	l := css.NewLexer(parse.NewInputString(s))
	var toks []token
	offset := 0
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			if err := l.Err(); err != nil && err != io.EOF {
				return nil, &ParseError{Input: s, Offset: offset, Msg: err.Error()}
			}
			return toks, nil
		}
		if tt != css.WhitespaceToken && tt != css.CommentToken {
			toks = append(toks, token{tt: tt, text: string(data), offset: offset})
		}
		offset += len(data)
	}
}

type parser struct {
	input string
	toks  []token
	pos   int
}

// Parse parses a scalar layout expression such as "50%", "100 - 20",
// "min(300, parent.width / 2)" or "ok.bottom + 10".
func Parse(s string) (*Expr, error) {
	toks, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, &ParseError{Input: s, Msg: "empty expression"}
	}
	p := &parser{input: s, toks: toks}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.toks) {
		return nil, p.errorf("unexpected %q", p.toks[p.pos].text)
	}
	return e, nil
}

// MustParse is like Parse but panics on error. For literals in code.
func MustParse(s string) *Expr {
	e, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return e
}

func (p *parser) errorf(format string, args ...any) error {
	offset := len(p.input)
	if p.pos < len(p.toks) {
		offset = p.toks[p.pos].offset
	}
	return &ParseError{Input: p.input, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) isDelim(c string) bool {
	t, ok := p.peek()
	return ok && t.tt == css.DelimToken && t.text == c
}

func isNumeric(tt css.TokenType) bool {
	return tt == css.NumberToken || tt == css.PercentageToken || tt == css.DimensionToken
}

// expr := term (("+" | "-") term)*
func (p *parser) expr() (*Expr, error) {
	lhs, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok {
			return lhs, nil
		}
		switch {
		case t.tt == css.DelimToken && (t.text == "+" || t.text == "-"):
			p.pos++
			rhs, err := p.term()
			if err != nil {
				return nil, err
			}
			lhs = binary(opFor(t.text), lhs, rhs)
		case isNumeric(t.tt) && (t.text[0] == '+' || t.text[0] == '-'):
			// "50%-10" lexes as 50% followed by the signed number -10
			p.toks[p.pos].text = t.text[1:]
			rhs, err := p.term()
			if err != nil {
				return nil, err
			}
			lhs = binary(opFor(t.text[:1]), lhs, rhs)
		default:
			return lhs, nil
		}
	}
}

func opFor(s string) Op {
	switch s {
	case "+":
		return OpAdd
	case "-":
		return OpSub
	case "*":
		return OpMul
	}
	return OpDiv
}

// term := unary (("*" | "/") unary)*
func (p *parser) term() (*Expr, error) {
	lhs, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.isDelim("*") || p.isDelim("/") {
		op := opFor(p.toks[p.pos].text)
		p.pos++
		rhs, err := p.unary()
		if err != nil {
			return nil, err
		}
		lhs = binary(op, lhs, rhs)
	}
	return lhs, nil
}

// unary := "-" unary | primary
func (p *parser) unary() (*Expr, error) {
	if p.isDelim("-") {
		p.pos++
		e, err := p.unary()
		if err != nil {
			return nil, err
		}
		return Sub(Px(0), e), nil
	}
	return p.primary()
}

func (p *parser) primary() (*Expr, error) {
	t, ok := p.peek()
	if !ok {
		return nil, p.errorf("unexpected end of expression")
	}
	switch t.tt {
	case css.NumberToken:
		p.pos++
		v, err := parseNumber(t.text)
		if err != nil {
			return nil, p.errorf("bad number %q", t.text)
		}
		return Px(v), nil
	case css.DimensionToken:
		p.pos++
		num, ok := strings.CutSuffix(strings.ToLower(t.text), "px")
		if !ok {
			return nil, &ParseError{Input: p.input, Offset: t.offset, Msg: fmt.Sprintf("unsupported unit in %q", t.text)}
		}
		v, err := parseNumber(num)
		if err != nil {
			return nil, &ParseError{Input: p.input, Offset: t.offset, Msg: fmt.Sprintf("bad number %q", t.text)}
		}
		return Px(v), nil
	case css.PercentageToken:
		p.pos++
		v, err := parseNumber(strings.TrimSuffix(t.text, "%"))
		if err != nil {
			return nil, p.errorf("bad percentage %q", t.text)
		}
		return Percent(v), nil
	case css.LeftParenthesisToken:
		p.pos++
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(css.RightParenthesisToken, ")"); err != nil {
			return nil, err
		}
		return e, nil
	case css.FunctionToken:
		return p.function(t)
	case css.IdentToken:
		p.pos++
		return p.reference(t.text)
	case css.DelimToken:
		if t.text == "&" {
			p.pos++
			return p.reference(ParentRef)
		}
	}
	return nil, p.errorf("unexpected %q", t.text)
}

func (p *parser) function(t token) (*Expr, error) {
	name := strings.ToLower(strings.TrimSuffix(t.text, "("))
	if name != "min" && name != "max" {
		return nil, p.errorf("unknown function %q", name)
	}
	p.pos++
	a, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(css.CommaToken, ","); err != nil {
		return nil, err
	}
	b, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(css.RightParenthesisToken, ")"); err != nil {
		return nil, err
	}
	if name == "min" {
		return Min(a, b), nil
	}
	return Max(a, b), nil
}

// reference := name "." property
func (p *parser) reference(name string) (*Expr, error) {
	if name == "&" {
		name = ParentRef
	}
	if !p.isDelim(".") {
		return nil, p.errorf("expected '.' after %q", name)
	}
	p.pos++
	t, ok := p.peek()
	if !ok || t.tt != css.IdentToken {
		return nil, p.errorf("expected property name after %q", name+".")
	}
	prop, ok := ParseProperty(t.text)
	if !ok {
		return nil, p.errorf("unknown property %q", t.text)
	}
	p.pos++
	return Bind(name, prop), nil
}

func (p *parser) expect(tt css.TokenType, what string) error {
	t, ok := p.peek()
	if !ok || t.tt != tt {
		return p.errorf("expected %q", what)
	}
	p.pos++
	return nil
}

func parseNumber(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	return float32(v), err
}
