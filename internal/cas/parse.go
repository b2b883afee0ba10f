package cas

import (
	"math/big"
	"strings"

	perr "mathprose/internal/platform/errors"
)

// Equation is lhs = rhs
type Equation struct{ LHS, RHS Expr }

// Eq builds an equation
func Eq(lhs, rhs Expr) *Equation { return &Equation{LHS: lhs, RHS: rhs} }

func (e *Equation) String() string { return e.LHS.String() + " = " + e.RHS.String() }

// Residual is lhs - rhs, simplified
func (e *Equation) Residual() Expr {
	return AddOf(e.LHS, MulOf(N(-1), e.RHS)).Simplify()
}

// Parse reads one expression in the canonical text form: "**" for powers,
// explicit "*" products, decimal or integer literals, identifiers for
// variables, constants and function calls. Parse errors carry the offending
// position and always have code ErrorCodeParse
func Parse(input string) (Expr, error) {
	p := &parser{toks: lex(input), input: input}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		return nil, perr.ParseErrf("unexpected %q at offset %d in %q", p.peek().text, p.peek().pos, input)
	}
	return e.Simplify(), nil
}

// ParseEquation reads "lhs = rhs". Exactly one equals sign is required
func ParseEquation(input string) (*Equation, error) {
	parts := strings.Split(input, "=")
	if len(parts) != 2 {
		return nil, perr.ParseErrf("expected exactly one '=' in %q", input)
	}
	lhs, err := Parse(parts[0])
	if err != nil {
		return nil, err
	}
	rhs, err := Parse(parts[1])
	if err != nil {
		return nil, err
	}
	return Eq(lhs, rhs), nil
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp   // + - * / ( )
	tokPow  // **
	tokBad  // anything unrecognized
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func lex(input string) []token {
	var toks []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n':
			i++
		case c >= '0' && c <= '9':
			j := i
			seenDot := false
			for j < len(input) && (input[j] >= '0' && input[j] <= '9' || input[j] == '.' && !seenDot) {
				if input[j] == '.' {
					seenDot = true
				}
				j++
			}
			toks = append(toks, token{tokNumber, input[i:j], i})
			i = j
		case isLetter(c):
			j := i
			for j < len(input) && (isLetter(input[j]) || input[j] >= '0' && input[j] <= '9') {
				j++
			}
			toks = append(toks, token{tokIdent, input[i:j], i})
			i = j
		case c == '*':
			if i+1 < len(input) && input[i+1] == '*' {
				toks = append(toks, token{tokPow, "**", i})
				i += 2
			} else {
				toks = append(toks, token{tokOp, "*", i})
				i++
			}
		case c == '+' || c == '-' || c == '/' || c == '(' || c == ')':
			toks = append(toks, token{tokOp, string(c), i})
			i++
		default:
			toks = append(toks, token{tokBad, string(c), i})
			i++
		}
	}
	toks = append(toks, token{tokEOF, "", len(input)})
	return toks
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

type parser struct {
	toks  []token
	pos   int
	input string
}

func (p *parser) peek() token { return p.toks[p.pos] }
func (p *parser) next() token { t := p.toks[p.pos]; p.pos++; return t }
func (p *parser) atEOF() bool { return p.peek().kind == tokEOF }

func (p *parser) acceptOp(text string) bool {
	if t := p.peek(); t.kind == tokOp && t.text == text {
		p.pos++
		return true
	}
	return false
}

// expr := term (('+'|'-') term)*
func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.acceptOp("+"):
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = AddOf(left, right)
		case p.acceptOp("-"):
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = AddOf(left, MulOf(N(-1), right))
		default:
			return left, nil
		}
	}
}

// term := unary (('*'|'/') unary)*
func (p *parser) parseTerm() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.acceptOp("*"):
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = MulOf(left, right)
		case p.acceptOp("/"):
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			if n, ok := right.Simplify().(*Num); ok && n.IsZero() {
				return nil, perr.ParseErrf("division by zero in %q", p.input)
			}
			left = MulOf(left, PowOf(right, N(-1)))
		default:
			return left, nil
		}
	}
}

// unary := ('-'|'+') unary | power
func (p *parser) parseUnary() (Expr, error) {
	if p.acceptOp("-") {
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return MulOf(N(-1), e), nil
	}
	if p.acceptOp("+") {
		return p.parseUnary()
	}
	return p.parsePower()
}

// power := atom ('**' unary)?  right-associative
func (p *parser) parsePower() (Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.peek().kind == tokPow {
		p.pos++
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return PowOf(base, exp), nil
	}
	return base, nil
}

// atom := NUMBER | IDENT ['(' expr ')'] | '(' expr ')'
func (p *parser) parseAtom() (Expr, error) {
	t := p.peek()
	switch t.kind {
	case tokNumber:
		p.pos++
		r, ok := new(big.Rat).SetString(t.text)
		if !ok {
			return nil, perr.ParseErrf("bad number %q at offset %d", t.text, t.pos)
		}
		return &Num{val: r}, nil
	case tokIdent:
		p.pos++
		if knownFn(t.text) {
			if !p.acceptOp("(") {
				return nil, perr.ParseErrf("function %q needs an argument at offset %d", t.text, t.pos)
			}
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if !p.acceptOp(")") {
				return nil, perr.ParseErrf("unclosed call to %q at offset %d", t.text, t.pos)
			}
			return fnOf(t.text, arg), nil
		}
		return S(t.text), nil
	case tokOp:
		if t.text == "(" {
			p.pos++
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if !p.acceptOp(")") {
				return nil, perr.ParseErrf("unclosed parenthesis opened at offset %d", t.pos)
			}
			return e, nil
		}
	case tokEOF:
		return nil, perr.ParseErrf("unexpected end of input in %q", p.input)
	}
	return nil, perr.ParseErrf("unexpected %q at offset %d in %q", t.text, t.pos, p.input)
}
