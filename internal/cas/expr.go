// Package cas is the embedded symbolic math engine behind the solver.
//
// Design goals:
//   - Exact rational arithmetic (math/big.Rat)
//   - Deterministic simplification and stable output
//   - Failure as a value: unsolvable inputs are reported, never panicked
//
// The canonical text form uses "**" for powers and "*" for products, matching
// what the normalizer emits, so Parse(e.String()) round-trips
package cas

import (
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// Expr is a node in the immutable expression tree. Simplify returns a
// canonical equivalent; Eval reports a numeric value only when every leaf is
// numeric or a known constant
type Expr interface {
	Simplify() Expr
	String() string
	Sub(name string, value Expr) Expr
	Diff(name string) Expr
	Eval() (*Num, bool)
	Equal(other Expr) bool
}

// constants recognized by name. oo is deliberately absent: infinity is
// symbolic only and never evaluates
var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// Num is an exact rational number
type Num struct{ val *big.Rat }

// N builds an integer Num
func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

// F builds the fraction p/q
func F(p, q int64) *Num {
	if q == 0 {
		panic("cas: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// NFloat builds a Num from a float64; the binary value is taken exactly
func NFloat(f float64) *Num { return &Num{val: new(big.Rat).SetFloat64(f)} }

func (n *Num) Simplify() Expr        { return n }
func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) Diff(string) Expr      { return N(0) }
func (n *Num) Eval() (*Num, bool)    { return n, true }
func (n *Num) Equal(other Expr) bool { o, ok := other.(*Num); return ok && n.val.Cmp(o.val) == 0 }

func (n *Num) Float64() float64 { f, _ := n.val.Float64(); return f }
func (n *Num) IsZero() bool     { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool      { return n.val.Cmp(big.NewRat(1, 1)) == 0 }
func (n *Num) IsNegOne() bool   { return n.val.Cmp(big.NewRat(-1, 1)) == 0 }
func (n *Num) IsInteger() bool  { return n.val.IsInt() }
func (n *Num) IsNegative() bool { return n.val.Sign() < 0 }
func (n *Num) Rat() *big.Rat    { return new(big.Rat).Set(n.val) }

// String prints integers bare, finite decimals in decimal notation, small
// fractions exactly as p/q, and everything else as the shortest float64
// round-trip
func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	if digits, ok := decimalDigits(n.val); ok && digits <= 12 {
		s := n.val.FloatString(digits)
		s = strings.TrimRight(s, "0")
		return strings.TrimRight(s, ".")
	}
	if n.val.Denom().Cmp(big.NewInt(10000)) <= 0 {
		return n.val.RatString()
	}
	f, _ := n.val.Float64()
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// decimalDigits reports how many decimal places represent r exactly, when the
// denominator is of the form 2^a * 5^b
func decimalDigits(r *big.Rat) (int, bool) {
	d := new(big.Int).Set(r.Denom())
	digits := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		digits++
	}
	five := big.NewInt(5)
	rem := new(big.Int)
	fives := 0
	for {
		q, r2 := new(big.Int).QuoRem(d, five, rem)
		if r2.Sign() != 0 {
			break
		}
		d = q
		fives++
	}
	if d.Cmp(big.NewInt(1)) != 0 {
		return 0, false
	}
	if fives > digits {
		digits = fives
	}
	return digits, true
}

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numSub(a, b *Num) *Num { return &Num{val: new(big.Rat).Sub(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }
func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("cas: division by zero")
	}
	return &Num{val: new(big.Rat).Inv(a.val)}
}
func numDiv(a, b *Num) *Num { return numMul(a, numRecip(b)) }
func numCmp(a, b *Num) int  { return a.val.Cmp(b.val) }

// Sym is a named variable or constant
type Sym struct{ name string }

// S builds a symbol
func S(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Simplify() Expr { return s }
func (s *Sym) String() string { return s.name }
func (s *Sym) Name() string   { return s.name }
func (s *Sym) Eval() (*Num, bool) {
	if v, ok := constants[s.name]; ok {
		return NFloat(v), true
	}
	return nil, false
}
func (s *Sym) Equal(other Expr) bool { o, ok := other.(*Sym); return ok && s.name == o.name }
func (s *Sym) Sub(name string, value Expr) Expr {
	if s.name == name {
		return value
	}
	return s
}
func (s *Sym) Diff(name string) Expr {
	if s.name == name {
		return N(1)
	}
	return N(0)
}

// Add is a flattened sum of terms
type Add struct{ terms []Expr }

// AddOf builds and simplifies a sum
func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

func (a *Add) Terms() []Expr { return a.terms }

func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}

	// fold numerics, merge like symbol terms, keep the rest
	numAccum := N(0)
	symCoeffs := map[string]*Num{}
	symOrder := []string{}
	others := []Expr{}
	for _, t := range flat {
		switch v := t.(type) {
		case *Num:
			numAccum = numAdd(numAccum, v)
		case *Sym:
			if _, seen := symCoeffs[v.name]; !seen {
				symOrder = append(symOrder, v.name)
				symCoeffs[v.name] = N(0)
			}
			symCoeffs[v.name] = numAdd(symCoeffs[v.name], N(1))
		default:
			if c, sym, ok := numTimesSym(t); ok {
				if _, seen := symCoeffs[sym]; !seen {
					symOrder = append(symOrder, sym)
					symCoeffs[sym] = N(0)
				}
				symCoeffs[sym] = numAdd(symCoeffs[sym], c)
			} else {
				others = append(others, t)
			}
		}
	}

	result := []Expr{}
	sort.Strings(symOrder)
	for _, name := range symOrder {
		coeff := symCoeffs[name]
		if coeff.IsZero() {
			continue
		}
		if coeff.IsOne() {
			result = append(result, S(name))
		} else {
			result = append(result, MulOf(coeff, S(name)))
		}
	}
	result = append(result, others...)
	if !numAccum.IsZero() {
		result = append(result, numAccum)
	}
	if len(result) == 0 {
		return N(0)
	}
	if len(result) == 1 {
		return result[0]
	}
	return &Add{terms: result}
}

// numTimesSym matches the two-factor shape coeff*symbol
func numTimesSym(e Expr) (*Num, string, bool) {
	m, ok := e.(*Mul)
	if !ok || len(m.factors) != 2 {
		return nil, "", false
	}
	c, ok := m.factors[0].(*Num)
	if !ok {
		return nil, "", false
	}
	s, ok := m.factors[1].(*Sym)
	if !ok {
		return nil, "", false
	}
	return c, s.name, true
}

func (a *Add) String() string {
	if len(a.terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range a.terms {
		part := t.String()
		if i == 0 {
			sb.WriteString(part)
			continue
		}
		if rest, ok := strings.CutPrefix(part, "-"); ok {
			sb.WriteString(" - ")
			sb.WriteString(rest)
		} else {
			sb.WriteString(" + ")
			sb.WriteString(part)
		}
	}
	return sb.String()
}

func (a *Add) Sub(name string, value Expr) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Sub(name, value)
	}
	return AddOf(out...)
}

func (a *Add) Diff(name string) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Diff(name)
	}
	return AddOf(out...)
}

func (a *Add) Eval() (*Num, bool) {
	acc := N(0)
	for _, t := range a.terms {
		v, ok := t.Eval()
		if !ok {
			return nil, false
		}
		acc = numAdd(acc, v)
	}
	return acc, true
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

// Mul is a flattened product of factors
type Mul struct{ factors []Expr }

// MulOf builds and simplifies a product
func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

func (m *Mul) Factors() []Expr { return m.factors }

func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}

	coeff := N(1)
	others := []Expr{}
	for _, f := range flat {
		if v, ok := f.(*Num); ok {
			coeff = numMul(coeff, v)
		} else {
			others = append(others, f)
		}
	}
	if coeff.IsZero() {
		return N(0)
	}
	if len(others) == 0 {
		return coeff
	}

	// stable factor order keyed by the printed form
	sort.SliceStable(others, func(i, j int) bool {
		return others[i].String() < others[j].String()
	})
	others = mergePowers(others)

	if coeff.IsOne() {
		if len(others) == 1 {
			return others[0]
		}
		return &Mul{factors: others}
	}
	return &Mul{factors: append([]Expr{coeff}, others...)}
}

// mergePowers collapses adjacent equal bases: x*x -> x**2, x*x**2 -> x**3
func mergePowers(factors []Expr) []Expr {
	out := make([]Expr, 0, len(factors))
	for _, f := range factors {
		base, exp := splitPower(f)
		if len(out) > 0 {
			pbase, pexp := splitPower(out[len(out)-1])
			if pbase.Equal(base) {
				if en, ok1 := exp.(*Num); ok1 {
					if pn, ok2 := pexp.(*Num); ok2 {
						out[len(out)-1] = PowOf(base, numAdd(pn, en))
						continue
					}
				}
			}
		}
		out = append(out, f)
	}
	return out
}

func splitPower(e Expr) (Expr, Expr) {
	if p, ok := e.(*Pow); ok {
		return p.base, p.exp
	}
	return e, N(1)
}

func (m *Mul) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	factors := m.factors
	prefix := ""
	if n, ok := factors[0].(*Num); ok && n.IsNegOne() && len(factors) > 1 {
		prefix = "-"
		factors = factors[1:]
	}
	parts := make([]string, len(factors))
	for i, f := range factors {
		if _, isAdd := f.(*Add); isAdd {
			parts[i] = "(" + f.String() + ")"
		} else {
			parts[i] = f.String()
		}
	}
	return prefix + strings.Join(parts, "*")
}

func (m *Mul) Sub(name string, value Expr) Expr {
	out := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		out[i] = f.Sub(name, value)
	}
	return MulOf(out...)
}

// Diff applies the product rule across all factors
func (m *Mul) Diff(name string) Expr {
	terms := make([]Expr, len(m.factors))
	for i, fi := range m.factors {
		dfi := fi.Diff(name)
		others := make([]Expr, 0, len(m.factors)-1)
		for j, fj := range m.factors {
			if j != i {
				others = append(others, fj)
			}
		}
		if len(others) == 0 {
			terms[i] = dfi
		} else {
			terms[i] = MulOf(append([]Expr{dfi}, others...)...)
		}
	}
	return AddOf(terms...)
}

func (m *Mul) Eval() (*Num, bool) {
	acc := N(1)
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return nil, false
		}
		acc = numMul(acc, v)
	}
	return acc, true
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

// Pow is base raised to exp
type Pow struct{ base, exp Expr }

// PowOf builds and simplifies a power
func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

func (p *Pow) Base() Expr     { return p.base }
func (p *Pow) Exponent() Expr { return p.exp }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if en, ok := exp.(*Num); ok {
		if en.IsZero() {
			return N(1)
		}
		if en.IsOne() {
			return base
		}
	}
	if bn, ok := base.(*Num); ok {
		if bn.IsZero() {
			// 0**0 and 0**negative stay unevaluated
			if en, ok2 := exp.(*Num); ok2 && (en.IsZero() || en.IsNegative()) {
				return &Pow{base: base, exp: exp}
			}
			return N(0)
		}
		if bn.IsOne() {
			return N(1)
		}
		if en, ok2 := exp.(*Num); ok2 && en.IsInteger() {
			e := en.val.Num().Int64()
			if e >= -20 && e <= 20 {
				return ratPow(bn, e)
			}
		}
	}
	if inner, ok := base.(*Pow); ok {
		return PowOf(inner.base, MulOf(inner.exp, exp))
	}
	return &Pow{base: base, exp: exp}
}

func ratPow(b *Num, e int64) *Num {
	neg := e < 0
	if neg {
		e = -e
	}
	result := N(1)
	for i := int64(0); i < e; i++ {
		result = numMul(result, b)
	}
	if neg {
		return numRecip(result)
	}
	return result
}

func (p *Pow) String() string {
	baseStr := p.base.String()
	expStr := p.exp.String()
	switch p.base.(type) {
	case *Add, *Mul:
		baseStr = "(" + baseStr + ")"
	case *Num:
		if strings.ContainsAny(baseStr, "-./") {
			baseStr = "(" + baseStr + ")"
		}
	}
	switch p.exp.(type) {
	case *Add, *Mul:
		expStr = "(" + expStr + ")"
	case *Num:
		if strings.ContainsAny(expStr, "-./") {
			expStr = "(" + expStr + ")"
		}
	}
	return baseStr + "**" + expStr
}

func (p *Pow) Sub(name string, value Expr) Expr {
	return PowOf(p.base.Sub(name, value), p.exp.Sub(name, value))
}

func (p *Pow) Diff(name string) Expr {
	du := p.base.Diff(name)
	dv := p.exp.Diff(name)
	if _, ok := p.exp.(*Num); ok {
		// power rule with the chain factor
		return MulOf(p.exp, PowOf(p.base, AddOf(p.exp, N(-1))), du)
	}
	if _, ok := p.base.(*Num); ok {
		// a**u differentiates through ln
		return MulOf(PowOf(p.base, p.exp), LnOf(p.base), dv)
	}
	logTerm := MulOf(dv, LnOf(p.base))
	divTerm := MulOf(p.exp, du, PowOf(p.base, N(-1)))
	return MulOf(PowOf(p.base, p.exp), AddOf(logTerm, divTerm))
}

func (p *Pow) Eval() (*Num, bool) {
	b, ok1 := p.base.Eval()
	e, ok2 := p.exp.Eval()
	if !ok1 || !ok2 {
		return nil, false
	}
	if e.IsInteger() {
		ev := e.val.Num().Int64()
		if ev >= -64 && ev <= 64 && !(b.IsZero() && ev <= 0) {
			return ratPow(b, ev), true
		}
	}
	pf := math.Pow(b.Float64(), e.Float64())
	if math.IsNaN(pf) || math.IsInf(pf, 0) {
		return nil, false
	}
	return NFloat(pf), true
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}
