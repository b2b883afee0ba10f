package cas

import (
	"math"
	"math/big"
)

// Fn is a named unary function application. The recognized names are sqrt,
// sin, cos, tan, exp, ln and abs
type Fn struct {
	name string
	arg  Expr
}

func fnOf(name string, arg Expr) *Fn { return &Fn{name: name, arg: arg} }

func SinOf(arg Expr) Expr  { return fnOf("sin", arg).Simplify() }
func CosOf(arg Expr) Expr  { return fnOf("cos", arg).Simplify() }
func TanOf(arg Expr) Expr  { return fnOf("tan", arg).Simplify() }
func ExpOf(arg Expr) Expr  { return fnOf("exp", arg).Simplify() }
func LnOf(arg Expr) Expr   { return fnOf("ln", arg).Simplify() }
func SqrtOf(arg Expr) Expr { return fnOf("sqrt", arg).Simplify() }
func AbsOf(arg Expr) Expr  { return fnOf("abs", arg).Simplify() }

// knownFn reports whether name is a function the parser may apply
func knownFn(name string) bool {
	switch name {
	case "sqrt", "sin", "cos", "tan", "exp", "ln", "abs":
		return true
	}
	return false
}

func (f *Fn) Name() string { return f.name }
func (f *Fn) Arg() Expr    { return f.arg }

func (f *Fn) Simplify() Expr {
	arg := f.arg.Simplify()
	if n, ok := arg.(*Num); ok {
		switch f.name {
		case "sqrt":
			// exact when the argument is a perfect square rational
			if !n.IsNegative() {
				if root, ok := ratSqrt(n); ok {
					return root
				}
			}
		case "abs":
			if n.IsNegative() {
				return numNeg(n)
			}
			return n
		case "sin":
			if n.IsZero() {
				return N(0)
			}
		case "cos":
			if n.IsZero() {
				return N(1)
			}
		case "tan":
			if n.IsZero() {
				return N(0)
			}
		case "exp":
			if n.IsZero() {
				return N(1)
			}
		case "ln":
			if n.IsOne() {
				return N(0)
			}
		}
		return &Fn{name: f.name, arg: arg}
	}
	switch f.name {
	case "ln":
		if inner, ok := arg.(*Fn); ok && inner.name == "exp" {
			return inner.arg
		}
		if s, ok := arg.(*Sym); ok && s.name == "e" {
			return N(1)
		}
	case "exp":
		if inner, ok := arg.(*Fn); ok && inner.name == "ln" {
			return inner.arg
		}
	case "abs":
		if m, ok := arg.(*Mul); ok && len(m.factors) >= 2 {
			if c, ok2 := m.factors[0].(*Num); ok2 && c.IsNegative() {
				return AbsOf(MulOf(append([]Expr{numNeg(c)}, m.factors[1:]...)...))
			}
		}
	}
	return &Fn{name: f.name, arg: arg}
}

// ratSqrt returns the exact square root of a non-negative rational when both
// numerator and denominator are perfect squares
func ratSqrt(n *Num) (*Num, bool) {
	num := n.val.Num()
	den := n.val.Denom()
	sn := new(big.Int).Sqrt(num)
	sd := new(big.Int).Sqrt(den)
	if new(big.Int).Mul(sn, sn).Cmp(num) != 0 {
		return nil, false
	}
	if new(big.Int).Mul(sd, sd).Cmp(den) != 0 {
		return nil, false
	}
	return &Num{val: new(big.Rat).SetFrac(sn, sd)}, true
}

func (f *Fn) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Fn) Sub(name string, value Expr) Expr {
	return fnOf(f.name, f.arg.Sub(name, value)).Simplify()
}

// Diff applies the chain rule for the recognized function names
func (f *Fn) Diff(name string) Expr {
	du := f.arg.Diff(name)
	var outer Expr
	switch f.name {
	case "sin":
		outer = CosOf(f.arg)
	case "cos":
		outer = MulOf(N(-1), SinOf(f.arg))
	case "tan":
		outer = AddOf(N(1), PowOf(TanOf(f.arg), N(2)))
	case "exp":
		outer = ExpOf(f.arg)
	case "ln":
		outer = PowOf(f.arg, N(-1))
	case "sqrt":
		outer = MulOf(F(1, 2), PowOf(SqrtOf(f.arg), N(-1)))
	case "abs":
		// |u|' = u/|u| * u'
		outer = MulOf(f.arg, PowOf(AbsOf(f.arg), N(-1)))
	default:
		return MulOf(fnOf("D["+f.name+"]", f.arg), du)
	}
	return MulOf(outer, du).Simplify()
}

func (f *Fn) Eval() (*Num, bool) {
	n, ok := f.arg.Eval()
	if !ok {
		return nil, false
	}
	v := n.Float64()
	var out float64
	switch f.name {
	case "sqrt":
		if v < 0 {
			return nil, false
		}
		out = math.Sqrt(v)
	case "sin":
		out = math.Sin(v)
	case "cos":
		out = math.Cos(v)
	case "tan":
		out = math.Tan(v)
	case "exp":
		out = math.Exp(v)
	case "ln":
		if v <= 0 {
			return nil, false
		}
		out = math.Log(v)
	case "abs":
		out = math.Abs(v)
	default:
		return nil, false
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return nil, false
	}
	return NFloat(out), true
}

func (f *Fn) Equal(other Expr) bool {
	o, ok := other.(*Fn)
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}
