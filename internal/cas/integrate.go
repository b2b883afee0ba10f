package cas

// Diff differentiates e with respect to name and simplifies the result
func Diff(e Expr, name string) Expr {
	return e.Diff(name).Simplify()
}

// Integrate returns an antiderivative of e with respect to name. It is
// rule-based: linearity, the power rule including 1/x, exponentials, and
// sin/cos with linear arguments. The second return is false when no rule
// applies; integration failure is a value, not an error
func Integrate(e Expr, name string) (Expr, bool) {
	switch v := e.Simplify().(type) {
	case *Num:
		return MulOf(v, S(name)), true
	case *Sym:
		if v.name == name {
			return MulOf(F(1, 2), PowOf(S(name), N(2))), true
		}
		return MulOf(v, S(name)), true
	case *Pow:
		if sym, ok := v.base.(*Sym); ok && sym.name == name {
			if n, ok2 := v.exp.(*Num); ok2 {
				if n.IsNegOne() {
					return LnOf(AbsOf(S(name))), true
				}
				up := numAdd(n, N(1))
				return MulOf(numRecip(up), PowOf(S(name), up)), true
			}
		}
		// a**x integrates to a**x / ln(a)
		if sym, ok := v.exp.(*Sym); ok && sym.name == name {
			if _, ok2 := v.base.(*Num); ok2 {
				return MulOf(PowOf(v.base, S(name)), PowOf(LnOf(v.base), N(-1))), true
			}
		}
		return nil, false
	case *Mul:
		coeff := N(1)
		rest := []Expr{}
		for _, f := range v.factors {
			if n, ok := f.(*Num); ok {
				coeff = numMul(coeff, n)
			} else {
				rest = append(rest, f)
			}
		}
		// only linearity applies to products; without a numeric factor to
		// pull out there is no rule, and recursing would never terminate
		if len(rest) == len(v.factors) && len(rest) > 1 {
			return nil, false
		}
		var inner Expr
		switch len(rest) {
		case 0:
			inner = N(1)
		case 1:
			inner = rest[0]
		default:
			inner = &Mul{factors: rest}
		}
		anti, ok := Integrate(inner, name)
		if !ok {
			return nil, false
		}
		return MulOf(coeff, anti).Simplify(), true
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			anti, ok := Integrate(t, name)
			if !ok {
				return nil, false
			}
			terms[i] = anti
		}
		return AddOf(terms...).Simplify(), true
	case *Fn:
		return integrateFn(v, name)
	}
	return nil, false
}

// integrateFn covers the recognized functions applied to the bare variable or
// to a linear multiple of it
func integrateFn(f *Fn, name string) (Expr, bool) {
	bare := func() bool {
		s, ok := f.arg.(*Sym)
		return ok && s.name == name
	}
	// k from an argument of the shape k*name
	linearCoeff := func() (*Num, bool) {
		m, ok := f.arg.(*Mul)
		if !ok || len(m.factors) != 2 {
			return nil, false
		}
		c, ok := m.factors[0].(*Num)
		if !ok {
			return nil, false
		}
		s, ok := m.factors[1].(*Sym)
		if !ok || s.name != name {
			return nil, false
		}
		return c, true
	}

	switch f.name {
	case "sin":
		if bare() {
			return MulOf(N(-1), CosOf(S(name))), true
		}
		if k, ok := linearCoeff(); ok {
			return MulOf(N(-1), numRecip(k), CosOf(f.arg)), true
		}
	case "cos":
		if bare() {
			return SinOf(S(name)), true
		}
		if k, ok := linearCoeff(); ok {
			return MulOf(numRecip(k), SinOf(f.arg)), true
		}
	case "exp":
		if bare() {
			return ExpOf(S(name)), true
		}
		if k, ok := linearCoeff(); ok {
			return MulOf(numRecip(k), ExpOf(f.arg)), true
		}
	case "ln":
		if bare() {
			return AddOf(MulOf(S(name), LnOf(S(name))), MulOf(N(-1), S(name))), true
		}
	case "sqrt":
		if bare() {
			// x^(1/2) by the power rule
			return MulOf(F(2, 3), PowOf(S(name), F(3, 2))), true
		}
	}
	return nil, false
}
