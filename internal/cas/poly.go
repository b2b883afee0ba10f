package cas

import "sort"

// Expand distributes products over sums and unrolls small integer powers
func Expand(e Expr) Expr { return expandExpr(e).Simplify() }

func expandExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Mul:
		expanded := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			expanded[i] = expandExpr(f)
		}
		for i, f := range expanded {
			a, ok := f.(*Add)
			if !ok {
				continue
			}
			rest := make([]Expr, 0, len(expanded)-1)
			for j, ef := range expanded {
				if j != i {
					rest = append(rest, ef)
				}
			}
			terms := make([]Expr, len(a.terms))
			for k, t := range a.terms {
				terms[k] = expandExpr(MulOf(append([]Expr{t}, rest...)...))
			}
			return expandExpr(AddOf(terms...))
		}
		return MulOf(expanded...)
	case *Add:
		out := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			out[i] = expandExpr(t)
		}
		return AddOf(out...)
	case *Pow:
		base := expandExpr(v.base)
		// only a sum raised to a small integer power needs unrolling;
		// powers of plain factors are already in expanded form, and
		// multiplying x by itself would canonicalize straight back to
		// x**2 and loop
		if n, ok := v.exp.(*Num); ok && n.IsInteger() {
			if a, isAdd := base.(*Add); isAdd {
				e := n.val.Num().Int64()
				if e >= 2 && e <= 10 {
					acc := a.terms
					for i := int64(1); i < e; i++ {
						acc = crossTerms(acc, a.terms)
					}
					return AddOf(acc...)
				}
			}
		}
		return &Pow{base: base, exp: expandExpr(v.exp)}
	}
	return e
}

// crossTerms multiplies every term of a with every term of b. The inputs are
// sum-free after expansion, so the products need no further distribution
func crossTerms(a, b []Expr) []Expr {
	out := make([]Expr, 0, len(a)*len(b))
	for _, ta := range a {
		for _, tb := range b {
			out = append(out, MulOf(ta, tb))
		}
	}
	return out
}

// FreeSymbols returns the variable names in e, sorted. Known constants are
// not variables
func FreeSymbols(e Expr) []string {
	set := map[string]struct{}{}
	collectSymbols(e, set)
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		if _, isConst := constants[v.name]; !isConst && v.name != "oo" {
			out[v.name] = struct{}{}
		}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Fn:
		collectSymbols(v.arg, out)
	}
}

// Degree is the polynomial degree of e in name, 0 when e does not depend on it
func Degree(e Expr, name string) int {
	switch v := e.Simplify().(type) {
	case *Sym:
		if v.name == name {
			return 1
		}
		return 0
	case *Pow:
		if sym, ok := v.base.(*Sym); ok && sym.name == name {
			if n, ok2 := v.exp.(*Num); ok2 && n.IsInteger() {
				return int(n.val.Num().Int64())
			}
		}
		return 0
	case *Add:
		maxDeg := 0
		for _, t := range v.terms {
			if d := Degree(t, name); d > maxDeg {
				maxDeg = d
			}
		}
		return maxDeg
	case *Mul:
		total := 0
		for _, f := range v.factors {
			total += Degree(f, name)
		}
		return total
	}
	return 0
}

// minDegree is the smallest power of name appearing in e. Negative when e has
// terms like name**(-1); 0 when e does not depend on name
func minDegree(e Expr, name string) int {
	switch v := e.(type) {
	case *Sym:
		if v.name == name {
			return 1
		}
		return 0
	case *Pow:
		if sym, ok := v.base.(*Sym); ok && sym.name == name {
			if n, ok2 := v.exp.(*Num); ok2 && n.IsInteger() {
				return int(n.val.Num().Int64())
			}
		}
		return 0
	case *Add:
		min := 0
		for i, t := range v.terms {
			d := minDegree(t, name)
			if i == 0 || d < min {
				min = d
			}
		}
		return min
	case *Mul:
		total := 0
		for _, f := range v.factors {
			total += minDegree(f, name)
		}
		return total
	}
	return 0
}

// PolyCoeffs maps degree to coefficient for e viewed as a polynomial in name.
// Non-polynomial structure lands in the degree-0 bucket; callers that need a
// true polynomial should Expand first and check the coefficients evaluate
func PolyCoeffs(e Expr, name string) map[int]Expr {
	out := map[int]Expr{}
	extractCoeffs(e.Simplify(), name, out)
	return out
}

func extractCoeffs(e Expr, name string, out map[int]Expr) {
	switch v := e.(type) {
	case *Num:
		addCoeff(out, 0, v)
	case *Sym:
		if v.name == name {
			addCoeff(out, 1, N(1))
		} else {
			addCoeff(out, 0, v)
		}
	case *Pow:
		if sym, ok := v.base.(*Sym); ok && sym.name == name {
			if n, ok2 := v.exp.(*Num); ok2 && n.IsInteger() && !n.IsNegative() {
				addCoeff(out, int(n.val.Num().Int64()), N(1))
				return
			}
		}
		addCoeff(out, 0, e)
	case *Mul:
		deg := 0
		coeffFactors := []Expr{}
		for _, f := range v.factors {
			if d := Degree(f, name); d > 0 {
				deg += d
			} else {
				coeffFactors = append(coeffFactors, f)
			}
		}
		var coeff Expr
		switch len(coeffFactors) {
		case 0:
			coeff = N(1)
		case 1:
			coeff = coeffFactors[0]
		default:
			coeff = MulOf(coeffFactors...)
		}
		addCoeff(out, deg, coeff)
	case *Add:
		for _, t := range v.terms {
			extractCoeffs(t, name, out)
		}
	default:
		addCoeff(out, 0, e)
	}
}

func addCoeff(out map[int]Expr, deg int, val Expr) {
	if existing, ok := out[deg]; ok {
		out[deg] = AddOf(existing, val).Simplify()
	} else {
		out[deg] = val.Simplify()
	}
}

// Factor rewrites a quadratic or linear polynomial in name as a product of
// linear factors when the roots are rational. The second return is false when
// no factored form was found; callers keep the original expression then
func Factor(e Expr, name string) (Expr, bool) {
	expanded := Expand(e)
	deg := Degree(expanded, name)
	if deg == 1 {
		return factorLinear(expanded, name)
	}
	if deg != 2 {
		return e, false
	}
	coeffs := PolyCoeffs(expanded, name)
	a, aok := coeffNum(coeffs, 2)
	b, bok := coeffNum(coeffs, 1)
	c, cok := coeffNum(coeffs, 0)
	if !aok || !bok || !cok || a.IsZero() {
		return e, false
	}
	// rational roots only: the discriminant must be a perfect square
	disc := numSub(numMul(b, b), numMul(numMul(N(4), a), c))
	if disc.IsNegative() {
		return e, false
	}
	sq, ok := ratSqrt(disc)
	if !ok {
		return e, false
	}
	twoA := numMul(N(2), a)
	r1 := numDiv(numAdd(numNeg(b), sq), twoA)
	r2 := numDiv(numSub(numNeg(b), sq), twoA)
	if numCmp(r1, r2) > 0 {
		r1, r2 = r2, r1
	}
	f1 := AddOf(S(name), numNeg(r1))
	f2 := AddOf(S(name), numNeg(r2))
	if a.IsOne() {
		return &Mul{factors: []Expr{f1, f2}}, true
	}
	return &Mul{factors: []Expr{a, f1, f2}}, true
}

// factorLinear pulls the leading numeric coefficient out of a*x + b,
// giving a*(x + b/a). A unit coefficient leaves nothing to pull
func factorLinear(expanded Expr, name string) (Expr, bool) {
	coeffs := PolyCoeffs(expanded, name)
	a, aok := coeffNum(coeffs, 1)
	b, bok := coeffNum(coeffs, 0)
	if !aok || !bok || a.IsZero() || a.IsOne() {
		return expanded, false
	}
	inner := AddOf(S(name), numDiv(b, a)).Simplify()
	return &Mul{factors: []Expr{a, inner}}, true
}

func coeffNum(coeffs map[int]Expr, deg int) (*Num, bool) {
	e, ok := coeffs[deg]
	if !ok {
		return N(0), true
	}
	return e.Eval()
}
