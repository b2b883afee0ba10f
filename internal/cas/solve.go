package cas

import (
	"sort"

	perr "mathprose/internal/platform/errors"
)

// Binding is one solved variable in a system
type Binding struct {
	Var   string
	Value Expr
}

// SolveEquation solves eq for name over the reals. An empty slice with a nil
// error means the equation provably has no real solution; that is a valid
// outcome, not a failure. When name is empty the equation must have exactly
// one free variable
func SolveEquation(eq *Equation, name string) ([]Expr, error) {
	residual := Expand(eq.Residual())

	if name == "" {
		free := FreeSymbols(residual)
		switch len(free) {
		case 0:
			if n, ok := residual.Eval(); ok && n.IsZero() {
				return nil, perr.BackendSolvef("identity holds for all values")
			}
			return []Expr{}, nil
		case 1:
			name = free[0]
		default:
			return nil, perr.BackendSolvef("equation has %d free variables, need a target", len(free))
		}
	}

	// clear denominators: 1/6 + 1/3 = 1/x becomes a polynomial after
	// multiplying through by x. Roots are re-checked against the original
	// residual so none introduced by the multiplication survive
	rational := residual
	cleared := false
	if m := minDegree(residual, name); m < 0 {
		residual = Expand(MulOf(residual, PowOf(S(name), N(int64(-m)))))
		cleared = true
	}

	deg := Degree(residual, name)
	coeffs := PolyCoeffs(residual, name)

	var roots []Expr
	switch deg {
	case 0:
		if n, ok := residual.Eval(); ok {
			if n.IsZero() {
				return nil, perr.BackendSolvef("identity holds for all values")
			}
			return []Expr{}, nil
		}
		return nil, perr.BackendSolvef("cannot solve %q for %q", eq, name)
	case 1:
		c1 := coeffAt(coeffs, 1)
		c0 := coeffAt(coeffs, 0)
		a, aok := c1.Eval()
		b, bok := c0.Eval()
		if !aok || !bok {
			// symbolic coefficients: x = -c0/c1
			return []Expr{MulOf(N(-1), c0, PowOf(c1, N(-1))).Simplify()}, nil
		}
		if a.IsZero() {
			if b.IsZero() {
				return nil, perr.BackendSolvef("identity holds for all values")
			}
			return []Expr{}, nil
		}
		roots = []Expr{numNeg(numDiv(b, a))}
	case 2:
		var err error
		roots, err = solveQuadratic(coeffs, eq)
		if err != nil {
			return nil, err
		}
	default:
		return nil, perr.BackendSolvef("cannot solve degree %d polynomial in %q", deg, name)
	}

	if cleared {
		roots = filterRoots(rational, name, roots)
	}
	return roots, nil
}

// filterRoots drops candidates that do not satisfy the pre-clearing residual,
// either because it is undefined there or evaluates away from zero
func filterRoots(residual Expr, name string, roots []Expr) []Expr {
	kept := make([]Expr, 0, len(roots))
	for _, r := range roots {
		v, ok := residual.Sub(name, r).Simplify().Eval()
		if !ok {
			continue
		}
		f := v.Float64()
		if v.IsZero() || (f < 1e-9 && f > -1e-9) {
			kept = append(kept, r)
		}
	}
	return kept
}

func coeffAt(coeffs map[int]Expr, deg int) Expr {
	if e, ok := coeffs[deg]; ok {
		return e
	}
	return N(0)
}

// solveQuadratic returns real roots in ascending order. Rational roots stay
// exact; irrational ones fall back to float64
func solveQuadratic(coeffs map[int]Expr, eq *Equation) ([]Expr, error) {
	a, aok := coeffAt(coeffs, 2).Eval()
	b, bok := coeffAt(coeffs, 1).Eval()
	c, cok := coeffAt(coeffs, 0).Eval()
	if !aok || !bok || !cok {
		return nil, perr.BackendSolvef("quadratic %q has non-numeric coefficients", eq)
	}
	disc := numSub(numMul(b, b), numMul(numMul(N(4), a), c))
	if disc.IsNegative() {
		// no real roots: a valid empty solution set
		return []Expr{}, nil
	}
	twoA := numMul(N(2), a)
	if sq, ok := ratSqrt(disc); ok {
		if sq.IsZero() {
			return []Expr{numDiv(numNeg(b), twoA)}, nil
		}
		r1 := numDiv(numAdd(numNeg(b), sq), twoA)
		r2 := numDiv(numSub(numNeg(b), sq), twoA)
		if numCmp(r1, r2) > 0 {
			r1, r2 = r2, r1
		}
		return []Expr{r1, r2}, nil
	}
	sqf, _ := SqrtOf(disc).Eval()
	r1 := numDiv(numAdd(numNeg(b), sqf), twoA)
	r2 := numDiv(numSub(numNeg(b), sqf), twoA)
	if numCmp(r1, r2) > 0 {
		r1, r2 = r2, r1
	}
	return []Expr{r1, r2}, nil
}

// SolveSystem solves a 2x2 linear system by Cramer's rule. The two variables
// are the free symbols of the equations, bound in sorted name order
func SolveSystem(eqs []*Equation) ([]Binding, error) {
	if len(eqs) != 2 {
		return nil, perr.BackendSolvef("need exactly 2 equations, got %d", len(eqs))
	}
	vars := map[string]struct{}{}
	residuals := make([]Expr, len(eqs))
	for i, eq := range eqs {
		residuals[i] = Expand(eq.Residual())
		collectSymbols(residuals[i], vars)
	}
	if len(vars) != 2 {
		return nil, perr.BackendSolvef("need exactly 2 unknowns, got %d", len(vars))
	}
	// the names come from the collected set, never from a combined
	// expression: summing the residuals of x+y=50 and x-y=10 cancels y
	names := make([]string, 0, len(vars))
	for v := range vars {
		names = append(names, v)
	}
	sort.Strings(names)
	x, y := names[0], names[1]

	// residual = a*x + b*y + c with numeric a, b, c
	row := func(res Expr) (a, b, c *Num, err error) {
		a, ok := Diff(res, x).Eval()
		if !ok {
			return nil, nil, nil, perr.BackendSolvef("system is not linear in %q", x)
		}
		b, ok = Diff(res, y).Eval()
		if !ok {
			return nil, nil, nil, perr.BackendSolvef("system is not linear in %q", y)
		}
		c, ok = res.Sub(x, N(0)).Sub(y, N(0)).Simplify().Eval()
		if !ok {
			return nil, nil, nil, perr.BackendSolvef("system has non-numeric terms")
		}
		return a, b, c, nil
	}
	a1, b1, c1, err := row(residuals[0])
	if err != nil {
		return nil, err
	}
	a2, b2, c2, err := row(residuals[1])
	if err != nil {
		return nil, err
	}

	det := numSub(numMul(a1, b2), numMul(a2, b1))
	if det.IsZero() {
		return nil, perr.BackendSolvef("system is singular, no unique solution")
	}
	// a*x + b*y = -c
	r1 := numNeg(c1)
	r2 := numNeg(c2)
	xv := numDiv(numSub(numMul(r1, b2), numMul(r2, b1)), det)
	yv := numDiv(numSub(numMul(a1, r2), numMul(a2, r1)), det)
	return []Binding{{Var: x, Value: xv}, {Var: y, Value: yv}}, nil
}
