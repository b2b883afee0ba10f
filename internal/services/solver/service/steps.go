package service

import (
	"sort"
	"strings"

	"mathprose/internal/cas"
	"mathprose/internal/core/dispatch"
	perr "mathprose/internal/platform/errors"
	"mathprose/internal/services/solver/domain"
)

// run executes one dispatch decision against the backend and renders the
// derivation steps. original is the untouched problem text, expr the
// candidate expression the decision was made on
func (s *Service) run(original, expr string, dec dispatch.Decision) (domain.Result, error) {
	res := domain.Result{
		Expression: expr,
		Operation:  string(dec.Op),
	}

	switch dec.Op {
	case dispatch.OpEvaluate:
		return s.runEvaluate(res, original, dec)
	case dispatch.OpSolve:
		return s.runSolve(res, original, dec)
	case dispatch.OpDifferentiate:
		return s.runDerivative(res, dec)
	case dispatch.OpIntegrate:
		return s.runIntegral(res, dec)
	case dispatch.OpSolveSystem:
		return s.runSystem(res, original, dec)
	case dispatch.OpSolveEquation:
		return s.runEquation(res, dec)
	case dispatch.OpGeneral:
		return s.runGeneral(res, dec)
	}
	return domain.Result{}, perr.BackendSolvef("no handler for operation %q", dec.Op)
}

func (s *Service) runEvaluate(res domain.Result, original string, dec dispatch.Decision) (domain.Result, error) {
	e, err := cas.Parse(dec.Expression)
	if err != nil {
		return domain.Result{}, err
	}
	n, ok := e.Eval()
	if !ok {
		return domain.Result{}, perr.BackendSolvef("expression %q is not closed", dec.Expression)
	}
	res.Steps = []string{
		"Original problem: " + original,
		"Evaluating: " + dec.Expression,
		"Numerical value: " + n.String(),
	}
	res.Answer = n.String()
	return res, nil
}

func (s *Service) runSolve(res domain.Result, original string, dec dispatch.Decision) (domain.Result, error) {
	eq, err := equationOf(dec.Expression)
	if err != nil {
		return domain.Result{}, err
	}
	roots, err := cas.SolveEquation(eq, dec.Variable)
	if err != nil {
		return domain.Result{}, err
	}
	res.Steps = []string{
		"Original problem: " + original,
		"Equation to solve: " + dec.Expression,
		"Rearranged as: " + eq.Residual().String() + " = 0",
		"Solving for " + dec.Variable + "...",
	}
	if len(roots) == 0 {
		res.Steps = append(res.Steps, "No real solutions found")
		res.Answer = "No real solutions"
		return res, nil
	}
	joined := joinExprs(roots)
	res.Steps = append(res.Steps, "Solutions found: "+joined)
	res.Answer = dec.Variable + " = " + joined
	res.Solutions = map[string][]string{dec.Variable: exprStrings(roots)}
	return res, nil
}

func (s *Service) runDerivative(res domain.Result, dec dispatch.Decision) (domain.Result, error) {
	f, err := cas.Parse(dec.Expression)
	if err != nil {
		return domain.Result{}, err
	}
	d := cas.Diff(f, dec.Variable)
	v := dec.Variable
	res.Steps = []string{
		"Find the derivative of: f(" + v + ") = " + f.String(),
		"Using differentiation rules...",
		"f'(" + v + ") = " + d.String(),
	}
	res.Answer = "f'(" + v + ") = " + d.String()
	return res, nil
}

func (s *Service) runIntegral(res domain.Result, dec dispatch.Decision) (domain.Result, error) {
	f, err := cas.Parse(dec.Expression)
	if err != nil {
		return domain.Result{}, err
	}
	anti, ok := cas.Integrate(f, dec.Variable)
	if !ok {
		return domain.Result{}, perr.BackendSolvef("no integration rule for %q", dec.Expression)
	}
	v := dec.Variable
	head := "∫ " + f.String() + " d" + v
	res.Steps = []string{
		"Find the integral of: " + head,
		"Using integration rules...",
		head + " = " + anti.String() + " + C",
	}
	res.Answer = head + " = " + anti.String() + " + C"
	return res, nil
}

func (s *Service) runSystem(res domain.Result, original string, dec dispatch.Decision) (domain.Result, error) {
	eqs := make([]*cas.Equation, len(dec.Equations))
	for i, raw := range dec.Equations {
		eq, err := cas.ParseEquation(raw)
		if err != nil {
			return domain.Result{}, err
		}
		eqs[i] = eq
	}
	bindings, err := cas.SolveSystem(eqs)
	if err != nil {
		return domain.Result{}, err
	}
	res.Steps = []string{
		"Original problem: " + original,
		"System of equations: " + strings.Join(dec.Equations, ", "),
	}
	res.Solutions = map[string][]string{}
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		parts[i] = b.Var + " = " + b.Value.String()
		res.Steps = append(res.Steps, parts[i])
		res.Solutions[b.Var] = []string{b.Value.String()}
	}
	res.Answer = strings.Join(parts, ", ")
	return res, nil
}

func (s *Service) runEquation(res domain.Result, dec dispatch.Decision) (domain.Result, error) {
	eq, err := cas.ParseEquation(dec.Expression)
	if err != nil {
		return domain.Result{}, err
	}
	residual := eq.Residual()
	free := cas.FreeSymbols(residual)

	if len(free) == 0 {
		ln, lok := eq.LHS.Eval()
		rn, rok := eq.RHS.Eval()
		if !lok || !rok {
			return domain.Result{}, perr.BackendSolvef("cannot evaluate %q", dec.Expression)
		}
		verdict := "False"
		if ln.Equal(rn) {
			verdict = "True"
		}
		res.Steps = []string{"Evaluating: " + dec.Expression}
		res.Answer = "The equation is " + verdict
		return res, nil
	}

	res.Steps = []string{
		"Original equation: " + dec.Expression,
		"Rearranged as: " + residual.String() + " = 0",
	}
	res.Solutions = map[string][]string{}
	var answers []string
	var lastErr error
	for _, v := range free {
		roots, err := cas.SolveEquation(eq, v)
		if err != nil {
			lastErr = err
			continue
		}
		if len(roots) == 0 {
			continue
		}
		res.Steps = append(res.Steps, "Solutions for "+v+": "+joinExprs(roots))
		res.Solutions[v] = exprStrings(roots)
		answers = append(answers, v+" = "+joinExprs(roots))
	}
	if len(answers) == 0 {
		if lastErr != nil && len(res.Solutions) == 0 {
			return domain.Result{}, lastErr
		}
		res.Steps = append(res.Steps, "No solutions found")
		res.Answer = "No solutions"
		res.Solutions = nil
		return res, nil
	}
	sort.Strings(answers)
	res.Answer = strings.Join(answers, "; ")
	return res, nil
}

func (s *Service) runGeneral(res domain.Result, dec dispatch.Decision) (domain.Result, error) {
	e, err := cas.Parse(dec.Expression)
	if err != nil {
		return domain.Result{}, err
	}
	res.Steps = []string{"Original expression: " + e.String()}

	free := cas.FreeSymbols(e)
	if len(free) > 0 {
		if factored, ok := cas.Factor(e, free[0]); ok && !factored.Equal(e) {
			res.Steps = append(res.Steps, "Factored: "+factored.String())
		}
	}
	if expanded := cas.Expand(e); !expanded.Equal(e) {
		res.Steps = append(res.Steps, "Expanded: "+expanded.String())
	}

	if len(free) == 0 {
		if n, ok := e.Eval(); ok {
			res.Steps = append(res.Steps, "Numerical value: "+n.String())
			res.Answer = n.String()
			return res, nil
		}
	}
	res.Answer = e.String()
	return res, nil
}

// equationOf parses "lhs = rhs", or treats a bare expression as expr = 0
func equationOf(s string) (*cas.Equation, error) {
	if strings.Contains(s, "=") {
		return cas.ParseEquation(s)
	}
	e, err := cas.Parse(s)
	if err != nil {
		return nil, err
	}
	return cas.Eq(e, cas.N(0)), nil
}

func exprStrings(es []cas.Expr) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.String()
	}
	return out
}

func joinExprs(es []cas.Expr) string {
	return strings.Join(exprStrings(es), ", ")
}
