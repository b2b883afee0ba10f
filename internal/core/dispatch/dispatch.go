// Package dispatch selects which backend operation a cleaned expression
// needs, as a single-pass decision table
package dispatch

import (
	"regexp"
	"strings"
)

// ProblemType is the caller-declared problem type
type ProblemType string

const (
	// TypeAuto lets the table detect everything from the text
	TypeAuto ProblemType = "auto"
	// TypeAlgebra forces the equation-solve branch
	TypeAlgebra ProblemType = "algebra"
	// TypeCalculus forces the calculus branches
	TypeCalculus ProblemType = "calculus"
	// TypeGeometry marks geometry problems; routing is keyword-driven
	TypeGeometry ProblemType = "geometry"
	// TypeWordProblem marks narrative problems; routing is keyword-driven
	TypeWordProblem ProblemType = "word_problem"
	// TypeDirectEquation forces the single-equation branch
	TypeDirectEquation ProblemType = "direct_equation"
)

// Op is the backend operation a Decision selects
type Op string

const (
	// OpEvaluate numerically evaluates a closed arithmetic expression
	OpEvaluate Op = "evaluate"
	// OpSolve solves an equation or expression for a variable
	OpSolve Op = "solve"
	// OpDifferentiate takes a derivative
	OpDifferentiate Op = "differentiate"
	// OpIntegrate takes an antiderivative
	OpIntegrate Op = "integrate"
	// OpSolveSystem solves a comma-separated equation system
	OpSolveSystem Op = "solve_system"
	// OpSolveEquation solves a single equation for its free variables
	OpSolveEquation Op = "solve_equation"
	// OpGeneral simplifies/factors/expands a general expression
	OpGeneral Op = "general"
)

// Decision is the selected operation plus its operands
type Decision struct {
	Op         Op
	Expression string
	Variable   string
	Equations  []string
}

var (
	reArithmetic = regexp.MustCompile(`^[0-9+\-*/().\s]+$`)
	reVarLetter  = regexp.MustCompile(`(?:^|[^a-z])([a-z])(?:[^a-z]|$)`)
	reSolveFor   = regexp.MustCompile(`(?:^|\s)solve\s+(.+?)(?:\s+for\s+([a-z]))?$`)
	reDerivOf    = regexp.MustCompile(`(?:derivative of|differentiate|d/dx)\s*(.+?)(?:\s+with respect to\s+([a-z]))?$`)
	reIntegOf    = regexp.MustCompile(`(?:integrate|integral of)\s*(.+?)(?:\s+d([a-z])|\s+with respect to\s+([a-z]))?$`)
)

var derivativeKeywords = []string{"derivative", "differentiate", "d/dx"}
var integralKeywords = []string{"integrate", "integral", "∫"}

// Decide routes a cleaned expression. The derivative branch is checked before
// the integral branch and both accept the calculus category, so a problem
// declared calculus without an explicit integral keyword routes to
// differentiation; that tie-break is part of the contract
func Decide(cleaned string, declared ProblemType) Decision {
	lower := strings.ToLower(cleaned)

	// 1 closed arithmetic evaluates numerically
	if !strings.Contains(cleaned, "=") && reArithmetic.MatchString(cleaned) && strings.TrimSpace(cleaned) != "" {
		return Decision{Op: OpEvaluate, Expression: strings.TrimSpace(cleaned)}
	}

	// 2 explicit solve requests and declared algebra
	if declared == TypeAlgebra || strings.Contains(lower, "solve") {
		expr, variable := splitSolve(lower, cleaned)
		return Decision{Op: OpSolve, Expression: expr, Variable: variable}
	}

	// 3 derivatives
	if declared == TypeCalculus || containsAny(lower, derivativeKeywords) {
		expr, variable := splitDerivative(lower, cleaned)
		return Decision{Op: OpDifferentiate, Expression: expr, Variable: variable}
	}

	// 4 integrals
	if declared == TypeCalculus || containsAny(lower, integralKeywords) {
		expr, variable := splitIntegral(lower, cleaned)
		return Decision{Op: OpIntegrate, Expression: expr, Variable: variable}
	}

	// 5 comma-separated systems where every segment is an equation
	if eqs, ok := splitSystem(cleaned); ok {
		return Decision{Op: OpSolveSystem, Equations: eqs}
	}

	// 6 single equations
	if declared == TypeDirectEquation || strings.Contains(cleaned, "=") {
		return Decision{Op: OpSolveEquation, Expression: strings.TrimSpace(cleaned)}
	}

	// 7 undetected input carrying a variable defaults to the algebra
	// branch, read as expr = 0
	if declared == TypeAuto {
		if v, ok := firstVariable(lower); ok {
			return Decision{Op: OpSolve, Expression: strings.TrimSpace(cleaned), Variable: v}
		}
	}

	// 8 everything else gets the general treatment
	return Decision{Op: OpGeneral, Expression: strings.TrimSpace(cleaned)}
}

// splitSolve extracts the equation body and optional "for <var>" suffix
func splitSolve(lower, orig string) (string, string) {
	if m := reSolveFor.FindStringSubmatchIndex(lower); m != nil {
		expr := strings.TrimSpace(orig[m[2]:m[3]])
		variable := "x"
		if m[4] >= 0 {
			variable = lower[m[4]:m[5]]
		}
		return expr, variable
	}
	return strings.TrimSpace(orig), "x"
}

// splitDerivative extracts the function body and optional differentiation variable
func splitDerivative(lower, orig string) (string, string) {
	if m := reDerivOf.FindStringSubmatchIndex(lower); m != nil {
		expr := strings.TrimSpace(orig[m[2]:m[3]])
		variable := "x"
		if m[4] >= 0 {
			variable = lower[m[4]:m[5]]
		}
		return expr, variable
	}
	return strings.TrimSpace(orig), "x"
}

// splitIntegral extracts the integrand and optional "dx" / "with respect to" variable
func splitIntegral(lower, orig string) (string, string) {
	if m := reIntegOf.FindStringSubmatchIndex(lower); m != nil {
		expr := strings.TrimSpace(orig[m[2]:m[3]])
		variable := "x"
		if m[4] >= 0 {
			variable = lower[m[4]:m[5]]
		} else if m[6] >= 0 {
			variable = lower[m[6]:m[7]]
		}
		return expr, variable
	}
	return strings.TrimSpace(strings.ReplaceAll(orig, "∫", "")), "x"
}

// splitSystem reports comma-separated text as a system when it has at least
// two segments and every segment contains an equals sign
func splitSystem(text string) ([]string, bool) {
	if !strings.Contains(text, ",") {
		return nil, false
	}
	parts := strings.Split(text, ",")
	if len(parts) < 2 {
		return nil, false
	}
	eqs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if !strings.Contains(p, "=") {
			return nil, false
		}
		eqs = append(eqs, p)
	}
	return eqs, true
}

// firstVariable finds the first standalone letter that can act as the
// unknown. "e" never qualifies; it is a constant
func firstVariable(lower string) (string, bool) {
	for _, m := range reVarLetter.FindAllStringSubmatch(lower, -1) {
		if m[1] != "e" {
			return m[1], true
		}
	}
	return "", false
}

func containsAny(s string, kws []string) bool {
	for _, kw := range kws {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
