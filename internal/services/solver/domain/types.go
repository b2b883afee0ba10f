// Package domain holds the solver service types
package domain

import (
	"mathprose/internal/core/dispatch"
	perr "mathprose/internal/platform/errors"
)

// Input is one problem to solve
type Input struct {
	// Text is the raw problem statement
	Text string
	// DeclaredType is the caller's hint: auto, algebra, calculus, geometry,
	// word_problem or direct_equation. Empty means auto
	DeclaredType string
}

// Result is a completed solve
type Result struct {
	// ID is the per-solve uuid
	ID string `json:"id"`
	// Category is the classifier tag for word problems, empty for bare math
	Category string `json:"category,omitempty"`
	// Expression is what was handed to the backend
	Expression string `json:"expression"`
	// Operation is the backend operation that produced the answer
	Operation string `json:"operation"`
	// Steps is the human-readable derivation
	Steps []string `json:"steps"`
	// Answer is the final line
	Answer string `json:"answer"`
	// Solutions maps variable name to its solution set, when applicable
	Solutions map[string][]string `json:"solutions,omitempty"`
}

// Preprocessed is the word-problem pipeline output before dispatch
type Preprocessed struct {
	// WordProblem reports whether the detector fired
	WordProblem bool `json:"word_problem"`
	// Category is the classifier tag
	Category string `json:"category"`
	// Numbers are the extracted values in first-appearance order
	Numbers []float64 `json:"numbers"`
	// Expression is the synthesized expression, empty when synthesis failed
	Expression string `json:"expression,omitempty"`
}

// ParseDeclaredType maps the wire string onto a dispatch problem type
func ParseDeclaredType(s string) (dispatch.ProblemType, error) {
	switch s {
	case "", "auto":
		return dispatch.TypeAuto, nil
	case "algebra":
		return dispatch.TypeAlgebra, nil
	case "calculus":
		return dispatch.TypeCalculus, nil
	case "geometry":
		return dispatch.TypeGeometry, nil
	case "word_problem":
		return dispatch.TypeWordProblem, nil
	case "direct_equation":
		return dispatch.TypeDirectEquation, nil
	}
	return "", perr.InvalidArgf("unknown problem type %q", s)
}
