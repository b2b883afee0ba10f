package dispatch

import (
	"reflect"
	"testing"
)

func TestDecide_Table(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		declared ProblemType
		want     Decision
	}{
		{
			name:     "closed arithmetic evaluates",
			in:       "120 / 3",
			declared: TypeAuto,
			want:     Decision{Op: OpEvaluate, Expression: "120 / 3"},
		},
		{
			name:     "nested arithmetic evaluates",
			in:       "2 * (3 + 4.5)",
			declared: TypeAuto,
			want:     Decision{Op: OpEvaluate, Expression: "2 * (3 + 4.5)"},
		},
		{
			name:     "solve with explicit variable",
			in:       "solve x + 5 = 10 for y",
			declared: TypeAuto,
			want:     Decision{Op: OpSolve, Expression: "x + 5 = 10", Variable: "y"},
		},
		{
			name:     "solve defaults to x",
			in:       "solve 2*x = 8",
			declared: TypeAuto,
			want:     Decision{Op: OpSolve, Expression: "2*x = 8", Variable: "x"},
		},
		{
			name:     "declared algebra routes to solve",
			in:       "x**2 = 9",
			declared: TypeAlgebra,
			want:     Decision{Op: OpSolve, Expression: "x**2 = 9", Variable: "x"},
		},
		{
			name:     "derivative of",
			in:       "derivative of x**2 + 3*x",
			declared: TypeAuto,
			want:     Decision{Op: OpDifferentiate, Expression: "x**2 + 3*x", Variable: "x"},
		},
		{
			name:     "derivative with respect to",
			in:       "differentiate t**3 with respect to t",
			declared: TypeAuto,
			want:     Decision{Op: OpDifferentiate, Expression: "t**3", Variable: "t"},
		},
		{
			name:     "integrate with trailing dx",
			in:       "integrate x**2 dx",
			declared: TypeAuto,
			want:     Decision{Op: OpIntegrate, Expression: "x**2", Variable: "x"},
		},
		{
			name:     "integral of",
			in:       "integral of sin(x)",
			declared: TypeAuto,
			want:     Decision{Op: OpIntegrate, Expression: "sin(x)", Variable: "x"},
		},
		{
			name:     "comma separated system",
			in:       "x + y = 50, x - y = 10",
			declared: TypeAuto,
			want:     Decision{Op: OpSolveSystem, Equations: []string{"x + y = 50", "x - y = 10"}},
		},
		{
			name:     "comma with non-equation segment is a single equation",
			in:       "x + y = 5, hello",
			declared: TypeAuto,
			want:     Decision{Op: OpSolveEquation, Expression: "x + y = 5, hello"},
		},
		{
			name:     "single equation",
			in:       "x + 5 = 12",
			declared: TypeAuto,
			want:     Decision{Op: OpSolveEquation, Expression: "x + 5 = 12"},
		},
		{
			name:     "declared direct equation without equals sign",
			in:       "x + 5 - 12",
			declared: TypeDirectEquation,
			want:     Decision{Op: OpSolveEquation, Expression: "x + 5 - 12"},
		},
		{
			name:     "bare variable expression defaults to algebra",
			in:       "x + 5",
			declared: TypeAuto,
			want:     Decision{Op: OpSolve, Expression: "x + 5", Variable: "x"},
		},
		{
			name:     "variable expression picks its own letter",
			in:       "2*t + 6",
			declared: TypeAuto,
			want:     Decision{Op: OpSolve, Expression: "2*t + 6", Variable: "t"},
		},
		{
			name:     "general fallback without a variable",
			in:       "sqrt(16) + pi",
			declared: TypeAuto,
			want:     Decision{Op: OpGeneral, Expression: "sqrt(16) + pi"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Decide(tc.in, tc.declared)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Decide(%q, %q) = %+v, want %+v", tc.in, tc.declared, got, tc.want)
			}
		})
	}
}

// The derivative branch sits above the integral branch and both trigger on a
// declared calculus type, so calculus input without an integral keyword always
// differentiates. This test pins that ordering; changing it is a breaking
// change for callers that rely on the declared type alone
func TestDecide_CalculusTieBreak(t *testing.T) {
	got := Decide("x**3", TypeCalculus)
	if got.Op != OpDifferentiate {
		t.Fatalf("Decide(%q, calculus).Op = %q, want %q", "x**3", got.Op, OpDifferentiate)
	}

	// both keyword families present: derivative still wins
	got = Decide("find the derivative and then integrate x**2", TypeAuto)
	if got.Op != OpDifferentiate {
		t.Fatalf("mixed keywords routed to %q, want %q", got.Op, OpDifferentiate)
	}
}
