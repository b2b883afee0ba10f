package cas

import (
	"testing"

	perr "mathprose/internal/platform/errors"
)

func mustParse(t *testing.T, s string) Expr {
	t.Helper()
	e, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", s, err)
	}
	return e
}

func TestParseAndEval(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2 + 3 * 4", "14"},
		{"120 / 3", "40"},
		{"0.25 * 80", "20"},
		{"25 * (1 - 0.2)", "20"},
		{"2**3**2", "512"},
		{"sqrt(16) + 1", "5"},
		{"(2 + 3) * (4 - 1)", "15"},
		{"-4 + 10", "6"},
		{"1/2 + 1/3", "5/6"},
	}
	for _, tc := range tests {
		e := mustParse(t, tc.in)
		n, ok := e.Eval()
		if !ok {
			t.Fatalf("Eval(%q) not numeric", tc.in)
		}
		if got := n.String(); got != tc.want {
			t.Fatalf("Eval(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "2 +", "(1 + 2", "sin", "3 @ 4", "1 / 0"} {
		_, err := Parse(in)
		if err == nil {
			t.Fatalf("Parse(%q) succeeded, want error", in)
		}
		if !perr.IsCode(err, perr.ErrorCodeParse) {
			t.Fatalf("Parse(%q) error code = %v, want parse failure", in, err)
		}
	}
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"x + x", "2*x"},
		{"x*x", "x**2"},
		{"3*x + 2*x", "5*x"},
		{"x + 0", "x"},
		{"x * 1", "x"},
		{"x * 0", "0"},
		{"x**1", "x"},
		{"x**0", "1"},
		{"2*x - 2*x", "0"},
		{"x - 5", "x - 5"},
		{"ln(exp(x))", "x"},
	}
	for _, tc := range tests {
		e := mustParse(t, tc.in)
		if got := e.String(); got != tc.want {
			t.Fatalf("Simplify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, in := range []string{"2*x + 5", "x**2 - 1", "sqrt(x)", "1/3*x**3", "-cos(x)"} {
		e := mustParse(t, in)
		again := mustParse(t, e.String())
		if !e.Equal(again) {
			t.Fatalf("round trip of %q: %q reparsed as %q", in, e, again)
		}
	}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		in   string
		wrt  string
		want string
	}{
		{"x**2 + 3*x", "x", "2*x + 3"},
		{"x**3", "x", "3*x**2"},
		{"sin(x)", "x", "cos(x)"},
		{"sin(2*x)", "x", "2*cos(2*x)"},
		{"exp(x)", "x", "exp(x)"},
		{"ln(x)", "x", "x**(-1)"},
		{"5", "x", "0"},
		{"y", "x", "0"},
	}
	for _, tc := range tests {
		got := Diff(mustParse(t, tc.in), tc.wrt).String()
		if got != tc.want {
			t.Fatalf("Diff(%q, %q) = %q, want %q", tc.in, tc.wrt, got, tc.want)
		}
	}
}

func TestIntegrate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"x**2", "1/3*x**3"},
		{"2*x", "x**2"},
		{"1/x", "ln(abs(x))"},
		{"sin(x)", "-cos(x)"},
		{"cos(2*x)", "0.5*sin(2*x)"},
		{"exp(x)", "exp(x)"},
		{"5", "5*x"},
		{"x + 1", "x + 0.5*x**2"},
	}
	for _, tc := range tests {
		anti, ok := Integrate(mustParse(t, tc.in), "x")
		if !ok {
			t.Fatalf("Integrate(%q) has no rule, want %q", tc.in, tc.want)
		}
		if got := anti.String(); got != tc.want {
			t.Fatalf("Integrate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIntegrate_NoRuleIsAValue(t *testing.T) {
	for _, in := range []string{"x * sin(x)", "ln(2*x)", "exp(x**2)"} {
		if _, ok := Integrate(mustParse(t, in), "x"); ok {
			t.Fatalf("Integrate(%q) reported success, want no rule", in)
		}
	}
}

func TestSolveEquation(t *testing.T) {
	tests := []struct {
		in   string
		name string
		want []string
	}{
		{"x + 5 = 12", "x", []string{"7"}},
		{"2*x + 4 = 10", "x", []string{"3"}},
		{"x**2 = 9", "x", []string{"-3", "3"}},
		{"x**2 - 5*x + 6 = 0", "x", []string{"2", "3"}},
		{"2*y = 10", "", []string{"5"}},
		{"1/6 + 1/3 = 1/x", "x", []string{"2"}},
		{"1/x = 0", "x", []string{}},
		{"x + 5 = x", "x", []string{}},
		{"x**2 + 1 = 0", "x", []string{}},
	}
	for _, tc := range tests {
		eq, err := ParseEquation(tc.in)
		if err != nil {
			t.Fatalf("ParseEquation(%q) failed: %v", tc.in, err)
		}
		roots, err := SolveEquation(eq, tc.name)
		if err != nil {
			t.Fatalf("SolveEquation(%q) failed: %v", tc.in, err)
		}
		if len(roots) != len(tc.want) {
			t.Fatalf("SolveEquation(%q) = %v, want %v", tc.in, roots, tc.want)
		}
		for i, r := range roots {
			if r.String() != tc.want[i] {
				t.Fatalf("SolveEquation(%q)[%d] = %q, want %q", tc.in, i, r, tc.want[i])
			}
		}
	}
}

func TestSolveEquation_Failures(t *testing.T) {
	tests := []string{
		"x = x",         // identity
		"x**3 = 8",      // unsupported degree
		"x + y = 3",     // two unknowns, no target
		"sin(x) = 0.5",  // not polynomial
	}
	for _, in := range tests {
		eq, err := ParseEquation(in)
		if err != nil {
			t.Fatalf("ParseEquation(%q) failed: %v", in, err)
		}
		if _, err := SolveEquation(eq, ""); !perr.IsCode(err, perr.ErrorCodeBackendSolve) {
			t.Fatalf("SolveEquation(%q) err = %v, want backend solve failure", in, err)
		}
	}
}

func TestSolveSystem(t *testing.T) {
	parse2 := func(t *testing.T, a, b string) []*Equation {
		t.Helper()
		e1, err := ParseEquation(a)
		if err != nil {
			t.Fatalf("ParseEquation(%q): %v", a, err)
		}
		e2, err := ParseEquation(b)
		if err != nil {
			t.Fatalf("ParseEquation(%q): %v", b, err)
		}
		return []*Equation{e1, e2}
	}

	bindings, err := SolveSystem(parse2(t, "x + y = 50", "x - y = 10"))
	if err != nil {
		t.Fatalf("SolveSystem failed: %v", err)
	}
	want := []struct{ v, val string }{{"x", "30"}, {"y", "20"}}
	for i, w := range want {
		if bindings[i].Var != w.v || bindings[i].Value.String() != w.val {
			t.Fatalf("binding %d = %s=%s, want %s=%s", i, bindings[i].Var, bindings[i].Value, w.v, w.val)
		}
	}

	bindings, err = SolveSystem(parse2(t, "b + c = 8", "b - c = 6"))
	if err != nil {
		t.Fatalf("SolveSystem failed: %v", err)
	}
	if bindings[0].Value.String() != "7" || bindings[1].Value.String() != "1" {
		t.Fatalf("SolveSystem(b+c=8, b-c=6) = %v, want b=7 c=1", bindings)
	}

	if _, err := SolveSystem(parse2(t, "x + y = 1", "2*x + 2*y = 2")); !perr.IsCode(err, perr.ErrorCodeBackendSolve) {
		t.Fatalf("singular system err = %v, want backend solve failure", err)
	}
}

func TestExpandAndFactor(t *testing.T) {
	e := Expand(mustParse(t, "(x + 1)*(x - 1)"))
	if got := e.String(); got != "x**2 - 1" {
		t.Fatalf("Expand = %q, want %q", got, "x**2 - 1")
	}

	e = Expand(mustParse(t, "(x + 2)**2"))
	if got := e.String(); got != "4*x + x**2 + 4" {
		t.Fatalf("Expand = %q, want %q", got, "4*x + x**2 + 4")
	}

	f, ok := Factor(mustParse(t, "x**2 - 5*x + 6"), "x")
	if !ok {
		t.Fatalf("Factor found no form")
	}
	if got := f.String(); got != "(x - 2)*(x - 3)" {
		t.Fatalf("Factor = %q, want %q", got, "(x - 2)*(x - 3)")
	}

	if _, ok := Factor(mustParse(t, "x**2 + 1"), "x"); ok {
		t.Fatalf("Factor(x**2 + 1) reported success, want none over the rationals")
	}

	f, ok = Factor(mustParse(t, "2*x + 6"), "x")
	if !ok {
		t.Fatalf("Factor found no common factor in 2*x + 6")
	}
	if got := f.String(); got != "2*(x + 3)" {
		t.Fatalf("Factor = %q, want %q", got, "2*(x + 3)")
	}

	if _, ok := Factor(mustParse(t, "x + 3"), "x"); ok {
		t.Fatalf("Factor(x + 3) reported success, want nothing to pull")
	}
}

func TestFreeSymbols(t *testing.T) {
	got := FreeSymbols(mustParse(t, "pi * r**2 + y"))
	if len(got) != 2 || got[0] != "r" || got[1] != "y" {
		t.Fatalf("FreeSymbols = %v, want [r y]", got)
	}
}
