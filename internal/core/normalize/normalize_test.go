package normalize

import "testing"

func TestNormalize_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "identity expression",
			in:   "2*x + 5",
			out:  "2*x + 5",
		},
		{
			name: "command word stripped",
			in:   "find 2x + 5 = 10",
			out:  "2*x + 5 = 10",
		},
		{
			name: "solve keyword survives for the dispatcher",
			in:   "solve 2x + 5 = 10 for x",
			out:  "solve 2*x + 5 = 10 for x",
		},
		{
			name: "stacked command words",
			in:   "calculate what is 2 + 2",
			out:  "2 + 2",
		},
		{
			name: "power notation",
			in:   "x^2 + 3x",
			out:  "x**2 + 3*x",
		},
		{
			name: "unicode operators",
			in:   "10 ÷ 2 × 3",
			out:  "10 / 2 * 3",
		},
		{
			name: "pi and infinity",
			in:   "2π and ∞",
			out:  "2*pi and oo",
		},
		{
			name: "sqrt with parens",
			in:   "√(x + 1)",
			out:  "sqrt(x + 1)",
		},
		{
			name: "sqrt bare operand",
			in:   "√9",
			out:  "sqrt(9)",
		},
		{
			name: "implicit multiplication digit letter",
			in:   "2x",
			out:  "2*x",
		},
		{
			name: "implicit multiplication letter digit",
			in:   "x2",
			out:  "x*2",
		},
		{
			name: "implicit multiplication between parens",
			in:   "(x + 1)(x - 1)",
			out:  "(x + 1)*(x - 1)",
		},
		{
			name: "fullwidth digits fold to ascii",
			in:   "１２ + ３",
			out:  "12 + 3",
		},
		{
			name: "whitespace collapse",
			in:   "  2   +\t2 \n",
			out:  "2 + 2",
		},
		{
			name: "trailing question mark stripped",
			in:   "derivative of x^2?",
			out:  "derivative of x**2",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.in)
			if got != tc.out {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.out)
			}
			// normalizing already-normalized text must be a no-op
			got2 := Normalize(got)
			if got2 != got {
				t.Fatalf("Normalize not idempotent: %q -> %q", got, got2)
			}
		})
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		in  string
		out string
	}{
		{"What Is 25% of 80?", "what is 25% of 80?"},
		{"A  Car\ttravels", "a car travels"},
		{"１２０ miles", "120 miles"},
	}
	for _, tc := range tests {
		if got := Fold(tc.in); got != tc.out {
			t.Fatalf("Fold(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}
