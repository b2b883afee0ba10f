package numbers

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestExtract_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []float64
	}{
		{
			name: "plain digits in order",
			in:   "a car travels 120 miles in 3 hours",
			want: []float64{120, 3},
		},
		{
			name: "percentage is pre-divided and not double counted",
			in:   "what is 25% of 80?",
			want: []float64{0.25, 80},
		},
		{
			name: "decimal percentage",
			in:   "an increase of 12.5% on 200",
			want: []float64{0.125, 200},
		},
		{
			name: "fraction is one token",
			in:   "add 3/4 cup of sugar and 5 eggs",
			want: []float64{0.75, 5},
		},
		{
			name: "fraction with zero denominator skipped",
			in:   "the ratio 3/0 is undefined but 7 is fine",
			want: []float64{3, 0, 7},
		},
		{
			name: "word numbers compound tens and units",
			in:   "twenty five apples",
			want: []float64{25},
		},
		{
			name: "word numbers compound hundreds",
			in:   "one hundred fifty people",
			want: []float64{150},
		},
		{
			name: "bare tens word",
			in:   "fifty students",
			want: []float64{50},
		},
		{
			name: "units compound onto a bare thousand",
			in:   "a thousand five ships set sail",
			want: []float64{1005},
		},
		{
			name: "digits and words mixed",
			in:   "she bought 3 pens and twelve pencils",
			want: []float64{3, 12},
		},
		{
			name: "dedup keeps first occurrence order",
			in:   "5 plus 8 plus 5",
			want: []float64{5, 8},
		},
		{
			name: "decimal digits",
			in:   "the price is 12.5 dollars",
			want: []float64{12.5},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Values(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("Values(%q) = %v, want %v", tc.in, got, tc.want)
			}
			for i := range got {
				if !almostEqual(got[i], tc.want[i]) {
					t.Fatalf("Values(%q)[%d] = %v, want %v", tc.in, i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestExtract_Provenance(t *testing.T) {
	toks := Extract("save 20% on a 3/4 pound bag costing 9 dollars, buy two")
	wantSources := []Source{SourcePercentage, SourceFraction, SourceDigit, SourceWord}
	wantValues := []float64{0.20, 0.75, 9, 2}
	if len(toks) != len(wantSources) {
		t.Fatalf("Extract returned %d tokens, want %d: %v", len(toks), len(wantSources), toks)
	}
	for i, tok := range toks {
		if tok.Source != wantSources[i] || !almostEqual(tok.Value, wantValues[i]) {
			t.Fatalf("token %d = %+v, want {%v %v}", i, tok, wantValues[i], wantSources[i])
		}
	}
}
