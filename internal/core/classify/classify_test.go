package classify

import "testing"

func TestClassify_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Category
	}{
		{
			name: "boat beats speed keywords",
			in:   "a boat travels 24 km downstream in 3 hours and upstream in 4 hours",
			want: CategoryComplexMotion,
		},
		{
			name: "speed distance time",
			in:   "a car travels 120 miles in 3 hours. what is its speed?",
			want: CategorySpeed,
		},
		{
			name: "age",
			in:   "john is 5 years older than mary. if mary is 20 years old, how old is john?",
			want: CategoryAge,
		},
		{
			name: "money beats percentage on discount text",
			in:   "a shirt costs $25. if there's a 20% discount, what is the final price?",
			want: CategoryMoney,
		},
		{
			name: "geometry",
			in:   "what is the area of a rectangle with length 8 feet and width 5 feet?",
			want: CategoryGeometry,
		},
		{
			name: "percentage",
			in:   "what is 25% of 80?",
			want: CategoryPercentage,
		},
		{
			name: "mixture",
			in:   "a chemist mixes acid and water to reach the desired concentration",
			want: CategoryMixture,
		},
		{
			name: "ratio as a whole word",
			in:   "the ratio of 3 to 4 expressed as a fraction",
			want: CategoryPercentage,
		},
		{
			name: "two unknown system",
			in:   "two numbers sum to 50 and their difference is 10.",
			want: CategoryTwoUnknown,
		},
		{
			name: "consecutive integers",
			in:   "the sum of two consecutive integers is 25",
			want: CategoryAlgebra,
		},
		{
			name: "growth",
			in:   "a population of 1000 bacteria grows by 10 every hour",
			want: CategoryGrowth,
		},
		{
			name: "fallback general",
			in:   "hello there",
			want: CategoryGeneral,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.in); got != tc.want {
				t.Fatalf("Classify(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

// A text matching both the money and percentage keyword sets must always
// resolve to money, the earlier rule, on every run
func TestClassify_PriorityDeterministic(t *testing.T) {
	text := "the price went up by 10 percent"
	for i := 0; i < 100; i++ {
		if got := Classify(text); got != CategoryMoney {
			t.Fatalf("run %d: Classify(%q) = %q, want %q", i, text, got, CategoryMoney)
		}
	}
}
