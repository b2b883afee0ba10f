package synth

import (
	"testing"

	"mathprose/internal/core/classify"
	"mathprose/internal/core/numbers"
)

// run extracts numbers and classifies before synthesizing, mirroring the
// service pipeline
func run(t *testing.T, text string) (string, bool) {
	t.Helper()
	nums := numbers.Values(text)
	cat := classify.Classify(text)
	return Synthesize(text, nums, cat)
}

func TestSynthesize_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "speed from miles and hours",
			in:   "a car travels 120 miles in 3 hours. what is its speed?",
			want: "120 / 3",
		},
		{
			name: "age older",
			in:   "john is 5 years older than mary. if mary is 20 years old, how old is john?",
			want: "20 + 5",
		},
		{
			name: "money each pairs quantity and price",
			in:   "sarah buys 3 books for $15 each. what is the total cost?",
			want: "3 * 15",
		},
		{
			name: "money multi item purchase",
			in:   "he buys 2 pens at $3 each and 4 pads at $5 each. what was spent?",
			want: "2 * 3 + 4 * 5",
		},
		{
			name: "money discount",
			in:   "a shirt costs $25. if there's a 20% discount, what is the final price?",
			want: "25 * (1 - 0.2)",
		},
		{
			name: "percent of",
			in:   "what is 25% of 80?",
			want: "0.25 * 80",
		},
		{
			name: "rectangle area",
			in:   "what is the area of a rectangle with length 8 feet and width 5 feet?",
			want: "8*5",
		},
		{
			name: "square perimeter",
			in:   "find the perimeter of a square with side 6 meters",
			want: "4*6",
		},
		{
			name: "circle area",
			in:   "what is the area of a circle with radius 3?",
			want: "pi*3**2",
		},
		{
			name: "cube volume",
			in:   "what is the volume of a cube with edge 4?",
			want: "4**3",
		},
		{
			name: "two unknown system is order independent",
			in:   "two numbers sum to 50 and their difference is 10.",
			want: "x + y = 50, x - y = 10",
		},
		{
			name: "boat still water and current",
			in:   "a boat travels 24 km downstream in 3 hours and the same distance upstream in 4 hours. find the speed of the boat in still water and the speed of the current.",
			want: "b + c = 8, b - c = 6",
		},
		{
			name: "plane with wind uses p and w",
			in:   "a plane flies 600 miles with a tailwind in 3 hours and back against the headwind in 4 hours. find the plane speed and the wind speed.",
			want: "p + w = 200, p - w = 150",
		},
		{
			name: "consecutive integers",
			in:   "the sum of two consecutive integers is 25",
			want: "x + (x + 1) = 25",
		},
		{
			name: "increased by equation",
			in:   "a number increased by 5 is 12",
			want: "x + 5 = 12",
		},
		{
			name: "twice override",
			in:   "tom has twice as many apples as 6",
			want: "2 * 6",
		},
		{
			name: "has more than equation",
			in:   "alice has 4 more than bob, who has 10",
			want: "x + 4 = 10",
		},
		{
			name: "work rate together",
			in:   "alice can paint the fence in 6 hours and bob in 3 hours. how long working together?",
			want: "1/6 + 1/3 = 1/x",
		},
		{
			name: "mixture toward target concentration",
			in:   "how many liters of a 20% solution must be mixed with 5 liters of a 50% solution to get a 30% solution?",
			want: "0.2*x + 0.5*5 = 0.3*(x + 5)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := run(t, tc.in)
			if !ok {
				t.Fatalf("Synthesize(%q) failed, want %q", tc.in, tc.want)
			}
			if got != tc.want {
				t.Fatalf("Synthesize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSynthesize_FailureIsAValue(t *testing.T) {
	// speed category with a single number cannot satisfy any sub-pattern
	text := "a car travels 120 miles. what is its speed?"
	nums := numbers.Values(text)
	if _, ok := Synthesize(text, nums, classify.CategorySpeed); ok {
		t.Fatalf("Synthesize should fail with one number in the speed category")
	}
}
