// Package detect decides whether input text is a narrative word problem or a
// bare mathematical expression
package detect

import "strings"

// narrativeIndicators are substrings that suggest a word problem. Matching is
// plain substring containment over lowercased text
var narrativeIndicators = []string{
	// named entities
	"a car", "a person", "a train", "a bus", "a boat", "a plane", "a shirt",
	"john", "mary", "sarah", "tom", "alice", "the train", "the bus",
	// question and command phrases
	"if", "when", "how much", "how many", "what is", "find",
	"calculate", "determine",
	// units and quantities
	"years old", "miles", "hours", "minutes", "dollars", "cents", "feet",
	"meters", "km", "liters", "gallons", "speed", "rate", "time", "percent",
	// shapes
	"rectangle", "square", "circle", "triangle", "cube", "area",
	"perimeter", "circumference", "volume",
	// money
	"cost", "price", "buys", "sells", "discount", "change",
	// quantity relationships
	"number", "sum", "difference", "total", "together", "older", "younger",
	"consecutive", "twice", "half",
}

// mathSymbols are the bare symbols that mark short inputs as expressions.
// x and y count because single letters in short symbol-laden strings are
// variables, not prose
const mathSymbols = "+-*/=^xy"

// IsWordProblem reports whether text reads as a narrative word problem.
// Short symbol-laden strings like "x + 5 = 10" are never narrative even when
// they contain an indicator substring; long narrative text always is, even
// when it also contains symbols
func IsWordProblem(text string) bool {
	lower := strings.ToLower(text)

	hasNarrative := false
	for _, ind := range narrativeIndicators {
		if strings.Contains(lower, ind) {
			hasNarrative = true
			break
		}
	}
	if !hasNarrative {
		return false
	}

	hasSymbols := strings.ContainsAny(lower, mathSymbols)
	short := len(strings.Fields(text)) < 5

	return !(hasSymbols && short)
}
