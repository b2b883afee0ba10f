// Package classify maps lowercased problem text to exactly one scenario
// category using a fixed, priority-ordered rule list
package classify

import (
	"regexp"
	"strings"
)

// Category is one tag from the closed scenario taxonomy
type Category string

const (
	// CategoryComplexMotion is boat/current and plane/wind problems
	CategoryComplexMotion Category = "complex_motion"
	// CategorySpeed is speed/distance/time problems
	CategorySpeed Category = "speed_distance_time"
	// CategoryAge is age comparison problems
	CategoryAge Category = "age"
	// CategoryMoney is purchases, discounts, totals and change
	CategoryMoney Category = "money"
	// CategoryGeometry is shape area/perimeter/volume problems
	CategoryGeometry Category = "geometry"
	// CategoryPercentage is percent-of and ratio problems
	CategoryPercentage Category = "percentage"
	// CategoryMixture is concentration and mixing problems
	CategoryMixture Category = "mixture"
	// CategoryWorkRate is combined work-rate problems
	CategoryWorkRate Category = "work_rate"
	// CategoryTwoUnknown is sum/difference two-variable systems
	CategoryTwoUnknown Category = "two_unknown"
	// CategoryAlgebra is generic algebraic word problems
	CategoryAlgebra Category = "algebra"
	// CategoryGrowth is population/growth problems
	CategoryGrowth Category = "growth"
	// CategoryGeneral is the fallback when nothing else matches
	CategoryGeneral Category = "general"
)

// rule is one (predicate, tag) pair. Matching is substring containment;
// first match wins
type rule struct {
	category Category
	match    func(string) bool
}

func anyOf(kws ...string) func(string) bool {
	return func(text string) bool {
		for _, kw := range kws {
			if strings.Contains(text, kw) {
				return true
			}
		}
		return false
	}
}

var reRatioWord = regexp.MustCompile(`\bratios?\b`)

// rules are evaluated top-down. Two rules' keyword sets may both match the
// same text; priority order resolves the conflict deliberately
var rules = []rule{
	{CategoryComplexMotion, anyOf("upstream", "downstream", "current", "still water", "headwind", "tailwind", "wind speed")},
	{CategorySpeed, anyOf("speed", "miles", "mph", "km/h", "travels", "velocity", "distance")},
	{CategoryAge, anyOf("years old", "age", "older", "younger")},
	{CategoryMoney, anyOf("dollars", "cents", "money", "cost", "price", "buy", "sell", "discount", "spent", "change", "paid")},
	{CategoryGeometry, anyOf("rectangle", "square", "circle", "triangle", "cube", "area", "perimeter", "circumference", "volume", "radius")},
	{CategoryPercentage, func(text string) bool {
		// "ratio" needs word boundaries: a bare substring match would
		// fire inside "concentration" and shadow the mixture rule
		return anyOf("percent", "% of", "proportion")(text) || reRatioWord.MatchString(text)
	}},
	{CategoryMixture, anyOf("mixture", "concentration", "alloy", "solution of", "mixed")},
	{CategoryWorkRate, anyOf("working together", "work together", "complete the job", "fill the", "paint the", "per hour each")},
	{CategoryTwoUnknown, func(text string) bool {
		if strings.Contains(text, "two numbers") {
			return true
		}
		return strings.Contains(text, "sum") && strings.Contains(text, "difference")
	}},
	{CategoryAlgebra, anyOf("consecutive", "number", "sum", "product", "twice", "half")},
	{CategoryGrowth, anyOf("population", "growth", "grows", "doubles every")},
	{CategoryAlgebra, anyOf("calculate", "what is", "find")},
	{CategoryAlgebra, anyOf("x", "unknown", "variable")},
}

// Classify returns the tag of the first matching rule, or CategoryGeneral
func Classify(text string) Category {
	for _, r := range rules {
		if r.match(text) {
			return r.category
		}
	}
	return CategoryGeneral
}
