// Package synth turns classified word-problem text plus its extracted numbers
// into a symbolic expression or equation string
//
// Every handler is a pure function of (lowercased text, ordered numbers) and
// reports failure as a value when its pattern needs more numbers than were
// extracted. The caller falls back to solving the raw text in that case
package synth

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"mathprose/internal/core/classify"
)

var (
	reHasMoreThan = regexp.MustCompile(`has (\d+(?:\.\d+)?) more than`)
	reEqualsSplit = regexp.MustCompile(`\s+(?:is|equals|=)\s+`)
)

// Synthesize produces an expression or equation for text classified as cat.
// The relationship override runs first and short-circuits category dispatch
// when it matches
func Synthesize(text string, nums []float64, cat classify.Category) (string, bool) {
	if expr, ok := relationshipOverride(text, nums); ok {
		return expr, true
	}

	switch cat {
	case classify.CategoryComplexMotion:
		return complexMotion(text, nums)
	case classify.CategorySpeed:
		return speed(text, nums)
	case classify.CategoryAge:
		return age(text, nums)
	case classify.CategoryMoney:
		return money(text, nums)
	case classify.CategoryGeometry:
		return geometry(text, nums)
	case classify.CategoryPercentage:
		return percentage(text, nums)
	case classify.CategoryMixture:
		return mixture(text, nums)
	case classify.CategoryWorkRate:
		return workRate(text, nums)
	case classify.CategoryTwoUnknown:
		return twoUnknown(text, nums)
	case classify.CategoryGrowth:
		return growth(text, nums)
	case classify.CategoryAlgebra:
		return algebra(text, nums)
	default:
		return general(text, nums)
	}
}

// relationshipOverride handles comparative phrasings that cut across
// categories: "twice as many ... as", "three times ... as", "half of", and
// the explicit "<X> has <D> more than <Y>" equation
func relationshipOverride(text string, nums []float64) (string, bool) {
	if m := reHasMoreThan.FindStringSubmatch(text); m != nil && len(nums) >= 1 {
		d, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			last := nums[len(nums)-1]
			return fmt.Sprintf("x + %s = %s", fnum(d), fnum(last)), true
		}
	}
	if len(nums) < 1 {
		return "", false
	}
	n := fnum(nums[0])
	switch {
	case strings.Contains(text, "twice as"):
		return "2 * " + n, true
	case strings.Contains(text, "three times as"), strings.Contains(text, "triple") && strings.Contains(text, " as "):
		return "3 * " + n, true
	case strings.Contains(text, "half as"), strings.Contains(text, "half of"):
		return n + " / 2", true
	}
	return "", false
}

// speed handles speed/distance/time problems. The first number is the
// principal quantity (distance for speed questions), the second the divisor
func speed(text string, nums []float64) (string, bool) {
	if len(nums) < 2 {
		return "", false
	}
	n0, n1 := fnum(nums[0]), fnum(nums[1])
	switch {
	case strings.Contains(text, "speed") || strings.Contains(text, "mph") || strings.Contains(text, "km/h"):
		if strings.Contains(text, "miles") && strings.Contains(text, "hours") {
			return n0 + " / " + n1, true
		}
		if strings.Contains(text, "km") && strings.Contains(text, "hours") {
			return n0 + " / " + n1, true
		}
		return "", false
	case strings.Contains(text, "how far") || strings.Contains(text, "distance"):
		return n0 + " * " + n1, true
	case strings.Contains(text, "how long") || strings.Contains(text, "time"):
		return n0 + " / " + n1, true
	case strings.Contains(text, "travel"):
		return n0 + " / " + n1, true
	}
	return "", false
}

// age handles age comparisons. The second number is the reference age, the
// first the offset
func age(text string, nums []float64) (string, bool) {
	if len(nums) < 2 {
		return "", false
	}
	n0, n1 := fnum(nums[0]), fnum(nums[1])
	switch {
	case strings.Contains(text, "older"), strings.Contains(text, "more than"):
		return n1 + " + " + n0, true
	case strings.Contains(text, "younger"), strings.Contains(text, "less than"):
		return n1 + " - " + n0, true
	}
	return "", false
}

// money handles purchases, discounts, totals and change
func money(text string, nums []float64) (string, bool) {
	if len(nums) < 2 {
		return "", false
	}
	switch {
	case strings.Contains(text, "each") || strings.Contains(text, "per"):
		// pair consecutive numbers as (quantity, price) across the whole list.
		// Inputs that state price before quantity are unspecified; numbers are
		// taken in strict text order
		var parts []string
		for i := 0; i+1 < len(nums); i += 2 {
			parts = append(parts, fnum(nums[i])+" * "+fnum(nums[i+1]))
		}
		if len(parts) == 0 {
			return "", false
		}
		return strings.Join(parts, " + "), true
	case strings.Contains(text, "discount"):
		rate, base, ok := rateAndBase(nums)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%s * (1 - %s)", fnum(base), fnum(rate)), true
	case strings.Contains(text, "total") || strings.Contains(text, "sum") || strings.Contains(text, "altogether"):
		return joinNums(nums, " + "), true
	case strings.Contains(text, "change") || strings.Contains(text, "difference") || strings.Contains(text, "left"):
		return joinNums(nums, " - "), true
	}
	return "", false
}

// geometry handles shape formulas keyed on (shape, measure) pairs
func geometry(text string, nums []float64) (string, bool) {
	if len(nums) < 1 {
		return "", false
	}
	n0 := fnum(nums[0])
	area := strings.Contains(text, "area")
	perimeter := strings.Contains(text, "perimeter")
	circumference := strings.Contains(text, "circumference")
	volume := strings.Contains(text, "volume")

	switch {
	case strings.Contains(text, "rectangle") && area && len(nums) >= 2:
		return n0 + "*" + fnum(nums[1]), true
	case strings.Contains(text, "rectangle") && perimeter && len(nums) >= 2:
		return fmt.Sprintf("2*(%s + %s)", n0, fnum(nums[1])), true
	case strings.Contains(text, "square") && area:
		return n0 + "*" + n0, true
	case strings.Contains(text, "square") && perimeter:
		return "4*" + n0, true
	case strings.Contains(text, "circle") && area:
		return fmt.Sprintf("pi*%s**2", n0), true
	case strings.Contains(text, "circle") && (circumference || perimeter):
		return "2*pi*" + n0, true
	case strings.Contains(text, "cube") && volume:
		return n0 + "**3", true
	}
	return "", false
}

// percentage handles percent-of, what-percent, and percent change. Percent
// tokens arrive pre-divided by 100 from extraction
func percentage(text string, nums []float64) (string, bool) {
	if len(nums) < 2 {
		return "", false
	}
	switch {
	case strings.Contains(text, "what percent"):
		return fmt.Sprintf("(%s / %s) * 100", fnum(nums[0]), fnum(nums[1])), true
	case strings.Contains(text, "increase"):
		rate, base, ok := rateAndBase(nums)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%s * (1 + %s)", fnum(base), fnum(rate)), true
	case strings.Contains(text, "decrease"):
		rate, base, ok := rateAndBase(nums)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%s * (1 - %s)", fnum(base), fnum(rate)), true
	case strings.Contains(text, "% of") || strings.Contains(text, "percent of"):
		return fnum(nums[0]) + " * " + fnum(nums[1]), true
	}
	return "", false
}

// mixture handles mixing two solutions toward a target concentration:
// r1*x + r2*v = rt*(x + v), solved for the unknown volume x
func mixture(text string, nums []float64) (string, bool) {
	var rates []float64
	var vols []float64
	for _, n := range nums {
		if n < 1 {
			rates = append(rates, n)
		} else {
			vols = append(vols, n)
		}
	}
	if len(rates) < 3 || len(vols) < 1 {
		return "", false
	}
	r1, r2, rt := fnum(rates[0]), fnum(rates[1]), fnum(rates[2])
	v := fnum(vols[0])
	return fmt.Sprintf("%s*x + %s*%s = %s*(x + %s)", r1, r2, v, rt, v), true
}

// workRate handles combined work: 1/a + 1/b = 1/x
func workRate(_ string, nums []float64) (string, bool) {
	if len(nums) < 2 {
		return "", false
	}
	return fmt.Sprintf("1/%s + 1/%s = 1/x", fnum(nums[0]), fnum(nums[1])), true
}

// twoUnknown emits the sum/difference system. S is the larger of the two
// numbers and D the smaller, so input order does not matter
func twoUnknown(_ string, nums []float64) (string, bool) {
	if len(nums) < 2 {
		return "", false
	}
	s, d := nums[0], nums[1]
	if d > s {
		s, d = d, s
	}
	return fmt.Sprintf("x + y = %s, x - y = %s", fnum(s), fnum(d)), true
}

// complexMotion handles boat/current and plane/wind round trips. Requires
// distance plus the two leg times; emits the still-speed/stream-speed system
func complexMotion(text string, nums []float64) (string, bool) {
	if len(nums) < 3 {
		return "", false
	}
	dist, tDown, tUp := nums[0], nums[1], nums[2]
	if tDown == 0 || tUp == 0 {
		return "", false
	}
	down := dist / tDown
	up := dist / tUp

	v1, v2 := "b", "c"
	if strings.Contains(text, "plane") || strings.Contains(text, "wind") || strings.Contains(text, "aircraft") {
		v1, v2 = "p", "w"
	}
	return fmt.Sprintf("%s + %s = %s, %s - %s = %s", v1, v2, fnum(down), v1, v2, fnum(up)), true
}

// growth handles one-period growth: doubling, or base * (1 + rate)
func growth(text string, nums []float64) (string, bool) {
	if len(nums) < 1 {
		return "", false
	}
	if strings.Contains(text, "double") {
		return "2 * " + fnum(nums[0]), true
	}
	rate, base, ok := rateAndBase(nums)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s * (1 + %s)", fnum(base), fnum(rate)), true
}

// algebra tries the equation structure "<left> is/equals <right>" before
// falling back to the general operator tables
func algebra(text string, nums []float64) (string, bool) {
	if expr, ok := general(text, nums); ok {
		return expr, true
	}
	parts := reEqualsSplit.Split(text, 2)
	if len(parts) == 2 {
		left, lok := textToExpression(parts[0], nums)
		right, rok := textToExpression(parts[1], nums)
		if lok && rok {
			return left + " = " + right, true
		}
	}
	return "", false
}

var operationKeywords = map[string][]string{
	"addition":       {"plus", "add", "sum", "total", "combined", "altogether", "increased by", "more than"},
	"subtraction":    {"minus", "subtract", "difference", "less than", "decreased by", "reduced by", "fewer"},
	"multiplication": {"times", "multiply", "product", "twice", "double", "triple"},
	"division":       {"divide", "divided by", "quotient", "per", "split", "share"},
}

// general is the fallback handler: equation phrasings first, then operator
// inference from keyword tables over the first two numbers
func general(text string, nums []float64) (string, bool) {
	hasEq := strings.Contains(text, " is ") || strings.Contains(text, "equal") || strings.Contains(text, "=")

	if len(nums) >= 2 && hasEq {
		if strings.Contains(text, "increased by") {
			return fmt.Sprintf("x + %s = %s", fnum(nums[0]), fnum(nums[1])), true
		}
		if strings.Contains(text, "decreased by") || strings.Contains(text, "reduced by") {
			return fmt.Sprintf("x - %s = %s", fnum(nums[0]), fnum(nums[1])), true
		}
	}
	if len(nums) >= 1 {
		if strings.Contains(text, "twice") || strings.Contains(text, "double") {
			return "2*" + fnum(nums[0]), true
		}
		if strings.Contains(text, "triple") {
			return "3*" + fnum(nums[0]), true
		}
	}
	if strings.Contains(text, "consecutive") && len(nums) >= 1 {
		m := nums[0]
		for _, n := range nums[1:] {
			if n > m {
				m = n
			}
		}
		return fmt.Sprintf("x + (x + 1) = %s", fnum(m)), true
	}
	if len(nums) >= 2 {
		n0, n1 := fnum(nums[0]), fnum(nums[1])
		switch {
		case containsAny(text, operationKeywords["addition"]):
			return n0 + " + " + n1, true
		case containsAny(text, operationKeywords["subtraction"]):
			return n0 + " - " + n1, true
		case containsAny(text, operationKeywords["multiplication"]):
			return n0 + " * " + n1, true
		case containsAny(text, operationKeywords["division"]):
			return n0 + " / " + n1, true
		}
	}
	return "", false
}

// textToExpression converts one side of an equation phrasing: a literal
// number, a variable mention, or the first extracted number
func textToExpression(part string, nums []float64) (string, bool) {
	part = strings.TrimSpace(part)
	if v, err := strconv.ParseFloat(part, 64); err == nil {
		return fnum(v), true
	}
	if strings.Contains(part, "x") || strings.Contains(part, "unknown") || strings.Contains(part, "number") {
		return "x", true
	}
	if len(nums) > 0 {
		return fnum(nums[0]), true
	}
	return "", false
}

// rateAndBase splits numbers into a fractional rate and a principal value.
// Rates already below 1 came from percent extraction; whole-number rates are
// normalized by dividing by 100
func rateAndBase(nums []float64) (rate, base float64, ok bool) {
	rate, base = -1, -1
	for _, n := range nums {
		if rate < 0 && n > 0 && n < 1 {
			rate = n
			continue
		}
		if base < 0 {
			base = n
		}
	}
	if rate < 0 {
		if len(nums) < 2 {
			return 0, 0, false
		}
		base = nums[0]
		rate = nums[1]
		if rate > 1 {
			rate /= 100
		}
	}
	if base < 0 {
		return 0, 0, false
	}
	return rate, base, true
}

func containsAny(text string, kws []string) bool {
	for _, kw := range kws {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func joinNums(nums []float64, sep string) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fnum(n)
	}
	return strings.Join(parts, sep)
}

// fnum renders a float without trailing zeros (120 -> "120", 0.25 -> "0.25")
func fnum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
