// Package numbers extracts every numeric quantity from lowercased problem
// text, tagging how each was written
package numbers

import (
	"regexp"
	"strconv"
	"strings"
)

// Source is the notation a number was written in
type Source string

const (
	// SourceDigit is a plain digit literal
	SourceDigit Source = "digit"
	// SourceWord is a spelled-out number word
	SourceWord Source = "word"
	// SourcePercentage is a digits% pattern, stored pre-divided by 100
	SourcePercentage Source = "percentage"
	// SourceFraction is a digits/digits pattern, stored pre-divided
	SourceFraction Source = "fraction"
)

// Token is one extracted quantity
type Token struct {
	Value  float64
	Source Source
}

var (
	rePercent  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	reFraction = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)
	reDigits   = regexp.MustCompile(`\d+(?:\.\d+)?`)
	reWordTrim = regexp.MustCompile(`[^a-z0-9]`)
)

var wordValues = map[string]float64{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19, "twenty": 20,
	"thirty": 30, "forty": 40, "fifty": 50, "sixty": 60, "seventy": 70,
	"eighty": 80, "ninety": 90, "hundred": 100, "thousand": 1000, "million": 1000000,
}

// Extract pulls every numeric quantity out of lowercased text in pass order:
// percentages, fractions, plain digits over a working copy with the first two
// masked out, then spelled-out words. The same digit string is never counted
// twice. Result order is per-pass text order, deduplicated by value keeping
// the first occurrence
func Extract(text string) []Token {
	var out []Token
	working := []byte(text)

	// pass 1: percentages, value pre-divided by 100
	for _, m := range rePercent.FindAllStringSubmatchIndex(text, -1) {
		v, err := strconv.ParseFloat(text[m[2]:m[3]], 64)
		if err != nil {
			continue
		}
		out = append(out, Token{Value: v / 100, Source: SourcePercentage})
		mask(working, m[0], m[1])
	}

	// pass 2: fractions, skipping zero denominators and digit-adjacent spans
	for _, m := range reFraction.FindAllStringSubmatchIndex(text, -1) {
		if digitAdjacent(text, m[0], m[1]) || masked(working, m[0]) {
			continue
		}
		num, err1 := strconv.ParseFloat(text[m[2]:m[3]], 64)
		den, err2 := strconv.ParseFloat(text[m[4]:m[5]], 64)
		if err1 != nil || err2 != nil || den == 0 {
			continue
		}
		out = append(out, Token{Value: num / den, Source: SourceFraction})
		mask(working, m[0], m[1])
	}

	// pass 3: remaining plain digits over the working copy
	wc := string(working)
	for _, m := range reDigits.FindAllStringIndex(wc, -1) {
		v, err := strconv.ParseFloat(wc[m[0]:m[1]], 64)
		if err != nil {
			continue
		}
		out = append(out, Token{Value: v, Source: SourceDigit})
	}

	// pass 4: spelled-out words with compounding
	out = append(out, extractWords(text)...)

	return dedupe(out)
}

// Values returns just the numeric values, in extraction order
func Values(text string) []float64 {
	toks := Extract(text)
	vs := make([]float64, len(toks))
	for i, t := range toks {
		vs[i] = t.Value
	}
	return vs
}

// extractWords scans word tokens left to right against the spelled-number
// table. "twenty five" compounds to 25, "one hundred fifty" to 150
func extractWords(text string) []Token {
	words := strings.Fields(text)
	vals := make([]float64, len(words))
	found := make([]bool, len(words))
	for i, w := range words {
		clean := reWordTrim.ReplaceAllString(w, "")
		if v, ok := wordValues[clean]; ok {
			vals[i] = v
			found[i] = true
		}
	}

	var out []Token
	for i := 0; i < len(words); i++ {
		if !found[i] {
			continue
		}
		acc := vals[i]

		// multiplier word directly after a small count: "one hundred" -> 100
		if i+1 < len(words) && found[i+1] && isMultiplier(vals[i+1]) && acc < vals[i+1] && acc > 0 {
			acc *= vals[i+1]
			i++
			// additive remainder: "one hundred fifty" -> 150
			if i+1 < len(words) && found[i+1] && vals[i+1] < acc {
				acc += vals[i+1]
				i++
			}
		} else if i+1 < len(words) && found[i+1] && acc >= 20 && vals[i+1] < 10 {
			// units after any value from twenty up: "twenty five" -> 25,
			// "thousand five" -> 1005
			acc += vals[i+1]
			i++
		} else if i+1 < len(words) && found[i+1] && acc == 100 && vals[i+1] < 100 {
			acc += vals[i+1]
			i++
		}

		out = append(out, Token{Value: acc, Source: SourceWord})
	}
	return out
}

func isMultiplier(v float64) bool { return v == 100 || v == 1000 || v == 1000000 }

// mask blanks [start,end) in the working copy so later passes cannot re-capture it
func mask(b []byte, start, end int) {
	for i := start; i < end && i < len(b); i++ {
		b[i] = ' '
	}
}

func masked(b []byte, pos int) bool { return pos < len(b) && b[pos] == ' ' }

// digitAdjacent reports whether the span [start,end) touches another digit or
// decimal point, which would make a fraction reading wrong (e.g. "3.5/2")
func digitAdjacent(s string, start, end int) bool {
	if start > 0 {
		c := s[start-1]
		if (c >= '0' && c <= '9') || c == '.' {
			return true
		}
	}
	if end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || c == '.' {
			return true
		}
	}
	return false
}

// dedupe drops repeated values while preserving first-seen order
func dedupe(toks []Token) []Token {
	seen := make(map[float64]struct{}, len(toks))
	out := toks[:0]
	for _, t := range toks {
		if _, ok := seen[t.Value]; ok {
			continue
		}
		seen[t.Value] = struct{}{}
		out = append(out, t)
	}
	return out
}
