// Package normalize provides the deterministic text normalizer feeding the
// extraction pipeline
// Pipeline order for Normalize
// 1 Unicode NFKC + width fold so pasted fullwidth digits and operators behave like ASCII
// 2 Strip leading command phrases (calculate / what is / find)
// 3 Symbol substitution (^ -> **, unicode operators, pi, infinity, sqrt)
// 4 Implicit multiplication insertion (2x -> 2*x, x2 -> x*2, )( -> )*( )
// 5 Trailing sentence punctuation strip, whitespace collapse, trim
package normalize

import (
	"regexp"
	"strings"
	"sync"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			width.Fold, // map fullwidth forms to ASCII
		)
	},
}

var (
	// "solve" is deliberately not stripped; the dispatcher keys on it
	reCommand     = regexp.MustCompile(`(?i)^(?:calculate|what is|find)\s+`)
	reSqrtParen   = regexp.MustCompile(`√\s*\(`)
	reSqrtBare    = regexp.MustCompile(`√\s*([0-9]+(?:\.[0-9]+)?|[a-zA-Z]+)`)
	reDigitLetter = regexp.MustCompile(`(\d)([a-zA-Z])`)
	reLetterDigit = regexp.MustCompile(`([a-zA-Z])(\d)`)
	reParenParen  = regexp.MustCompile(`\)\s*\(`)

	symbolReplacer = strings.NewReplacer(
		"^", "**",
		"÷", "/",
		"×", "*",
		"π", "pi",
		"∞", "oo",
	)
)

// Normalize rewrites raw input into the canonical form the math path can
// pattern-match reliably. Pure and idempotent; never fails
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = fold(s)

	// strip leading command phrases, repeatedly so "calculate what is ..." fully unwraps
	for {
		out := reCommand.ReplaceAllString(s, "")
		if out == s {
			break
		}
		s = out
	}

	s = reSqrtParen.ReplaceAllString(s, "sqrt(")
	s = reSqrtBare.ReplaceAllString(s, "sqrt($1)")
	s = symbolReplacer.Replace(s)

	s = reDigitLetter.ReplaceAllString(s, "$1*$2")
	s = reLetterDigit.ReplaceAllString(s, "$1*$2")
	s = reParenParen.ReplaceAllString(s, ")*(")

	// sentence punctuation at the end is never part of an expression
	s = strings.TrimRight(s, "?!. ")

	return collapseSpaces(s)
}

// Fold prepares text for the word pipeline: unicode fold, lowercase, single
// spaces. It keeps command phrases and punctuation intact because the
// detector and classifier key on them
func Fold(s string) string {
	if s == "" {
		return ""
	}
	return collapseSpaces(strings.ToLower(fold(s)))
}

func fold(s string) string {
	s = strings.ToValidUTF8(s, "")
	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		return s
	}
	return ns
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
