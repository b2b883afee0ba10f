// Package service implements the solver service
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"mathprose/internal/core/classify"
	"mathprose/internal/core/detect"
	"mathprose/internal/core/dispatch"
	"mathprose/internal/core/normalize"
	"mathprose/internal/core/numbers"
	"mathprose/internal/core/synth"
	perr "mathprose/internal/platform/errors"
	"mathprose/internal/platform/logger"
	"mathprose/internal/services/solver/domain"
)

// Service runs the full extract-and-dispatch pipeline. It is stateless;
// every solve is independent
type Service struct{}

// New constructs the solver service
func New() *Service {
	return &Service{}
}

// Solve takes raw problem text through normalization, detection, extraction,
// synthesis and dispatch. Candidate expressions are tried in order: the
// synthesized expression, then the normalized raw text, then the general
// branch on the normalized text; a structured error is returned only after
// every rung fails
func (s *Service) Solve(ctx context.Context, in domain.Input) (domain.Result, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return domain.Result{}, perr.InvalidArgf("empty problem text")
	}
	declared, err := domain.ParseDeclaredType(in.DeclaredType)
	if err != nil {
		return domain.Result{}, err
	}

	id := uuid.NewString()
	log := logger.C(ctx).With().Str("solve_id", id).Logger()

	folded := normalize.Fold(text)
	pre := s.preprocess(folded, declared)
	cleaned := normalize.Normalize(text)

	var candidates []string
	if pre.WordProblem && pre.Expression != "" {
		candidates = append(candidates, pre.Expression)
	}
	candidates = append(candidates, cleaned)

	var lastErr error
	for _, expr := range candidates {
		dec := dispatch.Decide(expr, declared)
		res, err := s.run(text, expr, dec)
		if err == nil {
			res.ID = id
			res.Category = pre.Category
			log.Info().
				Str("op", res.Operation).
				Str("expression", res.Expression).
				Msg("solved")
			return res, nil
		}
		lastErr = err
		log.Debug().Err(err).Str("expression", expr).Msg("candidate failed")
	}

	// last rung: force the general branch on the normalized text
	res, err := s.run(text, cleaned, dispatch.Decision{Op: dispatch.OpGeneral, Expression: cleaned})
	if err == nil {
		res.ID = id
		res.Category = pre.Category
		return res, nil
	}
	lastErr = err

	if pre.WordProblem {
		if len(pre.Numbers) == 0 {
			return domain.Result{}, perr.NoNumbersf("no numbers found in %q", text)
		}
		return domain.Result{}, perr.Unclassifiablef("could not derive a solvable expression from %q", text)
	}
	return domain.Result{}, lastErr
}

// Preprocess runs the word pipeline only: detect, extract, classify,
// synthesize. It never dispatches
func (s *Service) Preprocess(ctx context.Context, text string) (domain.Preprocessed, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Preprocessed{}, perr.InvalidArgf("empty problem text")
	}
	folded := normalize.Fold(text)
	pre := s.preprocess(folded, dispatch.TypeWordProblem)
	pre.WordProblem = detect.IsWordProblem(folded)
	return pre, nil
}

// ExtractExpression returns the synthesized expression for a word problem,
// or false when synthesis found no pattern
func (s *Service) ExtractExpression(ctx context.Context, text string) (string, bool) {
	pre, err := s.Preprocess(ctx, text)
	if err != nil {
		return "", false
	}
	return pre.Expression, pre.Expression != ""
}

func (s *Service) preprocess(folded string, declared dispatch.ProblemType) domain.Preprocessed {
	isWord := declared == dispatch.TypeWordProblem
	if declared == dispatch.TypeAuto || declared == dispatch.TypeGeometry {
		isWord = detect.IsWordProblem(folded)
	}
	pre := domain.Preprocessed{WordProblem: isWord}
	if !isWord {
		return pre
	}

	for _, tok := range numbers.Extract(folded) {
		pre.Numbers = append(pre.Numbers, tok.Value)
	}
	cat := classify.Classify(folded)
	pre.Category = string(cat)
	if expr, ok := synth.Synthesize(folded, pre.Numbers, cat); ok {
		pre.Expression = expr
	}
	return pre
}
