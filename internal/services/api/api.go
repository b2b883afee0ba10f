// Package api provides the HTTP API for the solver
package api

import (
	stdhttp "net/http"

	"mathprose/internal/platform/config"
	"mathprose/internal/platform/logger"
	phttp "mathprose/internal/platform/net/http"
	"mathprose/internal/platform/net/http/bind"
	"mathprose/internal/services/solver/domain"
	solversvc "mathprose/internal/services/solver/service"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Logger *logger.Logger
}

// SolveRequest is the POST /v1/solve payload
type SolveRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
	Type string `json:"type" validate:"omitempty,oneof=auto algebra calculus geometry word_problem direct_equation"`
}

// ExtractRequest is the POST /v1/extract payload
type ExtractRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}

// Mount mounts the solver endpoints under /v1
func Mount(r phttp.Router, opt Options) {
	h := &handlers{svc: solversvc.New()}
	r.Route("/v1", func(v1 phttp.Router) {
		v1.Post("/solve", phttp.Handle(h.solve))
		v1.Post("/extract", phttp.Handle(h.extract))
	})
}

type handlers struct {
	svc *solversvc.Service
}

func (h *handlers) solve(r *stdhttp.Request) phttp.Response {
	req, err := bind.ParseJSON[SolveRequest](r)
	if err != nil {
		return phttp.Error(err)
	}
	res, err := h.svc.Solve(r.Context(), domain.Input{Text: req.Text, DeclaredType: req.Type})
	if err != nil {
		return phttp.Error(err)
	}
	return phttp.OK(res)
}

func (h *handlers) extract(r *stdhttp.Request) phttp.Response {
	req, err := bind.ParseJSON[ExtractRequest](r)
	if err != nil {
		return phttp.Error(err)
	}
	pre, err := h.svc.Preprocess(r.Context(), req.Text)
	if err != nil {
		return phttp.Error(err)
	}
	return phttp.OK(pre)
}
