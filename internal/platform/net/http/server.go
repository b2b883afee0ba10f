package http

import (
	"context"
	stdhttp "net/http"
	"time"

	"mathprose/internal/platform/config"
	"mathprose/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server wires a chi mux into a stdlib http.Server. Run blocks until the
// listener fails or the context is canceled; cancellation drains in-flight
// requests before returning
type Server struct {
	mux *chi.Mux
	srv *stdhttp.Server
}

// NewServer reads PORT and the timeout knobs from cfg, all optional
func NewServer(cfg config.Conf) *Server {
	m := chi.NewRouter()
	return &Server{
		mux: m,
		srv: &stdhttp.Server{
			Addr:              cfg.MayString("PORT", ":4000"),
			Handler:           m,
			ReadHeaderTimeout: msConf(cfg, "READ_HEADER_TIMEOUT_MS", 10_000),
			IdleTimeout:       msConf(cfg, "IDLE_TIMEOUT_MS", 60_000),
		},
	}
}

func msConf(cfg config.Conf, key string, def int) time.Duration {
	return time.Duration(cfg.MayInt(key, def)) * time.Millisecond
}

// Router returns the mount surface over the internal mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr returns the listening address
func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until failure or ctx cancellation
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")

	errc := make(chan error, 1)
	go func() { errc <- s.srv.ListenAndServe() }()
	log.Info().Str("addr", s.srv.Addr).Msg("http listening")

	select {
	case err := <-errc:
		if err == stdhttp.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("http shutting down")
		drain, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.srv.Shutdown(drain)
	}
}
