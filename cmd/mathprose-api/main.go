// Command mathprose-api serves the solver over HTTP
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"mathprose/internal/platform/config"
	"mathprose/internal/platform/logger"
	phttp "mathprose/internal/platform/net/http"
	"mathprose/internal/platform/net/middleware"

	"mathprose/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	r := srv.Router()
	r.Use(middleware.Defaults()...)
	r.Use(middleware.Heartbeat("/healthz"))
	r.Use(middleware.CORS(middleware.CORSOptions{
		AllowedOrigins: splitOrigins(apiCfg.MayString("CORS_ORIGINS", "*")),
	}))

	api.Mount(r, api.Options{
		Config: apiCfg,
		Logger: l,
	})

	// SIGINT/SIGTERM drain the server instead of killing it mid-request
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
