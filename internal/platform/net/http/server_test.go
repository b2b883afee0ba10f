package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mathprose/internal/platform/config"
	phttp "mathprose/internal/platform/net/http"
)

func TestNewServer_DefaultsAndRouting(t *testing.T) {
	srv := phttp.NewServer(config.New().Prefix("TESTSRV_"))
	if srv.Addr() != ":4000" {
		t.Fatalf("Addr() = %q, want %q", srv.Addr(), ":4000")
	}

	r := srv.Router()
	if r == nil || r.Mux() == nil {
		t.Fatalf("router or mux is nil")
	}
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.Mux().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
		t.Fatalf("bad response: %d %q", rec.Code, rec.Body.String())
	}
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	t.Setenv("TESTSRV_PORT", "127.0.0.1:0")
	srv := phttp.NewServer(config.New().Prefix("TESTSRV_"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v after cancel, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
