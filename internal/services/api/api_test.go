package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "mathprose/internal/platform/errors"
	phttp "mathprose/internal/platform/net/http"
	"mathprose/internal/services/api"
)

func newTestMux(t *testing.T) http.Handler {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	api.Mount(r, api.Options{})
	return r.Mux()
}

func postJSON(t *testing.T, mux http.Handler, path, body string) (*httptest.ResponseRecorder, phttp.Envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	mux.ServeHTTP(rec, req)

	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v (body %q)", err, rec.Body.String())
	}
	return rec, env
}

func TestSolveEndpoint(t *testing.T) {
	mux := newTestMux(t)

	rec, env := postJSON(t, mux, "/v1/solve", `{"text": "What is 25% of 80?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}

	data, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("envelope data is %#v, want object", env.Data)
	}
	if data["answer"] != "20" {
		t.Fatalf("answer = %v, want %q", data["answer"], "20")
	}
	if data["operation"] != "evaluate" {
		t.Fatalf("operation = %v, want %q", data["operation"], "evaluate")
	}
	if data["id"] == "" || data["id"] == nil {
		t.Fatalf("missing solve id in %v", data)
	}
}

func TestSolveEndpoint_DeclaredType(t *testing.T) {
	mux := newTestMux(t)

	rec, env := postJSON(t, mux, "/v1/solve", `{"text": "x**3", "type": "calculus"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}
	data, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("envelope data is %#v, want object", env.Data)
	}
	if data["operation"] != "differentiate" {
		t.Fatalf("operation = %v, want %q", data["operation"], "differentiate")
	}
	if data["answer"] != "f'(x) = 3*x**2" {
		t.Fatalf("answer = %v, want %q", data["answer"], "f'(x) = 3*x**2")
	}
}

func TestSolveEndpoint_Errors(t *testing.T) {
	mux := newTestMux(t)
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   perr.ErrorCode
	}{
		{
			name:       "empty body",
			body:       "",
			wantStatus: http.StatusBadRequest,
			wantCode:   perr.ErrorCodeJSON,
		},
		{
			name:       "missing text",
			body:       `{"type": "auto"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   perr.ErrorCodeValidation,
		},
		{
			name:       "unknown problem type",
			body:       `{"text": "x = 1", "type": "poetry"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   perr.ErrorCodeValidation,
		},
		{
			name:       "unparseable text",
			body:       `{"text": "hello world"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   perr.ErrorCodeParse,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := postJSON(t, mux, "/v1/solve", tc.body)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %q)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if env.Code != tc.wantCode {
				t.Fatalf("code = %d, want %d (body %q)", env.Code, tc.wantCode, rec.Body.String())
			}
			if env.Error == "" {
				t.Fatalf("expected an error message in %q", rec.Body.String())
			}
		})
	}
}

func TestExtractEndpoint(t *testing.T) {
	mux := newTestMux(t)

	rec, env := postJSON(t, mux, "/v1/extract", `{"text": "A car travels 120 miles in 3 hours. What is its speed?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}
	data, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("envelope data is %#v, want object", env.Data)
	}
	if data["word_problem"] != true {
		t.Fatalf("word_problem = %v, want true", data["word_problem"])
	}
	if data["category"] != "speed" {
		t.Fatalf("category = %v, want %q", data["category"], "speed")
	}
	if data["expression"] != "120 / 3" {
		t.Fatalf("expression = %v, want %q", data["expression"], "120 / 3")
	}
}
