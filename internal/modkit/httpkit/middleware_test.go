package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func applyStack(h http.Handler, stack []func(http.Handler) http.Handler) http.Handler {
	for i := len(stack) - 1; i >= 0; i-- {
		h = stack[i](h)
	}
	return h
}

func TestAPIStack_HealthAndPassThrough(t *testing.T) {
	t.Parallel()

	hits := 0
	root := applyStack(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if w.Header().Get("Cache-Control") == "" {
			t.Errorf("NoCache did not run before the handler")
		}
		w.WriteHeader(http.StatusNoContent)
	}), APIStack(StackOptions{}))

	rec := httptest.NewRecorder()
	root.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || hits != 0 {
		t.Fatalf("/health: code=%d hits=%d", rec.Code, hits)
	}

	rec = httptest.NewRecorder()
	root.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Code != http.StatusNoContent || hits != 1 {
		t.Fatalf("/ping: code=%d hits=%d", rec.Code, hits)
	}
}

func TestAPIStack_RecoversPanics(t *testing.T) {
	t.Parallel()

	root := applyStack(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("scan failed")
	}), APIStack(StackOptions{}))
	rec := httptest.NewRecorder()
	root.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAPIStack_CORSOrigins(t *testing.T) {
	t.Parallel()

	root := applyStack(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}), APIStack(StackOptions{CORSOrigins: []string{"https://dash.example.com"}}))

	for origin, want := range map[string]string{
		"https://dash.example.com": "https://dash.example.com",
		"https://evil.example.com": "",
	} {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", origin)
		rec := httptest.NewRecorder()
		root.ServeHTTP(rec, req)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != want {
			t.Fatalf("origin %s: allow = %q, want %q", origin, got, want)
		}
	}
}
