package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	phttp "twinlytics/internal/platform/net/http"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type health struct{ breaker string }

func (health) Backend() string   { return "sqlite" }
func (h health) Breaker() string { return h.breaker }

func backends(pg, ch, lite any) []Backend {
	return []Backend{{"postgres", pg}, {"clickhouse", ch}, {"sqlite", lite}}
}

func get(t *testing.T, d Deps, path string) (int, json.RawMessage) {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), d)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return rec.Code, env.Data
}

func TestReady(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		deps Deps
		want string
		code int
	}{
		{"sqlite only", Deps{Backends: backends(nil, nil, pinger{})}, "ok", stdhttp.StatusOK},
		{"pg down", Deps{Backends: backends(pinger{err: errors.New("refused")}, nil, pinger{})}, "fail", stdhttp.StatusServiceUnavailable},
		{"nothing configured", Deps{Backends: backends(nil, nil, nil)}, "degraded", stdhttp.StatusOK},
		{"breaker open", Deps{Backends: backends(nil, nil, pinger{}), Source: health{breaker: "open"}}, "degraded", stdhttp.StatusOK},
		{"no ping support", Deps{Backends: backends(struct{}{}, nil, nil)}, "degraded", stdhttp.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			code, data := get(t, tc.deps, "/ready")
			if code != tc.code {
				t.Fatalf("status = %d", code)
			}
			var got ReadyResponse
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("data: %v", err)
			}
			if got.Status != tc.want || len(got.Checks) != 3 {
				t.Fatalf("ready = %+v, want %s", got, tc.want)
			}
			if got.Checks[0].Name != "postgres" || got.Checks[2].Name != "sqlite" {
				t.Fatalf("checks out of order: %+v", got.Checks)
			}
		})
	}
}

func TestSource(t *testing.T) {
	t.Parallel()

	code, data := get(t, Deps{Source: health{breaker: "closed"}}, "/source")
	if code != stdhttp.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var got SourceResponse
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("data: %v", err)
	}
	if got.Backend != "sqlite" || got.Breaker != "closed" {
		t.Fatalf("source = %+v", got)
	}

	if code, _ := get(t, Deps{}, "/source"); code != stdhttp.StatusNotFound {
		t.Fatalf("unmounted source status = %d", code)
	}
}

func TestService_Uptime(t *testing.T) {
	t.Parallel()

	_, data := get(t, Deps{
		ServiceName: "twinlytics-api",
		StartedAt:   time.Now().Add(-time.Minute),
		Modules:     func() []string { return []string{"activities", "dashboard"} },
	}, "/service")
	var got ServiceResponse
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("data: %v", err)
	}
	if got.Name != "twinlytics-api" || got.Uptime < 59 {
		t.Fatalf("service = %+v", got)
	}
	if len(got.Modules) != 2 || got.Modules[0] != "activities" {
		t.Fatalf("modules = %v", got.Modules)
	}
}
