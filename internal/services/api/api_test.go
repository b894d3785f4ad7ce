package api

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"twinlytics/internal/platform/config"
	phttp "twinlytics/internal/platform/net/http"
	"twinlytics/internal/platform/store"
)

func TestMount_ServesModules(t *testing.T) {
	t.Setenv("SERVICE_DATA_BACKEND", "sqlite")

	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{Lite: store.SQLiteConfig{Enabled: true, Path: ":memory:"}})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(ctx) })
	schema, err := os.ReadFile("../twindata/repo/testdata/schema.sql")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if _, err := st.Lite.Exec(ctx, string(schema)); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), Options{Config: config.New(), Store: st, EnableMetrics: true})

	cases := []struct {
		method, path, body string
		want               int
	}{
		{stdhttp.MethodGet, "/api/v1/meta/health", "", stdhttp.StatusOK},
		{stdhttp.MethodGet, "/api/v1/meta/source", "", stdhttp.StatusOK},
		{stdhttp.MethodPost, "/api/v1/dashboard/metrics", `{"start_date":"2025-08-01","end_date":"2025-08-07"}`, stdhttp.StatusOK},
		{stdhttp.MethodPost, "/api/v1/activities/search", `{"page":1}`, stdhttp.StatusOK},
		{stdhttp.MethodGet, "/api/v1/activities/missing", "", stdhttp.StatusNotFound},
		{stdhttp.MethodGet, "/metrics", "", stdhttp.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%s %s = %d, want %d: %s", tc.method, tc.path, rec.Code, tc.want, rec.Body.String())
		}
	}
}
