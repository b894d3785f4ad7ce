package http

import (
	"encoding/json"
	"errors"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"twinlytics/internal/core/analytics"
	"twinlytics/internal/core/analytics/analyticstest"
	phttp "twinlytics/internal/platform/net/http"
	svc "twinlytics/internal/services/api/activities/service"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Code       string          `json:"code"`
	Error      string          `json:"error"`
	Data       json.RawMessage `json:"data"`
}

func serve(t *testing.T, src *analyticstest.Source, method, path, body string) (int, envelope) {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), svc.New(src, svc.Config{}))

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return rec.Code, env
}

func source() *analyticstest.Source {
	return &analyticstest.Source{
		SessionRows: []analytics.Session{
			{ID: "s1", UserID: "u1", UserEmail: "ada@example.com", TwinID: "t1", TwinOwnerID: "u1", Messages: 1, StartedAt: time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)},
		},
		MessageRows: []analytics.Message{
			{ID: "m1", SessionID: "s1", Sender: analytics.SenderUser, Content: "hi", CreatedAt: time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)},
		},
	}
}

func TestSearch_OK(t *testing.T) {
	t.Parallel()

	code, env := serve(t, source(), stdhttp.MethodPost, "/search", `{"page":1,"limit":10,"type":"conversation"}`)
	if code != stdhttp.StatusOK {
		t.Fatalf("status = %d (%s)", code, env.Error)
	}
	var feed analytics.Feed
	if err := json.Unmarshal(env.Data, &feed); err != nil {
		t.Fatalf("data: %v", err)
	}
	if feed.Total != 1 || len(feed.Items) != 1 || feed.Items[0].Type != analytics.KindConversation {
		t.Fatalf("feed = %+v", feed)
	}
}

func TestSearch_BadInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name, body, code string
	}{
		{"unknown type", `{"type":"video"}`, "validation"},
		{"lonely start", `{"start_date":"2025-08-01"}`, "invalid_range"},
		{"bad date", `{"start_date":"2025/08/01","end_date":"2025-08-02"}`, "invalid_range"},
		{"impossible month", `{"start_date":"2025-13-01","end_date":"2025-08-02"}`, "invalid_range"},
		{"inverted", `{"start_date":"2025-08-09","end_date":"2025-08-02"}`, "invalid_range"},
		{"explicit page zero", `{"page":0}`, "invalid_page"},
		{"negative page", `{"page":-1}`, "invalid_page"},
		{"negative limit", `{"limit":-5}`, "invalid_page"},
		{"unknown field", `{"sort":"asc"}`, "invalid_json"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			src := source()
			code, env := serve(t, src, stdhttp.MethodPost, "/search", tc.body)
			if code != stdhttp.StatusBadRequest {
				t.Fatalf("status = %d (%s)", code, env.Error)
			}
			if env.Code != tc.code {
				t.Fatalf("code = %q, want %q (%s)", env.Code, tc.code, env.Error)
			}
			if src.Calls() != 0 {
				t.Fatalf("port called on bad input")
			}
		})
	}
}

func TestSearch_PageOmittedIsFirst(t *testing.T) {
	t.Parallel()

	code, env := serve(t, source(), stdhttp.MethodPost, "/search", `{}`)
	if code != stdhttp.StatusOK {
		t.Fatalf("status = %d (%s)", code, env.Error)
	}
	var feed analytics.Feed
	if err := json.Unmarshal(env.Data, &feed); err != nil {
		t.Fatalf("data: %v", err)
	}
	if feed.Page != 1 || feed.Limit != analytics.DefaultFeedLimit {
		t.Fatalf("paging = %+v", feed)
	}
}

func TestDetail(t *testing.T) {
	t.Parallel()

	code, env := serve(t, source(), stdhttp.MethodGet, "/s1", "")
	if code != stdhttp.StatusOK {
		t.Fatalf("status = %d (%s)", code, env.Error)
	}
	var d analytics.Detail
	if err := json.Unmarshal(env.Data, &d); err != nil {
		t.Fatalf("data: %v", err)
	}
	if d.ID != "s1" || len(d.Messages) != 1 || d.Messages[0].Content != "hi" {
		t.Fatalf("detail = %+v", d)
	}

	if code, _ := serve(t, source(), stdhttp.MethodGet, "/nope", ""); code != stdhttp.StatusNotFound {
		t.Fatalf("missing status = %d", code)
	}
}

func TestDetail_Unavailable(t *testing.T) {
	t.Parallel()

	src := source()
	src.Err = errors.New("db down")
	if code, _ := serve(t, src, stdhttp.MethodGet, "/s1", ""); code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("status = %d", code)
	}
}
