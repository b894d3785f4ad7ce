// Package swaggerkit serves the OpenAPI document and Swagger UI
package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"sync"

	"twinlytics/internal/core/version"
	phttp "twinlytics/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.json
var openapi []byte

var (
	docOnce sync.Once
	doc     []byte
	docErr  error
)

// document stamps the build version into the embedded spec
func document() ([]byte, error) {
	docOnce.Do(func() {
		var spec map[string]any
		if docErr = json.Unmarshal(openapi, &spec); docErr != nil {
			return
		}
		if info, ok := spec["info"].(map[string]any); ok {
			info["version"] = version.Info().Version
		}
		doc, docErr = json.Marshal(spec)
	})
	return doc, docErr
}

func serveDoc(w http.ResponseWriter, _ *http.Request) {
	b, err := document()
	if err != nil {
		http.Error(w, "spec parse error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(b)
}

// Mount serves the UI under /api/docs/ when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDoc)
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("twinlytics"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}
