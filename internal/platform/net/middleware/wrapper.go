// Package middleware wraps the chi and cors middleware the API stack mounts
// callers never import chi directly
package middleware

import (
	"net/http"
	"time"

	pstrings "twinlytics/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

type mw = func(http.Handler) http.Handler

// RequestID attaches or propagates X-Request-ID and stores it on context
func RequestID() mw { return chimw.RequestID }

// RealIP sets RemoteAddr from X-Forwarded-For and X-Real-IP
func RealIP() mw { return chimw.RealIP }

// Timeout cancels the request context after d
func Timeout(d time.Duration) mw { return chimw.Timeout(d) }

// NoCache marks every response uncacheable; analytics are computed against now
func NoCache() mw { return chimw.NoCache }

// Compress negotiates gzip or deflate at the given flate level
func Compress(level int) mw {
	c := chimw.NewCompressor(level)
	return c.Handler
}

// RedirectSlashes redirects /foo/ to /foo
func RedirectSlashes() mw { return chimw.RedirectSlashes }

// StripSlashes strips a trailing slash from the request path
func StripSlashes() mw { return chimw.StripSlashes }

// Throttle caps in-flight requests; excess requests get 429
func Throttle(limit int) mw { return chimw.Throttle(limit) }

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) mw { return chimw.Heartbeat(path) }

// CORSOptions is a narrow surface over go-chi/cors
type CORSOptions struct {
	AllowedOrigins []string
	AllowedHeaders []string
	MaxAge         int
}

// CORS allows the dashboard front end to call the read-only API
func CORS(o CORSOptions) mw {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: o.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Content-Type", "X-Request-ID"}),
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         o.MaxAge,
	})
}
