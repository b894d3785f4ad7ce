package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"twinlytics/internal/platform/net/middleware"
)

// StackOptions tunes the shared API middleware
type StackOptions struct {
	// SlowRequest logs requests at warn once they take this long, 0 disables
	SlowRequest time.Duration
	// CORSOrigins lists the browser origins allowed to call the API, empty allows any
	CORSOrigins []string
	// Timeout bounds a request end to end, 0 means 30s
	Timeout time.Duration
}

// APIStack is the middleware every /api route runs through, outermost first
func APIStack(o StackOptions) []func(http.Handler) http.Handler {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest, Skip: []string{"/health"}}),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(timeout),
	}
}
