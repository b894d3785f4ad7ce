package middleware

import (
	"net/http"
	"runtime/debug"

	perr "twinlytics/internal/platform/errors"
	"twinlytics/internal/platform/logger"
	phttp "twinlytics/internal/platform/net/http"
)

// RecoverJSON turns a panic into a 500 error envelope
// http.ErrAbortHandler is re-raised so the server can drop the connection
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Str("component", "http").
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			fail := perr.PanicErrf("internal error while serving %s", r.URL.Path)
			phttp.Handle(func(*http.Request) phttp.Response { return phttp.Error(fail) })(w, r)
		}()
		next.ServeHTTP(w, r)
	})
}
