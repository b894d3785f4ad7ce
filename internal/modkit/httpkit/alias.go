// Package httpkit is the handler and routing surface modules use
// modules import it instead of internal/platform/net/http
package httpkit

import (
	"net/http"

	phttp "twinlytics/internal/platform/net/http"
	"twinlytics/internal/platform/net/http/bind"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Response is the return-style handler result
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Error returns a response whose status comes from the error code
func Error(err error) Response { return phttp.Error(err) }

// JSON binds and validates the body into T before calling fn
// fn may return a Response to control the status itself
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		in, err := bind.Body[T](r)
		if err != nil {
			return Error(err)
		}
		return wrap(fn(r, in))
	})
}

// Call adapts a handler that takes no JSON body
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response { return wrap(fn(r)) })
}

func wrap(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}

// Param returns a named path parameter from the request
func Param(r *http.Request, key string) string { return phttp.URLParam(r, key) }
