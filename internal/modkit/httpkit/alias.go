// Package httpkit provides handler and routing helpers over the platform http package.
// Modules import this instead of internal/platform/net/http.
package httpkit

import (
	"net/http"

	phttp "commentedit/internal/platform/net/http"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Response is the HTTP response type
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Error returns a response that maps an error to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// Redirect returns a 302 response
func Redirect(location string) Response { return phttp.Redirect(location) }

// Call adapts a handler that returns data or an error
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(phttp.Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}

// Handle adapts a Response-returning function
func Handle(fn func(*http.Request) Response) Handler {
	return phttp.Handle(fn)
}

// Get mounts a data-or-error handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// Post mounts a data-or-error handler under POST
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, Call(h))
}

// URLParam returns a path parameter
func URLParam(r *http.Request, key string) string { return phttp.URLParam(r, key) }

// ErrorDebug is Error with detail exposure controlled by debug
func ErrorDebug(err error, debug bool) Response { return phttp.ErrorDebug(err, debug) }
