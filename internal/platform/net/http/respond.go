// Package http provides the chi router facade and JSON response helpers
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "commentedit/internal/platform/errors"
	pnet "commentedit/internal/platform/net"
)

// Envelope is the response body of every JSON endpoint
type Envelope = pnet.Wire

// JSON writes v as application/json with status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError writes err as an envelope; detail is only included when debug is set
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error, debug bool) {
	status, body := pnet.Error(err, pnet.RequestID(r.Context()), debug)
	JSON(w, status, body)
}

// Response is returned by return-style handlers
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header

	// Location turns the response into a redirect with Status (default 302)
	Location string
	// Debug exposes error detail in the envelope
	Debug bool
}

// Handle adapts a Response-returning handler to a platform Handler
func Handle(h func(r *stdhttp.Request) Response) Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}

	if resp.Location != "" {
		status := resp.Status
		if status == 0 {
			status = stdhttp.StatusFound
		}
		stdhttp.Redirect(w, r, resp.Location, status)
		return
	}

	if err, ok := resp.Body.(error); ok && err != nil {
		RespondError(w, r, err, resp.Debug)
		return
	}

	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	JSON(w, status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		RequestID:  pnet.RequestID(r.Context()),
		Data:       resp.Body,
	})
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error returns a response mapping err to its status
func Error(err error) Response { return Response{Body: err} }

// ErrorDebug is Error with detail exposure controlled by debug
func ErrorDebug(err error, debug bool) Response { return Response{Body: err, Debug: debug} }

// Redirect returns a 302 to location
func Redirect(location string) Response { return Response{Location: location} }

// NotFound is shorthand for a 404
func NotFound(what string) Response { return Error(perr.NotFoundf("%s not found", what)) }
