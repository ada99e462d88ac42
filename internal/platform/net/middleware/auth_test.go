package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "commentedit/internal/platform/errors"
	pnet "commentedit/internal/platform/net"
	"commentedit/internal/platform/net/middleware"
)

type fakeAuthPort struct {
	p   pnet.Principal
	err error
}

func (f fakeAuthPort) Parse(*http.Request) (pnet.Principal, error) { return f.p, f.err }

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestAuth_NilPortPassesThrough(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := pnet.PrincipalFrom(r.Context()); ok {
			t.Fatalf("no principal expected")
		}
	})
	rr := httptest.NewRecorder()
	middleware.Auth(nil, writeJSON)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Fatal("expected next to be called")
	}
}

func TestAuth_StoresPrincipal(t *testing.T) {
	port := fakeAuthPort{p: pnet.Principal{UserID: "42", Username: "kari"}}
	var got pnet.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = pnet.PrincipalFrom(r.Context())
	})
	rr := httptest.NewRecorder()
	middleware.Auth(port, writeJSON)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
	if got.UserID != "42" || got.Username != "kari" {
		t.Fatalf("principal = %+v", got)
	}
}

func TestAuth_RejectsWith401(t *testing.T) {
	port := fakeAuthPort{err: perr.Unauthorizedf("invalid bearer token")}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not run")
	})
	rr := httptest.NewRecorder()
	middleware.Auth(port, writeJSON)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rr.Code)
	}
	var body pnet.Wire
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != perr.ErrorCodeUnauthorized || body.Detail != "" {
		t.Fatalf("body = %+v", body)
	}
}
