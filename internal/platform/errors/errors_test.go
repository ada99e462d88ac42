package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeSecurity, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q", nilErr.Error())
	}

	cause := stderrs.New("connection reset")
	err := Wrap(cause, ErrorCodeDB, "save comment")
	if got := err.Error(); got != "save comment: connection reset" {
		t.Fatalf("Error() = %q", got)
	}
	if !stderrs.Is(err, cause) || Root(err) != cause {
		t.Fatalf("cause not preserved")
	}
	if CodeOf(err) != ErrorCodeDB || HTTPStatus(err) != http.StatusInternalServerError {
		t.Fatalf("code/status mismatch")
	}

	outer := fmt.Errorf("edit: %w", err)
	if !IsCode(outer, ErrorCodeDB) {
		t.Fatalf("IsCode through fmt wrap failed")
	}
	if CodeOf(stderrs.New("foreign")) != ErrorCodeUnknown {
		t.Fatalf("foreign error should be unknown")
	}
}

func TestMutatorsCopyOnWrite(t *testing.T) {
	base := NotFoundf("comment %d not found", 7)
	withField := WithField(base, "comment_id")
	withOp := WithOp(withField, "comments.edit")

	b, _ := As(base)
	if b.Field() != "" || b.Op() != "" {
		t.Fatalf("base mutated: %+v", b)
	}
	e, _ := As(withOp)
	if e.Field() != "comment_id" || e.Op() != "comments.edit" || e.Code() != ErrorCodeNotFound {
		t.Fatalf("mutators lost data: %+v", e)
	}

	foreign := stderrs.New("x")
	if WithField(foreign, "f") != foreign || WithOp(foreign, "o") != foreign || WithDetail(foreign, "d") != foreign {
		t.Fatalf("foreign errors must pass through unchanged")
	}
}

func TestSecurityDetailOnlyInDebug(t *testing.T) {
	err := Securityf("The comment form failed security verification: %s", "security_hash")

	if HTTPStatus(err) != http.StatusBadRequest {
		t.Fatalf("status = %d", HTTPStatus(err))
	}
	if err.Error() != "Bad Request" {
		t.Fatalf("Error() should stay opaque, got %q", err.Error())
	}

	prod := WireFrom(err, false)
	if prod.Detail != "" || prod.Message != "Bad Request" || prod.Code != ErrorCodeSecurity {
		t.Fatalf("prod wire leaked detail: %+v", prod)
	}
	dbg := WireFrom(err, true)
	if dbg.Detail != "The comment form failed security verification: security_hash" {
		t.Fatalf("debug wire detail = %q", dbg.Detail)
	}
}

func TestWireFrom(t *testing.T) {
	if w := WireFrom(nil, true); w != (Wire{}) {
		t.Fatalf("nil wire = %+v", w)
	}
	w := WireFrom(stderrs.New("boom"), false)
	if w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("foreign wire = %+v", w)
	}
	w = WireFrom(WithField(New(ErrorCodeValidation, "bad"), "comment"), false)
	if w.Field != "comment" || w.Message != "bad" {
		t.Fatalf("wire = %+v", w)
	}
}
