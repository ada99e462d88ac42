package net

import (
	"net/http"
	"testing"

	perr "commentedit/internal/platform/errors"
)

func TestOK(t *testing.T) {
	status, w := OK(map[string]int{"n": 1}, "rid")
	if status != http.StatusOK || w.StatusCode != http.StatusOK || w.RequestID != "rid" || w.Data == nil {
		t.Fatalf("OK = %d %+v", status, w)
	}
}

func TestError(t *testing.T) {
	status, w := Error(perr.NotFoundf("comment not found"), "rid", false)
	if status != http.StatusNotFound || w.Code != perr.ErrorCodeNotFound || w.Error != "comment not found" {
		t.Fatalf("Error = %d %+v", status, w)
	}

	sec := perr.Securityf("tampered")
	_, prod := Error(sec, "rid", false)
	_, dbg := Error(sec, "rid", true)
	if prod.Detail != "" || dbg.Detail != "tampered" {
		t.Fatalf("detail gating broken: prod=%q dbg=%q", prod.Detail, dbg.Detail)
	}

	status, _ = Error(nil, "rid", false)
	if status != http.StatusOK {
		t.Fatalf("nil error status = %d", status)
	}
}
