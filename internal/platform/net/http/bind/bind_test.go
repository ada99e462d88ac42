package bind

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	perr "commentedit/internal/platform/errors"
)

type sample struct {
	Name  string `form:"user_name" validate:"required,max=5"`
	Email string `form:"user_email" validate:"required,email"`
	Home  string `json:"user_url" validate:"omitempty,url"`
	TS    string `form:"timestamp" validate:"required,integer"`
	Hash  string `form:"security_hash" validate:"required,min=4,max=4"`
}

func TestStruct_Valid(t *testing.T) {
	errs, err := Struct(sample{Name: "ola", Email: "ola@example.com", TS: "-12", Hash: "abcd"})
	if err != nil || errs != nil {
		t.Fatalf("expected valid, got %v %v", errs, err)
	}
}

func TestStruct_Messages(t *testing.T) {
	errs, err := Struct(sample{Name: "Åsmund", Email: "nope", Home: "not a url", TS: "1.5", Hash: "abc"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := map[string]string{
		"user_name":     "Ensure this value has at most 5 characters (it has 6).",
		"user_email":    "Enter a valid email address.",
		"user_url":      "Enter a valid URL.",
		"timestamp":     "Enter a whole number.",
		"security_hash": "Ensure this value has at least 4 characters (it has 3).",
	}
	for field, msg := range want {
		got := errs[field]
		if len(got) != 1 || got[0] != msg {
			t.Fatalf("%s => %q, want %q", field, got, msg)
		}
	}
}

func TestStruct_Required(t *testing.T) {
	errs, _ := Struct(sample{})
	for _, f := range []string{"user_name", "user_email", "timestamp", "security_hash"} {
		if got := errs[f]; len(got) != 1 || got[0] != "This field is required." {
			t.Fatalf("%s => %q", f, got)
		}
	}
	if _, ok := errs["user_url"]; ok {
		t.Fatalf("optional url must not be required")
	}
}

func TestStruct_InvalidTarget(t *testing.T) {
	if _, err := Struct(nil); err == nil {
		t.Fatalf("expected error for nil target")
	}
}

func TestRegisterMessage(t *testing.T) {
	type trap struct {
		Honey string `form:"honey" validate:"isdefault"`
	}
	if err := RegisterMessage("isdefault", "go away"); err != nil {
		t.Fatalf("RegisterMessage: %v", err)
	}
	errs, _ := Struct(trap{Honey: "bzz"})
	if got := errs["honey"]; len(got) != 1 || got[0] != "go away" {
		t.Fatalf("honey => %q", got)
	}
}

func TestValues_Form(t *testing.T) {
	form := url.Values{"comment": {"hello"}, "preview": {""}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	got, err := Values(req)
	if err != nil {
		t.Fatalf("Values: %v", err)
	}
	if got.Get("comment") != "hello" || !got.Has("preview") {
		t.Fatalf("got %v", got)
	}
}

func TestValues_JSON(t *testing.T) {
	body := `{"comment":"hi","timestamp":1700000000,"preview":null,"flags":["a",true]}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	got, err := Values(req)
	if err != nil {
		t.Fatalf("Values: %v", err)
	}
	if got.Get("timestamp") != "1700000000" || got.Get("comment") != "hi" {
		t.Fatalf("got %v", got)
	}
	if !got.Has("preview") || got.Get("preview") != "" {
		t.Fatalf("null should keep an empty key, got %v", got["preview"])
	}
	if fl := got["flags"]; len(fl) != 2 || fl[1] != "true" {
		t.Fatalf("flags = %v", fl)
	}
}

func TestValues_BadJSON(t *testing.T) {
	for _, body := range []string{`{"a":`, `{"a":1} {"b":2}`, `[1,2]`} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if _, err := Values(req); perr.CodeOf(err) != perr.ErrorCodeJSON {
			t.Fatalf("body %q: code = %v (%v)", body, perr.CodeOf(err), err)
		}
	}
}

func TestPathInt64(t *testing.T) {
	if id, err := PathInt64("42", "comment_id"); err != nil || id != 42 {
		t.Fatalf("PathInt64 = %d %v", id, err)
	}
	for _, raw := range []string{"", "0", "-1", "x"} {
		_, err := PathInt64(raw, "comment_id")
		if perr.CodeOf(err) != perr.ErrorCodeInvalidArgument {
			t.Fatalf("PathInt64(%q) code = %v", raw, perr.CodeOf(err))
		}
	}
}
