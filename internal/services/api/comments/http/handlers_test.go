package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"commentedit/internal/core/sechash"
	pnet "commentedit/internal/platform/net"
	phttp "commentedit/internal/platform/net/http"
	"commentedit/internal/services/api/comments/domain"
	"commentedit/internal/services/api/comments/form"
	"commentedit/internal/services/api/comments/repo"
	svc "commentedit/internal/services/api/comments/service"
)

var owner = pnet.Principal{UserID: "owner", Username: "ada", Email: "ada@x.io", Perms: []string{domain.PermChangeComment}}

func withPrincipal(p *pnet.Principal) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			if p != nil {
				r = r.WithContext(pnet.WithPrincipal(r.Context(), *p))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func newServer(t *testing.T, p *pnet.Principal, debug bool) (stdhttp.Handler, *sechash.Provider) {
	t.Helper()
	h, err := sechash.New("s3cret", "")
	if err != nil {
		t.Fatalf("sechash: %v", err)
	}
	st := repo.NewMemory(domain.Comment{
		ID: 42, SiteID: 1, ContentType: domain.ContentType{ID: 7}, ObjectPK: "3", UserID: "owner",
		UserName: "Ada", UserEmail: "ada@x.io", Body: "first", SubmitDate: time.Unix(1709294400, 0).UTC(),
	})
	s := svc.New(st, svc.Options{SiteID: 1, Forms: form.NewFactory(h, nil).New})

	mux := chi.NewRouter()
	mux.Use(withPrincipal(p))
	r := phttp.AdaptChi(mux)
	r.Route("/comments", func(rr phttp.Router) { Register(rr, s, Options{Debug: debug}) })
	return mux, h
}

func post(t *testing.T, srv stdhttp.Handler, path string, v url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(stdhttp.MethodPost, path, strings.NewReader(v.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func validForm(h *sechash.Provider) url.Values {
	tok := h.Token("7", "42", 1709294400)
	return url.Values{
		"user_name":     {"Ada"},
		"user_email":    {"ada@x.io"},
		"comment":       {"edited body"},
		"timestamp":     {tok.Timestamp},
		"security_hash": {tok.SecurityHash},
	}
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) pnet.Wire {
	t.Helper()
	var w pnet.Wire
	if err := json.Unmarshal(rec.Body.Bytes(), &w); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return w
}

func TestEditRedirects(t *testing.T) {
	srv, h := newServer(t, &owner, false)
	v := validForm(h)
	v.Set("next", "/posts/3")
	rec := post(t, srv, "/comments/edit/42", v)
	if rec.Code != stdhttp.StatusFound || rec.Header().Get("Location") != "/posts/3?c=42" {
		t.Fatalf("status=%d location=%q body=%s", rec.Code, rec.Header().Get("Location"), rec.Body.String())
	}
}

func TestPreviewKeyPresence(t *testing.T) {
	srv, h := newServer(t, &owner, false)
	v := validForm(h)
	v.Set("preview", "")
	rec := post(t, srv, "/comments/edit/42", v)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	data, _ := envelope(t, rec).Data.(map[string]any)
	if data["body"] != "edited body" {
		t.Fatalf("preview payload: %v", data)
	}
}

func TestSecurityFailureDetailOnlyInDebug(t *testing.T) {
	for _, debug := range []bool{false, true} {
		srv, h := newServer(t, &owner, debug)
		v := validForm(h)
		v.Set("honeypot", "bot")
		rec := post(t, srv, "/comments/edit/42", v)
		if rec.Code != stdhttp.StatusBadRequest {
			t.Fatalf("debug=%v status=%d", debug, rec.Code)
		}
		w := envelope(t, rec)
		hasDetail := strings.Contains(w.Detail, "The comment form failed security verification")
		if hasDetail != debug {
			t.Fatalf("debug=%v detail=%q", debug, w.Detail)
		}
	}
}

func TestUnauthenticatedAndUnauthorized(t *testing.T) {
	srv, h := newServer(t, nil, true)
	if rec := post(t, srv, "/comments/edit/42", validForm(h)); rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("anonymous status=%d", rec.Code)
	}

	stranger := pnet.Principal{UserID: "other", Perms: []string{domain.PermChangeComment}}
	srv, h = newServer(t, &stranger, true)
	rec := post(t, srv, "/comments/edit/42", validForm(h))
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("stranger status=%d", rec.Code)
	}
	if w := envelope(t, rec); w.Detail != "" {
		t.Fatalf("unauthorized must carry no detail: %q", w.Detail)
	}
}

func TestNotFoundAndBadID(t *testing.T) {
	srv, h := newServer(t, &owner, false)
	if rec := post(t, srv, "/comments/edit/9", validForm(h)); rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("missing status=%d", rec.Code)
	}
	if rec := post(t, srv, "/comments/edit/abc", validForm(h)); rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("bad id status=%d", rec.Code)
	}
}

func TestFreshFormAndEdited(t *testing.T) {
	srv, h := newServer(t, &owner, false)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/comments/edit/42", nil))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("form status=%d", rec.Code)
	}
	data, _ := envelope(t, rec).Data.(map[string]any)
	sec, _ := data["security"].(map[string]any)
	if sec["security_hash"] != h.Generate("7", "42", "1709294400") || data["target"] != "/comments/edit/42" {
		t.Fatalf("fresh form: %v", data)
	}

	for q, wantNull := range map[string]bool{"c=42": false, "c=nope": true, "": true, "c=404": true} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/comments/edited?"+q, nil))
		if rec.Code != stdhttp.StatusOK {
			t.Fatalf("%q status=%d", q, rec.Code)
		}
		data, _ := envelope(t, rec).Data.(map[string]any)
		if (data["comment"] == nil) != wantNull {
			t.Fatalf("%q => %v", q, data)
		}
	}
}

func TestSubmissionJSONBody(t *testing.T) {
	cases := []struct {
		name    string
		preview string
		want    int
	}{
		{"no preview key", "", stdhttp.StatusFound},
		{"preview false", `,"preview":false`, stdhttp.StatusFound},
		{"preview true", `,"preview":true`, stdhttp.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, h := newServer(t, &owner, false)
			tok := h.Token("7", "42", 1709294400)
			body := `{"comment":"from json","timestamp":` + tok.Timestamp + `,"security_hash":"` + tok.SecurityHash +
				`","user_name":"Ada","user_email":"ada@x.io"` + tc.preview + `}`
			req := httptest.NewRequest(stdhttp.MethodPost, "/comments/edit/42", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
			}
			if tc.want == stdhttp.StatusFound && rec.Header().Get("Location") != "/comments/edited?c=42" {
				t.Fatalf("location=%q", rec.Header().Get("Location"))
			}
		})
	}
}

func TestDocsOperations(t *testing.T) {
	doc := map[string]any{"paths": map[string]any{}}
	addOperations(doc, "/comments")
	paths := doc["paths"].(map[string]any)
	edit, _ := paths["/comments/edit/{comment_id}"].(map[string]any)
	if edit["get"] == nil || edit["post"] == nil || paths["/comments/edited"] == nil {
		t.Fatalf("paths: %v", paths)
	}
}
