package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "commentedit/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestDocumentAppliesMutatorsAndDefaults(t *testing.T) {
	Register(func(spec map[string]any) {
		AddOperation(spec, "/test/ping", "get", map[string]any{"summary": "ping"})
	})
	Register(nil)

	spec := Document(Info{Title: "commentedit", Version: "test"})
	paths := spec["paths"].(map[string]any)
	op := paths["/test/ping"].(map[string]any)["get"].(map[string]any)
	resp := op["responses"].(map[string]any)
	if _, ok := resp["default"]; !ok {
		t.Fatalf("default error response missing: %+v", op)
	}
}

func TestMountServesJSON(t *testing.T) {
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), true, Info{Title: "commentedit", Version: "test"})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/doc.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc["openapi"] != "3.0.3" {
		t.Fatalf("openapi version: %v", doc["openapi"])
	}
}

func TestMountDisabled(t *testing.T) {
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), false, Info{})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/doc.json", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d", rec.Code)
	}
}
