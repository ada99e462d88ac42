package swaggerkit

import (
	"encoding/json"
	"net/http"
	"sync"
)

// SpecMutator lets modules add paths and schemas to the served document
type SpecMutator func(spec map[string]any)

var (
	mu       sync.RWMutex
	mutators []SpecMutator
)

// Register adds a spec mutator
func Register(m SpecMutator) {
	if m == nil {
		return
	}
	mu.Lock()
	mutators = append(mutators, m)
	mu.Unlock()
}

// Info is the document header
type Info struct {
	Title   string
	Version string
}

// Document builds the OpenAPI 3.0 document from the base plus every registered mutator
func Document(info Info) map[string]any {
	spec := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   info.Title,
			"version": info.Version,
		},
		"paths": map[string]any{},
		"components": map[string]any{
			"schemas": map[string]any{"ErrorResponse": errorSchema()},
			"securitySchemes": map[string]any{
				"bearerAuth": map[string]any{"type": "http", "scheme": "bearer", "bearerFormat": "JWT"},
			},
		},
	}

	mu.RLock()
	for _, m := range mutators {
		m(spec)
	}
	mu.RUnlock()

	addDefaultError(spec)
	return spec
}

// AddOperation sets paths[path][method] = op
func AddOperation(spec map[string]any, path, method string, op map[string]any) {
	paths, _ := spec["paths"].(map[string]any)
	if paths == nil {
		paths = map[string]any{}
		spec["paths"] = paths
	}
	item, _ := paths[path].(map[string]any)
	if item == nil {
		item = map[string]any{}
		paths[path] = item
	}
	item[method] = op
}

func errorSchema() map[string]any {
	return map[string]any{
		"type":        "object",
		"description": "Standard error envelope",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"detail":      map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
	}
}

// addDefaultError gives every operation a default ErrorResponse
func addDefaultError(spec map[string]any) {
	paths, _ := spec["paths"].(map[string]any)
	ref := map[string]any{
		"description": "error",
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
			},
		},
	}
	for _, item := range paths {
		ops, _ := item.(map[string]any)
		for _, op := range ops {
			o, _ := op.(map[string]any)
			if o == nil {
				continue
			}
			resp, _ := o["responses"].(map[string]any)
			if resp == nil {
				resp = map[string]any{}
				o["responses"] = resp
			}
			if _, ok := resp["default"]; !ok {
				resp["default"] = ref
			}
		}
	}
}

func serveDocJSON(info Info) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(Document(info))
	}
}
