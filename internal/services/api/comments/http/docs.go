package http

import (
	"sync"

	"commentedit/internal/modkit/swaggerkit"
)

var docsOnce sync.Once

// RegisterDocs adds the comment routes to the served OpenAPI document
func RegisterDocs(prefix string) {
	docsOnce.Do(func() { swaggerkit.Register(func(doc map[string]any) { addOperations(doc, prefix) }) })
}

func addOperations(doc map[string]any, prefix string) {
	idParam := []any{map[string]any{
		"name": "comment_id", "in": "path", "required": true,
		"schema": map[string]any{"type": "integer", "format": "int64"},
	}}
	bearer := []any{map[string]any{"bearerAuth": []any{}}}
	errRef := func(desc string) map[string]any {
		return map[string]any{
			"description": desc,
			"content": map[string]any{"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
			}},
		}
	}
	field := func(names ...string) map[string]any {
		props := map[string]any{}
		for _, n := range names {
			props[n] = map[string]any{"type": "string"}
		}
		return props
	}
	submission := map[string]any{
		"type": "object",
		"properties": field("user_name", "user_email", "user_url", "comment", "timestamp",
			"security_hash", "honeypot", "content_type", "object_pk", "next", "preview"),
		"required": []any{"comment", "timestamp", "security_hash"},
	}

	swaggerkit.AddOperation(doc, prefix+"/edit/{comment_id}", "get", map[string]any{
		"tags": []any{"comments"}, "summary": "Fresh edit form with security data",
		"parameters": idParam, "security": bearer,
		"responses": map[string]any{
			"200": map[string]any{"description": "ok"},
			"401": errRef("unauthorized"),
			"404": errRef("not found"),
		},
	})
	swaggerkit.AddOperation(doc, prefix+"/edit/{comment_id}", "post", map[string]any{
		"tags": []any{"comments"}, "summary": "Submit a comment edit",
		"description": "Any preview key requests a preview, except a JSON body with preview set to false.",
		"parameters": idParam, "security": bearer,
		"requestBody": map[string]any{"content": map[string]any{
			"application/x-www-form-urlencoded": map[string]any{"schema": submission},
			"multipart/form-data":               map[string]any{"schema": submission},
			"application/json":                  map[string]any{"schema": submission},
		}},
		"responses": map[string]any{
			"200": map[string]any{"description": "preview with field errors"},
			"302": map[string]any{"description": "saved; Location carries c=<id>"},
			"400": errRef("security verification failed"),
			"401": errRef("unauthorized"),
			"404": errRef("not found"),
			"409": errRef("edit in progress"),
		},
	})
	swaggerkit.AddOperation(doc, prefix+"/edited", "get", map[string]any{
		"tags": []any{"comments"}, "summary": "Edit confirmation",
		"parameters": []any{map[string]any{
			"name": "c", "in": "query", "schema": map[string]any{"type": "integer", "format": "int64"},
		}},
		"responses": map[string]any{"200": map[string]any{"description": "ok; comment is null when unknown"}},
	})
}
