// Package net holds transport agnostic request context helpers
package net

import (
	"context"
	"slices"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey uint8

const keyPrincipal ctxKey = iota

// Principal is the authenticated caller as asserted by the auth middleware.
// Perms holds permission codenames such as "comments.change_comment".
type Principal struct {
	UserID   string   `json:"user_id"`
	Username string   `json:"username"`
	FullName string   `json:"full_name,omitempty"`
	Email    string   `json:"email,omitempty"`
	Perms    []string `json:"perms,omitempty"`
}

// HasPerm reports whether the principal holds perm
func (p Principal) HasPerm(perm string) bool { return slices.Contains(p.Perms, perm) }

// WithRequest stores reqID where chi's GetReqID can read it
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID returns the request id on ctx, if any
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// WithPrincipal stores the authenticated caller on ctx
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, keyPrincipal, p)
}

// PrincipalFrom returns the caller stored by WithPrincipal
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(keyPrincipal).(Principal)
	return p, ok && p.UserID != ""
}

// UserID returns the authenticated user id, empty for anonymous requests
func UserID(ctx context.Context) string {
	p, _ := PrincipalFrom(ctx)
	return p.UserID
}
