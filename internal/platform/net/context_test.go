package net

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequest(context.Background(), "req-1")
	if got := RequestID(ctx); got != "req-1" {
		t.Fatalf("RequestID = %q", got)
	}
	if got := RequestID(WithRequest(context.Background(), "")); got != "" {
		t.Fatalf("empty id should not be stored, got %q", got)
	}
}

func TestPrincipal(t *testing.T) {
	if _, ok := PrincipalFrom(context.Background()); ok {
		t.Fatalf("no principal expected")
	}
	p := Principal{UserID: "7", Username: "ola", Perms: []string{"comments.change_comment"}}
	ctx := WithPrincipal(context.Background(), p)

	got, ok := PrincipalFrom(ctx)
	if !ok || got.Username != "ola" || UserID(ctx) != "7" {
		t.Fatalf("PrincipalFrom = %+v,%v", got, ok)
	}
	if !got.HasPerm("comments.change_comment") || got.HasPerm("comments.can_moderate") {
		t.Fatalf("HasPerm mismatch")
	}

	anon := WithPrincipal(context.Background(), Principal{})
	if _, ok := PrincipalFrom(anon); ok {
		t.Fatalf("principal without user id must not count")
	}
}
