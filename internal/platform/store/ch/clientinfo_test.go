package ch

import "testing"

func TestBuildClientInfo(t *testing.T) {
	info := BuildClientInfo(" api ", "")
	if len(info.Products) != 4 {
		t.Fatalf("want 4 products, got %d", len(info.Products))
	}
	if info.Products[0].Name != "commentedit" {
		t.Fatalf("default app name, got %q", info.Products[0].Name)
	}
	if info.Products[1].Name != "role" || info.Products[1].Version != "api" {
		t.Fatalf("role product, got %+v", info.Products[1])
	}
}

func TestOpenRejectsEmptyDSN(t *testing.T) {
	if _, err := Open(t.Context(), Config{}); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}

func TestOpenRejectsBadDSN(t *testing.T) {
	if _, err := Open(t.Context(), Config{DSN: "://nope"}); err == nil {
		t.Fatalf("expected parse error")
	}
}
