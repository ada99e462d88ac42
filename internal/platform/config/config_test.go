package config

import (
	"testing"
	"time"

	kit "commentedit/internal/platform/testkit"
)

func TestPrefixAndName(t *testing.T) {
	c := New().Prefix("COMMENTS_")
	if got := c.Name("SECRET_KEY"); got != "COMMENTS_SECRET_KEY" {
		t.Fatalf("Name() = %q", got)
	}
	if got := c.Prefix("NATS_").Name("URL"); got != "COMMENTS_NATS_URL" {
		t.Fatalf("nested Name() = %q", got)
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("CFGT_")
	t.Setenv("CFGT_SECRET", "  s3cret ")
	if got := c.MustString("SECRET"); got != "s3cret" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
	t.Setenv("CFGT_BLANK", "   ")
	kit.MustPanic(t, func() { _ = c.MustString("BLANK") })
	kit.MustPanic(t, func() { c.Require("SECRET", "MISSING") })
}

func TestMustInt64(t *testing.T) {
	c := New().Prefix("CFGT_")
	t.Setenv("CFGT_SITE", "9000000000")
	if got := c.MustInt64("SITE"); got != 9000000000 {
		t.Fatalf("MustInt64 = %d", got)
	}
	t.Setenv("CFGT_BAD", "x")
	kit.MustPanic(t, func() { _ = c.MustInt64("BAD") })
}

func TestMayAccessors(t *testing.T) {
	c := New().Prefix("CFGT_")
	t.Setenv("CFGT_NAME", "comments")
	t.Setenv("CFGT_N", "12")
	t.Setenv("CFGT_N_BAD", "twelve")
	t.Setenv("CFGT_ID", "42")
	t.Setenv("CFGT_ON", "true")
	t.Setenv("CFGT_ON_BAD", "maybe")
	t.Setenv("CFGT_TTL", "250ms")
	t.Setenv("CFGT_TTL_BAD", "soon")

	if got := c.MayString("NAME", "x"); got != "comments" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayString("NOPE", "x"); got != "x" {
		t.Fatalf("MayString default = %q", got)
	}
	if got := c.MayInt("N", 1); got != 12 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt("N_BAD", 1); got != 1 {
		t.Fatalf("MayInt invalid = %d", got)
	}
	if got := c.MayInt64("ID", 1); got != 42 {
		t.Fatalf("MayInt64 = %d", got)
	}
	if !c.MayBool("ON", false) || c.MayBool("ON_BAD", false) || !c.MayBool("NOPE", true) {
		t.Fatalf("MayBool mismatch")
	}
	if got := c.MayDuration("TTL", time.Second); got != 250*time.Millisecond {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayDuration("TTL_BAD", time.Second); got != time.Second {
		t.Fatalf("MayDuration invalid = %v", got)
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CFGT_")
	t.Setenv("CFGT_WORDS", " foo, ,bar ,baz,")
	got := c.MayCSV("WORDS", nil)
	if len(got) != 3 || got[0] != "foo" || got[1] != "bar" || got[2] != "baz" {
		t.Fatalf("MayCSV = %#v", got)
	}
	t.Setenv("CFGT_EMPTY", " , ,")
	if got := c.MayCSV("EMPTY", []string{"d"}); len(got) != 1 || got[0] != "d" {
		t.Fatalf("MayCSV empty = %#v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("CFGT_")
	if got := c.MayEnum("POLICY", "owner", "owner", "moderate"); got != "owner" {
		t.Fatalf("MayEnum default = %q", got)
	}
	t.Setenv("CFGT_POLICY", "Moderate")
	if got := c.MayEnum("POLICY", "owner", "owner", "moderate"); got != "moderate" {
		t.Fatalf("MayEnum = %q", got)
	}
	t.Setenv("CFGT_POLICY", "everyone")
	kit.MustPanic(t, func() { _ = c.MayEnum("POLICY", "owner", "owner", "moderate") })
}
