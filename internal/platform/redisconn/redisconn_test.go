package redisconn

import (
	"context"
	"testing"

	"commentedit/internal/platform/config"
)

func TestFromConfig(t *testing.T) {
	t.Setenv("X_REDIS_URL", "redis://localhost:6379/2")
	o := FromConfig(config.New().Prefix("X_"))
	if o.URL != "redis://localhost:6379/2" || o.PingTimeout <= 0 {
		t.Fatalf("options: %+v", o)
	}
}

func TestParseOptions(t *testing.T) {
	o, err := ParseOptions("redis://:pw@cache:6380/3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if o.Addr != "cache:6380" || o.DB != 3 || o.Password != "pw" {
		t.Fatalf("options: %+v", o)
	}
	if _, err := ParseOptions("http://nope"); err == nil {
		t.Fatalf("want error for a non redis scheme")
	}
}

func TestOpenDisabled(t *testing.T) {
	c, err := Open(context.Background(), Options{})
	if c != nil || err != nil {
		t.Fatalf("disabled: %v %v", c, err)
	}
}
