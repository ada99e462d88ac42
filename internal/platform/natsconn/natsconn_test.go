package natsconn

import (
	"context"
	"errors"
	"testing"
	"time"

	"commentedit/internal/platform/config"
	"commentedit/internal/platform/testkit"

	"github.com/nats-io/nats.go"
)

func TestFromConfig(t *testing.T) {
	t.Setenv("COMMENTS_NATS_URL", "nats://127.0.0.1:4222")
	t.Setenv("COMMENTS_NATS_RECONNECT_WAIT", "3s")

	o := FromConfig(config.New().Prefix("COMMENTS_"))
	if o.URL != "nats://127.0.0.1:4222" || o.ReconnectWait != 3*time.Second || o.MaxReconnects != 5 {
		t.Fatalf("options: %+v", o)
	}
}

func TestConnectEmptyURL(t *testing.T) {
	if _, err := Connect(Options{}); err == nil {
		t.Fatalf("expected error for empty url")
	}
}

func TestConnectWrapsDialError(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &connect, func(string, ...nats.Option) (*nats.Conn, error) {
		return nil, errors.New("refused")
	})
	_, err := Connect(Options{URL: "nats://127.0.0.1:19999"})
	if err == nil {
		t.Fatalf("expected dial error")
	}
	testkit.MustContain(t, err.Error(), "max_reconnects=5")
}

func TestNilConn(t *testing.T) {
	var c *Conn
	if err := c.Ping(context.Background()); err == nil {
		t.Fatalf("nil ping should fail")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("nil close: %v", err)
	}
}
