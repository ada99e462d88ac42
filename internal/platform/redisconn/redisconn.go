// Package redisconn opens the shared redis client
package redisconn

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"commentedit/internal/platform/config"
)

// Options configures the client; an empty URL means redis is disabled
type Options struct {
	URL         string
	PingTimeout time.Duration
}

// FromConfig reads REDIS_URL and REDIS_PING_TIMEOUT
func FromConfig(cfg config.Conf) Options {
	rc := cfg.Prefix("REDIS_")
	return Options{
		URL:         rc.MayString("URL", ""),
		PingTimeout: rc.MayDuration("PING_TIMEOUT", 3*time.Second),
	}
}

// ParseOptions maps a redis:// or rediss:// URL to client options
func ParseOptions(url string) (*redis.Options, error) {
	o, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	return o, nil
}

// Open parses the URL, connects and pings once. A nil client and nil error mean disabled.
func Open(ctx context.Context, opts Options) (*redis.Client, error) {
	if opts.URL == "" {
		return nil, nil
	}
	ro, err := ParseOptions(opts.URL)
	if err != nil {
		return nil, err
	}
	c := redis.NewClient(ro)

	if opts.PingTimeout <= 0 {
		opts.PingTimeout = 3 * time.Second
	}
	pctx, cancel := context.WithTimeout(ctx, opts.PingTimeout)
	defer cancel()
	if err := c.Ping(pctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis ping %s: %w", ro.Addr, err)
	}
	return c, nil
}
