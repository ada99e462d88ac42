package store

import (
	"context"
	"fmt"
	"time"

	"commentedit/internal/platform/logger"
	chx "commentedit/internal/platform/store/ch"
	"commentedit/internal/platform/store/pg"
)

// sleep is a seam for tests
var sleep = time.Sleep

func openPG(ctx context.Context, cfg PGConfig, log logger.Logger) (*pgAdapter, error) {
	var tracer pg.QueryTracer
	if cfg.LogSQL {
		tracer = pg.Tracer(log)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.URL,
		MaxConns: cfg.MaxConns,
		SlowMs:   cfg.SlowQueryMs,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	ping := func(ctx context.Context) error { return p.Pool.Ping(ctx) }
	if err := pingWithBackoff(ctx, ping, cfg.ConnectRetries, cfg.PingTimeout); err != nil {
		p.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}
	return newPGAdapter(p), nil
}

func openCH(ctx context.Context, cfg Config, log logger.Logger) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{DSN: cfg.CH.DSN, AppName: cfg.AppName})
	if err != nil {
		return nil, err
	}
	log.Info().Msg("clickhouse connected")
	return newCHAdapter(c), nil
}

// pingWithBackoff retries ping with exponential backoff capped at 2s
func pingWithBackoff(ctx context.Context, ping func(context.Context) error, attempts int, timeout time.Duration) error {
	if attempts <= 0 {
		attempts = 1
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	const ceiling = 2 * time.Second
	backoff := 150 * time.Millisecond

	var last error
	for i := 0; i < attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		last = ping(pctx)
		cancel()
		if last == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		sleep(backoff)
		backoff = min(backoff*2, ceiling)
	}
	return fmt.Errorf("ping failed after %d attempts: %w", attempts, last)
}
