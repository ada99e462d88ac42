// Package natsconn opens the NATS connection and its JetStream context
package natsconn

import (
	"context"
	"errors"
	"fmt"
	"time"

	"commentedit/internal/platform/config"

	"github.com/nats-io/nats.go"
)

// Options configures the connection; zero values use defaults
type Options struct {
	URL           string
	Name          string
	MaxReconnects int
	ReconnectWait time.Duration
}

// FromConfig reads NATS_URL, NATS_MAX_RECONNECTS and NATS_RECONNECT_WAIT.
// An empty URL means NATS is disabled.
func FromConfig(cfg config.Conf) Options {
	nc := cfg.Prefix("NATS_")
	return Options{
		URL:           nc.MayString("URL", ""),
		Name:          "commentedit",
		MaxReconnects: nc.MayInt("MAX_RECONNECTS", 5),
		ReconnectWait: nc.MayDuration("RECONNECT_WAIT", 2*time.Second),
	}
}

// Conn bundles the core connection and JetStream
type Conn struct {
	NC *nats.Conn
	JS nats.JetStreamContext
}

var connect = nats.Connect

// Connect dials once and fails fast; reconnects apply after the first success
func Connect(opts Options) (*Conn, error) {
	if opts.URL == "" {
		return nil, errors.New("natsconn: empty url")
	}
	if opts.MaxReconnects == 0 {
		opts.MaxReconnects = 5
	}
	if opts.ReconnectWait <= 0 {
		opts.ReconnectWait = 2 * time.Second
	}

	nc, err := connect(opts.URL,
		nats.Name(opts.Name),
		nats.MaxReconnects(opts.MaxReconnects),
		nats.ReconnectWait(opts.ReconnectWait),
		nats.RetryOnFailedConnect(false),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect %s (max_reconnects=%d, wait=%s): %w",
			opts.URL, opts.MaxReconnects, opts.ReconnectWait, err)
	}
	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("nats jetstream: %w", err)
	}
	return &Conn{NC: nc, JS: js}, nil
}

// EnsureStream creates stream with subjects, or adds missing subjects to an existing one
func (c *Conn) EnsureStream(name string, subjects ...string) error {
	info, err := c.JS.StreamInfo(name)
	if err == nil {
		cfg := info.Config
		changed := false
		for _, want := range subjects {
			if !contains(cfg.Subjects, want) {
				cfg.Subjects = append(cfg.Subjects, want)
				changed = true
			}
		}
		if changed {
			_, err = c.JS.UpdateStream(&cfg)
		}
		return err
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return err
	}
	_, err = c.JS.AddStream(&nats.StreamConfig{
		Name:     name,
		Subjects: subjects,
		Storage:  nats.FileStorage,
		MaxAge:   30 * 24 * time.Hour,
	})
	return err
}

// Publish sends data to subject; msgID enables JetStream deduplication when set
func (c *Conn) Publish(ctx context.Context, subject string, data []byte, msgID string) error {
	opts := []nats.PubOpt{nats.Context(ctx)}
	if msgID != "" {
		opts = append(opts, nats.MsgId(msgID))
	}
	_, err := c.JS.Publish(subject, data, opts...)
	return err
}

// Ping reports whether the connection is up
func (c *Conn) Ping(ctx context.Context) error {
	if c == nil || c.NC == nil {
		return errors.New("natsconn: nil connection")
	}
	if !c.NC.IsConnected() {
		return fmt.Errorf("natsconn: status %s", c.NC.Status())
	}
	timeout := 2 * time.Second
	if dl, ok := ctx.Deadline(); ok {
		timeout = time.Until(dl)
	}
	return c.NC.FlushTimeout(timeout)
}

// Close drains pending messages and closes the connection
func (c *Conn) Close() error {
	if c == nil || c.NC == nil {
		return nil
	}
	return c.NC.Drain()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
