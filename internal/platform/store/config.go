package store

import (
	"time"

	"commentedit/internal/platform/config"
)

// Config aggregates backend configuration
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	ConnectRetries int
	PingTimeout    time.Duration
}

// CHConfig configures clickhouse; DSN uses the clickhouse:// scheme
type CHConfig struct {
	Enabled bool
	DSN     string
}

// FromConfig reads PG_* and CH_* keys from cfg.
// A backend is enabled when its URL or DSN is set.
func FromConfig(cfg config.Conf, appName string) Config {
	pg := cfg.Prefix("PG_")
	ch := cfg.Prefix("CH_")

	c := Config{
		AppName: appName,
		PG: PGConfig{
			URL:            pg.MayString("URL", ""),
			MaxConns:       int32(pg.MayInt("MAX_CONNS", 8)),
			LogSQL:         pg.MayBool("LOG_SQL", false),
			SlowQueryMs:    pg.MayInt("SLOW_MS", 200),
			ConnectRetries: pg.MayInt("CONNECT_RETRIES", 10),
			PingTimeout:    pg.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		CH: CHConfig{
			DSN: ch.MayString("DSN", ""),
		},
	}
	c.PG.Enabled = c.PG.URL != ""
	c.CH.Enabled = c.CH.DSN != ""
	return c
}
