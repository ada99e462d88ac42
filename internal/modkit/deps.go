package modkit

import (
	"commentedit/internal/modkit/repokit"
	"commentedit/internal/platform/config"
	"commentedit/internal/platform/logger"
	"commentedit/internal/platform/natsconn"
	"commentedit/internal/platform/store"

	"github.com/redis/go-redis/v9"
)

// Deps holds the shared dependencies handed to every module.
// Any backend may be nil when it is not configured.
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	PG    repokit.TxRunner
	CH    store.Clickhouse
	NATS  *natsconn.Conn
	Redis redis.UniversalClient
}
