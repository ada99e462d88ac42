package repo

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	perr "commentedit/internal/platform/errors"
	"commentedit/internal/platform/logger"
	"commentedit/internal/services/api/comments/domain"
)

// DefaultLockTTL bounds how long a crashed edit can hold a comment
const DefaultLockTTL = 10 * time.Second

// releaseScript deletes the key only while it still holds our token
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then return redis.call("DEL", KEYS[1]) end return 0`

// lockClient is the slice of redis.UniversalClient the locker needs
type lockClient interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd
}

// RedisLocker serializes edits of one comment with SET NX PX
type RedisLocker struct {
	c      lockClient
	ttl    time.Duration
	prefix string
}

var _ domain.EditLocker = (*RedisLocker)(nil)

// NewRedisLocker returns a locker; ttl <= 0 uses DefaultLockTTL
func NewRedisLocker(c lockClient, ttl time.Duration) *RedisLocker {
	if c == nil {
		panic("comments locker requires a redis client")
	}
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &RedisLocker{c: c, ttl: ttl, prefix: "commentedit:lock:comment:"}
}

// Lock takes the per comment lock or returns a conflict error
func (l *RedisLocker) Lock(ctx context.Context, commentID int64) (func(), error) {
	key := l.prefix + strconv.FormatInt(commentID, 10)
	token := uuid.NewString()

	ok, err := l.c.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "edit lock unavailable")
	}
	if !ok {
		return nil, perr.Conflictf("comment %d is being edited", commentID)
	}

	return func() {
		// the request context may be done by now
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		if err := l.c.Eval(rctx, releaseScript, []string{key}, token).Err(); err != nil {
			logger.C(ctx).Warn().Err(err).Str("key", key).Msg("edit lock release failed")
		}
	}, nil
}
