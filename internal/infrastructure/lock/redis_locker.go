package lock

import (
	"context"
	"time"

	"placetopay_checkout/internal/infrastructure/logging"
	"placetopay_checkout/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const DefaultTTL = 30 * time.Second

const releaseTimeout = 2 * time.Second

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by another caller is left alone.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker is a single-instance SET NX lock with a TTL.
type RedisLocker struct {
	client redis.Cmdable
	ttl    time.Duration
	prefix string
	log    *logrus.Entry
}

var _ interfaces.ILocker = (*RedisLocker)(nil)

func NewRedisLocker(client redis.Cmdable, ttl time.Duration, logger *logrus.Logger) *RedisLocker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisLocker{client: client, ttl: ttl, prefix: "checkout:lock:", log: logging.Component(logger, "lock")}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, fullKey, token, l.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, interfaces.ErrLockNotAcquired
	}

	release := func() {
		rctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()
		if err := releaseScript.Run(rctx, l.client, []string{fullKey}, token).Err(); err != nil {
			l.log.WithError(err).WithField("key", fullKey).Warn("[checkout][lock] release failed")
		}
	}
	return release, nil
}

// NoopLocker always grants the lock.
type NoopLocker struct{}

var _ interfaces.ILocker = NoopLocker{}

func (NoopLocker) Acquire(context.Context, string) (func(), error) {
	return func() {}, nil
}
