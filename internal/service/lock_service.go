package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrLockNotAcquired is returned when another request currently holds the
// resource lock.
var ErrLockNotAcquired = errors.New("resource lock not acquired")

// ResourceLocker serializes allocation critical sections per resource key
// across application instances. The database row lock already serializes
// writers within one Postgres session graph; the Redis lock keeps a second
// app instance from even entering the transaction while an allocation for the
// same doctor/bed/booking is in flight.
type ResourceLocker interface {
	WithLock(ctx context.Context, kind string, resourceID uuid.UUID, fn func(ctx context.Context) error) error
}

type redisResourceLocker struct {
	client *redis.Client
	log    *logrus.Logger
	ttl    time.Duration
}

func NewRedisResourceLocker(client *redis.Client, log *logrus.Logger, ttl time.Duration) ResourceLocker {
	return &redisResourceLocker{
		client: client,
		log:    log,
		ttl:    ttl,
	}
}

// unlockScript releases the lock only if this holder still owns it, so an
// expired lock taken over by another request is never deleted from under it.
var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *redisResourceLocker) WithLock(ctx context.Context, kind string, resourceID uuid.UUID, fn func(ctx context.Context) error) error {
	key := fmt.Sprintf("lock:%s:%s", kind, resourceID)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire %s lock: %w", kind, err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		if _, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result(); err != nil && !errors.Is(err, redis.Nil) {
			l.log.Warnf("Failed to release %s lock for %s: %+v", kind, resourceID, err)
		}
	}()

	lockCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(lockCtx)
}
