package locking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const lockPrefix = "lock:"

// releaseScript deletes the key only while it still holds our token.
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`

// RedisLocker is a Locker shared by every instance talking to the same Redis.
// A held lock expires after ttl so a crashed holder cannot wedge a calendar.
type RedisLocker struct {
	client     *redis.Client
	ttl        time.Duration
	retryEvery time.Duration
	logger     *zap.Logger
	newToken   func() string
}

func NewRedisLocker(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisLocker {
	return &RedisLocker{
		client:     client,
		ttl:        ttl,
		retryEvery: 25 * time.Millisecond,
		logger:     logger,
		newToken:   uuid.NewString,
	}
}

// Lease is the TTL set on every acquired key.
func (l *RedisLocker) Lease() time.Duration {
	return l.ttl
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := lockPrefix + key
	token := l.newToken()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire %s: %w", redisKey, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retryEvery):
		}
	}

	return func() {
		// Release even when the caller's context is already done.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		n, err := l.client.Eval(releaseCtx, releaseScript, []string{redisKey}, token).Int()
		if err != nil && !errors.Is(err, redis.Nil) {
			l.logger.Error("failed to release lock", zap.String("key", redisKey), zap.Error(err))
			return
		}
		if n == 0 {
			l.logger.Warn("lock expired before release", zap.String("key", redisKey), zap.Duration("ttl", l.ttl))
		}
	}, nil
}
