// Package ratelimit throttles repeated failed logins.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/foodorder/internal/common"
	"github.com/redis/go-redis/v9"
)

// Limiter tracks failed attempts per key.
type Limiter interface {
	// Check returns common.ErrTooManyAttempts, with the remaining block
	// time, once key has used up its attempts.
	Check(ctx context.Context, key string) (time.Duration, error)
	Fail(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// store is the subset of redis.Cmdable the limiter needs.
type store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisLimiter counts failures in Redis with a fixed window per key: the
// first failure starts the window and the key is blocked once the count
// reaches max until the window expires.
type RedisLimiter struct {
	rdb    store
	max    int
	window time.Duration
}

func NewRedisLimiter(rdb redis.Cmdable, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, max: max, window: window}
}

func key(k string) string {
	return "login_attempts:" + strings.ToLower(k)
}

func (l *RedisLimiter) Check(ctx context.Context, k string) (time.Duration, error) {
	n, err := l.rdb.Get(ctx, key(k)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis error: %w", err)
	}
	if n < l.max {
		return 0, nil
	}

	ttl, err := l.rdb.TTL(ctx, key(k)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis error: %w", err)
	}
	if ttl < 0 {
		ttl = l.window
	}
	return ttl, common.ErrTooManyAttempts
}

func (l *RedisLimiter) Fail(ctx context.Context, k string) error {
	n, err := l.rdb.Incr(ctx, key(k)).Result()
	if err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	if n == 1 {
		if err := l.rdb.Expire(ctx, key(k), l.window).Err(); err != nil {
			return fmt.Errorf("redis error: %w", err)
		}
	}
	return nil
}

func (l *RedisLimiter) Reset(ctx context.Context, k string) error {
	if err := l.rdb.Del(ctx, key(k)).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

// Nop never throttles. It is used when no Redis address is configured.
type Nop struct{}

func (Nop) Check(context.Context, string) (time.Duration, error) { return 0, nil }
func (Nop) Fail(context.Context, string) error                   { return nil }
func (Nop) Reset(context.Context, string) error                  { return nil }

// NewRedisClient connects to addr and pings it.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}
