package ratelimit

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/coursehub-backend/internal/platform/envutil"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

type redisCounter struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

// NewRedisCounter connects to REDIS_ADDR and pings it before returning.
func NewRedisCounter(log *logger.Logger) (Counter, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := envutil.String("REDIS_ADDR", "", log)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    envutil.String("REDIS_PASSWORD", "", log),
		DB:          envutil.Int("REDIS_DB", 0, log),
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &redisCounter{
		log:    log.With("service", "RedisAttemptCounter"),
		rdb:    rdb,
		prefix: envutil.String("REDIS_KEY_PREFIX", "coursehub:attempts:", log),
	}, nil
}

// Hit starts the window on the first increment. Plain EXPIRE keeps this
// working on servers older than Redis 7, which lack EXPIRE NX.
func (c *redisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	k := c.prefix + key
	n, err := c.rdb.Incr(ctx, k).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr %s: %w", key, err)
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, k, window).Err(); err != nil {
			return 0, fmt.Errorf("redis expire %s: %w", key, err)
		}
	}
	return n, nil
}

func (c *redisCounter) Reset(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (c *redisCounter) Close() error { return c.rdb.Close() }
