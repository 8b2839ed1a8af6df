package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig controls redis client behavior.
// Keep it config-driven; defaults should be safe and conservative.
type RedisConfig struct {
	Addr string

	// Basic timeouts
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Pool tuning
	PoolSize        int
	MinIdleConns    int
	PoolTimeout     time.Duration
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration

	PingTimeout time.Duration
}

func (c RedisConfig) withDefaults() RedisConfig {
	out := c
	if out.DialTimeout <= 0 {
		out.DialTimeout = 3 * time.Second
	}
	if out.ReadTimeout <= 0 {
		out.ReadTimeout = 2 * time.Second
	}
	if out.WriteTimeout <= 0 {
		out.WriteTimeout = 2 * time.Second
	}
	if out.PoolSize <= 0 {
		out.PoolSize = 20
	}
	if out.MinIdleConns < 0 {
		out.MinIdleConns = 0
	}
	if out.PoolTimeout <= 0 {
		out.PoolTimeout = 4 * time.Second
	}
	if out.ConnMaxIdleTime <= 0 {
		out.ConnMaxIdleTime = 5 * time.Minute
	}
	if out.ConnMaxLifetime <= 0 {
		out.ConnMaxLifetime = 30 * time.Minute
	}
	if out.PingTimeout <= 0 {
		out.PingTimeout = 2 * time.Second
	}
	return out
}

// OpenRedis initializes a Redis client and validates connectivity via PING.
func OpenRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	cfg = cfg.withDefaults()
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Addr,
		DialTimeout:     cfg.DialTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		PoolTimeout:     cfg.PoolTimeout,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// ResponseCache is a small TTL cache for expensive read endpoints (stats).
//
// Invalidation uses a version key instead of key scans: every write bumps the
// version, so entries written under older versions become unreachable and
// simply expire. A nil *ResponseCache is a no-op, so callers never need to
// guard against the cache being disabled.
type ResponseCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewResponseCache builds a cache over rdb. A nil client yields a disabled cache.
func NewResponseCache(rdb *redis.Client, prefix string, ttl time.Duration) *ResponseCache {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &ResponseCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *ResponseCache) versionKey() string {
	return c.prefix + ":ver"
}

func (c *ResponseCache) entryKey(ctx context.Context, key string) string {
	ver, err := c.rdb.Get(ctx, c.versionKey()).Result()
	if err != nil {
		ver = "0"
	}
	return fmt.Sprintf("%s:v%s:%s", c.prefix, ver, key)
}

// Get returns a cached body, if present.
func (c *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, c.entryKey(ctx, key)).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

// Set stores a body under the current version. Failures are ignored; the cache
// is best-effort.
func (c *ResponseCache) Set(ctx context.Context, key string, body []byte) {
	if c == nil {
		return
	}
	_ = c.rdb.Set(ctx, c.entryKey(ctx, key), body, c.ttl).Err()
}

// Invalidate bumps the cache version, orphaning all existing entries.
// Call it after any mutation that affects cached reads.
func (c *ResponseCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	_ = c.rdb.Incr(ctx, c.versionKey()).Err()
}
