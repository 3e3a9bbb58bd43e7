package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ericfisherdev/gitscope/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SessionCache = (*Redis)(nil)

// keyPrefix namespaces gitscope entries in a shared Redis instance.
const keyPrefix = "gitscope:session:"

// Redis is a SessionCache backed by a Redis instance. Entries expire after
// the configured TTL, which bounds staleness the way a browser session does.
// Cache failures are logged and treated as misses; the cache is an
// optimization, never a source of truth.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis connects to the Redis instance described by redisURL
// (redis://[user:pass@]host:port[/db]) and verifies the connection.
func NewRedis(redisURL string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &Redis{rdb: rdb, ttl: ttl}, nil
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.rdb.Close()
}

// Get returns the value for key and whether it was present.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := r.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return value, true
}

// Set stores value under key with the configured TTL.
func (r *Redis) Set(ctx context.Context, key string, value []byte) {
	if err := r.rdb.Set(ctx, keyPrefix+key, value, r.ttl).Err(); err != nil {
		slog.Warn("redis cache write failed", "key", key, "error", err)
	}
}

// Delete removes the entry for key, if any.
func (r *Redis) Delete(ctx context.Context, key string) {
	if err := r.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		slog.Warn("redis cache delete failed", "key", key, "error", err)
	}
}
