// Package cache holds the Redis connection and the item snapshot cache.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ghuser/vetclinic/pkg/config"
)

const (
	clientName  = "vetclinic"
	pingTimeout = 2 * time.Second
)

// RedisClient owns the shared go-redis connection pool. The API process uses
// it for item snapshots and sessions; the worker only for snapshots.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient parses REDIS_URL, applies pool limits and verifies the
// server answers before returning.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*RedisClient, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.ClientName = clientName
	if cfg.RedisPoolSize > 0 {
		opts.PoolSize = cfg.RedisPoolSize
	}
	opts.MinIdleConns = 2
	opts.MaxRetries = 3
	// Snapshot writes sit on the ledger write path.
	opts.DialTimeout = 2 * time.Second
	opts.ReadTimeout = 500 * time.Millisecond
	opts.WriteTimeout = 500 * time.Millisecond
	opts.PoolTimeout = time.Second

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}

	return &RedisClient{client: rdb}, nil
}

// Ping satisfies httpx.HealthChecker.
func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close shuts down the pool.
func (r *RedisClient) Close() error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}

// Client returns the underlying client for the session store.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}
