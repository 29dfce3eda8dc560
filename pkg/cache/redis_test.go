package cache

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/vetclinic/pkg/config"
)

func newTestConfig(url string) *config.Config {
	return &config.Config{RedisURL: url, RedisPoolSize: 4}
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), newTestConfig("not-a-valid-url"))
	if err == nil {
		t.Fatal("expected error for invalid URL, got nil")
	}
}

func TestNewRedisClient_UnreachableHost(t *testing.T) {
	_, err := NewRedisClient(context.Background(), newTestConfig("redis://localhost:19999"))
	if err == nil {
		t.Fatal("expected error when Redis is unreachable, got nil")
	}
}

// Integration tests: skipped unless REDIS_URL is set.
func TestRedisIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	t.Run("NewRedisClient_Success", func(t *testing.T) {
		rc, err := NewRedisClient(context.Background(), newTestConfig(redisURL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer rc.Close() //nolint:errcheck
	})

	t.Run("Ping_Success", func(t *testing.T) {
		rc, err := NewRedisClient(context.Background(), newTestConfig(redisURL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer rc.Close() //nolint:errcheck

		if err := rc.Ping(context.Background()); err != nil {
			t.Fatalf("Ping failed: %v", err)
		}
	})

	t.Run("PoolSizeFromConfig", func(t *testing.T) {
		rc, err := NewRedisClient(context.Background(), newTestConfig(redisURL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer rc.Close() //nolint:errcheck

		if got := rc.Client().Options().PoolSize; got != 4 {
			t.Fatalf("pool size = %d, want 4", got)
		}
	})

	t.Run("ItemCache_RoundTrip", func(t *testing.T) {
		rc, err := NewRedisClient(context.Background(), newTestConfig(redisURL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer rc.Close() //nolint:errcheck

		ctx := context.Background()
		c := NewItemCache(rc)
		id := uuid.New()
		in := &CachedItem{
			ID:             id.String(),
			SKU:            "VAC-RAB-1",
			Name:           "Rabies Vaccine",
			CostPrice:      "4.10",
			QuantityOnHand: 12,
			IsActive:       true,
			Version:        3,
			CreatedAt:      "2026-01-02T03:04:05Z",
		}
		if ok, err := c.Set(ctx, in); err != nil || !ok {
			t.Fatalf("Set failed: ok=%v err=%v", ok, err)
		}

		stale := *in
		stale.Version = 2
		stale.QuantityOnHand = 99
		if ok, err := c.Set(ctx, &stale); err != nil || ok {
			t.Fatalf("expected stale write to be skipped: ok=%v err=%v", ok, err)
		}

		got, err := c.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.SKU != in.SKU || got.QuantityOnHand != 12 || !got.IsActive || got.Version != 3 || got.CostPrice != "4.10" {
			t.Fatalf("unexpected snapshot: %+v", got)
		}
		if got.RequiresPrescription {
			t.Fatal("expected false flag to round-trip")
		}

		if err := c.Delete(ctx, id); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := c.Get(ctx, id); !errors.Is(err, redis.Nil) {
			t.Fatalf("expected redis.Nil after delete, got %v", err)
		}
	})
}
