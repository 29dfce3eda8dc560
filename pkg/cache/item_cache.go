package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// ItemCacheTTL is the time-to-live for cached items. Writes invalidate
	// entries explicitly; the TTL only bounds staleness if an invalidation is lost.
	ItemCacheTTL = 10 * time.Minute

	itemCacheKeyPrefix = "inventory:item"
)

// CachedItem is the denormalized item snapshot stored as a Redis hash.
// Prices are decimal strings and dates are RFC 3339 so the cache stays
// independent of the domain packages.
type CachedItem struct {
	ID                    string `redis:"id"`
	SKU                   string `redis:"sku"`
	Name                  string `redis:"name"`
	Description           string `redis:"description"`
	Manufacturer          string `redis:"manufacturer"`
	Supplier              string `redis:"supplier"`
	Category              string `redis:"category"`
	Unit                  string `redis:"unit"`
	CostPrice             string `redis:"cost_price"`
	SellingPrice          string `redis:"selling_price"`
	QuantityOnHand        int    `redis:"quantity_on_hand"`
	ReorderLevel          int    `redis:"reorder_level"`
	ReorderQuantity       int    `redis:"reorder_quantity"`
	LotNumber             string `redis:"lot_number"`
	ExpirationDate        string `redis:"expiration_date"` // empty when unset
	Location              string `redis:"location"`
	RequiresPrescription  bool   `redis:"requires_prescription"`
	IsControlledSubstance bool   `redis:"is_controlled_substance"`
	IsActive              bool   `redis:"is_active"`
	Version               int64  `redis:"version"`
	CreatedAt             string `redis:"created_at"`
	UpdatedAt             string `redis:"updated_at"`
}

// ItemCache provides read/write operations for item snapshots.
// Key format: "inventory:item:{itemID}"
type ItemCache struct {
	client *RedisClient
}

// NewItemCache creates a new ItemCache backed by the given RedisClient.
func NewItemCache(r *RedisClient) *ItemCache {
	return &ItemCache{client: r}
}

// Get retrieves a cached item by ID.
// Returns redis.Nil when the key does not exist or has expired.
func (c *ItemCache) Get(ctx context.Context, itemID uuid.UUID) (*CachedItem, error) {
	res := c.client.Client().HGetAll(ctx, c.key(itemID))
	vals, err := res.Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil
	}

	var item CachedItem
	if err := res.Scan(&item); err != nil {
		return nil, fmt.Errorf("cache scan: %w", err)
	}
	return &item, nil
}

// setIfNewer replaces the hash unless the cached snapshot carries a higher
// version, so a slow reader cannot overwrite a fresher ledger write.
// KEYS[1] = key, ARGV[1] = version, ARGV[2] = ttl seconds, ARGV[3:] = field/value pairs.
var setIfNewer = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'version')
if cur and tonumber(cur) > tonumber(ARGV[1]) then
  return 0
end
redis.call('DEL', KEYS[1])
redis.call('HSET', KEYS[1], unpack(ARGV, 3))
redis.call('EXPIRE', KEYS[1], ARGV[2])
return 1
`)

// Set writes the snapshot as a Redis hash with ItemCacheTTL. It reports false
// when a newer version was already cached and the write was skipped.
func (c *ItemCache) Set(ctx context.Context, item *CachedItem) (bool, error) {
	id, err := uuid.Parse(item.ID)
	if err != nil {
		return false, fmt.Errorf("cache set: %w", err)
	}
	args := append([]any{item.Version, int(ItemCacheTTL.Seconds())}, item.fields()...)
	n, err := setIfNewer.Run(ctx, c.client.Client(), []string{c.key(id)}, args...).Int()
	if err != nil {
		return false, fmt.Errorf("cache set: %w", err)
	}
	return n == 1, nil
}

func (i *CachedItem) fields() []any {
	return []any{
		"id", i.ID,
		"sku", i.SKU,
		"name", i.Name,
		"description", i.Description,
		"manufacturer", i.Manufacturer,
		"supplier", i.Supplier,
		"category", i.Category,
		"unit", i.Unit,
		"cost_price", i.CostPrice,
		"selling_price", i.SellingPrice,
		"quantity_on_hand", i.QuantityOnHand,
		"reorder_level", i.ReorderLevel,
		"reorder_quantity", i.ReorderQuantity,
		"lot_number", i.LotNumber,
		"expiration_date", i.ExpirationDate,
		"location", i.Location,
		"requires_prescription", boolField(i.RequiresPrescription),
		"is_controlled_substance", boolField(i.IsControlledSubstance),
		"is_active", boolField(i.IsActive),
		"version", i.Version,
		"created_at", i.CreatedAt,
		"updated_at", i.UpdatedAt,
	}
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Delete removes a cached item.
func (c *ItemCache) Delete(ctx context.Context, itemID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(itemID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *ItemCache) key(itemID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", itemCacheKeyPrefix, itemID)
}
