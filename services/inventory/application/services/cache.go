package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	pkgcache "github.com/ghuser/vetclinic/pkg/cache"
	"github.com/ghuser/vetclinic/services/inventory/domain/models"
)

// ItemCache is the read cache for item snapshots. Implementations return
// ErrCacheMiss when the item is not cached.
type ItemCache interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Item, error)
	Set(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ErrCacheMiss is returned by ItemCache.Get for absent entries.
var ErrCacheMiss = errors.New("cache miss")

const dateLayout = "2006-01-02"

// redisItemCache adapts pkg/cache.ItemCache to ItemCache.
type redisItemCache struct {
	c *pkgcache.ItemCache
}

// NewRedisItemCache returns an ItemCache backed by Redis hashes.
func NewRedisItemCache(c *pkgcache.ItemCache) ItemCache {
	return &redisItemCache{c: c}
}

func (r *redisItemCache) Get(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	cached, err := r.c.Get(ctx, id)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	return fromCached(cached)
}

func (r *redisItemCache) Set(ctx context.Context, item *models.Item) error {
	_, err := r.c.Set(ctx, toCached(item))
	return err
}

func (r *redisItemCache) Delete(ctx context.Context, id uuid.UUID) error {
	return r.c.Delete(ctx, id)
}

func toCached(i *models.Item) *pkgcache.CachedItem {
	c := &pkgcache.CachedItem{
		ID:                    i.ID.String(),
		SKU:                   i.SKU.String(),
		Name:                  i.Name,
		Description:           i.Description,
		Manufacturer:          i.Manufacturer,
		Supplier:              i.Supplier,
		Category:              string(i.Category),
		Unit:                  string(i.Unit),
		CostPrice:             i.CostPrice.String(),
		SellingPrice:          i.SellingPrice.String(),
		QuantityOnHand:        i.QuantityOnHand,
		ReorderLevel:          i.ReorderLevel,
		ReorderQuantity:       i.ReorderQuantity,
		LotNumber:             i.LotNumber,
		Location:              i.Location,
		RequiresPrescription:  i.RequiresPrescription,
		IsControlledSubstance: i.IsControlledSubstance,
		IsActive:              i.IsActive,
		Version:               i.Version,
		CreatedAt:             i.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:             i.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if i.ExpirationDate != nil {
		c.ExpirationDate = i.ExpirationDate.Format(dateLayout)
	}
	return c
}

func fromCached(c *pkgcache.CachedItem) (*models.Item, error) {
	id, err := uuid.Parse(c.ID)
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	cost, err := decimal.NewFromString(c.CostPrice)
	if err != nil {
		return nil, fmt.Errorf("cache parse cost_price: %w", err)
	}
	price, err := decimal.NewFromString(c.SellingPrice)
	if err != nil {
		return nil, fmt.Errorf("cache parse selling_price: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("cache parse updated_at: %w", err)
	}

	item := &models.Item{
		ID:                    id,
		SKU:                   models.SKU(c.SKU),
		Name:                  c.Name,
		Description:           c.Description,
		Manufacturer:          c.Manufacturer,
		Supplier:              c.Supplier,
		Category:              models.Category(c.Category),
		Unit:                  models.Unit(c.Unit),
		CostPrice:             cost,
		SellingPrice:          price,
		QuantityOnHand:        c.QuantityOnHand,
		ReorderLevel:          c.ReorderLevel,
		ReorderQuantity:       c.ReorderQuantity,
		LotNumber:             c.LotNumber,
		Location:              c.Location,
		RequiresPrescription:  c.RequiresPrescription,
		IsControlledSubstance: c.IsControlledSubstance,
		IsActive:              c.IsActive,
		Version:               c.Version,
		CreatedAt:             createdAt,
		UpdatedAt:             updatedAt,
	}
	if c.ExpirationDate != "" {
		exp, err := time.Parse(dateLayout, c.ExpirationDate)
		if err != nil {
			return nil, fmt.Errorf("cache parse expiration_date: %w", err)
		}
		item.ExpirationDate = &exp
	}
	return item, nil
}
