package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/vetclinic/pkg/logger"
	"github.com/ghuser/vetclinic/services/inventory/domain"
	"github.com/ghuser/vetclinic/services/inventory/domain/models"
	"github.com/ghuser/vetclinic/services/inventory/domain/repositories"
	domainsvcs "github.com/ghuser/vetclinic/services/inventory/domain/services"
)

// OpeningStock records stock already on the shelf when an item is registered.
// It becomes the item's first PURCHASE record.
type OpeningStock struct {
	Quantity      int
	UnitCost      *decimal.Decimal
	PerformedByID uuid.UUID
}

// CatalogService manages item master data. It never writes balances except
// through an opening PURCHASE record on registration.
// Event publishing is handled by the repository layer (outbox pattern).
type CatalogService struct {
	items repositories.ItemRepository
	cache ItemCache
	log   logger.Logger
}

// NewCatalogService returns a CatalogService. cache may be nil.
func NewCatalogService(items repositories.ItemRepository, cache ItemCache, log logger.Logger) *CatalogService {
	return &CatalogService{items: items, cache: cache, log: log}
}

// Register validates and persists a new item with a zero balance, or with
// opening stock recorded through the ledger in the same transaction.
func (s *CatalogService) Register(ctx context.Context, p models.NewItemParams, opening *OpeningStock) (*models.Item, error) {
	item, err := models.NewItem(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidItem, err)
	}
	if err := domainsvcs.ValidateItem(item); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidItem, err)
	}

	var initial *models.Transaction
	if opening != nil && opening.Quantity != 0 {
		if opening.Quantity < 0 {
			return nil, fmt.Errorf("%w: initial quantity must not be negative", domain.ErrInvalidTransaction)
		}
		if opening.Quantity > models.MaxQuantity {
			return nil, fmt.Errorf("%w: initial quantity must be at most %d", domain.ErrInvalidTransaction, models.MaxQuantity)
		}
		next, _, err := domainsvcs.ComputeBalance(0, models.TxPurchase, opening.Quantity)
		if err != nil {
			return nil, err
		}
		initial = models.NewTransaction(models.ApplyCommand{
			ItemID:        item.ID,
			Type:          models.TxPurchase,
			Quantity:      opening.Quantity,
			UnitCost:      opening.UnitCost,
			PerformedByID: opening.PerformedByID,
			Reference:     "opening stock",
		}, next)
		item.QuantityOnHand = next
		item.Version = 1
	}

	if err := s.items.Create(ctx, item, initial); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}

	s.log.InfoContext(ctx, "item registered", "item_id", item.ID, "sku", item.SKU, "quantity_on_hand", item.QuantityOnHand)
	return item, nil
}

// Get retrieves an item using a read-through cache:
//  1. Check Redis first.
//  2. On miss (or cache error), query Postgres.
//  3. Warm the cache with the Postgres result.
func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.log.WarnContext(ctx, "item cache read failed", "item_id", id, "error", err)
		}
	}

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, item); err != nil {
			s.log.WarnContext(ctx, "item cache write failed", "item_id", id, "error", err)
		}
	}
	return item, nil
}

// List returns a filtered page of items ordered by name.
func (s *CatalogService) List(ctx context.Context, filter repositories.ItemFilter, opts repositories.QueryOpts) (repositories.Page[*models.Item], error) {
	page, err := s.items.List(ctx, filter, opts)
	if err != nil {
		return page, fmt.Errorf("list items: %w", err)
	}
	return page, nil
}

// Update applies patch to the descriptive, pricing and threshold fields of an item.
func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, patch models.ItemPatch) (*models.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	patch.Apply(item)
	if err := domainsvcs.ValidateItem(item); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidItem, err)
	}

	stored, err := s.items.Update(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	s.refresh(ctx, stored)
	return stored, nil
}

// Deactivate tombstones an item. Deactivating twice is not an error.
func (s *CatalogService) Deactivate(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item, err := s.items.Deactivate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("deactivate item: %w", err)
	}
	s.refresh(ctx, item)
	s.log.InfoContext(ctx, "item deactivated", "item_id", id, "sku", item.SKU)
	return item, nil
}

// refresh caches the freshly written snapshot. Its bumped version keeps a
// concurrent reader holding the old row from overwriting it. If the write
// fails the entry is dropped instead.
func (s *CatalogService) refresh(ctx context.Context, item *models.Item) {
	if s.cache == nil {
		return
	}
	err := s.cache.Set(ctx, item)
	if err == nil {
		return
	}
	s.log.WarnContext(ctx, "item cache write failed", "item_id", item.ID, "error", err)
	if err := s.cache.Delete(ctx, item.ID); err != nil {
		s.log.WarnContext(ctx, "item cache invalidation failed", "item_id", item.ID, "error", err)
	}
}
