package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/vetclinic/pkg/database"
	"github.com/ghuser/vetclinic/pkg/events"
	"github.com/ghuser/vetclinic/services/inventory/domain"
	"github.com/ghuser/vetclinic/services/inventory/domain/models"
	"github.com/ghuser/vetclinic/services/inventory/domain/repositories"
	"github.com/ghuser/vetclinic/services/inventory/infrastructure/persistence/postgres/db"
)

const skuConstraint = "items_sku_key"

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db     *database.Database
	outbox outbox
}

// NewItemRepository returns an ItemRepository backed by the given pool and
// event bus. A nil bus disables event publishing.
func NewItemRepository(database *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: database, outbox: outbox{bus: bus}}
}

// Create persists a new item, its optional opening ledger record, and the
// matching events within one transaction.
func (r *ItemRepository) Create(ctx context.Context, item *models.Item, initial *models.Transaction) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		row, err := itemToRow(item)
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInvalidItem, err)
		}
		if err := q.InsertItem(ctx, row); err != nil {
			if database.IsUniqueViolation(err, skuConstraint) {
				return domain.ErrDuplicateSKU
			}
			return fmt.Errorf("insert item: %w", err)
		}
		if err := r.outbox.itemRegistered(ctx, tx, item); err != nil {
			return err
		}

		if initial == nil {
			return nil
		}
		params, err := transactionToParams(initial)
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInvalidTransaction, err)
		}
		seq, err := q.InsertTransaction(ctx, params)
		if err != nil {
			if database.IsUniqueViolation(err, idempotencyConstraint) {
				return domain.ErrIdempotencyConflict
			}
			return fmt.Errorf("insert opening transaction: %w", err)
		}
		initial.Seq = seq
		return r.outbox.transactionRecorded(ctx, tx, initial)
	})
}

// GetByID returns ErrItemNotFound if the item does not exist.
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	row, err := db.New(r.db.DB()).GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return rowToItem(row), nil
}

// List returns a filtered page of items and the total match count.
func (r *ItemRepository) List(ctx context.Context, filter repositories.ItemFilter, opts repositories.QueryOpts) (repositories.Page[*models.Item], error) {
	q := db.New(r.db.DB())
	params := filterToParams(filter)

	rows, err := q.ListItems(ctx, db.ListItemsParams{
		ItemFilterParams: params,
		Limit:            int32(opts.Limit),
		Offset:           int32(opts.Offset),
	})
	if err != nil {
		return repositories.Page[*models.Item]{}, fmt.Errorf("query items: %w", err)
	}

	total, err := q.CountItems(ctx, params)
	if err != nil {
		return repositories.Page[*models.Item]{}, fmt.Errorf("count items: %w", err)
	}

	return repositories.Page[*models.Item]{Items: rowsToItems(rows), Total: int(total)}, nil
}

// ListAll returns every item matching filter.
func (r *ItemRepository) ListAll(ctx context.Context, filter repositories.ItemFilter) ([]*models.Item, error) {
	rows, err := db.New(r.db.DB()).ListItems(ctx, db.ListItemsParams{ItemFilterParams: filterToParams(filter)})
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	return rowsToItems(rows), nil
}

// Update persists the editable fields of item and returns the stored row
// with its new version. The stored balance is untouched.
func (r *ItemRepository) Update(ctx context.Context, item *models.Item) (*models.Item, error) {
	level, err := toInt4("reorder_level", item.ReorderLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidItem, err)
	}
	reorder, err := toInt4("reorder_quantity", item.ReorderQuantity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidItem, err)
	}
	row, err := db.New(r.db.DB()).UpdateItem(ctx, db.UpdateItemParams{
		ID:                    item.ID,
		Name:                  item.Name,
		Description:           item.Description,
		Manufacturer:          item.Manufacturer,
		Supplier:              item.Supplier,
		Category:              string(item.Category),
		Unit:                  string(item.Unit),
		CostPrice:             item.CostPrice,
		SellingPrice:          item.SellingPrice,
		ReorderLevel:          level,
		ReorderQuantity:       reorder,
		LotNumber:             item.LotNumber,
		ExpirationDate:        nullDate(item.ExpirationDate),
		Location:              item.Location,
		RequiresPrescription:  item.RequiresPrescription,
		IsControlledSubstance: item.IsControlledSubstance,
		UpdatedAt:             item.UpdatedAt,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("update item: %w", err)
	}
	return rowToItem(row), nil
}

// Deactivate tombstones the item and returns its current state.
func (r *ItemRepository) Deactivate(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	row, err := db.New(r.db.DB()).DeactivateItem(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("deactivate item: %w", err)
	}
	return rowToItem(row), nil
}

// LowStock returns active items at or below their reorder level, lowest
// balance first.
func (r *ItemRepository) LowStock(ctx context.Context) ([]*models.Item, error) {
	rows, err := db.New(r.db.DB()).ListLowStockItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("query low stock items: %w", err)
	}
	return rowsToItems(rows), nil
}

// ExpiringBy returns active items with stock on hand whose expiration date
// is on or before cutoff, soonest first.
func (r *ItemRepository) ExpiringBy(ctx context.Context, cutoff time.Time) ([]*models.Item, error) {
	rows, err := db.New(r.db.DB()).ListExpiringItems(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("query expiring items: %w", err)
	}
	return rowsToItems(rows), nil
}
