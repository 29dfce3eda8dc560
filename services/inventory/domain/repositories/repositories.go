package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/vetclinic/services/inventory/domain/models"
)

// QueryOpts contains pagination parameters for list queries.
type QueryOpts struct {
	Limit  int // Maximum number of records to return
	Offset int // Number of records to skip
}

// Page is one page of a list query plus the total count ignoring pagination.
type Page[T any] struct {
	Items []T
	Total int
}

// ItemFilter narrows catalog listings. Zero values mean "no filter".
type ItemFilter struct {
	Search   string           // case-insensitive substring over name, sku and manufacturer
	Category *models.Category // exact match
	LowStock bool             // quantity_on_hand <= reorder_level
	Active   *bool            // tri-state: nil lists both
}

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
type ItemRepository interface {
	// Create persists a new item. When initial is non-nil it is recorded as the
	// item's first ledger entry in the same atomic unit. Returns ErrDuplicateSKU
	// when the SKU is taken.
	Create(ctx context.Context, item *models.Item, initial *models.Transaction) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)

	// List returns a page of items ordered by name ascending.
	List(ctx context.Context, filter ItemFilter, opts QueryOpts) (Page[*models.Item], error)

	// ListAll returns every item matching filter, ordered by name ascending.
	ListAll(ctx context.Context, filter ItemFilter) ([]*models.Item, error)

	// Update persists descriptive fields, bumps the version and returns the
	// stored row. It never writes quantity_on_hand.
	Update(ctx context.Context, item *models.Item) (*models.Item, error)

	// Deactivate clears is_active and bumps the version. Deactivating an
	// inactive item is a no-op.
	Deactivate(ctx context.Context, id uuid.UUID) (*models.Item, error)

	// LowStock returns active items at or below their reorder level ordered by
	// quantity ascending, then name.
	LowStock(ctx context.Context) ([]*models.Item, error)

	// ExpiringBy returns active items with stock on hand whose expiration date
	// is on or before cutoff, soonest first.
	ExpiringBy(ctx context.Context, cutoff time.Time) ([]*models.Item, error)
}

// LockedApply computes the ledger record for a row-locked item. The item
// passed in reflects the committed balance and nothing else can change it
// until the callback returns. Returning an error aborts the unit of work.
type LockedApply func(item *models.Item) (*models.Transaction, error)

// Applied is the outcome of a ledger write.
type Applied struct {
	Transaction *models.Transaction
	// Item is the item state after the write (or at lookup, when Replayed).
	Item *models.Item
	// PreviousBalance is the balance before this write.
	PreviousBalance int
	// Replayed is true when IdempotencyKey matched an existing record and
	// nothing was written.
	Replayed bool
}

// LedgerRepository persists the append-only transaction log together with
// the derived item balance.
type LedgerRepository interface {
	// Apply locks itemID for the duration of one unit of work, resolves
	// idempotencyKey (if any) against existing records, calls fn with the locked
	// item, and persists the returned record and its QuantityAfter as the new
	// balance. Returns ErrItemNotFound for unknown items and
	// ErrLedgerUnavailable when the lock cannot be taken in time.
	Apply(ctx context.Context, itemID uuid.UUID, idempotencyKey string, fn LockedApply) (*Applied, error)

	// ListByItem returns the item's records newest first.
	ListByItem(ctx context.Context, itemID uuid.UUID, opts QueryOpts) (Page[*models.Transaction], error)

	// History returns every record for the item in commit order.
	History(ctx context.Context, itemID uuid.UUID) ([]*models.Transaction, error)
}
