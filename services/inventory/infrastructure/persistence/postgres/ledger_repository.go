package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/vetclinic/pkg/database"
	"github.com/ghuser/vetclinic/pkg/events"
	"github.com/ghuser/vetclinic/services/inventory/domain"
	"github.com/ghuser/vetclinic/services/inventory/domain/models"
	"github.com/ghuser/vetclinic/services/inventory/domain/repositories"
	domainsvcs "github.com/ghuser/vetclinic/services/inventory/domain/services"
	"github.com/ghuser/vetclinic/services/inventory/infrastructure/persistence/postgres/db"
)

const idempotencyConstraint = "item_transactions_idempotency_key"

// LedgerRepository implements repositories.LedgerRepository against PostgreSQL.
// Writes to one item are serialized by a row lock on items; writes to
// different items never contend.
type LedgerRepository struct {
	db     *database.Database
	outbox outbox
	txOpts database.TxOptions
}

// NewLedgerRepository returns a LedgerRepository whose units of work are
// bounded by opts (lock and statement timeouts).
func NewLedgerRepository(database *database.Database, bus *events.EventBus, opts database.TxOptions) *LedgerRepository {
	return &LedgerRepository{db: database, outbox: outbox{bus: bus}, txOpts: opts}
}

// Apply runs one ledger write: lock the item row, resolve the idempotency key,
// compute the record via fn, append it, write the new balance, and publish
// events. All of it commits or none of it does.
func (r *LedgerRepository) Apply(ctx context.Context, itemID uuid.UUID, idempotencyKey string, fn repositories.LockedApply) (*repositories.Applied, error) {
	var out *repositories.Applied

	err := r.db.WithTxOptions(ctx, r.txOpts, func(tx *sql.Tx) error {
		q := db.New(tx)

		row, err := q.GetItemForUpdate(ctx, itemID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrItemNotFound
			}
			return fmt.Errorf("lock item: %w", err)
		}
		item := rowToItem(row)
		previous := item.QuantityOnHand

		if idempotencyKey != "" {
			existing, err := q.GetTransactionByIdempotencyKey(ctx, idempotencyKey)
			switch {
			case err == nil:
				out = &repositories.Applied{
					Transaction:     rowToTransaction(existing),
					Item:            item,
					PreviousBalance: previous,
					Replayed:        true,
				}
				return nil
			case !errors.Is(err, sql.ErrNoRows):
				return fmt.Errorf("lookup idempotency key: %w", err)
			}
		}

		rec, err := fn(item)
		if err != nil {
			return err
		}

		params, err := transactionToParams(rec)
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInvalidTransaction, err)
		}
		seq, err := q.InsertTransaction(ctx, params)
		if err != nil {
			if database.IsUniqueViolation(err, idempotencyConstraint) {
				return domain.ErrIdempotencyConflict
			}
			return fmt.Errorf("insert transaction: %w", err)
		}
		rec.Seq = seq

		bal, err := q.SetItemBalance(ctx, itemID, params.QuantityAfter)
		if err != nil {
			return fmt.Errorf("write balance: %w", err)
		}
		item.QuantityOnHand = rec.QuantityAfter
		item.Version = bal.Version
		item.UpdatedAt = bal.UpdatedAt.UTC()

		if err := r.outbox.transactionRecorded(ctx, tx, rec); err != nil {
			return err
		}
		if domainsvcs.CrossedReorderLevel(previous, item.QuantityOnHand, item.ReorderLevel) {
			if err := r.outbox.stockLow(ctx, tx, item); err != nil {
				return err
			}
		}

		out = &repositories.Applied{Transaction: rec, Item: item, PreviousBalance: previous}
		return nil
	})
	if err != nil {
		if database.IsUnavailable(err) {
			return nil, fmt.Errorf("%w: %w", domain.ErrLedgerUnavailable, err)
		}
		return nil, err
	}
	return out, nil
}

// ListByItem returns ErrItemNotFound for unknown items.
func (r *LedgerRepository) ListByItem(ctx context.Context, itemID uuid.UUID, opts repositories.QueryOpts) (repositories.Page[*models.Transaction], error) {
	q := db.New(r.db.DB())

	exists, err := q.ItemExists(ctx, itemID)
	if err != nil {
		return repositories.Page[*models.Transaction]{}, fmt.Errorf("check item exists: %w", err)
	}
	if !exists {
		return repositories.Page[*models.Transaction]{}, domain.ErrItemNotFound
	}

	rows, err := q.ListTransactionsByItem(ctx, db.ListTransactionsByItemParams{
		ItemID: itemID,
		Limit:  int32(opts.Limit),
		Offset: int32(opts.Offset),
	})
	if err != nil {
		return repositories.Page[*models.Transaction]{}, fmt.Errorf("query transactions: %w", err)
	}

	total, err := q.CountTransactionsByItem(ctx, itemID)
	if err != nil {
		return repositories.Page[*models.Transaction]{}, fmt.Errorf("count transactions: %w", err)
	}

	return repositories.Page[*models.Transaction]{Items: rowsToTransactions(rows), Total: int(total)}, nil
}

// History returns every record for the item in commit order, for replay and
// reconciliation. An unknown item yields an empty slice.
func (r *LedgerRepository) History(ctx context.Context, itemID uuid.UUID) ([]*models.Transaction, error) {
	rows, err := db.New(r.db.DB()).ListTransactionHistory(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("query transaction history: %w", err)
	}
	return rowsToTransactions(rows), nil
}
