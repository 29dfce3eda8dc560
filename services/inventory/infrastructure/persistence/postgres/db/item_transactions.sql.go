package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const transactionColumns = `seq, id, item_id, type, quantity, quantity_after, unit_cost,
	patient_id, visit_id, performed_by_id, reference, notes, idempotency_key, created_at`

func scanTransaction(row rowScanner) (InventoryItemTransaction, error) {
	var t InventoryItemTransaction
	err := row.Scan(
		&t.Seq, &t.ID, &t.ItemID, &t.Type, &t.Quantity, &t.QuantityAfter, &t.UnitCost,
		&t.PatientID, &t.VisitID, &t.PerformedByID, &t.Reference, &t.Notes, &t.IdempotencyKey, &t.CreatedAt,
	)
	return t, err
}

func scanTransactions(rows *sql.Rows) ([]InventoryItemTransaction, error) {
	defer rows.Close() //nolint:errcheck
	var txs []InventoryItemTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return txs, nil
}

const insertTransaction = `INSERT INTO item_transactions (
	id, item_id, type, quantity, quantity_after, unit_cost,
	patient_id, visit_id, performed_by_id, reference, notes, idempotency_key, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING seq`

// InsertTransactionParams omits Seq, which the database assigns.
type InsertTransactionParams struct {
	ID             uuid.UUID
	ItemID         uuid.UUID
	Type           string
	Quantity       int32
	QuantityAfter  int32
	UnitCost       decimal.NullDecimal
	PatientID      uuid.NullUUID
	VisitID        uuid.NullUUID
	PerformedByID  uuid.UUID
	Reference      string
	Notes          string
	IdempotencyKey sql.NullString
	CreatedAt      time.Time
}

// InsertTransaction appends one ledger row and returns its sequence number.
func (q *Queries) InsertTransaction(ctx context.Context, arg InsertTransactionParams) (int64, error) {
	var seq int64
	err := q.db.QueryRowContext(ctx, insertTransaction,
		arg.ID, arg.ItemID, arg.Type, arg.Quantity, arg.QuantityAfter, arg.UnitCost,
		arg.PatientID, arg.VisitID, arg.PerformedByID, arg.Reference, arg.Notes, arg.IdempotencyKey, arg.CreatedAt,
	).Scan(&seq)
	return seq, err
}

const getTransactionByIdempotencyKey = `SELECT ` + transactionColumns + ` FROM item_transactions
WHERE idempotency_key = $1`

func (q *Queries) GetTransactionByIdempotencyKey(ctx context.Context, key string) (InventoryItemTransaction, error) {
	return scanTransaction(q.db.QueryRowContext(ctx, getTransactionByIdempotencyKey, key))
}

const listTransactionsByItem = `SELECT ` + transactionColumns + ` FROM item_transactions
WHERE item_id = $1
ORDER BY created_at DESC, seq DESC
LIMIT $2 OFFSET $3`

type ListTransactionsByItemParams struct {
	ItemID uuid.UUID
	Limit  int32
	Offset int32
}

func (q *Queries) ListTransactionsByItem(ctx context.Context, arg ListTransactionsByItemParams) ([]InventoryItemTransaction, error) {
	rows, err := q.db.QueryContext(ctx, listTransactionsByItem, arg.ItemID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return scanTransactions(rows)
}

const countTransactionsByItem = `SELECT count(*) FROM item_transactions WHERE item_id = $1`

func (q *Queries) CountTransactionsByItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countTransactionsByItem, itemID).Scan(&n)
	return n, err
}

const listTransactionHistory = `SELECT ` + transactionColumns + ` FROM item_transactions
WHERE item_id = $1
ORDER BY seq ASC`

// ListTransactionHistory returns every ledger row for the item in commit order.
func (q *Queries) ListTransactionHistory(ctx context.Context, itemID uuid.UUID) ([]InventoryItemTransaction, error) {
	rows, err := q.db.QueryContext(ctx, listTransactionHistory, itemID)
	if err != nil {
		return nil, err
	}
	return scanTransactions(rows)
}

const itemExists = `SELECT EXISTS (SELECT 1 FROM items WHERE id = $1)`

func (q *Queries) ItemExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := q.db.QueryRowContext(ctx, itemExists, id).Scan(&ok)
	return ok, err
}
