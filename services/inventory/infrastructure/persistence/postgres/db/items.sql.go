package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const itemColumns = `id, sku, name, description, manufacturer, supplier, category, unit,
	cost_price, selling_price, quantity_on_hand, reorder_level, reorder_quantity,
	lot_number, expiration_date, location, requires_prescription, is_controlled_substance,
	is_active, version, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (InventoryItem, error) {
	var i InventoryItem
	err := row.Scan(
		&i.ID, &i.Sku, &i.Name, &i.Description, &i.Manufacturer, &i.Supplier, &i.Category, &i.Unit,
		&i.CostPrice, &i.SellingPrice, &i.QuantityOnHand, &i.ReorderLevel, &i.ReorderQuantity,
		&i.LotNumber, &i.ExpirationDate, &i.Location, &i.RequiresPrescription, &i.IsControlledSubstance,
		&i.IsActive, &i.Version, &i.CreatedAt, &i.UpdatedAt,
	)
	return i, err
}

func scanItems(rows *sql.Rows) ([]InventoryItem, error) {
	defer rows.Close() //nolint:errcheck
	var items []InventoryItem
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertItem = `INSERT INTO items (` + itemColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`

// InsertItemParams mirrors InventoryItem; every column is written.
type InsertItemParams = InventoryItem

func (q *Queries) InsertItem(ctx context.Context, arg InsertItemParams) error {
	_, err := q.db.ExecContext(ctx, insertItem,
		arg.ID, arg.Sku, arg.Name, arg.Description, arg.Manufacturer, arg.Supplier, arg.Category, arg.Unit,
		arg.CostPrice, arg.SellingPrice, arg.QuantityOnHand, arg.ReorderLevel, arg.ReorderQuantity,
		arg.LotNumber, arg.ExpirationDate, arg.Location, arg.RequiresPrescription, arg.IsControlledSubstance,
		arg.IsActive, arg.Version, arg.CreatedAt, arg.UpdatedAt,
	)
	return err
}

const getItem = `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

func (q *Queries) GetItem(ctx context.Context, id uuid.UUID) (InventoryItem, error) {
	return scanItem(q.db.QueryRowContext(ctx, getItem, id))
}

const getItemForUpdate = `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`

// GetItemForUpdate row-locks the item until the surrounding transaction ends.
func (q *Queries) GetItemForUpdate(ctx context.Context, id uuid.UUID) (InventoryItem, error) {
	return scanItem(q.db.QueryRowContext(ctx, getItemForUpdate, id))
}

// ItemFilterParams is shared by ListItems and CountItems. Search must already
// have LIKE wildcards escaped.
type ItemFilterParams struct {
	Search   string
	Category sql.NullString
	LowStock bool
	Active   sql.NullBool
}

const itemFilter = `
WHERE ($1::text = '' OR name ILIKE '%' || $1 || '%' OR sku ILIKE '%' || $1 || '%' OR manufacturer ILIKE '%' || $1 || '%')
  AND ($2::text IS NULL OR category = $2)
  AND (NOT $3::boolean OR quantity_on_hand <= reorder_level)
  AND ($4::boolean IS NULL OR is_active = $4)`

const listItems = `SELECT ` + itemColumns + ` FROM items` + itemFilter + `
ORDER BY name ASC, id ASC
LIMIT $5 OFFSET $6`

// ListItemsParams pages a filtered listing. A Limit of zero or less returns every row.
type ListItemsParams struct {
	ItemFilterParams
	Limit  int32
	Offset int32
}

func (q *Queries) ListItems(ctx context.Context, arg ListItemsParams) ([]InventoryItem, error) {
	var limit sql.NullInt32
	if arg.Limit > 0 {
		limit = sql.NullInt32{Int32: arg.Limit, Valid: true}
	}
	rows, err := q.db.QueryContext(ctx, listItems,
		arg.Search, arg.Category, arg.LowStock, arg.Active, limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

const countItems = `SELECT count(*) FROM items` + itemFilter

func (q *Queries) CountItems(ctx context.Context, arg ItemFilterParams) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countItems, arg.Search, arg.Category, arg.LowStock, arg.Active).Scan(&n)
	return n, err
}

const updateItem = `UPDATE items SET
	name = $2, description = $3, manufacturer = $4, supplier = $5, category = $6, unit = $7,
	cost_price = $8, selling_price = $9, reorder_level = $10, reorder_quantity = $11,
	lot_number = $12, expiration_date = $13, location = $14,
	requires_prescription = $15, is_controlled_substance = $16, updated_at = $17,
	version = version + 1
WHERE id = $1
RETURNING ` + itemColumns

// UpdateItemParams carries the editable columns. quantity_on_hand and
// is_active are not among them; version is incremented by the statement.
type UpdateItemParams struct {
	ID                    uuid.UUID
	Name                  string
	Description           string
	Manufacturer          string
	Supplier              string
	Category              string
	Unit                  string
	CostPrice             decimal.Decimal
	SellingPrice          decimal.Decimal
	ReorderLevel          int32
	ReorderQuantity       int32
	LotNumber             string
	ExpirationDate        sql.NullTime
	Location              string
	RequiresPrescription  bool
	IsControlledSubstance bool
	UpdatedAt             time.Time
}

// UpdateItem returns the updated row, or sql.ErrNoRows for an unknown id.
func (q *Queries) UpdateItem(ctx context.Context, arg UpdateItemParams) (InventoryItem, error) {
	return scanItem(q.db.QueryRowContext(ctx, updateItem,
		arg.ID, arg.Name, arg.Description, arg.Manufacturer, arg.Supplier, arg.Category, arg.Unit,
		arg.CostPrice, arg.SellingPrice, arg.ReorderLevel, arg.ReorderQuantity,
		arg.LotNumber, arg.ExpirationDate, arg.Location,
		arg.RequiresPrescription, arg.IsControlledSubstance, arg.UpdatedAt,
	))
}

const deactivateItem = `UPDATE items SET
	updated_at = CASE WHEN is_active THEN now() ELSE updated_at END,
	version = CASE WHEN is_active THEN version + 1 ELSE version END,
	is_active = FALSE
WHERE id = $1
RETURNING ` + itemColumns

func (q *Queries) DeactivateItem(ctx context.Context, id uuid.UUID) (InventoryItem, error) {
	return scanItem(q.db.QueryRowContext(ctx, deactivateItem, id))
}

const setItemBalance = `UPDATE items SET
	quantity_on_hand = $2, version = version + 1, updated_at = now()
WHERE id = $1
RETURNING version, updated_at`

// SetItemBalanceRow is what SetItemBalance returns.
type SetItemBalanceRow struct {
	Version   int64
	UpdatedAt time.Time
}

// SetItemBalance writes a ledger-derived balance. Only the ledger repository calls it.
func (q *Queries) SetItemBalance(ctx context.Context, id uuid.UUID, quantity int32) (SetItemBalanceRow, error) {
	var r SetItemBalanceRow
	err := q.db.QueryRowContext(ctx, setItemBalance, id, quantity).Scan(&r.Version, &r.UpdatedAt)
	return r, err
}

const listLowStockItems = `SELECT ` + itemColumns + ` FROM items
WHERE is_active AND quantity_on_hand <= reorder_level
ORDER BY quantity_on_hand ASC, name ASC`

func (q *Queries) ListLowStockItems(ctx context.Context) ([]InventoryItem, error) {
	rows, err := q.db.QueryContext(ctx, listLowStockItems)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

const listExpiringItems = `SELECT ` + itemColumns + ` FROM items
WHERE is_active AND quantity_on_hand > 0
  AND expiration_date IS NOT NULL AND expiration_date <= $1::date
ORDER BY expiration_date ASC, name ASC`

func (q *Queries) ListExpiringItems(ctx context.Context, cutoff time.Time) ([]InventoryItem, error) {
	rows, err := q.db.QueryContext(ctx, listExpiringItems, cutoff)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}
