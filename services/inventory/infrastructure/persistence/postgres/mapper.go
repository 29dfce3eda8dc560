package postgres

import (
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/vetclinic/services/inventory/domain/models"
	"github.com/ghuser/vetclinic/services/inventory/domain/repositories"
	"github.com/ghuser/vetclinic/services/inventory/infrastructure/persistence/postgres/db"
)

func rowToItem(row db.InventoryItem) *models.Item {
	item := &models.Item{
		ID:                    row.ID,
		SKU:                   models.SKU(row.Sku),
		Name:                  row.Name,
		Description:           row.Description,
		Manufacturer:          row.Manufacturer,
		Supplier:              row.Supplier,
		Category:              models.Category(row.Category),
		Unit:                  models.Unit(row.Unit),
		CostPrice:             row.CostPrice,
		SellingPrice:          row.SellingPrice,
		QuantityOnHand:        int(row.QuantityOnHand),
		ReorderLevel:          int(row.ReorderLevel),
		ReorderQuantity:       int(row.ReorderQuantity),
		LotNumber:             row.LotNumber,
		Location:              row.Location,
		RequiresPrescription:  row.RequiresPrescription,
		IsControlledSubstance: row.IsControlledSubstance,
		IsActive:              row.IsActive,
		Version:               row.Version,
		CreatedAt:             row.CreatedAt.UTC(),
		UpdatedAt:             row.UpdatedAt.UTC(),
	}
	if row.ExpirationDate.Valid {
		item.ExpirationDate = models.TruncateDate(&row.ExpirationDate.Time)
	}
	return item
}

func rowsToItems(rows []db.InventoryItem) []*models.Item {
	items := make([]*models.Item, len(rows))
	for i, row := range rows {
		items[i] = rowToItem(row)
	}
	return items
}

// toInt4 narrows n to an INTEGER column value, refusing anything that
// would wrap.
func toInt4(field string, n int) (int32, error) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%s %d does not fit an INTEGER column", field, n)
	}
	return int32(n), nil
}

func itemToRow(item *models.Item) (db.InsertItemParams, error) {
	qty, err := toInt4("quantity_on_hand", item.QuantityOnHand)
	if err != nil {
		return db.InsertItemParams{}, err
	}
	level, err := toInt4("reorder_level", item.ReorderLevel)
	if err != nil {
		return db.InsertItemParams{}, err
	}
	reorder, err := toInt4("reorder_quantity", item.ReorderQuantity)
	if err != nil {
		return db.InsertItemParams{}, err
	}
	return db.InsertItemParams{
		ID:                    item.ID,
		Sku:                   item.SKU.String(),
		Name:                  item.Name,
		Description:           item.Description,
		Manufacturer:          item.Manufacturer,
		Supplier:              item.Supplier,
		Category:              string(item.Category),
		Unit:                  string(item.Unit),
		CostPrice:             item.CostPrice,
		SellingPrice:          item.SellingPrice,
		QuantityOnHand:        qty,
		ReorderLevel:          level,
		ReorderQuantity:       reorder,
		LotNumber:             item.LotNumber,
		ExpirationDate:        nullDate(item.ExpirationDate),
		Location:              item.Location,
		RequiresPrescription:  item.RequiresPrescription,
		IsControlledSubstance: item.IsControlledSubstance,
		IsActive:              item.IsActive,
		Version:               item.Version,
		CreatedAt:             item.CreatedAt,
		UpdatedAt:             item.UpdatedAt,
	}, nil
}

func rowToTransaction(row db.InventoryItemTransaction) *models.Transaction {
	tx := &models.Transaction{
		ID:             row.ID,
		Seq:            row.Seq,
		ItemID:         row.ItemID,
		Type:           models.TransactionType(row.Type),
		Quantity:       int(row.Quantity),
		QuantityAfter:  int(row.QuantityAfter),
		PerformedByID:  row.PerformedByID,
		Reference:      row.Reference,
		Notes:          row.Notes,
		IdempotencyKey: row.IdempotencyKey.String,
		CreatedAt:      row.CreatedAt.UTC(),
	}
	if row.UnitCost.Valid {
		cost := row.UnitCost.Decimal
		tx.UnitCost = &cost
	}
	if row.PatientID.Valid {
		id := row.PatientID.UUID
		tx.PatientID = &id
	}
	if row.VisitID.Valid {
		id := row.VisitID.UUID
		tx.VisitID = &id
	}
	return tx
}

func rowsToTransactions(rows []db.InventoryItemTransaction) []*models.Transaction {
	txs := make([]*models.Transaction, len(rows))
	for i, row := range rows {
		txs[i] = rowToTransaction(row)
	}
	return txs
}

func transactionToParams(tx *models.Transaction) (db.InsertTransactionParams, error) {
	qty, err := toInt4("quantity", tx.Quantity)
	if err != nil {
		return db.InsertTransactionParams{}, err
	}
	after, err := toInt4("quantity_after", tx.QuantityAfter)
	if err != nil {
		return db.InsertTransactionParams{}, err
	}
	p := db.InsertTransactionParams{
		ID:            tx.ID,
		ItemID:        tx.ItemID,
		Type:          string(tx.Type),
		Quantity:      qty,
		QuantityAfter: after,
		PerformedByID: tx.PerformedByID,
		Reference:     tx.Reference,
		Notes:         tx.Notes,
		CreatedAt:     tx.CreatedAt,
	}
	if tx.UnitCost != nil {
		p.UnitCost = decimal.NullDecimal{Decimal: *tx.UnitCost, Valid: true}
	}
	if tx.PatientID != nil {
		p.PatientID = uuid.NullUUID{UUID: *tx.PatientID, Valid: true}
	}
	if tx.VisitID != nil {
		p.VisitID = uuid.NullUUID{UUID: *tx.VisitID, Valid: true}
	}
	if tx.IdempotencyKey != "" {
		p.IdempotencyKey = sql.NullString{String: tx.IdempotencyKey, Valid: true}
	}
	return p, nil
}

func filterToParams(f repositories.ItemFilter) db.ItemFilterParams {
	p := db.ItemFilterParams{
		Search:   escapeLike(strings.TrimSpace(f.Search)),
		LowStock: f.LowStock,
	}
	if f.Category != nil {
		p.Category = sql.NullString{String: string(*f.Category), Valid: true}
	}
	if f.Active != nil {
		p.Active = sql.NullBool{Bool: *f.Active, Valid: true}
	}
	return p
}

func nullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *models.TruncateDate(t), Valid: true}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside ILIKE '%...%'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
