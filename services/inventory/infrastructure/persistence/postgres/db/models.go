package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem is one row of the items table.
type InventoryItem struct {
	ID                    uuid.UUID
	Sku                   string
	Name                  string
	Description           string
	Manufacturer          string
	Supplier              string
	Category              string
	Unit                  string
	CostPrice             decimal.Decimal
	SellingPrice          decimal.Decimal
	QuantityOnHand        int32
	ReorderLevel          int32
	ReorderQuantity       int32
	LotNumber             string
	ExpirationDate        sql.NullTime
	Location              string
	RequiresPrescription  bool
	IsControlledSubstance bool
	IsActive              bool
	Version               int64
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// InventoryItemTransaction is one row of the item_transactions table.
type InventoryItemTransaction struct {
	Seq            int64
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
