package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category classifies catalog items.
type Category string

// Category values.
const (
	CategoryMedication Category = "MEDICATION"
	CategoryVaccine    Category = "VACCINE"
	CategorySupply     Category = "SUPPLY"
	CategoryFood       Category = "FOOD"
	CategoryEquipment  Category = "EQUIPMENT"
	CategoryOther      Category = "OTHER"
)

// Categories lists every valid Category in display order.
var Categories = []Category{
	CategoryMedication, CategoryVaccine, CategorySupply,
	CategoryFood, CategoryEquipment, CategoryOther,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Unit is the unit of measure stock is counted in.
type Unit string

// Unit values.
const (
	UnitUnit    Unit = "UNIT"
	UnitTablet  Unit = "TABLET"
	UnitCapsule Unit = "CAPSULE"
	UnitML      Unit = "ML"
	UnitMG      Unit = "MG"
	UnitBottle  Unit = "BOTTLE"
	UnitBox     Unit = "BOX"
	UnitVial    Unit = "VIAL"
	UnitDose    Unit = "DOSE"
	UnitPack    Unit = "PACK"
)

// Units lists every valid Unit.
var Units = []Unit{
	UnitUnit, UnitTablet, UnitCapsule, UnitML, UnitMG,
	UnitBottle, UnitBox, UnitVial, UnitDose, UnitPack,
}

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	for _, v := range Units {
		if u == v {
			return true
		}
	}
	return false
}

// Item is the catalog aggregate. QuantityOnHand is derived from the
// transaction ledger and is written only by the ledger engine.
type Item struct {
	ID                    uuid.UUID
	SKU                   SKU
	Name                  string
	Description           string
	Manufacturer          string
	Supplier              string
	Category              Category
	Unit                  Unit
	CostPrice             decimal.Decimal
	SellingPrice          decimal.Decimal
	QuantityOnHand        int
	ReorderLevel          int
	ReorderQuantity       int
	LotNumber             string
	ExpirationDate        *time.Time // date precision, UTC midnight
	Location              string
	RequiresPrescription  bool
	IsControlledSubstance bool
	IsActive              bool
	Version               int64 // bumped on every balance write
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// IsLowStock reports whether the on-hand balance is at or below the reorder level.
func (i *Item) IsLowStock() bool {
	return i.QuantityOnHand <= i.ReorderLevel
}

// ExpiresBy reports whether the item carries an expiration date on or before cutoff.
func (i *Item) ExpiresBy(cutoff time.Time) bool {
	return i.ExpirationDate != nil && !i.ExpirationDate.After(cutoff)
}

// NewItemParams carries everything needed to register a catalog item.
// It has no balance field; stock enters only through the ledger.
type NewItemParams struct {
	SKU                   string
	Name                  string
	Description           string
	Manufacturer          string
	Supplier              string
	Category              Category
	Unit                  Unit
	CostPrice             decimal.Decimal
	SellingPrice          decimal.Decimal
	ReorderLevel          int
	ReorderQuantity       int
	LotNumber             string
	ExpirationDate        *time.Time
	Location              string
	RequiresPrescription  bool
	IsControlledSubstance bool
}

// NewItem constructs an active Item with a generated ID, a zero balance and
// the current timestamp. Field-level rules are checked by the domain validator.
func NewItem(p NewItemParams) (*Item, error) {
	sku, err := NewSKU(p.SKU)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Item{
		ID:                    uuid.New(),
		SKU:                   sku,
		Name:                  p.Name,
		Description:           p.Description,
		Manufacturer:          p.Manufacturer,
		Supplier:              p.Supplier,
		Category:              p.Category,
		Unit:                  p.Unit,
		CostPrice:             p.CostPrice,
		SellingPrice:          p.SellingPrice,
		ReorderLevel:          p.ReorderLevel,
		ReorderQuantity:       p.ReorderQuantity,
		LotNumber:             p.LotNumber,
		ExpirationDate:        TruncateDate(p.ExpirationDate),
		Location:              p.Location,
		RequiresPrescription:  p.RequiresPrescription,
		IsControlledSubstance: p.IsControlledSubstance,
		IsActive:              true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}, nil
}

// ItemPatch is a partial update of descriptive, pricing and threshold fields.
// Nil fields are left unchanged. The balance and the active flag are not
// reachable through a patch.
type ItemPatch struct {
	Name                  *string
	Description           *string
	Manufacturer          *string
	Supplier              *string
	Category              *Category
	Unit                  *Unit
	CostPrice             *decimal.Decimal
	SellingPrice          *decimal.Decimal
	ReorderLevel          *int
	ReorderQuantity       *int
	LotNumber             *string
	ExpirationDate        *time.Time
	ClearExpirationDate   bool
	Location              *string
	RequiresPrescription  *bool
	IsControlledSubstance *bool
}

// Apply copies the set fields of p onto item and bumps UpdatedAt.
func (p ItemPatch) Apply(item *Item) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Manufacturer != nil {
		item.Manufacturer = *p.Manufacturer
	}
	if p.Supplier != nil {
		item.Supplier = *p.Supplier
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Unit != nil {
		item.Unit = *p.Unit
	}
	if p.CostPrice != nil {
		item.CostPrice = *p.CostPrice
	}
	if p.SellingPrice != nil {
		item.SellingPrice = *p.SellingPrice
	}
	if p.ReorderLevel != nil {
		item.ReorderLevel = *p.ReorderLevel
	}
	if p.ReorderQuantity != nil {
		item.ReorderQuantity = *p.ReorderQuantity
	}
	if p.LotNumber != nil {
		item.LotNumber = *p.LotNumber
	}
	switch {
	case p.ClearExpirationDate:
		item.ExpirationDate = nil
	case p.ExpirationDate != nil:
		item.ExpirationDate = TruncateDate(p.ExpirationDate)
	}
	if p.Location != nil {
		item.Location = *p.Location
	}
	if p.RequiresPrescription != nil {
		item.RequiresPrescription = *p.RequiresPrescription
	}
	if p.IsControlledSubstance != nil {
		item.IsControlledSubstance = *p.IsControlledSubstance
	}
	item.UpdatedAt = time.Now().UTC()
}

// TruncateDate drops the time-of-day component, returning UTC midnight.
func TruncateDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	d := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
