package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/vetclinic/services/inventory/domain/models"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid name", "Rabies Vaccine 1ml", false},
		{"valid with punctuation", "Meloxicam 1.5mg/ml (oral)", false},
		{"empty", "", true},
		{"only whitespace", "   ", true},
		{"leading whitespace", " Name", true},
		{"trailing whitespace", "Name ", true},
		{"tab character", "Name\tName", true},
		{"null byte", "Name\x00", true},
		{"consecutive spaces", "Item  Name", true},
		{"max length", strings.Repeat("a", 255), false},
		{"too long", strings.Repeat("a", 256), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateName(%q) error = %v, wantErr = %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateItem(t *testing.T) {
	valid := func() *models.Item {
		return &models.Item{
			ID:           uuid.New(),
			SKU:          "VAC-RAB-1",
			Name:         "Rabies Vaccine",
			Category:     models.CategoryVaccine,
			Unit:         models.UnitVial,
			CostPrice:    decimal.RequireFromString("4.10"),
			SellingPrice: decimal.RequireFromString("18.00"),
			ReorderLevel: 5,
		}
	}

	t.Run("nil item", func(t *testing.T) {
		if err := ValidateItem(nil); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("valid item", func(t *testing.T) {
		if err := ValidateItem(valid()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	mutations := map[string]func(*models.Item){
		"zero id":                   func(i *models.Item) { i.ID = uuid.Nil },
		"empty sku":                 func(i *models.Item) { i.SKU = "" },
		"bad name":                  func(i *models.Item) { i.Name = " x" },
		"unknown category":          func(i *models.Item) { i.Category = "TOY" },
		"unknown unit":              func(i *models.Item) { i.Unit = "GALLON" },
		"negative cost":             func(i *models.Item) { i.CostPrice = decimal.RequireFromString("-0.01") },
		"negative selling price":    func(i *models.Item) { i.SellingPrice = decimal.RequireFromString("-1") },
		"negative reorder level":    func(i *models.Item) { i.ReorderLevel = -1 },
		"negative reorder qty":      func(i *models.Item) { i.ReorderQuantity = -1 },
		"negative quantity on hand": func(i *models.Item) { i.QuantityOnHand = -1 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			item := valid()
			mutate(item)
			if err := ValidateItem(item); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
