package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgcache "github.com/ghuser/vetclinic/pkg/cache"
	"github.com/ghuser/vetclinic/services/inventory/domain/models"
)

func validRegisterParams(sku string) models.NewItemParams {
	return models.NewItemParams{
		SKU:          sku,
		Name:         "Item " + sku,
		Category:     models.CategoryVaccine,
		Unit:         models.UnitDose,
		CostPrice:    decimal.RequireFromString("12.40"),
		SellingPrice: decimal.RequireFromString("25.00"),
		ReorderLevel: 1,
	}
}

func TestCachedItemConversion(t *testing.T) {
	exp := time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC)
	item := &models.Item{
		ID:             uuid.New(),
		SKU:            "VAC-DHPP",
		Name:           "DHPP vaccine",
		Category:       models.CategoryVaccine,
		Unit:           models.UnitDose,
		CostPrice:      decimal.RequireFromString("12.40"),
		SellingPrice:   decimal.RequireFromString("25.00"),
		QuantityOnHand: 9,
		ReorderLevel:   4,
		ExpirationDate: &exp,
		IsActive:       true,
		Version:        3,
		CreatedAt:      time.Date(2026, 10, 1, 8, 0, 0, 123, time.UTC),
		UpdatedAt:      time.Date(2026, 10, 2, 8, 0, 0, 0, time.UTC),
	}

	got, err := fromCached(toCached(item))
	if err != nil {
		t.Fatalf("fromCached: %v", err)
	}
	if got.ID != item.ID || got.QuantityOnHand != 9 || got.Version != 3 {
		t.Errorf("identity fields lost: %+v", got)
	}
	if !got.CostPrice.Equal(item.CostPrice) || !got.CreatedAt.Equal(item.CreatedAt) {
		t.Errorf("price or timestamp lost: %s %v", got.CostPrice, got.CreatedAt)
	}
	if got.ExpirationDate == nil || !got.ExpirationDate.Equal(exp) {
		t.Errorf("expiration = %v, want %v", got.ExpirationDate, exp)
	}
}

func TestFromCached_Corrupt(t *testing.T) {
	if _, err := fromCached(&pkgcache.CachedItem{ID: "not-a-uuid"}); err == nil {
		t.Error("expected error for corrupt entry")
	}
}
