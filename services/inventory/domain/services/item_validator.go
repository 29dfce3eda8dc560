package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/ghuser/vetclinic/services/inventory/domain/models"
)

const maxNameLength = 255

// ValidateName enforces business rules for item names.
//
// Business rules:
//   - Length 1..255 characters
//   - No leading or trailing whitespace
//   - No control characters (Unicode category Cc)
//   - No consecutive spaces
func ValidateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("name must not be empty")
	}
	if len([]rune(s)) > maxNameLength {
		return fmt.Errorf("name must be at most %d characters", maxNameLength)
	}
	if s != strings.TrimSpace(s) {
		return fmt.Errorf("name must not have leading or trailing whitespace")
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return fmt.Errorf("name must not contain control characters")
		}
	}
	if strings.Contains(s, "  ") {
		return fmt.Errorf("name must not contain consecutive spaces")
	}
	return nil
}

// ValidateItem checks catalog field rules that span the whole aggregate.
// It is used both on registration and after a patch is applied.
func ValidateItem(item *models.Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}
	if item.ID == uuid.Nil {
		return fmt.Errorf("id must be set")
	}
	if _, err := models.NewSKU(item.SKU.String()); err != nil {
		return fmt.Errorf("invalid sku: %w", err)
	}
	if err := ValidateName(item.Name); err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}
	if !item.Category.Valid() {
		return fmt.Errorf("unknown category %q", item.Category)
	}
	if !item.Unit.Valid() {
		return fmt.Errorf("unknown unit %q", item.Unit)
	}
	if item.CostPrice.IsNegative() {
		return fmt.Errorf("cost price must not be negative")
	}
	if item.SellingPrice.IsNegative() {
		return fmt.Errorf("selling price must not be negative")
	}
	if item.ReorderLevel < 0 {
		return fmt.Errorf("reorder level must not be negative")
	}
	if item.ReorderQuantity < 0 {
		return fmt.Errorf("reorder quantity must not be negative")
	}
	if item.QuantityOnHand < 0 {
		return fmt.Errorf("quantity on hand must not be negative")
	}
	if item.ReorderLevel > models.MaxQuantity || item.ReorderQuantity > models.MaxQuantity || item.QuantityOnHand > models.MaxQuantity {
		return fmt.Errorf("quantities must be at most %d", models.MaxQuantity)
	}
	return nil
}
