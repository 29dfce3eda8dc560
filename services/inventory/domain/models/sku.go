package models

import (
	"fmt"
	"strings"
)

// SKU is a value object holding a normalized stock-keeping unit code.
// Normalization trims surrounding whitespace and upper-cases the code, so
// "amx-250" and " AMX-250 " identify the same catalog item.
type SKU string

const (
	minSKULength = 1
	maxSKULength = 64
)

// NewSKU normalizes s and returns an error if the result violates SKU constraints:
// 1–64 characters drawn from A–Z, 0–9, '.', '_' and '-'.
func NewSKU(s string) (SKU, error) {
	n := strings.ToUpper(strings.TrimSpace(s))
	if len(n) < minSKULength {
		return "", fmt.Errorf("sku must be at least %d character", minSKULength)
	}
	if len(n) > maxSKULength {
		return "", fmt.Errorf("sku must not exceed %d characters", maxSKULength)
	}
	for _, r := range n {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
		default:
			return "", fmt.Errorf("sku contains invalid character %q", r)
		}
	}
	return SKU(n), nil
}

// String returns the underlying string value.
func (s SKU) String() string {
	return string(s)
}
