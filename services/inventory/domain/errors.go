package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the inventory domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrDuplicateSKU indicates an item with the same SKU is already registered.
	ErrDuplicateSKU = errors.New("sku already exists")

	// ErrInvalidItem indicates item fields violate catalog constraints.
	ErrInvalidItem = errors.New("invalid item")

	// ErrBalanceNotEditable indicates a caller tried to write quantity_on_hand
	// outside the ledger.
	ErrBalanceNotEditable = errors.New("quantity_on_hand is derived from the ledger and cannot be edited")

	// ErrInvalidTransaction indicates a malformed ledger request.
	ErrInvalidTransaction = errors.New("invalid transaction")

	// ErrInsufficientStock indicates an outbound movement would drive the balance below zero.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrNegativeAdjustment indicates an adjustment or transfer would drive the balance below zero.
	ErrNegativeAdjustment = errors.New("negative adjustment")

	// ErrIdempotencyConflict indicates an idempotency key was reused for a different request.
	ErrIdempotencyConflict = errors.New("idempotency key already used for a different request")

	// ErrLedgerUnavailable indicates the ledger could not lock the item or timed out.
	// The whole unit was rolled back.
	ErrLedgerUnavailable = errors.New("ledger temporarily unavailable")
)

// StockError is returned when a ledger movement would break the
// rule that a balance never goes negative. It unwraps to ErrInsufficientStock or
// ErrNegativeAdjustment.
type StockError struct {
	Kind      error
	Available int
	Requested int
}

func (e *StockError) Error() string {
	if errors.Is(e.Kind, ErrNegativeAdjustment) {
		return fmt.Sprintf("Adjustment would result in negative stock. Available: %d, Adjustment: %d", e.Available, e.Requested)
	}
	return fmt.Sprintf("Insufficient stock. Available: %d, Requested: %d", e.Available, e.Requested)
}

func (e *StockError) Unwrap() error {
	return e.Kind
}
