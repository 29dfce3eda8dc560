// Package services contains stateless domain services for the inventory bounded
// context. They operate purely on domain types and have no external dependencies
// beyond the domain layer.
package services

import (
	"fmt"

	"github.com/ghuser/vetclinic/services/inventory/domain"
	"github.com/ghuser/vetclinic/services/inventory/domain/models"
)

// ComputeBalance applies one movement of typ and quantity to current and
// returns the resulting balance and the signed delta.
//
// Inbound types add |quantity|, outbound types subtract |quantity| and fail
// with ErrInsufficientStock below zero, bidirectional types add the signed
// quantity and fail with ErrNegativeAdjustment below zero. A zero quantity or
// unknown type is ErrInvalidTransaction, as is a quantity or resulting
// balance outside ±models.MaxQuantity.
func ComputeBalance(current int, typ models.TransactionType, quantity int) (int, int, error) {
	if quantity == 0 {
		return 0, 0, fmt.Errorf("%w: quantity must not be zero", domain.ErrInvalidTransaction)
	}
	if !models.QuantityInRange(quantity) {
		return 0, 0, fmt.Errorf("%w: quantity must be within ±%d", domain.ErrInvalidTransaction, models.MaxQuantity)
	}
	if current < 0 || current > models.MaxQuantity {
		return 0, 0, fmt.Errorf("%w: current balance %d out of range", domain.ErrInvalidTransaction, current)
	}

	effect := typ.Effect()
	delta := effect.Delta(quantity)
	next := current + delta

	if next > models.MaxQuantity {
		return 0, 0, fmt.Errorf("%w: balance would exceed %d", domain.ErrInvalidTransaction, models.MaxQuantity)
	}

	switch effect {
	case models.EffectInbound:
		if next < 0 {
			return 0, 0, &domain.StockError{Kind: domain.ErrInsufficientStock, Available: current, Requested: delta}
		}
		return next, delta, nil
	case models.EffectOutbound:
		if next < 0 {
			return 0, 0, &domain.StockError{Kind: domain.ErrInsufficientStock, Available: current, Requested: -delta}
		}
		return next, delta, nil
	case models.EffectBidirectional:
		if next < 0 {
			return 0, 0, &domain.StockError{Kind: domain.ErrNegativeAdjustment, Available: current, Requested: quantity}
		}
		return next, delta, nil
	default:
		return 0, 0, fmt.Errorf("%w: unknown transaction type %q", domain.ErrInvalidTransaction, typ)
	}
}

// CrossedReorderLevel reports whether a balance change from before to after
// moved the item into low stock.
func CrossedReorderLevel(before, after, reorderLevel int) bool {
	return before > reorderLevel && after <= reorderLevel
}
