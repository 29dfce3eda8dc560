package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/vetclinic/pkg/logger"
	"github.com/ghuser/vetclinic/services/inventory/domain"
	"github.com/ghuser/vetclinic/services/inventory/domain/models"
	"github.com/ghuser/vetclinic/services/inventory/domain/repositories"
	domainsvcs "github.com/ghuser/vetclinic/services/inventory/domain/services"
)

const maxIdempotencyKeyLength = 255

// LedgerService is the only writer of item balances. Every movement is
// appended to the transaction log together with the new balance, serialized
// per item by the repository's row lock.
type LedgerService struct {
	ledger  repositories.LedgerRepository
	cache   ItemCache
	metrics *LedgerMetrics
	log     logger.Logger
}

// NewLedgerService returns a LedgerService. cache and metrics may be nil.
func NewLedgerService(ledger repositories.LedgerRepository, cache ItemCache, metrics *LedgerMetrics, log logger.Logger) *LedgerService {
	return &LedgerService{ledger: ledger, cache: cache, metrics: metrics, log: log}
}

// DispenseRequest consumes stock for a treatment.
type DispenseRequest struct {
	ItemID         uuid.UUID
	Quantity       int
	PatientID      *uuid.UUID
	VisitID        *uuid.UUID
	PerformedByID  uuid.UUID
	Notes          string
	IdempotencyKey string
}

// RestockRequest records received stock.
type RestockRequest struct {
	ItemID         uuid.UUID
	Quantity       int
	UnitCost       *decimal.Decimal
	Reference      string
	PerformedByID  uuid.UUID
	IdempotencyKey string
}

// Apply records one stock movement. It is not retried internally: a failure
// leaves both the balance and the log untouched.
//
// When cmd carries an idempotency key that was already used for the same
// item, type and quantity, the original record is returned and nothing is
// written. Any other reuse of the key is ErrIdempotencyConflict.
func (s *LedgerService) Apply(ctx context.Context, cmd models.ApplyCommand) (*models.Transaction, error) {
	start := time.Now()
	rec, err := s.apply(ctx, cmd)
	s.metrics.observeApply(ctx, string(cmd.Type), start, err)
	return rec, err
}

func (s *LedgerService) apply(ctx context.Context, cmd models.ApplyCommand) (*models.Transaction, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	res, err := s.ledger.Apply(ctx, cmd.ItemID, cmd.IdempotencyKey, func(item *models.Item) (*models.Transaction, error) {
		next, _, err := domainsvcs.ComputeBalance(item.QuantityOnHand, cmd.Type, cmd.Quantity)
		if err != nil {
			return nil, err
		}
		return models.NewTransaction(cmd, next), nil
	})
	if err != nil {
		s.logRejection(ctx, cmd, err)
		return nil, fmt.Errorf("apply %s: %w", cmd.Type, err)
	}

	if res.Replayed {
		if !cmd.SameRequest(res.Transaction) {
			s.log.InfoContext(ctx, "idempotency key reused for a different request",
				"item_id", cmd.ItemID, "idempotency_key", cmd.IdempotencyKey)
			return nil, domain.ErrIdempotencyConflict
		}
		s.log.DebugContext(ctx, "idempotent replay", "transaction_id", res.Transaction.ID)
		return res.Transaction, nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, res.Item); err != nil {
			s.log.WarnContext(ctx, "item cache refresh failed", "item_id", cmd.ItemID, "error", err)
			if err := s.cache.Delete(ctx, cmd.ItemID); err != nil {
				s.log.WarnContext(ctx, "item cache invalidation failed", "item_id", cmd.ItemID, "error", err)
			}
		}
	}

	rec := res.Transaction
	s.log.InfoContext(ctx, "stock movement recorded",
		"transaction_id", rec.ID,
		"item_id", rec.ItemID,
		"type", rec.Type,
		"quantity", rec.Quantity,
		"quantity_before", res.PreviousBalance,
		"quantity_after", rec.QuantityAfter,
		"performed_by_id", rec.PerformedByID,
	)
	return rec, nil
}

// Dispense records a DISPENSED movement of a positive quantity.
func (s *LedgerService) Dispense(ctx context.Context, req DispenseRequest) (*models.Transaction, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: dispense quantity must be positive", domain.ErrInvalidTransaction)
	}
	return s.Apply(ctx, models.ApplyCommand{
		ItemID:         req.ItemID,
		Type:           models.TxDispensed,
		Quantity:       req.Quantity,
		PatientID:      req.PatientID,
		VisitID:        req.VisitID,
		PerformedByID:  req.PerformedByID,
		Notes:          req.Notes,
		IdempotencyKey: req.IdempotencyKey,
	})
}

// Restock records a PURCHASE movement of a positive quantity.
func (s *LedgerService) Restock(ctx context.Context, req RestockRequest) (*models.Transaction, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: restock quantity must be positive", domain.ErrInvalidTransaction)
	}
	return s.Apply(ctx, models.ApplyCommand{
		ItemID:         req.ItemID,
		Type:           models.TxPurchase,
		Quantity:       req.Quantity,
		UnitCost:       req.UnitCost,
		Reference:      req.Reference,
		PerformedByID:  req.PerformedByID,
		IdempotencyKey: req.IdempotencyKey,
	})
}

// Transactions returns an item's ledger newest first.
func (s *LedgerService) Transactions(ctx context.Context, itemID uuid.UUID, opts repositories.QueryOpts) (repositories.Page[*models.Transaction], error) {
	page, err := s.ledger.ListByItem(ctx, itemID, opts)
	if err != nil {
		return page, fmt.Errorf("list transactions: %w", err)
	}
	return page, nil
}

func validateCommand(cmd models.ApplyCommand) error {
	switch {
	case cmd.ItemID == uuid.Nil:
		return fmt.Errorf("%w: item id is required", domain.ErrInvalidTransaction)
	case !cmd.Type.Valid():
		return fmt.Errorf("%w: unknown transaction type %q", domain.ErrInvalidTransaction, cmd.Type)
	case cmd.Quantity == 0:
		return fmt.Errorf("%w: quantity must not be zero", domain.ErrInvalidTransaction)
	case !models.QuantityInRange(cmd.Quantity):
		return fmt.Errorf("%w: quantity must be within ±%d", domain.ErrInvalidTransaction, models.MaxQuantity)
	case len(cmd.IdempotencyKey) > maxIdempotencyKeyLength:
		return fmt.Errorf("%w: idempotency key exceeds %d characters", domain.ErrInvalidTransaction, maxIdempotencyKeyLength)
	case cmd.UnitCost != nil && cmd.UnitCost.IsNegative():
		return fmt.Errorf("%w: unit cost must not be negative", domain.ErrInvalidTransaction)
	}
	return nil
}

func (s *LedgerService) logRejection(ctx context.Context, cmd models.ApplyCommand, err error) {
	args := []any{"item_id", cmd.ItemID, "type", cmd.Type, "quantity", cmd.Quantity, "error", err}
	var se *domain.StockError
	switch {
	case errors.As(err, &se),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrInvalidTransaction),
		errors.Is(err, domain.ErrIdempotencyConflict):
		s.log.InfoContext(ctx, "stock movement rejected", args...)
	case errors.Is(err, domain.ErrLedgerUnavailable):
		s.log.WarnContext(ctx, "ledger unavailable", args...)
	default:
		s.log.ErrorContext(ctx, "stock movement failed", args...)
	}
}
