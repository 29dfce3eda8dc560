package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ghuser/vetclinic/pkg/logger"
	"github.com/ghuser/vetclinic/services/inventory/domain/models"
	"github.com/ghuser/vetclinic/services/inventory/domain/repositories"
)

// ReconciliationService replays each item's ledger and compares the result
// with the stored balance. It reports drift and never corrects it.
type ReconciliationService struct {
	items   repositories.ItemRepository
	ledger  repositories.LedgerRepository
	metrics *LedgerMetrics
	log     logger.Logger
}

// NewReconciliationService returns a ReconciliationService. metrics may be nil.
func NewReconciliationService(items repositories.ItemRepository, ledger repositories.LedgerRepository, metrics *LedgerMetrics, log logger.Logger) *ReconciliationService {
	return &ReconciliationService{items: items, ledger: ledger, metrics: metrics, log: log}
}

// Run checks every item, active or not.
func (s *ReconciliationService) Run(ctx context.Context) (*models.ReconciliationReport, error) {
	report := &models.ReconciliationReport{
		StartedAt:  time.Now().UTC(),
		Mismatches: []models.ReconciliationMismatch{},
	}

	items, err := s.items.ListAll(ctx, repositories.ItemFilter{})
	if err != nil {
		return nil, fmt.Errorf("reconcile list items: %w", err)
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		history, err := s.ledger.History(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("reconcile %s: %w", item.SKU, err)
		}
		report.ItemsChecked++

		replay := models.ReplayBalance(history)
		if replay.Balance == item.QuantityOnHand && replay.BrokenAt == nil {
			continue
		}
		m := models.ReconciliationMismatch{
			ItemID:           item.ID,
			SKU:              item.SKU,
			RecordedBalance:  item.QuantityOnHand,
			ReplayedBalance:  replay.Balance,
			TransactionCount: replay.Count,
			BrokenAt:         replay.BrokenAt,
		}
		report.Mismatches = append(report.Mismatches, m)
		s.log.WarnContext(ctx, "ledger mismatch",
			"item_id", m.ItemID,
			"sku", m.SKU,
			"recorded_balance", m.RecordedBalance,
			"replayed_balance", m.ReplayedBalance,
			"transaction_count", m.TransactionCount,
			"broken_at", m.BrokenAt,
		)
	}

	report.FinishedAt = time.Now().UTC()
	s.metrics.observeReconciliation(ctx, len(report.Mismatches))
	s.log.InfoContext(ctx, "reconciliation finished",
		"items_checked", report.ItemsChecked,
		"mismatches", len(report.Mismatches),
		"duration_ms", report.FinishedAt.Sub(report.StartedAt).Milliseconds(),
	)
	return report, nil
}
