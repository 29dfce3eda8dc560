package services

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ghuser/vetclinic/services/inventory/domain"
)

// LedgerMetrics holds the OTel instruments for the ledger and reconciliation.
type LedgerMetrics struct {
	recorded   metric.Int64Counter
	rejected   metric.Int64Counter
	duration   metric.Float64Histogram
	mismatches metric.Int64Gauge
}

// NewLedgerMetrics registers the inventory instruments on meter.
func NewLedgerMetrics(meter metric.Meter) (*LedgerMetrics, error) {
	recorded, err := meter.Int64Counter("inventory_ledger_transactions_total",
		metric.WithDescription("Ledger records committed, by transaction type."))
	if err != nil {
		return nil, err
	}
	rejected, err := meter.Int64Counter("inventory_ledger_rejections_total",
		metric.WithDescription("Ledger requests rejected, by reason."))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("inventory_ledger_apply_duration_seconds",
		metric.WithDescription("Time spent in one ledger apply, including lock wait."),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}
	mismatches, err := meter.Int64Gauge("inventory_reconciliation_mismatches",
		metric.WithDescription("Items whose balance disagreed with the ledger in the last reconciliation."))
	if err != nil {
		return nil, err
	}
	return &LedgerMetrics{recorded: recorded, rejected: rejected, duration: duration, mismatches: mismatches}, nil
}

func (m *LedgerMetrics) observeApply(ctx context.Context, txType string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attribute.String("type", txType)))
	if err != nil {
		m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", rejectionReason(err))))
		return
	}
	m.recorded.Add(ctx, 1, metric.WithAttributes(attribute.String("type", txType)))
}

func (m *LedgerMetrics) observeReconciliation(ctx context.Context, mismatches int) {
	if m == nil {
		return
	}
	m.mismatches.Record(ctx, int64(mismatches))
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrNegativeAdjustment):
		return "negative_adjustment"
	case errors.Is(err, domain.ErrInvalidTransaction):
		return "invalid"
	case errors.Is(err, domain.ErrItemNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrIdempotencyConflict):
		return "idempotency_conflict"
	case errors.Is(err, domain.ErrLedgerUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
