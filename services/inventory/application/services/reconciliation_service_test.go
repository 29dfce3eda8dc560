package services

import (
	"testing"

	"github.com/ghuser/vetclinic/services/inventory/domain/models"
)

func TestReconciliationService_Clean(t *testing.T) {
	f := newFixture(t)
	item := f.itemFor(t, "REC-1", 0, 10)
	if _, err := f.svcs.Ledger.Dispense(f.ctx, DispenseRequest{ItemID: item.ID, Quantity: 4}); err != nil {
		t.Fatalf("dispense: %v", err)
	}
	f.itemFor(t, "REC-2", 0, 0)

	report, err := f.svcs.Reconciliation.Run(f.ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.ItemsChecked != 2 || !report.Clean() {
		t.Errorf("report = %+v, want 2 clean items", report)
	}
}

func TestReconciliationService_ReportsDrift(t *testing.T) {
	f := newFixture(t)
	item := f.itemFor(t, "DRIFT-1", 0, 10)

	// Simulate a balance written outside the ledger.
	f.store.SetBalance(item.ID, 13)

	report, err := f.svcs.Reconciliation.Run(f.ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(report.Mismatches) != 1 {
		t.Fatalf("mismatches = %d, want 1", len(report.Mismatches))
	}
	m := report.Mismatches[0]
	if m.RecordedBalance != 13 || m.ReplayedBalance != 10 || m.TransactionCount != 1 {
		t.Errorf("mismatch = %+v", m)
	}
	if got := f.balance(t, item.ID); got != 13 {
		t.Errorf("reconciliation must not correct the balance, got %d", got)
	}
}

func TestReconciliationService_BrokenChain(t *testing.T) {
	f := newFixture(t)
	item := f.itemFor(t, "CHAIN-1", 0, 0)

	f.store.AppendRaw(&models.Transaction{ItemID: item.ID, Type: models.TxPurchase, Quantity: 5, QuantityAfter: 6})

	report, err := f.svcs.Reconciliation.Run(f.ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(report.Mismatches) != 1 || report.Mismatches[0].BrokenAt == nil {
		t.Fatalf("expected broken chain, got %+v", report.Mismatches)
	}
}
