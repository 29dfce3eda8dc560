package models

import (
	"time"

	"github.com/google/uuid"
)

// Replay is the result of folding an item's transaction log into a balance.
type Replay struct {
	Balance int
	Count   int
	// BrokenAt is the first record whose QuantityAfter disagrees with the
	// running balance, or nil when the chain is continuous.
	BrokenAt *uuid.UUID
}

// ReplayBalance left-folds txs (oldest first) into the balance they imply,
// starting from zero, and checks every QuantityAfter snapshot along the way.
func ReplayBalance(txs []*Transaction) Replay {
	var r Replay
	for _, tx := range txs {
		r.Balance += tx.Delta()
		r.Count++
		if r.BrokenAt == nil && tx.QuantityAfter != r.Balance {
			id := tx.ID
			r.BrokenAt = &id
		}
	}
	return r
}

// ReconciliationMismatch describes an item whose stored balance disagrees
// with its ledger, or whose ledger snapshots are discontinuous.
type ReconciliationMismatch struct {
	ItemID           uuid.UUID
	SKU              SKU
	RecordedBalance  int
	ReplayedBalance  int
	TransactionCount int
	BrokenAt         *uuid.UUID
}

// ReconciliationReport summarizes one reconciliation pass.
type ReconciliationReport struct {
	StartedAt    time.Time
	FinishedAt   time.Time
	ItemsChecked int
	Mismatches   []ReconciliationMismatch
}

// Clean reports whether the pass found no mismatches.
func (r *ReconciliationReport) Clean() bool {
	return len(r.Mismatches) == 0
}
