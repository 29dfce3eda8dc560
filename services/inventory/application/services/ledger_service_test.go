package services

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/vetclinic/pkg/logger"
	"github.com/ghuser/vetclinic/services/inventory/domain"
	"github.com/ghuser/vetclinic/services/inventory/domain/models"
	"github.com/ghuser/vetclinic/services/inventory/infrastructure/persistence/memory"
)

type fixture struct {
	store   *memory.Store
	cache   *memCache
	svcs    *Services
	ctx     context.Context
	itemFor func(t *testing.T, sku string, reorderLevel, opening int) *models.Item
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	cache := newMemCache()
	f := &fixture{
		store: store,
		cache: cache,
		svcs:  NewServices(store, store, cache, nil, logger.Nop()),
		ctx:   context.Background(),
	}
	f.itemFor = func(t *testing.T, sku string, reorderLevel, opening int) *models.Item {
		t.Helper()
		var stock *OpeningStock
		if opening > 0 {
			stock = &OpeningStock{Quantity: opening}
		}
		item, err := f.svcs.Catalog.Register(f.ctx, models.NewItemParams{
			SKU:          sku,
			Name:         "Item " + sku,
			Category:     models.CategoryMedication,
			Unit:         models.UnitTablet,
			CostPrice:    decimal.RequireFromString("1.50"),
			SellingPrice: decimal.RequireFromString("3.00"),
			ReorderLevel: reorderLevel,
		}, stock)
		if err != nil {
			t.Fatalf("register %s: %v", sku, err)
		}
		return item
	}
	return f
}

func (f *fixture) balance(t *testing.T, id uuid.UUID) int {
	t.Helper()
	item, err := f.store.GetByID(f.ctx, id)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	return item.QuantityOnHand
}

func (f *fixture) assertReplayable(t *testing.T, id uuid.UUID) {
	t.Helper()
	history, _ := f.store.History(f.ctx, id)
	replay := models.ReplayBalance(history)
	if got := f.balance(t, id); replay.Balance != got || replay.BrokenAt != nil {
		t.Fatalf("ledger replays to %d (broken at %v), stored balance %d", replay.Balance, replay.BrokenAt, got)
	}
}

func TestLedgerService_LowStockScenario(t *testing.T) {
	f := newFixture(t)
	item := f.itemFor(t, "AMOX-250", 10, 0)

	if _, err := f.svcs.Ledger.Restock(f.ctx, RestockRequest{ItemID: item.ID, Quantity: 50}); err != nil {
		t.Fatalf("restock: %v", err)
	}
	if got := f.balance(t, item.ID); got != 50 {
		t.Fatalf("balance after restock = %d, want 50", got)
	}
	low, _ := f.svcs.Alerts.LowStock(f.ctx)
	if len(low) != 0 {
		t.Fatalf("expected no low stock items, got %d", len(low))
	}

	rec, err := f.svcs.Ledger.Dispense(f.ctx, DispenseRequest{ItemID: item.ID, Quantity: 45})
	if err != nil {
		t.Fatalf("dispense: %v", err)
	}
	if rec.QuantityAfter != 5 {
		t.Errorf("quantity_after = %d, want 5", rec.QuantityAfter)
	}
	low, _ = f.svcs.Alerts.LowStock(f.ctx)
	if len(low) != 1 || low[0].ID != item.ID {
		t.Fatalf("expected item in low stock list, got %v", low)
	}
	f.assertReplayable(t, item.ID)
}

func TestLedgerService_InsufficientStockLeavesNoTrace(t *testing.T) {
	f := newFixture(t)
	item := f.itemFor(t, "MELOX-1", 0, 10)
	before := f.store.Count(item.ID)

	_, err := f.svcs.Ledger.Dispense(f.ctx, DispenseRequest{ItemID: item.ID, Quantity: 1000})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	var se *domain.StockError
	if !errors.As(err, &se) || se.Available != 10 || se.Requested != 1000 {
		t.Fatalf("expected StockError{10, 1000}, got %#v", se)
	}
	if got := f.balance(t, item.ID); got != 10 {
		t.Errorf("balance = %d, want 10", got)
	}
	if got := f.store.Count(item.ID); got != before {
		t.Errorf("transaction count = %d, want %d", got, before)
	}
}

func TestLedgerService_NegativeAdjustmentRejected(t *testing.T) {
	f := newFixture(t)
	item := f.itemFor(t, "GAUZE-10", 0, 3)

	_, err := f.svcs.Ledger.Apply(f.ctx, models.ApplyCommand{ItemID: item.ID, Type: models.TxAdjustment, Quantity: -5})
	if !errors.Is(err, domain.ErrNegativeAdjustment) {
		t.Fatalf("expected ErrNegativeAdjustment, got %v", err)
	}
	if got := f.balance(t, item.ID); got != 3 {
		t.Errorf("balance = %d, want 3", got)
	}
}

func TestLedgerService_DispenseBoundary(t *testing.T) {
	f := newFixture(t)
	item := f.itemFor(t, "SYR-5ML", 0, 7)

	if _, err := f.svcs.Ledger.Dispense(f.ctx, DispenseRequest{ItemID: item.ID, Quantity: 8}); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("dispensing one more than available: got %v", err)
	}
	if got := f.balance(t, item.ID); got != 7 {
		t.Fatalf("balance = %d, want 7", got)
	}
	if _, err := f.svcs.Ledger.Dispense(f.ctx, DispenseRequest{ItemID: item.ID, Quantity: 7}); err != nil {
		t.Fatalf("dispensing exact balance: %v", err)
	}
	if got := f.balance(t, item.ID); got != 0 {
		t.Fatalf("balance = %d, want 0", got)
	}
	f.assertReplayable(t, item.ID)
}

func TestLedgerService_ConcurrentDispenseExactlyOneWins(t *testing.T) {
	f := newFixture(t)
	item := f.itemFor(t, "VAC-RAB", 0, 10)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svcs.Ledger.Dispense(f.ctx, DispenseRequest{ItemID: item.ID, Quantity: 6})
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || insufficient != 1 {
		t.Fatalf("ok=%d insufficient=%d, want 1 and 1", ok, insufficient)
	}
	if got := f.balance(t, item.ID); got != 4 {
		t.Fatalf("balance = %d, want 4", got)
	}
	f.assertReplayable(t, item.ID)
}

func TestLedgerService_ManyConcurrentMovementsStayConsistent(t *testing.T) {
	f := newFixture(t)
	item := f.itemFor(t, "FOOD-RC", 0, 100)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, _ = f.svcs.Ledger.Restock(f.ctx, RestockRequest{ItemID: item.ID, Quantity: 3})
				return
			}
			_, _ = f.svcs.Ledger.Dispense(f.ctx, DispenseRequest{ItemID: item.ID, Quantity: 5})
		}(i)
	}
	wg.Wait()

	if got := f.balance(t, item.ID); got < 0 {
		t.Fatalf("balance went negative: %d", got)
	}
	f.assertReplayable(t, item.ID)
}

func TestLedgerService_TypeEffects(t *testing.T) {
	tests := []struct {
		typ  models.TransactionType
		qty  int
		want int
	}{
		{models.TxPurchase, 5, 25},
		{models.TxReturn, 5, 25},
		{models.TxDispensed, 5, 15},
		{models.TxExpired, 5, 15},
		{models.TxDamaged, -5, 15},
		{models.TxAdjustment, -5, 15},
		{models.TxAdjustment, 5, 25},
		{models.TxTransfer, -20, 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			f := newFixture(t)
			item := f.itemFor(t, "FX-1", 0, 20)
			rec, err := f.svcs.Ledger.Apply(f.ctx, models.ApplyCommand{ItemID: item.ID, Type: tt.typ, Quantity: tt.qty})
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			if rec.QuantityAfter != tt.want {
				t.Errorf("quantity_after = %d, want %d", rec.QuantityAfter, tt.want)
			}
			if rec.PerformedByID != models.UnknownOperatorID {
				t.Errorf("performed_by = %s, want unknown operator", rec.PerformedByID)
			}
		})
	}
}

func TestLedgerService_ValidationErrors(t *testing.T) {
	f := newFixture(t)
	item := f.itemFor(t, "VAL-1", 0, 5)
	negative := decimal.NewFromInt(-1)
	long := make([]byte, maxIdempotencyKeyLength+1)
	for i := range long {
		long[i] = 'k'
	}

	tests := []struct {
		name string
		cmd  models.ApplyCommand
	}{
		{"nil item", models.ApplyCommand{Type: models.TxPurchase, Quantity: 1}},
		{"unknown type", models.ApplyCommand{ItemID: item.ID, Type: "GIFT", Quantity: 1}},
		{"zero quantity", models.ApplyCommand{ItemID: item.ID, Type: models.TxAdjustment}},
		{"negative cost", models.ApplyCommand{ItemID: item.ID, Type: models.TxPurchase, Quantity: 1, UnitCost: &negative}},
		{"long key", models.ApplyCommand{ItemID: item.ID, Type: models.TxPurchase, Quantity: 1, IdempotencyKey: string(long)}},
		{"MinInt64 purchase", models.ApplyCommand{ItemID: item.ID, Type: models.TxPurchase, Quantity: math.MinInt64}},
		{"MaxInt64 adjustment", models.ApplyCommand{ItemID: item.ID, Type: models.TxAdjustment, Quantity: math.MaxInt64}},
		{"beyond INTEGER", models.ApplyCommand{ItemID: item.ID, Type: models.TxPurchase, Quantity: 1 << 32}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svcs.Ledger.Apply(f.ctx, tt.cmd); !errors.Is(err, domain.ErrInvalidTransaction) {
				t.Errorf("expected ErrInvalidTransaction, got %v", err)
			}
		})
	}
	if _, err := f.svcs.Ledger.Dispense(f.ctx, DispenseRequest{ItemID: item.ID, Quantity: -2}); !errors.Is(err, domain.ErrInvalidTransaction) {
		t.Errorf("negative dispense: expected ErrInvalidTransaction, got %v", err)
	}
	if got := f.store.Count(item.ID); got != 1 {
		t.Errorf("transaction count = %d, want only the opening record", got)
	}
	if got, _ := f.store.GetByID(f.ctx, item.ID); got.QuantityOnHand != 5 {
		t.Errorf("balance = %d, want 5", got.QuantityOnHand)
	}
}

func TestLedgerService_BalanceCeiling(t *testing.T) {
	f := newFixture(t)
	item := f.itemFor(t, "CEIL-1", 0, 10)

	if _, err := f.svcs.Ledger.Apply(f.ctx, models.ApplyCommand{ItemID: item.ID, Type: models.TxPurchase, Quantity: models.MaxQuantity - 10}); err != nil {
		t.Fatalf("purchase to the ceiling: %v", err)
	}
	_, err := f.svcs.Ledger.Apply(f.ctx, models.ApplyCommand{ItemID: item.ID, Type: models.TxReturn, Quantity: 1})
	if !errors.Is(err, domain.ErrInvalidTransaction) {
		t.Fatalf("expected ErrInvalidTransaction past the ceiling, got %v", err)
	}
	got, _ := f.store.GetByID(f.ctx, item.ID)
	if got.QuantityOnHand != models.MaxQuantity {
		t.Errorf("balance = %d, want %d", got.QuantityOnHand, models.MaxQuantity)
	}
	if n := f.store.Count(item.ID); n != 2 {
		t.Errorf("transaction count = %d, want 2", n)
	}
	f.assertReplayable(t, item.ID)
}

func TestLedgerService_UnknownItem(t *testing.T) {
	f := newFixture(t)
	_, err := f.svcs.Ledger.Dispense(f.ctx, DispenseRequest{ItemID: uuid.New(), Quantity: 1})
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	if _, err := f.svcs.Ledger.Transactions(f.ctx, uuid.New(), defaultOpts); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("transactions: expected ErrItemNotFound, got %v", err)
	}
}

func TestLedgerService_IdempotencyKey(t *testing.T) {
	f := newFixture(t)
	item := f.itemFor(t, "IDEM-1", 0, 10)
	other := f.itemFor(t, "IDEM-2", 0, 10)

	req := DispenseRequest{ItemID: item.ID, Quantity: 2, IdempotencyKey: "visit-42-line-1"}
	first, err := f.svcs.Ledger.Dispense(f.ctx, req)
	if err != nil {
		t.Fatalf("first dispense: %v", err)
	}
	again, err := f.svcs.Ledger.Dispense(f.ctx, req)
	if err != nil {
		t.Fatalf("replayed dispense: %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("replay returned %s, want original %s", again.ID, first.ID)
	}
	if got := f.balance(t, item.ID); got != 8 {
		t.Errorf("balance = %d, want 8 (applied once)", got)
	}

	req.Quantity = 3
	if _, err := f.svcs.Ledger.Dispense(f.ctx, req); !errors.Is(err, domain.ErrIdempotencyConflict) {
		t.Errorf("different quantity: expected ErrIdempotencyConflict, got %v", err)
	}
	req.Quantity = 2
	req.ItemID = other.ID
	if _, err := f.svcs.Ledger.Dispense(f.ctx, req); !errors.Is(err, domain.ErrIdempotencyConflict) {
		t.Errorf("different item: expected ErrIdempotencyConflict, got %v", err)
	}
	if got := f.balance(t, other.ID); got != 10 {
		t.Errorf("other balance = %d, want 10", got)
	}
}

func TestLedgerService_RefreshesCache(t *testing.T) {
	f := newFixture(t)
	item := f.itemFor(t, "CACHE-1", 0, 10)

	if _, err := f.svcs.Catalog.Get(f.ctx, item.ID); err != nil {
		t.Fatalf("warm cache: %v", err)
	}
	if _, err := f.svcs.Ledger.Dispense(f.ctx, DispenseRequest{ItemID: item.ID, Quantity: 4}); err != nil {
		t.Fatalf("dispense: %v", err)
	}
	got, err := f.svcs.Catalog.Get(f.ctx, item.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.QuantityOnHand != 6 {
		t.Errorf("cached balance = %d, want 6", got.QuantityOnHand)
	}
}

func TestLedgerService_UnavailableLeavesBalance(t *testing.T) {
	f := newFixture(t)
	item := f.itemFor(t, "LOCK-1", 0, 10)
	f.store.ApplyErr = domain.ErrLedgerUnavailable

	_, err := f.svcs.Ledger.Dispense(f.ctx, DispenseRequest{ItemID: item.ID, Quantity: 1})
	if !errors.Is(err, domain.ErrLedgerUnavailable) {
		t.Fatalf("expected ErrLedgerUnavailable, got %v", err)
	}
	if got := f.balance(t, item.ID); got != 10 {
		t.Errorf("balance = %d, want 10", got)
	}
}

func TestLedgerService_TransactionsNewestFirst(t *testing.T) {
	f := newFixture(t)
	item := f.itemFor(t, "HIST-1", 0, 10)
	for i := 0; i < 3; i++ {
		if _, err := f.svcs.Ledger.Dispense(f.ctx, DispenseRequest{ItemID: item.ID, Quantity: 1}); err != nil {
			t.Fatalf("dispense: %v", err)
		}
	}

	page, err := f.svcs.Ledger.Transactions(f.ctx, item.ID, defaultOpts)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if page.Total != 4 || len(page.Items) != 4 {
		t.Fatalf("total=%d len=%d, want 4", page.Total, len(page.Items))
	}
	if page.Items[0].QuantityAfter != 7 || page.Items[3].Type != models.TxPurchase {
		t.Errorf("unexpected order: first after=%d, last type=%s", page.Items[0].QuantityAfter, page.Items[3].Type)
	}
	for i := 1; i < len(page.Items); i++ {
		if page.Items[i-1].Seq < page.Items[i].Seq {
			t.Fatalf("records not in reverse order at %d", i)
		}
	}
}
