package postgres

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/vetclinic/services/inventory/domain/models"
	"github.com/ghuser/vetclinic/services/inventory/domain/repositories"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct{ in, want string }{
		{"amox", "amox"},
		{"50%", `50\%`},
		{"a_b", `a\_b`},
		{`c:\x`, `c:\\x`},
	}
	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFilterToParams(t *testing.T) {
	cat := models.CategoryVaccine
	active := false
	p := filterToParams(repositories.ItemFilter{Search: "  rabies ", Category: &cat, LowStock: true, Active: &active})

	if p.Search != "rabies" {
		t.Errorf("search not trimmed: %q", p.Search)
	}
	if !p.Category.Valid || p.Category.String != "VACCINE" {
		t.Errorf("category: %+v", p.Category)
	}
	if !p.LowStock {
		t.Error("expected low stock flag")
	}
	if !p.Active.Valid || p.Active.Bool {
		t.Errorf("active: %+v", p.Active)
	}

	empty := filterToParams(repositories.ItemFilter{})
	if empty.Category.Valid || empty.Active.Valid {
		t.Error("zero filter must not constrain category or active")
	}
}

func TestTransactionParamsRoundTrip(t *testing.T) {
	cost := decimal.RequireFromString("2.50")
	patient := uuid.New()
	in := &models.Transaction{
		ID:             uuid.New(),
		ItemID:         uuid.New(),
		Type:           models.TxDispensed,
		Quantity:       3,
		QuantityAfter:  7,
		UnitCost:       &cost,
		PatientID:      &patient,
		PerformedByID:  models.UnknownOperatorID,
		IdempotencyKey: "k-1",
		CreatedAt:      time.Now().UTC(),
	}

	p, err := transactionToParams(in)
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	if p.Quantity != 3 || p.QuantityAfter != 7 {
		t.Errorf("quantities: %d/%d", p.Quantity, p.QuantityAfter)
	}
	if p.VisitID.Valid {
		t.Error("absent visit must map to NULL")
	}
	if !p.IdempotencyKey.Valid || p.IdempotencyKey.String != "k-1" {
		t.Errorf("idempotency key: %+v", p.IdempotencyKey)
	}

	if empty, _ := transactionToParams(&models.Transaction{}); empty.IdempotencyKey.Valid || empty.UnitCost.Valid {
		t.Error("empty optional fields must map to NULL")
	}

	in.Quantity = 1<<32 + 50
	if _, err := transactionToParams(in); err == nil {
		t.Error("quantity beyond INTEGER range must not be truncated")
	}
	in.Quantity, in.QuantityAfter = 3, -1<<40
	if _, err := transactionToParams(in); err == nil {
		t.Error("balance beyond INTEGER range must not be truncated")
	}
}

func TestToInt4(t *testing.T) {
	tests := []struct {
		in      int
		wantErr bool
	}{
		{0, false},
		{math.MaxInt32, false},
		{-math.MaxInt32, false},
		{math.MaxInt32 + 1, true},
		{math.MinInt64, true},
	}
	for _, tt := range tests {
		got, err := toInt4("quantity", tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("toInt4(%d) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err == nil && int(got) != tt.in {
			t.Errorf("toInt4(%d) = %d", tt.in, got)
		}
	}
}

func TestNullDate(t *testing.T) {
	if nullDate(nil).Valid {
		t.Fatal("nil date must be NULL")
	}
	ts := time.Date(2027, 5, 6, 18, 45, 0, 0, time.UTC)
	nd := nullDate(&ts)
	if !nd.Valid || nd.Time.Hour() != 0 || nd.Time.Day() != 6 {
		t.Fatalf("expected truncated date, got %+v", nd)
	}
}
