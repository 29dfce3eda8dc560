package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/vetclinic/pkg/logger"
	"github.com/ghuser/vetclinic/services/inventory/domain"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrItemNotFound", domain.ErrItemNotFound, http.StatusNotFound},
		{"ErrDuplicateSKU", domain.ErrDuplicateSKU, http.StatusConflict},
		{"ErrIdempotencyConflict", domain.ErrIdempotencyConflict, http.StatusConflict},
		{"ErrInvalidItem", fmt.Errorf("%w: bad unit", domain.ErrInvalidItem), http.StatusBadRequest},
		{"ErrInvalidTransaction", domain.ErrInvalidTransaction, http.StatusBadRequest},
		{"ErrBalanceNotEditable", domain.ErrBalanceNotEditable, http.StatusBadRequest},
		{"StockError insufficient", &domain.StockError{Kind: domain.ErrInsufficientStock, Available: 1, Requested: 2}, http.StatusBadRequest},
		{"StockError adjustment", &domain.StockError{Kind: domain.ErrNegativeAdjustment, Available: 1, Requested: -2}, http.StatusBadRequest},
		{"ErrLedgerUnavailable wrapped", fmt.Errorf("%w: lock timeout", domain.ErrLedgerUnavailable), http.StatusServiceUnavailable},
		{"wrapped ErrItemNotFound", fmt.Errorf("get item: %w", domain.ErrItemNotFound), http.StatusNotFound},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.err); got != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, got)
			}
		})
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	return body
}

func TestResponder_StockErrorBody(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/items/transactions", http.NoBody)
	err := fmt.Errorf("apply: %w", &domain.StockError{Kind: domain.ErrInsufficientStock, Available: 12, Requested: 20})

	NewResponder(false, logger.Nop()).Write(w, r, err)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	body := decode(t, w)
	if body["error"] != "Insufficient stock. Available: 12, Requested: 20" {
		t.Fatalf("unexpected message %v", body["error"])
	}
	if body["available"] != float64(12) || body["requested"] != float64(20) {
		t.Fatalf("unexpected detail %v", body)
	}
}

func TestResponder_MasksServerErrorsInProduction(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/items", http.NoBody)
	err := errors.New("pq: connection refused to 10.0.0.5")

	w := httptest.NewRecorder()
	NewResponder(true, logger.Nop()).Write(w, r, err)
	if got := decode(t, w)["error"]; got != http.StatusText(http.StatusInternalServerError) {
		t.Fatalf("expected masked message, got %v", got)
	}

	w = httptest.NewRecorder()
	NewResponder(false, logger.Nop()).Write(w, r, err)
	if got := decode(t, w)["error"]; got != err.Error() {
		t.Fatalf("expected raw message outside production, got %v", got)
	}
}

func TestResponder_UnavailableSetsRetryAfter(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/items/transactions", http.NoBody)
	NewResponder(true, logger.Nop()).Write(w, r, domain.ErrLedgerUnavailable)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
	if ct := w.Header().Get("Content-Type"); ct == "" {
		t.Fatal("Content-Type header not set")
	}
}
