package httpx_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/vetclinic/pkg/httpx"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.JSON(w, http.StatusCreated, map[string]int{"quantity_on_hand": 12})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	var got map[string]int
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["quantity_on_hand"] != 12 {
		t.Errorf("body = %v", got)
	}
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.JSONError(w, http.StatusConflict, "SKU already registered")

	var got map[string]string
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w.Code != http.StatusConflict || got["error"] != "SKU already registered" {
		t.Errorf("got %d %v", w.Code, got)
	}
}

func TestSafeError(t *testing.T) {
	err := errors.New("pq: relation items does not exist")

	tests := []struct {
		name       string
		status     int
		production bool
		want       string
	}{
		{"client error in production", http.StatusNotFound, true, err.Error()},
		{"server error in production", http.StatusInternalServerError, true, "Internal Server Error"},
		{"server error in development", http.StatusInternalServerError, false, err.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := httpx.SafeError(err, tt.status, tt.production); got != tt.want {
				t.Errorf("SafeError = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAttachment(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.Attachment(w, "text/csv", "stock_20260115.csv", []byte("sku,qty\n"))

	want := map[string]string{
		"Content-Type":        "text/csv",
		"Content-Disposition": `attachment; filename="stock_20260115.csv"`,
		"Content-Length":      "8",
		"Cache-Control":       "no-store",
	}
	for h, v := range want {
		if got := w.Header().Get(h); got != v {
			t.Errorf("%s = %q, want %q", h, got, v)
		}
	}
}
