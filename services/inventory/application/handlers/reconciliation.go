package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/vetclinic/pkg/errhttp"
	"github.com/ghuser/vetclinic/pkg/httpx"
	appsvcs "github.com/ghuser/vetclinic/services/inventory/application/services"
	"github.com/ghuser/vetclinic/services/inventory/domain/models"
)

// MismatchResponse describes one item whose balance disagrees with its ledger.
type MismatchResponse struct {
	ItemID           uuid.UUID  `json:"item_id"`
	SKU              string     `json:"sku"`
	RecordedBalance  int        `json:"recorded_balance"`
	ReplayedBalance  int        `json:"replayed_balance"`
	TransactionCount int        `json:"transaction_count"`
	BrokenAt         *uuid.UUID `json:"broken_at,omitempty"`
} // @name MismatchResponse

// ReconciliationResponse is the result of one reconciliation pass.
type ReconciliationResponse struct {
	StartedAt    time.Time          `json:"started_at"`
	FinishedAt   time.Time          `json:"finished_at"`
	ItemsChecked int                `json:"items_checked"`
	Clean        bool               `json:"clean"`
	Mismatches   []MismatchResponse `json:"mismatches"`
} // @name ReconciliationResponse

// ReconciliationHandler handles GET /items/reconciliation requests.
type ReconciliationHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewReconciliationHandler returns a ReconciliationHandler backed by the given services.
func NewReconciliationHandler(svc *appsvcs.Services, errs *errhttp.Responder) *ReconciliationHandler {
	return &ReconciliationHandler{svc: svc, errs: errs}
}

// Execute replays every item's ledger and reports drift. Nothing is corrected.
//
//	@Summary	Reconcile balances
//	@Tags		ledger
//	@Produce	json
//	@Success	200	{object}	ReconciliationResponse
//	@Router		/items/reconciliation [get]
func (h *ReconciliationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Reconciliation.Run(r.Context())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toReconciliationResponse(report))
}

func toReconciliationResponse(rep *models.ReconciliationReport) ReconciliationResponse {
	out := ReconciliationResponse{
		StartedAt:    rep.StartedAt,
		FinishedAt:   rep.FinishedAt,
		ItemsChecked: rep.ItemsChecked,
		Clean:        rep.Clean(),
		Mismatches:   make([]MismatchResponse, len(rep.Mismatches)),
	}
	for i, m := range rep.Mismatches {
		out.Mismatches[i] = MismatchResponse{
			ItemID:           m.ItemID,
			SKU:              m.SKU.String(),
			RecordedBalance:  m.RecordedBalance,
			ReplayedBalance:  m.ReplayedBalance,
			TransactionCount: m.TransactionCount,
			BrokenAt:         m.BrokenAt,
		}
	}
	return out
}
