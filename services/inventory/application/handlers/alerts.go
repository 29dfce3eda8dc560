package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ghuser/vetclinic/pkg/errhttp"
	"github.com/ghuser/vetclinic/pkg/httpx"
	appsvcs "github.com/ghuser/vetclinic/services/inventory/application/services"
)

// LowStockHandler handles GET /items/low-stock requests.
type LowStockHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewLowStockHandler returns a LowStockHandler backed by the given services.
func NewLowStockHandler(svc *appsvcs.Services, errs *errhttp.Responder) *LowStockHandler {
	return &LowStockHandler{svc: svc, errs: errs}
}

// Execute lists active items at or below their reorder level.
//
//	@Summary	Low stock items
//	@Tags		alerts
//	@Produce	json
//	@Success	200	{array}		ItemResponse
//	@Router		/items/low-stock [get]
func (h *LowStockHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Alerts.LowStock(r.Context())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponses(items))
}

// ExpiringHandler handles GET /items/expiring requests.
type ExpiringHandler struct {
	svc         *appsvcs.Services
	errs        *errhttp.Responder
	defaultDays int
}

// NewExpiringHandler returns an ExpiringHandler. defaultDays applies when ?days is absent.
func NewExpiringHandler(svc *appsvcs.Services, errs *errhttp.Responder, defaultDays int) *ExpiringHandler {
	if defaultDays < 0 {
		defaultDays = appsvcs.DefaultExpiringDays
	}
	return &ExpiringHandler{svc: svc, errs: errs, defaultDays: defaultDays}
}

// Execute lists active items with stock expiring within the window.
//
//	@Summary	Expiring items
//	@Tags		alerts
//	@Produce	json
//	@Param		days	query		int	false	"Days ahead of today (UTC)"	default(30)	minimum(0)	maximum(3650)
//	@Success	200		{array}		ItemResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/items/expiring [get]
func (h *ExpiringHandler) Execute(w http.ResponseWriter, r *http.Request) {
	days := h.defaultDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > appsvcs.MaxExpiryDays {
			httpx.JSONError(w, http.StatusBadRequest, fmt.Sprintf("days must be an integer between 0 and %d", appsvcs.MaxExpiryDays))
			return
		}
		days = n
	}

	items, err := h.svc.Alerts.Expiring(r.Context(), days)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponses(items))
}
