// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to Status for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/vetclinic/pkg/httpx"
	"github.com/ghuser/vetclinic/pkg/logger"
	"github.com/ghuser/vetclinic/pkg/telemetry"
	"github.com/ghuser/vetclinic/services/inventory/domain"
)

// Responder writes JSON error responses. In production, 5xx messages are
// masked; they are always logged and reported to Sentry.
type Responder struct {
	production bool
	log        logger.Logger
}

// NewResponder returns a Responder. Pass production=true to mask 5xx messages.
func NewResponder(production bool, log logger.Logger) *Responder {
	return &Responder{production: production, log: log}
}

// Write maps err to a status code and writes {"error": message}. Stock
// shortfall errors also carry "available" and "requested".
func (rs *Responder) Write(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)
	if status >= http.StatusInternalServerError {
		rs.log.ErrorContext(r.Context(), "request failed", "status", status, "error", err)
		if status != http.StatusServiceUnavailable {
			telemetry.CaptureRequestError(r, err)
		}
	}
	if errors.Is(err, domain.ErrLedgerUnavailable) {
		w.Header().Set("Retry-After", "1")
	}

	body := map[string]any{"error": httpx.SafeError(err, status, rs.production)}
	var se *domain.StockError
	if errors.As(err, &se) {
		body["error"] = se.Error()
		body["available"] = se.Available
		body["requested"] = se.Requested
	}
	httpx.JSON(w, status, body)
}

// Status returns the HTTP status for err.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func Status(err error) int {
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, domain.ErrDuplicateSKU),
		errors.Is(err, domain.ErrIdempotencyConflict):
		return http.StatusConflict // 409
	case errors.Is(err, domain.ErrInvalidItem),
		errors.Is(err, domain.ErrInvalidTransaction),
		errors.Is(err, domain.ErrBalanceNotEditable),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrNegativeAdjustment):
		return http.StatusBadRequest // 400
	case errors.Is(err, domain.ErrLedgerUnavailable):
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}
