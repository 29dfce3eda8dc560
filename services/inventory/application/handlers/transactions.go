package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/vetclinic/pkg/errhttp"
	"github.com/ghuser/vetclinic/pkg/httpx"
	pkgvalidator "github.com/ghuser/vetclinic/pkg/validator"
	appsvcs "github.com/ghuser/vetclinic/services/inventory/application/services"
	"github.com/ghuser/vetclinic/services/inventory/domain/models"
)

// IdempotencyKeyHeader carries the client's retry key for ledger writes.
const IdempotencyKeyHeader = "Idempotency-Key"

// CreateTransactionRequest is the request body for POST /items/transactions.
// Quantity is a magnitude for inbound and outbound types and signed for
// ADJUSTMENT and TRANSFER.
type CreateTransactionRequest struct {
	ItemID        uuid.UUID        `json:"item_id"         validate:"required" example:"123e4567-e89b-12d3-a456-426614174000"`
	Type          string           `json:"type"            validate:"required,oneof=PURCHASE DISPENSED ADJUSTMENT RETURN EXPIRED DAMAGED TRANSFER" example:"ADJUSTMENT"`
	Quantity      int              `json:"quantity"        validate:"ne=0,min=-2147483647,max=2147483647" example:"-2"`
	UnitCost      *decimal.Decimal `json:"unit_cost"       validate:"omitempty,gte=0" swaggertype:"string"`
	PatientID     *uuid.UUID       `json:"patient_id"`
	VisitID       *uuid.UUID       `json:"visit_id"`
	PerformedByID *uuid.UUID       `json:"performed_by_id"`
	Reference     string           `json:"reference"       validate:"max=255"`
	Notes         string           `json:"notes"           validate:"max=2000"`
} // @name CreateTransactionRequest

// PostTransactionHandler handles POST /items/transactions requests.
type PostTransactionHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewPostTransactionHandler returns a PostTransactionHandler backed by the given services.
func NewPostTransactionHandler(svc *appsvcs.Services, errs *errhttp.Responder) *PostTransactionHandler {
	return &PostTransactionHandler{svc: svc, errs: errs}
}

// Execute records one stock movement of any type.
//
//	@Summary		Record stock movement
//	@Description	Appends a ledger record and updates the balance atomically. Repeating a request with the same Idempotency-Key returns the original record.
//	@Tags			ledger
//	@Accept			json
//	@Produce		json
//	@Param			Idempotency-Key	header		string						false	"Client retry key"
//	@Param			request			body		CreateTransactionRequest	true	"Movement"
//	@Success		201				{object}	TransactionResponse
//	@Failure		400				{object}	StockErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Failure		409				{object}	ErrorResponse
//	@Failure		422				{object}	ErrorResponse
//	@Failure		503				{object}	ErrorResponse
//	@Router			/items/transactions [post]
func (h *PostTransactionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateTransactionRequest](w, r)
	if !ok {
		return
	}

	rec, err := h.svc.Ledger.Apply(r.Context(), models.ApplyCommand{
		ItemID:         req.ItemID,
		Type:           models.TransactionType(req.Type),
		Quantity:       req.Quantity,
		UnitCost:       req.UnitCost,
		PatientID:      req.PatientID,
		VisitID:        req.VisitID,
		PerformedByID:  operator(r, req.PerformedByID),
		Reference:      req.Reference,
		Notes:          req.Notes,
		IdempotencyKey: r.Header.Get(IdempotencyKeyHeader),
	})
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toTransactionResponse(rec))
}

// DispenseRequest is the request body for POST /items/{id}/dispense.
type DispenseRequest struct {
	Quantity      int        `json:"quantity"        validate:"gt=0,lte=2147483647" example:"2"`
	PatientID     *uuid.UUID `json:"patient_id"`
	VisitID       *uuid.UUID `json:"visit_id"`
	PerformedByID *uuid.UUID `json:"performed_by_id"`
	Notes         string     `json:"notes"           validate:"max=2000"`
} // @name DispenseRequest

// PostDispenseHandler handles POST /items/{id}/dispense requests.
type PostDispenseHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewPostDispenseHandler returns a PostDispenseHandler backed by the given services.
func NewPostDispenseHandler(svc *appsvcs.Services, errs *errhttp.Responder) *PostDispenseHandler {
	return &PostDispenseHandler{svc: svc, errs: errs}
}

// Execute consumes stock for a treatment.
//
//	@Summary	Dispense stock
//	@Tags		ledger
//	@Accept		json
//	@Produce	json
//	@Param		id				path		string			true	"Item ID"	format(uuid)
//	@Param		Idempotency-Key	header		string			false	"Client retry key"
//	@Param		request			body		DispenseRequest	true	"Dispense"
//	@Success	201				{object}	TransactionResponse
//	@Failure	400				{object}	StockErrorResponse
//	@Failure	404				{object}	ErrorResponse
//	@Failure	409				{object}	ErrorResponse
//	@Failure	422				{object}	ErrorResponse
//	@Router		/items/{id}/dispense [post]
func (h *PostDispenseHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[DispenseRequest](w, r)
	if !ok {
		return
	}

	rec, err := h.svc.Ledger.Dispense(r.Context(), appsvcs.DispenseRequest{
		ItemID:         id,
		Quantity:       req.Quantity,
		PatientID:      req.PatientID,
		VisitID:        req.VisitID,
		PerformedByID:  operator(r, req.PerformedByID),
		Notes:          req.Notes,
		IdempotencyKey: r.Header.Get(IdempotencyKeyHeader),
	})
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toTransactionResponse(rec))
}

// RestockRequest is the request body for POST /items/{id}/restock.
type RestockRequest struct {
	Quantity      int              `json:"quantity"        validate:"gt=0,lte=2147483647" example:"50"`
	UnitCost      *decimal.Decimal `json:"unit_cost"       validate:"omitempty,gte=0" swaggertype:"string" example:"1.15"`
	Reference     string           `json:"reference"       validate:"max=255" example:"PO-2026-0042"`
	PerformedByID *uuid.UUID       `json:"performed_by_id"`
} // @name RestockRequest

// PostRestockHandler handles POST /items/{id}/restock requests.
type PostRestockHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewPostRestockHandler returns a PostRestockHandler backed by the given services.
func NewPostRestockHandler(svc *appsvcs.Services, errs *errhttp.Responder) *PostRestockHandler {
	return &PostRestockHandler{svc: svc, errs: errs}
}

// Execute records received stock.
//
//	@Summary	Restock
//	@Tags		ledger
//	@Accept		json
//	@Produce	json
//	@Param		id				path		string			true	"Item ID"	format(uuid)
//	@Param		Idempotency-Key	header		string			false	"Client retry key"
//	@Param		request			body		RestockRequest	true	"Restock"
//	@Success	201				{object}	TransactionResponse
//	@Failure	400				{object}	ErrorResponse
//	@Failure	404				{object}	ErrorResponse
//	@Failure	409				{object}	ErrorResponse
//	@Failure	422				{object}	ErrorResponse
//	@Router		/items/{id}/restock [post]
func (h *PostRestockHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[RestockRequest](w, r)
	if !ok {
		return
	}

	rec, err := h.svc.Ledger.Restock(r.Context(), appsvcs.RestockRequest{
		ItemID:         id,
		Quantity:       req.Quantity,
		UnitCost:       req.UnitCost,
		Reference:      req.Reference,
		PerformedByID:  operator(r, req.PerformedByID),
		IdempotencyKey: r.Header.Get(IdempotencyKeyHeader),
	})
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toTransactionResponse(rec))
}

// ListTransactionsHandler handles GET /items/{id}/transactions requests.
type ListTransactionsHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewListTransactionsHandler returns a ListTransactionsHandler backed by the given services.
func NewListTransactionsHandler(svc *appsvcs.Services, errs *errhttp.Responder) *ListTransactionsHandler {
	return &ListTransactionsHandler{svc: svc, errs: errs}
}

// Execute returns an item's ledger, newest first.
//
//	@Summary	Item ledger
//	@Tags		ledger
//	@Produce	json
//	@Param		id		path		string	true	"Item ID"	format(uuid)
//	@Param		page	query		int		false	"Page (1-based)"	default(1)
//	@Param		limit	query		int		false	"Page size"			default(20)	maximum(100)
//	@Success	200		{object}	PageResponse[TransactionResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/items/{id}/transactions [get]
func (h *ListTransactionsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}
	p, ok := parsePagination(w, r)
	if !ok {
		return
	}

	page, err := h.svc.Ledger.Transactions(r.Context(), id, p.opts())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	out := make([]TransactionResponse, len(page.Items))
	for i, t := range page.Items {
		out[i] = toTransactionResponse(t)
	}
	httpx.JSON(w, http.StatusOK, newPage(out, page.Total, p))
}
