package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ghuser/vetclinic/pkg/errhttp"
	"github.com/ghuser/vetclinic/pkg/httpx"
	pkgvalidator "github.com/ghuser/vetclinic/pkg/validator"
	appsvcs "github.com/ghuser/vetclinic/services/inventory/application/services"
	"github.com/ghuser/vetclinic/services/inventory/domain"
	"github.com/ghuser/vetclinic/services/inventory/domain/models"
)

// balanceFields are body keys that would write the balance outside the ledger.
var balanceFields = []string{"quantity_on_hand", "quantityOnHand"}

// UpdateItemRequest is the request body for PATCH /items/{id}. Omitted fields
// are left unchanged; "expiration_date": null clears the date.
type UpdateItemRequest struct {
	Name                  *string          `json:"name"                    validate:"omitempty,max=255"`
	Description           *string          `json:"description"             validate:"omitempty,max=2000"`
	Manufacturer          *string          `json:"manufacturer"            validate:"omitempty,max=255"`
	Supplier              *string          `json:"supplier"                validate:"omitempty,max=255"`
	Category              *string          `json:"category"                validate:"omitempty,oneof=MEDICATION VACCINE SUPPLY FOOD EQUIPMENT OTHER"`
	Unit                  *string          `json:"unit"                    validate:"omitempty,oneof=UNIT TABLET CAPSULE ML MG BOTTLE BOX VIAL DOSE PACK"`
	CostPrice             *decimal.Decimal `json:"cost_price"              validate:"omitempty,gte=0" swaggertype:"string"`
	SellingPrice          *decimal.Decimal `json:"selling_price"           validate:"omitempty,gte=0" swaggertype:"string"`
	ReorderLevel          *int             `json:"reorder_level"           validate:"omitempty,gte=0,lte=2147483647"`
	ReorderQuantity       *int             `json:"reorder_quantity"        validate:"omitempty,gte=0,lte=2147483647"`
	LotNumber             *string          `json:"lot_number"              validate:"omitempty,max=100"`
	ExpirationDate        *string          `json:"expiration_date"         validate:"omitempty,datetime=2006-01-02" example:"2027-06-30"`
	Location              *string          `json:"location"                validate:"omitempty,max=255"`
	RequiresPrescription  *bool            `json:"requires_prescription"`
	IsControlledSubstance *bool            `json:"is_controlled_substance"`
} // @name UpdateItemRequest

// PatchItemHandler handles PATCH /items/{id} requests.
type PatchItemHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewPatchItemHandler returns a PatchItemHandler backed by the given services.
func NewPatchItemHandler(svc *appsvcs.Services, errs *errhttp.Responder) *PatchItemHandler {
	return &PatchItemHandler{svc: svc, errs: errs}
}

// Execute updates descriptive, pricing and threshold fields. A body carrying
// quantity_on_hand is rejected; balances only move through the ledger.
//
//	@Summary	Update item
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Item ID"	format(uuid)
//	@Param		request	body		UpdateItemRequest	true	"Fields to change"
//	@Success	200		{object}	ItemResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/items/{id} [patch]
func (h *PatchItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	for _, k := range balanceFields {
		if _, present := raw[k]; present {
			h.errs.Write(w, r, domain.ErrBalanceNotEditable)
			return
		}
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	req, ok := pkgvalidator.ValidateRequest[UpdateItemRequest](w, r)
	if !ok {
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	if v, present := raw["expiration_date"]; present && string(bytes.TrimSpace(v)) == "null" {
		patch.ClearExpirationDate = true
	}

	item, err := h.svc.Catalog.Update(r.Context(), id, patch)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}

func (req *UpdateItemRequest) toPatch() (models.ItemPatch, error) {
	p := models.ItemPatch{
		Name:                  req.Name,
		Description:           req.Description,
		Manufacturer:          req.Manufacturer,
		Supplier:              req.Supplier,
		CostPrice:             req.CostPrice,
		SellingPrice:          req.SellingPrice,
		ReorderLevel:          req.ReorderLevel,
		ReorderQuantity:       req.ReorderQuantity,
		LotNumber:             req.LotNumber,
		Location:              req.Location,
		RequiresPrescription:  req.RequiresPrescription,
		IsControlledSubstance: req.IsControlledSubstance,
	}
	if req.Category != nil {
		c := models.Category(*req.Category)
		p.Category = &c
	}
	if req.Unit != nil {
		u := models.Unit(*req.Unit)
		p.Unit = &u
	}
	exp, err := parseDate(req.ExpirationDate)
	if err != nil {
		return p, fmt.Errorf("%w: expiration_date: %w", domain.ErrInvalidItem, err)
	}
	p.ExpirationDate = exp
	return p, nil
}
