package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/vetclinic/pkg/errhttp"
	"github.com/ghuser/vetclinic/pkg/httpx"
	pkgvalidator "github.com/ghuser/vetclinic/pkg/validator"
	appsvcs "github.com/ghuser/vetclinic/services/inventory/application/services"
	"github.com/ghuser/vetclinic/services/inventory/domain"
	"github.com/ghuser/vetclinic/services/inventory/domain/models"
)

// CreateItemRequest is the request body for POST /items.
// Stock cannot be set directly; initial_quantity is recorded as an opening PURCHASE.
type CreateItemRequest struct {
	SKU                   string          `json:"sku"                     validate:"required,max=64"  example:"AMOX-250"`
	Name                  string          `json:"name"                    validate:"required,max=255" example:"Amoxicillin 250mg"`
	Description           string          `json:"description"             validate:"max=2000"`
	Manufacturer          string          `json:"manufacturer"            validate:"max=255" example:"Zoetis"`
	Supplier              string          `json:"supplier"                validate:"max=255"`
	Category              string          `json:"category"                validate:"required,oneof=MEDICATION VACCINE SUPPLY FOOD EQUIPMENT OTHER" example:"MEDICATION"`
	Unit                  string          `json:"unit"                    validate:"required,oneof=UNIT TABLET CAPSULE ML MG BOTTLE BOX VIAL DOSE PACK" example:"TABLET"`
	CostPrice             decimal.Decimal `json:"cost_price"              validate:"gte=0" swaggertype:"string" example:"1.20"`
	SellingPrice          decimal.Decimal `json:"selling_price"           validate:"gte=0" swaggertype:"string" example:"2.50"`
	ReorderLevel          int             `json:"reorder_level"           validate:"gte=0,lte=2147483647" example:"20"`
	ReorderQuantity       int             `json:"reorder_quantity"        validate:"gte=0,lte=2147483647" example:"100"`
	LotNumber             string          `json:"lot_number"              validate:"max=100"`
	ExpirationDate        *string         `json:"expiration_date"         validate:"omitempty,datetime=2006-01-02" example:"2027-06-30"`
	Location              string          `json:"location"                validate:"max=255"`
	RequiresPrescription  bool            `json:"requires_prescription"`
	IsControlledSubstance bool            `json:"is_controlled_substance"`
	InitialQuantity       int             `json:"initial_quantity"        validate:"gte=0,lte=2147483647" example:"0"`
	PerformedByID         *uuid.UUID      `json:"performed_by_id"`
} // @name CreateItemRequest

// PostItemHandler handles POST /items requests.
type PostItemHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services, errs *errhttp.Responder) *PostItemHandler {
	return &PostItemHandler{svc: svc, errs: errs}
}

// Execute registers a new catalog item.
//
//	@Summary		Register item
//	@Description	Registers a catalog item with a zero balance, or with an opening PURCHASE when initial_quantity is set
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateItemRequest	true	"Item registration request"
//	@Success		201		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	exp, err := parseDate(req.ExpirationDate)
	if err != nil {
		h.errs.Write(w, r, fmt.Errorf("%w: expiration_date: %w", domain.ErrInvalidItem, err))
		return
	}

	var opening *appsvcs.OpeningStock
	if req.InitialQuantity > 0 {
		opening = &appsvcs.OpeningStock{
			Quantity:      req.InitialQuantity,
			UnitCost:      &req.CostPrice,
			PerformedByID: operator(r, req.PerformedByID),
		}
	}

	item, err := h.svc.Catalog.Register(r.Context(), models.NewItemParams{
		SKU:                   req.SKU,
		Name:                  req.Name,
		Description:           req.Description,
		Manufacturer:          req.Manufacturer,
		Supplier:              req.Supplier,
		Category:              models.Category(req.Category),
		Unit:                  models.Unit(req.Unit),
		CostPrice:             req.CostPrice,
		SellingPrice:          req.SellingPrice,
		ReorderLevel:          req.ReorderLevel,
		ReorderQuantity:       req.ReorderQuantity,
		LotNumber:             req.LotNumber,
		ExpirationDate:        exp,
		Location:              req.Location,
		RequiresPrescription:  req.RequiresPrescription,
		IsControlledSubstance: req.IsControlledSubstance,
	}, opening)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toItemResponse(item))
}
