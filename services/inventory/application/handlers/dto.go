package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/vetclinic/pkg/auth"
	"github.com/ghuser/vetclinic/pkg/httpx"
	"github.com/ghuser/vetclinic/services/inventory/domain/models"
	"github.com/ghuser/vetclinic/services/inventory/domain/repositories"
)

const (
	dateLayout   = "2006-01-02"
	defaultLimit = 20
	maxLimit     = 100
	// maxPage keeps (page-1)*maxLimit inside an INTEGER offset.
	maxPage = 1000000
)

// ItemResponse is the JSON representation of a catalog item.
type ItemResponse struct {
	ID                    uuid.UUID       `json:"id"                      example:"123e4567-e89b-12d3-a456-426614174000"`
	SKU                   string          `json:"sku"                     example:"AMOX-250"`
	Name                  string          `json:"name"                    example:"Amoxicillin 250mg"`
	Description           string          `json:"description"`
	Manufacturer          string          `json:"manufacturer"            example:"Zoetis"`
	Supplier              string          `json:"supplier"`
	Category              string          `json:"category"                example:"MEDICATION"`
	Unit                  string          `json:"unit"                    example:"TABLET"`
	CostPrice             decimal.Decimal `json:"cost_price"              swaggertype:"string" example:"1.20"`
	SellingPrice          decimal.Decimal `json:"selling_price"           swaggertype:"string" example:"2.50"`
	QuantityOnHand        int             `json:"quantity_on_hand"        example:"120"`
	ReorderLevel          int             `json:"reorder_level"           example:"20"`
	ReorderQuantity       int             `json:"reorder_quantity"        example:"100"`
	LotNumber             string          `json:"lot_number"`
	ExpirationDate        *string         `json:"expiration_date"         example:"2027-06-30"`
	Location              string          `json:"location"                example:"Pharmacy shelf B"`
	RequiresPrescription  bool            `json:"requires_prescription"`
	IsControlledSubstance bool            `json:"is_controlled_substance"`
	IsActive              bool            `json:"is_active"               example:"true"`
	IsLowStock            bool            `json:"is_low_stock"`
	CreatedAt             time.Time       `json:"created_at"              example:"2026-01-15T10:30:00Z"`
	UpdatedAt             time.Time       `json:"updated_at"              example:"2026-01-15T10:30:00Z"`
} // @name ItemResponse

// TransactionResponse is the JSON representation of a ledger record.
type TransactionResponse struct {
	ID             uuid.UUID        `json:"id"              example:"8c1f0a52-6b0e-4a57-9d4e-0c6f3f1d2b77"`
	ItemID         uuid.UUID        `json:"item_id"         example:"123e4567-e89b-12d3-a456-426614174000"`
	Type           string           `json:"type"            example:"DISPENSED"`
	Quantity       int              `json:"quantity"        example:"2"`
	QuantityAfter  int              `json:"quantity_after"  example:"118"`
	UnitCost       *decimal.Decimal `json:"unit_cost"       swaggertype:"string" example:"1.20"`
	PatientID      *uuid.UUID       `json:"patient_id"`
	VisitID        *uuid.UUID       `json:"visit_id"`
	PerformedByID  uuid.UUID        `json:"performed_by_id" example:"ffffffff-ffff-ffff-ffff-ffffffffffff"`
	Reference      string           `json:"reference"`
	Notes          string           `json:"notes"`
	IdempotencyKey string           `json:"idempotency_key,omitempty"`
	CreatedAt      time.Time        `json:"created_at"      example:"2026-01-15T10:30:00Z"`
} // @name TransactionResponse

// PageResponse wraps one page of a listing.
type PageResponse[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"       example:"42"`
	Page       int `json:"page"        example:"1"`
	Limit      int `json:"limit"       example:"20"`
	TotalPages int `json:"total_pages" example:"3"`
}

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"item not found"`
} // @name ErrorResponse

// StockErrorResponse is returned when a movement would make stock negative.
type StockErrorResponse struct {
	Error     string `json:"error"     example:"Insufficient stock. Available: 12, Requested: 20"`
	Available int    `json:"available" example:"12"`
	Requested int    `json:"requested" example:"20"`
} // @name StockErrorResponse

func toItemResponse(i *models.Item) ItemResponse {
	out := ItemResponse{
		ID:                    i.ID,
		SKU:                   i.SKU.String(),
		Name:                  i.Name,
		Description:           i.Description,
		Manufacturer:          i.Manufacturer,
		Supplier:              i.Supplier,
		Category:              string(i.Category),
		Unit:                  string(i.Unit),
		CostPrice:             i.CostPrice,
		SellingPrice:          i.SellingPrice,
		QuantityOnHand:        i.QuantityOnHand,
		ReorderLevel:          i.ReorderLevel,
		ReorderQuantity:       i.ReorderQuantity,
		LotNumber:             i.LotNumber,
		Location:              i.Location,
		RequiresPrescription:  i.RequiresPrescription,
		IsControlledSubstance: i.IsControlledSubstance,
		IsActive:              i.IsActive,
		IsLowStock:            i.IsLowStock(),
		CreatedAt:             i.CreatedAt,
		UpdatedAt:             i.UpdatedAt,
	}
	if i.ExpirationDate != nil {
		d := i.ExpirationDate.Format(dateLayout)
		out.ExpirationDate = &d
	}
	return out
}

func toItemResponses(items []*models.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, it := range items {
		out[i] = toItemResponse(it)
	}
	return out
}

func toTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:             t.ID,
		ItemID:         t.ItemID,
		Type:           string(t.Type),
		Quantity:       t.Quantity,
		QuantityAfter:  t.QuantityAfter,
		UnitCost:       t.UnitCost,
		PatientID:      t.PatientID,
		VisitID:        t.VisitID,
		PerformedByID:  t.PerformedByID,
		Reference:      t.Reference,
		Notes:          t.Notes,
		IdempotencyKey: t.IdempotencyKey,
		CreatedAt:      t.CreatedAt,
	}
}

func newPage[T any](items []T, total int, p pagination) PageResponse[T] {
	pages := 0
	if p.limit > 0 {
		pages = (total + p.limit - 1) / p.limit
	}
	return PageResponse[T]{Data: items, Total: total, Page: p.page, Limit: p.limit, TotalPages: pages}
}

type pagination struct {
	page  int
	limit int
}

func (p pagination) opts() repositories.QueryOpts {
	return repositories.QueryOpts{Limit: p.limit, Offset: (p.page - 1) * p.limit}
}

// parsePagination reads ?page= (1-based) and ?limit=, writing a 400 on bad input.
func parsePagination(w http.ResponseWriter, r *http.Request) (pagination, bool) {
	p := pagination{page: 1, limit: defaultLimit}
	q := r.URL.Query()
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxPage {
			httpx.JSONError(w, http.StatusBadRequest, "page must be between 1 and 1000000")
			return p, false
		}
		p.page = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxLimit {
			httpx.JSONError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return p, false
		}
		p.limit = n
	}
	return p, true
}

// parseFilter reads the catalog listing filters from the query string.
func parseFilter(w http.ResponseWriter, r *http.Request) (repositories.ItemFilter, bool) {
	q := r.URL.Query()
	f := repositories.ItemFilter{Search: q.Get("search")}
	if v := q.Get("category"); v != "" {
		c := models.Category(v)
		if !c.Valid() {
			httpx.JSONError(w, http.StatusBadRequest, "unknown category")
			return f, false
		}
		f.Category = &c
	}
	if v := q.Get("lowStock"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "lowStock must be a boolean")
			return f, false
		}
		f.LowStock = b
	}
	if v := q.Get("active"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "active must be a boolean")
			return f, false
		}
		f.Active = &b
	}
	return f, true
}

// itemID parses the {id} path parameter, writing a 400 on bad input.
func itemID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid item id")
		return uuid.Nil, false
	}
	return id, true
}

// operator resolves who performed a movement: the body's performed_by_id,
// then the session user. uuid.Nil lets the ledger record the unknown operator.
func operator(r *http.Request, fromBody *uuid.UUID) uuid.UUID {
	if fromBody != nil && *fromBody != uuid.Nil {
		return *fromBody
	}
	if id, err := auth.UserIDFromCtx(r.Context()); err == nil {
		return id
	}
	return uuid.Nil
}

// parseDate parses an optional YYYY-MM-DD string.
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
