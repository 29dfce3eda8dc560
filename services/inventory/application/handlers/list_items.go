package handlers

import (
	"net/http"

	"github.com/ghuser/vetclinic/pkg/errhttp"
	"github.com/ghuser/vetclinic/pkg/httpx"
	appsvcs "github.com/ghuser/vetclinic/services/inventory/application/services"
)

// ListItemsHandler handles GET /items requests.
type ListItemsHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewListItemsHandler returns a ListItemsHandler backed by the given services.
func NewListItemsHandler(svc *appsvcs.Services, errs *errhttp.Responder) *ListItemsHandler {
	return &ListItemsHandler{svc: svc, errs: errs}
}

// Execute lists catalog items ordered by name.
//
//	@Summary	List items
//	@Tags		items
//	@Produce	json
//	@Param		search		query		string	false	"Substring of name, SKU or manufacturer"
//	@Param		category	query		string	false	"Category"	Enums(MEDICATION, VACCINE, SUPPLY, FOOD, EQUIPMENT, OTHER)
//	@Param		lowStock	query		bool	false	"Only items at or below reorder level"
//	@Param		active		query		bool	false	"Filter by active flag"
//	@Param		page		query		int		false	"Page (1-based)"	default(1)
//	@Param		limit		query		int		false	"Page size"			default(20)	maximum(100)
//	@Success	200			{object}	PageResponse[ItemResponse]
//	@Failure	400			{object}	ErrorResponse
//	@Router		/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseFilter(w, r)
	if !ok {
		return
	}
	p, ok := parsePagination(w, r)
	if !ok {
		return
	}

	page, err := h.svc.Query.List(r.Context(), filter, p.opts())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newPage(toItemResponses(page.Items), page.Total, p))
}
