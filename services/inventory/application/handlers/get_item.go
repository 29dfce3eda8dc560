package handlers

import (
	"net/http"

	"github.com/ghuser/vetclinic/pkg/errhttp"
	"github.com/ghuser/vetclinic/pkg/httpx"
	appsvcs "github.com/ghuser/vetclinic/services/inventory/application/services"
)

// GetItemHandler handles GET /items/{id} requests.
type GetItemHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewGetItemHandler returns a GetItemHandler backed by the given services.
func NewGetItemHandler(svc *appsvcs.Services, errs *errhttp.Responder) *GetItemHandler {
	return &GetItemHandler{svc: svc, errs: errs}
}

// Execute returns one item, active or not.
//
//	@Summary	Get item
//	@Tags		items
//	@Produce	json
//	@Param		id	path		string	true	"Item ID"	format(uuid)
//	@Success	200	{object}	ItemResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/items/{id} [get]
func (h *GetItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}
	item, err := h.svc.Catalog.Get(r.Context(), id)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
