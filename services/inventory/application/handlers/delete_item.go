package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/vetclinic/pkg/errhttp"
	"github.com/ghuser/vetclinic/pkg/httpx"
	appsvcs "github.com/ghuser/vetclinic/services/inventory/application/services"
)

// DeactivateItemResponse confirms a soft delete.
type DeactivateItemResponse struct {
	ID       uuid.UUID `json:"id"        example:"123e4567-e89b-12d3-a456-426614174000"`
	IsActive bool      `json:"is_active" example:"false"`
} // @name DeactivateItemResponse

// DeleteItemHandler handles DELETE /items/{id} requests.
type DeleteItemHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewDeleteItemHandler returns a DeleteItemHandler backed by the given services.
func NewDeleteItemHandler(svc *appsvcs.Services, errs *errhttp.Responder) *DeleteItemHandler {
	return &DeleteItemHandler{svc: svc, errs: errs}
}

// Execute deactivates an item. Its ledger history is kept.
//
//	@Summary		Deactivate item
//	@Description	Soft-deletes an item; repeating the call is harmless
//	@Tags			items
//	@Produce		json
//	@Param			id	path		string	true	"Item ID"	format(uuid)
//	@Success		200	{object}	DeactivateItemResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/items/{id} [delete]
func (h *DeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}
	item, err := h.svc.Catalog.Deactivate(r.Context(), id)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, DeactivateItemResponse{ID: item.ID, IsActive: item.IsActive})
}
