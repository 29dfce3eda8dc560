package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ghuser/vetclinic/pkg/errhttp"
	"github.com/ghuser/vetclinic/pkg/httpx"
	appsvcs "github.com/ghuser/vetclinic/services/inventory/application/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportItemsHandler handles GET /items/export requests.
type ExportItemsHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Responder
}

// NewExportItemsHandler returns an ExportItemsHandler backed by the given services.
func NewExportItemsHandler(svc *appsvcs.Services, errs *errhttp.Responder) *ExportItemsHandler {
	return &ExportItemsHandler{svc: svc, errs: errs}
}

// Execute downloads the filtered catalog with current balances as XLSX.
//
//	@Summary	Export stock
//	@Tags		items
//	@Produce	application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Param		search		query	string	false	"Substring of name, SKU or manufacturer"
//	@Param		category	query	string	false	"Category"
//	@Param		lowStock	query	bool	false	"Only items at or below reorder level"
//	@Param		active		query	bool	false	"Filter by active flag"
//	@Success	200			{file}	file
//	@Failure	400			{object}	ErrorResponse
//	@Router		/items/export [get]
func (h *ExportItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseFilter(w, r)
	if !ok {
		return
	}

	data, err := h.svc.Query.ExportXLSX(r.Context(), filter)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	name := fmt.Sprintf("stock_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	httpx.Attachment(w, xlsxContentType, name, data)
}
