package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ghuser/vetclinic/services/inventory/domain/models"
	"github.com/ghuser/vetclinic/services/inventory/domain/repositories"
)

// QueryService serves read-only stock views: filtered listings and the
// spreadsheet export used for stocktakes.
type QueryService struct {
	items repositories.ItemRepository
}

// NewQueryService returns a QueryService reading from items.
func NewQueryService(items repositories.ItemRepository) *QueryService {
	return &QueryService{items: items}
}

// List returns a filtered page of items ordered by name.
func (s *QueryService) List(ctx context.Context, filter repositories.ItemFilter, opts repositories.QueryOpts) (repositories.Page[*models.Item], error) {
	page, err := s.items.List(ctx, filter, opts)
	if err != nil {
		return page, fmt.Errorf("list items: %w", err)
	}
	return page, nil
}

var exportHeader = []any{
	"SKU", "Name", "Category", "Unit", "Quantity on hand", "Reorder level",
	"Reorder quantity", "Cost price", "Selling price", "Lot number",
	"Expiration date", "Location", "Active", "Low stock",
}

// ExportSheet is the worksheet name used by ExportXLSX.
const ExportSheet = "Stock"

// ExportXLSX renders every item matching filter, with its current balance,
// as an XLSX workbook.
func (s *QueryService) ExportXLSX(ctx context.Context, filter repositories.ItemFilter) ([]byte, error) {
	items, err := s.items.ListAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("export items: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), ExportSheet); err != nil {
		return nil, fmt.Errorf("export sheet: %w", err)
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("export header: %w", err)
	}

	for i, it := range items {
		expiry := ""
		if it.ExpirationDate != nil {
			expiry = it.ExpirationDate.Format(dateLayout)
		}
		row := []any{
			it.SKU.String(),
			it.Name,
			string(it.Category),
			string(it.Unit),
			it.QuantityOnHand,
			it.ReorderLevel,
			it.ReorderQuantity,
			it.CostPrice.InexactFloat64(),
			it.SellingPrice.InexactFloat64(),
			it.LotNumber,
			expiry,
			it.Location,
			it.IsActive,
			it.IsLowStock(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("export cell: %w", err)
		}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("export row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("export write: %w", err)
	}
	return buf.Bytes(), nil
}
