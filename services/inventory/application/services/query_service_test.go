package services

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ghuser/vetclinic/services/inventory/domain/repositories"
)

func TestQueryService_ExportXLSX(t *testing.T) {
	f := newFixture(t)
	f.itemFor(t, "XLS-B", 10, 3)
	f.itemFor(t, "XLS-A", 0, 25)

	data, err := f.svcs.Query.ExportXLSX(f.ctx, repositories.ItemFilter{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() { _ = wb.Close() }()

	rows, err := wb.GetRows(ExportSheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "SKU" || rows[0][4] != "Quantity on hand" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	// Ordered by name: "Item XLS-A" before "Item XLS-B".
	if rows[1][0] != "XLS-A" || rows[1][4] != "25" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[2][0] != "XLS-B" || rows[2][13] != "TRUE" {
		t.Errorf("row 2 = %v", rows[2])
	}
}

func TestQueryService_ExportEmpty(t *testing.T) {
	f := newFixture(t)
	data, err := f.svcs.Query.ExportXLSX(f.ctx, repositories.ItemFilter{Search: "nothing"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() { _ = wb.Close() }()
	rows, _ := wb.GetRows(ExportSheet)
	if len(rows) != 1 {
		t.Errorf("rows = %d, want header only", len(rows))
	}
}
