package export

import (
	"fmt"
	"io"

	"grocery/internal/models"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the exported list.
const SheetName = "Shopping list"

// ContentType is the MIME type of the produced workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var header = []interface{}{"ID", "Name", "Quantity", "Category", "Purchased"}

// WriteItems renders items as an xlsx workbook into w.
func WriteItems(w io.Writer, items []models.Item) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("error renaming sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	for i, item := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("error resolving cell: %w", err)
		}
		row := []interface{}{item.ID, item.Name, item.Quantity, item.Category, purchasedLabel(item.Purchased)}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("error writing item %d: %w", item.ID, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		_ = f.SetCellStyle(SheetName, "A1", "E1", style)
	}
	_ = f.SetColWidth(SheetName, "B", "B", 30)
	_ = f.SetColWidth(SheetName, "D", "D", 20)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

func purchasedLabel(purchased bool) string {
	if purchased {
		return "yes"
	}
	return "no"
}
