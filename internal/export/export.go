// Package export writes invoice rows and totals to an Excel workbook.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/faktura-dev/faktura/internal/model"
	"github.com/faktura-dev/faktura/internal/render"
	"github.com/faktura-dev/faktura/internal/tax"
)

// SheetName is the name of the only sheet in the workbook.
const SheetName = "Fakturarader"

// Header is the row table header.
var Header = []string{
	"Beskrivning",
	"À-pris",
	"Antal",
	"Enhet",
	"Summa",
	"Moms",
	"ROT/RUT",
}

var columnWidths = []float64{40, 12, 10, 10, 14, 8, 10}

// Workbook renders rows followed by the visible totals and returns the
// xlsx file contents.
func Workbook(rows []model.LineItem, totals tax.Totals) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("deleting default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	moneyFmt := "#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("creating money style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("creating total style: %w", err)
	}

	for col, header := range Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("converting coordinates: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return nil, fmt.Errorf("setting header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(SheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("setting header style: %w", err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, fmt.Errorf("converting column number: %w", err)
		}
		if err := f.SetColWidth(SheetName, name, name, columnWidths[col]); err != nil {
			return nil, fmt.Errorf("setting column width: %w", err)
		}
	}

	for i, item := range rows {
		row := i + 2
		marker := ""
		if item.IsRotRut {
			marker = string(item.ServiceKind())
		}
		values := []any{
			item.Description,
			item.Cost.InexactFloat64(),
			item.Count.InexactFloat64(),
			unitLabel(item.Unit),
			item.Total().InexactFloat64(),
			item.VAT.String(),
			marker,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("converting coordinates: %w", err)
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", row, err)
		}
		if err := styleCells(f, moneyStyle, row, 2, 5); err != nil {
			return nil, err
		}
	}

	// Totals start after one blank row; labels in Enhet, values in Summa.
	row := len(rows) + 3
	for _, t := range render.Totals(totals) {
		if !t.Visible {
			continue
		}
		label, _ := excelize.CoordinatesToCellName(4, row)
		if err := f.SetCellValue(SheetName, label, t.Label); err != nil {
			return nil, fmt.Errorf("writing total %s: %w", t.Name, err)
		}
		value, _ := excelize.CoordinatesToCellName(5, row)
		amount := totalValue(totals, t.Name)
		if err := f.SetCellValue(SheetName, value, amount); err != nil {
			return nil, fmt.Errorf("writing total %s: %w", t.Name, err)
		}
		if err := f.SetCellStyle(SheetName, value, value, totalStyle); err != nil {
			return nil, fmt.Errorf("styling total %s: %w", t.Name, err)
		}
		row++
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freezing panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func styleCells(f *excelize.File, style, row int, cols ...int) error {
	for _, col := range cols {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return fmt.Errorf("converting coordinates: %w", err)
		}
		if err := f.SetCellStyle(SheetName, cell, cell, style); err != nil {
			return fmt.Errorf("styling %s: %w", cell, err)
		}
	}
	return nil
}

func unitLabel(u model.Unit) string {
	if u == model.UnitNone {
		return ""
	}
	return u.String()
}

func totalValue(t tax.Totals, name string) float64 {
	for _, n := range t.Named() {
		if n.Name == name {
			return n.Value.InexactFloat64()
		}
	}
	return 0
}
