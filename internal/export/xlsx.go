package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/docanalyzer/internal/core"
)

// WriteXLSX writes a one-sheet workbook. Tax amounts are numeric cells.
func WriteXLSX(w io.Writer, res core.Result) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Tax Return"
	headers := []string{"ID", "Amount", "Confidence"}
	if res.Estate != nil {
		sheet = "Power of Attorney"
		headers = []string{"Field", "Value"}
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	write := func(col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	if res.Estate != nil {
		for _, r := range res.Estate.Rows() {
			write(1, r[0])
			write(2, r[1])
			row++
		}
		write(1, "Summary")
		write(2, res.Estate.Summary)

		_ = f.SetColWidth(sheet, "A", "A", 30)
		_ = f.SetColWidth(sheet, "B", "B", 80)
	} else {
		for _, fld := range res.Tax.Fields {
			write(1, fld.FieldID)
			if fld.Amount != nil {
				write(2, fld.Amount.Float64())
			}
			write(3, fld.Confidence.String())
			row++
		}
		style, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
		if err == nil {
			_ = f.SetCellStyle(sheet, "B2", fmt.Sprintf("B%d", row), style)
		}
		_ = f.SetColWidth(sheet, "A", "A", 8)
		_ = f.SetColWidth(sheet, "B", "C", 16)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
