package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Results"

// WriteXLSX writes rows to a single-sheet workbook at path. Values
// stay numeric cells so the file sorts and charts correctly; no-data
// periods leave the cell empty.
func WriteXLSX(path string, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheetName)

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return fmt.Errorf("writing workbook header: %w", err)
	}

	for i, r := range rows {
		var value any
		if r.Valid {
			value = r.Value
		} else {
			value = ""
		}
		row := []any{r.Indicator, r.Station, r.Freq, r.Period.Format("2006-01-02"), value, r.Units, r.status()}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing workbook row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing workbook row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
