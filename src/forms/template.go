package forms

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteBatchTemplate builds the blank two-column workbook operators download
// as a starting point for batch uploads. No validation applies here; the
// header labels are what the batch parsers look for on the way back in.
func WriteBatchTemplate() (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetCellValue(sheet, "A1", "CODIGO DE BARRAS"); err != nil {
		return nil, fmt.Errorf("writing batch template header: %w", err)
	}
	if err := f.SetCellValue(sheet, "B1", "QUANTIDADE"); err != nil {
		return nil, fmt.Errorf("writing batch template header: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", "A", 24); err != nil {
		return nil, fmt.Errorf("sizing batch template columns: %w", err)
	}
	if err := f.SetColWidth(sheet, "B", "B", 14); err != nil {
		return nil, fmt.Errorf("sizing batch template columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing batch template: %w", err)
	}
	return buf, nil
}
