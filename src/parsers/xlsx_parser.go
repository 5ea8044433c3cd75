package parsers

import (
	"fmt"
	"io"

	"github.com/lojasmimi/trocas/backend/src/models"
	"github.com/xuri/excelize/v2"
)

type XLSXParser struct{}

func NewXLSXParser() *XLSXParser {
	return &XLSXParser{}
}

func (p *XLSXParser) Parse(file io.Reader) ([]models.BatchRow, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}

	allRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read XLSX rows: %w", err)
	}
	if len(allRows) == 0 {
		return nil, ErrMissingColumns
	}

	barcodeCol, quantityCol, err := locateColumns(allRows[0])
	if err != nil {
		return nil, err
	}

	var rows []models.BatchRow
	for _, record := range allRows[1:] {
		barcode := cellAt(record, barcodeCol)
		quantity := cellAt(record, quantityCol)
		if isBlankRow(barcode, quantity) {
			continue
		}
		rows = append(rows, models.BatchRow{Barcode: barcode, Quantity: quantity})
	}
	return rows, nil
}
