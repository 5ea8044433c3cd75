package parsers

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/lojasmimi/trocas/backend/src/models"
)

type CSVParser struct{}

func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

func (p *CSVParser) Parse(file io.Reader) ([]models.BatchRow, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	barcodeCol, quantityCol, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read all CSV records: %w", err)
	}

	var rows []models.BatchRow
	for _, record := range records {
		barcode := cellAt(record, barcodeCol)
		quantity := cellAt(record, quantityCol)
		if isBlankRow(barcode, quantity) {
			continue
		}
		rows = append(rows, models.BatchRow{Barcode: barcode, Quantity: quantity})
	}
	return rows, nil
}
