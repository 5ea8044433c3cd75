package parsers

import (
	"errors"
	"io"
	"strings"

	"github.com/lojasmimi/trocas/backend/src/models"
)

// ErrMissingColumns is returned before any row processing when the batch
// file lacks a barcode or quantity column.
var ErrMissingColumns = errors.New("batch file must contain a barcode and a quantity column")

// Parser reads a batch file into raw (barcode, quantity) rows in file order.
type Parser interface {
	Parse(file io.Reader) ([]models.BatchRow, error)
}

// Header labels accepted for the two required columns. The printed forms and
// exported templates use the Portuguese labels; the English ones are kept for
// hand-made files.
var (
	barcodeHeaders  = map[string]bool{"CODIGO DE BARRAS": true, "CODIGO BARRA": true, "BARCODE": true}
	quantityHeaders = map[string]bool{"QUANTIDADE": true, "QUANTITY": true}
)

// locateColumns finds the barcode and quantity column indices in a header
// row, matching case-insensitively on the trimmed label.
func locateColumns(header []string) (barcodeCol, quantityCol int, err error) {
	barcodeCol, quantityCol = -1, -1
	for i, label := range header {
		normalized := strings.ToUpper(strings.TrimSpace(label))
		switch {
		case barcodeHeaders[normalized] && barcodeCol == -1:
			barcodeCol = i
		case quantityHeaders[normalized] && quantityCol == -1:
			quantityCol = i
		}
	}
	if barcodeCol == -1 || quantityCol == -1 {
		return -1, -1, ErrMissingColumns
	}
	return barcodeCol, quantityCol, nil
}

func cellAt(record []string, col int) string {
	if col < len(record) {
		return strings.TrimSpace(record[col])
	}
	return ""
}

func isBlankRow(barcode, quantity string) bool {
	return barcode == "" && quantity == ""
}
