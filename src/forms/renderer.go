// Package forms renders the session ledger into the printable exchange form
// and produces the blank batch template operators start from.
package forms

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lojasmimi/trocas/backend/src/logger"
	"github.com/lojasmimi/trocas/backend/src/models"
	"github.com/lojasmimi/trocas/backend/src/validation"
)

// ErrTemplateLoad means the base form template could not be opened.
var ErrTemplateLoad = errors.New("failed to load exchange form template")

// Layout of the FORM-TROCAS template. The data region starts at row 6 and
// grows downward to fit the ledger; the trailer starts one blank row after
// the last data row.
const (
	firstDataRow   = 6
	headerDateCell = "E3"
	dataRowHeight  = 22.0

	boxRowOffset       = 1
	respRowOffset      = 2
	signatureRowOffset = 3
)

var dataColumns = []string{"A", "B", "C", "D", "E"}

// Renderer writes ledger snapshots into copies of the base form template.
type Renderer struct {
	templatePath string
	now          func() time.Time
}

func NewRenderer(templatePath string) *Renderer {
	return &Renderer{templatePath: templatePath, now: time.Now}
}

// Render produces the filled exchange form for the given snapshot. One row
// per item in snapshot order, then a box-number row, a responsible row and a
// blank signature row one empty row below the data region. An empty snapshot
// still renders the trailer. The ledger itself is never touched here; a
// failed render can simply be retried.
func (r *Renderer) Render(snapshot []models.ExchangeItem, meta models.FormMetadata) (*bytes.Buffer, error) {
	f, err := excelize.OpenFile(r.templatePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateLoad, r.templatePath, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: template has no sheets", ErrTemplateLoad)
	}

	styleID, err := f.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating cell style: %w", err)
	}

	if err := f.SetCellValue(sheet, headerDateCell, r.now().Format("02/01/2006")); err != nil {
		return nil, fmt.Errorf("writing generation date: %w", err)
	}

	for i, item := range snapshot {
		row := firstDataRow + i
		cells := []interface{}{
			item.Barcode,
			validation.SanitizeForFormulaInjection(item.SupplierCode),
			validation.SanitizeForFormulaInjection(item.SupplierName),
			validation.SanitizeForFormulaInjection(item.Description),
			item.Quantity,
		}
		for c, value := range cells {
			cell := fmt.Sprintf("%s%d", dataColumns[c], row)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("writing data row %d: %w", row, err)
			}
		}
		if err := styleRow(f, sheet, row, styleID); err != nil {
			return nil, err
		}
	}

	trailerBase := firstDataRow + len(snapshot)
	boxRow := trailerBase + boxRowOffset
	respRow := trailerBase + respRowOffset
	signatureRow := trailerBase + signatureRowOffset

	if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", boxRow), "Nº DA CAIXA:"); err != nil {
		return nil, fmt.Errorf("writing box number row: %w", err)
	}
	if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", boxRow), validation.SanitizeForFormulaInjection(meta.BoxNumber)); err != nil {
		return nil, fmt.Errorf("writing box number row: %w", err)
	}
	if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", respRow), "RESPONSÁVEL:"); err != nil {
		return nil, fmt.Errorf("writing responsible row: %w", err)
	}
	if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", respRow), validation.SanitizeForFormulaInjection(meta.Responsible)); err != nil {
		return nil, fmt.Errorf("writing responsible row: %w", err)
	}
	for _, row := range []int{boxRow, respRow, signatureRow} {
		if err := styleRow(f, sheet, row, styleID); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing exchange form: %w", err)
	}

	logger.L.Info("Exchange form rendered", "items", len(snapshot), "boxNumber", meta.BoxNumber)
	return buf, nil
}

func styleRow(f *excelize.File, sheet string, row, styleID int) error {
	first := fmt.Sprintf("%s%d", dataColumns[0], row)
	last := fmt.Sprintf("%s%d", dataColumns[len(dataColumns)-1], row)
	if err := f.SetCellStyle(sheet, first, last, styleID); err != nil {
		return fmt.Errorf("styling row %d: %w", row, err)
	}
	if err := f.SetRowHeight(sheet, row, dataRowHeight); err != nil {
		return fmt.Errorf("setting height of row %d: %w", row, err)
	}
	return nil
}
