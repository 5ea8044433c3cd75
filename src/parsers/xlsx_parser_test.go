package parsers

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/lojasmimi/trocas/backend/src/models"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestXLSXParser(t *testing.T) {
	t.Run("reads rows below the header", func(t *testing.T) {
		buf := buildWorkbook(t, [][]interface{}{
			{"CODIGO DE BARRAS", "QUANTIDADE"},
			{"7891234567890", 2},
			{"111", 5},
		})

		rows, err := NewXLSXParser().Parse(buf)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, models.BatchRow{Barcode: "7891234567890", Quantity: "2"}, rows[0])
		assert.Equal(t, models.BatchRow{Barcode: "111", Quantity: "5"}, rows[1])
	})

	t.Run("missing required column is a precondition failure", func(t *testing.T) {
		buf := buildWorkbook(t, [][]interface{}{
			{"CODIGO DE BARRAS", "LOJA"},
			{"111", "Centro"},
		})

		_, err := NewXLSXParser().Parse(buf)
		assert.ErrorIs(t, err, ErrMissingColumns)
	})

	t.Run("not an xlsx file", func(t *testing.T) {
		_, err := NewXLSXParser().Parse(bytes.NewReader([]byte("plain text")))
		assert.Error(t, err)
	})
}
