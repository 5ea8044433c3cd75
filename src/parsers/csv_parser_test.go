package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojasmimi/trocas/backend/src/models"
)

func TestCSVParser(t *testing.T) {
	t.Run("reads rows in file order", func(t *testing.T) {
		input := "CODIGO DE BARRAS,QUANTIDADE\n7891234567890,2\n111,5\n"
		rows, err := NewCSVParser().Parse(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, models.BatchRow{Barcode: "7891234567890", Quantity: "2"}, rows[0])
		assert.Equal(t, models.BatchRow{Barcode: "111", Quantity: "5"}, rows[1])
	})

	t.Run("accepts english headers in any column order", func(t *testing.T) {
		input := "QUANTITY,BARCODE\n3,222\n"
		rows, err := NewCSVParser().Parse(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, models.BatchRow{Barcode: "222", Quantity: "3"}, rows[0])
	})

	t.Run("ignores extra columns and blank rows", func(t *testing.T) {
		input := "LOJA,CODIGO DE BARRAS,QUANTIDADE\nCentro,111,1\n,,\nCentro,222,2\n"
		rows, err := NewCSVParser().Parse(strings.NewReader(input))
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("keeps malformed values for downstream validation", func(t *testing.T) {
		input := "CODIGO DE BARRAS,QUANTIDADE\nabc,muitos\n"
		rows, err := NewCSVParser().Parse(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "abc", rows[0].Barcode)
		assert.Equal(t, "muitos", rows[0].Quantity)
	})

	t.Run("missing quantity column fails before any row is read", func(t *testing.T) {
		input := "CODIGO DE BARRAS,LOJA\n111,Centro\n"
		_, err := NewCSVParser().Parse(strings.NewReader(input))
		assert.ErrorIs(t, err, ErrMissingColumns)
	})

	t.Run("missing barcode column fails before any row is read", func(t *testing.T) {
		input := "QUANTIDADE\n2\n"
		_, err := NewCSVParser().Parse(strings.NewReader(input))
		assert.ErrorIs(t, err, ErrMissingColumns)
	})

	t.Run("empty file is a header error", func(t *testing.T) {
		_, err := NewCSVParser().Parse(strings.NewReader(""))
		assert.Error(t, err)
	})
}

func TestGetParser(t *testing.T) {
	p, err := GetParser("lote.csv")
	require.NoError(t, err)
	assert.IsType(t, &CSVParser{}, p)

	p, err = GetParser("LOTE.XLSX")
	require.NoError(t, err)
	assert.IsType(t, &XLSXParser{}, p)

	_, err = GetParser("lote.pdf")
	assert.Error(t, err)
}
