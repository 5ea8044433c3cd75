package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBarcode(t *testing.T) {
	t.Run("pads short numeric codes to 14 digits", func(t *testing.T) {
		got, err := NormalizeBarcode("7891234567890")
		require.NoError(t, err)
		assert.Equal(t, "07891234567890", got)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		got, err := NormalizeBarcode("  123  ")
		require.NoError(t, err)
		assert.Equal(t, "00000000000123", got)
	})

	t.Run("is idempotent on its own output", func(t *testing.T) {
		first, err := NormalizeBarcode("111")
		require.NoError(t, err)
		second, err := NormalizeBarcode(first)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("keeps a full 14 digit code unchanged", func(t *testing.T) {
		got, err := NormalizeBarcode("12345678901234")
		require.NoError(t, err)
		assert.Equal(t, "12345678901234", got)
	})

	t.Run("rejects blank input", func(t *testing.T) {
		for _, raw := range []string{"", "   ", "\t"} {
			_, err := NormalizeBarcode(raw)
			assert.ErrorIs(t, err, ErrBarcodeEmpty, "input %q", raw)
		}
	})

	t.Run("rejects non-numeric input", func(t *testing.T) {
		for _, raw := range []string{"abc", "123a", "12 34", "12-34", "1.5"} {
			_, err := NormalizeBarcode(raw)
			assert.ErrorIs(t, err, ErrBarcodeNotNumeric, "input %q", raw)
		}
	})

	t.Run("rejects codes longer than 14 digits", func(t *testing.T) {
		_, err := NormalizeBarcode("123456789012345")
		assert.ErrorIs(t, err, ErrBarcodeTooLong)
	})
}

func TestNormalizeQuantity(t *testing.T) {
	t.Run("accepts positive integers", func(t *testing.T) {
		for raw, want := range map[string]int{"1": 1, "5": 5, " 42 ": 42, "100000": 100000} {
			got, err := NormalizeQuantity(raw)
			require.NoError(t, err, "input %q", raw)
			assert.Equal(t, want, got)
		}
	})

	t.Run("rejects non-numeric text", func(t *testing.T) {
		for _, raw := range []string{"", "abc", "1.5", "two"} {
			_, err := NormalizeQuantity(raw)
			assert.ErrorIs(t, err, ErrQuantityNotANumber, "input %q", raw)
		}
	})

	t.Run("rejects zero and negatives", func(t *testing.T) {
		for _, raw := range []string{"0", "-1", "-100"} {
			_, err := NormalizeQuantity(raw)
			assert.ErrorIs(t, err, ErrQuantityNotPositive, "input %q", raw)
		}
	})
}
