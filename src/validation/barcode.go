package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// BarcodeLength is the canonical EAN width used across the system. Shorter
// numeric codes are left-padded with zeros to this width.
const BarcodeLength = 14

var (
	ErrBarcodeEmpty       = errors.New("barcode is empty")
	ErrBarcodeNotNumeric  = errors.New("barcode must contain only digits")
	ErrBarcodeTooLong     = errors.New("barcode exceeds 14 digits")
	ErrQuantityNotANumber = errors.New("quantity is not a whole number")
	ErrQuantityNotPositive = errors.New("quantity must be at least 1")
)

// NormalizeBarcode validates a raw barcode and canonicalizes it to exactly 14
// digits. It is pure and never touches the network; every caller must run it
// before attempting a catalog lookup.
func NormalizeBarcode(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrBarcodeEmpty
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: %q", ErrBarcodeNotNumeric, raw)
		}
	}
	if len(trimmed) > BarcodeLength {
		return "", fmt.Errorf("%w: %q has %d", ErrBarcodeTooLong, raw, len(trimmed))
	}
	return strings.Repeat("0", BarcodeLength-len(trimmed)) + trimmed, nil
}

// NormalizeQuantity validates a raw quantity string and returns it as a
// positive integer. There is no upper bound.
func NormalizeQuantity(raw string) (int, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrQuantityNotANumber, raw)
	}
	if qty < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrQuantityNotPositive, qty)
	}
	return qty, nil
}
