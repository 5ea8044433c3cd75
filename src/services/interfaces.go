package services

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/lojasmimi/trocas/backend/src/ledger"
	"github.com/lojasmimi/trocas/backend/src/models"
)

var (
	ErrParsingFailed    = errors.New("error parsing batch file")
	ErrResolutionFailed = errors.New("error resolving product")
)

// ExchangeService is the core of the return-to-supplier workflow: single-item
// entry, batch ingestion and form rendering, always against a caller-owned
// session ledger. The service holds no ledger state of its own.
type ExchangeService interface {
	// AddItem validates and resolves one (barcode, quantity) pair and merges
	// it into the given ledger. Returns the resolved item with the validated
	// quantity attached.
	AddItem(ctx context.Context, led *ledger.Ledger, rawBarcode, rawQuantity string) (*models.ExchangeItem, error)

	// RemoveLastItem undoes the most recent ledger entry.
	RemoveLastItem(led *ledger.Ledger) (models.ExchangeItem, error)

	// ProcessBatchFile parses an uploaded batch file, runs the batch pipeline
	// and merges all successes into the ledger in report order. Row failures
	// appear in the report; only file-level problems (unreadable file,
	// missing required columns) return an error, before any ledger mutation.
	ProcessBatchFile(ctx context.Context, led *ledger.Ledger, file io.Reader, filename string) (*models.BatchReport, error)

	// RenderForm renders the ledger's current snapshot into the exchange
	// form. The ledger is left untouched.
	RenderForm(led *ledger.Ledger, meta models.FormMetadata) (*bytes.Buffer, error)

	// BatchTemplate produces the blank batch workbook for download.
	BatchTemplate() (*bytes.Buffer, error)
}
