package services

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/lojasmimi/trocas/backend/src/forms"
	"github.com/lojasmimi/trocas/backend/src/ledger"
	"github.com/lojasmimi/trocas/backend/src/logger"
	"github.com/lojasmimi/trocas/backend/src/models"
	"github.com/lojasmimi/trocas/backend/src/parsers"
	"github.com/lojasmimi/trocas/backend/src/processors"
	"github.com/lojasmimi/trocas/backend/src/validation"
)

type exchangeServiceImpl struct {
	resolver  processors.ItemResolver
	processor *processors.BatchProcessor
	renderer  *forms.Renderer
}

func NewExchangeService(resolver processors.ItemResolver, processor *processors.BatchProcessor, renderer *forms.Renderer) ExchangeService {
	return &exchangeServiceImpl{
		resolver:  resolver,
		processor: processor,
		renderer:  renderer,
	}
}

func (s *exchangeServiceImpl) AddItem(ctx context.Context, led *ledger.Ledger, rawBarcode, rawQuantity string) (*models.ExchangeItem, error) {
	barcode, err := validation.NormalizeBarcode(rawBarcode)
	if err != nil {
		return nil, err
	}
	quantity, err := validation.NormalizeQuantity(rawQuantity)
	if err != nil {
		return nil, err
	}

	item, err := s.resolver.Resolve(ctx, barcode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResolutionFailed, err)
	}
	item.Quantity = quantity

	led.Upsert(*item)
	logger.L.Info("Item added to exchange ledger",
		"barcode", item.Barcode, "quantity", quantity, "ledgerSize", led.Len())
	return item, nil
}

func (s *exchangeServiceImpl) RemoveLastItem(led *ledger.Ledger) (models.ExchangeItem, error) {
	removed, err := led.RemoveLast()
	if err != nil {
		return models.ExchangeItem{}, err
	}
	logger.L.Info("Last item removed from exchange ledger",
		"barcode", removed.Barcode, "ledgerSize", led.Len())
	return removed, nil
}

func (s *exchangeServiceImpl) ProcessBatchFile(ctx context.Context, led *ledger.Ledger, file io.Reader, filename string) (*models.BatchReport, error) {
	parser, err := parsers.GetParser(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	rows, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	report := s.processor.ProcessBatch(ctx, rows)

	// Merge in report order, same accumulation rule as single entry.
	// Failures never block merging the successes.
	for _, item := range report.Successes {
		led.Upsert(item)
	}
	return report, nil
}

func (s *exchangeServiceImpl) RenderForm(led *ledger.Ledger, meta models.FormMetadata) (*bytes.Buffer, error) {
	meta.BoxNumber = validation.SanitizeMetadataField(meta.BoxNumber)
	meta.Responsible = validation.SanitizeMetadataField(meta.Responsible)
	return s.renderer.Render(led.Snapshot(), meta)
}

func (s *exchangeServiceImpl) BatchTemplate() (*bytes.Buffer, error) {
	return forms.WriteBatchTemplate()
}
