// Package processors turns uploaded batch rows into a batch report: coalesce
// duplicate barcodes, validate each row locally, resolve survivors against
// the catalog, and collect per-row outcomes without ever aborting the run.
package processors

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/lojasmimi/trocas/backend/src/logger"
	"github.com/lojasmimi/trocas/backend/src/models"
	"github.com/lojasmimi/trocas/backend/src/validation"
)

// ItemResolver resolves one normalized barcode into an exchange item with the
// quantity left unset. Satisfied by *catalog.Resolver.
type ItemResolver interface {
	Resolve(ctx context.Context, barcode string) (*models.ExchangeItem, error)
}

// CoalesceRows merges rows that repeat the same raw barcode text, summing
// their quantities, preserving first-appearance order. This runs before
// validation so one resolver call (and at most one failure record) serves all
// occurrences of a barcode in one upload. Quantities that fail to parse pass
// through untouched so validation can report them.
func CoalesceRows(rows []models.BatchRow) []models.CoalescedRow {
	var out []models.CoalescedRow
	index := make(map[string]int)

	for _, row := range rows {
		pos, seen := index[row.Barcode]
		if !seen {
			index[row.Barcode] = len(out)
			out = append(out, models.CoalescedRow{Barcode: row.Barcode, Quantity: row.Quantity})
			continue
		}
		prev, errPrev := strconv.Atoi(out[pos].Quantity)
		if errPrev != nil {
			// Already fails validation; no sum to maintain.
			continue
		}
		next, errNext := strconv.Atoi(row.Quantity)
		if errNext != nil {
			// Carry the bad value so validation reports this barcode.
			out[pos].Quantity = row.Quantity
			continue
		}
		out[pos].Quantity = strconv.Itoa(prev + next)
	}
	return out
}

// rowOutcome is the result slot for one coalesced row. Exactly one of item or
// failure is set; both nil means the row was never resolved (cancelled run).
type rowOutcome struct {
	item    *models.ExchangeItem
	failure *models.BatchFailure
}

// BatchProcessor orchestrates coalescing, validation and resolution over the
// rows of one batch upload. It never mutates the ledger; its successes are
// merged by the caller in report order.
type BatchProcessor struct {
	resolver    ItemResolver
	concurrency int
}

func NewBatchProcessor(resolver ItemResolver, concurrency int) *BatchProcessor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &BatchProcessor{resolver: resolver, concurrency: concurrency}
}

// ProcessBatch runs the full pipeline over raw rows. Failure of one row never
// aborts the batch; each distinct barcode yields exactly one success or one
// failure record, ordered by first appearance in the upload. Rows may resolve
// concurrently but the report order is deterministic.
//
// If ctx is cancelled mid-run, no new resolutions are issued and the report
// contains only the rows that completed.
func (p *BatchProcessor) ProcessBatch(ctx context.Context, rows []models.BatchRow) *models.BatchReport {
	coalesced := CoalesceRows(rows)
	outcomes := make([]rowOutcome, len(coalesced))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, row := range coalesced {
		// Local validation is cheap and never touches the network; do it
		// inline so invalid rows never occupy a resolver slot.
		barcode, err := validation.NormalizeBarcode(row.Barcode)
		if err != nil {
			outcomes[i] = rowOutcome{failure: &models.BatchFailure{Barcode: row.Barcode, Reason: err.Error()}}
			continue
		}
		quantity, err := validation.NormalizeQuantity(row.Quantity)
		if err != nil {
			outcomes[i] = rowOutcome{failure: &models.BatchFailure{Barcode: row.Barcode, Reason: err.Error()}}
			continue
		}

		g.Go(func() error {
			if gctx.Err() != nil {
				return nil // abandoned run: stop issuing new resolutions
			}
			item, err := p.resolver.Resolve(gctx, barcode)
			if err != nil {
				outcomes[i] = rowOutcome{failure: &models.BatchFailure{Barcode: row.Barcode, Reason: err.Error()}}
				return nil
			}
			item.Quantity = quantity
			outcomes[i] = rowOutcome{item: item}
			return nil
		})
	}

	// Workers never return errors; Wait only fences completion.
	_ = g.Wait()

	report := &models.BatchReport{
		Successes: []models.ExchangeItem{},
		Failures:  []models.BatchFailure{},
	}
	for _, outcome := range outcomes {
		switch {
		case outcome.item != nil:
			report.Successes = append(report.Successes, *outcome.item)
		case outcome.failure != nil:
			report.Failures = append(report.Failures, *outcome.failure)
		}
	}

	logger.L.Info("Batch processed",
		"rows", len(rows),
		"distinctBarcodes", len(coalesced),
		"successes", len(report.Successes),
		"failures", len(report.Failures))
	return report
}
