package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/lojasmimi/trocas/backend/src/logger"
	"github.com/lojasmimi/trocas/backend/src/models"
)

// Resolver turns a normalized barcode into a full exchange item by chaining
// three dependent catalog lookups: product, first supplier link, supplier
// profile. Each step depends on the previous result, so the chain is strictly
// sequential and short-circuits on the first failure.
type Resolver struct {
	client Client
}

func NewResolver(client Client) *Resolver {
	return &Resolver{client: client}
}

// Resolve looks up the given normalized barcode. The returned item has its
// Quantity unset; the caller attaches the validated quantity. No retry is
// attempted here: a transport failure aborts the whole resolution.
func (r *Resolver) Resolve(ctx context.Context, barcode string) (*models.ExchangeItem, error) {
	product, err := r.client.LookupProductByBarcode(ctx, barcode)
	if err != nil {
		return nil, classifyResolutionError(err, "product lookup", barcode)
	}

	links, err := r.client.LookupSupplierLinks(ctx, product.ID)
	if err != nil {
		return nil, classifyResolutionError(err, "supplier link lookup", barcode)
	}
	if len(links) == 0 {
		return nil, fmt.Errorf("%w: barcode %s", ErrNoSupplierLinked, barcode)
	}
	// First link in catalog response order is authoritative.
	primary := links[0]

	supplier, err := r.client.LookupSupplier(ctx, primary.SupplierID)
	if err != nil {
		return nil, classifyResolutionError(err, "supplier lookup", barcode)
	}

	return &models.ExchangeItem{
		Barcode:      barcode,
		SupplierCode: primary.SupplierReference,
		Description:  product.Description,
		SupplierName: supplier.DisplayName,
	}, nil
}

// classifyResolutionError keeps the typed resolution errors intact and wraps
// anything unexpected with the step that produced it.
func classifyResolutionError(err error, step, barcode string) error {
	if errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrNoSupplierLinked) || errors.Is(err, ErrCatalogUnavailable) {
		return err
	}
	logger.L.Error("Unexpected resolution failure", "step", step, "barcode", barcode, "error", err)
	return fmt.Errorf("unexpected failure during %s for barcode %s: %w", step, barcode, err)
}
