// Package catalog talks to the remote product catalog: product lookup by
// barcode, supplier links for a product, and supplier profiles.
package catalog

import (
	"context"
	"errors"
)

var (
	// ErrProductNotFound means the catalog knows no product for the barcode.
	ErrProductNotFound = errors.New("product not found in catalog")
	// ErrNoSupplierLinked means the product exists but has no supplier link.
	ErrNoSupplierLinked = errors.New("product has no linked supplier")
	// ErrCatalogUnavailable covers transport-level failures: connection
	// errors, timeouts, and unexpected HTTP statuses from the catalog.
	ErrCatalogUnavailable = errors.New("catalog service unavailable")
)

// Product is the catalog's view of a product.
type Product struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// SupplierLink ties a product to one of its suppliers. The supplier
// reference is the supplier's own code for the product.
type SupplierLink struct {
	SupplierID        string `json:"supplier_id"`
	SupplierReference string `json:"supplier_reference"`
}

// Supplier is a supplier profile. Only the display name is used here.
type Supplier struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Client is the boundary to the remote catalog. All three lookups are
// synchronous request/response calls.
type Client interface {
	LookupProductByBarcode(ctx context.Context, barcode string) (*Product, error)
	LookupSupplierLinks(ctx context.Context, productID string) ([]SupplierLink, error)
	LookupSupplier(ctx context.Context, supplierID string) (*Supplier, error)
}
