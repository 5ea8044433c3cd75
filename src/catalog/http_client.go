package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/lojasmimi/trocas/backend/src/logger"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const supplierCacheCleanupInterval = 30 * time.Minute

// httpClientImpl implements Client against the catalog's HTTP API.
// Outbound calls are paced by a rate limiter, and supplier profiles are
// cached for a short TTL since one batch tends to hit the same supplier
// over and over.
type httpClientImpl struct {
	baseURL       string
	apiToken      string
	httpClient    *http.Client
	limiter       *rate.Limiter
	supplierCache *cache.Cache
}

// ClientOptions configures the HTTP catalog client.
type ClientOptions struct {
	BaseURL          string
	APIToken         string
	Timeout          time.Duration
	RateLimitRPS     float64
	SupplierCacheTTL time.Duration
}

// NewHTTPClient creates a catalog client for the given options.
func NewHTTPClient(opts ClientOptions) Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.RateLimitRPS <= 0 {
		opts.RateLimitRPS = 8
	}
	if opts.SupplierCacheTTL <= 0 {
		opts.SupplierCacheTTL = 10 * time.Minute
	}
	return &httpClientImpl{
		baseURL:       opts.BaseURL,
		apiToken:      opts.APIToken,
		httpClient:    &http.Client{Timeout: opts.Timeout},
		limiter:       rate.NewLimiter(rate.Limit(opts.RateLimitRPS), 1),
		supplierCache: cache.New(opts.SupplierCacheTTL, supplierCacheCleanupInterval),
	}
}

func (c *httpClientImpl) LookupProductByBarcode(ctx context.Context, barcode string) (*Product, error) {
	lookupURL := fmt.Sprintf("%s/api/products?barcode=%s", c.baseURL, url.QueryEscape(barcode))

	var product Product
	status, err := c.getJSON(ctx, lookupURL, &product)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound || product.ID == "" {
		return nil, fmt.Errorf("%w: barcode %s", ErrProductNotFound, barcode)
	}
	return &product, nil
}

func (c *httpClientImpl) LookupSupplierLinks(ctx context.Context, productID string) ([]SupplierLink, error) {
	lookupURL := fmt.Sprintf("%s/api/products/%s/suppliers", c.baseURL, url.PathEscape(productID))

	var links []SupplierLink
	status, err := c.getJSON(ctx, lookupURL, &links)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	return links, nil
}

func (c *httpClientImpl) LookupSupplier(ctx context.Context, supplierID string) (*Supplier, error) {
	if cached, found := c.supplierCache.Get(supplierID); found {
		supplier := cached.(Supplier)
		return &supplier, nil
	}

	lookupURL := fmt.Sprintf("%s/api/suppliers/%s", c.baseURL, url.PathEscape(supplierID))

	var supplier Supplier
	status, err := c.getJSON(ctx, lookupURL, &supplier)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("%w: supplier %s", ErrProductNotFound, supplierID)
	}

	c.supplierCache.Set(supplierID, supplier, cache.DefaultExpiration)
	return &supplier, nil
}

// getJSON performs a paced, authenticated GET and decodes the body into out.
// A 404 is returned as a status for the caller to interpret; any other
// non-200 status and any transport error map to ErrCatalogUnavailable.
func (c *httpClientImpl) getJSON(ctx context.Context, lookupURL string, out interface{}) (int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.L.Warn("Catalog request failed", "url", lookupURL, "error", err)
		return 0, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("%w: decoding response: %v", ErrCatalogUnavailable, err)
		}
		return resp.StatusCode, nil
	case resp.StatusCode == http.StatusNotFound:
		return resp.StatusCode, nil
	default:
		logger.L.Warn("Catalog returned unexpected status", "url", lookupURL, "status", resp.StatusCode)
		return resp.StatusCode, fmt.Errorf("%w: unexpected status %d", ErrCatalogUnavailable, resp.StatusCode)
	}
}
