package service

import (
	"context"

	"storefront/internal/domain/catalog"
)

// CatalogProvider defines the interface for fetching raw catalog data from
// the upstream commerce backend. Implementations return upstream payloads
// as-is; normalization happens in the catalog package.
type CatalogProvider interface {
	// FetchProducts retrieves the full raw product list.
	FetchProducts(ctx context.Context) ([]catalog.RawProduct, error)

	// FetchProduct retrieves a single raw product by its upstream ID.
	FetchProduct(ctx context.Context, id string) (*catalog.RawProduct, error)

	// FetchCategories retrieves the full raw category list.
	FetchCategories(ctx context.Context) ([]catalog.RawCategory, error)
}
