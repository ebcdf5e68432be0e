// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// CatalogUsecase defines the interface for read-side catalog operations.
// Products and categories originate from the upstream commerce backend and
// are normalized before being returned.
type CatalogUsecase interface {
	// ListProducts returns every product, transformed into display form.
	ListProducts(ctx context.Context) ([]entity.Product, error)

	// ListProductsByCategory returns the products whose display category
	// matches the given name under fuzzy matching rules.
	ListProductsByCategory(ctx context.Context, category string) ([]entity.Product, error)

	// GetProduct returns a single product by its upstream ID.
	GetProduct(ctx context.Context, id string) (*entity.Product, error)

	// ListCategories returns the distinct top-level categories.
	ListCategories(ctx context.Context) ([]entity.Category, error)
}
