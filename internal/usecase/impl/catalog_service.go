// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/catalog"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface. It fetches raw
// upstream payloads through the CatalogProvider and normalizes them with
// the catalog package before anything leaves this layer.
type catalogService struct {
	provider    service.CatalogProvider
	transformer *catalog.Transformer
	logger      *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	Provider service.CatalogProvider
	Config   *config.Config
	Logger   *slog.Logger
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		provider:    params.Provider,
		transformer: catalog.NewTransformer(params.Config.Catalog.ImageBaseURL, params.Config.Catalog.UploadsSegment),
		logger:      params.Logger,
	}
}

// ListProducts returns every product, transformed into display form.
func (srv *catalogService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	raws, err := srv.provider.FetchProducts(ctx)
	if err != nil {
		srv.logger.Error("Failed to fetch products from upstream", "error", err)

		return nil, errors.Wrap(domainerrors.ErrCatalogUnavailable, "failed to fetch products")
	}

	products := make([]entity.Product, 0, len(raws))
	for i := range raws {
		products = append(products, srv.transformer.Transform(&raws[i]))
	}

	return products, nil
}

// ListProductsByCategory returns the products whose display category
// matches the given name under fuzzy matching rules.
func (srv *catalogService) ListProductsByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	products, err := srv.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if catalog.NamesMatch(p.Category, category) {
			matched = append(matched, p)
		}
	}

	return matched, nil
}

// GetProduct returns a single product by its upstream ID.
func (srv *catalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	raw, err := srv.provider.FetchProduct(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrProductNotFound) {
			return nil, err
		}
		srv.logger.Error("Failed to fetch product from upstream", "error", err, "productID", id)

		return nil, errors.Wrap(domainerrors.ErrCatalogUnavailable, "failed to fetch product")
	}
	if raw == nil {
		return nil, domainerrors.ErrProductNotFound.WrapMessage("product not found")
	}

	product := srv.transformer.Transform(raw)

	return &product, nil
}

// ListCategories returns the distinct top-level categories, in upstream
// order. Child categories collapse into their parent.
func (srv *catalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	raws, err := srv.provider.FetchCategories(ctx)
	if err != nil {
		srv.logger.Error("Failed to fetch categories from upstream", "error", err)

		return nil, errors.Wrap(domainerrors.ErrCatalogUnavailable, "failed to fetch categories")
	}

	seen := make(map[string]bool, len(raws))
	categories := make([]entity.Category, 0, len(raws))
	for i := range raws {
		raw := &raws[i]
		title := catalog.TopLevelName(raw)
		if title == "" {
			continue
		}
		key := catalog.NormalizeName(title)
		if seen[key] {
			continue
		}
		seen[key] = true

		categories = append(categories, entity.Category{
			ID:          raw.CategoryID(),
			Title:       title,
			EnglishName: raw.EnglishName,
			Slug:        raw.Slug,
			IsParent:    raw.IsParent,
		})
	}

	return categories, nil
}
