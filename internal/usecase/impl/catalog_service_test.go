package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"storefront/config"
	"storefront/internal/domain/catalog"
	domainerrors "storefront/internal/domain/errors"
	mockService "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catalogServiceFixtures holds all test dependencies for catalog service tests.
type catalogServiceFixtures struct {
	service  usecase.CatalogUsecase
	provider *mockService.MockCatalogProvider
}

func createTestCatalogService(t *testing.T) catalogServiceFixtures {
	provider := mockService.NewMockCatalogProvider(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Catalog: &config.CatalogConfig{
			ImageBaseURL:   "https://cdn.example.com",
			UploadsSegment: "/uploads/",
		},
	}

	service := NewCatalogService(CatalogServiceParams{
		Provider: provider,
		Config:   cfg,
		Logger:   logger,
	})

	return catalogServiceFixtures{
		service:  service,
		provider: provider,
	}
}

func TestCatalogService_ListProducts_TransformsRawPayload(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	raws := []catalog.RawProduct{
		{
			ID:          "p1",
			Name:        "Submersible Pump",
			Price:       1000,
			Discount:    10,
			Images:      catalog.FlexStrings{"p1.jpg"},
			CategoryID:  &catalog.RawCategoryRef{Title: "submersiblePumps", IsParent: true},
			HasVariants: false,
		},
	}
	fx.provider.On("FetchProducts", ctx).Return(raws, nil).Once()

	products, err := fx.service.ListProducts(ctx)

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 900.0, products[0].Price)
	assert.Equal(t, "Submersible Pumps", products[0].Category)
	assert.Equal(t, []string{"https://cdn.example.com/uploads/p1.jpg"}, products[0].Images)
}

func TestCatalogService_ListProducts_UpstreamFailure(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	fx.provider.On("FetchProducts", ctx).Return(nil, errors.New("upstream timeout")).Once()

	_, err := fx.service.ListProducts(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrCatalogUnavailable)
}

func TestCatalogService_ListProductsByCategory_FuzzyMatch(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	raws := []catalog.RawProduct{
		{ID: "p1", Name: "Pump A", CategoryID: &catalog.RawCategoryRef{Title: "openWellSubmersiblePump", IsParent: true}},
		{ID: "p2", Name: "Pump B", CategoryID: &catalog.RawCategoryRef{Title: "monoblockPumps", IsParent: true}},
	}
	fx.provider.On("FetchProducts", ctx).Return(raws, nil).Once()

	// Hyphenated request spelling still matches the camel-cased upstream name.
	products, err := fx.service.ListProductsByCategory(ctx, "Open-Well-Submersible-Pump")

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	fx.provider.On("FetchProduct", ctx, "ghost").Return(nil, domainerrors.ErrProductNotFound).Once()

	_, err := fx.service.GetProduct(ctx, "ghost")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCatalogService_ListCategories_DeduplicatesTopLevel(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	raws := []catalog.RawCategory{
		{ID: "c1", Title: "openWellPumps", IsParent: true},
		{ID: "c2", Title: "smallPumps", ParentID: &catalog.RawCategoryRef{Title: "openWellPumps"}},
		{ID: "c3", Title: "controlPanels", IsParent: true},
	}
	fx.provider.On("FetchCategories", ctx).Return(raws, nil).Once()

	categories, err := fx.service.ListCategories(ctx)

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Open Well Pumps", categories[0].Title)
	assert.Equal(t, "Control Panels", categories[1].Title)
}
