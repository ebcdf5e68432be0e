package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	mockUC "storefront/internal/mocks/usecase"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// wishlistServiceFixtures holds all test dependencies for wishlist service tests.
type wishlistServiceFixtures struct {
	service      usecase.WishlistUsecase
	wishlistRepo *mockRepo.MockWishlistRepository
	sessionStore *mockRepo.MockSessionStore
	catalog      *mockUC.MockCatalogUsecase
}

func createTestWishlistService(t *testing.T) wishlistServiceFixtures {
	wishlistRepo := mockRepo.NewMockWishlistRepository(t)
	sessionStore := mockRepo.NewMockSessionStore(t)
	catalog := mockUC.NewMockCatalogUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewWishlistService(WishlistServiceParams{
		WishlistRepo: wishlistRepo,
		SessionStore: sessionStore,
		Catalog:      catalog,
		Logger:       logger,
	})

	return wishlistServiceFixtures{
		service:      service,
		wishlistRepo: wishlistRepo,
		sessionStore: sessionStore,
		catalog:      catalog,
	}
}

func TestWishlistService_GetWishlist_GuestWithoutWishlistGetsEmpty(t *testing.T) {
	fx := createTestWishlistService(t)

	ctx := context.Background()
	fx.sessionStore.On("GuestWishlist", ctx, "sess-1").Return(nil, repository.ErrSessionKeyNotFound).Once()

	wishlist, err := fx.service.GetWishlist(ctx, guestIdentity("sess-1"))

	require.NoError(t, err)
	assert.True(t, wishlist.IsEmpty())
}

func TestWishlistService_GetWishlist_UserWithoutWishlistGetsEmpty(t *testing.T) {
	fx := createTestWishlistService(t)

	ctx := context.Background()
	userID := uuid.New()
	fx.wishlistRepo.On("FindByUser", ctx, userID).Return(nil, repository.ErrWishlistNotFound).Once()

	wishlist, err := fx.service.GetWishlist(ctx, userIdentity(userID))

	require.NoError(t, err)
	assert.True(t, wishlist.IsEmpty())
}

func TestWishlistService_AddItem_GuestNewEntry(t *testing.T) {
	fx := createTestWishlistService(t)

	ctx := context.Background()
	product := &entity.Product{ID: "p1", Name: "Submersible Pump", Price: 900, Images: []string{"https://cdn.example.com/uploads/p1.jpg"}}

	fx.catalog.On("GetProduct", ctx, "p1").Return(product, nil).Once()
	fx.sessionStore.On("GuestWishlist", ctx, "sess-2").Return(nil, repository.ErrSessionKeyNotFound).Once()
	fx.sessionStore.On("SaveGuestWishlist", ctx, "sess-2", mock.AnythingOfType("*entity.Wishlist")).Return(nil).Once()

	wishlist, err := fx.service.AddItem(ctx, guestIdentity("sess-2"), "p1")

	require.NoError(t, err)
	require.Len(t, wishlist.Items, 1)
	assert.Equal(t, "Submersible Pump", wishlist.Items[0].Name)
	assert.Equal(t, "https://cdn.example.com/uploads/p1.jpg", wishlist.Items[0].Image)
}

func TestWishlistService_AddItem_GuestDoesNotDuplicate(t *testing.T) {
	fx := createTestWishlistService(t)

	ctx := context.Background()
	product := &entity.Product{ID: "p1", Name: "Pump", Price: 850}
	existing := &entity.Wishlist{Items: []entity.WishlistItem{
		{ProductID: "p1", Name: "Pump", Price: 900},
	}}

	fx.catalog.On("GetProduct", ctx, "p1").Return(product, nil).Once()
	fx.sessionStore.On("GuestWishlist", ctx, "sess-3").Return(existing, nil).Once()
	fx.sessionStore.On("SaveGuestWishlist", ctx, "sess-3", mock.AnythingOfType("*entity.Wishlist")).Return(nil).Once()

	wishlist, err := fx.service.AddItem(ctx, guestIdentity("sess-3"), "p1")

	// Saving again refreshes the snapshot instead of adding a second entry.
	require.NoError(t, err)
	require.Len(t, wishlist.Items, 1)
	assert.Equal(t, 850.0, wishlist.Items[0].Price)
}

func TestWishlistService_AddItem_AuthenticatedUsesRepository(t *testing.T) {
	fx := createTestWishlistService(t)

	ctx := context.Background()
	userID := uuid.New()
	product := &entity.Product{ID: "p1", Name: "Pump", Price: 250}
	stored := &entity.Wishlist{Items: []entity.WishlistItem{
		{ProductID: "p1", Name: "Pump", Price: 250},
	}}

	fx.catalog.On("GetProduct", ctx, "p1").Return(product, nil).Once()
	fx.wishlistRepo.On("AddItem", ctx, userID, mock.AnythingOfType("entity.WishlistItem")).Return(nil).Once()
	fx.wishlistRepo.On("FindByUser", ctx, userID).Return(stored, nil).Once()

	wishlist, err := fx.service.AddItem(ctx, userIdentity(userID), "p1")

	require.NoError(t, err)
	assert.Equal(t, stored, wishlist)
}

func TestWishlistService_AddItem_BackendFailureFallsBackToSessionCopy(t *testing.T) {
	fx := createTestWishlistService(t)

	ctx := context.Background()
	userID := uuid.New()
	product := &entity.Product{ID: "p1", Name: "Pump", Price: 250}

	fx.catalog.On("GetProduct", ctx, "p1").Return(product, nil).Once()
	fx.wishlistRepo.On("AddItem", ctx, userID, mock.AnythingOfType("entity.WishlistItem")).
		Return(errors.New("connection reset")).Once()
	fx.sessionStore.On("GuestWishlist", ctx, "sess-4").Return(nil, repository.ErrSessionKeyNotFound).Once()
	fx.sessionStore.On("SaveGuestWishlist", ctx, "sess-4", mock.AnythingOfType("*entity.Wishlist")).Return(nil).Once()

	wishlist, err := fx.service.AddItem(ctx, userSessionIdentity(userID, "sess-4"), "p1")

	require.NoError(t, err)
	require.Len(t, wishlist.Items, 1)
	assert.Equal(t, "p1", wishlist.Items[0].ProductID)
}

func TestWishlistService_RemoveItem_Guest(t *testing.T) {
	fx := createTestWishlistService(t)

	ctx := context.Background()
	existing := &entity.Wishlist{Items: []entity.WishlistItem{
		{ProductID: "p1", Name: "Pump", Price: 100},
		{ProductID: "p2", Name: "Panel", Price: 50},
	}}

	fx.sessionStore.On("GuestWishlist", ctx, "sess-5").Return(existing, nil).Once()
	fx.sessionStore.On("SaveGuestWishlist", ctx, "sess-5", mock.AnythingOfType("*entity.Wishlist")).Return(nil).Once()

	wishlist, err := fx.service.RemoveItem(ctx, guestIdentity("sess-5"), "p1")

	require.NoError(t, err)
	require.Len(t, wishlist.Items, 1)
	assert.Equal(t, "p2", wishlist.Items[0].ProductID)
}

func TestWishlistService_RemoveItem_MissingEntryIsNotAnError(t *testing.T) {
	fx := createTestWishlistService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.wishlistRepo.On("RemoveItem", ctx, userID, "ghost").Return(repository.ErrWishlistNotFound).Once()
	fx.wishlistRepo.On("FindByUser", ctx, userID).Return(nil, repository.ErrWishlistNotFound).Once()

	wishlist, err := fx.service.RemoveItem(ctx, userIdentity(userID), "ghost")

	require.NoError(t, err)
	assert.True(t, wishlist.IsEmpty())
}

func TestWishlistService_AddItem_RejectsEmptyProductID(t *testing.T) {
	fx := createTestWishlistService(t)

	_, err := fx.service.AddItem(context.Background(), guestIdentity("sess-6"), "")

	require.Error(t, err)
}
