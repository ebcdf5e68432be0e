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

// cartServiceFixtures holds all test dependencies for cart service tests.
type cartServiceFixtures struct {
	service      usecase.CartUsecase
	txManager    *mockRepo.MockTransactionManager
	cartRepo     *mockRepo.MockCartRepository
	sessionStore *mockRepo.MockSessionStore
	catalog      *mockUC.MockCatalogUsecase
}

func createTestCartService(t *testing.T) cartServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	cartRepo := mockRepo.NewMockCartRepository(t)
	sessionStore := mockRepo.NewMockSessionStore(t)
	catalog := mockUC.NewMockCatalogUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewCartService(CartServiceParams{
		TxManager:    txManager,
		CartRepo:     cartRepo,
		SessionStore: sessionStore,
		Catalog:      catalog,
		Logger:       logger,
	})

	return cartServiceFixtures{
		service:      service,
		txManager:    txManager,
		cartRepo:     cartRepo,
		sessionStore: sessionStore,
		catalog:      catalog,
	}
}

func guestIdentity(sessionID string) usecase.CartIdentity {
	return usecase.CartIdentity{SessionID: sessionID}
}

func userIdentity(userID uuid.UUID) usecase.CartIdentity {
	return usecase.CartIdentity{UserID: &userID}
}

func userSessionIdentity(userID uuid.UUID, sessionID string) usecase.CartIdentity {
	return usecase.CartIdentity{UserID: &userID, SessionID: sessionID}
}

func TestCartService_ReconcileOnLogin_MergesOnce(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	sessionID := "sess-1"
	guestCart := &entity.Cart{Items: []entity.CartItem{
		{ProductID: "p1", Name: "Pump", Price: 900, Quantity: 2},
	}}

	fx.sessionStore.On("GuestCart", ctx, sessionID).Return(guestCart, nil).Once()
	fx.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(args mock.Arguments) {
			fn := args.Get(1).(func(repository.RepositoryFactory) error)

			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)
			mockFactory.On("NewCartRepository").Return(mockCartRepo)
			mockCartRepo.On("UpsertItem", ctx, userID, guestCart.Items[0]).Return(nil).Once()

			require.NoError(t, fn(mockFactory))
		}).
		Return(nil).Once()
	fx.sessionStore.On("DeleteGuestCart", ctx, sessionID).Return(nil).Once()

	require.NoError(t, fx.service.ReconcileOnLogin(ctx, userID, sessionID))

	// Repeated logins from the same session must not merge again.
	require.NoError(t, fx.service.ReconcileOnLogin(ctx, userID, sessionID))
	require.NoError(t, fx.service.ReconcileOnLogin(ctx, userID, sessionID))

	fx.txManager.AssertNumberOfCalls(t, "Execute", 1)
}

func TestCartService_ReconcileOnLogin_EmptyGuestCartSkipsMerge(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.sessionStore.On("GuestCart", ctx, "sess-2").Return(nil, repository.ErrSessionKeyNotFound).Once()

	require.NoError(t, fx.service.ReconcileOnLogin(ctx, userID, "sess-2"))

	// Still counts as synced: no second lookup happens.
	require.NoError(t, fx.service.ReconcileOnLogin(ctx, userID, "sess-2"))
	fx.sessionStore.AssertNumberOfCalls(t, "GuestCart", 1)
}

func TestCartService_ReconcileOnLogin_FailureNotRetried(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	sessionID := "sess-3"
	guestCart := &entity.Cart{Items: []entity.CartItem{
		{ProductID: "p1", Name: "Pump", Price: 900, Quantity: 1},
	}}

	fx.sessionStore.On("GuestCart", ctx, sessionID).Return(guestCart, nil).Once()
	fx.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(errors.New("connection reset")).Once()

	require.Error(t, fx.service.ReconcileOnLogin(ctx, userID, sessionID))

	// A failed merge lands on synced; it is not retried automatically.
	require.NoError(t, fx.service.ReconcileOnLogin(ctx, userID, sessionID))
	fx.txManager.AssertNumberOfCalls(t, "Execute", 1)
}

func TestCartService_ReconcileOnLogin_ResetAllowsNewMerge(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	sessionID := "sess-4"

	fx.sessionStore.On("GuestCart", ctx, sessionID).Return(nil, repository.ErrSessionKeyNotFound).Twice()

	require.NoError(t, fx.service.ReconcileOnLogin(ctx, userID, sessionID))

	fx.service.ResetSession(sessionID)

	require.NoError(t, fx.service.ReconcileOnLogin(ctx, userID, sessionID))
	fx.sessionStore.AssertNumberOfCalls(t, "GuestCart", 2)
}

func TestCartService_GetCart_GuestWithoutCartGetsEmptyCart(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	fx.sessionStore.On("GuestCart", ctx, "sess-5").Return(nil, repository.ErrSessionKeyNotFound).Once()

	cart, err := fx.service.GetCart(ctx, guestIdentity("sess-5"))

	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 0.0, cart.Total)
}

func TestCartService_GetCart_UserWithoutCartGetsEmptyCart(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	fx.cartRepo.On("FindByUser", ctx, userID).Return(nil, repository.ErrCartNotFound).Once()

	cart, err := fx.service.GetCart(ctx, userIdentity(userID))

	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartService_AddItem_GuestNewLine(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	product := &entity.Product{ID: "p1", Name: "Submersible Pump", Price: 900, Images: []string{"https://cdn.example.com/uploads/p1.jpg"}}

	fx.catalog.On("GetProduct", ctx, "p1").Return(product, nil).Once()
	fx.sessionStore.On("GuestCart", ctx, "sess-6").Return(nil, repository.ErrSessionKeyNotFound).Once()
	fx.sessionStore.On("SaveGuestCart", ctx, "sess-6", mock.AnythingOfType("*entity.Cart")).Return(nil).Once()

	cart, err := fx.service.AddItem(ctx, guestIdentity("sess-6"), &usecase.AddCartItemInput{ProductID: "p1", Quantity: 2})

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Submersible Pump", cart.Items[0].Name)
	assert.Equal(t, "https://cdn.example.com/uploads/p1.jpg", cart.Items[0].Image)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 1800.0, cart.Total)
}

func TestCartService_AddItem_GuestSumsQuantities(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	product := &entity.Product{ID: "p1", Name: "Pump", Price: 100}
	existing := &entity.Cart{Items: []entity.CartItem{
		{ProductID: "p1", Name: "Pump", Price: 100, Quantity: 1},
	}}

	fx.catalog.On("GetProduct", ctx, "p1").Return(product, nil).Once()
	fx.sessionStore.On("GuestCart", ctx, "sess-7").Return(existing, nil).Once()
	fx.sessionStore.On("SaveGuestCart", ctx, "sess-7", mock.AnythingOfType("*entity.Cart")).Return(nil).Once()

	cart, err := fx.service.AddItem(ctx, guestIdentity("sess-7"), &usecase.AddCartItemInput{ProductID: "p1", Quantity: 3})

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Quantity)
	assert.Equal(t, 400.0, cart.Total)
}

func TestCartService_AddItem_AuthenticatedUsesRepository(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	product := &entity.Product{ID: "p1", Name: "Pump", Price: 250}
	stored := &entity.Cart{Items: []entity.CartItem{
		{ProductID: "p1", Name: "Pump", Price: 250, Quantity: 1},
	}, Total: 250}

	fx.catalog.On("GetProduct", ctx, "p1").Return(product, nil).Once()
	fx.cartRepo.On("UpsertItem", ctx, userID, mock.AnythingOfType("entity.CartItem")).Return(nil).Once()
	fx.cartRepo.On("FindByUser", ctx, userID).Return(stored, nil).Once()

	cart, err := fx.service.AddItem(ctx, userIdentity(userID), &usecase.AddCartItemInput{ProductID: "p1", Quantity: 1})

	require.NoError(t, err)
	assert.Equal(t, stored, cart)
}

func TestCartService_AddItem_BackendFailureFallsBackToSessionCopy(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	product := &entity.Product{ID: "p1", Name: "Pump", Price: 250}

	fx.catalog.On("GetProduct", ctx, "p1").Return(product, nil).Once()
	fx.cartRepo.On("UpsertItem", ctx, userID, mock.AnythingOfType("entity.CartItem")).
		Return(errors.New("connection reset")).Once()
	fx.sessionStore.On("GuestCart", ctx, "sess-12").Return(nil, repository.ErrSessionKeyNotFound).Once()
	fx.sessionStore.On("SaveGuestCart", ctx, "sess-12", mock.AnythingOfType("*entity.Cart")).Return(nil).Once()

	cart, err := fx.service.AddItem(ctx, userSessionIdentity(userID, "sess-12"), &usecase.AddCartItemInput{ProductID: "p1", Quantity: 2})

	// The item must remain visible even though the server write failed.
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 500.0, cart.Total)
}

func TestCartService_AddItem_BackendFailureWithoutSessionSurfaces(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	product := &entity.Product{ID: "p1", Name: "Pump", Price: 250}

	fx.catalog.On("GetProduct", ctx, "p1").Return(product, nil).Once()
	fx.cartRepo.On("UpsertItem", ctx, userID, mock.AnythingOfType("entity.CartItem")).
		Return(errors.New("connection reset")).Once()

	_, err := fx.service.AddItem(ctx, userIdentity(userID), &usecase.AddCartItemInput{ProductID: "p1", Quantity: 1})

	require.Error(t, err)
}

func TestCartService_RemoveItem_BackendFailureFallsBackToSessionCopy(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	sessionCart := &entity.Cart{Items: []entity.CartItem{
		{ProductID: "p1", Name: "Pump", Price: 100, Quantity: 1},
		{ProductID: "p2", Name: "Panel", Price: 50, Quantity: 1},
	}}

	fx.cartRepo.On("RemoveItem", ctx, userID, "p1").Return(errors.New("connection reset")).Once()
	fx.sessionStore.On("GuestCart", ctx, "sess-13").Return(sessionCart, nil).Once()
	fx.sessionStore.On("SaveGuestCart", ctx, "sess-13", mock.AnythingOfType("*entity.Cart")).Return(nil).Once()

	cart, err := fx.service.RemoveItem(ctx, userSessionIdentity(userID, "sess-13"), "p1")

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].ProductID)
}

func TestCartService_ClearCart_BackendFailureFallsBackToSessionCopy(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.cartRepo.On("Clear", ctx, userID).Return(errors.New("connection reset")).Once()
	fx.sessionStore.On("DeleteGuestCart", ctx, "sess-14").Return(nil).Once()

	require.NoError(t, fx.service.ClearCart(ctx, userSessionIdentity(userID, "sess-14")))
}

func TestCartService_AddItem_RejectsNonPositiveQuantity(t *testing.T) {
	fx := createTestCartService(t)

	_, err := fx.service.AddItem(context.Background(), guestIdentity("sess-8"), &usecase.AddCartItemInput{ProductID: "p1", Quantity: 0})

	require.Error(t, err)
}

func TestCartService_UpdateItemQuantity_ZeroRemovesLine(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	existing := &entity.Cart{Items: []entity.CartItem{
		{ProductID: "p1", Name: "Pump", Price: 100, Quantity: 2},
		{ProductID: "p2", Name: "Panel", Price: 50, Quantity: 1},
	}}

	fx.sessionStore.On("GuestCart", ctx, "sess-9").Return(existing, nil).Once()
	fx.sessionStore.On("SaveGuestCart", ctx, "sess-9", mock.AnythingOfType("*entity.Cart")).Return(nil).Once()

	cart, err := fx.service.UpdateItemQuantity(ctx, guestIdentity("sess-9"), "p1", 0)

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].ProductID)
	assert.Equal(t, 50.0, cart.Total)
}

func TestCartService_UpdateItemQuantity_MissingLine(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	fx.sessionStore.On("GuestCart", ctx, "sess-10").Return(&entity.Cart{}, nil).Once()

	_, err := fx.service.UpdateItemQuantity(ctx, guestIdentity("sess-10"), "ghost", 2)

	require.Error(t, err)
}

func TestCartService_ClearCart_Guest(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	fx.sessionStore.On("DeleteGuestCart", ctx, "sess-11").Return(repository.ErrSessionKeyNotFound).Once()

	// Clearing a cart that never existed is not an error.
	require.NoError(t, fx.service.ClearCart(ctx, guestIdentity("sess-11")))
}
