package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	mockService "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// checkoutServiceFixtures holds all test dependencies for checkout service tests.
type checkoutServiceFixtures struct {
	service      usecase.CheckoutUsecase
	txManager    *mockRepo.MockTransactionManager
	sessionStore *mockRepo.MockSessionStore
	publisher    *mockService.MockEventPublisher
}

func createTestCheckoutService(t *testing.T) checkoutServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	sessionStore := mockRepo.NewMockSessionStore(t)
	publisher := mockService.NewMockEventPublisher(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewCheckoutService(CheckoutServiceParams{
		TxManager:    txManager,
		SessionStore: sessionStore,
		Publisher:    publisher,
		Logger:       logger,
	})

	return checkoutServiceFixtures{
		service:      service,
		txManager:    txManager,
		sessionStore: sessionStore,
		publisher:    publisher,
	}
}

// expectGateCheck wires the transaction mock for one CheckDetailsComplete pass.
func expectGateCheck(t *testing.T, fx checkoutServiceFixtures, ctx context.Context, user *entity.User, defaultAddress *entity.Address) {
	fx.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(args mock.Arguments) {
			fn := args.Get(1).(func(repository.RepositoryFactory) error)

			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)
			mockFactory.On("NewUserRepository").Return(mockUserRepo)
			mockFactory.On("NewAddressRepository").Return(mockAddressRepo)

			mockUserRepo.On("FindByID", ctx, user.ID).Return(user, nil).Once()
			if defaultAddress != nil {
				mockAddressRepo.On("FindDefaultAddressByUser", ctx, user.ID).Return(defaultAddress, nil).Once()
			} else {
				mockAddressRepo.On("FindDefaultAddressByUser", ctx, user.ID).Return(nil, repository.ErrAddressNotFound).Once()
			}

			require.NoError(t, fn(mockFactory))
		}).
		Return(nil).Once()
}

func TestCheckoutService_CheckDetailsComplete_AllPresent(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Name: "Asha", Email: "asha@example.com"}
	expectGateCheck(t, fx, ctx, user, &entity.Address{ID: uuid.New(), UserID: user.ID, IsDefault: true})

	out, err := fx.service.CheckDetailsComplete(ctx, user.ID)

	require.NoError(t, err)
	assert.True(t, out.Complete)
	assert.Equal(t, usecase.MissingDetails{}, out.Missing)
	assert.Equal(t, usecase.NextStepReview, out.NextStep)
}

func TestCheckoutService_CheckDetailsComplete_NoDefaultAddress(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Name: "Asha", Email: "asha@example.com"}
	// The user may own addresses, but none promoted to default.
	expectGateCheck(t, fx, ctx, user, nil)

	out, err := fx.service.CheckDetailsComplete(ctx, user.ID)

	require.NoError(t, err)
	assert.False(t, out.Complete)
	assert.True(t, out.Missing.Address)
	assert.False(t, out.Missing.Name)
	assert.False(t, out.Missing.Email)
	assert.Equal(t, usecase.NextStepAddAddress, out.NextStep)
}

func TestCheckoutService_CheckDetailsComplete_MissingProfileFields(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Name: "  ", Email: ""}
	expectGateCheck(t, fx, ctx, user, &entity.Address{ID: uuid.New(), UserID: user.ID, IsDefault: true})

	out, err := fx.service.CheckDetailsComplete(ctx, user.ID)

	require.NoError(t, err)
	assert.False(t, out.Complete)
	assert.True(t, out.Missing.Name)
	assert.True(t, out.Missing.Email)
	assert.False(t, out.Missing.Address)
	assert.Equal(t, usecase.NextStepCompleteProfile, out.NextStep)
}

func TestCheckoutService_CheckDetailsComplete_AddressOutranksProfile(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Name: "", Email: ""}
	expectGateCheck(t, fx, ctx, user, nil)

	out, err := fx.service.CheckDetailsComplete(ctx, user.ID)

	require.NoError(t, err)
	assert.Equal(t, usecase.NextStepAddAddress, out.NextStep)
}

func TestCheckoutService_PlaceOrder_GateBlocksIncompleteProfile(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Name: "Asha", Email: "asha@example.com"}
	expectGateCheck(t, fx, ctx, user, nil)

	_, err := fx.service.PlaceOrder(ctx, user.ID, &usecase.PlaceOrderInput{AddressID: uuid.New()})

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrProfileIncomplete.ErrorCode(), appErr.ErrorCode())
	fx.txManager.AssertNumberOfCalls(t, "Execute", 1)
}

func TestCheckoutService_PlaceOrder_Success(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Name: "Asha", Email: "asha@example.com"}
	address := &entity.Address{ID: uuid.New(), UserID: user.ID, IsDefault: true}
	cart := &entity.Cart{Items: []entity.CartItem{
		{ProductID: "p1", Name: "Pump", Image: "img", Price: 900, Quantity: 2},
	}}

	expectGateCheck(t, fx, ctx, user, address)

	fx.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(args mock.Arguments) {
			fn := args.Get(1).(func(repository.RepositoryFactory) error)

			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)
			mockFactory.On("NewCartRepository").Return(mockCartRepo)
			mockFactory.On("NewAddressRepository").Return(mockAddressRepo)
			mockFactory.On("NewOrderRepository").Return(mockOrderRepo)

			mockAddressRepo.On("FindAddressByID", ctx, address.ID).Return(address, nil).Once()
			mockCartRepo.On("FindByUser", ctx, user.ID).Return(cart, nil).Once()
			mockOrderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order")).Return(nil).Once()
			mockCartRepo.On("Clear", ctx, user.ID).Return(nil).Once()

			require.NoError(t, fn(mockFactory))
		}).
		Return(nil).Once()

	fx.sessionStore.On("AppendRecentOrderItems", ctx, user.ID, mock.AnythingOfType("[]entity.OrderItem")).Return(nil).Once()
	fx.publisher.On("PublishEvent", ctx, mock.AnythingOfType("*service.StorefrontEvent")).Return(nil).Once()

	order, err := fx.service.PlaceOrder(ctx, user.ID, &usecase.PlaceOrderInput{AddressID: address.ID})

	require.NoError(t, err)
	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, address.ID, order.AddressID)
	assert.Equal(t, entity.OrderStatusPlaced, order.Status)
	assert.Equal(t, 1800.0, order.Total)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "p1", order.Items[0].ProductID)
}

func TestCheckoutService_PlaceOrder_ForeignAddressRejected(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Name: "Asha", Email: "asha@example.com"}
	foreignAddress := &entity.Address{ID: uuid.New(), UserID: uuid.New()}

	expectGateCheck(t, fx, ctx, user, &entity.Address{ID: uuid.New(), UserID: user.ID, IsDefault: true})

	fx.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(args mock.Arguments) {
			fn := args.Get(1).(func(repository.RepositoryFactory) error)

			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockCartRepo := mockRepo.NewMockCartRepository(t)
			mockAddressRepo := mockRepo.NewMockAddressRepository(t)
			mockOrderRepo := mockRepo.NewMockOrderRepository(t)
			mockFactory.On("NewCartRepository").Return(mockCartRepo)
			mockFactory.On("NewAddressRepository").Return(mockAddressRepo)
			mockFactory.On("NewOrderRepository").Return(mockOrderRepo)

			mockAddressRepo.On("FindAddressByID", ctx, foreignAddress.ID).Return(foreignAddress, nil).Once()

			require.Error(t, fn(mockFactory))
		}).
		Return(domainerrors.ErrAddressOwnershipViolation).Once()

	_, err := fx.service.PlaceOrder(ctx, user.ID, &usecase.PlaceOrderInput{AddressID: foreignAddress.ID})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAddressOwnershipViolation)
}

func TestCheckoutService_RecentOrderItems_EmptyWhenNeverOrdered(t *testing.T) {
	fx := createTestCheckoutService(t)

	ctx := context.Background()
	userID := uuid.New()
	fx.sessionStore.On("RecentOrderItems", ctx, userID).Return(nil, repository.ErrSessionKeyNotFound).Once()

	items, err := fx.service.RecentOrderItems(ctx, userID)

	require.NoError(t, err)
	assert.Empty(t, items)
}
