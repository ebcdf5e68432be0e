// Package usecase provides hand-rolled testify mocks for the usecase interfaces.
package usecase

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCartUsecase is a mock implementation of usecase.CartUsecase.
type MockCartUsecase struct {
	mock.Mock
}

// NewMockCartUsecase creates a mock bound to the test's lifecycle.
func NewMockCartUsecase(t *testing.T) *MockCartUsecase {
	m := &MockCartUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCartUsecase) GetCart(ctx context.Context, identity usecase.CartIdentity) (*entity.Cart, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Cart), args.Error(1)
}

func (m *MockCartUsecase) AddItem(ctx context.Context, identity usecase.CartIdentity, input *usecase.AddCartItemInput) (*entity.Cart, error) {
	args := m.Called(ctx, identity, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Cart), args.Error(1)
}

func (m *MockCartUsecase) UpdateItemQuantity(ctx context.Context, identity usecase.CartIdentity, productID string, quantity int) (*entity.Cart, error) {
	args := m.Called(ctx, identity, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Cart), args.Error(1)
}

func (m *MockCartUsecase) RemoveItem(ctx context.Context, identity usecase.CartIdentity, productID string) (*entity.Cart, error) {
	args := m.Called(ctx, identity, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Cart), args.Error(1)
}

func (m *MockCartUsecase) ClearCart(ctx context.Context, identity usecase.CartIdentity) error {
	return m.Called(ctx, identity).Error(0)
}

func (m *MockCartUsecase) ReconcileOnLogin(ctx context.Context, userID uuid.UUID, sessionID string) error {
	return m.Called(ctx, userID, sessionID).Error(0)
}

func (m *MockCartUsecase) ResetSession(sessionID string) {
	m.Called(sessionID)
}

// MockWishlistUsecase is a mock implementation of usecase.WishlistUsecase.
type MockWishlistUsecase struct {
	mock.Mock
}

// NewMockWishlistUsecase creates a mock bound to the test's lifecycle.
func NewMockWishlistUsecase(t *testing.T) *MockWishlistUsecase {
	m := &MockWishlistUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockWishlistUsecase) GetWishlist(ctx context.Context, identity usecase.CartIdentity) (*entity.Wishlist, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Wishlist), args.Error(1)
}

func (m *MockWishlistUsecase) AddItem(ctx context.Context, identity usecase.CartIdentity, productID string) (*entity.Wishlist, error) {
	args := m.Called(ctx, identity, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Wishlist), args.Error(1)
}

func (m *MockWishlistUsecase) RemoveItem(ctx context.Context, identity usecase.CartIdentity, productID string) (*entity.Wishlist, error) {
	args := m.Called(ctx, identity, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Wishlist), args.Error(1)
}

// MockCatalogUsecase is a mock implementation of usecase.CatalogUsecase.
type MockCatalogUsecase struct {
	mock.Mock
}

// NewMockCatalogUsecase creates a mock bound to the test's lifecycle.
func NewMockCatalogUsecase(t *testing.T) *MockCatalogUsecase {
	m := &MockCatalogUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCatalogUsecase) ListProducts(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockCatalogUsecase) ListProductsByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockCatalogUsecase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockCatalogUsecase) ListCategories(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]entity.Category), args.Error(1)
}
