// Package repository provides hand-rolled testify mocks for the persistence interfaces.
package repository

import (
	"context"
	"testing"

	"storefront/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockTransactionManager is a mock implementation of repository.TransactionManager.
type MockTransactionManager struct {
	mock.Mock
}

// NewMockTransactionManager creates a mock bound to the test's lifecycle.
func NewMockTransactionManager(t *testing.T) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)

	return args.Error(0)
}

// MockRepositoryFactory is a mock implementation of repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

// NewMockRepositoryFactory creates a mock bound to the test's lifecycle.
func NewMockRepositoryFactory(t *testing.T) *MockRepositoryFactory {
	m := &MockRepositoryFactory{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRepositoryFactory) NewUserRepository() repository.UserRepository {
	return m.Called().Get(0).(repository.UserRepository)
}

func (m *MockRepositoryFactory) NewAuthRepository() repository.AuthRepository {
	return m.Called().Get(0).(repository.AuthRepository)
}

func (m *MockRepositoryFactory) NewRefreshTokenRepository() repository.RefreshTokenRepository {
	return m.Called().Get(0).(repository.RefreshTokenRepository)
}

func (m *MockRepositoryFactory) NewAddressRepository() repository.AddressRepository {
	return m.Called().Get(0).(repository.AddressRepository)
}

func (m *MockRepositoryFactory) NewCartRepository() repository.CartRepository {
	return m.Called().Get(0).(repository.CartRepository)
}

func (m *MockRepositoryFactory) NewOrderRepository() repository.OrderRepository {
	return m.Called().Get(0).(repository.OrderRepository)
}
