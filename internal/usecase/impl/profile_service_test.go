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
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// profileServiceFixtures holds all test dependencies for profile service tests.
type profileServiceFixtures struct {
	service   usecase.ProfileUsecase
	txManager *mockRepo.MockTransactionManager
}

func createTestProfileService(t *testing.T) profileServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewProfileService(txManager, logger)

	return profileServiceFixtures{
		service:   service,
		txManager: txManager,
	}
}

func TestProfileService_GetProfile_Success(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	expectedUser := &entity.User{
		ID:    userID,
		Email: "test@example.com",
		Name:  "Test User",
	}

	fx.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(args mock.Arguments) {
			fn := args.Get(1).(func(repository.RepositoryFactory) error)

			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockFactory.On("NewUserRepository").Return(mockUserRepo)
			mockUserRepo.On("FindByID", ctx, userID).Return(expectedUser, nil).Once()

			require.NoError(t, fn(mockFactory))
		}).
		Return(nil).Once()

	user, err := fx.service.GetProfile(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, expectedUser, user)
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(args mock.Arguments) {
			fn := args.Get(1).(func(repository.RepositoryFactory) error)

			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockFactory.On("NewUserRepository").Return(mockUserRepo)
			mockUserRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound).Once()

			require.Error(t, fn(mockFactory))
		}).
		Return(domainerrors.ErrUserNotFound).Once()

	_, err := fx.service.GetProfile(ctx, userID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestProfileService_UpdateProfile_PartialUpdate(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	newName := "Asha K"
	existing := &entity.User{ID: userID, Name: "Asha", Mobile: "9876543210"}

	fx.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(args mock.Arguments) {
			fn := args.Get(1).(func(repository.RepositoryFactory) error)

			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockFactory.On("NewUserRepository").Return(mockUserRepo)
			mockUserRepo.On("FindByID", ctx, userID).Return(existing, nil).Once()
			mockUserRepo.On("Update", ctx, mock.AnythingOfType("*entity.User")).Return(nil).Once()

			require.NoError(t, fn(mockFactory))
		}).
		Return(nil).Once()

	user, err := fx.service.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{Name: &newName})

	require.NoError(t, err)
	assert.Equal(t, "Asha K", user.Name)
	// Mobile untouched by a nil input field.
	assert.Equal(t, "9876543210", user.Mobile)
}
