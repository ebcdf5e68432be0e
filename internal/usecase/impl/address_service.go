// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// addressService implements the AddressUsecase interface.
type addressService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewAddressService is the constructor for addressService.
func NewAddressService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.AddressUsecase {
	return &addressService{
		txManager: txManager,
		logger:    logger,
	}
}

// CreateAddress stores a new delivery address. The user's first address
// becomes the default automatically; an explicit IsDefault demotes any
// existing default within the same transaction.
func (srv *addressService) CreateAddress(ctx context.Context, userID uuid.UUID, input *usecase.CreateAddressInput) (*entity.Address, error) {
	srv.logger.Info("Creating address", "userID", userID)

	address := &entity.Address{
		UserID:    userID,
		Label:     input.Label,
		Recipient: input.Recipient,
		Mobile:    input.Mobile,
		Line1:     input.Line1,
		Line2:     input.Line2,
		City:      input.City,
		State:     input.State,
		Pincode:   input.Pincode,
		IsDefault: input.IsDefault,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.NewAddressRepository()

		existing, err := addressRepo.FindAddressesByUser(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to list addresses")
		}
		if len(existing) == 0 {
			address.IsDefault = true
		} else if address.IsDefault {
			if err := addressRepo.ClearDefaultByUser(ctx, userID); err != nil {
				return errors.Wrap(err, "failed to clear default address")
			}
		}

		if err := addressRepo.CreateAddress(ctx, address); err != nil {
			return errors.Wrap(err, "failed to create address")
		}

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to execute address creation transaction", "error", err, "userID", userID)

		return nil, errors.Wrap(err, "failed to execute address creation transaction")
	}

	return address, nil
}

// ListAddresses returns all of the user's addresses.
func (srv *addressService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	var addresses []*entity.Address

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewAddressRepository().FindAddressesByUser(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to list addresses")
		}
		addresses = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list addresses")
	}

	return addresses, nil
}

// UpdateAddress modifies an existing address, enforcing ownership. Nil input
// fields are left unchanged.
func (srv *addressService) UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, input *usecase.UpdateAddressInput) (*entity.Address, error) {
	var updated *entity.Address

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.NewAddressRepository()

		address, err := srv.findOwnedAddress(ctx, addressRepo, userID, addressID)
		if err != nil {
			return err
		}

		applyIfSet := func(dst *string, src *string) {
			if src != nil {
				*dst = *src
			}
		}
		applyIfSet(&address.Label, input.Label)
		applyIfSet(&address.Recipient, input.Recipient)
		applyIfSet(&address.Mobile, input.Mobile)
		applyIfSet(&address.Line1, input.Line1)
		applyIfSet(&address.Line2, input.Line2)
		applyIfSet(&address.City, input.City)
		applyIfSet(&address.State, input.State)
		applyIfSet(&address.Pincode, input.Pincode)
		address.UpdatedAt = time.Now()

		if err := addressRepo.UpdateAddress(ctx, address); err != nil {
			return errors.Wrap(err, "failed to update address")
		}
		updated = address

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute address update transaction")
	}

	return updated, nil
}

// DeleteAddress removes an address, enforcing ownership. Deleting the
// default address promotes the oldest remaining address, so a user with
// addresses never lacks a default.
func (srv *addressService) DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.NewAddressRepository()

		address, err := srv.findOwnedAddress(ctx, addressRepo, userID, addressID)
		if err != nil {
			return err
		}

		if err := addressRepo.DeleteAddress(ctx, addressID); err != nil {
			return errors.Wrap(err, "failed to delete address")
		}

		if address.IsDefault {
			remaining, err := addressRepo.FindAddressesByUser(ctx, userID)
			if err != nil {
				return errors.Wrap(err, "failed to list remaining addresses")
			}
			if len(remaining) > 0 {
				remaining[0].IsDefault = true
				if err := addressRepo.UpdateAddress(ctx, remaining[0]); err != nil {
					return errors.Wrap(err, "failed to promote new default address")
				}
			}
		}

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to execute address deletion transaction", "error", err, "userID", userID, "addressID", addressID)

		return errors.Wrap(err, "failed to execute address deletion transaction")
	}

	return nil
}

// SetDefaultAddress promotes an address to be the user's default, demoting
// the previous default in the same transaction so exactly one default exists.
func (srv *addressService) SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.NewAddressRepository()

		address, err := srv.findOwnedAddress(ctx, addressRepo, userID, addressID)
		if err != nil {
			return err
		}
		if address.IsDefault {
			return nil
		}

		if err := addressRepo.ClearDefaultByUser(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to clear default address")
		}

		address.IsDefault = true
		address.UpdatedAt = time.Now()
		if err := addressRepo.UpdateAddress(ctx, address); err != nil {
			return errors.Wrap(err, "failed to promote default address")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute default address transaction")
	}

	return nil
}

// findOwnedAddress loads an address and verifies it belongs to the user.
func (srv *addressService) findOwnedAddress(ctx context.Context, addressRepo repository.AddressRepository, userID, addressID uuid.UUID) (*entity.Address, error) {
	address, err := addressRepo.FindAddressByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return nil, domainerrors.ErrAddressNotFound.WrapMessage("address lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find address")
	}
	if address.UserID != userID {
		return nil, domainerrors.ErrAddressOwnershipViolation.WrapMessage("address belongs to another user")
	}

	return address, nil
}
