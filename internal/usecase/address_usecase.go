// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// AddressUsecase defines the interface for delivery address operations.
type AddressUsecase interface {
	CreateAddress(ctx context.Context, userID uuid.UUID, input *CreateAddressInput) (*entity.Address, error)
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error)
	UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, input *UpdateAddressInput) (*entity.Address, error)
	DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error
	SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) error
}

// --- Input DTOs ---

// CreateAddressInput defines the data required to create a delivery address.
type CreateAddressInput struct {
	Label     string
	Recipient string
	Mobile    string
	Line1     string
	Line2     string
	City      string
	State     string
	Pincode   string
	IsDefault bool
}

// UpdateAddressInput defines the data required to update a delivery address.
// Nil fields are left unchanged.
type UpdateAddressInput struct {
	Label     *string
	Recipient *string
	Mobile    *string
	Line1     *string
	Line2     *string
	City      *string
	State     *string
	Pincode   *string
}
