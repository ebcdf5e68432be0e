// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCartNotFound is returned when a user has no persisted cart.
var ErrCartNotFound = errors.New("cart not found")

// CartRepository defines the standard operations for server-side cart persistence.
// Guest carts live in the session store instead; only authenticated users reach this interface.
type CartRepository interface {
	// FindByUser retrieves the cart belonging to a user.
	// Returns ErrCartNotFound when the user has never carted anything.
	FindByUser(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// Save replaces the user's cart contents with the given snapshot.
	Save(ctx context.Context, userID uuid.UUID, cart *entity.Cart) error

	// UpsertItem adds an item to the user's cart, or adds the quantity to
	// an existing line for the same product.
	UpsertItem(ctx context.Context, userID uuid.UUID, item entity.CartItem) error

	// UpdateItemQuantity sets the quantity of an existing cart line.
	UpdateItemQuantity(ctx context.Context, userID uuid.UUID, productID string, quantity int) error

	// RemoveItem deletes a single product line from the user's cart.
	RemoveItem(ctx context.Context, userID uuid.UUID, productID string) error

	// Clear removes every item from the user's cart.
	Clear(ctx context.Context, userID uuid.UUID) error
}
