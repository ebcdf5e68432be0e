package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrWishlistNotFound is returned when a user has no saved wishlist entry.
var ErrWishlistNotFound = errors.New("wishlist not found")

// WishlistRepository persists the server-side wishlist, one row per
// (user, product) saved entry.
type WishlistRepository interface {
	// FindByUser retrieves the wishlist belonging to a user.
	// Returns ErrWishlistNotFound when the user has nothing saved.
	FindByUser(ctx context.Context, userID uuid.UUID) (*entity.Wishlist, error)

	// AddItem saves a product to the user's wishlist. Saving an already
	// present product refreshes its snapshot instead of duplicating it.
	AddItem(ctx context.Context, userID uuid.UUID, item entity.WishlistItem) error

	// RemoveItem deletes a saved product. Returns ErrWishlistNotFound
	// when the product was not saved.
	RemoveItem(ctx context.Context, userID uuid.UUID, productID string) error
}
