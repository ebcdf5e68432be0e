package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// WishlistUsecase defines the interface for wishlist operations. The
// wishlist reuses the cart's identity resolution but has no login merge:
// guest and server wishlists stay independent.
type WishlistUsecase interface {
	// GetWishlist returns the wishlist for the given identity. An identity
	// with nothing saved gets an empty wishlist, not an error.
	GetWishlist(ctx context.Context, identity CartIdentity) (*entity.Wishlist, error)

	// AddItem saves a product to the wishlist. Saving a product twice
	// refreshes its snapshot instead of duplicating it.
	AddItem(ctx context.Context, identity CartIdentity, productID string) (*entity.Wishlist, error)

	// RemoveItem deletes a saved product from the wishlist.
	RemoveItem(ctx context.Context, identity CartIdentity, productID string) (*entity.Wishlist, error)
}
