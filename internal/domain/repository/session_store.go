// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSessionKeyNotFound is returned when a session key does not exist in the store.
var ErrSessionKeyNotFound = errors.New("session key not found")

// SessionStore is a typed key-value store for per-session and per-user state
// that does not merit a relational table: guest carts and wishlists keyed by
// session ID and the rolling list of recently ordered items keyed by user ID.
type SessionStore interface {
	// GuestCart retrieves the cart stored for an anonymous session.
	// Returns ErrSessionKeyNotFound if the session has no cart.
	GuestCart(ctx context.Context, sessionID string) (*entity.Cart, error)

	// SaveGuestCart stores a cart snapshot for an anonymous session.
	SaveGuestCart(ctx context.Context, sessionID string, cart *entity.Cart) error

	// DeleteGuestCart removes an anonymous session's cart, typically after
	// it has been merged into a server-side cart.
	DeleteGuestCart(ctx context.Context, sessionID string) error

	// GuestWishlist retrieves the wishlist stored for an anonymous session.
	// Returns ErrSessionKeyNotFound if the session has no wishlist.
	GuestWishlist(ctx context.Context, sessionID string) (*entity.Wishlist, error)

	// SaveGuestWishlist stores a wishlist snapshot for an anonymous session.
	SaveGuestWishlist(ctx context.Context, sessionID string, wishlist *entity.Wishlist) error

	// RecentOrderItems retrieves the user's most recently ordered items, newest first.
	RecentOrderItems(ctx context.Context, userID uuid.UUID) ([]entity.OrderItem, error)

	// AppendRecentOrderItems prepends items to the user's recent-order list,
	// trimming the list to the store's configured capacity.
	AppendRecentOrderItems(ctx context.Context, userID uuid.UUID, items []entity.OrderItem) error
}
