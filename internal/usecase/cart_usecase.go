// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CartIdentity identifies the owner of a cart. Authenticated requests carry
// a user ID and resolve to the server-side cart; anonymous requests carry
// only a session ID and resolve to the guest cart in the session store.
type CartIdentity struct {
	UserID    *uuid.UUID
	SessionID string
}

// Authenticated reports whether the identity belongs to a logged-in user.
func (id CartIdentity) Authenticated() bool {
	return id.UserID != nil
}

// AddCartItemInput defines the data required to add a product to a cart.
type AddCartItemInput struct {
	ProductID string
	Quantity  int
}

// CartUsecase defines the interface for cart operations, covering both
// guest and authenticated carts, plus the merge that happens at login.
type CartUsecase interface {
	// GetCart returns the cart for the given identity. An identity with no
	// stored cart gets an empty cart, not an error.
	GetCart(ctx context.Context, identity CartIdentity) (*entity.Cart, error)

	// AddItem puts a product into the cart, summing quantities when the
	// product is already present.
	AddItem(ctx context.Context, identity CartIdentity, input *AddCartItemInput) (*entity.Cart, error)

	// UpdateItemQuantity sets the quantity of an existing cart line.
	// A quantity of zero removes the line.
	UpdateItemQuantity(ctx context.Context, identity CartIdentity, productID string, quantity int) (*entity.Cart, error)

	// RemoveItem deletes a product line from the cart.
	RemoveItem(ctx context.Context, identity CartIdentity, productID string) (*entity.Cart, error)

	// ClearCart removes every item from the cart.
	ClearCart(ctx context.Context, identity CartIdentity) error

	// ReconcileOnLogin merges the session's guest cart into the user's
	// server-side cart. The merge runs at most once per session: repeated
	// calls for the same session are no-ops until ResetSession is called.
	ReconcileOnLogin(ctx context.Context, userID uuid.UUID, sessionID string) error

	// ResetSession clears the session's reconciliation state, so a future
	// login from the same session may merge again.
	ResetSession(sessionID string)
}
