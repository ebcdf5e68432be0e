// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// MissingDetails flags the profile fields a user must fill in before
// placing an order.
type MissingDetails struct {
	Name    bool `json:"name"`
	Email   bool `json:"email"`
	Address bool `json:"address"`
}

// Checkout next-step hints, in priority order.
const (
	NextStepAddAddress      = "add_address"
	NextStepCompleteProfile = "complete_profile"
	NextStepReview          = "review_order"
)

// DetailsCompletenessOutput reports whether the user may proceed to place
// an order, and if not, what is missing and what to do first.
type DetailsCompletenessOutput struct {
	Complete bool           `json:"complete"`
	Missing  MissingDetails `json:"missing"`
	NextStep string         `json:"nextStep"`
}

// PlaceOrderInput defines the data required to place an order.
type PlaceOrderInput struct {
	AddressID uuid.UUID
}

// CheckoutUsecase defines the interface for order placement and the
// completeness gate that precedes it.
type CheckoutUsecase interface {
	// CheckDetailsComplete verifies the user has a name, an email, and a
	// default delivery address before checkout may proceed.
	CheckDetailsComplete(ctx context.Context, userID uuid.UUID) (*DetailsCompletenessOutput, error)

	// PlaceOrder converts the user's cart into an order against the given
	// address, then clears the cart. Fails when the completeness gate fails.
	PlaceOrder(ctx context.Context, userID uuid.UUID, input *PlaceOrderInput) (*entity.Order, error)

	// ListOrders returns the user's order history, newest first.
	ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// GetOrder returns a single order, enforcing ownership.
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error)

	// RecentOrderItems returns the user's most recently ordered items.
	RecentOrderItems(ctx context.Context, userID uuid.UUID) ([]entity.OrderItem, error)
}
