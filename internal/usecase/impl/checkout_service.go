// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// checkoutService implements the CheckoutUsecase interface.
type checkoutService struct {
	txManager    repository.TransactionManager
	sessionStore repository.SessionStore
	publisher    service.EventPublisher
	logger       *slog.Logger
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	SessionStore repository.SessionStore
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewCheckoutService creates a new checkout service instance
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	return &checkoutService{
		txManager:    params.TxManager,
		sessionStore: params.SessionStore,
		publisher:    params.Publisher,
		logger:       params.Logger,
	}
}

// CheckDetailsComplete verifies the user has a name, an email, and a default
// delivery address. Non-default addresses do not satisfy the gate; the user
// must explicitly promote one.
func (srv *checkoutService) CheckDetailsComplete(ctx context.Context, userID uuid.UUID) (*usecase.DetailsCompletenessOutput, error) {
	var missing usecase.MissingDetails

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		addressRepo := repoFactory.NewAddressRepository()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "checkout gate failed")
			}

			return errors.Wrap(err, "failed to find user")
		}
		missing.Name = strings.TrimSpace(user.Name) == ""
		missing.Email = strings.TrimSpace(user.Email) == ""

		if _, err := addressRepo.FindDefaultAddressByUser(ctx, userID); err != nil {
			if !errors.Is(err, repository.ErrAddressNotFound) {
				return errors.Wrap(err, "failed to find default address")
			}
			missing.Address = true
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to check checkout details")
	}

	out := &usecase.DetailsCompletenessOutput{
		Complete: !missing.Name && !missing.Email && !missing.Address,
		Missing:  missing,
	}
	switch {
	case missing.Address:
		out.NextStep = usecase.NextStepAddAddress
	case missing.Name || missing.Email:
		out.NextStep = usecase.NextStepCompleteProfile
	default:
		out.NextStep = usecase.NextStepReview
	}

	return out, nil
}

// PlaceOrder converts the user's cart into an order against the given
// address inside a single transaction, then clears the cart.
func (srv *checkoutService) PlaceOrder(ctx context.Context, userID uuid.UUID, input *usecase.PlaceOrderInput) (*entity.Order, error) {
	srv.logger.Info("Placing order", "userID", userID)

	gate, err := srv.CheckDetailsComplete(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !gate.Complete {
		fields := make([]string, 0, 3)
		if gate.Missing.Name {
			fields = append(fields, "name")
		}
		if gate.Missing.Email {
			fields = append(fields, "email")
		}
		if gate.Missing.Address {
			fields = append(fields, "address")
		}

		return nil, domainerrors.ErrProfileIncomplete.WithDetails("missing: " + strings.Join(fields, ", "))
	}

	var placedOrder *entity.Order

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()
		addressRepo := repoFactory.NewAddressRepository()
		orderRepo := repoFactory.NewOrderRepository()

		address, err := addressRepo.FindAddressByID(ctx, input.AddressID)
		if err != nil {
			if errors.Is(err, repository.ErrAddressNotFound) {
				return errors.Wrap(domainerrors.ErrAddressNotFound, "order placement failed")
			}

			return errors.Wrap(err, "failed to find address")
		}
		if address.UserID != userID {
			return errors.Wrap(domainerrors.ErrAddressOwnershipViolation, "order placement failed")
		}

		cart, err := cartRepo.FindByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrCartNotFound) {
				return errors.Wrap(domainerrors.ErrValidationFailed, "cannot place an order with an empty cart")
			}

			return errors.Wrap(err, "failed to find user cart")
		}
		if cart.IsEmpty() {
			return errors.Wrap(domainerrors.ErrValidationFailed, "cannot place an order with an empty cart")
		}
		cart.Recalculate()

		items := make([]entity.OrderItem, 0, len(cart.Items))
		for _, it := range cart.Items {
			items = append(items, entity.OrderItem{
				ProductID: it.ProductID,
				Name:      it.Name,
				Image:     it.Image,
				Price:     it.Price,
				Quantity:  it.Quantity,
			})
		}

		order := &entity.Order{
			UserID:    userID,
			AddressID: address.ID,
			Items:     items,
			Total:     cart.Total,
			Status:    entity.OrderStatusPlaced,
			CreatedAt: time.Now(),
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		if err := cartRepo.Clear(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to clear cart after order")
		}
		placedOrder = order

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to execute order placement transaction", "error", err, "userID", userID)

		return nil, errors.Wrap(err, "failed to execute order placement transaction")
	}

	// Both are best-effort: the order is already committed.
	if err := srv.sessionStore.AppendRecentOrderItems(ctx, userID, placedOrder.Items); err != nil {
		srv.logger.Warn("Failed to record recent order items", "error", err, "userID", userID)
	}
	if err := srv.publisher.PublishEvent(ctx, &service.StorefrontEvent{
		Type:      service.EventTypeOrderPlaced,
		EntityID:  placedOrder.ID.String(),
		UserID:    userID.String(),
		Total:     placedOrder.Total,
		ItemCount: len(placedOrder.Items),
	}); err != nil {
		srv.logger.Warn("Failed to publish order placed event", "error", err, "orderID", placedOrder.ID)
	}
	srv.logger.Info("Order placed", "orderID", placedOrder.ID, "userID", userID, "total", placedOrder.Total)

	return placedOrder, nil
}

// ListOrders returns the user's order history, newest first.
func (srv *checkoutService) ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orders []*entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewOrderRepository().FindByUser(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to find orders")
		}
		orders = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// GetOrder returns a single order, enforcing ownership.
func (srv *checkoutService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error) {
	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewOrderRepository().FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "order lookup failed")
			}

			return errors.Wrap(err, "failed to find order")
		}
		if found.UserID != userID {
			return errors.Wrap(domainerrors.ErrForbidden, "order belongs to another user")
		}
		order = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get order")
	}

	return order, nil
}

// RecentOrderItems returns the user's most recently ordered items.
func (srv *checkoutService) RecentOrderItems(ctx context.Context, userID uuid.UUID) ([]entity.OrderItem, error) {
	items, err := srv.sessionStore.RecentOrderItems(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionKeyNotFound) {
			return []entity.OrderItem{}, nil
		}

		return nil, errors.Wrap(err, "failed to load recent order items")
	}

	return items, nil
}
