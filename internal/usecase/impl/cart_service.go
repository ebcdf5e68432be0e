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
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface. Guest carts live in the
// session store; authenticated carts live in postgres. The syncTracker
// enforces the at-most-once merge at login.
type cartService struct {
	txManager    repository.TransactionManager
	cartRepo     repository.CartRepository
	sessionStore repository.SessionStore
	catalog      usecase.CatalogUsecase
	tracker      *syncTracker
	logger       *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	CartRepo     repository.CartRepository
	SessionStore repository.SessionStore
	Catalog      usecase.CatalogUsecase
	Logger       *slog.Logger
}

// NewCartService creates a new cart service instance
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		txManager:    params.TxManager,
		cartRepo:     params.CartRepo,
		sessionStore: params.SessionStore,
		catalog:      params.Catalog,
		tracker:      newSyncTracker(),
		logger:       params.Logger,
	}
}

// GetCart returns the cart for the given identity. Identities with no
// stored cart get an empty cart.
func (srv *cartService) GetCart(ctx context.Context, identity usecase.CartIdentity) (*entity.Cart, error) {
	if identity.Authenticated() {
		cart, err := srv.cartRepo.FindByUser(ctx, *identity.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrCartNotFound) {
				return &entity.Cart{Items: []entity.CartItem{}}, nil
			}

			return nil, errors.Wrap(err, "failed to find user cart")
		}

		return cart, nil
	}

	return srv.guestCart(ctx, identity.SessionID)
}

// AddItem puts a product into the cart, summing quantities when the product
// is already present. Product details come from the catalog so the stored
// line always reflects current pricing. For logged-in callers the server
// cart is written first; when that write fails and the request still
// carries a session ID, the mutation lands in the session copy instead so
// the cart stays usable.
func (srv *cartService) AddItem(ctx context.Context, identity usecase.CartIdentity, input *usecase.AddCartItemInput) (*entity.Cart, error) {
	if input.Quantity <= 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("quantity must be positive")
	}

	product, err := srv.catalog.GetProduct(ctx, input.ProductID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve product for cart")
	}

	item := entity.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  input.Quantity,
	}
	if len(product.Images) > 0 {
		item.Image = product.Images[0]
	}

	if identity.Authenticated() {
		err := srv.cartRepo.UpsertItem(ctx, *identity.UserID, item)
		if err == nil {
			return srv.GetCart(ctx, identity)
		}
		if identity.SessionID == "" {
			return nil, errors.Wrap(err, "failed to upsert cart item")
		}
		srv.logCartFallback("add", err, identity)
	}

	cart, err := srv.guestCart(ctx, identity.SessionID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			cart.Items[i].Quantity += item.Quantity
			merged = true

			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, item)
	}

	return cart, srv.saveGuestCart(ctx, identity.SessionID, cart)
}

// UpdateItemQuantity sets the quantity of an existing cart line. A quantity
// of zero removes the line.
func (srv *cartService) UpdateItemQuantity(ctx context.Context, identity usecase.CartIdentity, productID string, quantity int) (*entity.Cart, error) {
	if quantity < 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("quantity must not be negative")
	}
	if quantity == 0 {
		return srv.RemoveItem(ctx, identity, productID)
	}

	if identity.Authenticated() {
		err := srv.cartRepo.UpdateItemQuantity(ctx, *identity.UserID, productID, quantity)
		switch {
		case err == nil:
			return srv.GetCart(ctx, identity)
		case errors.Is(err, repository.ErrCartNotFound):
			return nil, domainerrors.ErrCartNotFound.WrapMessage("cart item not found")
		case identity.SessionID == "":
			return nil, errors.Wrap(err, "failed to update cart item quantity")
		}
		srv.logCartFallback("update", err, identity)
	}

	cart, err := srv.guestCart(ctx, identity.SessionID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			found = true

			break
		}
	}
	if !found {
		return nil, domainerrors.ErrCartNotFound.WrapMessage("cart item not found")
	}

	return cart, srv.saveGuestCart(ctx, identity.SessionID, cart)
}

// RemoveItem deletes a product line from the cart.
func (srv *cartService) RemoveItem(ctx context.Context, identity usecase.CartIdentity, productID string) (*entity.Cart, error) {
	if identity.Authenticated() {
		err := srv.cartRepo.RemoveItem(ctx, *identity.UserID, productID)
		if err == nil || errors.Is(err, repository.ErrCartNotFound) {
			return srv.GetCart(ctx, identity)
		}
		if identity.SessionID == "" {
			return nil, errors.Wrap(err, "failed to remove cart item")
		}
		srv.logCartFallback("remove", err, identity)
	}

	cart, err := srv.guestCart(ctx, identity.SessionID)
	if err != nil {
		return nil, err
	}

	items := cart.Items[:0]
	for _, it := range cart.Items {
		if it.ProductID != productID {
			items = append(items, it)
		}
	}
	cart.Items = items

	return cart, srv.saveGuestCart(ctx, identity.SessionID, cart)
}

// ClearCart removes every item from the cart.
func (srv *cartService) ClearCart(ctx context.Context, identity usecase.CartIdentity) error {
	if identity.Authenticated() {
		err := srv.cartRepo.Clear(ctx, *identity.UserID)
		if err == nil {
			return nil
		}
		if identity.SessionID == "" {
			return errors.Wrap(err, "failed to clear user cart")
		}
		srv.logCartFallback("clear", err, identity)
	}

	if err := srv.sessionStore.DeleteGuestCart(ctx, identity.SessionID); err != nil && !errors.Is(err, repository.ErrSessionKeyNotFound) {
		return errors.Wrap(err, "failed to clear guest cart")
	}

	return nil
}

// ReconcileOnLogin merges the session's guest cart into the user's
// server-side cart inside one transaction, summing quantities for products
// present on both sides. The merge runs at most once per session; a failed
// merge is recorded as done and left to the user to repair manually.
func (srv *cartService) ReconcileOnLogin(ctx context.Context, userID uuid.UUID, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if !srv.tracker.begin(sessionID) {
		srv.logger.Debug("Guest cart already reconciled for session", "sessionID", sessionID)

		return nil
	}
	defer srv.tracker.finish(sessionID)

	guestCart, err := srv.sessionStore.GuestCart(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionKeyNotFound) {
			return nil
		}
		srv.logger.Error("Failed to load guest cart for reconciliation", "error", err, "sessionID", sessionID)

		return errors.Wrap(err, "failed to load guest cart")
	}
	if guestCart.IsEmpty() {
		return nil
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()
		for _, item := range guestCart.Items {
			if err := cartRepo.UpsertItem(ctx, userID, item); err != nil {
				return errors.Wrap(err, "failed to merge guest cart item")
			}
		}

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to execute guest cart merge transaction", "error", err, "userID", userID, "sessionID", sessionID)

		return errors.Wrap(err, "failed to execute guest cart merge transaction")
	}

	if err := srv.sessionStore.DeleteGuestCart(ctx, sessionID); err != nil && !errors.Is(err, repository.ErrSessionKeyNotFound) {
		// The merge is already committed; a stale guest cart only wastes space.
		srv.logger.Warn("Failed to delete guest cart after merge", "error", err, "sessionID", sessionID)
	}
	srv.logger.Info("Guest cart merged into user cart", "userID", userID, "itemCount", len(guestCart.Items))

	return nil
}

// ResetSession clears the session's reconciliation state, so a future login
// from the same session may merge again.
func (srv *cartService) ResetSession(sessionID string) {
	srv.tracker.reset(sessionID)
}

// logCartFallback records a degraded mutation: the server-side cart
// rejected the write, so the change goes to the session copy and only
// reaches the server on a later successful write.
func (srv *cartService) logCartFallback(op string, err error, identity usecase.CartIdentity) {
	srv.logger.Warn("Cart backend unavailable, mutating session copy instead",
		"operation", op, "error", err, "userID", identity.UserID, "sessionID", identity.SessionID)
}

func (srv *cartService) guestCart(ctx context.Context, sessionID string) (*entity.Cart, error) {
	cart, err := srv.sessionStore.GuestCart(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionKeyNotFound) {
			return &entity.Cart{Items: []entity.CartItem{}}, nil
		}

		return nil, errors.Wrap(err, "failed to load guest cart")
	}
	cart.Recalculate()

	return cart, nil
}

func (srv *cartService) saveGuestCart(ctx context.Context, sessionID string, cart *entity.Cart) error {
	cart.Recalculate()
	cart.UpdatedAt = time.Now()

	if err := srv.sessionStore.SaveGuestCart(ctx, sessionID, cart); err != nil {
		return errors.Wrap(err, "failed to save guest cart")
	}

	return nil
}
