package impl

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// wishlistService implements the WishlistUsecase interface. Guest
// wishlists live in the session store; authenticated wishlists live in
// postgres. There is no merge at login: unlike the cart, the two copies
// stay independent.
type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	sessionStore repository.SessionStore
	catalog      usecase.CatalogUsecase
	logger       *slog.Logger
}

// WishlistServiceParams holds dependencies for WishlistService, injected by Fx.
type WishlistServiceParams struct {
	fx.In

	WishlistRepo repository.WishlistRepository
	SessionStore repository.SessionStore
	Catalog      usecase.CatalogUsecase
	Logger       *slog.Logger
}

// NewWishlistService creates a new wishlist service instance
func NewWishlistService(params WishlistServiceParams) usecase.WishlistUsecase {
	return &wishlistService{
		wishlistRepo: params.WishlistRepo,
		sessionStore: params.SessionStore,
		catalog:      params.Catalog,
		logger:       params.Logger,
	}
}

// GetWishlist returns the wishlist for the given identity. Identities
// with nothing saved get an empty wishlist.
func (srv *wishlistService) GetWishlist(ctx context.Context, identity usecase.CartIdentity) (*entity.Wishlist, error) {
	if identity.Authenticated() {
		wishlist, err := srv.wishlistRepo.FindByUser(ctx, *identity.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrWishlistNotFound) {
				return &entity.Wishlist{Items: []entity.WishlistItem{}}, nil
			}

			return nil, errors.Wrap(err, "failed to find user wishlist")
		}

		return wishlist, nil
	}

	return srv.guestWishlist(ctx, identity.SessionID)
}

// AddItem saves a product to the wishlist. Product details come from the
// catalog so the saved snapshot reflects current pricing. For logged-in
// callers the server wishlist is written first; when that write fails and
// the request still carries a session ID, the item lands in the session
// copy instead so the wishlist stays usable.
func (srv *wishlistService) AddItem(ctx context.Context, identity usecase.CartIdentity, productID string) (*entity.Wishlist, error) {
	if productID == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("product ID is required")
	}

	product, err := srv.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve product for wishlist")
	}

	item := entity.WishlistItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
	}
	if len(product.Images) > 0 {
		item.Image = product.Images[0]
	}

	if identity.Authenticated() {
		err := srv.wishlistRepo.AddItem(ctx, *identity.UserID, item)
		if err == nil {
			return srv.GetWishlist(ctx, identity)
		}
		if identity.SessionID == "" {
			return nil, errors.Wrap(err, "failed to save wishlist item")
		}
		srv.logWishlistFallback("add", err, identity)
	}

	wishlist, err := srv.guestWishlist(ctx, identity.SessionID)
	if err != nil {
		return nil, err
	}

	refreshed := false
	for i := range wishlist.Items {
		if wishlist.Items[i].ProductID == item.ProductID {
			wishlist.Items[i] = item
			refreshed = true

			break
		}
	}
	if !refreshed {
		wishlist.Items = append(wishlist.Items, item)
	}

	return wishlist, srv.saveGuestWishlist(ctx, identity.SessionID, wishlist)
}

// RemoveItem deletes a saved product from the wishlist. Removing a product
// that was never saved is not an error.
func (srv *wishlistService) RemoveItem(ctx context.Context, identity usecase.CartIdentity, productID string) (*entity.Wishlist, error) {
	if identity.Authenticated() {
		err := srv.wishlistRepo.RemoveItem(ctx, *identity.UserID, productID)
		if err == nil || errors.Is(err, repository.ErrWishlistNotFound) {
			return srv.GetWishlist(ctx, identity)
		}
		if identity.SessionID == "" {
			return nil, errors.Wrap(err, "failed to remove wishlist item")
		}
		srv.logWishlistFallback("remove", err, identity)
	}

	wishlist, err := srv.guestWishlist(ctx, identity.SessionID)
	if err != nil {
		return nil, err
	}

	items := wishlist.Items[:0]
	for _, it := range wishlist.Items {
		if it.ProductID != productID {
			items = append(items, it)
		}
	}
	wishlist.Items = items

	return wishlist, srv.saveGuestWishlist(ctx, identity.SessionID, wishlist)
}

// logWishlistFallback records a degraded mutation: the server-side
// wishlist rejected the write, so the change goes to the session copy.
func (srv *wishlistService) logWishlistFallback(op string, err error, identity usecase.CartIdentity) {
	srv.logger.Warn("Wishlist backend unavailable, mutating session copy instead",
		"operation", op, "error", err, "userID", identity.UserID, "sessionID", identity.SessionID)
}

func (srv *wishlistService) guestWishlist(ctx context.Context, sessionID string) (*entity.Wishlist, error) {
	wishlist, err := srv.sessionStore.GuestWishlist(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionKeyNotFound) {
			return &entity.Wishlist{Items: []entity.WishlistItem{}}, nil
		}

		return nil, errors.Wrap(err, "failed to load guest wishlist")
	}

	return wishlist, nil
}

func (srv *wishlistService) saveGuestWishlist(ctx context.Context, sessionID string, wishlist *entity.Wishlist) error {
	wishlist.UpdatedAt = time.Now()

	if err := srv.sessionStore.SaveGuestWishlist(ctx, sessionID, wishlist); err != nil {
		return errors.Wrap(err, "failed to save guest wishlist")
	}

	return nil
}
