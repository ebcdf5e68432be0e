package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// WishlistHandler holds dependencies for wishlist handlers. Wishlist
// routes resolve the caller the same way cart routes do: bearer token
// for logged-in users, X-Session-Id header for guests.
type WishlistHandler struct {
	uc     usecase.WishlistUsecase
	logger *slog.Logger
}

// NewWishlistHandler is the constructor for WishlistHandler, injected by Fx.
func NewWishlistHandler(uc usecase.WishlistUsecase, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetWishlist handles retrieving the caller's wishlist.
func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	identity, err := requestCartIdentity(c)
	if err != nil {
		return err
	}

	wishlist, err := h.uc.GetWishlist(c.Request().Context(), identity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, wishlist, "Wishlist retrieved successfully")
}

// AddItem handles saving a product to the caller's wishlist.
func (h *WishlistHandler) AddItem(c echo.Context) error {
	identity, err := requestCartIdentity(c)
	if err != nil {
		return err
	}

	var input struct {
		ProductID string `json:"productId"`
	}
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid wishlist item input")
	}

	wishlist, err := h.uc.AddItem(c.Request().Context(), identity, input.ProductID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, wishlist, "Item added to wishlist")
}

// RemoveItem handles deleting a saved product from the caller's wishlist.
func (h *WishlistHandler) RemoveItem(c echo.Context) error {
	identity, err := requestCartIdentity(c)
	if err != nil {
		return err
	}

	productID := c.Param("productId")
	if productID == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Product ID is required")
	}

	wishlist, err := h.uc.RemoveItem(c.Request().Context(), identity, productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, wishlist, "Item removed from wishlist")
}
