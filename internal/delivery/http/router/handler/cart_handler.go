package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler holds dependencies for cart handlers. Cart routes accept
// both authenticated users (via bearer token) and guests (via the
// X-Session-Id header), so every handler starts by resolving the caller
// into a CartIdentity.
type CartHandler struct {
	uc     usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetCart handles retrieving the caller's cart.
func (h *CartHandler) GetCart(c echo.Context) error {
	identity, err := requestCartIdentity(c)
	if err != nil {
		return err
	}

	cart, err := h.uc.GetCart(c.Request().Context(), identity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Cart retrieved successfully")
}

// AddItem handles adding a product to the caller's cart.
func (h *CartHandler) AddItem(c echo.Context) error {
	identity, err := requestCartIdentity(c)
	if err != nil {
		return err
	}

	var input *usecase.AddCartItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}

	cart, err := h.uc.AddItem(c.Request().Context(), identity, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Item added to cart")
}

// UpdateItemQuantity handles setting the quantity of a cart line.
// A quantity of zero removes the line.
func (h *CartHandler) UpdateItemQuantity(c echo.Context) error {
	identity, err := requestCartIdentity(c)
	if err != nil {
		return err
	}

	productID := c.Param("productId")
	if productID == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Product ID is required")
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid quantity input")
	}

	cart, err := h.uc.UpdateItemQuantity(c.Request().Context(), identity, productID, input.Quantity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Cart updated")
}

// RemoveItem handles deleting a product line from the caller's cart.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	identity, err := requestCartIdentity(c)
	if err != nil {
		return err
	}

	productID := c.Param("productId")
	if productID == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Product ID is required")
	}

	cart, err := h.uc.RemoveItem(c.Request().Context(), identity, productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Item removed from cart")
}

// ClearCart handles emptying the caller's cart.
func (h *CartHandler) ClearCart(c echo.Context) error {
	identity, err := requestCartIdentity(c)
	if err != nil {
		return err
	}

	if err := h.uc.ClearCart(c.Request().Context(), identity); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Cart cleared"}, "Cart cleared successfully")
}

// requestCartIdentity resolves the caller into a CartIdentity: the
// authenticated user ID when a valid token was presented, otherwise the
// anonymous session ID from the X-Session-Id header. Shared with the
// wishlist handlers, which use the same identity rules.
func requestCartIdentity(c echo.Context) (usecase.CartIdentity, error) {
	identity := usecase.CartIdentity{
		SessionID: c.Request().Header.Get(deliverycontext.HeaderXSessionID),
	}

	if userID, ok := middleware.UserIDFromContext(c); ok {
		identity.UserID = &userID
	}

	if identity.UserID == nil && identity.SessionID == "" {
		return identity, response.BadRequest(c, "MISSING_SESSION", "X-Session-Id header is required for guest carts")
	}

	return identity, nil
}
