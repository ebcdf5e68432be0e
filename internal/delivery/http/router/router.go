// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers the router needs, injected by Fx.
type RouterParams struct {
	fx.In

	UserHandler     *handler.UserHandler
	AddressHandler  *handler.AddressHandler
	CatalogHandler  *handler.CatalogHandler
	CartHandler     *handler.CartHandler
	WishlistHandler *handler.WishlistHandler
	CheckoutHandler *handler.CheckoutHandler
	EnquiryHandler  *handler.EnquiryHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.params.AuthMiddleware

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.params.UserHandler.RegisterUser)
		authGroup.POST("/login", r.params.UserHandler.Login)
		authGroup.POST("/refresh", r.params.UserHandler.RefreshToken)
		authGroup.POST("/logout", r.params.UserHandler.Logout)
	}

	// Catalog routes are public
	catalogGroup := e.Group("/catalog")
	{
		catalogGroup.GET("/products", r.params.CatalogHandler.ListProducts)
		catalogGroup.GET("/products/:id", r.params.CatalogHandler.GetProduct)
		catalogGroup.GET("/categories", r.params.CatalogHandler.ListCategories)
	}

	// Cart routes serve both guests (X-Session-Id) and logged-in users
	cartGroup := e.Group("/cart")
	cartGroup.Use(auth.OptionalAuthenticate)
	{
		cartGroup.GET("", r.params.CartHandler.GetCart)
		cartGroup.POST("/items", r.params.CartHandler.AddItem)
		cartGroup.PUT("/items/:productId", r.params.CartHandler.UpdateItemQuantity)
		cartGroup.DELETE("/items/:productId", r.params.CartHandler.RemoveItem)
		cartGroup.DELETE("", r.params.CartHandler.ClearCart)
	}

	// Wishlist routes use the same identity rules as the cart
	wishlistGroup := e.Group("/wishlist")
	wishlistGroup.Use(auth.OptionalAuthenticate)
	{
		wishlistGroup.GET("", r.params.WishlistHandler.GetWishlist)
		wishlistGroup.POST("/items", r.params.WishlistHandler.AddItem)
		wishlistGroup.DELETE("/items/:productId", r.params.WishlistHandler.RemoveItem)
	}

	// Enquiry routes are open to guests
	enquiryGroup := e.Group("/enquiries")
	{
		enquiryGroup.POST("", r.params.EnquiryHandler.CreateEnquiry)
		enquiryGroup.GET("", r.params.EnquiryHandler.ListEnquiries)
	}

	// Profile routes require authentication
	userGroup := e.Group("/user")
	userGroup.Use(auth.Authenticate)
	{
		userGroup.GET("/profile", r.params.UserHandler.GetProfile)
		userGroup.PUT("/profile", r.params.UserHandler.UpdateProfile)

		userGroup.POST("/addresses", r.params.AddressHandler.CreateAddress)
		userGroup.GET("/addresses", r.params.AddressHandler.ListAddresses)
		userGroup.PUT("/addresses/:id", r.params.AddressHandler.UpdateAddress)
		userGroup.DELETE("/addresses/:id", r.params.AddressHandler.DeleteAddress)
		userGroup.PUT("/addresses/:id/default", r.params.AddressHandler.SetDefaultAddress)
	}

	// Checkout routes require authentication
	checkoutGroup := e.Group("/checkout")
	checkoutGroup.Use(auth.Authenticate)
	{
		checkoutGroup.GET("/details", r.params.CheckoutHandler.CheckDetails)
		checkoutGroup.POST("/orders", r.params.CheckoutHandler.PlaceOrder)
		checkoutGroup.GET("/orders", r.params.CheckoutHandler.ListOrders)
		checkoutGroup.GET("/orders/:id", r.params.CheckoutHandler.GetOrder)
		checkoutGroup.GET("/recent-items", r.params.CheckoutHandler.RecentItems)
	}
}
