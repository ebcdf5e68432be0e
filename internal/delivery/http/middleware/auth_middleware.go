package middleware

import (
	"net/http"
	"strings"

	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKeyUserID is the echo.Context key under which the authenticated
// user's ID is stored.
const ContextKeyUserID = "userID"

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate is the core middleware function that validates the JWT access token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := m.userIDFromRequest(c)
		if err != nil {
			return err
		}

		c.Set(ContextKeyUserID, userID)

		return next(c)
	}
}

// OptionalAuthenticate validates the access token when one is present but
// lets anonymous requests through. Cart routes use it: guests are keyed by
// the X-Session-Id header instead of a user ID.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get("Authorization") == "" {
			return next(c)
		}

		userID, err := m.userIDFromRequest(c)
		if err != nil {
			return err
		}

		c.Set(ContextKeyUserID, userID)

		return next(c)
	}
}

func (m *AuthMiddleware) userIDFromRequest(c echo.Context) (uuid.UUID, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return uuid.Nil, c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization header is missing"})
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return uuid.Nil, c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token format, must be Bearer token"})
	}

	claims, err := m.tokenSvc.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
	}

	if claims.Type != "access" {
		return uuid.Nil, c.JSON(http.StatusUnauthorized, map[string]string{"error": "Token is not an access token"})
	}

	if claims.UserID == uuid.Nil {
		return uuid.Nil, c.JSON(http.StatusUnauthorized, map[string]string{"error": "User ID missing from token"})
	}

	return claims.UserID, nil
}

// UserIDFromContext extracts the authenticated user's ID set by Authenticate.
func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(ContextKeyUserID).(uuid.UUID)

	return userID, ok
}
