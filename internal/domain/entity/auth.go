package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderTypeEmail is the email/password authentication provider.
const ProviderTypeEmail = "email"

// Authentication represents a single method of logging in (a credential).
// Only the "email" provider is supported today; the provider column keeps
// the door open for federated logins without a schema change.
type Authentication struct {
	ID             uuid.UUID // The unique ID for this authentication record.
	UserID         uuid.UUID // Links this credential to the User it belongs to.
	Provider       string    // The authentication provider, e.g. "email".
	ProviderUserID string    // The login identifier within the provider (the email address for "email").
	PasswordHash   string    // Bcrypt-hashed password, used when the Provider is "email".
	CreatedAt      time.Time // When this credential was linked to the account.
}

// RefreshToken represents a long-lived, authorized login session.
// It is used to obtain a new access token after the old one expires.
type RefreshToken struct {
	ID        uuid.UUID // The unique ID for this token record.
	UserID    uuid.UUID // Links this session to its User.
	TokenHash string    // SHA-256 hash of the raw refresh token.
	ExpiresAt time.Time // When this refresh token becomes invalid.
	CreatedAt time.Time // When this session was created.
}
