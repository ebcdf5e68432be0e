// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a storefront customer account. Profile completeness
// (name, email, default address) gates order placement, so the fields
// here are intentionally allowed to be empty until the customer fills
// them in.
type User struct {
	ID        uuid.UUID // The unique identifier for the user.
	Email     string    // Primary contact email, also the login identifier.
	Name      string    // Display name; may be empty for fresh accounts.
	Mobile    string    // Contact mobile number; may be empty.
	CreatedAt time.Time // Timestamp of when this account was created.
	UpdatedAt time.Time // Timestamp of the last modification.
}
