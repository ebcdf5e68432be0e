package entity

import (
	"time"

	"github.com/google/uuid"
)

// Address is a customer shipping/contact address. At most one address
// per user carries IsDefault=true; the persistence layer enforces this
// inside the same transaction that flips the flag.
type Address struct {
	ID        uuid.UUID // The unique identifier for the address.
	UserID    uuid.UUID // The user this address belongs to.
	Label     string    // User-defined label, e.g. "Home", "Office".
	Recipient string    // Name of the person receiving deliveries here.
	Mobile    string    // Contact number for this address.
	Line1     string    // Street address, first line.
	Line2     string    // Street address, second line; optional.
	City      string
	State     string
	Pincode   string
	IsDefault bool // Whether this is the user's default address.
	CreatedAt time.Time
	UpdatedAt time.Time
}
