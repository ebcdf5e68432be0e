package entity

import (
	"time"

	"github.com/google/uuid"
)

// ContactMethod is how a customer chose to be contacted about an enquiry.
type ContactMethod string

const (
	ContactMethodForm     ContactMethod = "form"
	ContactMethodWhatsApp ContactMethod = "whatsapp"
)

// Valid reports whether the contact method is one of the known values.
func (m ContactMethod) Valid() bool {
	return m == ContactMethodForm || m == ContactMethodWhatsApp
}

// Enquiry captures a customer's product enquiry. Enquiries are
// create-only: once submitted they are never mutated, only queried
// back for display.
type Enquiry struct {
	ID            uuid.UUID
	UserName      string
	UserMobile    string
	UserEmail     string
	Items         []EnquiryItem
	Subtotal      float64
	Total         float64
	ContactMethod ContactMethod
	CreatedAt     time.Time
}

// EnquiryItem is a product snapshot within an enquiry.
type EnquiryItem struct {
	ProductID string
	Name      string
	Price     float64
	Quantity  int
}
