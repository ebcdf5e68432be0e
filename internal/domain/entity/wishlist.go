package entity

import "time"

// Wishlist holds products a customer has saved for later. Like the cart
// it exists either server-side keyed by user ID or in the guest session
// store keyed by session ID. Unlike the cart there is no login merge:
// the two copies stay independent.
type Wishlist struct {
	Items     []WishlistItem
	UpdatedAt time.Time
}

// WishlistItem is a saved product, keyed by ProductID. Name, image and
// price are snapshotted at save time, same as cart lines.
type WishlistItem struct {
	ProductID string
	Name      string
	Image     string
	Price     float64
}

// IsEmpty reports whether the wishlist has no items.
func (w *Wishlist) IsEmpty() bool {
	return w == nil || len(w.Items) == 0
}
