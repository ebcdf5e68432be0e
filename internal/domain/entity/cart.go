package entity

import "time"

// Cart holds a customer's pending items. A cart exists in one of two
// stores: the server-side store keyed by user ID (authoritative once a
// login has been reconciled) or the guest session store keyed by
// session ID (authoritative before login).
type Cart struct {
	Items     []CartItem
	Total     float64 // Sum of Price*Quantity across items.
	UpdatedAt time.Time
}

// CartItem is a single product entry in a cart, keyed by ProductID.
// Name, image and price are snapshotted at add time so the cart stays
// renderable even when the upstream catalog is unreachable.
type CartItem struct {
	ProductID string
	Name      string
	Image     string
	Price     float64
	Quantity  int
}

// Recalculate recomputes the cart total from its items.
func (c *Cart) Recalculate() {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	c.Total = total
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}
