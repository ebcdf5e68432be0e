package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus tracks an order through its lifecycle. This service only
// ever creates orders in StatusPlaced; downstream fulfilment systems
// own the later transitions.
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a placed customer order.
type Order struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	AddressID uuid.UUID // The default address at placement time.
	Items     []OrderItem
	Total     float64
	Status    OrderStatus
	CreatedAt time.Time
}

// OrderItem is a product snapshot within an order.
type OrderItem struct {
	ProductID string
	Name      string
	Image     string
	Price     float64
	Quantity  int
}
