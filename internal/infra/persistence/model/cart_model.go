package model

import (
	"time"

	"github.com/google/uuid"
)

// CartItemModel mirrors the 'cart_items' table. The server-side cart is
// stored as one row per (user, product) line; the cart total is derived,
// never persisted.
type CartItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	ProductID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_user_product"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Image     string    `gorm:"type:text"`
	Price     float64   `gorm:"type:numeric(12,2);not null"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartItemModel) TableName() string {
	return "cart_items"
}
