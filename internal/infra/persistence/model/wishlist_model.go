package model

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItemModel mirrors the 'wishlist_items' table: one row per
// (user, product) saved entry.
type WishlistItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_product"`
	ProductID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_wishlist_user_product"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Image     string    `gorm:"type:text"`
	Price     float64   `gorm:"type:numeric(12,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (WishlistItemModel) TableName() string {
	return "wishlist_items"
}
