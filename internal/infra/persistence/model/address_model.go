package model

import (
	"time"

	"github.com/google/uuid"
)

// AddressModel mirrors the 'addresses' table. A partial unique index on
// (user_id) WHERE is_default guarantees at most one default per user.
type AddressModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Label     string    `gorm:"type:varchar(50)"`
	Recipient string    `gorm:"type:varchar(100);not null"`
	Mobile    string    `gorm:"type:varchar(20);not null"`
	Line1     string    `gorm:"type:varchar(255);not null"`
	Line2     string    `gorm:"type:varchar(255)"`
	City      string    `gorm:"type:varchar(100);not null"`
	State     string    `gorm:"type:varchar(100);not null"`
	Pincode   string    `gorm:"type:varchar(10);not null"`
	IsDefault bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AddressModel) TableName() string {
	return "addresses"
}
