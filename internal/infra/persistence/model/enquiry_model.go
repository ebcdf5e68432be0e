package model

import (
	"time"

	"github.com/google/uuid"
)

// EnquiryModel mirrors the 'enquiries' table. Enquiries are append-only.
type EnquiryModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	UserName      string    `gorm:"type:varchar(100);not null"`
	UserMobile    string    `gorm:"type:varchar(20);not null;index"`
	UserEmail     string    `gorm:"type:varchar(255)"`
	Subtotal      float64   `gorm:"type:numeric(12,2);not null"`
	Total         float64   `gorm:"type:numeric(12,2);not null"`
	ContactMethod string    `gorm:"type:varchar(20);not null"`
	CreatedAt     time.Time

	Items []EnquiryItemModel `gorm:"foreignKey:EnquiryID"`
}

// TableName explicitly sets the table name for GORM.
func (EnquiryModel) TableName() string {
	return "enquiries"
}

// EnquiryItemModel mirrors the 'enquiry_items' table.
type EnquiryItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	EnquiryID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID string    `gorm:"type:varchar(64);not null"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Price     float64   `gorm:"type:numeric(12,2);not null"`
	Quantity  int       `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (EnquiryItemModel) TableName() string {
	return "enquiry_items"
}
