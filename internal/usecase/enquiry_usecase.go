// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// EnquiryItemInput is a single product line within an enquiry.
type EnquiryItemInput struct {
	ProductID string
	Name      string
	Price     float64
	Quantity  int
}

// CreateEnquiryInput defines the data required to submit a product enquiry.
type CreateEnquiryInput struct {
	UserName      string
	UserMobile    string
	UserEmail     string
	Items         []EnquiryItemInput
	ContactMethod entity.ContactMethod
}

// CreateEnquiryOutput returns the stored enquiry. When the contact method
// is WhatsApp, QRCode holds a PNG encoding a prefilled chat link.
type CreateEnquiryOutput struct {
	Enquiry *entity.Enquiry
	QRCode  []byte
}

// EnquiryUsecase defines the interface for product enquiry operations.
type EnquiryUsecase interface {
	CreateEnquiry(ctx context.Context, input *CreateEnquiryInput) (*CreateEnquiryOutput, error)
	ListEnquiriesByMobile(ctx context.Context, mobile string) ([]*entity.Enquiry, error)
}
