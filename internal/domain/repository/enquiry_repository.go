// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrEnquiryNotFound is returned when an enquiry is not found.
var ErrEnquiryNotFound = errors.New("enquiry not found")

// EnquiryRepository defines the standard operations for product enquiry persistence.
type EnquiryRepository interface {
	// Create persists a new enquiry together with its item lines.
	Create(ctx context.Context, enquiry *entity.Enquiry) error

	// FindByID retrieves a single enquiry by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Enquiry, error)

	// FindByMobile retrieves all enquiries submitted with a mobile number, newest first.
	FindByMobile(ctx context.Context, mobile string) ([]*entity.Enquiry, error)
}
