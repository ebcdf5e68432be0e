package service

import (
	"context"
)

// Event types published by the storefront.
const (
	EventTypeEnquiryCreated = "enquiry.created"
	EventTypeOrderPlaced    = "order.placed"
)

// StorefrontEvent represents a domain event to be delivered to downstream consumers
type StorefrontEvent struct {
	RequestID string  `json:"request_id,omitempty"` // For distributed tracing
	Type      string  `json:"type"`
	EntityID  string  `json:"entity_id"`
	UserID    string  `json:"user_id,omitempty"`
	Mobile    string  `json:"mobile,omitempty"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishEvent publishes a storefront event for async processing
	PublishEvent(ctx context.Context, event *StorefrontEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
