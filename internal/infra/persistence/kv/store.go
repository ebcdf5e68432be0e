// Package kv provides the session-scoped key-value store backing guest
// carts and the recent-order-items list. The in-memory implementation
// serializes values as JSON so a networked KV backend (e.g. Redis) can
// replace it without touching the callers.
package kv

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	guestCartKeyPrefix     = "cart:guest:"
	guestWishlistKeyPrefix = "wishlist:guest:"
	recentItemsKeyPrefix   = "orders:recent:"
)

// memoryStore is an in-process implementation of repository.SessionStore.
type memoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() repository.SessionStore {
	return &memoryStore{
		data: make(map[string][]byte),
	}
}

// GuestCart retrieves the cart stored for an anonymous session.
func (s *memoryStore) GuestCart(_ context.Context, sessionID string) (*entity.Cart, error) {
	raw, ok := s.get(guestCartKeyPrefix + sessionID)
	if !ok {
		return nil, repository.ErrSessionKeyNotFound
	}

	var cart entity.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, errors.Wrap(err, "failed to decode guest cart")
	}

	return &cart, nil
}

// SaveGuestCart stores a cart snapshot for an anonymous session.
func (s *memoryStore) SaveGuestCart(_ context.Context, sessionID string, cart *entity.Cart) error {
	cart.UpdatedAt = time.Now()

	raw, err := json.Marshal(cart)
	if err != nil {
		return errors.Wrap(err, "failed to encode guest cart")
	}

	s.set(guestCartKeyPrefix+sessionID, raw)

	return nil
}

// DeleteGuestCart removes an anonymous session's cart.
func (s *memoryStore) DeleteGuestCart(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := guestCartKeyPrefix + sessionID
	if _, ok := s.data[key]; !ok {
		return repository.ErrSessionKeyNotFound
	}
	delete(s.data, key)

	return nil
}

// GuestWishlist retrieves the wishlist stored for an anonymous session.
func (s *memoryStore) GuestWishlist(_ context.Context, sessionID string) (*entity.Wishlist, error) {
	raw, ok := s.get(guestWishlistKeyPrefix + sessionID)
	if !ok {
		return nil, repository.ErrSessionKeyNotFound
	}

	var wishlist entity.Wishlist
	if err := json.Unmarshal(raw, &wishlist); err != nil {
		return nil, errors.Wrap(err, "failed to decode guest wishlist")
	}

	return &wishlist, nil
}

// SaveGuestWishlist stores a wishlist snapshot for an anonymous session.
func (s *memoryStore) SaveGuestWishlist(_ context.Context, sessionID string, wishlist *entity.Wishlist) error {
	wishlist.UpdatedAt = time.Now()

	raw, err := json.Marshal(wishlist)
	if err != nil {
		return errors.Wrap(err, "failed to encode guest wishlist")
	}

	s.set(guestWishlistKeyPrefix+sessionID, raw)

	return nil
}

// RecentOrderItems retrieves the user's most recently ordered items, newest first.
func (s *memoryStore) RecentOrderItems(_ context.Context, userID uuid.UUID) ([]entity.OrderItem, error) {
	raw, ok := s.get(recentItemsKeyPrefix + userID.String())
	if !ok {
		return nil, repository.ErrSessionKeyNotFound
	}

	var items []entity.OrderItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, errors.Wrap(err, "failed to decode recent order items")
	}

	return items, nil
}

// AppendRecentOrderItems prepends items to the user's recent-order list,
// trimming the list to its capacity.
func (s *memoryStore) AppendRecentOrderItems(_ context.Context, userID uuid.UUID, items []entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := recentItemsKeyPrefix + userID.String()

	var existing []entity.OrderItem
	if raw, ok := s.data[key]; ok {
		if err := json.Unmarshal(raw, &existing); err != nil {
			return errors.Wrap(err, "failed to decode recent order items")
		}
	}

	merged := make([]entity.OrderItem, 0, len(items)+len(existing))
	merged = append(merged, items...)
	merged = append(merged, existing...)
	if len(merged) > constants.RecentOrderItemsLimit {
		merged = merged[:constants.RecentOrderItemsLimit]
	}

	raw, err := json.Marshal(merged)
	if err != nil {
		return errors.Wrap(err, "failed to encode recent order items")
	}
	s.data[key] = raw

	return nil
}

func (s *memoryStore) get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.data[key]

	return raw, ok
}

func (s *memoryStore) set(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
}
