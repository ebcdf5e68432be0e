package kv

import (
	"context"
	"fmt"
	"testing"

	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GuestCartRoundTrip(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	cart := &entity.Cart{
		Items: []entity.CartItem{
			{ProductID: "pump-1", Name: "Submersible Pump", Price: 900, Quantity: 2},
		},
	}
	cart.Recalculate()

	require.NoError(t, store.SaveGuestCart(ctx, "session-1", cart))

	got, err := store.GuestCart(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "pump-1", got.Items[0].ProductID)
	assert.InDelta(t, 1800.0, got.Total, 0.001)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestMemoryStore_GuestCartMissingSession(t *testing.T) {
	store := NewMemorySessionStore()

	_, err := store.GuestCart(context.Background(), "unknown")
	assert.ErrorIs(t, err, repository.ErrSessionKeyNotFound)
}

func TestMemoryStore_DeleteGuestCart(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	cart := &entity.Cart{
		Items: []entity.CartItem{{ProductID: "p1", Quantity: 1}},
	}
	require.NoError(t, store.SaveGuestCart(ctx, "session-1", cart))
	require.NoError(t, store.DeleteGuestCart(ctx, "session-1"))

	_, err := store.GuestCart(ctx, "session-1")
	assert.ErrorIs(t, err, repository.ErrSessionKeyNotFound)

	// Deleting again reports the key as missing.
	assert.ErrorIs(t, store.DeleteGuestCart(ctx, "session-1"), repository.ErrSessionKeyNotFound)
}

func TestMemoryStore_SessionsAreIndependent(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	cartA := &entity.Cart{Items: []entity.CartItem{{ProductID: "a", Quantity: 1}}}
	cartB := &entity.Cart{Items: []entity.CartItem{{ProductID: "b", Quantity: 3}}}

	require.NoError(t, store.SaveGuestCart(ctx, "session-a", cartA))
	require.NoError(t, store.SaveGuestCart(ctx, "session-b", cartB))

	gotA, err := store.GuestCart(ctx, "session-a")
	require.NoError(t, err)
	assert.Equal(t, "a", gotA.Items[0].ProductID)

	gotB, err := store.GuestCart(ctx, "session-b")
	require.NoError(t, err)
	assert.Equal(t, "b", gotB.Items[0].ProductID)
}

func TestMemoryStore_GuestWishlistRoundTrip(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	wishlist := &entity.Wishlist{
		Items: []entity.WishlistItem{
			{ProductID: "pump-1", Name: "Submersible Pump", Price: 900},
		},
	}

	require.NoError(t, store.SaveGuestWishlist(ctx, "session-1", wishlist))

	got, err := store.GuestWishlist(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "pump-1", got.Items[0].ProductID)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestMemoryStore_GuestWishlistMissingSession(t *testing.T) {
	store := NewMemorySessionStore()

	_, err := store.GuestWishlist(context.Background(), "unknown")
	assert.ErrorIs(t, err, repository.ErrSessionKeyNotFound)
}

func TestMemoryStore_GuestWishlistAndCartDoNotCollide(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	cart := &entity.Cart{Items: []entity.CartItem{{ProductID: "in-cart", Quantity: 1}}}
	wishlist := &entity.Wishlist{Items: []entity.WishlistItem{{ProductID: "saved"}}}

	require.NoError(t, store.SaveGuestCart(ctx, "session-1", cart))
	require.NoError(t, store.SaveGuestWishlist(ctx, "session-1", wishlist))

	gotCart, err := store.GuestCart(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "in-cart", gotCart.Items[0].ProductID)

	gotWishlist, err := store.GuestWishlist(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "saved", gotWishlist.Items[0].ProductID)
}

func TestMemoryStore_RecentOrderItemsNewestFirst(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()
	userID := uuid.New()

	first := []entity.OrderItem{{ProductID: "old", Quantity: 1}}
	second := []entity.OrderItem{{ProductID: "new", Quantity: 1}}

	require.NoError(t, store.AppendRecentOrderItems(ctx, userID, first))
	require.NoError(t, store.AppendRecentOrderItems(ctx, userID, second))

	items, err := store.RecentOrderItems(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0].ProductID)
	assert.Equal(t, "old", items[1].ProductID)
}

func TestMemoryStore_RecentOrderItemsCapped(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()
	userID := uuid.New()

	for i := 0; i < constants.RecentOrderItemsLimit+5; i++ {
		items := []entity.OrderItem{{ProductID: fmt.Sprintf("p-%d", i), Quantity: 1}}
		require.NoError(t, store.AppendRecentOrderItems(ctx, userID, items))
	}

	items, err := store.RecentOrderItems(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, items, constants.RecentOrderItemsLimit)
	// The newest append survives the trim.
	assert.Equal(t, fmt.Sprintf("p-%d", constants.RecentOrderItemsLimit+4), items[0].ProductID)
}

func TestMemoryStore_RecentOrderItemsMissingUser(t *testing.T) {
	store := NewMemorySessionStore()

	_, err := store.RecentOrderItems(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrSessionKeyNotFound)
}
