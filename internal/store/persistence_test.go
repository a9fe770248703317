package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartg5/storefront/internal/storage"
	"github.com/smartg5/storefront/internal/store"
)

// Test_Store_Load_RestoresCartAndWishlist validates the durability
// round-trip: a second store on the same storage sees what the first
// one persisted.
func Test_Store_Load_RestoresCartAndWishlist(t *testing.T) {
	ctx := context.Background()
	mock := storage.NewMockStorage()

	first := newTestStore(t, &fakeClient{}, mock, store.Options{})
	require.NoError(t, first.AddToCart(ctx, testProduct("1", "Drill", 10000), 3))
	require.NoError(t, first.ToggleWishlist(ctx, testProduct("2", "Saw", 5000)))

	// Simulates an app restart.
	second := newTestStore(t, &fakeClient{}, mock, store.Options{})
	require.NoError(t, second.Load(ctx))

	cart := second.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, "1", cart[0].Product.ID)
	assert.Equal(t, "Drill", cart[0].Product.Name)
	assert.Equal(t, int64(3), cart[0].Quantity)
	assert.Equal(t, int64(10000), cart[0].Product.PriceCents)

	wishlist := second.Wishlist()
	require.Len(t, wishlist, 1)
	assert.Equal(t, "2", wishlist[0].ID)
	assert.True(t, second.InWishlist("2"))
}

// Test_Store_Load_FreshInstall validates that missing keys mean empty
// state, not an error.
func Test_Store_Load_FreshInstall(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, &fakeClient{}, storage.NewMockStorage(), store.Options{})

	require.NoError(t, s.Load(ctx))

	assert.Empty(t, s.Cart())
	assert.Empty(t, s.Wishlist())
}

// Test_Store_Load_DropsInvalidRecords validates record-level tolerance:
// one bad persisted record never discards its neighbors.
func Test_Store_Load_DropsInvalidRecords(t *testing.T) {
	ctx := context.Background()
	mock := storage.NewMockStorage()

	persisted := `[
		{"product": {"id": "1", "name": "Drill", "price_cents": 10000}, "quantity": 2},
		{"product": {"id": "", "name": "No ID", "price_cents": 500}, "quantity": 1},
		{"product": {"id": "3", "name": "", "price_cents": 500}, "quantity": 1},
		{"product": {"id": "4", "name": "Saw", "price_cents": 5000}, "quantity": 0}
	]`
	require.NoError(t, mock.Put(ctx, "smartg5.cart", []byte(persisted)))

	s := newTestStore(t, &fakeClient{}, mock, store.Options{})
	require.NoError(t, s.Load(ctx))

	cart := s.Cart()
	require.Len(t, cart, 2, "records without id or name are dropped")
	assert.Equal(t, "1", cart[0].Product.ID)
	assert.Equal(t, "4", cart[1].Product.ID)
	assert.Equal(t, int64(1), cart[1].Quantity, "out-of-range quantity coerced to 1")
}

// Test_Store_Load_ToleratesCorruptBlob validates that an unparsable blob
// degrades to empty state instead of blocking startup.
func Test_Store_Load_ToleratesCorruptBlob(t *testing.T) {
	ctx := context.Background()
	mock := storage.NewMockStorage()
	require.NoError(t, mock.Put(ctx, "smartg5.cart", []byte("{not json")))
	require.NoError(t, mock.Put(ctx, "smartg5.wishlist", []byte("also not json")))

	s := newTestStore(t, &fakeClient{}, mock, store.Options{})

	require.NoError(t, s.Load(ctx))
	assert.Empty(t, s.Cart())
	assert.Empty(t, s.Wishlist())
}

// Test_Store_Load_FailsOnStorageError validates that a real storage
// failure (not absence, not corruption) is surfaced.
func Test_Store_Load_FailsOnStorageError(t *testing.T) {
	ctx := context.Background()
	mock := storage.NewMockStorage()
	mock.GetErr = assert.AnError

	s := newTestStore(t, &fakeClient{}, mock, store.Options{})

	assert.Error(t, s.Load(ctx))
}

// Test_Store_PersistenceIsBestEffort validates that a failing write never
// fails the mutation: the cart is memory-first.
func Test_Store_PersistenceIsBestEffort(t *testing.T) {
	ctx := context.Background()
	mock := storage.NewMockStorage()
	mock.PutErr = assert.AnError

	s := newTestStore(t, &fakeClient{}, mock, store.Options{})

	require.NoError(t, s.AddToCart(ctx, testProduct("1", "Drill", 10000), 1))
	assert.Len(t, s.Cart(), 1)

	require.NoError(t, s.ToggleWishlist(ctx, testProduct("2", "Saw", 5000)))
	assert.True(t, s.InWishlist("2"))
}

// Test_Store_WishlistPersistsSnapshots validates the persisted wishlist
// shape survives a reload with its display fields intact.
func Test_Store_WishlistPersistsSnapshots(t *testing.T) {
	ctx := context.Background()
	mock := storage.NewMockStorage()

	first := newTestStore(t, &fakeClient{}, mock, store.Options{})
	require.NoError(t, first.ToggleWishlist(ctx, testProduct("1", "Drill", 10000)))

	second := newTestStore(t, &fakeClient{}, mock, store.Options{})
	require.NoError(t, second.Load(ctx))

	wishlist := second.Wishlist()
	require.Len(t, wishlist, 1)
	assert.Equal(t, "Drill", wishlist[0].Name)
	assert.Equal(t, int64(10000), wishlist[0].PriceCents)
}
