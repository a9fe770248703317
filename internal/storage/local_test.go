package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartg5/storefront/internal/storage"
)

// Test_LocalStorage_RoundTrip validates put/get/exists/delete against the
// real filesystem.
func Test_LocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	value := []byte(`{"cart": []}`)
	require.NoError(t, store.Put(ctx, "smartg5.cart", value))

	exists, err := store.Exists(ctx, "smartg5.cart")
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := store.Get(ctx, "smartg5.cart")
	require.NoError(t, err)
	assert.Equal(t, value, got)

	require.NoError(t, store.Delete(ctx, "smartg5.cart"))
	exists, err = store.Exists(ctx, "smartg5.cart")
	require.NoError(t, err)
	assert.False(t, exists)
}

// Test_LocalStorage_GetMissingKey validates the not-found contract.
func Test_LocalStorage_GetMissingKey(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(ctx, "never.written")

	require.Error(t, err)
	assert.True(t, storage.IsNotFound(err))
}

// Test_LocalStorage_DeleteIsIdempotent validates that deleting an absent
// key is not an error.
func Test_LocalStorage_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(ctx, "never.written"))
}

// Test_LocalStorage_OverwriteReplacesWhole validates full-value replacement
// semantics.
func Test_LocalStorage_OverwriteReplacesWhole(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "k", []byte("a much longer first value")))
	require.NoError(t, store.Put(ctx, "k", []byte("short")))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("short"), got)
}

// Test_NewStorage_ProviderSelection validates the factory.
func Test_NewStorage_ProviderSelection(t *testing.T) {
	local, err := storage.NewStorage(storage.Config{Provider: "local", Path: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &storage.LocalStorage{}, local)

	mock, err := storage.NewStorage(storage.Config{Provider: "mock"})
	require.NoError(t, err)
	assert.IsType(t, &storage.MockStorage{}, mock)

	_, err = storage.NewStorage(storage.Config{Provider: "s3"})
	assert.Error(t, err)
}
