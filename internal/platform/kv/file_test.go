package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Get(ctx, "cart")
	require.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "cart", []byte(`[{"productId":"41"}]`)))
	blob, err := store.Get(ctx, "cart")
	require.NoError(t, err)
	require.JSONEq(t, `[{"productId":"41"}]`, string(blob))

	require.NoError(t, store.Set(ctx, "cart", []byte(`[]`)))
	blob, err = store.Get(ctx, "cart")
	require.NoError(t, err)
	require.Equal(t, "[]", string(blob))

	require.NoError(t, store.Delete(ctx, "cart"))
	_, err = store.Get(ctx, "cart")
	require.ErrorIs(t, err, ErrKeyNotFound)
	require.NoError(t, store.Delete(ctx, "cart"))
}

func TestFileStore_EscapesKeys(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "orders/user@example.com", []byte(`[]`)))
	blob, err := store.Get(ctx, "orders/user@example.com")
	require.NoError(t, err)
	require.Equal(t, "[]", string(blob))
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	payload := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", payload))
	payload[0] = 'x'

	blob, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(blob))
}
