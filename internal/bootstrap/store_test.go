package bootstrap

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("empty URL disables the store", func(t *testing.T) {
		store, err := OpenStore(ctx, StoreOptions{URL: ""})
		require.NoError(t, err)
		assert.Nil(t, store)
	})

	t.Run("redis URL selects the redis backend", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		defer mr.Close()

		store, err := OpenStore(ctx, StoreOptions{URL: "redis://" + mr.Addr()})
		require.NoError(t, err)
		require.NotNil(t, store)
		defer store.Close()

		assert.Equal(t, "redis", store.Name())
		assert.NoError(t, store.Ping(ctx))
	})

	t.Run("unsupported scheme is a boot error", func(t *testing.T) {
		_, err := OpenStore(ctx, StoreOptions{URL: "mysql://root@localhost/forge"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported DATABASE_URL scheme")
	})

	t.Run("scheme-less URL is a boot error", func(t *testing.T) {
		_, err := OpenStore(ctx, StoreOptions{URL: "localhost:6379"})
		require.Error(t, err)
	})
}
