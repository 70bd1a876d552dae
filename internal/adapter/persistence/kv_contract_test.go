package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinel/sentinel/internal/ports"
)

// runKVContract checks the behaviour every KeyValueStorage must share
func runKVContract(t *testing.T, kv ports.KeyValueStorage) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := kv.Get(ctx, "absent")
		assert.ErrorIs(t, err, ports.ErrKeyNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		require.NoError(t, kv.Put(ctx, "sentinel_user", []byte(`{"id":"u1"}`)))

		value, err := kv.Get(ctx, "sentinel_user")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"id":"u1"}`), value)
	})

	t.Run("put overwrites", func(t *testing.T) {
		require.NoError(t, kv.Put(ctx, "sentinel_user", []byte(`{"id":"u2"}`)))

		value, err := kv.Get(ctx, "sentinel_user")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"id":"u2"}`), value)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, kv.Delete(ctx, "sentinel_user"))

		_, err := kv.Get(ctx, "sentinel_user")
		assert.ErrorIs(t, err, ports.ErrKeyNotFound)
	})

	t.Run("delete absent key", func(t *testing.T) {
		assert.NoError(t, kv.Delete(ctx, "never-set"))
	})
}
