package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKV_Contract(t *testing.T) {
	runKVContract(t, NewMemoryKV())
}

func TestMemoryKV_ValuesAreCopied(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	input := []byte("abc")
	require.NoError(t, kv.Put(ctx, "k", input))
	input[0] = 'x'

	value, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(value))

	value[1] = 'y'
	again, _ := kv.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}
