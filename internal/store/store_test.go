package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Set(ctx, "greeting", "hello"))

	value, err := m.Get(ctx, "greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello", value)

	require.NoError(t, m.Delete(ctx, "greeting"))
	_, err = m.Get(ctx, "greeting")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent key is fine.
	assert.NoError(t, m.Delete(ctx, "greeting"))
}

func TestMemoryKeysPrefix(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "cart:backup:a", "1"))
	require.NoError(t, m.Set(ctx, "cart:backup:b", "2"))
	require.NoError(t, m.Set(ctx, "sessions", "3"))

	keys, err := m.Keys(ctx, "cart:backup:")
	require.NoError(t, err)
	assert.Equal(t, []string{"cart:backup:a", "cart:backup:b"}, keys)

	keys, err = m.Keys(ctx, "orders:")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, SetJSON(ctx, m, "record", record{Name: "apples", Count: 3}))

	var got record
	require.NoError(t, GetJSON(ctx, m, "record", &got))
	assert.Equal(t, record{Name: "apples", Count: 3}, got)
}

func TestLoadJSONTreatsCorruptAsAbsent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var dest map[string]string

	found, err := LoadJSON(ctx, m, "missing", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, m.Set(ctx, "broken", "{not json"))
	found, err = LoadJSON(ctx, m, "broken", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, m.Set(ctx, "good", `{"a":"b"}`))
	found, err = LoadJSON(ctx, m, "good", &dest)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "b", dest["a"])
}
