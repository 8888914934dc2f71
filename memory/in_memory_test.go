package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_State(t *testing.T) {
	store := NewInMemoryStore()

	_, ok := store.GetState("missing")
	assert.False(t, ok)

	store.SetState("counter", 3)
	v, ok := store.GetState("counter")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	store.SetState("counter", 4)
	v, _ = store.GetState("counter")
	assert.Equal(t, 4, v)

	store.DeleteState("counter")
	_, ok = store.GetState("counter")
	assert.False(t, ok)

	// Deleting an absent key is a no-op.
	store.DeleteState("counter")
}

func TestInMemoryStore_StoreAndSearch(t *testing.T) {
	store := NewInMemoryStore()
	require.NoError(t, store.Store("the user prefers metric units", map[string]any{"kind": "preference"}))
	require.NoError(t, store.Store("last query was about Oslo", nil))

	results, err := store.Search("oslo", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "last query was about Oslo", results[0].Content)
	assert.Equal(t, 1.0, results[0].Score)

	results, err = store.Search("", 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, "preference", results[0].Metadata["kind"])
}

func TestInMemoryStore_SearchLimit(t *testing.T) {
	store := NewInMemoryStore()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Store("note", nil))
	}

	results, err := store.Search("note", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestInMemoryStore_Reset(t *testing.T) {
	store := NewInMemoryStore()
	store.SetState("k", "v")
	require.NoError(t, store.Store("record", nil))

	store.Reset()

	_, ok := store.GetState("k")
	assert.False(t, ok)
	results, err := store.Search("", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestInMemoryStore_MetadataCopied(t *testing.T) {
	store := NewInMemoryStore()
	md := map[string]any{"kind": "preference"}
	require.NoError(t, store.Store("note", md))

	md["kind"] = "mutated"

	results, err := store.Search("note", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "preference", results[0].Metadata["kind"])
}
