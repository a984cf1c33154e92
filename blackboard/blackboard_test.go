package blackboard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingKeyLeavesValueUntouched(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	items := []string{}
	store.Load("nothing-here", &items)

	assert.Empty(t, items)
}

func TestLoadInvalidJSONFallsBackToEmpty(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	// Corrupt file on disk, as a crashed write would leave behind
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orders.json"), []byte("{not json"), 0644))

	items := []string{}
	store.Load(KeyOrders, &items)

	assert.Empty(t, items)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	in := []string{"a", "b"}
	require.NoError(t, store.Save(KeyCart, in))

	out := []string{}
	store.Load(KeyCart, &out)

	assert.Equal(t, in, out)
}

func TestDeleteRemovesKey(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(KeyCart, []string{"a"}))
	require.NoError(t, store.Delete(KeyCart))

	out := []string{}
	store.Load(KeyCart, &out)
	assert.Empty(t, out)

	// Deleting again is not an error
	assert.NoError(t, store.Delete(KeyCart))
}

func TestNextOrderIDSequence(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "ord-10001", store.NextOrderID())
	assert.Equal(t, "ord-10002", store.NextOrderID())
	assert.Equal(t, "ord-10003", store.NextOrderID())
}

func TestNextOrderIDPersistsAcrossStores(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "ord-10001", store.NextOrderID())

	// Simulate a process restart over the same directory
	reopened, err := NewStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "ord-10002", reopened.NextOrderID())
}

func TestNextOrderIDResetsOnGarbageCounter(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyOrderCounter+".json"), []byte(`"not-a-number"`), 0644))

	assert.Equal(t, "ord-10001", store.NextOrderID())
}
