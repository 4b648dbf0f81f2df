package datastore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casadecultura/backend/internal/infrastructure/logger"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestStore() *Store {
	return New(logger.NewNop())
}

func TestLoadMissingFileReturnsDefaultAndPersistsIt(t *testing.T) {
	store := newTestStore()
	path := filepath.Join(t.TempDir(), "data", "sample.json")
	def := []sample{{Name: "seed", Count: 1}}

	doc, healed, err := Load(store, path, def)
	require.NoError(t, err)
	assert.True(t, healed)
	assert.Equal(t, def, doc)

	// The default must now be on disk.
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var persisted []sample
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Equal(t, def, persisted)
}

func TestLoadCorruptFileResetsToDefault(t *testing.T) {
	store := newTestStore()
	path := filepath.Join(t.TempDir(), "sample.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	def := sample{Name: "fallback"}
	doc, healed, err := Load(store, path, def)
	require.NoError(t, err)
	assert.True(t, healed)
	assert.Equal(t, def, doc)

	// A second load reads the healed file cleanly.
	doc, healed, err = Load(store, path, sample{})
	require.NoError(t, err)
	assert.False(t, healed)
	assert.Equal(t, def, doc)
}

func TestLoadValidFileRoundTrips(t *testing.T) {
	store := newTestStore()
	path := filepath.Join(t.TempDir(), "sample.json")

	want := []sample{{Name: "a", Count: 1}, {Name: "b", Count: 2}}
	require.NoError(t, store.Save(path, want))

	got, healed, err := Load(store, path, []sample(nil))
	require.NoError(t, err)
	assert.False(t, healed)
	assert.Equal(t, want, got)
}

func TestSavePrettyPrints(t *testing.T) {
	store := newTestStore()
	path := filepath.Join(t.TempDir(), "sample.json")

	require.NoError(t, store.Save(path, sample{Name: "x", Count: 3}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "{\n  \"name\": \"x\",\n  \"count\": 3\n}")
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	store := newTestStore()
	path := filepath.Join(t.TempDir(), "a", "b", "c", "sample.json")

	require.NoError(t, store.Save(path, sample{}))
	assert.True(t, store.Exists(path))
}

func TestExists(t *testing.T) {
	store := newTestStore()
	path := filepath.Join(t.TempDir(), "sample.json")

	assert.False(t, store.Exists(path))
	require.NoError(t, store.Save(path, sample{}))
	assert.True(t, store.Exists(path))
}
