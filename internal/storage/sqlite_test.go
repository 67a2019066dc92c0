package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStoreGetSet(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "marquee.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, ok, err := store.Get("favorites")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("favorites", `["tt0372784"]`))
	require.NoError(t, store.Set("favorites", `["tt0468569"]`))

	value, ok, err := store.Get("favorites")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["tt0468569"]`, value)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee.db")

	first, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set("favorites", `["tt1375666"]`))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	value, ok, err := second.Get("favorites")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["tt1375666"]`, value)
}

func TestOpenBackends(t *testing.T) {
	dir := t.TempDir()

	sqliteStore, err := Open(BackendSQLite, filepath.Join(dir, "a.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, sqliteStore)
	require.NoError(t, sqliteStore.Close())

	fileStore, err := Open(BackendFile, filepath.Join(dir, "a.json"))
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, fileStore)

	_, err = Open("redis", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage backend")
}
