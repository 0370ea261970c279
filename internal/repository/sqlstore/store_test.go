package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/minbar-sermons-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openMemory(t)
	require.NoError(t, store.Ping(ctx))

	_, ok, err := store.Get(ctx, "sermon_progress")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "sermon_progress", "[2]"))
	require.NoError(t, store.Set(ctx, "sermon_progress", "[2,5]"))

	value, ok, err := store.Get(ctx, "sermon_progress")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[2,5]", value)

	require.NoError(t, store.Delete(ctx, "sermon_progress"))
	require.NoError(t, store.Delete(ctx, "missing"))
	_, ok, err = store.Get(ctx, "sermon_progress")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "minbar.db")

	store, err := Open(ctx, DriverSQLite, path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "k", "v"))
	require.NoError(t, store.Close())

	store, err = Open(ctx, DriverSQLite, path)
	require.NoError(t, err)
	defer store.Close()

	value, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}

func TestStoreErrorsAfterClose(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, _, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, repository.ErrStorage)
	assert.ErrorIs(t, store.Set(ctx, "k", "v"), repository.ErrStorage)
}

func TestOpenRequiresDSN(t *testing.T) {
	_, err := Open(context.Background(), DriverPostgres, "")
	assert.Error(t, err)
}
