package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/minbar-sermons-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "progress.json")

	store, err := New(path)
	require.NoError(t, err)
	require.NoError(t, store.Ping(ctx))

	_, ok, err := store.Get(ctx, "sermon_progress")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "sermon_progress", "[1,3]"))
	require.NoError(t, store.Set(ctx, "other", "x"))

	reopened, err := New(path)
	require.NoError(t, err)
	value, ok, err := reopened.Get(ctx, "sermon_progress")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[1,3]", value)

	require.NoError(t, reopened.Delete(ctx, "sermon_progress"))
	require.NoError(t, reopened.Delete(ctx, "sermon_progress"))
	_, ok, err = reopened.Get(ctx, "sermon_progress")
	require.NoError(t, err)
	assert.False(t, ok)

	value, _, err = reopened.Get(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, "x", value)

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestStoreUnreadableFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "progress.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	store, err := New(path)
	require.NoError(t, err)

	_, _, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, repository.ErrStorage)
	assert.ErrorIs(t, store.Set(ctx, "k", "v"), repository.ErrStorage)
	assert.Error(t, store.Ping(ctx))
}

func TestNewRequiresPath(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}
