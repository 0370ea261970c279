package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/minbar-sermons-api/internal/config"
	"github.com/minbar-sermons-api/internal/generation"
	"github.com/minbar-sermons-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	cfg, err := config.Load("-")
	require.NoError(t, err)
	cfg.StorageBackend = backend
	cfg.StoragePath = filepath.Join(t.TempDir(), "progress."+backend)
	return cfg
}

func TestNewWithInjectedGenerator(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			gen := generation.GeneratorFunc(func(context.Context, generation.Request) (string, error) {
				return "", nil
			})

			a, err := New(ctx, testConfig(t, backend), gen, zap.NewNop())
			require.NoError(t, err)
			defer a.Close()

			assert.NoError(t, a.Store.Ping(ctx))
			assert.Equal(t, 4, a.Sermons.ListSermons(services.AppState{}).Count)

			_, err = a.Sermons.ToggleComplete(ctx, 1)
			require.NoError(t, err)
			value, ok, err := a.Store.Get(ctx, a.Config.ProgressKey)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "[1]", value)
		})
	}
}

func TestNewRejectsBadStrategy(t *testing.T) {
	cfg := testConfig(t, "file")
	cfg.PromptStrategy = "telepathy"
	_, err := New(context.Background(), cfg, nil, zap.NewNop())
	assert.Error(t, err)
}

func TestNewWithoutAPIKeyFails(t *testing.T) {
	cfg := testConfig(t, "file")
	cfg.APIKey = ""
	_, err := New(context.Background(), cfg, nil, zap.NewNop())
	assert.ErrorContains(t, err, "API_KEY")
}

func TestOpenStoreUnknownBackend(t *testing.T) {
	_, err := OpenStore(context.Background(), &config.Config{StorageBackend: "etcd"})
	assert.Error(t, err)
}
