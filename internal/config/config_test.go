package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("-")
	require.NoError(t, err)

	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "127.0.0.1:8081", cfg.Addr())
	assert.Equal(t, "gemini", cfg.GenerationBackend)
	assert.Equal(t, "gemini-2.5-flash", cfg.GenerationModel)
	assert.Equal(t, "freetext", cfg.PromptStrategy)
	assert.Equal(t, "file", cfg.StorageBackend)
	assert.Equal(t, "sermon_progress", cfg.ProgressKey)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GENERATION_BACKEND", "Vertex")
	t.Setenv("GENERATION_TEMPERATURE", "0.4")
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("GEMINI_API_KEY", "fallback-key")

	cfg, err := Load("-")
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "vertex", cfg.GenerationBackend)
	assert.InDelta(t, 0.4, cfg.GenerationTemperature, 1e-6)
	assert.Equal(t, "sqlite", cfg.StorageBackend)
	assert.Equal(t, "fallback-key", cfg.APIKey)

	t.Setenv("API_KEY", "primary-key")
	cfg, err = Load("-")
	require.NoError(t, err)
	assert.Equal(t, "primary-key", cfg.APIKey)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minbar.yaml")
	require.NoError(t, os.WriteFile(path, []byte("PROMPT_STRATEGY: schema\nLOG_FORMAT: console\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "schema", cfg.PromptStrategy)
	assert.Equal(t, "console", cfg.LogFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad backend", map[string]string{"GENERATION_BACKEND": "openai"}, "GENERATION_BACKEND"},
		{"bad storage", map[string]string{"STORAGE_BACKEND": "redis"}, "STORAGE_BACKEND"},
		{"postgres without uri", map[string]string{"STORAGE_BACKEND": "postgres"}, "POSTGRES_URI"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("-")
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestParseCORSOrigins(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, parseCORSOrigins(`["a","b"]`))
	assert.Equal(t, []string{"a", "b"}, parseCORSOrigins(" a , ,b "))
	assert.Empty(t, parseCORSOrigins(""))
}
