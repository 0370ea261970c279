package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// API Settings
	APITitle   string
	APIVersion string
	APIPrefix  string
	Host       string
	Port       string

	// CORS
	CORSOrigins []string

	// Generation backend: "gemini" or "vertex"
	GenerationBackend     string
	GenerationModel       string
	GenerationTemperature float32
	// Prompt strategy: "freetext" or "schema"
	PromptStrategy string

	// Gemini API key (used when GenerationBackend = "gemini")
	APIKey string

	// Vertex AI settings (used when GenerationBackend = "vertex")
	VertexProjectID string
	VertexLocation  string

	// Progress storage: "file", "sqlite" or "postgres"
	StorageBackend string
	StoragePath    string
	PostgresURI    string
	ProgressKey    string

	// Logging
	LogLevel  string
	LogFormat string
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

var defaults = map[string]any{
	"API_TITLE":              "Minbar Sermons API",
	"API_VERSION":            "1.0.0",
	"API_PREFIX":             "/api/v1",
	"HOST":                   "127.0.0.1",
	"PORT":                   "8081",
	"CORS_ORIGINS":           "http://localhost:5173,http://localhost:3000",
	"GENERATION_BACKEND":     "gemini",
	"GENERATION_MODEL":       "gemini-2.5-flash",
	"GENERATION_TEMPERATURE": 0.0,
	"PROMPT_STRATEGY":        "freetext",
	"API_KEY":                "",
	"GEMINI_API_KEY":         "",
	"VERTEX_PROJECT_ID":      "",
	"VERTEX_LOCATION":        "us-central1",
	"STORAGE_BACKEND":        "file",
	"STORAGE_PATH":           "minbar-progress.json",
	"POSTGRES_URI":           "",
	"PROGRESS_KEY":           "sermon_progress",
	"LOG_LEVEL":              "info",
	"LOG_FORMAT":             "json",
}

var (
	config  *Config
	initErr error
	once    sync.Once
)

// GetConfig returns the singleton configuration instance. A .env file in
// the working directory is loaded first if present.
func GetConfig() *Config {
	once.Do(func() {
		_ = godotenv.Load()
		config, initErr = Load("")
		if initErr != nil {
			config, _ = Load("-")
		}
	})
	return config
}

// GetInitError returns any error that occurred while loading the singleton
func GetInitError() error {
	GetConfig()
	return initErr
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. An empty path looks for
// minbar.yaml in the working directory; "-" skips the file entirely.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	switch path {
	case "-":
	case "":
		v.SetConfigName("minbar")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	default:
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	apiKey := v.GetString("API_KEY")
	if apiKey == "" {
		apiKey = v.GetString("GEMINI_API_KEY")
	}

	cfg := &Config{
		APITitle:    v.GetString("API_TITLE"),
		APIVersion:  v.GetString("API_VERSION"),
		APIPrefix:   v.GetString("API_PREFIX"),
		Host:        v.GetString("HOST"),
		Port:        v.GetString("PORT"),
		CORSOrigins: parseCORSOrigins(v.GetString("CORS_ORIGINS")),

		GenerationBackend:     strings.ToLower(v.GetString("GENERATION_BACKEND")),
		GenerationModel:       v.GetString("GENERATION_MODEL"),
		GenerationTemperature: float32(v.GetFloat64("GENERATION_TEMPERATURE")),
		PromptStrategy:        strings.ToLower(v.GetString("PROMPT_STRATEGY")),
		APIKey:                apiKey,

		VertexProjectID: v.GetString("VERTEX_PROJECT_ID"),
		VertexLocation:  v.GetString("VERTEX_LOCATION"),

		StorageBackend: strings.ToLower(v.GetString("STORAGE_BACKEND")),
		StoragePath:    v.GetString("STORAGE_PATH"),
		PostgresURI:    v.GetString("POSTGRES_URI"),
		ProgressKey:    v.GetString("PROGRESS_KEY"),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: strings.ToLower(v.GetString("LOG_FORMAT")),
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	switch c.GenerationBackend {
	case "gemini", "vertex":
	default:
		return fmt.Errorf("invalid GENERATION_BACKEND %q", c.GenerationBackend)
	}
	switch c.StorageBackend {
	case "file", "sqlite":
	case "postgres":
		if c.PostgresURI == "" {
			return fmt.Errorf("POSTGRES_URI is required for the postgres storage backend")
		}
	default:
		return fmt.Errorf("invalid STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.ProgressKey == "" {
		return fmt.Errorf("PROGRESS_KEY must not be empty")
	}
	return nil
}

func parseCORSOrigins(value string) []string {
	var origins []string
	if err := json.Unmarshal([]byte(value), &origins); err == nil {
		return origins
	}
	parts := strings.Split(value, ",")
	origins = make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
