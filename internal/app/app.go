// Package app wires configuration into a ready SermonService.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/minbar-sermons-api/internal/catalog"
	"github.com/minbar-sermons-api/internal/config"
	"github.com/minbar-sermons-api/internal/generation"
	"github.com/minbar-sermons-api/internal/metadata"
	"github.com/minbar-sermons-api/internal/progress"
	"github.com/minbar-sermons-api/internal/prompts"
	"github.com/minbar-sermons-api/internal/repository"
	"github.com/minbar-sermons-api/internal/repository/filestore"
	"github.com/minbar-sermons-api/internal/repository/sqlstore"
	"github.com/minbar-sermons-api/internal/services"
	"github.com/minbar-sermons-api/internal/validation"
	"go.uber.org/zap"
)

// App holds the long-lived components
type App struct {
	Config  *config.Config
	Store   repository.KeyValueStore
	Sermons *services.SermonService
	logger  *zap.Logger
	closers []io.Closer
}

// New builds the application from configuration. The generator is
// created from configuration when gen is nil.
func New(ctx context.Context, cfg *config.Config, gen generation.Generator, logger *zap.Logger) (*App, error) {
	meta, err := metadata.Default()
	if err != nil {
		return nil, err
	}
	seed, err := metadata.SeedSermons()
	if err != nil {
		return nil, err
	}
	strategy, err := prompts.ParseStrategy(cfg.PromptStrategy)
	if err != nil {
		return nil, err
	}
	normalizer, err := validation.NewSermonNormalizer()
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, logger: logger}

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.Store = store
	a.closers = append(a.closers, store)

	if gen == nil {
		client, closer, err := generation.NewFromConfig(ctx, cfg, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		gen = client
		a.closers = append(a.closers, closer)
	}

	tracker := progress.NewTracker(store, cfg.ProgressKey, logger)
	tracker.Load(ctx)

	a.Sermons = services.NewSermonService(
		catalog.New(seed, meta),
		meta,
		prompts.NewBuilder(meta, strategy),
		gen,
		normalizer,
		tracker,
		logger,
	)

	logger.Info("application initialized",
		zap.String("generation_backend", cfg.GenerationBackend),
		zap.String("prompt_strategy", string(strategy)),
		zap.String("storage_backend", cfg.StorageBackend),
		zap.Int("seed_sermons", len(seed)),
		zap.Int("completed", tracker.Count()))
	return a, nil
}

// OpenStore opens the configured progress store
func OpenStore(ctx context.Context, cfg *config.Config) (repository.KeyValueStore, error) {
	switch cfg.StorageBackend {
	case "sqlite":
		return sqlstore.Open(ctx, sqlstore.DriverSQLite, cfg.StoragePath)
	case "postgres":
		return sqlstore.Open(ctx, sqlstore.DriverPostgres, cfg.PostgresURI)
	case "file", "":
		return filestore.New(cfg.StoragePath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// Close stops background work and releases connections
func (a *App) Close() {
	if a.Sermons != nil {
		a.Sermons.Close()
	}
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn("error closing resource", zap.Error(err))
		}
	}
}
