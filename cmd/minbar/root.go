package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/minbar-sermons-api/internal/app"
	"github.com/minbar-sermons-api/internal/config"
	"github.com/minbar-sermons-api/internal/generation"
	"github.com/minbar-sermons-api/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	cfgFile      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "minbar",
	Short: "Browse, generate and track Friday sermons by surah",
	Long: `Minbar manages a catalog of structured Friday sermons organised by surah.

It can:
  - List and search the sermon catalog
  - Generate a new sermon for a surah and section with a language model
  - Preview the verses of a section
  - Track which sermons have been delivered
  - Serve all of the above over a local HTTP API`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./minbar.yaml if present)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
}

var errGenerationDisabled = errors.New("generation is not available for this command")

// openApp loads configuration and builds the application. Commands that
// never call the model skip backend setup so they work without credentials.
func openApp(ctx context.Context, withGenerator bool) (*app.App, *zap.Logger, error) {
	path := cfgFile
	var cfg *config.Config
	var err error
	if path == "" {
		cfg, err = config.GetConfig(), config.GetInitError()
	} else {
		cfg, err = config.Load(path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}

	var gen generation.Generator
	if !withGenerator {
		gen = generation.GeneratorFunc(func(context.Context, generation.Request) (string, error) {
			return "", errGenerationDisabled
		})
	}

	a, err := app.New(ctx, cfg, gen, logger)
	if err != nil {
		return nil, nil, err
	}
	return a, logger, nil
}

func printOutput(w io.Writer, v any) error {
	switch outputFormat {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q", outputFormat)
	}
}
