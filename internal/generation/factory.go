package generation

import (
	"context"
	"fmt"
	"io"

	"github.com/minbar-sermons-api/internal/config"
	"go.uber.org/zap"
)

// Backend names accepted in GENERATION_BACKEND
const (
	BackendGemini = "gemini"
	BackendVertex = "vertex"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewFromConfig builds the configured backend wrapped in a Client. The
// returned closer releases backend connections.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Client, io.Closer, error) {
	switch cfg.GenerationBackend {
	case BackendVertex:
		backend, err := NewVertexBackend(ctx, VertexConfig{
			ProjectID:   cfg.VertexProjectID,
			Location:    cfg.VertexLocation,
			Temperature: cfg.GenerationTemperature,
		})
		if err != nil {
			return nil, nil, err
		}
		return NewClient(backend, cfg.GenerationModel, logger), backend, nil
	case BackendGemini, "":
		backend, err := NewGeminiBackend(ctx, cfg.APIKey, cfg.GenerationTemperature)
		if err != nil {
			return nil, nil, err
		}
		return NewClient(backend, cfg.GenerationModel, logger), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown generation backend %q", cfg.GenerationBackend)
	}
}
