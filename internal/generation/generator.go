// Package generation performs the single outbound call to the text
// generation service.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/minbar-sermons-api/internal/schema"
	"go.uber.org/zap"
)

// DefaultModel is the model used when none is configured
const DefaultModel = "gemini-2.5-flash"

// OutputMode is the response format requested from the backend
type OutputMode string

const (
	OutputStructuredJSON OutputMode = "structured-json"
	OutputText           OutputMode = "text"
)

// Request is one generation call
type Request struct {
	Model          string
	Instruction    string
	SystemContract string
	OutputMode     OutputMode
	// Schema is declared natively to the backend when set
	Schema *schema.Node
}

// Generator returns the raw text produced for a request
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

// Generate calls f(ctx, req)
func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// ErrGenerationFailed matches every TransportError
var ErrGenerationFailed = errors.New("generation failed")

// ErrEmptyResponse is the cause when the backend returns no text
var ErrEmptyResponse = errors.New("empty response")

// TransportError is the single failure condition of the generation call.
// The cause is kept for logging and support.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%v: %v", ErrGenerationFailed, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is matches ErrGenerationFailed
func (e *TransportError) Is(target error) bool { return target == ErrGenerationFailed }

// Client wraps a backend, applies the default model and folds every
// failure into a TransportError. It does not retry and does not limit
// concurrency; callers guard in-flight requests.
type Client struct {
	backend Generator
	model   string
	logger  *zap.Logger
}

// NewClient creates a generation client over the given backend
func NewClient(backend Generator, model string, logger *zap.Logger) *Client {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{backend: backend, model: model, logger: logger}
}

// Model returns the model identifier sent with each request
func (c *Client) Model() string {
	return c.model
}

// Generate performs one call
func (c *Client) Generate(ctx context.Context, req Request) (text string, err error) {
	if req.Model == "" {
		req.Model = c.model
	}
	if req.OutputMode == "" {
		req.OutputMode = OutputText
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = &TransportError{Err: fmt.Errorf("backend panic: %v", r)}
		}
		fields := []zap.Field{
			zap.String("model", req.Model),
			zap.String("output_mode", string(req.OutputMode)),
			zap.Bool("native_schema", req.Schema != nil),
			zap.Duration("elapsed", time.Since(start)),
		}
		if err != nil {
			c.logger.Warn("generation call failed", append(fields, zap.Error(err))...)
			return
		}
		c.logger.Info("generation call complete", append(fields, zap.Int("chars", len(text)))...)
	}()

	text, err = c.backend.Generate(ctx, req)
	if err != nil {
		var te *TransportError
		if errors.As(err, &te) {
			return "", te
		}
		return "", &TransportError{Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &TransportError{Err: ErrEmptyResponse}
	}
	return text, nil
}
