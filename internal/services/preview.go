package services

import (
	"context"
	"strings"
	"sync"

	"github.com/minbar-sermons-api/internal/generation"
	"github.com/minbar-sermons-api/internal/models"
	"github.com/minbar-sermons-api/internal/prompts"
	"go.uber.org/zap"
)

// PreviewCoordinator fetches the verses of a selected section. Each request
// supersedes the previous one: a result is kept only if no newer request
// was made while it was in flight.
type PreviewCoordinator struct {
	prompts   *prompts.Builder
	generator generation.Generator
	names     prompts.SurahNamer
	logger    *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu    sync.Mutex
	seq   uint64
	state models.PreviewState
}

// NewPreviewCoordinator creates a preview coordinator
func NewPreviewCoordinator(builder *prompts.Builder, generator generation.Generator, names prompts.SurahNamer, logger *zap.Logger) *PreviewCoordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &PreviewCoordinator{
		prompts:   builder,
		generator: generator,
		names:     names,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Request starts a preview and returns the new state. An empty section
// clears the preview without a call.
func (p *PreviewCoordinator) Request(surahNumber int, topic string) models.PreviewState {
	topic = strings.TrimSpace(topic)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.seq++
	p.state = models.PreviewState{Seq: p.seq, SurahNumber: surahNumber, Topic: topic}

	if surahNumber == 0 || topic == "" {
		return p.state
	}
	if p.names.SurahName(surahNumber) == "" {
		p.state.Error = msgSurahNotFound
		return p.state
	}
	if p.ctx.Err() != nil {
		p.state.Error = msgPreviewFailed
		return p.state
	}

	p.state.Loading = true
	prompt := p.prompts.BuildPreview(surahNumber, topic)
	seq := p.seq

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		verses, err := p.generator.Generate(p.ctx, generation.Request{
			Instruction: prompt.User,
			OutputMode:  generation.OutputText,
		})
		p.complete(seq, verses, err)
	}()

	return p.state
}

func (p *PreviewCoordinator) complete(seq uint64, verses string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if seq != p.seq {
		p.logger.Debug("discarding stale preview", zap.Uint64("seq", seq), zap.Uint64("latest", p.seq))
		return
	}

	p.state.Loading = false
	if err != nil {
		p.logger.Warn("verse preview failed", zap.Int("surah", p.state.SurahNumber), zap.Error(err))
		p.state.Error = msgPreviewFailed
		return
	}
	p.state.Verses = strings.TrimSpace(verses)
}

// State returns the latest preview state
func (p *PreviewCoordinator) State() models.PreviewState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Close abandons outstanding requests and waits for their goroutines
func (p *PreviewCoordinator) Close() {
	p.cancel()
	p.wg.Wait()
}
