// Package services orchestrates the catalog, prompt building, generation,
// validation and completion tracking.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/minbar-sermons-api/internal/catalog"
	"github.com/minbar-sermons-api/internal/generation"
	"github.com/minbar-sermons-api/internal/models"
	"github.com/minbar-sermons-api/internal/progress"
	"github.com/minbar-sermons-api/internal/prompts"
	"github.com/minbar-sermons-api/internal/validation"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// allSermonsTitle heads the unfiltered list
const allSermonsTitle = "كل الخطب"

var (
	// ErrGenerationInProgress is returned when a generation is already pending
	ErrGenerationInProgress = errors.New("generation already in progress")
	// ErrNotFound is returned for unknown sermons and surahs
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest is returned when no surah is selected
	ErrInvalidRequest = errors.New("invalid request")
)

// Metadata is the static surah table and page index
type Metadata interface {
	Surahs() []models.Surah
	Surah(number int) (models.Surah, bool)
	SurahName(number int) string
	PageRange(number int) (models.PageRange, bool)
}

// Normalizer turns a raw response into sermon content
type Normalizer interface {
	Normalize(raw string) (models.SermonContent, error)
}

// SermonService handles browsing, generation and completion tracking
type SermonService struct {
	catalog    *catalog.Store
	metadata   Metadata
	prompts    *prompts.Builder
	generator  generation.Generator
	normalizer Normalizer
	tracker    *progress.Tracker
	logger     *zap.Logger

	guard    *semaphore.Weighted
	statusMu sync.RWMutex
	status   models.GenerationStatus

	preview *PreviewCoordinator
}

// NewSermonService creates a new sermon service
func NewSermonService(
	store *catalog.Store,
	metadata Metadata,
	builder *prompts.Builder,
	generator generation.Generator,
	normalizer Normalizer,
	tracker *progress.Tracker,
	logger *zap.Logger,
) *SermonService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SermonService{
		catalog:    store,
		metadata:   metadata,
		prompts:    builder,
		generator:  generator,
		normalizer: normalizer,
		tracker:    tracker,
		logger:     logger,
		guard:      semaphore.NewWeighted(1),
		preview:    NewPreviewCoordinator(builder, generator, metadata, logger),
	}
}

// Close waits for outstanding preview requests
func (s *SermonService) Close() {
	s.preview.Close()
}

// ListSermons returns the sermons matching the state's filter, headed by
// the selected surah's name or the all-sermons title.
func (s *SermonService) ListSermons(state AppState) models.SermonListResponse {
	sermons := s.catalog.List(state.Filter())
	title := allSermonsTitle
	if state.SelectedSurah != 0 {
		title = s.metadata.SurahName(state.SelectedSurah)
	}
	return models.SermonListResponse{
		Sermons: sermons,
		Count:   len(sermons),
		Title:   title,
	}
}

// GetSermon returns one sermon by id
func (s *SermonService) GetSermon(id int) (models.Sermon, error) {
	sermon, ok := s.catalog.Find(id)
	if !ok {
		return models.Sermon{}, fmt.Errorf("sermon %d: %w", id, ErrNotFound)
	}
	return sermon, nil
}

// Surahs returns every surah with its sermon count
func (s *SermonService) Surahs() []models.SurahSummary {
	counts := s.catalog.CountBySurah()
	surahs := s.metadata.Surahs()
	out := make([]models.SurahSummary, len(surahs))
	for i, surah := range surahs {
		out[i] = models.SurahSummary{Surah: surah, SermonCount: counts[surah.Number]}
	}
	return out
}

// Sections returns the section options of a surah
func (s *SermonService) Sections(surahNumber int) (models.SectionsResponse, error) {
	if _, ok := s.metadata.Surah(surahNumber); !ok {
		return models.SectionsResponse{}, fmt.Errorf("surah %d: %w", surahNumber, ErrNotFound)
	}
	return models.SectionsResponse{
		SurahNumber: surahNumber,
		Sections:    prompts.Sections(s.metadata, surahNumber),
	}, nil
}

// ToggleComplete flips the completion state of a sermon
func (s *SermonService) ToggleComplete(ctx context.Context, id int) (models.CompletionResponse, error) {
	if _, ok := s.catalog.Find(id); !ok {
		return models.CompletionResponse{}, fmt.Errorf("sermon %d: %w", id, ErrNotFound)
	}
	done, err := s.tracker.Toggle(ctx, id)
	return models.CompletionResponse{ID: id, Completed: done}, err
}

// Progress summarises completion against the catalog size
func (s *SermonService) Progress() models.ProgressResponse {
	total := s.catalog.Len()
	return models.ProgressResponse{
		Completed: s.tracker.Completed(),
		Count:     s.tracker.Count(),
		Total:     total,
		Ratio:     s.tracker.Ratio(total),
	}
}

// Status reports whether a generation is pending and the last failure
func (s *SermonService) Status() models.GenerationStatus {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}

// Generate builds the prompt, performs one generation call, validates the
// response and appends the new sermon to the catalog. A second call while
// one is pending fails with ErrGenerationInProgress. On any failure the
// catalog is unchanged.
func (s *SermonService) Generate(ctx context.Context, req models.GenerateRequest) (models.Sermon, error) {
	if req.SurahNumber <= 0 {
		return models.Sermon{}, fmt.Errorf("surah number is required: %w", ErrInvalidRequest)
	}
	if !s.guard.TryAcquire(1) {
		return models.Sermon{}, ErrGenerationInProgress
	}
	defer s.guard.Release(1)

	s.setStatus(models.GenerationStatus{Generating: true})
	start := time.Now()
	logger := s.logger.With(zap.Int("surah", req.SurahNumber), zap.String("topic", req.Topic))

	sermon, err := s.generate(ctx, req)
	if err != nil {
		logger.Error("sermon generation failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		s.setStatus(models.GenerationStatus{LastError: UserMessage(err)})
		return models.Sermon{}, err
	}

	logger.Info("sermon generated", zap.Int("id", sermon.ID), zap.Duration("elapsed", time.Since(start)))
	s.setStatus(models.GenerationStatus{})
	return sermon, nil
}

func (s *SermonService) generate(ctx context.Context, req models.GenerateRequest) (models.Sermon, error) {
	prompt := s.prompts.Build(req.SurahNumber, req.Topic)

	// Sermons are always requested as JSON; the strategy only decides
	// whether the schema is also declared natively.
	raw, err := s.generator.Generate(ctx, generation.Request{
		Instruction:    prompt.User,
		SystemContract: prompt.System,
		OutputMode:     generation.OutputStructuredJSON,
		Schema:         prompt.NativeSchema(),
	})
	if err != nil {
		return models.Sermon{}, err
	}

	content, err := s.normalizer.Normalize(raw)
	if err != nil {
		var schemaErr *validation.SchemaError
		if errors.As(err, &schemaErr) {
			s.logger.Warn("response failed schema validation",
				zap.String("path", schemaErr.Path),
				zap.Int("violations", len(schemaErr.Violations)))
		}
		return models.Sermon{}, err
	}

	return s.catalog.AppendGenerated(req.SurahNumber, content), nil
}

// Submit runs a generation for the view and returns the next state. On
// success the form closes and the new sermon is returned; on failure the
// form stays open with the user message set.
func (s *SermonService) Submit(ctx context.Context, state AppState, req models.GenerateRequest) (AppState, *models.Sermon) {
	state.GenerationError = ""
	sermon, err := s.Generate(ctx, req)
	state.Generating = false
	if err != nil {
		state.GenerationError = UserMessage(err)
		if errors.Is(err, ErrGenerationInProgress) {
			state.Generating = true
		}
		return state, nil
	}
	return state.CloseGenerator(), &sermon
}

// RequestPreview starts a verse preview for the given section
func (s *SermonService) RequestPreview(surahNumber int, topic string) models.PreviewState {
	return s.preview.Request(surahNumber, topic)
}

// Preview returns the latest preview state
func (s *SermonService) Preview() models.PreviewState {
	return s.preview.State()
}

func (s *SermonService) setStatus(status models.GenerationStatus) {
	s.statusMu.Lock()
	s.status = status
	s.statusMu.Unlock()
}
