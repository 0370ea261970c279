// Package metadata holds the static, read-only reference data: the surah
// table, the mushaf page ranges and the seed sermon catalog.
package metadata

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/minbar-sermons-api/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed data/*
var dataFS embed.FS

// Metadata is the loaded surah table and page index
type Metadata struct {
	surahs   []models.Surah
	byNumber map[int]models.Surah
	pages    map[int]models.PageRange
}

var (
	defaultMetadata *Metadata
	defaultOnce     sync.Once
	defaultErr      error
)

// Default returns the metadata loaded from the embedded tables
func Default() (*Metadata, error) {
	defaultOnce.Do(func() {
		defaultMetadata, defaultErr = Load()
	})
	return defaultMetadata, defaultErr
}

// Load parses the embedded surah and page tables
func Load() (*Metadata, error) {
	raw, err := dataFS.ReadFile("data/surahs.yaml")
	if err != nil {
		return nil, fmt.Errorf("read surah table: %w", err)
	}
	var surahs []models.Surah
	if err := yaml.Unmarshal(raw, &surahs); err != nil {
		return nil, fmt.Errorf("parse surah table: %w", err)
	}

	raw, err = dataFS.ReadFile("data/pages.yaml")
	if err != nil {
		return nil, fmt.Errorf("read page index: %w", err)
	}
	pages := make(map[int]models.PageRange)
	if err := yaml.Unmarshal(raw, &pages); err != nil {
		return nil, fmt.Errorf("parse page index: %w", err)
	}

	return New(surahs, pages)
}

// New builds metadata from explicit tables
func New(surahs []models.Surah, pages map[int]models.PageRange) (*Metadata, error) {
	byNumber := make(map[int]models.Surah, len(surahs))
	for _, s := range surahs {
		if _, dup := byNumber[s.Number]; dup {
			return nil, fmt.Errorf("duplicate surah number %d", s.Number)
		}
		byNumber[s.Number] = s
	}
	for n, r := range pages {
		if r.Start > r.End {
			return nil, fmt.Errorf("invalid page range for surah %d: %d > %d", n, r.Start, r.End)
		}
	}

	sorted := make([]models.Surah, len(surahs))
	copy(sorted, surahs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Number < sorted[j].Number
	})

	if pages == nil {
		pages = map[int]models.PageRange{}
	}
	return &Metadata{surahs: sorted, byNumber: byNumber, pages: pages}, nil
}

// Surahs returns all surahs ordered by number
func (m *Metadata) Surahs() []models.Surah {
	out := make([]models.Surah, len(m.surahs))
	copy(out, m.surahs)
	return out
}

// Surah looks up a surah by number
func (m *Metadata) Surah(number int) (models.Surah, bool) {
	s, ok := m.byNumber[number]
	return s, ok
}

// SurahName returns the Arabic name of a surah, or "" when unknown
func (m *Metadata) SurahName(number int) string {
	return m.byNumber[number].Name
}

// PageRange returns the page range of a surah. Surahs outside the index
// have no selectable sections.
func (m *Metadata) PageRange(number int) (models.PageRange, bool) {
	r, ok := m.pages[number]
	return r, ok
}

// SeedSermons returns the built-in sermon catalog
func SeedSermons() ([]models.Sermon, error) {
	raw, err := dataFS.ReadFile("data/sermons.json")
	if err != nil {
		return nil, fmt.Errorf("read seed sermons: %w", err)
	}
	var sermons []models.Sermon
	if err := json.Unmarshal(raw, &sermons); err != nil {
		return nil, fmt.Errorf("parse seed sermons: %w", err)
	}
	return sermons, nil
}
