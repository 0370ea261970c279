package services

import (
	"strings"

	"github.com/minbar-sermons-api/internal/catalog"
)

// AppState is the view selection. Transitions return a new value and never
// mutate the receiver.
type AppState struct {
	SelectedSurah    int    `json:"selectedSurah"`    // 0 = all surahs
	SelectedSermonID int    `json:"selectedSermonId"` // 0 = list view
	Search           string `json:"search"`
	GeneratorOpen    bool   `json:"generatorOpen"`
	Generating       bool   `json:"generating"`
	GenerationError  string `json:"generationError,omitempty"`
}

// SelectSurah filters by surah and returns to the list view
func (s AppState) SelectSurah(number int) AppState {
	s.SelectedSurah = number
	s.SelectedSermonID = 0
	return s
}

// SelectSermon opens a sermon
func (s AppState) SelectSermon(id int) AppState {
	s.SelectedSermonID = id
	return s
}

// Back returns to the list view
func (s AppState) Back() AppState {
	s.SelectedSermonID = 0
	return s
}

// WithSearch sets the search term
func (s AppState) WithSearch(term string) AppState {
	s.Search = term
	return s
}

// OpenGenerator shows the generation form with any previous error cleared
func (s AppState) OpenGenerator() AppState {
	s.GeneratorOpen = true
	s.GenerationError = ""
	return s
}

// CloseGenerator hides the generation form
func (s AppState) CloseGenerator() AppState {
	s.GeneratorOpen = false
	return s
}

// Filter returns the catalog filter for the current selection
func (s AppState) Filter() catalog.Filter {
	return catalog.Filter{
		SurahNumber: s.SelectedSurah,
		Search:      strings.TrimSpace(s.Search),
	}
}
