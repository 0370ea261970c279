// Package catalog holds the in-memory sermon list for the running session.
package catalog

import (
	"strings"
	"sync"

	"github.com/minbar-sermons-api/internal/models"
)

// SurahNamer resolves a surah number to its display name
type SurahNamer interface {
	SurahName(number int) string
}

// Filter selects sermons. Both conditions are optional and conjunctive.
type Filter struct {
	SurahNumber int    // 0 selects every surah
	Search      string // case-insensitive substring, empty matches all
}

// Store is the ordered sermon catalog. Append is the only mutation;
// identifiers come from a counter that never goes backwards.
type Store struct {
	mu      sync.RWMutex
	sermons []models.Sermon
	nextID  int
	names   SurahNamer
}

// New creates a catalog seeded with the given sermons
func New(seed []models.Sermon, names SurahNamer) *Store {
	s := &Store{
		sermons: make([]models.Sermon, 0, len(seed)),
		nextID:  1,
		names:   names,
	}
	for _, sermon := range seed {
		s.Append(sermon)
	}
	return s
}

// List returns the sermons matching the filter in insertion order
func (s *Store) List(f Filter) []models.Sermon {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(f.Search))
	results := make([]models.Sermon, 0, len(s.sermons))
	for _, sermon := range s.sermons {
		if f.SurahNumber != 0 && sermon.SurahNumber != f.SurahNumber {
			continue
		}
		if term != "" && !s.matches(sermon, term) {
			continue
		}
		results = append(results, sermon)
	}
	return results
}

func (s *Store) matches(sermon models.Sermon, term string) bool {
	fields := []string{
		sermon.Title,
		sermon.Verses,
		sermon.Khutbah1.Tafsir,
		sermon.Khutbah2.Hadith.Text,
	}
	if s.names != nil {
		fields = append(fields, s.names.SurahName(sermon.SurahNumber))
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Find returns the sermon with the given id
func (s *Store) Find(id int) (models.Sermon, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sermon := range s.sermons {
		if sermon.ID == id {
			return sermon, true
		}
	}
	return models.Sermon{}, false
}

// Append adds a sermon to the end of the catalog. A zero id is replaced
// by the next counter value; an explicit id advances the counter past it.
func (s *Store) Append(sermon models.Sermon) models.Sermon {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sermon.ID <= 0 {
		sermon.ID = s.nextID
	}
	if sermon.ID >= s.nextID {
		s.nextID = sermon.ID + 1
	}
	s.sermons = append(s.sermons, sermon)
	return sermon
}

// AppendGenerated assigns a fresh id to generated content and appends it
func (s *Store) AppendGenerated(surahNumber int, content models.SermonContent) models.Sermon {
	s.mu.Lock()
	defer s.mu.Unlock()

	sermon := models.NewGeneratedSermon(s.nextID, surahNumber, content)
	s.nextID++
	s.sermons = append(s.sermons, sermon)
	return sermon
}

// Len returns the number of sermons in the catalog
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sermons)
}

// CountBySurah returns the number of sermons per surah number
func (s *Store) CountBySurah() map[int]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[int]int)
	for _, sermon := range s.sermons {
		counts[sermon.SurahNumber]++
	}
	return counts
}
