// Package progress tracks which sermons the user has marked as delivered.
package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/minbar-sermons-api/internal/repository"
	"go.uber.org/zap"
)

// DefaultKey is the storage key of the completion set
const DefaultKey = "sermon_progress"

// Tracker holds the completion set and persists it on every change
type Tracker struct {
	store  repository.KeyValueStore
	key    string
	logger *zap.Logger

	// writeMu serialises toggles with their writes so the stored value
	// always matches the latest in-memory set.
	writeMu sync.Mutex
	mu      sync.RWMutex
	done    map[int]struct{}
}

// NewTracker creates a tracker. Call Load to read persisted state.
func NewTracker(store repository.KeyValueStore, key string, logger *zap.Logger) *Tracker {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		store:  store,
		key:    key,
		logger: logger,
		done:   map[int]struct{}{},
	}
}

// Load replaces the in-memory set with the persisted one. An unreadable
// or corrupt value yields an empty set; a corrupt entry is deleted.
func (t *Tracker) Load(ctx context.Context) {
	done := map[int]struct{}{}
	defer func() {
		t.mu.Lock()
		t.done = done
		t.mu.Unlock()
	}()

	raw, ok, err := t.store.Get(ctx, t.key)
	if err != nil {
		t.logger.Warn("failed to read completion set", zap.String("key", t.key), zap.Error(err))
		return
	}
	if !ok {
		return
	}

	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		t.logger.Warn("discarding corrupt completion set", zap.String("key", t.key), zap.Error(err))
		if err := t.store.Delete(ctx, t.key); err != nil {
			t.logger.Warn("failed to delete corrupt completion set", zap.Error(err))
		}
		return
	}
	for _, id := range ids {
		done[id] = struct{}{}
	}
	t.logger.Debug("completion set loaded", zap.Int("count", len(done)))
}

// Toggle flips the completion state of id and persists the full set. It
// returns the new state. On a persistence error the in-memory change is
// kept and the error is returned.
func (t *Tracker) Toggle(ctx context.Context, id int) (bool, error) {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	t.mu.Lock()
	_, was := t.done[id]
	if was {
		delete(t.done, id)
	} else {
		t.done[id] = struct{}{}
	}
	ids := t.sortedLocked()
	t.mu.Unlock()

	data, err := json.Marshal(ids)
	if err != nil {
		return !was, fmt.Errorf("encode completion set: %w", err)
	}
	if err := t.store.Set(ctx, t.key, string(data)); err != nil {
		t.logger.Error("failed to persist completion set", zap.Int("id", id), zap.Error(err))
		return !was, fmt.Errorf("persist completion set: %w", err)
	}
	return !was, nil
}

// IsDone reports whether id is marked complete
func (t *Tracker) IsDone(id int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.done[id]
	return ok
}

// Completed returns the marked ids in ascending order
func (t *Tracker) Completed() []int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sortedLocked()
}

// Count returns the number of marked ids
func (t *Tracker) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.done)
}

// Ratio returns the completed share of total as a percentage in [0, 100].
// Ids that no longer match a document still count, so the value is capped.
func (t *Tracker) Ratio(total int) float64 {
	if total <= 0 {
		return 0
	}
	ratio := float64(t.Count()) / float64(total) * 100
	if ratio > 100 {
		return 100
	}
	return ratio
}

func (t *Tracker) sortedLocked() []int {
	ids := make([]int, 0, len(t.done))
	for id := range t.done {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
