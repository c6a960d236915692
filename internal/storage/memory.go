package storage

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patternmusic/pattern-api/internal/models"
)

// MemoryStore keeps patterns in a process-local map. It is the default
// backend when no DATABASE_URL is configured; contents are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	patterns map[string]*StoredPattern
	order    []string // creation order, so listings are deterministic
}

// NewMemoryStore creates an empty in-memory pattern store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{patterns: make(map[string]*StoredPattern)}
}

// Save stores the pattern under a fresh UUID and returns the stored copy.
func (s *MemoryStore) Save(name string, pattern *models.Pattern) (*StoredPattern, error) {
	stored := &StoredPattern{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Pattern:   pattern,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.patterns[stored.ID] = stored
	s.order = append(s.order, stored.ID)
	return stored, nil
}

// Load returns the stored pattern with the given ID, or ErrNotFound.
func (s *MemoryStore) Load(id string) (*StoredPattern, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.patterns[id]
	if !ok {
		return nil, ErrNotFound
	}
	return stored, nil
}

// List returns id, name, and creation time for every stored pattern in
// creation order.
func (s *MemoryStore) List() ([]models.PatternListItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.PatternListItem, 0, len(s.order))
	for _, id := range s.order {
		stored := s.patterns[id]
		items = append(items, models.PatternListItem{
			ID:        stored.ID,
			Name:      stored.Name,
			CreatedAt: stored.CreatedAt,
		})
	}
	return items, nil
}

// Backend names the implementation for health reporting.
func (s *MemoryStore) Backend() string { return "memory" }
