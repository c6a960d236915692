// Package storage persists parsed patterns behind opaque identifiers.
// Identifiers are UUIDs assigned on save; callers never choose them.
package storage

import (
	"errors"
	"time"

	"github.com/patternmusic/pattern-api/internal/models"
)

// ErrNotFound is returned when no stored pattern has the requested ID.
var ErrNotFound = errors.New("pattern not found")

// StoredPattern is a saved pattern together with its assigned identity.
type StoredPattern struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Pattern   *models.Pattern
}

// PatternStore saves and loads parsed patterns. Implementations are safe
// for concurrent use; the store is best-effort CRUD with no transactions
// or versioning.
type PatternStore interface {
	Save(name string, pattern *models.Pattern) (*StoredPattern, error)
	Load(id string) (*StoredPattern, error)
	List() ([]models.PatternListItem, error)

	// Backend names the implementation for health reporting.
	Backend() string
}
