package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patternmusic/pattern-api/internal/models"
	"gorm.io/gorm"
)

// PatternRecord is the database row behind DatabaseStore. The parsed
// pattern is stored as a JSON blob; lookups only ever go through the
// primary key.
type PatternRecord struct {
	ID        string `gorm:"primarykey"`
	Name      string `gorm:"not null"`
	Data      []byte `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// DatabaseStore keeps patterns in Postgres. It is selected when
// DATABASE_URL is set.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore wraps an open gorm connection.
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// Save stores the pattern under a fresh UUID and returns the stored copy.
func (s *DatabaseStore) Save(name string, pattern *models.Pattern) (*StoredPattern, error) {
	data, err := json.Marshal(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to encode pattern: %w", err)
	}

	record := PatternRecord{
		ID:        uuid.New().String(),
		Name:      name,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to save pattern: %w", err)
	}

	return &StoredPattern{
		ID:        record.ID,
		Name:      record.Name,
		CreatedAt: record.CreatedAt,
		Pattern:   pattern,
	}, nil
}

// Load returns the stored pattern with the given ID, or ErrNotFound.
func (s *DatabaseStore) Load(id string) (*StoredPattern, error) {
	var record PatternRecord
	if err := s.db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load pattern: %w", err)
	}

	var pattern models.Pattern
	if err := json.Unmarshal(record.Data, &pattern); err != nil {
		return nil, fmt.Errorf("failed to decode pattern %s: %w", id, err)
	}
	return &StoredPattern{
		ID:        record.ID,
		Name:      record.Name,
		CreatedAt: record.CreatedAt,
		Pattern:   &pattern,
	}, nil
}

// List returns id, name, and creation time for every stored pattern in
// creation order.
func (s *DatabaseStore) List() ([]models.PatternListItem, error) {
	var records []PatternRecord
	if err := s.db.Select("id", "name", "created_at").Order("created_at, id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list patterns: %w", err)
	}

	items := make([]models.PatternListItem, 0, len(records))
	for _, record := range records {
		items = append(items, models.PatternListItem{
			ID:        record.ID,
			Name:      record.Name,
			CreatedAt: record.CreatedAt,
		})
	}
	return items, nil
}

// Backend names the implementation for health reporting.
func (s *DatabaseStore) Backend() string { return "postgres" }
