package store

import (
	"sync"

	"github.com/google/uuid"

	"rkaneko/payrecon/internal/models"
)

// MemoryStore is an in-memory Store used by tests and the seed command. It
// honors the same serialization contract as the SQLite store via a single
// mutex around every call.
type MemoryStore struct {
	mu     sync.Mutex
	tables map[string][]models.Row
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string][]models.Row)}
}

// GetTable returns a copy of the named table's rows.
func (s *MemoryStore) GetTable(name string) ([]models.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyRows(s.tables[name]), nil
}

// SetTable replaces the named table's contents.
func (s *MemoryStore) SetTable(name string, rows []models.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[name] = copyRows(rows)
	return nil
}

// AppendRows adds rows to the end of the named table.
func (s *MemoryStore) AppendRows(name string, rows []models.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[name] = append(s.tables[name], copyRows(rows)...)
	return nil
}

// ClearTable removes all rows from the named table.
func (s *MemoryStore) ClearTable(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[name] = nil
	return nil
}

// GenerateID returns a random UUID string.
func (s *MemoryStore) GenerateID() string {
	return uuid.NewString()
}

func copyRows(rows []models.Row) []models.Row {
	if rows == nil {
		return nil
	}
	out := make([]models.Row, len(rows))
	for i, r := range rows {
		out[i] = append(models.Row(nil), r...)
	}
	return out
}
