package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"pdfqa/internal/domain"
	"pdfqa/internal/vectorstore"
)

// Store is a JSON-file-backed vector store. One file holds the complete
// index for one ingested corpus; loading it back reconstructs the same
// entries without re-embedding.
type Store struct {
	mu      sync.RWMutex
	entries []domain.IndexEntry
	ids     map[string]struct{}
	path    string
}

// index is the persisted top-level structure.
type index struct {
	Entries   []domain.IndexEntry `json:"entries"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func NewStore(path string) *Store {
	return &Store{ids: make(map[string]struct{}), path: path}
}

// Path returns the file the index persists to.
func (s *Store) Path() string { return s.path }

// Load reconstructs entries from disk. A missing file is ErrIndexNotFound;
// an unreadable or unparseable file is an IndexLoadError.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return domain.ErrIndexNotFound
	}
	if err != nil {
		return &domain.IndexLoadError{Path: s.path, Err: err}
	}
	var idx index
	if err := json.Unmarshal(data, &idx); err != nil {
		return &domain.IndexLoadError{Path: s.path, Err: err}
	}
	s.entries = idx.Entries
	s.ids = make(map[string]struct{}, len(idx.Entries))
	for _, e := range idx.Entries {
		s.ids[e.ID] = struct{}{}
	}
	return nil
}

// Save persists the index, creating parent directories as needed.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	data, err := json.Marshal(index{Entries: s.entries, UpdatedAt: time.Now()})
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write index file: %w", err)
	}
	return nil
}

// Insert appends entries, silently skipping IDs already stored so re-insert
// of the same content never duplicates storage.
func (s *Store) Insert(entries []domain.IndexEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		if _, ok := s.ids[e.ID]; ok {
			continue
		}
		s.ids[e.ID] = struct{}{}
		s.entries = append(s.entries, e)
	}
	return nil
}

func (s *Store) Search(vector []float64, topK int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return vectorstore.TopK(s.entries, vector, topK), nil
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear drops all entries and removes the persisted file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.ids = make(map[string]struct{})
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
