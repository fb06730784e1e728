package memory

import (
	"sync"

	"pdfqa/internal/domain"
	"pdfqa/internal/vectorstore"
)

// Store is an in-memory vector store using brute-force cosine similarity.
// Useful for ephemeral runs and tests; entries do not survive the process.
type Store struct {
	mu      sync.RWMutex
	entries []domain.IndexEntry
	ids     map[string]struct{}
}

func NewStore() *Store {
	return &Store{ids: make(map[string]struct{})}
}

// Load always reports that nothing has been persisted; a memory index is
// rebuilt from source every process.
func (s *Store) Load() error { return domain.ErrIndexNotFound }

// Save is a no-op.
func (s *Store) Save() error { return nil }

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

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.ids = make(map[string]struct{})
	return nil
}
