package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"

	"pdfqa/internal/domain"
	"pdfqa/internal/extract"
)

// Manager memoizes built indexes so repeated questions against the same
// document reuse the index instead of re-extracting and re-embedding.
// Cache key = SHA-256 of the document bytes plus the embedder fingerprint;
// invalidation happens only on explicit request.
type Manager struct {
	mu       sync.Mutex
	chunker  domain.Chunker
	embedder domain.Embedder
	chat     domain.ChatModel
	topK     int
	newStore func(signature string) domain.PersistentStore
	extract  func(data []byte, sourceID string) ([]domain.Page, error)
	engines  map[string]*Engine
}

func NewManager(chunker domain.Chunker, embedder domain.Embedder, chat domain.ChatModel, topK int, newStore func(signature string) domain.PersistentStore) *Manager {
	return &Manager{
		chunker:  chunker,
		embedder: embedder,
		chat:     chat,
		topK:     topK,
		newStore: newStore,
		extract:  extract.Pages,
		engines:  make(map[string]*Engine),
	}
}

// SetExtractor replaces the page-extraction routine.
func (m *Manager) SetExtractor(fn func(data []byte, sourceID string) ([]domain.Page, error)) {
	m.extract = fn
}

// Signature is the cache key for a document under the current embedder
// configuration. Same bytes plus same model always map to the same index.
func (m *Manager) Signature(doc []byte) string {
	h := sha256.New()
	h.Write(doc)
	h.Write([]byte{0})
	h.Write([]byte(m.embedder.Name()))
	return hex.EncodeToString(h.Sum(nil)[:8])
}

// BuildOrLoad returns the engine for a document: first from the in-process
// cache, then from the persisted index, and only then by running the full
// ingestion pipeline and persisting the result.
func (m *Manager) BuildOrLoad(doc []byte, sourceID string) (*Engine, error) {
	sig := m.Signature(doc)
	m.mu.Lock()
	defer m.mu.Unlock()
	if eng, ok := m.engines[sig]; ok {
		return eng, nil
	}
	store := m.newStore(sig)
	eng := New(m.chunker, m.embedder, store, m.chat, m.topK)
	err := store.Load()
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrIndexNotFound):
		pages, err := m.extract(doc, sourceID)
		if err != nil {
			return nil, err
		}
		if _, err := eng.Ingest(pages); err != nil {
			return nil, err
		}
		if err := store.Save(); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	m.engines[sig] = eng
	return eng, nil
}

// Invalidate drops the cached engine and the persisted index for a document.
// The next BuildOrLoad rebuilds from source.
func (m *Manager) Invalidate(doc []byte) error {
	sig := m.Signature(doc)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.engines, sig)
	return m.newStore(sig).Clear()
}
