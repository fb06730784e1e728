package qdrant

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"pdfqa/internal/domain"
)

// Store is a minimal REST client to Qdrant, one collection per index.
// It uses cosine distance and creates the collection on first insert.
type Store struct {
	url        string
	apiKey     string
	collection string
	dimension  int
	client     *http.Client
}

type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

func NewStore(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Store{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

// Load checks that the collection exists on the server. Qdrant itself is the
// durable storage, so there is nothing to read back into memory.
func (s *Store) Load() error {
	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/collections/%s", s.url, s.collection), nil)
	s.auth(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return &domain.IndexLoadError{Path: s.collection, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrIndexNotFound
	}
	if resp.StatusCode >= 300 {
		return &domain.IndexLoadError{Path: s.collection, Err: fmt.Errorf("qdrant: %s", resp.Status)}
	}
	return nil
}

// Save is a no-op: upserts are written with wait=true.
func (s *Store) Save() error { return nil }

// Insert upserts entries into the collection, creating it with the entry
// dimension if it does not exist yet. Qdrant overwrites points by ID, which
// for content-addressed IDs is equivalent to a skip.
func (s *Store) Insert(entries []domain.IndexEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := s.ensureCollection(len(entries[0].Vector)); err != nil {
		return err
	}
	points := make([]map[string]any, len(entries))
	for i, e := range entries {
		points[i] = map[string]any{
			"id":     e.ID,
			"vector": e.Vector,
			"payload": map[string]any{
				"text":   e.Text,
				"page":   e.Page,
				"source": e.Source,
			},
		}
	}
	body := map[string]any{"points": points}
	return s.putJSON(fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection), body)
}

func (s *Store) Search(vector []float64, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		return nil, nil
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			ID      string         `json:"id"`
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := s.postJSON(fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection), req, &resp); err != nil {
		return nil, err
	}
	results := make([]domain.SearchResult, 0, len(resp.Result))
	for _, r := range resp.Result {
		entry := domain.IndexEntry{ID: r.ID}
		if v, ok := r.Payload["text"].(string); ok {
			entry.Text = v
		}
		if v, ok := r.Payload["page"].(float64); ok {
			entry.Page = int(v)
		}
		if v, ok := r.Payload["source"].(string); ok {
			entry.Source = v
		}
		results = append(results, domain.SearchResult{Entry: entry, Score: r.Score})
	}
	return results, nil
}

func (s *Store) Count() int {
	var resp struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}
	err := s.postJSON(fmt.Sprintf("%s/collections/%s/points/count", s.url, s.collection), map[string]any{"exact": true}, &resp)
	if err != nil {
		return 0
	}
	return resp.Result.Count
}

// Clear drops the collection.
func (s *Store) Clear() error {
	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/collections/%s", s.url, s.collection), nil)
	s.auth(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	s.dimension = 0
	return nil
}

func (s *Store) ensureCollection(dimension int) error {
	if s.dimension == dimension {
		return nil
	}
	if dimension <= 0 {
		return errors.New("invalid vector dimension")
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	// Qdrant returns 200 OK if the collection already exists with the same schema
	if err := s.putJSON(fmt.Sprintf("%s/collections/%s", s.url, s.collection), body); err != nil {
		return err
	}
	s.dimension = dimension
	return nil
}

func (s *Store) auth(req *http.Request) {
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
}

func (s *Store) putJSON(url string, body any) error {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	s.auth(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s failed: %s", url, resp.Status)
	}
	return nil
}

func (s *Store) postJSON(url string, body any, out any) error {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	s.auth(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		dec := json.NewDecoder(resp.Body)
		return dec.Decode(out)
	}
	return nil
}
