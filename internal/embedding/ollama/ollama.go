package ollama

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pdfqa/internal/domain"
)

// Client embeds text through a local Ollama server.
type Client struct {
	host   string
	model  string
	client *http.Client
}

// Config configures the Ollama embeddings client.
type Config struct {
	Host    string
	Model   string
	Timeout time.Duration
}

func NewClient(cfg Config) *Client {
	if cfg.Host == "" {
		cfg.Host = "http://localhost:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "nomic-embed-text"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &Client{
		host:   cfg.Host,
		model:  cfg.Model,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Name identifies the provider and model; it participates in the index
// signature, so two models never share a persisted index.
func (c *Client) Name() string { return "ollama:" + c.model }

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
}

// EmbedDocuments returns one vector per input text, in input order.
// Any provider failure yields no partial results.
func (c *Client) EmbedDocuments(texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	body, err := json.Marshal(embedRequest{Model: c.model, Input: texts})
	if err != nil {
		return nil, c.fail(fmt.Errorf("marshal embed request: %w", err))
	}
	resp, err := c.client.Post(c.host+"/api/embed", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, c.fail(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, c.fail(fmt.Errorf("status %s", resp.Status))
	}
	var result embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, c.fail(fmt.Errorf("decode embed response: %w", err))
	}
	if len(result.Embeddings) != len(texts) {
		return nil, c.fail(fmt.Errorf("expected %d embeddings, got %d", len(texts), len(result.Embeddings)))
	}
	for _, v := range result.Embeddings {
		if len(v) == 0 {
			return nil, c.fail(fmt.Errorf("empty embedding returned"))
		}
	}
	return result.Embeddings, nil
}

// EmbedQuery embeds a single query string with the same model used for
// ingestion.
func (c *Client) EmbedQuery(text string) ([]float64, error) {
	vecs, err := c.EmbedDocuments([]string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// IsHealthy reports whether the Ollama server is reachable.
func (c *Client) IsHealthy() bool {
	resp, err := c.client.Get(c.host + "/api/tags")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *Client) fail(err error) error {
	return &domain.EmbeddingProviderError{Provider: c.Name(), Err: err}
}
