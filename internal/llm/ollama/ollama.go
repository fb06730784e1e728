package ollama

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pdfqa/internal/domain"
)

// Client generates chat completions through a local Ollama server.
type Client struct {
	host   string
	model  string
	client *http.Client
}

// Config configures the Ollama chat client.
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
		cfg.Model = "llama3.2"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 300 * time.Second
	}
	return &Client{
		host:   cfg.Host,
		model:  cfg.Model,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) Name() string { return "ollama:" + c.model }

type chatRequest struct {
	Model    string           `json:"model"`
	Messages []domain.Message `json:"messages"`
	Stream   bool             `json:"stream"`
}

type chatResponse struct {
	Message domain.Message `json:"message"`
}

// Complete sends the message sequence to /api/chat and returns the model's
// reply verbatim. No retry at this layer; retry policy belongs to the caller.
func (c *Client) Complete(messages []domain.Message) (string, error) {
	body, err := json.Marshal(chatRequest{Model: c.model, Messages: messages, Stream: false})
	if err != nil {
		return "", c.fail(fmt.Errorf("marshal chat request: %w", err))
	}
	resp, err := c.client.Post(c.host+"/api/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", c.fail(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", c.fail(fmt.Errorf("status %s", resp.Status))
	}
	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", c.fail(fmt.Errorf("decode chat response: %w", err))
	}
	return result.Message.Content, nil
}

func (c *Client) fail(err error) error {
	return &domain.CompletionProviderError{Provider: c.Name(), Err: err}
}
