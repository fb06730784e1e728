package domain

import (
	"errors"
	"fmt"
)

// ErrIndexNotFound indicates no index has been persisted at the requested
// location yet. Callers build from source; this is not a corruption error.
var ErrIndexNotFound = errors.New("vector index not found")

// ExtractionError indicates an unreadable or corrupt source document.
// Fatal for that document; there is nothing to retry.
type ExtractionError struct {
	Source string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// EmbeddingProviderError indicates the embedding provider was unreachable,
// rejected the credentials, or returned an unusable response. Callers may
// retry with backoff.
type EmbeddingProviderError struct {
	Provider string
	Err      error
}

func (e *EmbeddingProviderError) Error() string {
	return fmt.Sprintf("embedding provider %s: %v", e.Provider, e.Err)
}

func (e *EmbeddingProviderError) Unwrap() error { return e.Err }

// IndexLoadError indicates a persisted index exists but could not be
// reconstructed. Fatal for that handle; rebuilding from source is the
// caller's recovery path.
type IndexLoadError struct {
	Path string
	Err  error
}

func (e *IndexLoadError) Error() string {
	return fmt.Sprintf("load index %s: %v", e.Path, e.Err)
}

func (e *IndexLoadError) Unwrap() error { return e.Err }

// CompletionProviderError indicates the chat-completion provider failed.
// Same class as EmbeddingProviderError; retry policy belongs to the caller.
type CompletionProviderError struct {
	Provider string
	Err      error
}

func (e *CompletionProviderError) Error() string {
	return fmt.Sprintf("completion provider %s: %v", e.Provider, e.Err)
}

func (e *CompletionProviderError) Unwrap() error { return e.Err }
