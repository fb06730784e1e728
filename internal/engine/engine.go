package engine

import (
	"strings"

	"pdfqa/internal/domain"
	"pdfqa/internal/identity"
)

// DefaultTopK is the number of chunks retrieved per question unless the
// caller asks for more.
const DefaultTopK = 4

// Engine runs the retrieval-augmented pipeline over one vector index:
// ingestion of extracted pages and grounded question answering.
type Engine struct {
	chunker  domain.Chunker
	embedder domain.Embedder
	store    domain.VectorStore
	chat     domain.ChatModel
	topK     int
}

func New(chunker domain.Chunker, embedder domain.Embedder, store domain.VectorStore, chat domain.ChatModel, topK int) *Engine {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Engine{chunker: chunker, embedder: embedder, store: store, chat: chat, topK: topK}
}

// Store exposes the underlying vector store for inspection (entry counts).
func (e *Engine) Store() domain.VectorStore { return e.store }

// Ingest chunks the pages, assigns content-addressed IDs, drops duplicate
// chunks, embeds the survivors and inserts them into the store. Returns the
// number of unique entries handed to the store.
func (e *Engine) Ingest(pages []domain.Page) (int, error) {
	chunks := e.chunker.Split(pages)
	entries := identity.Dedupe(chunks)
	if len(entries) == 0 {
		return 0, nil
	}
	texts := make([]string, len(entries))
	for i := range entries {
		texts[i] = entries[i].Text
	}
	vectors, err := e.embedder.EmbedDocuments(texts)
	if err != nil {
		return 0, err
	}
	for i := range entries {
		entries[i].Vector = vectors[i]
	}
	if err := e.store.Insert(entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Sources retrieves the k most similar chunks for a question, best first.
// k <= 0 falls back to the engine default.
func (e *Engine) Sources(question string, k int) ([]domain.SearchResult, error) {
	if k <= 0 {
		k = e.topK
	}
	vec, err := e.embedder.EmbedQuery(question)
	if err != nil {
		return nil, err
	}
	return e.store.Search(vec, k)
}

// Answer retrieves context for the question, assembles the grounded prompt
// and returns the chat model's reply verbatim. Zero retrieved chunks is not
// an error: the prompt goes out with an empty context section and the model
// is expected to answer that it does not know.
func (e *Engine) Answer(question string, k int) (string, error) {
	results, err := e.Sources(question, k)
	if err != nil {
		return "", err
	}
	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Entry.Text
	}
	messages := []domain.Message{
		{Role: domain.RoleSystem, Content: systemPrompt},
		{Role: domain.RoleUser, Content: buildUserPrompt(strings.Join(texts, contextDivider), question)},
	}
	return e.chat.Complete(messages)
}
