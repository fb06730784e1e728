package domain

// Page is one page of extracted document text with its source metadata.
type Page struct {
	Text   string
	Number int
	Source string
}

// Chunk is a bounded span of page text used as the retrieval granularity.
type Chunk struct {
	Text   string
	Page   int
	Source string
}

// IndexEntry is a stored chunk: content-addressed ID, embedding vector,
// original text and inherited page metadata. Immutable after insertion.
type IndexEntry struct {
	ID     string    `json:"id"`
	Text   string    `json:"text"`
	Vector []float64 `json:"vector"`
	Page   int       `json:"page"`
	Source string    `json:"source"`
}

// SearchResult is a scored index entry returned by similarity search.
type SearchResult struct {
	Entry IndexEntry
	Score float64
}

// Chat message roles.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is a single chat-completion message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
