package domain

// Chunker splits extracted pages into chunks suitable for retrieval indexing.
type Chunker interface {
	Split(pages []Page) []Chunk
}

// Embedder converts text into fixed-length numeric vectors. A single index
// must be built and queried with one embedder configuration; mixing models
// within an index yields meaningless similarity scores.
type Embedder interface {
	Name() string
	EmbedDocuments(texts []string) ([][]float64, error)
	EmbedQuery(text string) ([]float64, error)
}

// VectorStore holds index entries and supports nearest-neighbour search.
type VectorStore interface {
	Insert(entries []IndexEntry) error
	Search(vector []float64, topK int) ([]SearchResult, error)
	Count() int
	Clear() error
}

// PersistentStore is a VectorStore whose entries survive process restarts.
// Load reconstructs previously saved entries without re-embedding; it returns
// ErrIndexNotFound when nothing has been persisted yet.
type PersistentStore interface {
	VectorStore
	Load() error
	Save() error
}

// ChatModel generates a completion for an ordered message sequence.
type ChatModel interface {
	Name() string
	Complete(messages []Message) (string, error)
}
