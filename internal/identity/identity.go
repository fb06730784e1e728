package identity

import (
	"github.com/google/uuid"

	"pdfqa/internal/domain"
)

// chunkNamespace is fixed for the life of any index. Changing it re-keys
// every chunk and breaks dedup against previously stored entries.
var chunkNamespace = uuid.NameSpaceDNS

// ChunkID derives the content-addressed identifier for chunk text: a
// version-5 UUID of the exact text under the fixed namespace. Identical text
// always yields the identical ID, regardless of ingestion run.
func ChunkID(text string) string {
	return uuid.NewSHA1(chunkNamespace, []byte(text)).String()
}

// Dedupe assigns an ID to every chunk in input order and keeps the first
// occurrence of each unique ID. Order-preserving and idempotent; vectors on
// the returned entries are left nil for the embedding step to fill.
func Dedupe(chunks []domain.Chunk) []domain.IndexEntry {
	seen := make(map[string]struct{}, len(chunks))
	entries := make([]domain.IndexEntry, 0, len(chunks))
	for _, ch := range chunks {
		id := ChunkID(ch.Text)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		entries = append(entries, domain.IndexEntry{
			ID:     id,
			Text:   ch.Text,
			Page:   ch.Page,
			Source: ch.Source,
		})
	}
	return entries
}
