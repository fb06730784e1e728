package vectorstore

import (
	"math"
	"sort"

	"pdfqa/internal/domain"
)

// Cosine returns the cosine similarity of two vectors, 0 when either has no
// magnitude or the dimensions differ.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	denom := math.Sqrt(na) * math.Sqrt(nb)
	if denom == 0 {
		return 0
	}
	return dot / denom
}

// TopK scores every entry against the query vector and returns the k best,
// highest similarity first. The sort is stable, so ties keep insertion order.
func TopK(entries []domain.IndexEntry, vector []float64, k int) []domain.SearchResult {
	if k <= 0 || len(entries) == 0 {
		return nil
	}
	results := make([]domain.SearchResult, len(entries))
	for i, e := range entries {
		results[i] = domain.SearchResult{Entry: e, Score: Cosine(vector, e.Vector)}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if k > len(results) {
		k = len(results)
	}
	return results[:k]
}
