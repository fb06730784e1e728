package vectorstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfqa/internal/domain"
)

func TestCosine_Basic(t *testing.T) {
	a := []float64{1, 0}
	b := []float64{1, 0}
	c := []float64{0, 1}

	assert.InDelta(t, 1.0, Cosine(a, b), 1e-9)
	assert.InDelta(t, 0.0, Cosine(a, c), 1e-9)
}

func TestCosine_DegenerateInputs(t *testing.T) {
	assert.Equal(t, 0.0, Cosine([]float64{1, 0}, []float64{1, 0, 0}))
	assert.Equal(t, 0.0, Cosine([]float64{0, 0}, []float64{1, 0}))
	assert.Equal(t, 0.0, Cosine(nil, nil))
}

func TestTopK_RanksNearestFirst(t *testing.T) {
	entries := []domain.IndexEntry{
		{ID: "far", Text: "far", Vector: []float64{0, 1}},
		{ID: "near", Text: "near", Vector: []float64{0.9, 0.1}},
		{ID: "exact", Text: "exact", Vector: []float64{1, 0}},
	}
	results := TopK(entries, []float64{1, 0}, 3)
	require.Len(t, results, 3)
	assert.Equal(t, "exact", results[0].Entry.ID)
	assert.Equal(t, "near", results[1].Entry.ID)
	assert.Equal(t, "far", results[2].Entry.ID)
}

func TestTopK_TiesKeepInsertionOrder(t *testing.T) {
	entries := []domain.IndexEntry{
		{ID: "first", Vector: []float64{1, 0}},
		{ID: "second", Vector: []float64{1, 0}},
	}
	results := TopK(entries, []float64{1, 0}, 2)
	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].Entry.ID)
	assert.Equal(t, "second", results[1].Entry.ID)
}

func TestTopK_ClampsK(t *testing.T) {
	entries := []domain.IndexEntry{{ID: "a", Vector: []float64{1, 0}}}
	assert.Len(t, TopK(entries, []float64{1, 0}, 10), 1)
	assert.Nil(t, TopK(entries, []float64{1, 0}, 0))
	assert.Nil(t, TopK(nil, []float64{1, 0}, 3))
}
