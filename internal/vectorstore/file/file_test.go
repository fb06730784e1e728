package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfqa/internal/domain"
)

func testEntries() []domain.IndexEntry {
	return []domain.IndexEntry{
		{ID: "a", Text: "exact match", Vector: []float64{1, 0}, Page: 1, Source: "doc.pdf"},
		{ID: "b", Text: "orthogonal", Vector: []float64{0, 1}, Page: 1, Source: "doc.pdf"},
		{ID: "c", Text: "close", Vector: []float64{0.9, 0.1}, Page: 2, Source: "doc.pdf"},
	}
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	s := NewStore(path)
	require.NoError(t, s.Insert(testEntries()))
	require.NoError(t, s.Save())

	query := []float64{1, 0}
	want, err := s.Search(query, 3)
	require.NoError(t, err)
	require.Len(t, want, 3)

	reloaded := NewStore(path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 3, reloaded.Count())

	got, err := reloaded.Search(query, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := range want {
		assert.Equal(t, want[i].Entry.ID, got[i].Entry.ID)
		assert.Equal(t, want[i].Entry.Text, got[i].Entry.Text)
		assert.InDelta(t, want[i].Score, got[i].Score, 1e-12)
	}
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, s.Load(), domain.ErrIndexNotFound)
}

func TestStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewStore(path)
	err := s.Load()
	var loadErr *domain.IndexLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, path, loadErr.Path)
}

func TestStore_InsertSkipsExistingIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	s := NewStore(path)
	require.NoError(t, s.Insert(testEntries()))
	require.NoError(t, s.Insert(testEntries()))
	assert.Equal(t, 3, s.Count())
}

func TestStore_ReInsertAfterReloadIsSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	s := NewStore(path)
	require.NoError(t, s.Insert(testEntries()))
	require.NoError(t, s.Save())

	reloaded := NewStore(path)
	require.NoError(t, reloaded.Load())
	require.NoError(t, reloaded.Insert(testEntries()))
	assert.Equal(t, 3, reloaded.Count())
}

func TestStore_ClearRemovesPersistedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	s := NewStore(path)
	require.NoError(t, s.Insert(testEntries()))
	require.NoError(t, s.Save())

	require.NoError(t, s.Clear())
	assert.Equal(t, 0, s.Count())

	fresh := NewStore(path)
	assert.ErrorIs(t, fresh.Load(), domain.ErrIndexNotFound)
}

func TestStore_SearchEmptyIndex(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "index.json"))
	results, err := s.Search([]float64{1, 0}, 4)
	require.NoError(t, err)
	assert.Empty(t, results)
}
