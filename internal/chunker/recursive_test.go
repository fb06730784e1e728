package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfqa/internal/domain"
)

func TestSplit_EmptyPage(t *testing.T) {
	c := NewRecursiveChunker(300, 50)
	chunks := c.Split([]domain.Page{{Text: "   \n\n  ", Number: 1, Source: "doc.pdf"}})
	assert.Empty(t, chunks)
}

func TestSplit_ShortPageSingleChunk(t *testing.T) {
	c := NewRecursiveChunker(300, 50)
	chunks := c.Split([]domain.Page{{Text: "A short page.", Number: 3, Source: "doc.pdf"}})
	require.Len(t, chunks, 1)
	assert.Equal(t, "A short page.", chunks[0].Text)
	assert.Equal(t, 3, chunks[0].Page)
	assert.Equal(t, "doc.pdf", chunks[0].Source)
}

func TestSplit_PrefersParagraphBreaks(t *testing.T) {
	c := NewRecursiveChunker(40, 0)
	text := "First paragraph with some words here.\n\nSecond paragraph with other words here."
	chunks := c.Split([]domain.Page{{Text: text, Number: 1, Source: "doc.pdf"}})
	require.Len(t, chunks, 2)
	assert.Equal(t, "First paragraph with some words here.", chunks[0].Text)
	assert.Equal(t, "Second paragraph with other words here.", chunks[1].Text)
}

func TestSplit_OverlapCarriesTailIntoNextChunk(t *testing.T) {
	c := NewRecursiveChunker(20, 8)
	chunks := c.Split([]domain.Page{{Text: "aaaa bbbb cccc dddd eeee", Number: 1, Source: "doc.pdf"}})
	require.Len(t, chunks, 2)
	assert.Equal(t, "aaaa bbbb cccc dddd", chunks[0].Text)
	assert.Equal(t, "dddd eeee", chunks[1].Text)
}

func TestSplit_HardCutWithoutSeparators(t *testing.T) {
	c := NewRecursiveChunker(20, 5)
	chunks := c.Split([]domain.Page{{Text: strings.Repeat("x", 50), Number: 1, Source: "doc.pdf"}})
	require.Len(t, chunks, 3)
	for _, ch := range chunks {
		assert.LessOrEqual(t, len(ch.Text), 20)
	}
	assert.Equal(t, strings.Repeat("x", 20), chunks[0].Text)
}

func TestSplit_ChunksStayWithinSize(t *testing.T) {
	c := NewRecursiveChunker(50, 10)
	text := "One sentence here. Another sentence there. More words follow in this line.\nAnd a new line with yet more words to split up properly."
	chunks := c.Split([]domain.Page{{Text: text, Number: 1, Source: "doc.pdf"}})
	require.NotEmpty(t, chunks)
	for _, ch := range chunks {
		assert.LessOrEqual(t, len([]rune(ch.Text)), 50)
	}
}

func TestSplit_MultiplePagesKeepMetadata(t *testing.T) {
	c := NewRecursiveChunker(300, 50)
	chunks := c.Split([]domain.Page{
		{Text: "Page one text.", Number: 1, Source: "doc.pdf"},
		{Text: "Page two text.", Number: 2, Source: "doc.pdf"},
	})
	require.Len(t, chunks, 2)
	assert.Equal(t, 1, chunks[0].Page)
	assert.Equal(t, 2, chunks[1].Page)
}
