package chunker

import (
	"strings"
	"unicode/utf8"

	"pdfqa/internal/domain"
)

// Default chunk geometry, in runes.
const (
	DefaultChunkSize = 300
	DefaultOverlap   = 50
)

// RecursiveChunker splits page text along semantic boundaries, preferring
// paragraph breaks over line breaks over single spaces. Pieces that no
// separator can shrink below the chunk size are cut at the size boundary.
// Consecutive chunks share an overlap window so ideas spanning a boundary
// are not lost.
type RecursiveChunker struct {
	chunkSize  int
	overlap    int
	separators []string
}

func NewRecursiveChunker(chunkSize, overlap int) *RecursiveChunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 2
	}
	return &RecursiveChunker{
		chunkSize:  chunkSize,
		overlap:    overlap,
		separators: []string{"\n\n", "\n", " "},
	}
}

// Split chunks every page independently, inheriting page metadata. Empty or
// whitespace-only pages yield zero chunks, never an error.
func (c *RecursiveChunker) Split(pages []domain.Page) []domain.Chunk {
	var chunks []domain.Chunk
	for _, p := range pages {
		for _, text := range c.splitText(p.Text, c.separators) {
			chunks = append(chunks, domain.Chunk{Text: text, Page: p.Number, Source: p.Source})
		}
	}
	return chunks
}

func (c *RecursiveChunker) splitText(text string, separators []string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) <= c.chunkSize {
		return []string{text}
	}
	sep, rest := firstSeparator(text, separators)
	if sep == "" {
		return c.sizeSplit(text)
	}
	var pieces []string
	for _, part := range strings.Split(text, sep) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if utf8.RuneCountInString(part) <= c.chunkSize {
			pieces = append(pieces, part)
			continue
		}
		pieces = append(pieces, c.splitText(part, rest)...)
	}
	return c.merge(pieces, sep)
}

// firstSeparator returns the highest-priority separator present in the text
// and the lower-priority separators left for recursion.
func firstSeparator(text string, separators []string) (string, []string) {
	for i, s := range separators {
		if strings.Contains(text, s) {
			return s, separators[i+1:]
		}
	}
	return "", nil
}

// merge greedily rejoins small pieces up to the chunk size, carrying a tail
// window of at most overlap runes into the next chunk.
func (c *RecursiveChunker) merge(pieces []string, sep string) []string {
	sepLen := utf8.RuneCountInString(sep)
	var out []string
	var window []string
	total := 0
	joined := func() int {
		if len(window) == 0 {
			return 0
		}
		return total + sepLen*(len(window)-1)
	}
	for _, p := range pieces {
		pl := utf8.RuneCountInString(p)
		if len(window) > 0 && joined()+sepLen+pl > c.chunkSize {
			out = append(out, strings.Join(window, sep))
			for len(window) > 0 && (joined() > c.overlap || joined()+sepLen+pl > c.chunkSize) {
				total -= utf8.RuneCountInString(window[0])
				window = window[1:]
			}
		}
		window = append(window, p)
		total += pl
	}
	if len(window) > 0 {
		out = append(out, strings.Join(window, sep))
	}
	return out
}

// sizeSplit cuts text into chunk-sized windows stepping by size minus
// overlap. Last resort when no separator is available.
func (c *RecursiveChunker) sizeSplit(text string) []string {
	runes := []rune(text)
	step := c.chunkSize - c.overlap
	if step <= 0 {
		step = c.chunkSize
	}
	var out []string
	for start := 0; start < len(runes); start += step {
		end := start + c.chunkSize
		if end >= len(runes) {
			out = append(out, string(runes[start:]))
			break
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}
