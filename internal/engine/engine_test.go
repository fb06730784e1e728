package engine

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfqa/internal/chunker"
	"pdfqa/internal/domain"
	"pdfqa/internal/vectorstore/memory"
)

// lexiconEmbedder is a deterministic stub that favors lexical overlap: each
// known word maps to its own dimension, so cosine similarity grows with the
// number of shared words.
type lexiconEmbedder struct {
	docCalls int
}

var lexicon = []string{"what", "color", "is", "the", "sky", "blue", "grass", "green"}

func (e *lexiconEmbedder) Name() string { return "fake:lexicon" }

func (e *lexiconEmbedder) EmbedDocuments(texts []string) ([][]float64, error) {
	e.docCalls++
	vecs := make([][]float64, len(texts))
	for i, t := range texts {
		vecs[i] = e.embed(t)
	}
	return vecs, nil
}

func (e *lexiconEmbedder) EmbedQuery(text string) ([]float64, error) {
	return e.embed(text), nil
}

func (e *lexiconEmbedder) embed(text string) []float64 {
	vec := make([]float64, len(lexicon))
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		for i, known := range lexicon {
			if w == known {
				vec[i]++
			}
		}
	}
	return vec
}

// scriptedChat records the messages it received and replies with a fixed
// string.
type scriptedChat struct {
	reply    string
	messages []domain.Message
}

func (c *scriptedChat) Name() string { return "fake:chat" }

func (c *scriptedChat) Complete(messages []domain.Message) (string, error) {
	c.messages = messages
	return c.reply, nil
}

func newTestEngine(chat domain.ChatModel) (*Engine, *memory.Store) {
	store := memory.NewStore()
	eng := New(chunker.NewRecursiveChunker(20, 0), &lexiconEmbedder{}, store, chat, 4)
	return eng, store
}

func TestEngine_IngestChunksAndStores(t *testing.T) {
	eng, store := newTestEngine(&scriptedChat{})
	n, err := eng.Ingest([]domain.Page{{Text: "The sky is blue. Grass is green.", Number: 1, Source: "doc.pdf"}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, store.Count())
}

func TestEngine_IngestDedupesAcrossPages(t *testing.T) {
	eng, store := newTestEngine(&scriptedChat{})
	_, err := eng.Ingest([]domain.Page{
		{Text: "The sky is blue.", Number: 1, Source: "doc.pdf"},
		{Text: "The sky is blue.", Number: 2, Source: "doc.pdf"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, store.Count())
}

func TestEngine_IngestEmptyPages(t *testing.T) {
	eng, store := newTestEngine(&scriptedChat{})
	n, err := eng.Ingest([]domain.Page{{Text: "   ", Number: 1, Source: "doc.pdf"}})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, store.Count())
}

func TestEngine_RetrievesMostRelevantChunkFirst(t *testing.T) {
	eng, _ := newTestEngine(&scriptedChat{})
	_, err := eng.Ingest([]domain.Page{{Text: "The sky is blue. Grass is green.", Number: 1, Source: "doc.pdf"}})
	require.NoError(t, err)

	results, err := eng.Sources("What color is the sky?", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Entry.Text, "sky is blue")
}

func TestEngine_AnswerBuildsGroundedPrompt(t *testing.T) {
	chat := &scriptedChat{reply: "The sky is blue."}
	eng, _ := newTestEngine(chat)
	_, err := eng.Ingest([]domain.Page{{Text: "The sky is blue. Grass is green.", Number: 1, Source: "doc.pdf"}})
	require.NoError(t, err)

	answer, err := eng.Answer("What color is the sky?", 2)
	require.NoError(t, err)
	assert.Equal(t, "The sky is blue.", answer)

	require.Len(t, chat.messages, 2)
	assert.Equal(t, domain.RoleSystem, chat.messages[0].Role)
	assert.Contains(t, chat.messages[0].Content, "just say that you don't know")
	assert.Contains(t, chat.messages[0].Content, "accents")

	assert.Equal(t, domain.RoleUser, chat.messages[1].Role)
	assert.Contains(t, chat.messages[1].Content, "The sky is blue.")
	assert.Contains(t, chat.messages[1].Content, "---")
	assert.Contains(t, chat.messages[1].Content, "What color is the sky?")
}

func TestEngine_ContextOrderedByRelevance(t *testing.T) {
	chat := &scriptedChat{reply: "ok"}
	eng, _ := newTestEngine(chat)
	_, err := eng.Ingest([]domain.Page{{Text: "The sky is blue. Grass is green.", Number: 1, Source: "doc.pdf"}})
	require.NoError(t, err)

	_, err = eng.Answer("What color is the sky?", 2)
	require.NoError(t, err)

	prompt := chat.messages[1].Content
	assert.Less(t, strings.Index(prompt, "sky is blue"), strings.Index(prompt, "Grass is green"))
}

func TestEngine_EmptyIndexStillAnswers(t *testing.T) {
	chat := &scriptedChat{reply: "I don't know."}
	eng, _ := newTestEngine(chat)

	answer, err := eng.Answer("What color is the sky?", 0)
	require.NoError(t, err)
	assert.Equal(t, "I don't know.", answer)

	// the prompt still goes out, with an empty context section
	require.Len(t, chat.messages, 2)
	assert.Contains(t, chat.messages[1].Content, "Here is the context: \n\n")
}

func TestEngine_SourcesUsesDefaultK(t *testing.T) {
	eng, _ := newTestEngine(&scriptedChat{})
	_, err := eng.Ingest([]domain.Page{{Text: "The sky is blue. Grass is green.", Number: 1, Source: "doc.pdf"}})
	require.NoError(t, err)

	results, err := eng.Sources("What color is the sky?", 0)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}
