package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfqa/internal/domain"
)

func TestPages_CorruptDocument(t *testing.T) {
	_, err := Pages([]byte("this is not a pdf"), "broken.pdf")
	require.Error(t, err)

	var extractErr *domain.ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, "broken.pdf", extractErr.Source)
}

func TestPages_EmptyInput(t *testing.T) {
	_, err := Pages(nil, "empty.pdf")
	assert.Error(t, err)
}
