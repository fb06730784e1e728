package extract

import (
	"bytes"

	"github.com/ledongthuc/pdf"

	"pdfqa/internal/domain"
)

// Pages extracts page-level text from raw PDF bytes. Individual pages that
// fail text extraction are skipped; a document that cannot be opened at all
// fails with ExtractionError.
func Pages(data []byte, sourceID string) ([]domain.Page, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &domain.ExtractionError{Source: sourceID, Err: err}
	}
	var pages []domain.Page
	for i := 1; i <= reader.NumPage(); i++ {
		p := reader.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, domain.Page{Text: text, Number: i, Source: sourceID})
	}
	return pages, nil
}
