package service

import (
	"bytes"
	"fmt"
	"io"

	"pdf-assembler/internal/domain"
	apperrors "pdf-assembler/pkg/errors"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// DocumentMerger concatenates existing PDFs page-by-page. The original page
// content streams and dimensions pass through unmodified; this is a
// structural concatenation, not a recomposition.
type DocumentMerger struct {
	logger domain.Logger
	conf   *model.Configuration
}

// NewDocumentMerger creates a new document merger.
func NewDocumentMerger(logger domain.Logger) *DocumentMerger {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &DocumentMerger{logger: logger, conf: conf}
}

// Merge appends the pages of each parsable input, in input order, into one
// output document. Inputs that fail to parse are skipped rather than
// failing the merge; their indices are reported in the result. If nothing
// survives, the merge fails with ErrMergeProducedEmptyOutput.
func (m *DocumentMerger) Merge(documents [][]byte) (*domain.MergeResult, error) {
	var (
		readers    []io.ReadSeeker
		survivors  []int
		skipped    []int
		totalPages int
	)

	for i, doc := range documents {
		count, err := api.PageCount(bytes.NewReader(doc), m.conf)
		if err != nil || count == 0 {
			m.logger.Warn("skipping unparsable merge input", "index", i, "error", err)
			skipped = append(skipped, i)
			continue
		}
		readers = append(readers, bytes.NewReader(doc))
		survivors = append(survivors, i)
		totalPages += count
	}

	if totalPages == 0 {
		return nil, domain.ErrMergeProducedEmptyOutput
	}

	var out []byte
	if len(readers) == 1 {
		// Single surviving document: nothing to concatenate, hand back a copy.
		out = append([]byte(nil), documents[survivors[0]]...)
	} else {
		var buf bytes.Buffer
		if err := api.MergeRaw(readers, &buf, false, m.conf); err != nil {
			return nil, apperrors.NewProcessingError("failed to merge documents", err)
		}
		out = buf.Bytes()
	}

	m.logger.Debug("merged documents", "inputs", len(documents), "skipped", len(skipped), "pages", totalPages)
	return &domain.MergeResult{
		Data:          out,
		PageCount:     totalPages,
		SkippedInputs: skipped,
	}, nil
}

// MergeTwo is the two-document convenience path; it is equivalent to
// Merge([a, b]) and produces identical output.
func (m *DocumentMerger) MergeTwo(a, b []byte) (*domain.MergeResult, error) {
	return m.Merge([][]byte{a, b})
}

// PageCount parses the document and returns its page count.
func (m *DocumentMerger) PageCount(document []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(document), m.conf)
	if err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return count, nil
}
