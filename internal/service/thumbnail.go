package service

import (
	"bytes"

	"pdf-assembler/internal/domain"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
)

// ThumbnailRenderer rasterizes the first page of a PDF for preview display.
type ThumbnailRenderer struct {
	logger domain.Logger
}

// NewThumbnailRenderer creates a new thumbnail renderer.
func NewThumbnailRenderer(logger domain.Logger) *ThumbnailRenderer {
	return &ThumbnailRenderer{logger: logger}
}

// Render rasterizes the first page of document, scales it to fit within
// maxWidth x maxHeight preserving aspect ratio, and returns it PNG-encoded.
// Any failure (unparsable bytes, zero pages, non-positive bounds) degrades
// to (nil, false); callers treat that as "no preview available".
func (t *ThumbnailRenderer) Render(document []byte, maxWidth, maxHeight int) ([]byte, bool) {
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, false
	}

	doc, err := fitz.NewFromMemory(document)
	if err != nil {
		t.logger.Debug("thumbnail unavailable: document did not parse", "error", err)
		return nil, false
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, false
	}

	img, err := doc.Image(0)
	if err != nil {
		t.logger.Debug("thumbnail unavailable: first page did not render", "error", err)
		return nil, false
	}

	thumb := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.PNG); err != nil {
		t.logger.Warn("thumbnail encode failed", "error", err)
		return nil, false
	}
	return buf.Bytes(), true
}
