package service

import (
	"bytes"
	"fmt"
	"time"

	"pdf-assembler/internal/domain"
	apperrors "pdf-assembler/pkg/errors"

	"codeberg.org/go-pdf/fpdf"
)

// PageCompositor turns a sequence of raster images into a multi-page PDF,
// one page per image. It is stateless and safe for concurrent use.
type PageCompositor struct {
	logger domain.Logger
}

// NewPageCompositor creates a new page compositor.
func NewPageCompositor(logger domain.Logger) *PageCompositor {
	return &PageCompositor{logger: logger}
}

// Compose validates and decodes every input image, then emits one page per
// image in input order, each image uniformly scaled to fit the margin-bounded
// content area and centered within it. It is all-or-nothing: no output is
// produced if any image fails to decode.
func (c *PageCompositor) Compose(images []domain.RasterImage, opts domain.ComposeOptions) ([]byte, error) {
	if len(images) == 0 {
		return nil, domain.ErrEmptyInput
	}

	// Validate eagerly, before any page exists.
	decoded := make([]*decodedImage, len(images))
	for i, img := range images {
		d, err := decodeRasterImage(img.Data)
		if err != nil {
			return nil, &domain.InvalidImageError{Index: i, FileName: img.FileName, Cause: err}
		}
		decoded[i] = d
	}

	geom := opts.ResolvedGeometry()
	contentX, contentY, contentW, contentH := geom.ContentRect()

	pdf := fpdf.New("P", "pt", "A4", "")
	c.applyMetadata(pdf, opts.Metadata)

	for i, d := range decoded {
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: geom.Width, Ht: geom.Height})

		x, y, w, h := fitRect(float64(d.width), float64(d.height), contentX, contentY, contentW, contentH)
		if w <= 0 || h <= 0 {
			// Margins swallowed the whole page; emit the page but draw nothing.
			c.logger.Warn("content area is empty, emitting blank page", "index", i)
			continue
		}

		name := fmt.Sprintf("img%d", i)
		ifo := fpdf.ImageOptions{ImageType: d.pdfType, ReadDpi: false}
		pdf.RegisterImageOptionsReader(name, ifo, bytes.NewReader(d.data))
		pdf.ImageOptions(name, x, y, w, h, false, ifo, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperrors.NewProcessingError("failed to serialize PDF", err)
	}

	c.logger.Debug("composed document", "pages", len(images), "bytes", buf.Len())
	return buf.Bytes(), nil
}

func (c *PageCompositor) applyMetadata(pdf *fpdf.Fpdf, meta domain.DocumentMetadata) {
	if meta.Title != "" {
		pdf.SetTitle(meta.Title, true)
	}
	pdf.SetCreator(domain.ProducerTag, true)
	pdf.SetProducer(domain.ProducerTag, true)

	created := meta.CreationDate
	if created.IsZero() {
		created = time.Now()
	}
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)
}
