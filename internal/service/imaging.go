package service

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	// Register the stdlib decoders plus the extended formats the mobile
	// pickers commonly hand over.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// decodedImage is a validated raster image normalized for PDF embedding.
// JPEG/PNG/GIF keep their original bytes; everything else is re-encoded
// as PNG because the PDF writer only embeds those three natively.
type decodedImage struct {
	width   int
	height  int
	pdfType string // image type tag understood by fpdf: JPEG, PNG or GIF
	data    []byte
}

// decodeRasterImage fully decodes data and rejects anything that is not a
// raster image with positive dimensions. A full decode (not just the
// header) is deliberate: a truncated file must be caught here, before any
// page is emitted.
func decodeRasterImage(data []byte) (*decodedImage, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image has non-positive dimensions %dx%d", width, height)
	}

	switch format {
	case "jpeg", "png", "gif":
		return &decodedImage{
			width:   width,
			height:  height,
			pdfType: strings.ToUpper(format),
			data:    data,
		}, nil
	default:
		// TIFF, BMP, WEBP and friends: normalize to PNG.
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("re-encode %s as png: %w", format, err)
		}
		return &decodedImage{
			width:   width,
			height:  height,
			pdfType: "PNG",
			data:    buf.Bytes(),
		}, nil
	}
}

// fitRect returns the size and offset of src scaled uniformly to fit the
// content rectangle, centered. The scale is the minimum of the two axis
// ratios so the image never overflows the rectangle on either axis and
// its aspect ratio is preserved.
func fitRect(imgW, imgH float64, contentX, contentY, contentW, contentH float64) (x, y, w, h float64) {
	if imgW <= 0 || imgH <= 0 || contentW <= 0 || contentH <= 0 {
		return contentX, contentY, 0, 0
	}
	scale := contentW / imgW
	if s := contentH / imgH; s < scale {
		scale = s
	}
	w = imgW * scale
	h = imgH * scale
	x = contentX + (contentW-w)/2
	y = contentY + (contentH-h)/2
	return x, y, w, h
}
