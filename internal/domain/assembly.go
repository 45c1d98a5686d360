package domain

import "time"

// ProducerTag is embedded as creator/producer in every PDF this service writes.
const ProducerTag = "pdf-assembler"

// Orientation selects how the page dimensions of a composed document are laid out
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// RasterImage is an encoded image (PNG/JPEG/GIF/TIFF/BMP/WEBP) to be placed
// on its own page of a composed PDF. The bytes are format-agnostic at this
// layer; decoding happens inside the compositor.
type RasterImage struct {
	Data     []byte `json:"-"`
	FileName string `json:"file_name,omitempty"` // optional source hint, used in error messages only
}

// PageGeometry describes a page size and margins, both in points (1" = 72pt).
type PageGeometry struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	MarginTop    float64 `json:"margin_top"`
	MarginLeft   float64 `json:"margin_left"`
	MarginBottom float64 `json:"margin_bottom"`
	MarginRight  float64 `json:"margin_right"`
}

// Default page geometry: ISO A4 at 72dpi with 36pt margins on all sides.
const (
	DefaultPageWidth  = 595.2
	DefaultPageHeight = 841.8
	DefaultMargin     = 36.0
)

// DefaultPageGeometry returns A4 portrait with 36pt margins.
func DefaultPageGeometry() PageGeometry {
	return PageGeometry{
		Width:        DefaultPageWidth,
		Height:       DefaultPageHeight,
		MarginTop:    DefaultMargin,
		MarginLeft:   DefaultMargin,
		MarginBottom: DefaultMargin,
		MarginRight:  DefaultMargin,
	}
}

// Oriented returns the geometry with page width and height swapped for
// landscape. Margins are not swapped; they stay top/left/bottom/right
// relative to the rotated page.
func (g PageGeometry) Oriented(o Orientation) PageGeometry {
	if o == OrientationLandscape {
		g.Width, g.Height = g.Height, g.Width
	}
	return g
}

// ContentRect returns the rectangle remaining after margins are subtracted.
// Width and height are clamped to zero when margins exceed the page size.
func (g PageGeometry) ContentRect() (x, y, w, h float64) {
	w = g.Width - g.MarginLeft - g.MarginRight
	h = g.Height - g.MarginTop - g.MarginBottom
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return g.MarginLeft, g.MarginTop, w, h
}

// DocumentMetadata is embedded in the output PDF's document-information
// dictionary. A zero CreationDate means "now"; supplying one makes the
// output byte-deterministic for identical inputs.
type DocumentMetadata struct {
	Title        string
	CreationDate time.Time
}

// ComposeOptions bundles the optional parameters of a compose call.
type ComposeOptions struct {
	Geometry    *PageGeometry // nil selects the A4 default
	Orientation Orientation   // empty selects portrait
	Metadata    DocumentMetadata
}

// ResolvedGeometry applies defaulting and orientation.
func (o ComposeOptions) ResolvedGeometry() PageGeometry {
	geom := DefaultPageGeometry()
	if o.Geometry != nil {
		geom = *o.Geometry
	}
	return geom.Oriented(o.Orientation)
}

// MergeResult is the outcome of a successful merge.
type MergeResult struct {
	Data          []byte
	PageCount     int
	SkippedInputs []int // indices of inputs that failed to parse and were skipped
}
