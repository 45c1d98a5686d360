package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"pdf-assembler/internal/domain"
)

// AssemblyHandler handles the stateless engine endpoints: compose images
// into a PDF, merge uploaded PDFs, and render a thumbnail. All data crosses
// this boundary as in-memory byte buffers.
type AssemblyHandler struct {
	compositor  domain.PageCompositor
	merger      domain.DocumentMerger
	thumbnailer domain.ThumbnailRenderer
	maxUpload   int64
	logger      domain.Logger
}

// NewAssemblyHandler creates a new assembly handler.
func NewAssemblyHandler(
	compositor domain.PageCompositor,
	merger domain.DocumentMerger,
	thumbnailer domain.ThumbnailRenderer,
	maxUpload int64,
	logger domain.Logger,
) *AssemblyHandler {
	return &AssemblyHandler{
		compositor:  compositor,
		merger:      merger,
		thumbnailer: thumbnailer,
		maxUpload:   maxUpload,
		logger:      logger,
	}
}

// Assemble handles POST /api/v1/assemble. It expects multipart form data
// with one or more "images" files plus optional "title", "orientation"
// (portrait|landscape) and geometry fields, and responds with the composed
// PDF.
func (h *AssemblyHandler) Assemble(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	images, err := readImageParts(r.MultipartForm.File["images"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := domain.ComposeOptions{
		Orientation: parseOrientation(r.FormValue("orientation")),
		Metadata:    domain.DocumentMetadata{Title: r.FormValue("title")},
	}
	if geom, ok := parseGeometry(r); ok {
		opts.Geometry = &geom
	}

	data, err := h.compositor.Compose(images, opts)
	if err != nil {
		h.logger.Warn("compose request failed", "error", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	fileName := r.FormValue("title")
	if fileName == "" {
		fileName = "document"
	}
	writePDF(w, fileName+".pdf", data)
}

// Merge handles POST /api/v1/merge. It expects at least two "documents"
// files and responds with their page-by-page concatenation. Unparsable
// inputs are skipped; the number of skipped inputs is reported in the
// X-Skipped-Inputs header.
func (h *AssemblyHandler) Merge(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	parts := r.MultipartForm.File["documents"]
	if len(parts) < 2 {
		writeError(w, http.StatusBadRequest, "at least two documents are required")
		return
	}

	documents := make([][]byte, 0, len(parts))
	for _, part := range parts {
		data, err := readPart(part)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read uploaded file")
			return
		}
		documents = append(documents, data)
	}

	result, err := h.merger.Merge(documents)
	if err != nil {
		h.logger.Warn("merge request failed", "error", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	w.Header().Set("X-Skipped-Inputs", strconv.Itoa(len(result.SkippedInputs)))
	writePDF(w, "merged.pdf", result.Data)
}

// Thumbnail handles POST /api/v1/thumbnail. It expects a single "document"
// file plus optional "width"/"height" fields and responds with a PNG
// preview of the first page, or 204 when none is available.
func (h *AssemblyHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	parts := r.MultipartForm.File["document"]
	if len(parts) != 1 {
		writeError(w, http.StatusBadRequest, "exactly one document is required")
		return
	}
	data, err := readPart(parts[0])
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	width, height := parseThumbnailSize(r.FormValue("width"), r.FormValue("height"))
	png, ok := h.thumbnailer.Render(data, width, height)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

const defaultThumbnailSize = 300

func parseThumbnailSize(widthStr, heightStr string) (int, int) {
	width, err := strconv.Atoi(widthStr)
	if err != nil || width <= 0 {
		width = defaultThumbnailSize
	}
	height, err := strconv.Atoi(heightStr)
	if err != nil || height <= 0 {
		height = defaultThumbnailSize
	}
	return width, height
}

func parseOrientation(value string) domain.Orientation {
	if value == string(domain.OrientationLandscape) {
		return domain.OrientationLandscape
	}
	return domain.OrientationPortrait
}

// parseGeometry builds a page geometry from the optional "page_width",
// "page_height" and "margin" form fields. Both dimensions must be present
// and positive for a custom geometry to apply.
func parseGeometry(r *http.Request) (domain.PageGeometry, bool) {
	width, errW := strconv.ParseFloat(r.FormValue("page_width"), 64)
	height, errH := strconv.ParseFloat(r.FormValue("page_height"), 64)
	if errW != nil || errH != nil || width <= 0 || height <= 0 {
		return domain.PageGeometry{}, false
	}

	margin := domain.DefaultMargin
	if m, err := strconv.ParseFloat(r.FormValue("margin"), 64); err == nil && m >= 0 {
		margin = m
	}

	return domain.PageGeometry{
		Width:        width,
		Height:       height,
		MarginTop:    margin,
		MarginLeft:   margin,
		MarginBottom: margin,
		MarginRight:  margin,
	}, true
}

func readImageParts(parts []*multipart.FileHeader) ([]domain.RasterImage, error) {
	if len(parts) == 0 {
		return nil, domain.ErrEmptyInput
	}
	images := make([]domain.RasterImage, 0, len(parts))
	for _, part := range parts {
		data, err := readPart(part)
		if err != nil {
			return nil, domain.ErrInvalidFile
		}
		images = append(images, domain.RasterImage{Data: data, FileName: part.Filename})
	}
	return images, nil
}

func readPart(part *multipart.FileHeader) ([]byte, error) {
	f, err := part.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
