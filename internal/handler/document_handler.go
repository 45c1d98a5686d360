// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"net/http"

	"pdf-assembler/internal/domain"

	"github.com/gorilla/mux"
)

// DocumentHandler handles the saved-document library: save, browse,
// download, preview, merge and delete.
type DocumentHandler struct {
	documentService domain.DocumentService
	thumbnailer     domain.ThumbnailRenderer
	maxUpload       int64
	logger          domain.Logger
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(
	documentService domain.DocumentService,
	thumbnailer domain.ThumbnailRenderer,
	maxUpload int64,
	logger domain.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		thumbnailer:     thumbnailer,
		maxUpload:       maxUpload,
		logger:          logger,
	}
}

// ListDocuments handles GET /api/v1/documents.
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	records, err := h.documentService.ListDocuments()
	if err != nil {
		h.logger.Error("Failed to list documents", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	// Ensure JSON is [] not null when the library is empty.
	if records == nil {
		records = make([]*domain.DocumentRecord, 0)
	}
	writeJSON(w, http.StatusOK, records)
}

// SaveDocument handles POST /api/v1/documents. It expects a multipart form
// with a single "document" PDF file and a "title" field.
func (h *DocumentHandler) SaveDocument(w http.ResponseWriter, r *http.Request) {
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

	title := r.FormValue("title")
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	record, err := h.documentService.SaveDocument(r.Context(), data, title)
	if err != nil {
		h.logger.Error("Failed to save document", err, "title", title)
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// GetDocument handles GET /api/v1/documents/{id}.
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	record, err := h.documentService.GetDocument(id)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// GetDocumentFile handles GET /api/v1/documents/{id}/file, the share path.
func (h *DocumentHandler) GetDocumentFile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	record, data, err := h.documentService.GetDocumentFile(r.Context(), id)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writePDF(w, record.FileName, data)
}

// GetDocumentThumbnail handles GET /api/v1/documents/{id}/thumbnail.
func (h *DocumentHandler) GetDocumentThumbnail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	_, data, err := h.documentService.GetDocumentFile(r.Context(), id)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	query := r.URL.Query()
	width, height := parseThumbnailSize(query.Get("width"), query.Get("height"))
	png, ok := h.thumbnailer.Render(data, width, height)
	if !ok {
		// The stored bytes no longer render; callers treat this as "no preview".
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

type mergeDocumentsRequest struct {
	DocumentIDs []string `json:"document_ids"`
	Title       string   `json:"title"`
}

// MergeDocuments handles POST /api/v1/documents/merge. It concatenates the
// stored PDFs named by document_ids into a new saved document.
func (h *DocumentHandler) MergeDocuments(w http.ResponseWriter, r *http.Request) {
	var req mergeDocumentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	record, err := h.documentService.MergeDocuments(r.Context(), req.DocumentIDs, req.Title)
	if err != nil {
		h.logger.Warn("merge of saved documents failed", "error", err)
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// DeleteDocument handles DELETE /api/v1/documents/{id}.
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.documentService.DeleteDocument(r.Context(), id); err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
