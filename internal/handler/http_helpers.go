package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"pdf-assembler/internal/domain"
	apperrors "pdf-assembler/pkg/errors"
)

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	body, _ := json.Marshal(map[string]string{"error": message})
	w.Write(body)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writePDF writes PDF bytes with a download file name.
func writePDF(w http.ResponseWriter, fileName string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	if fileName != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// statusForError maps domain and application errors to HTTP status codes.
func statusForError(err error) int {
	var invalidImage *domain.InvalidImageError
	switch {
	case errors.Is(err, domain.ErrEmptyInput),
		errors.Is(err, domain.ErrNotEnoughDocuments),
		errors.Is(err, domain.ErrInvalidFile),
		errors.As(err, &invalidImage):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrMergeProducedEmptyOutput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound
	default:
		return apperrors.GetStatusCode(err)
	}
}
