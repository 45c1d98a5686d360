package handler

import (
	"net/http"

	"pdf-assembler/internal/config"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"pdf-assembler"}`))
	}).Methods("GET")

	maxUpload := container.Config.GetMaxUploadSize()

	assemblyHandler := NewAssemblyHandler(
		container.Compositor,
		container.Merger,
		container.Thumbnailer,
		maxUpload,
		container.Logger,
	)
	documentHandler := NewDocumentHandler(
		container.DocumentService,
		container.Thumbnailer,
		maxUpload,
		container.Logger,
	)

	// Engine routes: pure in-memory transformations.
	api.HandleFunc("/assemble", assemblyHandler.Assemble).Methods("POST")
	api.HandleFunc("/merge", assemblyHandler.Merge).Methods("POST")
	api.HandleFunc("/thumbnail", assemblyHandler.Thumbnail).Methods("POST")

	// Library routes: saved documents.
	api.HandleFunc("/documents", documentHandler.ListDocuments).Methods("GET")
	api.HandleFunc("/documents", documentHandler.SaveDocument).Methods("POST")
	api.HandleFunc("/documents/merge", documentHandler.MergeDocuments).Methods("POST")
	api.HandleFunc("/documents/{id}", documentHandler.GetDocument).Methods("GET")
	api.HandleFunc("/documents/{id}", documentHandler.DeleteDocument).Methods("DELETE")
	api.HandleFunc("/documents/{id}/file", documentHandler.GetDocumentFile).Methods("GET")
	api.HandleFunc("/documents/{id}/thumbnail", documentHandler.GetDocumentThumbnail).Methods("GET")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: container.Config.GetAllowedOrigins(),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
