package config

import (
	"pdf-assembler/internal/domain"
	"pdf-assembler/internal/repository"
	"pdf-assembler/internal/service"
	"pdf-assembler/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config             domain.Config
	Logger             domain.Logger
	SupabaseClient     *repository.SupabaseClient
	DocumentRepository domain.DocumentRepository
	Storage            domain.ObjectStorage
	Compositor         domain.PageCompositor
	Merger             domain.DocumentMerger
	Thumbnailer        domain.ThumbnailRenderer
	DocumentService    domain.DocumentService
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	// Persistence collaborators
	supabaseClient := repository.NewSupabaseClient(config, appLogger)
	documentRepo := repository.NewSupabaseDocumentRepository(supabaseClient, appLogger)
	storage := service.NewStorageService(
		config.GetSupabaseURL(),
		config.GetSupabaseKey(),
		config.GetStorageBucket(),
	)

	// Assembly engine
	compositor := service.NewPageCompositor(appLogger)
	merger := service.NewDocumentMerger(appLogger)
	thumbnailer := service.NewThumbnailRenderer(appLogger)

	documentService := service.NewDocumentService(documentRepo, storage, merger, appLogger)

	return &Container{
		Config:             config,
		Logger:             appLogger,
		SupabaseClient:     supabaseClient,
		DocumentRepository: documentRepo,
		Storage:            storage,
		Compositor:         compositor,
		Merger:             merger,
		Thumbnailer:        thumbnailer,
		DocumentService:    documentService,
	}
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}
