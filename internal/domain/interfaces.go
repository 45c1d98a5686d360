package domain

import (
	"context"
	"io"
)

// PageCompositor converts a sequence of raster images into a single
// multi-page PDF, one image per page, scaled to fit and centered.
type PageCompositor interface {
	Compose(images []RasterImage, opts ComposeOptions) ([]byte, error)
}

// DocumentMerger concatenates existing PDF byte streams page-by-page.
// Unparsable inputs are skipped, never fatal on their own.
type DocumentMerger interface {
	Merge(documents [][]byte) (*MergeResult, error)
	MergeTwo(a, b []byte) (*MergeResult, error)
	PageCount(document []byte) (int, error)
}

// ThumbnailRenderer rasterizes the first page of a PDF into a PNG that fits
// within the given bounds. The boolean is false when no preview is
// available; rendering never returns an error.
type ThumbnailRenderer interface {
	Render(document []byte, maxWidth, maxHeight int) ([]byte, bool)
}

// DocumentService defines the saved-document workflows exposed to handlers.
type DocumentService interface {
	SaveDocument(ctx context.Context, data []byte, title string) (*DocumentRecord, error)
	ListDocuments() ([]*DocumentRecord, error)
	GetDocument(id string) (*DocumentRecord, error)
	GetDocumentFile(ctx context.Context, id string) (*DocumentRecord, []byte, error)
	MergeDocuments(ctx context.Context, ids []string, title string) (*DocumentRecord, error)
	DeleteDocument(ctx context.Context, id string) error
}

// DocumentRepository defines persistence operations for saved-document records.
type DocumentRepository interface {
	Create(record *DocumentRecord) error
	GetByID(id string) (*DocumentRecord, error)
	List() ([]*DocumentRecord, error)
	Delete(id string) error
}

// ObjectStorage defines operations on stored PDF blobs.
type ObjectStorage interface {
	Upload(ctx context.Context, path string, file io.Reader) error
	Download(ctx context.Context, path string) ([]byte, error)
	Remove(ctx context.Context, path string) error
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetMaxUploadSize() int64
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetStorageBucket() string
	GetAllowedOrigins() []string
}
