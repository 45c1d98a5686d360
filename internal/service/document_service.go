package service

import (
	"bytes"
	"context"
	"time"

	"pdf-assembler/internal/domain"
	apperrors "pdf-assembler/pkg/errors"

	"github.com/google/uuid"
)

// DocumentService implements the saved-document workflows: persisting an
// assembled PDF, browsing the library, fetching bytes for sharing, merging
// saved documents into a new one, and deletion.
type DocumentService struct {
	repository domain.DocumentRepository
	storage    domain.ObjectStorage
	merger     domain.DocumentMerger
	logger     domain.Logger
}

// NewDocumentService creates a new document service instance.
func NewDocumentService(
	repository domain.DocumentRepository,
	storage domain.ObjectStorage,
	merger domain.DocumentMerger,
	logger domain.Logger,
) *DocumentService {
	return &DocumentService{
		repository: repository,
		storage:    storage,
		merger:     merger,
		logger:     logger,
	}
}

// SaveDocument uploads the PDF bytes to object storage and records its
// metadata. The page count is read from the document itself.
func (s *DocumentService) SaveDocument(ctx context.Context, data []byte, title string) (*domain.DocumentRecord, error) {
	if len(data) == 0 {
		return nil, domain.ErrInvalidFile
	}

	pageCount, err := s.merger.PageCount(data)
	if err != nil {
		return nil, apperrors.NewValidationError("not a valid PDF", err.Error())
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	record := &domain.DocumentRecord{
		ID:          id,
		Title:       title,
		FileName:    title + ".pdf",
		StoragePath: id + ".pdf",
		PageCount:   pageCount,
		FileSize:    int64(len(data)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.storage.Upload(ctx, record.StoragePath, bytes.NewReader(data)); err != nil {
		return nil, apperrors.NewNetworkError("failed to store document", err)
	}

	if err := s.repository.Create(record); err != nil {
		// Best effort: do not leave an orphaned blob behind.
		if rmErr := s.storage.Remove(ctx, record.StoragePath); rmErr != nil {
			s.logger.Warn("failed to clean up stored object after record failure", "path", record.StoragePath, "error", rmErr)
		}
		return nil, err
	}

	s.logger.Info("document saved", "id", record.ID, "title", title, "pages", pageCount)
	return record, nil
}

// ListDocuments returns all saved records, newest first.
func (s *DocumentService) ListDocuments() ([]*domain.DocumentRecord, error) {
	records, err := s.repository.List()
	if err != nil {
		return nil, err
	}
	domain.SortRecordsByCreation(records)
	return records, nil
}

// GetDocument returns a single record by id.
func (s *DocumentService) GetDocument(id string) (*domain.DocumentRecord, error) {
	return s.repository.GetByID(id)
}

// GetDocumentFile returns the stored PDF bytes for a record.
func (s *DocumentService) GetDocumentFile(ctx context.Context, id string) (*domain.DocumentRecord, []byte, error) {
	record, err := s.repository.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.storage.Download(ctx, record.StoragePath)
	if err != nil {
		return nil, nil, apperrors.NewNetworkError("failed to fetch document file", err)
	}
	return record, data, nil
}

// MergeDocuments concatenates the stored PDFs identified by ids, in the
// given order, and saves the result as a new document.
func (s *DocumentService) MergeDocuments(ctx context.Context, ids []string, title string) (*domain.DocumentRecord, error) {
	if len(ids) < 2 {
		return nil, domain.ErrNotEnoughDocuments
	}

	documents := make([][]byte, 0, len(ids))
	for _, id := range ids {
		record, err := s.repository.GetByID(id)
		if err != nil {
			return nil, err
		}
		data, err := s.storage.Download(ctx, record.StoragePath)
		if err != nil {
			// A missing backing file is skipped, same as an unparsable one.
			s.logger.Warn("merge input unavailable, skipping", "id", id, "error", err)
			documents = append(documents, nil)
			continue
		}
		documents = append(documents, data)
	}

	result, err := s.merger.Merge(documents)
	if err != nil {
		return nil, err
	}
	if len(result.SkippedInputs) > 0 {
		s.logger.Warn("merge skipped inputs", "count", len(result.SkippedInputs))
	}

	return s.SaveDocument(ctx, result.Data, title)
}

// DeleteDocument removes the record and its stored object.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	record, err := s.repository.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.repository.Delete(id); err != nil {
		return err
	}

	if err := s.storage.Remove(ctx, record.StoragePath); err != nil {
		// The record is gone; the blob is unreachable garbage at worst.
		s.logger.Warn("failed to remove stored object", "path", record.StoragePath, "error", err)
	}

	s.logger.Info("document deleted", "id", id)
	return nil
}
