package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"pdf-assembler/internal/domain"

	"github.com/supabase-community/postgrest-go"
)

// SupabaseDocumentRepository persists saved-document records in the
// "documents" table.
type SupabaseDocumentRepository struct {
	supabaseClient *SupabaseClient
	logger         domain.Logger
}

// NewSupabaseDocumentRepository creates a new Supabase document repository.
func NewSupabaseDocumentRepository(supabaseClient *SupabaseClient, logger domain.Logger) domain.DocumentRepository {
	return &SupabaseDocumentRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// Create inserts a new record.
func (r *SupabaseDocumentRepository) Create(record *domain.DocumentRecord) error {
	client := r.supabaseClient.GetSupabaseClient()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	payload := map[string]interface{}{
		"id":           record.ID,
		"title":        record.Title,
		"file_name":    record.FileName,
		"storage_path": record.StoragePath,
		"page_count":   record.PageCount,
		"file_size":    record.FileSize,
		"created_at":   record.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":   record.UpdatedAt.Format(time.RFC3339Nano),
	}

	_, _, err := client.From("documents").Insert(payload, false, "", "", "").Execute()
	if err != nil {
		r.logger.Error("Failed to insert document record", err, "doc_id", record.ID)
		return fmt.Errorf("failed to create document record: %w", err)
	}
	return nil
}

// GetByID retrieves a single record.
func (r *SupabaseDocumentRepository) GetByID(id string) (*domain.DocumentRecord, error) {
	client := r.supabaseClient.GetSupabaseClient()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From("documents").
		Select("*", "", false).
		Eq("id", id).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get document record: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrDocumentNotFound
	}
	return mapToRecord(rows[0]), nil
}

// List retrieves all records, newest first.
func (r *SupabaseDocumentRepository) List() ([]*domain.DocumentRecord, error) {
	client := r.supabaseClient.GetSupabaseClient()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From("documents").
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list document records: %w", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	records := make([]*domain.DocumentRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, mapToRecord(row))
	}
	return records, nil
}

// Delete removes a record.
func (r *SupabaseDocumentRepository) Delete(id string) error {
	client := r.supabaseClient.GetSupabaseClient()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	_, _, err := client.From("documents").
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete document record: %w", err)
	}
	return nil
}

func mapToRecord(row map[string]interface{}) *domain.DocumentRecord {
	rec := &domain.DocumentRecord{
		ID:          getString(row, "id"),
		Title:       getString(row, "title"),
		FileName:    getString(row, "file_name"),
		StoragePath: getString(row, "storage_path"),
		PageCount:   int(getFloat(row, "page_count")),
		FileSize:    int64(getFloat(row, "file_size")),
	}
	rec.CreatedAt = getTime(row, "created_at")
	rec.UpdatedAt = getTime(row, "updated_at")
	return rec
}

func getString(row map[string]interface{}, key string) string {
	if v, ok := row[key].(string); ok {
		return v
	}
	return ""
}

func getFloat(row map[string]interface{}, key string) float64 {
	if v, ok := row[key].(float64); ok {
		return v
	}
	return 0
}

func getTime(row map[string]interface{}, key string) time.Time {
	s := getString(row, key)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
