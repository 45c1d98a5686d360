package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// SupabaseStorage stores PDF blobs in a Supabase Storage bucket over its
// plain HTTP object API.
type SupabaseStorage struct {
	baseURL string
	apiKey  string
	bucket  string
	client  *http.Client
}

// NewStorageService creates a Supabase-backed object storage client.
func NewStorageService(baseURL, apiKey, bucket string) *SupabaseStorage {
	return &SupabaseStorage{
		baseURL: baseURL,
		apiKey:  apiKey,
		bucket:  bucket,
		client:  http.DefaultClient,
	}
}

// Upload stores the object at path, overwriting any previous version.
func (s *SupabaseStorage) Upload(ctx context.Context, path string, file io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.objectURL(path), file)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/pdf")
	req.Header.Set("x-upsert", "true")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("storage upload failed: %s", resp.Status)
	}
	return nil
}

// Download fetches the object at path.
func (s *SupabaseStorage) Download(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.objectURL(path), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("storage download failed: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Remove deletes the object at path.
func (s *SupabaseStorage) Remove(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.objectURL(path), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("storage remove failed: %s", resp.Status)
	}
	return nil
}

func (s *SupabaseStorage) objectURL(path string) string {
	return s.baseURL + "/storage/v1/object/" + s.bucket + "/" + path
}
