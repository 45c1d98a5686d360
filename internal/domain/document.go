package domain

import (
	"sort"
	"time"
)

// DocumentRecord is the persisted metadata of a saved PDF. The PDF bytes
// themselves live in object storage under StoragePath.
type DocumentRecord struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	FileName    string    `json:"file_name"`
	StoragePath string    `json:"storage_path"`
	PageCount   int       `json:"page_count"`
	FileSize    int64     `json:"file_size"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SortRecordsByCreation orders records newest first, matching the library view.
func SortRecordsByCreation(records []*DocumentRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}
