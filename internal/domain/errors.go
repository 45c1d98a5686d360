package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrEmptyInput               = errors.New("no input images")
	ErrMergeProducedEmptyOutput = errors.New("merge produced no pages")
	ErrDocumentNotFound         = errors.New("document not found")
	ErrNotEnoughDocuments       = errors.New("merge requires at least two documents")
	ErrInvalidFile              = errors.New("invalid file")
)

// InvalidImageError identifies the first input image that failed to decode.
type InvalidImageError struct {
	Index    int
	FileName string
	Cause    error
}

func (e *InvalidImageError) Error() string {
	if e.FileName != "" {
		return fmt.Sprintf("invalid image at index %d (%s): %v", e.Index, e.FileName, e.Cause)
	}
	return fmt.Sprintf("invalid image at index %d: %v", e.Index, e.Cause)
}

func (e *InvalidImageError) Unwrap() error {
	return e.Cause
}
