package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"pdf-assembler/internal/domain"
)

// Mocks of the engine interfaces.

type MockCompositor struct {
	lastImages []domain.RasterImage
	lastOpts   domain.ComposeOptions
	result     []byte
	err        error
}

func (m *MockCompositor) Compose(images []domain.RasterImage, opts domain.ComposeOptions) ([]byte, error) {
	m.lastImages = images
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type MockMerger struct {
	lastDocs [][]byte
	result   *domain.MergeResult
	err      error
}

func (m *MockMerger) Merge(documents [][]byte) (*domain.MergeResult, error) {
	m.lastDocs = documents
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *MockMerger) MergeTwo(a, b []byte) (*domain.MergeResult, error) {
	return m.Merge([][]byte{a, b})
}

func (m *MockMerger) PageCount(document []byte) (int, error) {
	return 1, nil
}

type MockThumbnailer struct {
	lastWidth  int
	lastHeight int
	result     []byte
	ok         bool
}

func (m *MockThumbnailer) Render(document []byte, maxWidth, maxHeight int) ([]byte, bool) {
	m.lastWidth = maxWidth
	m.lastHeight = maxHeight
	return m.result, m.ok
}

const testMaxUpload = 10 * 1024 * 1024

// multipartBody builds a multipart form with the given files and fields.
func multipartBody(t *testing.T, field string, files [][]byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for i, data := range files {
		part, err := writer.CreateFormFile(field, "file"+string(rune('0'+i)))
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write form field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestAssemble_Success(t *testing.T) {
	compositor := &MockCompositor{result: []byte("%PDF-out")}
	h := NewAssemblyHandler(compositor, &MockMerger{}, &MockThumbnailer{}, testMaxUpload, NewMockHandlerLogger())

	body, contentType := multipartBody(t, "images",
		[][]byte{[]byte("img-a"), []byte("img-b")},
		map[string]string{"title": "Trip", "orientation": "landscape"},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assemble", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Assemble(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %s", ct)
	}
	if len(compositor.lastImages) != 2 {
		t.Fatalf("expected 2 images passed through, got %d", len(compositor.lastImages))
	}
	if compositor.lastOpts.Orientation != domain.OrientationLandscape {
		t.Fatalf("expected landscape orientation, got %q", compositor.lastOpts.Orientation)
	}
	if compositor.lastOpts.Metadata.Title != "Trip" {
		t.Fatalf("expected title Trip, got %q", compositor.lastOpts.Metadata.Title)
	}
	if compositor.lastOpts.Geometry != nil {
		t.Fatal("expected default geometry when no fields are supplied")
	}
}

func TestAssemble_CustomGeometry(t *testing.T) {
	compositor := &MockCompositor{result: []byte("%PDF-out")}
	h := NewAssemblyHandler(compositor, &MockMerger{}, &MockThumbnailer{}, testMaxUpload, NewMockHandlerLogger())

	body, contentType := multipartBody(t, "images",
		[][]byte{[]byte("img")},
		map[string]string{"page_width": "612", "page_height": "792", "margin": "18"},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assemble", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Assemble(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	geom := compositor.lastOpts.Geometry
	if geom == nil {
		t.Fatal("expected custom geometry")
	}
	if geom.Width != 612 || geom.Height != 792 || geom.MarginTop != 18 {
		t.Fatalf("unexpected geometry: %+v", geom)
	}
}

func TestAssemble_NoImages(t *testing.T) {
	h := NewAssemblyHandler(&MockCompositor{}, &MockMerger{}, &MockThumbnailer{}, testMaxUpload, NewMockHandlerLogger())

	body, contentType := multipartBody(t, "images", nil, map[string]string{"title": "Empty"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assemble", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Assemble(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestAssemble_InvalidImageStatus(t *testing.T) {
	compositor := &MockCompositor{err: &domain.InvalidImageError{Index: 1}}
	h := NewAssemblyHandler(compositor, &MockMerger{}, &MockThumbnailer{}, testMaxUpload, NewMockHandlerLogger())

	body, contentType := multipartBody(t, "images", [][]byte{[]byte("a"), []byte("b")}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assemble", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Assemble(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestMerge_RequiresTwoDocuments(t *testing.T) {
	h := NewAssemblyHandler(&MockCompositor{}, &MockMerger{}, &MockThumbnailer{}, testMaxUpload, NewMockHandlerLogger())

	body, contentType := multipartBody(t, "documents", [][]byte{[]byte("one")}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/merge", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Merge(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestMerge_Success(t *testing.T) {
	merger := &MockMerger{result: &domain.MergeResult{
		Data:          []byte("%PDF-merged"),
		PageCount:     5,
		SkippedInputs: []int{1},
	}}
	h := NewAssemblyHandler(&MockCompositor{}, merger, &MockThumbnailer{}, testMaxUpload, NewMockHandlerLogger())

	body, contentType := multipartBody(t, "documents", [][]byte{[]byte("a"), []byte("b"), []byte("c")}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/merge", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Merge(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if len(merger.lastDocs) != 3 {
		t.Fatalf("expected 3 documents passed through, got %d", len(merger.lastDocs))
	}
	if skipped := rr.Header().Get("X-Skipped-Inputs"); skipped != "1" {
		t.Fatalf("expected X-Skipped-Inputs 1, got %q", skipped)
	}
	if !bytes.Equal(rr.Body.Bytes(), []byte("%PDF-merged")) {
		t.Fatal("unexpected response body")
	}
}

func TestMerge_EmptyOutputStatus(t *testing.T) {
	merger := &MockMerger{err: domain.ErrMergeProducedEmptyOutput}
	h := NewAssemblyHandler(&MockCompositor{}, merger, &MockThumbnailer{}, testMaxUpload, NewMockHandlerLogger())

	body, contentType := multipartBody(t, "documents", [][]byte{[]byte("a"), []byte("b")}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/merge", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Merge(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rr.Code)
	}
}

func TestThumbnail_Success(t *testing.T) {
	thumbnailer := &MockThumbnailer{result: []byte("png-bytes"), ok: true}
	h := NewAssemblyHandler(&MockCompositor{}, &MockMerger{}, thumbnailer, testMaxUpload, NewMockHandlerLogger())

	body, contentType := multipartBody(t, "document", [][]byte{[]byte("pdf")}, map[string]string{"width": "64", "height": "48"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/thumbnail", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Thumbnail(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png, got %s", ct)
	}
	if thumbnailer.lastWidth != 64 || thumbnailer.lastHeight != 48 {
		t.Fatalf("expected size 64x48, got %dx%d", thumbnailer.lastWidth, thumbnailer.lastHeight)
	}
}

func TestThumbnail_AbsentIsNoContent(t *testing.T) {
	thumbnailer := &MockThumbnailer{ok: false}
	h := NewAssemblyHandler(&MockCompositor{}, &MockMerger{}, thumbnailer, testMaxUpload, NewMockHandlerLogger())

	body, contentType := multipartBody(t, "document", [][]byte{[]byte("garbage")}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/thumbnail", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Thumbnail(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rr.Code)
	}
}

func TestThumbnail_DefaultSize(t *testing.T) {
	thumbnailer := &MockThumbnailer{result: []byte("png"), ok: true}
	h := NewAssemblyHandler(&MockCompositor{}, &MockMerger{}, thumbnailer, testMaxUpload, NewMockHandlerLogger())

	body, contentType := multipartBody(t, "document", [][]byte{[]byte("pdf")}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/thumbnail", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Thumbnail(rr, req)

	if thumbnailer.lastWidth != defaultThumbnailSize || thumbnailer.lastHeight != defaultThumbnailSize {
		t.Fatalf("expected default size %d, got %dx%d", defaultThumbnailSize, thumbnailer.lastWidth, thumbnailer.lastHeight)
	}
}
