package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pdf-text-extractor/internal/domain"
)

// MockDocumentService implements domain.DocumentService for handler tests.
type MockDocumentService struct {
	pageResult  *domain.PageExtraction
	pageErr     error
	allResults  []domain.PageExtraction
	allErr      error
	clearErr    error
	clearedDocs []string
}

func NewMockDocumentService() *MockDocumentService {
	return &MockDocumentService{}
}

func (m *MockDocumentService) Upload(ctx context.Context, file io.Reader, originalName, language string) (*domain.Document, error) {
	return &domain.Document{ID: "new-doc", Title: originalName, Filename: "new-doc.pdf"}, nil
}

func (m *MockDocumentService) GetDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	if documentID == "missing" {
		return nil, domain.ErrDocumentNotFound
	}
	return &domain.Document{ID: documentID, Title: "Doc", Filename: documentID + ".pdf"}, nil
}

func (m *MockDocumentService) ListDocuments(ctx context.Context) ([]*domain.Document, error) {
	return []*domain.Document{}, nil
}

func (m *MockDocumentService) DeleteDocument(ctx context.Context, documentID string) error {
	if documentID == "missing" {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (m *MockDocumentService) ExtractPage(ctx context.Context, documentID string, pageNumber int, languageHint string) (*domain.PageExtraction, error) {
	if m.pageErr != nil {
		return nil, m.pageErr
	}
	return m.pageResult, nil
}

func (m *MockDocumentService) ExtractAll(ctx context.Context, documentID string, languageHint string) ([]domain.PageExtraction, error) {
	if m.allErr != nil {
		return nil, m.allErr
	}
	return m.allResults, nil
}

func (m *MockDocumentService) ClearCache(ctx context.Context, documentID string) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.clearedDocs = append(m.clearedDocs, documentID)
	return nil
}

func newTestRouter(svc domain.DocumentService) http.Handler {
	documentHandler := NewDocumentHandler(svc, 1024*1024, NewMockHandlerLogger())
	extractHandler := NewExtractHandler(svc, NewMockHandlerLogger())
	return NewRouter(documentHandler, extractHandler, func(next http.Handler) http.Handler { return next })
}

func TestExtractPage_ReturnsTaggedResult(t *testing.T) {
	svc := NewMockDocumentService()
	svc.pageResult = &domain.PageExtraction{PageNumber: 3, Text: "hello", Method: domain.MethodNative}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/doc-1/pages/3/text?lang=Telugu", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var got domain.PageExtraction
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Method != domain.MethodNative || got.Text != "hello" || got.PageNumber != 3 {
		t.Errorf("response = %+v, want page 3, native, hello", got)
	}
}

func TestExtractPage_InvalidPageNumber(t *testing.T) {
	router := newTestRouter(NewMockDocumentService())

	for _, page := range []string{"0", "-2", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/doc-1/pages/"+page+"/text", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("page %q: status = %d, want %d", page, rr.Code, http.StatusBadRequest)
		}
	}
}

func TestExtractPage_DocumentNotFound(t *testing.T) {
	svc := NewMockDocumentService()
	svc.pageErr = domain.ErrDocumentNotFound
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/ghost/pages/1/text", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestExtractPage_PageOutOfRange(t *testing.T) {
	svc := NewMockDocumentService()
	svc.pageErr = domain.ErrPageOutOfRange
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/doc-1/pages/99/text", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestExtractDocument_ReturnsAllPages(t *testing.T) {
	svc := NewMockDocumentService()
	svc.allResults = []domain.PageExtraction{
		{PageNumber: 1, Text: "one", Method: domain.MethodNative},
		{PageNumber: 2, Text: "two", Method: domain.MethodOCR},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/doc-1/extract", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var got struct {
		DocumentID string                  `json:"document_id"`
		Pages      []domain.PageExtraction `json:"pages"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.DocumentID != "doc-1" || len(got.Pages) != 2 {
		t.Errorf("response = %+v, want doc-1 with 2 pages", got)
	}
}

func TestClearCache(t *testing.T) {
	svc := NewMockDocumentService()
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/documents/doc-1/cache", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if len(svc.clearedDocs) != 1 || svc.clearedDocs[0] != "doc-1" {
		t.Errorf("cleared docs = %v, want [doc-1]", svc.clearedDocs)
	}
}

func TestClearCache_NotFound(t *testing.T) {
	svc := NewMockDocumentService()
	svc.clearErr = domain.ErrDocumentNotFound
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/documents/ghost/cache", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

var _ domain.DocumentService = (*MockDocumentService)(nil)
