package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pdf-text-extractor/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var pdfMagic = []byte("%PDF-")

// AppDocumentService implements domain.DocumentService: upload and lifecycle
// of PDF files plus the extraction entry points.
type AppDocumentService struct {
	repo       domain.DocumentRepository
	cache      domain.ExtractionCache
	pdf        *PDFService
	extraction domain.ExtractionService
	logger     domain.Logger

	uploadPath  string
	maxFileSize int64
	workers     int
}

// NewDocumentService creates a new document service
func NewDocumentService(
	repo domain.DocumentRepository,
	cache domain.ExtractionCache,
	pdf *PDFService,
	extraction domain.ExtractionService,
	logger domain.Logger,
	uploadPath string,
	maxFileSize int64,
	workers int,
) *AppDocumentService {
	if workers < 1 {
		workers = 1
	}
	return &AppDocumentService{
		repo:        repo,
		cache:       cache,
		pdf:         pdf,
		extraction:  extraction,
		logger:      logger,
		uploadPath:  uploadPath,
		maxFileSize: maxFileSize,
		workers:     workers,
	}
}

// Upload validates and stores a PDF, extracts its metadata and creates the
// document record. language is an optional human-readable language name
// used later as the default OCR hint.
func (s *AppDocumentService) Upload(ctx context.Context, file io.Reader, originalName, language string) (*domain.Document, error) {
	limited := io.LimitReader(file, s.maxFileSize+1)
	pdfBytes, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(pdfBytes)) > s.maxFileSize {
		return nil, domain.ErrFileTooLarge
	}
	if !bytes.HasPrefix(pdfBytes, pdfMagic) {
		return nil, domain.ErrInvalidFile
	}

	meta, err := s.pdf.Inspect(pdfBytes)
	if err != nil {
		return nil, domain.ErrInvalidFile
	}

	docID := uuid.New().String()

	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	path := s.pdf.FilePath(docID)
	if err := os.WriteFile(path, pdfBytes, 0644); err != nil {
		return nil, fmt.Errorf("failed to store PDF: %w", err)
	}

	title := meta.OriginalTitle
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	}
	if title == "" {
		title = "Untitled"
	}

	doc := &domain.Document{
		ID:        docID,
		Title:     title,
		Author:    meta.OriginalAuthor,
		Filename:  docID + ".pdf",
		Language:  language,
		Metadata:  meta,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		// Keep disk and metadata in sync when the insert fails.
		if rmErr := os.Remove(path); rmErr != nil {
			s.logger.Warn("Failed to remove orphaned upload", "path", path, "error", rmErr)
		}
		return nil, err
	}

	s.logger.Info("Document uploaded", "id", docID, "title", title, "pages", meta.PageCount)
	return doc, nil
}

// GetDocument fetches a document by ID
func (s *AppDocumentService) GetDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	return s.repo.GetByID(ctx, documentID)
}

// ListDocuments returns all uploaded documents
func (s *AppDocumentService) ListDocuments(ctx context.Context) ([]*domain.Document, error) {
	return s.repo.List(ctx)
}

// DeleteDocument removes the stored file, the metadata row and cached
// extraction results.
func (s *AppDocumentService) DeleteDocument(ctx context.Context, documentID string) error {
	if err := s.repo.Delete(ctx, documentID); err != nil {
		return err
	}

	if err := os.Remove(s.pdf.FilePath(documentID)); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("Failed to remove PDF file", "document_id", documentID, "error", err)
	}

	if err := s.cache.Clear(ctx, documentID); err != nil {
		s.logger.Warn("Failed to clear extraction cache", "document_id", documentID, "error", err)
	}

	s.logger.Info("Document deleted", "id", documentID)
	return nil
}

// ExtractPage runs the extraction pipeline for one page. The page image is
// rendered here; a render failure still lets the pipeline try the cache and
// the native text layer.
func (s *AppDocumentService) ExtractPage(ctx context.Context, documentID string, pageNumber int, languageHint string) (*domain.PageExtraction, error) {
	doc, err := s.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if pageNumber < 1 || (doc.Metadata.PageCount > 0 && pageNumber > doc.Metadata.PageCount) {
		return nil, domain.ErrPageOutOfRange
	}

	hint := languageHint
	if hint == "" {
		hint = doc.Language
	}

	img, err := s.pdf.Render(ctx, documentID, pageNumber)
	if err != nil {
		s.logger.Warn("Page render failed, fallback extraction will be unavailable",
			"document_id", documentID, "page", pageNumber, "error", err)
	}

	result := s.extraction.Extract(ctx, domain.ExtractionRequest{
		DocumentID:   documentID,
		PageNumber:   pageNumber,
		Image:        img,
		LanguageHint: hint,
	})

	return &domain.PageExtraction{
		PageNumber: pageNumber,
		Text:       result.Text,
		Method:     result.Method,
	}, nil
}

// ExtractAll runs the pipeline over every page with bounded parallelism.
// Individual page failures surface as method "failed" in the results, they
// do not abort the batch.
func (s *AppDocumentService) ExtractAll(ctx context.Context, documentID string, languageHint string) ([]domain.PageExtraction, error) {
	doc, err := s.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	pageCount := doc.Metadata.PageCount
	if pageCount == 0 {
		return []domain.PageExtraction{}, nil
	}

	results := make([]domain.PageExtraction, pageCount)
	sem := make(chan struct{}, s.workers)
	g, gctx := errgroup.WithContext(ctx)

	for page := 1; page <= pageCount; page++ {
		page := page
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-gctx.Done():
				return gctx.Err()
			}

			res, err := s.ExtractPage(gctx, documentID, page, languageHint)
			if err != nil {
				s.logger.Error("Page extraction failed", err, "document_id", documentID, "page", page)
				results[page-1] = domain.PageExtraction{PageNumber: page, Method: domain.MethodFailed}
				return nil // continue with other pages
			}
			results[page-1] = *res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// ClearCache drops cached extraction results for a document
func (s *AppDocumentService) ClearCache(ctx context.Context, documentID string) error {
	if _, err := s.repo.GetByID(ctx, documentID); err != nil {
		return err
	}
	return s.cache.Clear(ctx, documentID)
}

var _ domain.DocumentService = (*AppDocumentService)(nil)
