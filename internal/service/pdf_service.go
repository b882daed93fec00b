package service

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pdf-text-extractor/internal/domain"

	"github.com/gen2brain/go-fitz"
)

// pageTimeout bounds a single go-fitz text extraction; corrupt pages can
// make MuPDF spin.
const pageTimeout = 90 * time.Second

// PDFService reads uploaded PDFs from disk and provides the two per-page
// primitives the extraction pipeline needs: the native text layer and a
// rendered raster image. It implements domain.NativeTextSource and
// domain.PageRenderer.
type PDFService struct {
	uploadPath string
	logger     domain.Logger
}

// NewPDFService creates a new PDF service rooted at the upload directory
func NewPDFService(uploadPath string, logger domain.Logger) *PDFService {
	return &PDFService{
		uploadPath: uploadPath,
		logger:     logger,
	}
}

// FilePath returns the on-disk location for a document's PDF bytes.
func (s *PDFService) FilePath(documentID string) string {
	return filepath.Join(s.uploadPath, documentID+".pdf")
}

func (s *PDFService) open(documentID string) (*fitz.Document, error) {
	path := s.FilePath(documentID)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, domain.ErrDocumentNotFound
	}
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return doc, nil
}

// NativeText extracts the embedded text layer of a page (1-indexed).
// Extraction runs in a goroutine so a stuck page degrades to an error
// instead of hanging the request.
func (s *PDFService) NativeText(ctx context.Context, documentID string, pageNumber int) (string, error) {
	doc, err := s.open(documentID)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	if pageNumber < 1 || pageNumber > doc.NumPage() {
		return "", domain.ErrPageOutOfRange
	}

	type pageResult struct {
		text string
		err  error
	}
	resultCh := make(chan pageResult, 1)
	go func(idx int) {
		t, e := doc.Text(idx)
		resultCh <- pageResult{text: t, err: e}
	}(pageNumber - 1)

	select {
	case res := <-resultCh:
		if res.err != nil {
			return "", fmt.Errorf("failed to extract page text: %w", res.err)
		}
		return strings.TrimSpace(res.text), nil
	case <-time.After(pageTimeout):
		go func() { <-resultCh }() // drain so goroutine can exit
		return "", fmt.Errorf("page text extraction timed out after %v", pageTimeout)
	case <-ctx.Done():
		go func() { <-resultCh }()
		return "", ctx.Err()
	}
}

// Render rasterizes a page (1-indexed) for OCR/vision input.
func (s *PDFService) Render(ctx context.Context, documentID string, pageNumber int) (image.Image, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	doc, err := s.open(documentID)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	if pageNumber < 1 || pageNumber > doc.NumPage() {
		return nil, domain.ErrPageOutOfRange
	}

	img, err := doc.Image(pageNumber - 1)
	if err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}
	return img, nil
}

// Inspect reads document metadata (page count, title, author) from raw PDF
// bytes, used at upload time before the file has an ID on disk.
func (s *PDFService) Inspect(pdfBytes []byte) (domain.DocumentMetadata, error) {
	doc, err := fitz.NewFromMemory(pdfBytes)
	if err != nil {
		return domain.DocumentMetadata{}, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	meta := domain.DocumentMetadata{
		PageCount: doc.NumPage(),
		FileSize:  int64(len(pdfBytes)),
	}

	docMetadata := doc.Metadata()
	if title, ok := docMetadata["title"]; ok && title != "" {
		meta.OriginalTitle = title
	}
	if author, ok := docMetadata["author"]; ok && author != "" {
		meta.OriginalAuthor = author
	}

	return meta, nil
}

var (
	_ domain.NativeTextSource = (*PDFService)(nil)
	_ domain.PageRenderer     = (*PDFService)(nil)
)
