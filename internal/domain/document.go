package domain

import (
	"context"
	"io"
	"time"
)

// DocumentMetadata holds properties read from the PDF itself at upload time.
type DocumentMetadata struct {
	OriginalTitle  string `json:"original_title,omitempty"`
	OriginalAuthor string `json:"original_author,omitempty"`
	PageCount      int    `json:"page_count"`
	FileSize       int64  `json:"file_size"`
}

// Document represents an uploaded PDF tracked by the service.
type Document struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author,omitempty"`
	Filename string `json:"filename"`

	// Language is the human-readable document language ("Telugu", "Hindi"),
	// either supplied at upload or detected from the first pages' text.
	// Empty when unknown.
	Language string `json:"language,omitempty"`

	Metadata DocumentMetadata `json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the required fields of a document.
func (d *Document) Validate() error {
	if d.ID == "" {
		return &ValidationError{Field: "id", Message: "document ID is required"}
	}
	if d.Title == "" {
		return &ValidationError{Field: "title", Message: "document title is required"}
	}
	if d.Filename == "" {
		return &ValidationError{Field: "filename", Message: "document filename is required"}
	}
	if d.Metadata.PageCount < 0 {
		return &ValidationError{Field: "metadata.page_count", Message: "page count cannot be negative"}
	}
	return nil
}

// DocumentRepository defines persistence operations for document metadata.
type DocumentRepository interface {
	Create(ctx context.Context, document *Document) error
	GetByID(ctx context.Context, id string) (*Document, error)
	List(ctx context.Context) ([]*Document, error)
	Delete(ctx context.Context, id string) error
}

// DocumentService defines the use-case operations for documents.
type DocumentService interface {
	Upload(ctx context.Context, file io.Reader, originalName, language string) (*Document, error)
	GetDocument(ctx context.Context, documentID string) (*Document, error)
	ListDocuments(ctx context.Context) ([]*Document, error)

	// DeleteDocument removes the stored file, the metadata row and any
	// cached extraction results for the document.
	DeleteDocument(ctx context.Context, documentID string) error

	// ExtractPage runs the extraction pipeline for a single page.
	ExtractPage(ctx context.Context, documentID string, pageNumber int, languageHint string) (*PageExtraction, error)

	// ExtractAll runs the pipeline over every page of the document with
	// bounded parallelism. Per-page failures are reported in the results,
	// they do not abort the batch.
	ExtractAll(ctx context.Context, documentID string, languageHint string) ([]PageExtraction, error)

	// ClearCache drops cached extraction results for the document so the
	// next extraction starts from scratch.
	ClearCache(ctx context.Context, documentID string) error
}
