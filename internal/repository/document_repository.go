package repository

import (
	"context"
	"database/sql"
	"fmt"

	"pdf-text-extractor/internal/domain"
)

// SQLiteDocumentRepository implements domain.DocumentRepository on SQLite.
type SQLiteDocumentRepository struct {
	db     *DB
	logger domain.Logger
}

// NewDocumentRepository creates a new SQLite-backed document repository
func NewDocumentRepository(db *DB, logger domain.Logger) *SQLiteDocumentRepository {
	return &SQLiteDocumentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new document metadata row
func (r *SQLiteDocumentRepository) Create(ctx context.Context, document *domain.Document) error {
	if err := document.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, title, author, filename, language, page_count, file_size, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		document.ID, document.Title, document.Author, document.Filename,
		document.Language, document.Metadata.PageCount, document.Metadata.FileSize,
		document.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	r.logger.Debug("Document created", "id", document.ID, "title", document.Title)
	return nil
}

// GetByID fetches a document by ID
func (r *SQLiteDocumentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	doc := &domain.Document{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, author, filename, language, page_count, file_size, created_at
		 FROM documents WHERE id = ?`, id,
	).Scan(
		&doc.ID, &doc.Title, &doc.Author, &doc.Filename, &doc.Language,
		&doc.Metadata.PageCount, &doc.Metadata.FileSize, &doc.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, domain.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return doc, nil
}

// List returns all documents ordered by creation time, newest first
func (r *SQLiteDocumentRepository) List(ctx context.Context) ([]*domain.Document, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, author, filename, language, page_count, file_size, created_at
		 FROM documents ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*domain.Document
	for rows.Next() {
		doc := &domain.Document{}
		if err := rows.Scan(
			&doc.ID, &doc.Title, &doc.Author, &doc.Filename, &doc.Language,
			&doc.Metadata.PageCount, &doc.Metadata.FileSize, &doc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate document rows: %w", err)
	}

	return docs, nil
}

// Delete removes a document metadata row
func (r *SQLiteDocumentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return domain.ErrDocumentNotFound
	}

	return nil
}
