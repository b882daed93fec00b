package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pdf-text-extractor/internal/domain"
)

// SQLiteExtractionCache persists fallback extraction results so repeated
// OCR/vision work for the same page is not re-done across restarts.
type SQLiteExtractionCache struct {
	db     *DB
	logger domain.Logger
}

// NewExtractionCache creates a new SQLite-backed extraction cache
func NewExtractionCache(db *DB, logger domain.Logger) *SQLiteExtractionCache {
	return &SQLiteExtractionCache{
		db:     db,
		logger: logger,
	}
}

// Get returns the cached text for a page. A miss is reported via the bool,
// not an error.
func (c *SQLiteExtractionCache) Get(ctx context.Context, documentID string, pageNumber int) (string, bool, error) {
	var text string
	err := c.db.QueryRowContext(ctx,
		"SELECT text FROM extraction_cache WHERE document_id = ? AND page_number = ?",
		documentID, pageNumber,
	).Scan(&text)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read extraction cache: %w", err)
	}

	return text, true, nil
}

// Put stores or replaces the cached text for a page. Last write wins.
func (c *SQLiteExtractionCache) Put(ctx context.Context, documentID string, pageNumber int, text string) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO extraction_cache (document_id, page_number, text, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(document_id, page_number)
		 DO UPDATE SET text = excluded.text, created_at = excluded.created_at`,
		documentID, pageNumber, text, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to write extraction cache: %w", err)
	}
	return nil
}

// Clear removes all cached entries for a document. Clearing a document with
// no entries is not an error.
func (c *SQLiteExtractionCache) Clear(ctx context.Context, documentID string) error {
	res, err := c.db.ExecContext(ctx,
		"DELETE FROM extraction_cache WHERE document_id = ?", documentID)
	if err != nil {
		return fmt.Errorf("failed to clear extraction cache: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n > 0 {
		c.logger.Debug("Cleared extraction cache", "document_id", documentID, "entries", n)
	}
	return nil
}
