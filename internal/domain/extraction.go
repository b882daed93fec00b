package domain

import (
	"context"
	"image"
	"time"
)

// ExtractionMethod tags how the text in an ExtractionResult was obtained.
type ExtractionMethod string

const (
	MethodNative ExtractionMethod = "native"
	MethodOCR    ExtractionMethod = "ocr"
	MethodVision ExtractionMethod = "vision"
	MethodCache  ExtractionMethod = "cache"
	MethodFailed ExtractionMethod = "failed"

	// MethodNativeGarbled marks a degraded success: the native text failed
	// the garble check but fallback extraction is disabled by configuration,
	// so the garbled text is returned as-is.
	MethodNativeGarbled ExtractionMethod = "native-garbled"
)

// ExtractionRequest carries everything needed to extract text for one page.
type ExtractionRequest struct {
	DocumentID   string      `json:"document_id"`
	PageNumber   int         `json:"page_number"` // 1-indexed
	Image        image.Image `json:"-"`
	LanguageHint string      `json:"language_hint,omitempty"` // human-readable, e.g. "Telugu"
}

// ExtractionResult is the tagged outcome of the extraction pipeline.
// The pipeline always produces a result; it never surfaces an error to
// callers. Method tells the caller which path produced the text.
type ExtractionResult struct {
	Text   string           `json:"text"`
	Method ExtractionMethod `json:"method"`
}

// PageExtraction pairs a page number with its extraction result, used by
// whole-document extraction.
type PageExtraction struct {
	PageNumber int              `json:"page_number"`
	Text       string           `json:"text"`
	Method     ExtractionMethod `json:"method"`
}

// CacheEntry is a persisted fallback-extraction result for one page.
type CacheEntry struct {
	DocumentID string    `json:"document_id"`
	PageNumber int       `json:"page_number"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// ExtractionCache persists fallback results keyed by (documentID, pageNumber).
// A miss is a normal outcome, reported via the bool, not an error. Writes are
// last-write-wins. Entries survive process restarts.
type ExtractionCache interface {
	Get(ctx context.Context, documentID string, pageNumber int) (string, bool, error)
	Put(ctx context.Context, documentID string, pageNumber int, text string) error
	Clear(ctx context.Context, documentID string) error
}

// OCREngine recognizes text from an encoded page image. lang is an engine
// language code (e.g. "tel"), not a human-readable name.
type OCREngine interface {
	Recognize(ctx context.Context, img image.Image, lang string) (string, error)
}

// FallbackExtractor re-derives text from a rendered page image when native
// extraction is unusable. languageHint is the human-readable language name,
// possibly empty. Implementations: OCR (Tesseract) and vision (multimodal
// model transcription).
type FallbackExtractor interface {
	ExtractFromImage(ctx context.Context, img image.Image, languageHint string) (string, error)
}

// NativeTextSource supplies text from a document's embedded text layer.
type NativeTextSource interface {
	NativeText(ctx context.Context, documentID string, pageNumber int) (string, error)
}

// PageRenderer rasterizes a document page for OCR/Vision input.
type PageRenderer interface {
	Render(ctx context.Context, documentID string, pageNumber int) (image.Image, error)
}

// ExtractionService runs the hybrid extraction pipeline for a single page.
type ExtractionService interface {
	Extract(ctx context.Context, req ExtractionRequest) ExtractionResult
}
