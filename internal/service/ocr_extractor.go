package service

import (
	"context"
	"image"

	"pdf-text-extractor/internal/domain"
	apperrors "pdf-text-extractor/pkg/errors"
)

// OCRExtractor implements domain.FallbackExtractor on top of a local OCR
// engine. It translates human-readable language hints into engine language
// codes; an unrecognized or empty hint selects the general English model.
type OCRExtractor struct {
	engine domain.OCREngine
	logger domain.Logger
}

// NewOCRExtractor creates a new OCR-backed fallback extractor
func NewOCRExtractor(engine domain.OCREngine, logger domain.Logger) *OCRExtractor {
	return &OCRExtractor{
		engine: engine,
		logger: logger,
	}
}

// ExtractFromImage recognizes text from the rendered page image. Engine
// errors are reported to the caller; retry policy belongs to the
// orchestrator, not here.
func (e *OCRExtractor) ExtractFromImage(ctx context.Context, img image.Image, languageHint string) (string, error) {
	code := TesseractCode(languageHint)
	e.logger.Debug("Running OCR", "language_hint", languageHint, "tesseract_code", code)

	text, err := e.engine.Recognize(ctx, img, code)
	if err != nil {
		return "", apperrors.NewEngineError("ocr recognition failed", err)
	}

	return text, nil
}

var _ domain.FallbackExtractor = (*OCRExtractor)(nil)
