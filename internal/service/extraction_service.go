package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"pdf-text-extractor/internal/domain"
)

// EngineOCR and EngineVision name the configurable fallback engines. A single
// engine is active at a time; racing both is deliberately out of scope.
const (
	EngineOCR    = "ocr"
	EngineVision = "vision"
)

// HybridExtractionService sequences the extraction pipeline: cache lookup,
// native text, garble check, then OCR or vision fallback. It always returns
// a tagged result and never surfaces an error to callers; failures are
// absorbed into the method tag.
type HybridExtractionService struct {
	cache    domain.ExtractionCache
	native   domain.NativeTextSource
	ocr      domain.FallbackExtractor
	vision   domain.FallbackExtractor
	detector *GarbleDetector
	resolver *LanguageResolver
	logger   domain.Logger

	fallbackEnabled bool
	fallbackEngine  string
	timeout         time.Duration

	// Coalesces concurrent fallback work for the same page so duplicate
	// callers share one OCR/vision call instead of repeating it.
	flight singleflight.Group
}

// NewExtractionService creates the hybrid extraction pipeline.
// resolver may be nil to disable language auto-detection.
func NewExtractionService(
	cache domain.ExtractionCache,
	native domain.NativeTextSource,
	ocr domain.FallbackExtractor,
	vision domain.FallbackExtractor,
	detector *GarbleDetector,
	resolver *LanguageResolver,
	logger domain.Logger,
	fallbackEnabled bool,
	fallbackEngine string,
	timeout time.Duration,
) *HybridExtractionService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HybridExtractionService{
		cache:           cache,
		native:          native,
		ocr:             ocr,
		vision:          vision,
		detector:        detector,
		resolver:        resolver,
		logger:          logger,
		fallbackEnabled: fallbackEnabled,
		fallbackEngine:  fallbackEngine,
		timeout:         timeout,
	}
}

// Extract runs the pipeline for one page.
func (s *HybridExtractionService) Extract(ctx context.Context, req domain.ExtractionRequest) domain.ExtractionResult {
	// Step 1: cached fallback result from an earlier call.
	if text, found, err := s.cache.Get(ctx, req.DocumentID, req.PageNumber); err != nil {
		// Cache trouble never fails the request; it only costs us the hit.
		s.logger.Warn("Extraction cache read failed", "document_id", req.DocumentID, "page", req.PageNumber, "error", err)
	} else if found {
		return domain.ExtractionResult{Text: text, Method: domain.MethodCache}
	}

	// Step 2: native text layer. A failing source counts as empty text.
	nativeText := ""
	if s.native != nil {
		text, err := s.native.NativeText(ctx, req.DocumentID, req.PageNumber)
		if err != nil {
			s.logger.Warn("Native extraction failed, continuing with empty text",
				"document_id", req.DocumentID, "page", req.PageNumber, "error", err)
		} else {
			nativeText = text
		}
	}

	// Step 3: garble check. Clean native text wins and is not cached;
	// re-reading the text layer is cheap.
	if !s.detector.IsGarbled(nativeText) {
		return domain.ExtractionResult{Text: nativeText, Method: domain.MethodNative}
	}

	// Step 4: fallback selection.
	if !s.fallbackEnabled {
		return domain.ExtractionResult{Text: nativeText, Method: domain.MethodNativeGarbled}
	}

	var extractor domain.FallbackExtractor
	var method domain.ExtractionMethod
	switch s.fallbackEngine {
	case EngineOCR:
		extractor, method = s.ocr, domain.MethodOCR
	case EngineVision:
		extractor, method = s.vision, domain.MethodVision
	default:
		s.logger.Error("Fallback requested but engine is not configured",
			domain.ErrUnknownEngine, "engine", s.fallbackEngine)
		return domain.ExtractionResult{Text: "", Method: domain.MethodFailed}
	}

	hint := req.LanguageHint
	if hint == "" && s.resolver != nil {
		hint = s.resolver.DetectLanguage(nativeText)
	}

	// Step 5: run the chosen extractor under the configured timeout,
	// coalescing duplicate in-flight work per page.
	key := fmt.Sprintf("%s:%d", req.DocumentID, req.PageNumber)
	v, err, shared := s.flight.Do(key, func() (interface{}, error) {
		cctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		return extractor.ExtractFromImage(cctx, req.Image, hint)
	})
	if err != nil {
		s.logger.Error("Fallback extraction failed", err,
			"document_id", req.DocumentID, "page", req.PageNumber, "engine", s.fallbackEngine)
		return domain.ExtractionResult{Text: "", Method: domain.MethodFailed}
	}
	text := v.(string)
	if shared {
		s.logger.Debug("Fallback extraction coalesced with concurrent request",
			"document_id", req.DocumentID, "page", req.PageNumber)
	}

	// Cache write is best-effort: a failure here is a latent cost for the
	// next call, not a correctness problem for this one.
	if err := s.cache.Put(ctx, req.DocumentID, req.PageNumber, text); err != nil {
		s.logger.Warn("Extraction cache write failed", "document_id", req.DocumentID, "page", req.PageNumber, "error", err)
	}

	return domain.ExtractionResult{Text: text, Method: method}
}

var _ domain.ExtractionService = (*HybridExtractionService)(nil)
