package service

import (
	"strings"
	"unicode"

	"pdf-text-extractor/internal/domain"
)

// DefaultGarbledThreshold is the special-character ratio above which native
// text is rejected in favor of a fallback extraction.
const DefaultGarbledThreshold = 0.30

// GarbleDetector classifies extracted text as usable or corrupted. Text from
// PDFs with font-encoding mismatches (common for Indic scripts) comes out as
// symbol soup; the detector measures how much of the text falls outside the
// expected alphabets.
type GarbleDetector struct {
	threshold float64
	logger    domain.Logger
}

// NewGarbleDetector creates a detector with the given threshold in [0,1].
// Values at or below zero fall back to DefaultGarbledThreshold.
func NewGarbleDetector(threshold float64, logger domain.Logger) *GarbleDetector {
	if threshold <= 0 {
		threshold = DefaultGarbledThreshold
	}
	return &GarbleDetector{
		threshold: threshold,
		logger:    logger,
	}
}

// IsGarbled reports whether text should be discarded and re-extracted via
// OCR/vision. Empty or whitespace-only text is always garbled. Otherwise the
// verdict is ratio > threshold, strictly greater; text exactly at the
// threshold passes. Short text gets no special treatment: a single clean
// character is as valid as a full page.
func (d *GarbleDetector) IsGarbled(text string) bool {
	if strings.TrimSpace(text) == "" {
		return true
	}

	total := 0
	special := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if !isExpectedRune(r) {
			special++
		}
	}
	if total == 0 {
		return true
	}

	ratio := float64(special) / float64(total)
	garbled := ratio > d.threshold

	if garbled && d.logger != nil {
		preview := text
		if len(preview) > 40 {
			preview = preview[:40]
		}
		d.logger.Debug("Native text classified as garbled",
			"length", len(text), "special_ratio", ratio, "preview", preview)
	}

	return garbled
}

// isExpectedRune reports whether a rune belongs to one of the alphabets the
// detector accepts: ASCII letters and digits, the Indic script blocks, and
// common punctuation.
func isExpectedRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r >= 0x0900 && r <= 0x097F: // Devanagari
		return true
	case r >= 0x0980 && r <= 0x09FF: // Bengali
		return true
	case r >= 0x0A00 && r <= 0x0A7F: // Gurmukhi
		return true
	case r >= 0x0A80 && r <= 0x0AFF: // Gujarati
		return true
	case r >= 0x0B80 && r <= 0x0BFF: // Tamil
		return true
	case r >= 0x0C00 && r <= 0x0C7F: // Telugu
		return true
	case r >= 0x0C80 && r <= 0x0CFF: // Kannada
		return true
	case r >= 0x0D00 && r <= 0x0D7F: // Malayalam
		return true
	}

	switch r {
	case '.', ',', '!', '?', ';', ':', '(', ')', '-', '\'', '"':
		return true
	}

	return false
}
