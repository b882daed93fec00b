package service

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// tesseractCodes maps human-readable language names to Tesseract trained-data
// codes. Unknown names fall back to the general English model.
var tesseractCodes = map[string]string{
	"telugu":    "tel",
	"hindi":     "hin",
	"tamil":     "tam",
	"kannada":   "kan",
	"malayalam": "mal",
	"bengali":   "ben",
	"gujarati":  "guj",
	"punjabi":   "pan",
	"marathi":   "mar",
	"odia":      "ori",
	"assamese":  "asm",
	"urdu":      "urd",
	"sanskrit":  "san",
	"english":   "eng",
}

// TesseractCode translates a human-readable language name ("Telugu") into a
// Tesseract language code ("tel"). Defaults to "eng".
func TesseractCode(languageName string) string {
	if code, ok := tesseractCodes[strings.ToLower(strings.TrimSpace(languageName))]; ok {
		return code
	}
	return "eng"
}

// LanguageResolver guesses the language of extracted text so OCR can pick a
// better-trained model than blind English when the caller supplies no hint.
type LanguageResolver struct {
	detector lingua.LanguageDetector
}

// NewLanguageResolver builds a resolver restricted to English plus the Indic
// languages the OCR mapping table covers.
func NewLanguageResolver() *LanguageResolver {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English,
			lingua.Hindi,
			lingua.Telugu,
			lingua.Tamil,
			lingua.Bengali,
			lingua.Gujarati,
			lingua.Punjabi,
			lingua.Marathi,
			lingua.Urdu,
		).
		Build()

	return &LanguageResolver{detector: detector}
}

// DetectLanguage returns the human-readable name of the dominant language in
// text, or empty string when detection is inconclusive.
func (r *LanguageResolver) DetectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	language, ok := r.detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return language.String()
}
