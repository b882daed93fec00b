package domain

import "errors"

// Domain errors
var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrPageOutOfRange   = errors.New("page number out of range")
	ErrInvalidFile      = errors.New("invalid file")
	ErrFileTooLarge     = errors.New("file exceeds maximum allowed size")

	// ErrMissingAPIKey is returned by the vision extractor before any
	// network call when no API key is configured.
	ErrMissingAPIKey = errors.New("vision api key not configured")

	ErrUnknownEngine = errors.New("unknown fallback engine")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
