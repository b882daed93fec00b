package handler

import (
	"errors"
	"net/http"
	"strconv"

	"pdf-text-extractor/internal/domain"

	"github.com/gorilla/mux"
)

// ExtractHandler handles text-extraction HTTP requests
type ExtractHandler struct {
	documentService domain.DocumentService
	logger          domain.Logger
}

// NewExtractHandler creates a new extraction handler
func NewExtractHandler(documentService domain.DocumentService, logger domain.Logger) *ExtractHandler {
	return &ExtractHandler{
		documentService: documentService,
		logger:          logger,
	}
}

// ExtractPage runs the extraction pipeline for one page and returns the
// tagged result. The optional "lang" query parameter is a human-readable
// language name used as the OCR hint.
func (h *ExtractHandler) ExtractPage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	documentID := vars["id"]

	page, err := strconv.Atoi(vars["page"])
	if err != nil || page < 1 {
		writeError(w, http.StatusBadRequest, "Page number must be a positive integer")
		return
	}

	languageHint := r.URL.Query().Get("lang")

	result, err := h.documentService.ExtractPage(r.Context(), documentID, page, languageHint)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDocumentNotFound):
			writeError(w, http.StatusNotFound, "Document not found")
		case errors.Is(err, domain.ErrPageOutOfRange):
			writeError(w, http.StatusBadRequest, "Page number out of range")
		default:
			h.logger.Error("Page extraction failed", err, "document_id", documentID, "page", page)
			writeError(w, http.StatusInternalServerError, "Failed to extract page")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ExtractDocument runs the pipeline over every page of the document
func (h *ExtractHandler) ExtractDocument(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	documentID := vars["id"]
	languageHint := r.URL.Query().Get("lang")

	results, err := h.documentService.ExtractAll(r.Context(), documentID, languageHint)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			writeError(w, http.StatusNotFound, "Document not found")
			return
		}
		h.logger.Error("Document extraction failed", err, "document_id", documentID)
		writeError(w, http.StatusInternalServerError, "Failed to extract document")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"document_id": documentID,
		"pages":       results,
	})
}

// ClearCache drops cached extraction results for a document
func (h *ExtractHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	documentID := vars["id"]

	if err := h.documentService.ClearCache(r.Context(), documentID); err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			writeError(w, http.StatusNotFound, "Document not found")
			return
		}
		h.logger.Error("Failed to clear extraction cache", err, "document_id", documentID)
		writeError(w, http.StatusInternalServerError, "Failed to clear cache")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
