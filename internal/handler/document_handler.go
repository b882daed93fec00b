// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"
	"net/http"

	"pdf-text-extractor/internal/domain"

	"github.com/gorilla/mux"
)

// DocumentHandler handles document-related HTTP requests
type DocumentHandler struct {
	documentService domain.DocumentService
	maxFileSize     int64
	logger          domain.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService domain.DocumentService, maxFileSize int64, logger domain.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		maxFileSize:     maxFileSize,
		logger:          logger,
	}
}

// UploadDocument accepts a multipart PDF upload. Optional form fields:
// "language" (human-readable document language used as the default OCR hint).
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	language := r.FormValue("language")

	doc, err := h.documentService.Upload(r.Context(), file, header.Filename, language)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidFile):
			writeError(w, http.StatusBadRequest, "File is not a valid PDF")
		case errors.Is(err, domain.ErrFileTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "File exceeds maximum allowed size")
		default:
			h.logger.Error("Document upload failed", err, "filename", header.Filename)
			writeError(w, http.StatusInternalServerError, "Failed to upload document")
		}
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}

// GetDocuments returns all uploaded documents
func (h *DocumentHandler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.documentService.ListDocuments(r.Context())
	if err != nil {
		h.logger.Error("Failed to list documents", err)
		writeError(w, http.StatusInternalServerError, "Failed to list documents")
		return
	}
	if docs == nil {
		docs = []*domain.Document{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"documents": docs})
}

// GetDocument returns a single document by ID
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	documentID := vars["id"]

	doc, err := h.documentService.GetDocument(r.Context(), documentID)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			writeError(w, http.StatusNotFound, "Document not found")
			return
		}
		h.logger.Error("Failed to get document", err, "document_id", documentID)
		writeError(w, http.StatusInternalServerError, "Failed to get document")
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// DeleteDocument removes a document, its file and its cached extractions
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	documentID := vars["id"]

	if err := h.documentService.DeleteDocument(r.Context(), documentID); err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			writeError(w, http.StatusNotFound, "Document not found")
			return
		}
		h.logger.Error("Failed to delete document", err, "document_id", documentID)
		writeError(w, http.StatusInternalServerError, "Failed to delete document")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
