package handler

import (
	"log/slog"
	"net/http"

	"motionforge/internal/domain/services"
	"motionforge/internal/httputil"
)

// EvidenceHandler handles evidence locker HTTP requests
type EvidenceHandler struct {
	evidenceService services.EvidenceService
	logger          *slog.Logger
}

// NewEvidenceHandler creates a new evidence handler
func NewEvidenceHandler(evidenceService services.EvidenceService, logger *slog.Logger) *EvidenceHandler {
	return &EvidenceHandler{
		evidenceService: evidenceService,
		logger:          logger,
	}
}

// Upload stores a document in a case's evidence locker
// POST /api/cases/{id}/evidence (multipart form, field "file")
func (h *EvidenceHandler) Upload(w http.ResponseWriter, r *http.Request) {
	caseID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid case ID format")
		return
	}

	data, mimeType, filename, err := readUpload(r, "file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ev, err := h.evidenceService.Upload(r.Context(), caseID, &services.UploadEvidenceRequest{
		Filename: filename,
		MimeType: mimeType,
		Data:     data,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, ev)
}

// ListForCase returns evidence metadata for a case, newest first
// GET /api/cases/{id}/evidence
func (h *EvidenceHandler) ListForCase(w http.ResponseWriter, r *http.Request) {
	caseID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid case ID format")
		return
	}

	items, err := h.evidenceService.ListForCase(r.Context(), caseID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}

// Delete removes an evidence record
// DELETE /api/evidence/{id}
func (h *EvidenceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid evidence ID format")
		return
	}

	if err := h.evidenceService.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExtractText runs text extraction (local or OCR) for an evidence record
// POST /api/evidence/{id}/ocr
func (h *EvidenceHandler) ExtractText(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid evidence ID format")
		return
	}

	text, err := h.evidenceService.ExtractText(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"text": text})
}
