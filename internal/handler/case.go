package handler

import (
	"io"
	"log/slog"
	"net/http"

	"motionforge/internal/config"
	"motionforge/internal/domain/services"
	"motionforge/internal/httputil"
)

// CaseHandler handles case profile HTTP requests
type CaseHandler struct {
	caseService services.CaseService
	logger      *slog.Logger
}

// NewCaseHandler creates a new case handler
func NewCaseHandler(caseService services.CaseService, logger *slog.Logger) *CaseHandler {
	return &CaseHandler{
		caseService: caseService,
		logger:      logger,
	}
}

// ListCases retrieves all cases, most recently modified first
// GET /api/cases
func (h *CaseHandler) ListCases(w http.ResponseWriter, r *http.Request) {
	cases, err := h.caseService.ListCases(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, cases)
}

// CreateCase creates a new case profile
// POST /api/cases
func (h *CaseHandler) CreateCase(w http.ResponseWriter, r *http.Request) {
	var req services.CreateCaseRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.caseService.CreateCase(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, c)
}

// GetCase retrieves a case by ID, timeline included
// GET /api/cases/{id}
func (h *CaseHandler) GetCase(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid case ID format")
		return
	}

	c, err := h.caseService.GetCase(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, c)
}

// UpdateCase replaces the editable fields of a case
// PATCH /api/cases/{id}
func (h *CaseHandler) UpdateCase(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid case ID format")
		return
	}

	var req services.UpdateCaseRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.caseService.UpdateCase(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, c)
}

// DeleteCase deletes a case profile
// DELETE /api/cases/{id}
func (h *CaseHandler) DeleteCase(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid case ID format")
		return
	}

	if err := h.caseService.DeleteCase(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddEvent appends an event to the case timeline
// POST /api/cases/{id}/events
func (h *CaseHandler) AddEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid case ID format")
		return
	}

	var req services.AddEventRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := h.caseService.AddEvent(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, event)
}

// ExtractCase runs AI extraction over an uploaded document and returns
// prefill fields for the intake form. Nothing is persisted.
// POST /api/cases/extract (multipart form, field "file")
func (h *CaseHandler) ExtractCase(w http.ResponseWriter, r *http.Request) {
	data, mimeType, _, err := readUpload(r, "file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	extracted, err := h.caseService.ExtractCase(r.Context(), data, mimeType)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, extracted)
}

// AnalyzeStrategy regenerates the strategy analysis for a case
// POST /api/cases/{id}/strategy
func (h *CaseHandler) AnalyzeStrategy(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid case ID format")
		return
	}

	analysis, err := h.caseService.AnalyzeStrategy(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"analysis": analysis})
}

// readUpload pulls a single file out of a multipart form. The declared
// Content-Type header is trusted; downstream extraction falls back to
// OCR when it turns out to be wrong.
func readUpload(r *http.Request, field string) (data []byte, mimeType, filename string, err error) {
	if err := r.ParseMultipartForm(config.MaxEvidenceSize); err != nil {
		return nil, "", "", err
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", "", err
	}
	defer file.Close()

	data, err = io.ReadAll(io.LimitReader(file, config.MaxEvidenceSize))
	if err != nil {
		return nil, "", "", err
	}

	mimeType = header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return data, mimeType, header.Filename, nil
}
