package handler

import (
	"log/slog"
	"net/http"

	"motionforge/internal/domain/services"
	"motionforge/internal/handler/sse"
	"motionforge/internal/httputil"
)

// DraftHandler handles draft HTTP requests, including the SSE
// generation stream
type DraftHandler struct {
	draftService services.DraftService
	sseConfig    *sse.Config
	logger       *slog.Logger
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftService services.DraftService, sseConfig *sse.Config, logger *slog.Logger) *DraftHandler {
	if sseConfig == nil {
		sseConfig = sse.DefaultConfig()
	}
	return &DraftHandler{
		draftService: draftService,
		sseConfig:    sseConfig,
		logger:       logger,
	}
}

// GenerateDraft runs the full assembly pipeline and blocks until the
// draft is ready. Clients that want live progress use StreamDraft.
// POST /api/cases/{id}/drafts
func (h *DraftHandler) GenerateDraft(w http.ResponseWriter, r *http.Request) {
	caseID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid case ID format")
		return
	}

	var req services.GenerateDraftRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.draftService.GenerateDraft(r.Context(), caseID, &req, nil)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, result)
}

// StreamDraft runs the assembly pipeline with progress streamed as
// server-sent events: one "progress" event per section, then either a
// "draft" event carrying the result or an "error" event.
// POST /api/cases/{id}/drafts/stream
func (h *DraftHandler) StreamDraft(w http.ResponseWriter, r *http.Request) {
	caseID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid case ID format")
		return
	}

	var req services.GenerateDraftRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	writer, err := sse.NewEventWriter(w)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	keepAlive := sse.NewTickerKeepAlive(h.sseConfig.KeepAliveInterval)
	keepAlive.Start(writer, h.logger)
	defer keepAlive.Stop()

	onProgress := func(p services.Progress) {
		if err := writer.WriteEvent("progress", p); err != nil {
			h.logger.Warn("progress write failed", "error", err)
		}
	}

	result, err := h.draftService.GenerateDraft(r.Context(), caseID, &req, onProgress)
	if err != nil {
		// Headers are already sent, so errors travel in-stream
		_ = writer.WriteEvent("error", map[string]string{"error": err.Error()})
		return
	}

	if err := writer.WriteEvent("draft", result); err != nil {
		h.logger.Warn("draft event write failed", "error", err)
	}
}

// ListDraftsForCase returns a case's drafts, most recently updated first
// GET /api/cases/{id}/drafts
func (h *DraftHandler) ListDraftsForCase(w http.ResponseWriter, r *http.Request) {
	caseID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid case ID format")
		return
	}

	drafts, err := h.draftService.ListDraftsForCase(r.Context(), caseID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, drafts)
}

// GetDraft retrieves a draft by ID
// GET /api/drafts/{id}
func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid draft ID format")
		return
	}

	draft, err := h.draftService.GetDraft(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, draft)
}

// UpdateDraft edits a draft's title or content
// PATCH /api/drafts/{id}
func (h *DraftHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid draft ID format")
		return
	}

	var req services.UpdateDraftRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	draft, err := h.draftService.UpdateDraft(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, draft)
}

// DeleteDraft deletes a draft
// DELETE /api/drafts/{id}
func (h *DraftHandler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid draft ID format")
		return
	}

	if err := h.draftService.DeleteDraft(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RefineDraft rewrites draft content per a plain-language instruction
// POST /api/drafts/{id}/refine
func (h *DraftHandler) RefineDraft(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid draft ID format")
		return
	}

	var req services.RefineDraftRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	draft, err := h.draftService.RefineDraft(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, draft)
}
