package handler

import (
	"log/slog"
	"net/http"

	"motionforge/internal/filing"
	"motionforge/internal/httputil"
)

// TemplateHandler serves the filing template catalog
type TemplateHandler struct {
	registry *filing.Registry
	logger   *slog.Logger
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(registry *filing.Registry, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{
		registry: registry,
		logger:   logger,
	}
}

// ListTemplates returns every registered filing template in catalog order
// GET /api/templates
func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.registry.List())
}

// GetTemplate returns a single template by ID
// GET /api/templates/{id}
func (h *TemplateHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	tmpl, ok := h.registry.Get(id)
	if !ok {
		httputil.RespondError(w, http.StatusNotFound, "filing template not found: "+id)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, tmpl)
}

// HealthCheck reports service liveness
// GET /health
func (h *TemplateHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
