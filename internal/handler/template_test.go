package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"motionforge/internal/filing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMux(t *testing.T) *http.ServeMux {
	t.Helper()
	registry, err := filing.NewRegistry(filing.BuiltinTemplates())
	if err != nil {
		t.Fatalf("registry setup failed: %v", err)
	}
	h := NewTemplateHandler(registry, testLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("GET /api/templates", h.ListTemplates)
	mux.HandleFunc("GET /api/templates/{id}", h.GetTemplate)
	return mux
}

func TestTemplateHandler_ListTemplates(t *testing.T) {
	rec := httptest.NewRecorder()
	testMux(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/templates", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var templates []filing.Template
	if err := json.Unmarshal(rec.Body.Bytes(), &templates); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(templates) != 5 {
		t.Errorf("expected 5 templates, got %d", len(templates))
	}
	if templates[0].ID != filing.TypeTRO {
		t.Errorf("catalog order not preserved, first is %s", templates[0].ID)
	}
}

func TestTemplateHandler_GetTemplate(t *testing.T) {
	t.Run("known template", func(t *testing.T) {
		rec := httptest.NewRecorder()
		testMux(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/templates/"+filing.TypeCustomMotion, nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var tmpl filing.Template
		if err := json.Unmarshal(rec.Body.Bytes(), &tmpl); err != nil {
			t.Fatal(err)
		}
		if tmpl.ID != filing.TypeCustomMotion {
			t.Errorf("got template %s", tmpl.ID)
		}
	})

	t.Run("unknown template", func(t *testing.T) {
		rec := httptest.NewRecorder()
		testMux(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/templates/NOPE", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
			t.Errorf("expected problem+json error, got %s", ct)
		}
	})
}

func TestHealthCheck(t *testing.T) {
	rec := httptest.NewRecorder()
	testMux(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
