package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"motionforge/internal/config"
	"motionforge/internal/filing"
	"motionforge/internal/handler"
	"motionforge/internal/handler/sse"
	"motionforge/internal/middleware"
	"motionforge/internal/repository/postgres"
	"motionforge/internal/service/drafting"
	"motionforge/internal/service/evidence"
	"motionforge/internal/service/genai"
	"motionforge/internal/service/intake"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	// In debug mode, tee logs to a timestamped file as well
	logOutput := io.Writer(os.Stdout)
	if cfg.Debug {
		if f, err := config.SetupLogFile("logs", 5); err != nil {
			log.Printf("warning: log file setup failed: %v", err)
		} else {
			defer f.Close()
			logOutput = io.MultiWriter(os.Stdout, f)
		}
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	caseRepo := postgres.NewCaseRepository(repoConfig)
	draftRepo := postgres.NewDraftRepository(repoConfig)
	evidenceRepo := postgres.NewEvidenceRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Setup generation provider
	provider, err := genai.SetupProvider(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to setup generation provider: %v", err)
	}
	logger.Info("generation provider ready", "provider", provider.Name())

	// Build the filing template registry: builtins plus any
	// user-supplied YAML templates
	templates := filing.BuiltinTemplates()
	if cfg.TemplateDir != "" {
		extra, err := filing.LoadDir(cfg.TemplateDir)
		if err != nil {
			log.Fatalf("Failed to load filing templates from %s: %v", cfg.TemplateDir, err)
		}
		templates = append(templates, extra...)
		logger.Info("custom filing templates loaded", "dir", cfg.TemplateDir, "count", len(extra))
	}
	registry, err := filing.NewRegistry(templates)
	if err != nil {
		log.Fatalf("Invalid filing template catalog: %v", err)
	}
	logger.Info("filing template registry ready", "templates", registry.Len())

	// Create services
	assembler := drafting.NewAssembler(provider, draftRepo, logger)
	caseService := intake.NewCaseService(caseRepo, txManager, provider, logger)
	draftService := drafting.NewDraftService(registry, assembler, provider, draftRepo, caseRepo, logger)
	evidenceService := evidence.NewEvidenceService(evidenceRepo, caseRepo, txManager, provider, logger)

	// Create handlers
	templateHandler := handler.NewTemplateHandler(registry, logger)
	caseHandler := handler.NewCaseHandler(caseService, logger)
	draftHandler := handler.NewDraftHandler(draftService, sse.DefaultConfig(), logger)
	evidenceHandler := handler.NewEvidenceHandler(evidenceService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", templateHandler.HealthCheck)

	// Filing template catalog
	mux.HandleFunc("GET /api/templates", templateHandler.ListTemplates)
	mux.HandleFunc("GET /api/templates/{id}", templateHandler.GetTemplate)

	// Case routes
	mux.HandleFunc("GET /api/cases", caseHandler.ListCases)
	mux.HandleFunc("POST /api/cases", caseHandler.CreateCase)
	mux.HandleFunc("POST /api/cases/extract", caseHandler.ExtractCase) // Must come before {id} route
	mux.HandleFunc("GET /api/cases/{id}", caseHandler.GetCase)
	mux.HandleFunc("PATCH /api/cases/{id}", caseHandler.UpdateCase)
	mux.HandleFunc("DELETE /api/cases/{id}", caseHandler.DeleteCase)
	mux.HandleFunc("POST /api/cases/{id}/events", caseHandler.AddEvent)
	mux.HandleFunc("POST /api/cases/{id}/strategy", caseHandler.AnalyzeStrategy)

	// Evidence locker routes
	mux.HandleFunc("POST /api/cases/{id}/evidence", evidenceHandler.Upload)
	mux.HandleFunc("GET /api/cases/{id}/evidence", evidenceHandler.ListForCase)
	mux.HandleFunc("DELETE /api/evidence/{id}", evidenceHandler.Delete)
	mux.HandleFunc("POST /api/evidence/{id}/ocr", evidenceHandler.ExtractText)

	// Draft routes
	mux.HandleFunc("POST /api/cases/{id}/drafts", draftHandler.GenerateDraft)
	mux.HandleFunc("GET /api/cases/{id}/drafts", draftHandler.ListDraftsForCase)
	mux.HandleFunc("POST /api/cases/{id}/drafts/stream", draftHandler.StreamDraft) // SSE progress stream
	mux.HandleFunc("GET /api/drafts/{id}", draftHandler.GetDraft)
	mux.HandleFunc("PATCH /api/drafts/{id}", draftHandler.UpdateDraft)
	mux.HandleFunc("DELETE /api/drafts/{id}", draftHandler.DeleteDraft)
	mux.HandleFunc("POST /api/drafts/{id}/refine", draftHandler.RefineDraft)

	// Build middleware chain
	var root http.Handler = mux
	root = middleware.Recovery(logger)(root)

	// CORS - handles OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Last-Event-ID"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-lived SSE streams
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
