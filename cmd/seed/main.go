package main

import (
	"context"
	"flag"
	"log"
	"time"

	"motionforge/internal/config"
	"motionforge/internal/repository/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before setup (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed a demo case")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("🚫 BLOCKED: Cannot run --drop-tables in production environment")
	}

	log.Printf("🌱 Setting up database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("📋 Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	// Seed a demo case for local development
	log.Println("📝 Seeding demo case...")
	if err := seedDemoCase(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to seed demo case: %v", err)
	}
	log.Println("✅ Demo case seeded")
}

func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Enable UUID extension
	_, err := pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"")
	if err != nil {
		return err
	}

	// Create cases table
	createCases := `
		CREATE TABLE IF NOT EXISTS ` + tables.Cases + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			nickname TEXT NOT NULL,
			jurisdiction TEXT NOT NULL,
			case_number TEXT NOT NULL DEFAULT '',
			court_name TEXT NOT NULL DEFAULT '',
			judge TEXT NOT NULL DEFAULT '',
			plaintiff TEXT NOT NULL,
			defendant TEXT NOT NULL,
			global_facts TEXT NOT NULL,
			notes TEXT,
			last_strategy_analysis TEXT,
			last_modified TIMESTAMPTZ DEFAULT NOW(),
			created_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createCases); err != nil {
		return err
	}

	// Create events table
	createEvents := `
		CREATE TABLE IF NOT EXISTS ` + tables.Events + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			case_id UUID NOT NULL REFERENCES ` + tables.Cases + `(id) ON DELETE CASCADE,
			date TIMESTAMPTZ NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL
		)
	`
	if _, err := pool.Exec(ctx, createEvents); err != nil {
		return err
	}

	// Create evidence table
	createEvidence := `
		CREATE TABLE IF NOT EXISTS ` + tables.Evidence + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			case_id UUID NOT NULL REFERENCES ` + tables.Cases + `(id) ON DELETE CASCADE,
			filename TEXT NOT NULL,
			mime_type TEXT NOT NULL,
			data BYTEA NOT NULL,
			size BIGINT NOT NULL,
			uploaded_at TIMESTAMPTZ DEFAULT NOW(),
			ocr_text TEXT
		)
	`
	if _, err := pool.Exec(ctx, createEvidence); err != nil {
		return err
	}

	// Create drafts table. case_id is intentionally NOT a foreign key:
	// drafts survive case deletion.
	createDrafts := `
		CREATE TABLE IF NOT EXISTS ` + tables.Drafts + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			case_id UUID NOT NULL,
			filing_type_id TEXT NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createDrafts); err != nil {
		return err
	}

	// Create indexes
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `cases_last_modified ON ` + tables.Cases + `(last_modified DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `events_case_date ON ` + tables.Events + `(case_id, date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `evidence_case_id ON ` + tables.Evidence + `(case_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `drafts_case_updated ON ` + tables.Drafts + `(case_id, updated_at DESC)`,
	}
	for _, idx := range indexes {
		if _, err := pool.Exec(ctx, idx); err != nil {
			return err
		}
	}

	return nil
}

func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	// Drop in dependency order
	drops := []string{
		`DROP TABLE IF EXISTS ` + tables.Drafts + ` CASCADE`,
		`DROP TABLE IF EXISTS ` + tables.Evidence + ` CASCADE`,
		`DROP TABLE IF EXISTS ` + tables.Events + ` CASCADE`,
		`DROP TABLE IF EXISTS ` + tables.Cases + ` CASCADE`,
	}
	for _, drop := range drops {
		if _, err := pool.Exec(ctx, drop); err != nil {
			return err
		}
	}
	return nil
}

func seedDemoCase(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	caseID := uuid.NewString()
	now := time.Now()

	insertCase := `
		INSERT INTO ` + tables.Cases + ` (id, nickname, jurisdiction, case_number, court_name,
			judge, plaintiff, defendant, global_facts, last_modified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
	`
	_, err := pool.Exec(ctx, insertCase,
		caseID,
		"Demo: Acme v. Beta",
		"Federal - District of Nevada (D. Nev.)",
		"2:24-cv-00100",
		"United States District Court, District of Nevada",
		"Hon. Jane Doe",
		"Acme Inc",
		"Beta LLC",
		"Acme alleges Beta misappropriated trade secrets relating to its widget designs after a failed acquisition in early 2024.",
		now,
	)
	if err != nil {
		return err
	}

	insertEvent := `
		INSERT INTO ` + tables.Events + ` (id, case_id, date, title, description, type)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	events := []struct {
		daysAgo     int
		title, desc string
		eventType   string
	}{
		{90, "Complaint filed", "Initial complaint with five causes of action", "FILING"},
		{60, "Motion to dismiss filed", "Beta moved to dismiss counts III-V", "FILING"},
		{30, "Hearing on motion to dismiss", "Argument heard, matter taken under submission", "HEARING"},
	}
	for _, e := range events {
		_, err := pool.Exec(ctx, insertEvent,
			uuid.NewString(),
			caseID,
			now.AddDate(0, 0, -e.daysAgo),
			e.title,
			e.desc,
			e.eventType,
		)
		if err != nil {
			return err
		}
	}

	return nil
}
