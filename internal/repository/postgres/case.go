package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"motionforge/internal/domain"
	"motionforge/internal/domain/models"
	"motionforge/internal/domain/repositories"
)

// PostgresCaseRepository implements the CaseRepository interface
type PostgresCaseRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewCaseRepository creates a new case repository
func NewCaseRepository(config *RepositoryConfig) repositories.CaseRepository {
	return &PostgresCaseRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Save upserts a case profile record. Whole-record replace keyed by id,
// matching the single-user last-writer-wins persistence contract.
func (r *PostgresCaseRepository) Save(ctx context.Context, c *models.CaseProfile) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, nickname, jurisdiction, case_number, court_name, judge,
			plaintiff, defendant, global_facts, notes, last_strategy_analysis,
			last_modified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			nickname = EXCLUDED.nickname,
			jurisdiction = EXCLUDED.jurisdiction,
			case_number = EXCLUDED.case_number,
			court_name = EXCLUDED.court_name,
			judge = EXCLUDED.judge,
			plaintiff = EXCLUDED.plaintiff,
			defendant = EXCLUDED.defendant,
			global_facts = EXCLUDED.global_facts,
			notes = EXCLUDED.notes,
			last_strategy_analysis = EXCLUDED.last_strategy_analysis,
			last_modified = EXCLUDED.last_modified
	`, r.tables.Cases)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		c.ID,
		c.Nickname,
		c.Jurisdiction,
		c.CaseNumber,
		c.CourtName,
		c.Judge,
		c.Plaintiff,
		c.Defendant,
		c.GlobalFacts,
		c.Notes,
		c.LastStrategyAnalysis,
		c.LastModified,
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save case: %w", err)
	}

	return nil
}

// GetByID retrieves a case with its event timeline, newest event first
func (r *PostgresCaseRepository) GetByID(ctx context.Context, id string) (*models.CaseProfile, error) {
	query := fmt.Sprintf(`
		SELECT id, nickname, jurisdiction, case_number, court_name, judge,
			plaintiff, defendant, global_facts, notes, last_strategy_analysis,
			last_modified, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Cases)

	var c models.CaseProfile
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Nickname,
		&c.Jurisdiction,
		&c.CaseNumber,
		&c.CourtName,
		&c.Judge,
		&c.Plaintiff,
		&c.Defendant,
		&c.GlobalFacts,
		&c.Notes,
		&c.LastStrategyAnalysis,
		&c.LastModified,
		&c.CreatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("case %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get case: %w", err)
	}

	events, err := r.listEvents(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Events = events

	return &c, nil
}

// List retrieves all cases ordered by last_modified DESC, without
// event timelines
func (r *PostgresCaseRepository) List(ctx context.Context) ([]models.CaseProfile, error) {
	query := fmt.Sprintf(`
		SELECT id, nickname, jurisdiction, case_number, court_name, judge,
			plaintiff, defendant, global_facts, notes, last_strategy_analysis,
			last_modified, created_at
		FROM %s
		ORDER BY last_modified DESC
	`, r.tables.Cases)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	defer rows.Close()

	var cases []models.CaseProfile
	for rows.Next() {
		var c models.CaseProfile
		err := rows.Scan(
			&c.ID,
			&c.Nickname,
			&c.Jurisdiction,
			&c.CaseNumber,
			&c.CourtName,
			&c.Judge,
			&c.Plaintiff,
			&c.Defendant,
			&c.GlobalFacts,
			&c.Notes,
			&c.LastStrategyAnalysis,
			&c.LastModified,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan case: %w", err)
		}
		cases = append(cases, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cases: %w", err)
	}

	if cases == nil {
		cases = []models.CaseProfile{}
	}

	return cases, nil
}

// Delete removes a case. Events and evidence cascade via foreign keys;
// drafts are left in place on purpose.
func (r *PostgresCaseRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Cases)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete case: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("case %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// AddEvent appends a timeline event to a case
func (r *PostgresCaseRepository) AddEvent(ctx context.Context, event *models.CaseEvent) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, case_id, date, title, description, type)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Events)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		event.ID,
		event.CaseID,
		event.Date,
		event.Title,
		event.Description,
		event.Type,
	)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("case %s: %w", event.CaseID, domain.ErrNotFound)
		}
		return fmt.Errorf("add event: %w", err)
	}

	return nil
}

// listEvents loads a case's timeline, newest first
func (r *PostgresCaseRepository) listEvents(ctx context.Context, caseID string) ([]models.CaseEvent, error) {
	query := fmt.Sprintf(`
		SELECT id, case_id, date, title, description, type
		FROM %s
		WHERE case_id = $1
		ORDER BY date DESC
	`, r.tables.Events)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []models.CaseEvent
	for rows.Next() {
		var e models.CaseEvent
		if err := rows.Scan(&e.ID, &e.CaseID, &e.Date, &e.Title, &e.Description, &e.Type); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	if events == nil {
		events = []models.CaseEvent{}
	}

	return events, nil
}
