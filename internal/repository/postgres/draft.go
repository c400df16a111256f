package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"motionforge/internal/domain"
	"motionforge/internal/domain/models"
	"motionforge/internal/domain/repositories"
)

// PostgresDraftRepository implements the DraftRepository interface
type PostgresDraftRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewDraftRepository creates a new draft repository
func NewDraftRepository(config *RepositoryConfig) repositories.DraftRepository {
	return &PostgresDraftRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Save upserts a draft record
func (r *PostgresDraftRepository) Save(ctx context.Context, draft *models.Draft) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, case_id, filing_type_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			updated_at = EXCLUDED.updated_at
	`, r.tables.Drafts)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		draft.ID,
		draft.CaseID,
		draft.FilingTypeID,
		draft.Title,
		draft.Content,
		draft.CreatedAt,
		draft.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}

	return nil
}

// GetByID retrieves a draft by ID
func (r *PostgresDraftRepository) GetByID(ctx context.Context, id string) (*models.Draft, error) {
	query := fmt.Sprintf(`
		SELECT id, case_id, filing_type_id, title, content, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Drafts)

	var draft models.Draft
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&draft.ID,
		&draft.CaseID,
		&draft.FilingTypeID,
		&draft.Title,
		&draft.Content,
		&draft.CreatedAt,
		&draft.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("draft %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}

	return &draft, nil
}

// ListForCase retrieves all drafts for a case, ordered by updated_at DESC
func (r *PostgresDraftRepository) ListForCase(ctx context.Context, caseID string) ([]models.Draft, error) {
	query := fmt.Sprintf(`
		SELECT id, case_id, filing_type_id, title, content, created_at, updated_at
		FROM %s
		WHERE case_id = $1
		ORDER BY updated_at DESC
	`, r.tables.Drafts)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	var drafts []models.Draft
	for rows.Next() {
		var draft models.Draft
		err := rows.Scan(
			&draft.ID,
			&draft.CaseID,
			&draft.FilingTypeID,
			&draft.Title,
			&draft.Content,
			&draft.CreatedAt,
			&draft.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		drafts = append(drafts, draft)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate drafts: %w", err)
	}

	if drafts == nil {
		drafts = []models.Draft{}
	}

	return drafts, nil
}

// Delete removes a draft
func (r *PostgresDraftRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Drafts)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("draft %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
