package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"motionforge/internal/domain"
	"motionforge/internal/domain/models"
	"motionforge/internal/domain/repositories"
)

// PostgresEvidenceRepository implements the EvidenceRepository interface
type PostgresEvidenceRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewEvidenceRepository creates a new evidence repository
func NewEvidenceRepository(config *RepositoryConfig) repositories.EvidenceRepository {
	return &PostgresEvidenceRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Save upserts an evidence record including raw data
func (r *PostgresEvidenceRepository) Save(ctx context.Context, ev *models.Evidence) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, case_id, filename, mime_type, data, size, uploaded_at, ocr_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			filename = EXCLUDED.filename,
			mime_type = EXCLUDED.mime_type,
			data = EXCLUDED.data,
			size = EXCLUDED.size,
			ocr_text = EXCLUDED.ocr_text
	`, r.tables.Evidence)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		ev.ID,
		ev.CaseID,
		ev.Filename,
		ev.MimeType,
		ev.Data,
		ev.Size,
		ev.UploadedAt,
		ev.OCRText,
	)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("case %s: %w", ev.CaseID, domain.ErrNotFound)
		}
		return fmt.Errorf("save evidence: %w", err)
	}

	return nil
}

// GetByID retrieves an evidence record with its raw data
func (r *PostgresEvidenceRepository) GetByID(ctx context.Context, id string) (*models.Evidence, error) {
	query := fmt.Sprintf(`
		SELECT id, case_id, filename, mime_type, data, size, uploaded_at, ocr_text
		FROM %s
		WHERE id = $1
	`, r.tables.Evidence)

	var ev models.Evidence
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&ev.ID,
		&ev.CaseID,
		&ev.Filename,
		&ev.MimeType,
		&ev.Data,
		&ev.Size,
		&ev.UploadedAt,
		&ev.OCRText,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("evidence %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get evidence: %w", err)
	}

	return &ev, nil
}

// ListForCase retrieves evidence metadata for a case without raw data,
// ordered by uploaded_at DESC
func (r *PostgresEvidenceRepository) ListForCase(ctx context.Context, caseID string) ([]models.Evidence, error) {
	query := fmt.Sprintf(`
		SELECT id, case_id, filename, mime_type, size, uploaded_at, ocr_text
		FROM %s
		WHERE case_id = $1
		ORDER BY uploaded_at DESC
	`, r.tables.Evidence)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("list evidence: %w", err)
	}
	defer rows.Close()

	var items []models.Evidence
	for rows.Next() {
		var ev models.Evidence
		err := rows.Scan(
			&ev.ID,
			&ev.CaseID,
			&ev.Filename,
			&ev.MimeType,
			&ev.Size,
			&ev.UploadedAt,
			&ev.OCRText,
		)
		if err != nil {
			return nil, fmt.Errorf("scan evidence: %w", err)
		}
		items = append(items, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evidence: %w", err)
	}

	if items == nil {
		items = []models.Evidence{}
	}

	return items, nil
}

// SetOCRText overwrites the extracted text for an evidence record
func (r *PostgresEvidenceRepository) SetOCRText(ctx context.Context, id, text string) error {
	query := fmt.Sprintf(`UPDATE %s SET ocr_text = $1 WHERE id = $2`, r.tables.Evidence)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, text, id)
	if err != nil {
		return fmt.Errorf("set ocr text: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("evidence %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes an evidence record
func (r *PostgresEvidenceRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Evidence)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete evidence: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("evidence %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
