package repositories

import (
	"context"

	"motionforge/internal/domain/models"
)

// EvidenceRepository defines data access operations for the evidence
// locker. Raw upload bytes are stored alongside the metadata; List
// omits them so the locker view stays cheap.
type EvidenceRepository interface {
	// Save upserts an evidence record, including raw data
	Save(ctx context.Context, ev *models.Evidence) error

	// GetByID retrieves an evidence record with its raw data
	GetByID(ctx context.Context, id string) (*models.Evidence, error)

	// ListForCase retrieves evidence metadata for a case (no raw data),
	// ordered by uploaded_at DESC
	ListForCase(ctx context.Context, caseID string) ([]models.Evidence, error)

	// SetOCRText overwrites the extracted text for an evidence record
	SetOCRText(ctx context.Context, id, text string) error

	// Delete removes an evidence record
	Delete(ctx context.Context, id string) error
}
