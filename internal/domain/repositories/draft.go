package repositories

import (
	"context"

	"motionforge/internal/domain/models"
)

// DraftRepository defines data access operations for drafts.
type DraftRepository interface {
	// Save upserts a draft record
	Save(ctx context.Context, draft *models.Draft) error

	// GetByID retrieves a draft by ID
	GetByID(ctx context.Context, id string) (*models.Draft, error)

	// ListForCase retrieves all drafts for a case, ordered by
	// updated_at DESC
	ListForCase(ctx context.Context, caseID string) ([]models.Draft, error)

	// Delete removes a draft
	Delete(ctx context.Context, id string) error
}
