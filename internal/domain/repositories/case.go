package repositories

import (
	"context"

	"motionforge/internal/domain/models"
)

// CaseRepository defines data access operations for case profiles.
// Saves are whole-record upserts keyed by id (last-writer-wins; the
// workspace is single-user by design).
type CaseRepository interface {
	// Save upserts a case profile record
	Save(ctx context.Context, c *models.CaseProfile) error

	// GetByID retrieves a case with its events (newest first)
	GetByID(ctx context.Context, id string) (*models.CaseProfile, error)

	// List retrieves all cases ordered by last_modified DESC,
	// without their event timelines
	List(ctx context.Context) ([]models.CaseProfile, error)

	// Delete removes a case; events and evidence cascade in the schema.
	// Drafts referencing the case are intentionally left in place.
	Delete(ctx context.Context, id string) error

	// AddEvent appends a timeline event to a case
	AddEvent(ctx context.Context, event *models.CaseEvent) error
}
