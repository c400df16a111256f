package services

import (
	"context"

	"motionforge/internal/domain/models"
)

// GenerateDraftRequest starts an assembly run for a case.
type GenerateDraftRequest struct {
	FilingTypeID string            `json:"filing_type_id"`
	Answers      map[string]string `json:"answers"`
}

// UpdateDraftRequest edits a draft after generation. Nil fields are
// left unchanged.
type UpdateDraftRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// RefineDraftRequest rewrites a draft's content (or a selection of it)
// per a plain-language editing instruction.
type RefineDraftRequest struct {
	Instruction string `json:"instruction"`
	Selection   string `json:"selection"` // empty = whole content
}

// Progress reports assembly state to the caller: which section is
// currently generating and how far along the run is. Percent is
// monotonically non-decreasing and reaches 100 exactly once.
type Progress struct {
	CompletedSections int    `json:"completed_sections"`
	TotalSections     int    `json:"total_sections"`
	Percent           int    `json:"percent"`
	CurrentSection    string `json:"current_section,omitempty"`
}

// ProgressFunc receives progress updates during an assembly run.
type ProgressFunc func(Progress)

// GenerateResult pairs the assembled draft with its persistence
// outcome: a draft that failed to save is still returned to the caller.
type GenerateResult struct {
	Draft     *models.Draft `json:"draft"`
	Persisted bool          `json:"persisted"`
}

// DraftService defines business operations for drafts.
type DraftService interface {
	// GenerateDraft runs the assembly pipeline for the given case and
	// filing type. onProgress may be nil.
	GenerateDraft(ctx context.Context, caseID string, req *GenerateDraftRequest, onProgress ProgressFunc) (*GenerateResult, error)

	GetDraft(ctx context.Context, id string) (*models.Draft, error)
	ListDraftsForCase(ctx context.Context, caseID string) ([]models.Draft, error)
	UpdateDraft(ctx context.Context, id string, req *UpdateDraftRequest) (*models.Draft, error)
	DeleteDraft(ctx context.Context, id string) error

	// RefineDraft rewrites draft content per an instruction. The
	// rewrite is fail-safe: on provider error the original text is
	// kept untouched.
	RefineDraft(ctx context.Context, id string, req *RefineDraftRequest) (*models.Draft, error)
}
