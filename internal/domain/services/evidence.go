package services

import (
	"context"

	"motionforge/internal/domain/models"
)

// UploadEvidenceRequest stores a new document in a case's evidence
// locker.
type UploadEvidenceRequest struct {
	Filename string
	MimeType string
	Data     []byte
}

// EvidenceService defines business operations for the evidence locker.
type EvidenceService interface {
	Upload(ctx context.Context, caseID string, req *UploadEvidenceRequest) (*models.Evidence, error)
	ListForCase(ctx context.Context, caseID string) ([]models.Evidence, error)
	Delete(ctx context.Context, id string) error

	// ExtractText populates OCRText for an evidence record: local
	// extraction where the format allows it (PDF text layer, HTML,
	// plain text), provider OCR otherwise. Re-running overwrites the
	// previous text wholesale.
	ExtractText(ctx context.Context, id string) (string, error)
}
