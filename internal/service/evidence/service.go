package evidence

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"motionforge/internal/config"
	"motionforge/internal/domain"
	"motionforge/internal/domain/models"
	"motionforge/internal/domain/repositories"
	"motionforge/internal/domain/services"
)

// NoTextExtracted is stored when local extraction and provider OCR
// both come back empty on an otherwise successful pass.
const NoTextExtracted = "No text could be extracted."

// evidenceService implements the EvidenceService interface
type evidenceService struct {
	evidenceRepo repositories.EvidenceRepository
	caseRepo     repositories.CaseRepository
	txManager    repositories.TransactionManager
	provider     services.GenerationProvider
	extractor    *localExtractor
	logger       *slog.Logger
}

// NewEvidenceService creates a new evidence service
func NewEvidenceService(
	evidenceRepo repositories.EvidenceRepository,
	caseRepo repositories.CaseRepository,
	txManager repositories.TransactionManager,
	provider services.GenerationProvider,
	logger *slog.Logger,
) services.EvidenceService {
	return &evidenceService{
		evidenceRepo: evidenceRepo,
		caseRepo:     caseRepo,
		txManager:    txManager,
		provider:     provider,
		extractor:    newLocalExtractor(),
		logger:       logger,
	}
}

// Upload stores a new document in the case's evidence locker
func (s *evidenceService) Upload(ctx context.Context, caseID string, req *services.UploadEvidenceRequest) (*models.Evidence, error) {
	if strings.TrimSpace(req.Filename) == "" {
		return nil, fmt.Errorf("%w: filename is required", domain.ErrValidation)
	}
	if len(req.Data) == 0 {
		return nil, fmt.Errorf("%w: empty upload", domain.ErrValidation)
	}
	if len(req.Data) > config.MaxEvidenceSize {
		return nil, fmt.Errorf("%w: upload exceeds %d bytes", domain.ErrValidation, config.MaxEvidenceSize)
	}

	// Verify the case exists before storing anything against it
	c, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	ev := &models.Evidence{
		ID:         uuid.NewString(),
		CaseID:     caseID,
		Filename:   req.Filename,
		MimeType:   req.MimeType,
		Data:       req.Data,
		Size:       int64(len(req.Data)),
		UploadedAt: time.Now(),
	}

	// Store the upload and touch the case atomically
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.evidenceRepo.Save(txCtx, ev); err != nil {
			return err
		}
		c.LastModified = time.Now()
		return s.caseRepo.Save(txCtx, c)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("evidence uploaded",
		"id", ev.ID,
		"case_id", caseID,
		"filename", ev.Filename,
		"size", ev.Size,
	)

	return ev, nil
}

// ListForCase retrieves evidence metadata for a case
func (s *evidenceService) ListForCase(ctx context.Context, caseID string) ([]models.Evidence, error) {
	return s.evidenceRepo.ListForCase(ctx, caseID)
}

// Delete removes an evidence record
func (s *evidenceService) Delete(ctx context.Context, id string) error {
	if err := s.evidenceRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("evidence deleted", "id", id)
	return nil
}

// ExtractText populates OCRText for an evidence record. Formats with
// an extractable text layer are handled locally; everything else goes
// through provider OCR. Re-running overwrites the previous text.
func (s *evidenceService) ExtractText(ctx context.Context, id string) (string, error) {
	ev, err := s.evidenceRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	text, ok, err := s.extractor.Extract(ev.Data, ev.MimeType)
	if err != nil {
		s.logger.Warn("local extraction failed, falling back to OCR",
			"id", id,
			"mime_type", ev.MimeType,
			"error", err,
		)
		ok = false
	}

	source := "local"
	if !ok {
		source = s.provider.Name()
		text, err = s.provider.PerformOCR(ctx, ev.Data, ev.MimeType)
		if err != nil {
			return "", fmt.Errorf("ocr: %w", err)
		}
	}

	// A successful pass over a blank or unreadable document still gets
	// a stored result, so re-runs are not mistaken for never-ran.
	if strings.TrimSpace(text) == "" {
		text = NoTextExtracted
	}

	if err := s.evidenceRepo.SetOCRText(ctx, id, text); err != nil {
		return "", err
	}

	s.logger.Info("evidence text extracted",
		"id", id,
		"source", source,
		"chars", len(text),
	)

	return text, nil
}
