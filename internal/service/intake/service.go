package intake

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"motionforge/internal/config"
	"motionforge/internal/domain"
	"motionforge/internal/domain/models"
	"motionforge/internal/domain/repositories"
	"motionforge/internal/domain/services"
)

// caseService implements the CaseService interface
type caseService struct {
	caseRepo  repositories.CaseRepository
	txManager repositories.TransactionManager
	provider  services.GenerationProvider
	logger    *slog.Logger
}

// NewCaseService creates a new case service
func NewCaseService(
	caseRepo repositories.CaseRepository,
	txManager repositories.TransactionManager,
	provider services.GenerationProvider,
	logger *slog.Logger,
) services.CaseService {
	return &caseService{
		caseRepo:  caseRepo,
		txManager: txManager,
		provider:  provider,
		logger:    logger,
	}
}

// CreateCase creates a case profile from the intake form
func (s *caseService) CreateCase(ctx context.Context, req *services.CreateCaseRequest) (*models.CaseProfile, error) {
	if err := validateCaseFields(req.Nickname, req.Plaintiff, req.Defendant, req.GlobalFacts); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	c := &models.CaseProfile{
		ID:           uuid.NewString(),
		Nickname:     strings.TrimSpace(req.Nickname),
		Jurisdiction: models.Jurisdiction(req.Jurisdiction),
		CaseNumber:   strings.TrimSpace(req.CaseNumber),
		CourtName:    strings.TrimSpace(req.CourtName),
		Judge:        strings.TrimSpace(req.Judge),
		Plaintiff:    strings.TrimSpace(req.Plaintiff),
		Defendant:    strings.TrimSpace(req.Defendant),
		GlobalFacts:  req.GlobalFacts,
		Events:       []models.CaseEvent{},
		LastModified: now,
		CreatedAt:    now,
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		c.Notes = &notes
	}

	if err := s.caseRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("case created",
		"id", c.ID,
		"nickname", c.Nickname,
	)

	return c, nil
}

// GetCase retrieves a case with its timeline
func (s *caseService) GetCase(ctx context.Context, id string) (*models.CaseProfile, error) {
	return s.caseRepo.GetByID(ctx, id)
}

// ListCases retrieves all cases, most recently modified first
func (s *caseService) ListCases(ctx context.Context) ([]models.CaseProfile, error) {
	return s.caseRepo.List(ctx)
}

// UpdateCase replaces the editable fields of a case
func (s *caseService) UpdateCase(ctx context.Context, id string, req *services.UpdateCaseRequest) (*models.CaseProfile, error) {
	if err := validateCaseFields(req.Nickname, req.Plaintiff, req.Defendant, req.GlobalFacts); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	c, err := s.caseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Nickname = strings.TrimSpace(req.Nickname)
	c.Jurisdiction = models.Jurisdiction(req.Jurisdiction)
	c.CaseNumber = strings.TrimSpace(req.CaseNumber)
	c.CourtName = strings.TrimSpace(req.CourtName)
	c.Judge = strings.TrimSpace(req.Judge)
	c.Plaintiff = strings.TrimSpace(req.Plaintiff)
	c.Defendant = strings.TrimSpace(req.Defendant)
	c.GlobalFacts = req.GlobalFacts
	c.Notes = nil
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		c.Notes = &notes
	}
	c.LastModified = time.Now()

	if err := s.caseRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("case updated", "id", c.ID)

	return c, nil
}

// DeleteCase removes a case. Events and evidence cascade; drafts stay.
func (s *caseService) DeleteCase(ctx context.Context, id string) error {
	if err := s.caseRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("case deleted", "id", id)
	return nil
}

// AddEvent appends a timeline event and touches the case
func (s *caseService) AddEvent(ctx context.Context, caseID string, req *services.AddEventRequest) (*models.CaseEvent, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required),
		validation.Field(&req.Type, validation.Required,
			validation.In("FILING", "HEARING", "ORDER", "OTHER")),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	c, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	event := &models.CaseEvent{
		ID:          uuid.NewString(),
		CaseID:      caseID,
		Date:        date,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Type:        models.CaseEventType(req.Type),
	}

	// Insert the event and touch the case atomically
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.caseRepo.AddEvent(txCtx, event); err != nil {
			return err
		}
		c.LastModified = time.Now()
		return s.caseRepo.Save(txCtx, c)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("case event added", "case_id", caseID, "event_id", event.ID)

	return event, nil
}

// ExtractCase runs structured extraction over an uploaded document and
// returns prefill fields for the intake form
func (s *caseService) ExtractCase(ctx context.Context, data []byte, mimeType string) (*models.ExtractedCase, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty upload", domain.ErrValidation)
	}
	if len(data) > config.MaxEvidenceSize {
		return nil, fmt.Errorf("%w: upload exceeds %d bytes", domain.ErrValidation, config.MaxEvidenceSize)
	}

	extracted, err := s.provider.ExtractCase(ctx, data, mimeType)
	if err != nil {
		return nil, err
	}

	// Required fields per the extraction schema; a record missing them
	// is unusable as a prefill.
	if extracted.Nickname == "" || extracted.GlobalFacts == "" {
		return nil, fmt.Errorf("%w: extraction returned an incomplete record", domain.ErrExtraction)
	}

	s.logger.Info("case details extracted",
		"provider", s.provider.Name(),
		"nickname", extracted.Nickname,
	)

	return extracted, nil
}

// AnalyzeStrategy regenerates the strategy analysis for a case and
// caches it on the profile wholesale
func (s *caseService) AnalyzeStrategy(ctx context.Context, caseID string) (string, error) {
	c, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		return "", err
	}

	analysis, err := s.provider.GenerateSection(ctx, strategyPrompt(c))
	if err != nil {
		return "", fmt.Errorf("generate strategy: %w", err)
	}

	c.LastStrategyAnalysis = &analysis
	c.LastModified = time.Now()
	if err := s.caseRepo.Save(ctx, c); err != nil {
		return "", err
	}

	s.logger.Info("strategy analysis updated", "case_id", caseID)

	return analysis, nil
}

// strategyPrompt builds the status-report prompt from the case context
// and timeline.
func strategyPrompt(c *models.CaseProfile) string {
	var events strings.Builder
	for _, e := range c.Events {
		fmt.Fprintf(&events, "- %s: %s (%s)\n", e.Date.Format("1/2/2006"), e.Title, e.Description)
	}
	if events.Len() == 0 {
		events.WriteString("No specific events logged.")
	}

	return fmt.Sprintf(`You are a senior strategic litigator. Analyze the following case and provide a "Status Report & Strategic Roadmap".

CASE CONTEXT:
Case: %s (%s)
Jurisdiction: %s
Judge: %s

FACTS:
%s

RECENT EVENTS/NOTES:
%s

OUTPUT FORMAT (Markdown):
1. **Current Posture**: Brief assessment of where the case stands.
2. **Key Risks**: What should we worry about?
3. **Recommended Actions**: 3 bullet points of what to file or do next.

Be concise, tactical, and aggressive where appropriate.`,
		c.Nickname, c.CaseNumber, c.Jurisdiction, c.Judge, c.GlobalFacts, events.String())
}

func validateCaseFields(nickname, plaintiff, defendant, globalFacts string) error {
	if strings.TrimSpace(nickname) == "" {
		return fmt.Errorf("nickname is required")
	}
	if len(nickname) > config.MaxCaseNicknameLength {
		return fmt.Errorf("nickname exceeds %d characters", config.MaxCaseNicknameLength)
	}
	if len(plaintiff) > config.MaxPartyNameLength || len(defendant) > config.MaxPartyNameLength {
		return fmt.Errorf("party name exceeds %d characters", config.MaxPartyNameLength)
	}
	if len(globalFacts) > config.MaxGlobalFactsLength {
		return fmt.Errorf("global facts exceed %d characters", config.MaxGlobalFactsLength)
	}
	return nil
}
