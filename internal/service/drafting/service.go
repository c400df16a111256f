package drafting

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"motionforge/internal/config"
	"motionforge/internal/domain"
	"motionforge/internal/domain/models"
	"motionforge/internal/domain/repositories"
	"motionforge/internal/domain/services"
	"motionforge/internal/filing"
)

// draftService implements the DraftService interface
type draftService struct {
	registry  *filing.Registry
	assembler *Assembler
	generator services.SectionGenerator
	draftRepo repositories.DraftRepository
	caseRepo  repositories.CaseRepository
	logger    *slog.Logger
}

// NewDraftService creates a new draft service
func NewDraftService(
	registry *filing.Registry,
	assembler *Assembler,
	generator services.SectionGenerator,
	draftRepo repositories.DraftRepository,
	caseRepo repositories.CaseRepository,
	logger *slog.Logger,
) services.DraftService {
	return &draftService{
		registry:  registry,
		assembler: assembler,
		generator: generator,
		draftRepo: draftRepo,
		caseRepo:  caseRepo,
		logger:    logger,
	}
}

// GenerateDraft runs the assembly pipeline for a case and filing type.
func (s *draftService) GenerateDraft(
	ctx context.Context,
	caseID string,
	req *services.GenerateDraftRequest,
	onProgress services.ProgressFunc,
) (*services.GenerateResult, error) {
	if err := s.validateGenerateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	tmpl, ok := s.registry.Get(req.FilingTypeID)
	if !ok {
		return nil, fmt.Errorf("filing type %s: %w", req.FilingTypeID, domain.ErrNotFound)
	}

	c, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	return s.assembler.Assemble(ctx, tmpl, c, req.Answers, onProgress)
}

// GetDraft retrieves a draft by ID
func (s *draftService) GetDraft(ctx context.Context, id string) (*models.Draft, error) {
	return s.draftRepo.GetByID(ctx, id)
}

// ListDraftsForCase retrieves all drafts for a case
func (s *draftService) ListDraftsForCase(ctx context.Context, caseID string) ([]models.Draft, error) {
	return s.draftRepo.ListForCase(ctx, caseID)
}

// UpdateDraft edits a draft's title and/or content after generation
func (s *draftService) UpdateDraft(ctx context.Context, id string, req *services.UpdateDraftRequest) (*models.Draft, error) {
	if req.Title == nil && req.Content == nil {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}
	if req.Title != nil {
		if err := validation.Validate(*req.Title,
			validation.Required, validation.Length(1, config.MaxDraftTitleLength)); err != nil {
			return nil, fmt.Errorf("%w: title: %v", domain.ErrValidation, err)
		}
	}

	draft, err := s.draftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		draft.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		draft.Content = *req.Content
	}
	draft.UpdatedAt = time.Now()

	if err := s.draftRepo.Save(ctx, draft); err != nil {
		return nil, err
	}

	s.logger.Info("draft updated", "id", draft.ID)

	return draft, nil
}

// DeleteDraft deletes a draft
func (s *draftService) DeleteDraft(ctx context.Context, id string) error {
	if err := s.draftRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("draft deleted", "id", id)
	return nil
}

// RefineDraft rewrites draft content per an editing instruction. The
// rewrite is fail-safe: on provider error or empty output the stored
// text is left untouched and returned as-is.
func (s *draftService) RefineDraft(ctx context.Context, id string, req *services.RefineDraftRequest) (*models.Draft, error) {
	if strings.TrimSpace(req.Instruction) == "" {
		return nil, fmt.Errorf("%w: instruction is required", domain.ErrValidation)
	}

	draft, err := s.draftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target := draft.Content
	if strings.TrimSpace(req.Selection) != "" {
		if !strings.Contains(draft.Content, req.Selection) {
			return nil, fmt.Errorf("%w: selection not found in draft content", domain.ErrValidation)
		}
		target = req.Selection
	}

	prompt := fmt.Sprintf(`You are a legal editor.
Instruction: %s

Original Text:
"%s"

Output ONLY the edited text. Do not add conversational filler.`, req.Instruction, target)

	refined, err := s.generator.GenerateSection(ctx, prompt)
	if err != nil || strings.TrimSpace(refined) == "" {
		if err != nil {
			s.logger.Warn("refine failed, keeping original text", "draft_id", id, "error", err)
		}
		return draft, nil
	}

	if target == draft.Content {
		draft.Content = refined
	} else {
		draft.Content = strings.Replace(draft.Content, target, refined, 1)
	}
	draft.UpdatedAt = time.Now()

	if err := s.draftRepo.Save(ctx, draft); err != nil {
		return nil, err
	}

	s.logger.Info("draft refined", "id", draft.ID)

	return draft, nil
}

func (s *draftService) validateGenerateRequest(req *services.GenerateDraftRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.FilingTypeID, validation.Required),
	); err != nil {
		return err
	}
	for id, answer := range req.Answers {
		if len(answer) > config.MaxAnswerLength {
			return fmt.Errorf("answer %q exceeds %d characters", id, config.MaxAnswerLength)
		}
	}
	return nil
}
