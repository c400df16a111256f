package drafting

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"motionforge/internal/domain/models"
	"motionforge/internal/domain/repositories"
	"motionforge/internal/domain/services"
	"motionforge/internal/filing"
)

// Assembler runs the document assembly pipeline: caption, then one
// generation call per section in declared template order, then a
// single persisted draft. Sections run sequentially - later sections'
// prompts are written assuming the reader has already seen the earlier
// ones, and sequential order keeps progress reporting linear.
type Assembler struct {
	generator services.SectionGenerator
	draftRepo repositories.DraftRepository
	logger    *slog.Logger
	now       func() time.Time
}

// NewAssembler creates an assembler.
func NewAssembler(
	generator services.SectionGenerator,
	draftRepo repositories.DraftRepository,
	logger *slog.Logger,
) *Assembler {
	return &Assembler{
		generator: generator,
		draftRepo: draftRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// Assemble produces one draft for the given template, case, and
// answers. onProgress (may be nil) is invoked before each section with
// the section's title and after the last section with 100%, and is
// monotonically non-decreasing throughout.
//
// One failed section never aborts the run: the section slot gets a
// visible error marker and assembly continues. Context cancellation
// stops the run after the in-flight call; nothing is persisted then.
// A persistence failure after assembly is reported in the result, but
// the in-memory draft is still returned.
func (a *Assembler) Assemble(
	ctx context.Context,
	tmpl *filing.Template,
	c *models.CaseProfile,
	answers map[string]string,
	onProgress services.ProgressFunc,
) (*services.GenerateResult, error) {
	caption, err := BuildCaption(tmpl, c, answers)
	if err != nil {
		return nil, err
	}

	var body strings.Builder
	body.WriteString(caption)

	total := len(tmpl.Sections)
	for i, section := range tmpl.Sections {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("assembly cancelled before section %q: %w", section.Title, err)
		}

		report(onProgress, services.Progress{
			CompletedSections: i,
			TotalSections:     total,
			Percent:           i * 100 / total,
			CurrentSection:    section.Title,
		})

		prompt := Resolve(section.PromptSkeleton, c, answers)

		text, err := a.generator.GenerateSection(ctx, prompt)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("assembly cancelled during section %q: %w", section.Title, ctx.Err())
			}
			a.logger.Warn("section generation failed",
				"template", tmpl.ID,
				"section", section.ID,
				"error", err,
			)
			text = fmt.Sprintf("[Error generating section: %s]", section.Title)
		}

		body.WriteString("\n\n### ")
		body.WriteString(section.Title)
		body.WriteString("\n\n")
		body.WriteString(text)
	}

	report(onProgress, services.Progress{
		CompletedSections: total,
		TotalSections:     total,
		Percent:           100,
	})

	now := a.now()
	draft := &models.Draft{
		ID:           uuid.NewString(),
		CaseID:       c.ID,
		FilingTypeID: tmpl.ID,
		Title:        fmt.Sprintf("%s - %s", FilingTitle(tmpl, answers), now.Format("January 2, 2006")),
		Content:      body.String(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result := &services.GenerateResult{Draft: draft, Persisted: true}
	if err := a.draftRepo.Save(ctx, draft); err != nil {
		// The assembled content is still useful; surface the failure
		// but hand the draft back.
		a.logger.Error("draft persistence failed",
			"draft_id", draft.ID,
			"case_id", c.ID,
			"error", err,
		)
		result.Persisted = false
	}

	a.logger.Info("draft assembled",
		"draft_id", draft.ID,
		"case_id", c.ID,
		"template", tmpl.ID,
		"sections", total,
		"persisted", result.Persisted,
	)

	return result, nil
}

func report(onProgress services.ProgressFunc, p services.Progress) {
	if onProgress != nil {
		onProgress(p)
	}
}
