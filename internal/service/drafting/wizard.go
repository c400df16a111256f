package drafting

import (
	"context"
	"fmt"
	"sync"

	"motionforge/internal/domain"
	"motionforge/internal/domain/models"
	"motionforge/internal/domain/services"
	"motionforge/internal/filing"
)

// WizardState is one stage of the filing wizard.
type WizardState string

const (
	StateSelectTemplate  WizardState = "SELECT_TEMPLATE"
	StateAnswerQuestions WizardState = "ANSWER_QUESTIONS"
	StateGenerating      WizardState = "GENERATING"
	StateComplete        WizardState = "COMPLETE"
)

// Wizard drives the three-stage filing flow for one case: pick a
// template, answer its questions, generate. Section-level failures are
// absorbed into draft content, so the wizard has no error state - it
// always reaches COMPLETE once generation finishes.
//
// The HTTP layer submits template, answers, and case id in one request
// and goes through DraftService directly. The Wizard is the stateful
// alternative for embedding callers (a CLI session, a future
// server-held form flow) that need back-navigation and answer staging
// between steps.
//
// A Wizard is for a single flow; create a new one per run.
type Wizard struct {
	registry  *filing.Registry
	assembler *Assembler

	mu       sync.Mutex
	state    WizardState
	caseRef  *models.CaseProfile
	selected *filing.Template
	answers  map[string]string
}

// NewWizard starts a wizard for the given case in SELECT_TEMPLATE.
func NewWizard(registry *filing.Registry, assembler *Assembler, c *models.CaseProfile) *Wizard {
	return &Wizard{
		registry:  registry,
		assembler: assembler,
		state:     StateSelectTemplate,
		caseRef:   c,
		answers:   make(map[string]string),
	}
}

// State returns the current wizard state.
func (w *Wizard) State() WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// SelectTemplate chooses a filing type and advances to
// ANSWER_QUESTIONS. Only valid from SELECT_TEMPLATE.
func (w *Wizard) SelectTemplate(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateSelectTemplate {
		return fmt.Errorf("cannot select template in state %s", w.state)
	}

	tmpl, ok := w.registry.Get(id)
	if !ok {
		return fmt.Errorf("filing type %s: %w", id, domain.ErrNotFound)
	}

	w.selected = tmpl
	w.state = StateAnswerQuestions
	return nil
}

// Back returns from ANSWER_QUESTIONS to SELECT_TEMPLATE, discarding
// the selection and answers - re-selection starts fresh.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateAnswerQuestions {
		return fmt.Errorf("cannot go back in state %s", w.state)
	}

	w.selected = nil
	w.answers = make(map[string]string)
	w.state = StateSelectTemplate
	return nil
}

// Answer records an answer for a declared question. Answers are all
// optional; no validation gates the forward transition.
func (w *Wizard) Answer(questionID, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateAnswerQuestions {
		return fmt.Errorf("cannot answer questions in state %s", w.state)
	}

	for _, q := range w.selected.Questions {
		if q.ID == questionID {
			w.answers[questionID] = value
			return nil
		}
	}
	return fmt.Errorf("question %s: not declared by template %s", questionID, w.selected.ID)
}

// Answers returns a copy of the collected answers.
func (w *Wizard) Answers() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make(map[string]string, len(w.answers))
	for k, v := range w.answers {
		out[k] = v
	}
	return out
}

// Generate runs the assembly pipeline and moves the wizard to
// COMPLETE. Valid only from ANSWER_QUESTIONS; a second concurrent call
// is refused rather than racing the first. Cancellation returns the
// wizard to ANSWER_QUESTIONS so the caller can retry.
func (w *Wizard) Generate(ctx context.Context, onProgress services.ProgressFunc) (*services.GenerateResult, error) {
	w.mu.Lock()
	if w.state != StateAnswerQuestions {
		w.mu.Unlock()
		return nil, fmt.Errorf("cannot generate in state %s", w.state)
	}
	tmpl := w.selected
	c := w.caseRef
	answers := make(map[string]string, len(w.answers))
	for k, v := range w.answers {
		answers[k] = v
	}
	w.state = StateGenerating
	w.mu.Unlock()

	result, err := w.assembler.Assemble(ctx, tmpl, c, answers, onProgress)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.state = StateAnswerQuestions
		return nil, err
	}

	w.state = StateComplete
	return result, nil
}
