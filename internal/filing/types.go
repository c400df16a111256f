package filing

// JurisdictionScope restricts which court systems a template applies to.
type JurisdictionScope string

const (
	ScopeFederal JurisdictionScope = "FEDERAL"
	ScopeState   JurisdictionScope = "STATE"
	ScopeAny     JurisdictionScope = "ANY"
)

// AnswerKind selects the input widget for a wizard question.
type AnswerKind string

const (
	AnswerText     AnswerKind = "text"
	AnswerTextarea AnswerKind = "textarea"
	AnswerDate     AnswerKind = "date"
)

// Question is one wizard input. Its ID doubles as the placeholder key
// usable inside the owning template's prompt skeletons. Answers are
// session-only and never persisted.
type Question struct {
	ID          string     `json:"id" yaml:"id"`
	Label       string     `json:"label" yaml:"label"`
	Placeholder string     `json:"placeholder" yaml:"placeholder"`
	Kind        AnswerKind `json:"kind" yaml:"kind"`
	HelperText  string     `json:"helper_text,omitempty" yaml:"helper_text,omitempty"`
}

// Section is one titled unit of a filing's body. PromptSkeleton is the
// instruction sent to the generation provider after placeholder
// resolution; the section title becomes the document heading.
type Section struct {
	ID             string `json:"id" yaml:"id"`
	Title          string `json:"title" yaml:"title"`
	PromptSkeleton string `json:"prompt_skeleton" yaml:"prompt"`
}

// Template is an immutable specification of a filing's structure:
// the questions to ask and the sections to generate, in order.
type Template struct {
	ID           string            `json:"id" yaml:"id"`
	Name         string            `json:"name" yaml:"name"`
	Description  string            `json:"description" yaml:"description"`
	Jurisdiction JurisdictionScope `json:"jurisdiction" yaml:"jurisdiction"`
	Questions    []Question        `json:"questions" yaml:"questions"`
	Sections     []Section         `json:"sections" yaml:"sections"`
}

// CaseFields is the closed set of case-profile placeholder names every
// template may reference regardless of its declared questions.
var CaseFields = map[string]bool{
	"globalFacts":  true,
	"jurisdiction": true,
	"plaintiff":    true,
	"defendant":    true,
	"judge":        true,
}
