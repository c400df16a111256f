package filing

import (
	"fmt"
	"regexp"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// placeholderPattern matches {name}-style tokens in prompt skeletons.
var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Registry is an immutable lookup table of filing templates, built once
// at process start. Every template is validated on the way in, so an
// unresolved placeholder or duplicate section id is a startup failure
// rather than a mid-generation surprise.
type Registry struct {
	templates map[string]*Template
	order     []string
}

// NewRegistry validates and indexes the given templates.
func NewRegistry(templates []*Template) (*Registry, error) {
	r := &Registry{
		templates: make(map[string]*Template, len(templates)),
	}

	for _, tmpl := range templates {
		if err := ValidateTemplate(tmpl); err != nil {
			return nil, fmt.Errorf("template %q: %w", tmpl.ID, err)
		}
		if _, exists := r.templates[tmpl.ID]; exists {
			return nil, fmt.Errorf("template %q: duplicate template id", tmpl.ID)
		}
		r.templates[tmpl.ID] = tmpl
		r.order = append(r.order, tmpl.ID)
	}

	return r, nil
}

// Get returns the template with the given id, or false if unknown.
func (r *Registry) Get(id string) (*Template, bool) {
	tmpl, ok := r.templates[id]
	return tmpl, ok
}

// List returns all templates in registration order.
func (r *Registry) List() []*Template {
	out := make([]*Template, 0, len(r.templates))
	for _, id := range r.order {
		out = append(out, r.templates[id])
	}
	return out
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	return len(r.templates)
}

// ValidateTemplate checks the structural invariants of a template:
// non-empty sections, unique question and section ids, and every
// placeholder token resolvable to a case field or a declared question.
func ValidateTemplate(tmpl *Template) error {
	err := validation.ValidateStruct(tmpl,
		validation.Field(&tmpl.ID, validation.Required),
		validation.Field(&tmpl.Name, validation.Required),
		validation.Field(&tmpl.Jurisdiction, validation.Required,
			validation.In(ScopeFederal, ScopeState, ScopeAny)),
		validation.Field(&tmpl.Sections, validation.Required),
	)
	if err != nil {
		return err
	}

	questionIDs := make(map[string]bool, len(tmpl.Questions))
	for _, q := range tmpl.Questions {
		if q.ID == "" {
			return fmt.Errorf("question with empty id")
		}
		if questionIDs[q.ID] {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}
		if CaseFields[q.ID] {
			return fmt.Errorf("question id %q shadows a case field", q.ID)
		}
		questionIDs[q.ID] = true
	}

	sectionIDs := make(map[string]bool, len(tmpl.Sections))
	for _, s := range tmpl.Sections {
		if s.ID == "" || s.Title == "" {
			return fmt.Errorf("section %q: id and title are required", s.ID)
		}
		if sectionIDs[s.ID] {
			return fmt.Errorf("duplicate section id %q", s.ID)
		}
		sectionIDs[s.ID] = true

		if unresolved := unresolvedPlaceholders(s.PromptSkeleton, questionIDs); len(unresolved) > 0 {
			return fmt.Errorf("section %q: unresolved placeholders %v", s.ID, unresolved)
		}
	}

	return nil
}

// unresolvedPlaceholders returns the placeholder names in skeleton that
// are neither case fields nor declared question ids, sorted for
// deterministic error messages.
func unresolvedPlaceholders(skeleton string, questionIDs map[string]bool) []string {
	seen := make(map[string]bool)
	for _, match := range placeholderPattern.FindAllStringSubmatch(skeleton, -1) {
		name := match[1]
		if !CaseFields[name] && !questionIDs[name] {
			seen[name] = true
		}
	}

	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// StripTokens removes {name}-style tokens from a value so substituted
// text can never introduce a new placeholder. This keeps resolution
// order-independent: no replacement value is itself replaceable.
func StripTokens(s string) string {
	return placeholderPattern.ReplaceAllString(s, "")
}

// Placeholders returns the distinct placeholder names referenced by a
// skeleton, in first-appearance order.
func Placeholders(skeleton string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, match := range placeholderPattern.FindAllStringSubmatch(skeleton, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			out = append(out, match[1])
		}
	}
	return out
}
