package filing

import (
	"strings"
	"testing"
)

func validTemplate() *Template {
	return &Template{
		ID:           "TEST_MOTION",
		Name:         "Test Motion",
		Jurisdiction: ScopeAny,
		Questions: []Question{
			{ID: "relief_sought", Label: "Relief sought", Kind: AnswerText},
		},
		Sections: []Section{
			{ID: "intro", Title: "Introduction", PromptSkeleton: "Draft an introduction for {plaintiff} seeking {relief_sought}."},
			{ID: "facts", Title: "Statement of Facts", PromptSkeleton: "Summarize: {globalFacts}"},
		},
	}
}

func TestValidateTemplate(t *testing.T) {
	t.Run("valid template passes", func(t *testing.T) {
		if err := ValidateTemplate(validTemplate()); err != nil {
			t.Fatalf("expected valid template, got error: %v", err)
		}
	})

	t.Run("missing sections rejected", func(t *testing.T) {
		tmpl := validTemplate()
		tmpl.Sections = nil
		if err := ValidateTemplate(tmpl); err == nil {
			t.Error("expected error for template without sections")
		}
	})

	t.Run("duplicate question id rejected", func(t *testing.T) {
		tmpl := validTemplate()
		tmpl.Questions = append(tmpl.Questions, Question{ID: "relief_sought", Label: "Again"})
		err := ValidateTemplate(tmpl)
		if err == nil || !strings.Contains(err.Error(), "duplicate question id") {
			t.Errorf("expected duplicate question id error, got: %v", err)
		}
	})

	t.Run("question shadowing case field rejected", func(t *testing.T) {
		tmpl := validTemplate()
		tmpl.Questions = append(tmpl.Questions, Question{ID: "plaintiff", Label: "Plaintiff"})
		err := ValidateTemplate(tmpl)
		if err == nil || !strings.Contains(err.Error(), "shadows a case field") {
			t.Errorf("expected shadowing error, got: %v", err)
		}
	})

	t.Run("duplicate section id rejected", func(t *testing.T) {
		tmpl := validTemplate()
		tmpl.Sections = append(tmpl.Sections, Section{ID: "intro", Title: "Intro Again", PromptSkeleton: "More."})
		err := ValidateTemplate(tmpl)
		if err == nil || !strings.Contains(err.Error(), "duplicate section id") {
			t.Errorf("expected duplicate section id error, got: %v", err)
		}
	})

	t.Run("unresolved placeholder rejected", func(t *testing.T) {
		tmpl := validTemplate()
		tmpl.Sections[0].PromptSkeleton = "Draft for {nobody_declared_this}."
		err := ValidateTemplate(tmpl)
		if err == nil || !strings.Contains(err.Error(), "unresolved placeholders") {
			t.Errorf("expected unresolved placeholder error, got: %v", err)
		}
	})

	t.Run("section without title rejected", func(t *testing.T) {
		tmpl := validTemplate()
		tmpl.Sections[1].Title = ""
		if err := ValidateTemplate(tmpl); err == nil {
			t.Error("expected error for section without title")
		}
	})
}

func TestNewRegistry(t *testing.T) {
	t.Run("indexes templates in order", func(t *testing.T) {
		a := validTemplate()
		b := validTemplate()
		b.ID = "SECOND"

		registry, err := NewRegistry([]*Template{a, b})
		if err != nil {
			t.Fatalf("NewRegistry failed: %v", err)
		}
		if registry.Len() != 2 {
			t.Errorf("expected 2 templates, got %d", registry.Len())
		}

		list := registry.List()
		if list[0].ID != "TEST_MOTION" || list[1].ID != "SECOND" {
			t.Errorf("expected registration order preserved, got %s, %s", list[0].ID, list[1].ID)
		}

		if _, ok := registry.Get("SECOND"); !ok {
			t.Error("Get failed for registered template")
		}
		if _, ok := registry.Get("UNKNOWN"); ok {
			t.Error("Get succeeded for unknown template")
		}
	})

	t.Run("duplicate template id rejected", func(t *testing.T) {
		_, err := NewRegistry([]*Template{validTemplate(), validTemplate()})
		if err == nil || !strings.Contains(err.Error(), "duplicate template id") {
			t.Errorf("expected duplicate template id error, got: %v", err)
		}
	})

	t.Run("invalid template fails registration", func(t *testing.T) {
		bad := validTemplate()
		bad.Name = ""
		if _, err := NewRegistry([]*Template{bad}); err == nil {
			t.Error("expected registration to fail for invalid template")
		}
	})
}

func TestBuiltinTemplates(t *testing.T) {
	templates := BuiltinTemplates()
	if len(templates) != 5 {
		t.Fatalf("expected 5 builtin templates, got %d", len(templates))
	}

	if _, err := NewRegistry(templates); err != nil {
		t.Fatalf("builtin catalog failed validation: %v", err)
	}

	wantIDs := []string{TypeTRO, TypeSanctionsRule11, TypeDismissStructural, TypeOppositionGeneric, TypeCustomMotion}
	for i, tmpl := range templates {
		if tmpl.ID != wantIDs[i] {
			t.Errorf("template %d: expected id %s, got %s", i, wantIDs[i], tmpl.ID)
		}
	}

	// The custom motion template must declare the title question its
	// caption logic depends on.
	custom := templates[4]
	found := false
	for _, q := range custom.Questions {
		if q.ID == MotionTitleQuestion {
			found = true
		}
	}
	if !found {
		t.Errorf("custom motion template missing %s question", MotionTitleQuestion)
	}
}

func TestStripTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no tokens", "plain text", "plain text"},
		{"single token", "before {token} after", "before  after"},
		{"multiple tokens", "{a}{b}{c}", ""},
		{"invalid token shapes kept", "{9bad} {with space} {}", "{9bad} {with space} {}"},
		{"injection attempt stripped", "sneaky {globalFacts} value", "sneaky  value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripTokens(tt.input); got != tt.want {
				t.Errorf("StripTokens(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("{plaintiff} sues {defendant}; {plaintiff} again")
	want := []string{"plaintiff", "defendant"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}
