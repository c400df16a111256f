package filing

import (
	"os"
	"path/filepath"
	"testing"
)

const yamlTemplate = `id: MOTION_CONTINUANCE
name: Motion for Continuance
description: Request to move a hearing date.
jurisdiction: ANY
questions:
  - id: reason
    label: Reason for continuance
    kind: textarea
sections:
  - id: body
    title: Motion
    prompt: "Draft a motion for continuance for {plaintiff} because {reason}."
`

func TestLoadDir(t *testing.T) {
	t.Run("loads yaml templates in name order", func(t *testing.T) {
		dir := t.TempDir()
		second := yamlTemplate
		if err := os.WriteFile(filepath.Join(dir, "b_continuance.yaml"), []byte(second), 0o644); err != nil {
			t.Fatal(err)
		}
		first := `id: MOTION_FIRST
name: First Motion
jurisdiction: ANY
sections:
  - id: body
    title: Motion
    prompt: "Draft it."
`
		if err := os.WriteFile(filepath.Join(dir, "a_first.yml"), []byte(first), 0o644); err != nil {
			t.Fatal(err)
		}
		// Non-template files are ignored
		if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("not a template"), 0o644); err != nil {
			t.Fatal(err)
		}

		templates, err := LoadDir(dir)
		if err != nil {
			t.Fatalf("LoadDir failed: %v", err)
		}
		if len(templates) != 2 {
			t.Fatalf("expected 2 templates, got %d", len(templates))
		}
		if templates[0].ID != "MOTION_FIRST" || templates[1].ID != "MOTION_CONTINUANCE" {
			t.Errorf("wrong order: %s, %s", templates[0].ID, templates[1].ID)
		}

		tmpl := templates[1]
		if tmpl.Sections[0].PromptSkeleton != "Draft a motion for continuance for {plaintiff} because {reason}." {
			t.Errorf("prompt skeleton not mapped: %q", tmpl.Sections[0].PromptSkeleton)
		}
		if tmpl.Questions[0].Kind != AnswerTextarea {
			t.Errorf("question kind not mapped: %q", tmpl.Questions[0].Kind)
		}

		// Loaded templates pass registry validation
		if _, err := NewRegistry(templates); err != nil {
			t.Errorf("loaded templates should validate: %v", err)
		}
	})

	t.Run("malformed yaml fails", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("id: [unclosed"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadDir(dir); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("missing directory fails", func(t *testing.T) {
		if _, err := LoadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}
