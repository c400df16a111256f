package drafting

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"motionforge/internal/filing"
)

func newTestWizard(t *testing.T, gen *mockGenerator, repo *mockDraftRepo) *Wizard {
	t.Helper()
	registry, err := filing.NewRegistry([]*filing.Template{threeSectionTemplate()})
	if err != nil {
		t.Fatalf("registry setup failed: %v", err)
	}
	return NewWizard(registry, newTestAssembler(gen, repo), testCase())
}

func TestWizard_Transitions(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path reaches COMPLETE", func(t *testing.T) {
		w := newTestWizard(t, &mockGenerator{}, &mockDraftRepo{})

		if w.State() != StateSelectTemplate {
			t.Fatalf("fresh wizard should be in SELECT_TEMPLATE, got %s", w.State())
		}
		if err := w.SelectTemplate("TEST_MOTION"); err != nil {
			t.Fatalf("SelectTemplate failed: %v", err)
		}
		if w.State() != StateAnswerQuestions {
			t.Fatalf("expected ANSWER_QUESTIONS, got %s", w.State())
		}
		if err := w.Answer("relief", "sanctions"); err != nil {
			t.Fatalf("Answer failed: %v", err)
		}

		result, err := w.Generate(ctx, nil)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if result.Draft == nil {
			t.Fatal("expected a draft")
		}
		if w.State() != StateComplete {
			t.Errorf("expected COMPLETE, got %s", w.State())
		}
	})

	t.Run("unknown template refused", func(t *testing.T) {
		w := newTestWizard(t, &mockGenerator{}, &mockDraftRepo{})
		if err := w.SelectTemplate("NOPE"); err == nil {
			t.Error("expected error for unknown template")
		}
		if w.State() != StateSelectTemplate {
			t.Errorf("failed selection must not advance, got %s", w.State())
		}
	})

	t.Run("undeclared question refused", func(t *testing.T) {
		w := newTestWizard(t, &mockGenerator{}, &mockDraftRepo{})
		if err := w.SelectTemplate("TEST_MOTION"); err != nil {
			t.Fatal(err)
		}
		if err := w.Answer("not_a_question", "value"); err == nil {
			t.Error("expected error for undeclared question")
		}
	})

	t.Run("back clears answers", func(t *testing.T) {
		w := newTestWizard(t, &mockGenerator{}, &mockDraftRepo{})
		if err := w.SelectTemplate("TEST_MOTION"); err != nil {
			t.Fatal(err)
		}
		if err := w.Answer("relief", "sanctions"); err != nil {
			t.Fatal(err)
		}
		if err := w.Back(); err != nil {
			t.Fatalf("Back failed: %v", err)
		}
		if w.State() != StateSelectTemplate {
			t.Errorf("expected SELECT_TEMPLATE after Back, got %s", w.State())
		}

		// Re-select and confirm the previous answers are gone
		if err := w.SelectTemplate("TEST_MOTION"); err != nil {
			t.Fatal(err)
		}
		if answers := w.Answers(); len(answers) != 0 {
			t.Errorf("expected empty answers after Back, got %v", answers)
		}
	})

	t.Run("generate is invalid before answering stage", func(t *testing.T) {
		w := newTestWizard(t, &mockGenerator{}, &mockDraftRepo{})
		if _, err := w.Generate(ctx, nil); err == nil {
			t.Error("expected error generating from SELECT_TEMPLATE")
		}
	})

	t.Run("back is invalid outside answering stage", func(t *testing.T) {
		w := newTestWizard(t, &mockGenerator{}, &mockDraftRepo{})
		if err := w.Back(); err == nil {
			t.Error("expected error going back from SELECT_TEMPLATE")
		}
	})
}

func TestWizard_ConcurrentGenerate(t *testing.T) {
	gen := &mockGenerator{delay: 50 * time.Millisecond}
	w := newTestWizard(t, gen, &mockDraftRepo{})
	if err := w.SelectTemplate("TEST_MOTION"); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = w.Generate(context.Background(), nil)
		}(i)
	}
	wg.Wait()

	// Exactly one run wins; the loser is refused, not raced
	var failures int
	for _, err := range errs {
		if err != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("expected exactly one refused Generate, got %d failures: %v", failures, errs)
	}
	if w.State() != StateComplete {
		t.Errorf("expected COMPLETE, got %s", w.State())
	}
}

func TestWizard_GenerationErrorReturnsToAnswering(t *testing.T) {
	// A missing party makes the caption abort, which surfaces as a
	// generation error rather than an absorbed section failure
	registry, err := filing.NewRegistry([]*filing.Template{threeSectionTemplate()})
	if err != nil {
		t.Fatal(err)
	}
	c := testCase()
	c.Defendant = ""
	w := NewWizard(registry, newTestAssembler(&mockGenerator{}, &mockDraftRepo{}), c)

	if err := w.SelectTemplate("TEST_MOTION"); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Generate(context.Background(), nil); err == nil {
		t.Fatal("expected generation error")
	}
	if w.State() != StateAnswerQuestions {
		t.Errorf("failed generation should return to ANSWER_QUESTIONS, got %s", w.State())
	}
}

func TestWizard_CancelledGenerateRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gen := &mockGenerator{}
	gen.onCall = func(call int) {
		if call == 0 {
			cancel()
		}
	}
	w := newTestWizard(t, gen, &mockDraftRepo{})
	if err := w.SelectTemplate("TEST_MOTION"); err != nil {
		t.Fatal(err)
	}

	_, err := w.Generate(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if w.State() != StateAnswerQuestions {
		t.Errorf("cancelled generation should return to ANSWER_QUESTIONS, got %s", w.State())
	}

	// A fresh context retries cleanly
	gen.onCall = nil
	if _, err := w.Generate(context.Background(), nil); err != nil {
		t.Fatalf("retry after cancellation failed: %v", err)
	}
	if w.State() != StateComplete {
		t.Errorf("expected COMPLETE after retry, got %s", w.State())
	}
}
