package drafting

import (
	"strings"
	"testing"

	"motionforge/internal/domain/models"
)

func testCase() *models.CaseProfile {
	return &models.CaseProfile{
		ID:           "case-1",
		Nickname:     "Acme v. Beta",
		Jurisdiction: models.JurisdictionDNev,
		CaseNumber:   "2:24-cv-100",
		CourtName:    "United States District Court, District of Nevada",
		Judge:        "Hon. Jane Doe",
		Plaintiff:    "Acme Inc",
		Defendant:    "Beta LLC",
		GlobalFacts:  "Beta breached the widget supply contract.",
	}
}

func TestResolve(t *testing.T) {
	t.Run("substitutes case fields and answers", func(t *testing.T) {
		got := Resolve(
			"Draft for {plaintiff} against {defendant} before {judge}, seeking {relief}.",
			testCase(),
			map[string]string{"relief": "an injunction"},
		)
		want := "Draft for Acme Inc against Beta LLC before Hon. Jane Doe, seeking an injunction."
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("empty global facts fall back to attached complaint", func(t *testing.T) {
		c := testCase()
		c.GlobalFacts = "   "
		got := Resolve("Facts: {globalFacts}", c, nil)
		if got != "Facts: See attached complaint." {
			t.Errorf("got %q", got)
		}
	})

	t.Run("empty case field falls back to case record pointer", func(t *testing.T) {
		c := testCase()
		c.Judge = ""
		got := Resolve("Before {judge}.", c, nil)
		if got != "Before (see case record)." {
			t.Errorf("got %q", got)
		}
	})

	t.Run("unanswered question resolves to empty string", func(t *testing.T) {
		got := Resolve("Relief: {relief}!", testCase(), map[string]string{})
		if got != "Relief: !" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("answer values cannot smuggle placeholders", func(t *testing.T) {
		got := Resolve(
			"Relief: {relief}",
			testCase(),
			map[string]string{"relief": "whatever {globalFacts} says"},
		)
		if strings.Contains(got, "{") || strings.Contains(got, "Beta breached") {
			t.Errorf("nested token must not expand, got %q", got)
		}
		if got != "Relief: whatever  says" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("answers never override case fields", func(t *testing.T) {
		got := Resolve(
			"Plaintiff is {plaintiff}.",
			testCase(),
			map[string]string{"plaintiff": "Mallory Corp"},
		)
		if got != "Plaintiff is Acme Inc." {
			t.Errorf("got %q", got)
		}
	})

	t.Run("no tokens survive resolution", func(t *testing.T) {
		got := Resolve(
			"{plaintiff} {defendant} {judge} {jurisdiction} {globalFacts} {q1} {q2}",
			testCase(),
			map[string]string{"q1": "answered"},
		)
		if strings.ContainsAny(got, "{}") {
			t.Errorf("unresolved tokens remain: %q", got)
		}
	})

	t.Run("pure function", func(t *testing.T) {
		c := testCase()
		answers := map[string]string{"relief": "sanctions"}
		first := Resolve("Seek {relief} for {plaintiff}.", c, answers)
		second := Resolve("Seek {relief} for {plaintiff}.", c, answers)
		if first != second {
			t.Errorf("resolution not deterministic: %q vs %q", first, second)
		}
	})
}
