package drafting

import (
	"strings"

	"motionforge/internal/domain/models"
	"motionforge/internal/filing"
)

// globalFactsFallback is substituted when a case has no narrative yet,
// so prompts stay grammatical instead of trailing off into nothing.
const globalFactsFallback = "See attached complaint."

// caseFieldFallback is substituted for any other empty case field.
const caseFieldFallback = "(see case record)"

// Resolve substitutes every placeholder in a prompt skeleton: case
// fields from the profile, everything else from the wizard answers.
// Unanswered questions resolve to the empty string - generation never
// blocks on an optional answer. Replacement values are stripped of
// {token} patterns first, so resolution is order-independent and a
// single pass is exact.
//
// Resolve is a pure function: same inputs, same output, no state.
func Resolve(skeleton string, c *models.CaseProfile, answers map[string]string) string {
	resolved := skeleton

	for field, value := range caseValues(c) {
		resolved = strings.ReplaceAll(resolved, "{"+field+"}", filing.StripTokens(value))
	}

	for key, value := range answers {
		// Answers never override case fields; registration already
		// rejects templates whose question ids shadow them.
		if filing.CaseFields[key] {
			continue
		}
		resolved = strings.ReplaceAll(resolved, "{"+key+"}", filing.StripTokens(value))
	}

	// Remaining tokens belong to declared-but-unanswered questions.
	return filing.StripTokens(resolved)
}

// caseValues maps the closed set of case placeholders to their values,
// with explicit fallbacks for empty fields.
func caseValues(c *models.CaseProfile) map[string]string {
	return map[string]string{
		"globalFacts":  orFallback(c.GlobalFacts, globalFactsFallback),
		"jurisdiction": orFallback(string(c.Jurisdiction), caseFieldFallback),
		"plaintiff":    orFallback(c.Plaintiff, caseFieldFallback),
		"defendant":    orFallback(c.Defendant, caseFieldFallback),
		"judge":        orFallback(c.Judge, caseFieldFallback),
	}
}

func orFallback(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
