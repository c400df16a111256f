package config

const (
	// MaxCaseNicknameLength is the maximum length for case nicknames.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (nicknames should be short and memorable).
	MaxCaseNicknameLength = 255

	// MaxPartyNameLength is the maximum length for plaintiff/defendant
	// names as they appear in the caption block.
	MaxPartyNameLength = 255

	// MaxDraftTitleLength is the maximum length for draft titles.
	MaxDraftTitleLength = 255

	// MaxAnswerLength bounds a single wizard answer. Answers are
	// interpolated into prompts, so an unbounded answer would blow the
	// generation context window.
	MaxAnswerLength = 8000

	// MaxGlobalFactsLength bounds the canonical case narrative.
	MaxGlobalFactsLength = 50000

	// MaxEvidenceSize is the maximum upload size for a single evidence
	// file (10MB), matching the request body limit.
	MaxEvidenceSize = 10 << 20
)
