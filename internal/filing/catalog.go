package filing

// baseStyle is the shared drafting preamble prepended to every built-in
// prompt skeleton.
const baseStyle = `You are a senior litigator drafting a legal motion.
Tone: Professional, authoritative, precise, and persuasive.
Format: Use Markdown. Use standard legal headings (I., II., III.).
Do not use conversational filler ("Here is the section you asked for"). Just output the legal text.
`

// Built-in filing type ids.
const (
	TypeTRO               = "TRO"
	TypeDismissStructural = "MOTION_DISMISS_STRUCTURAL"
	TypeSanctionsRule11   = "MOTION_SANCTIONS_RULE11"
	TypeOppositionGeneric = "OPPOSITION_GENERIC"
	TypeCustomMotion      = "CUSTOM_MOTION"
)

// MotionTitleQuestion is the CUSTOM_MOTION question whose answer names
// the filing in the caption and draft title.
const MotionTitleQuestion = "motion_title"

// BuiltinTemplates returns the shipped filing-type catalog.
func BuiltinTemplates() []*Template {
	return []*Template{
		troTemplate(),
		sanctionsTemplate(),
		dismissStructuralTemplate(),
		oppositionTemplate(),
		customMotionTemplate(),
	}
}

func troTemplate() *Template {
	return &Template{
		ID:           TypeTRO,
		Name:         "Motion for TRO / Preliminary Injunction",
		Description:  "Emergency relief to preserve status quo and prevent irreparable harm.",
		Jurisdiction: ScopeAny,
		Questions: []Question{
			{ID: "harm", Label: "What is the immediate, irreparable harm?", Placeholder: "e.g., The city is bulldozing the property tomorrow at 8 AM.", Kind: AnswerTextarea},
			{ID: "relief", Label: "What specific order do you want?", Placeholder: "e.g., Enjoin Defendants from entering the premises.", Kind: AnswerTextarea},
			{ID: "notice", Label: "Was notice given to the other side?", Placeholder: "Yes/No and how.", Kind: AnswerText},
		},
		Sections: []Section{
			{
				ID:    "intro",
				Title: "INTRODUCTION",
				PromptSkeleton: baseStyle + `Draft the Introduction for a Motion for TRO/PI.
Context: {globalFacts}
Immediate Harm: {harm}
Relief Sought: {relief}
Jurisdiction: {jurisdiction}

Summarize why the court must act immediately. Keep it under 2 pages.`,
			},
			{
				ID:    "facts",
				Title: "STATEMENT OF FACTS",
				PromptSkeleton: baseStyle + `Draft the Statement of Facts.
Chronological narrative of: {globalFacts}
Focus on the events leading to the immediate emergency.`,
			},
			{
				ID:    "legal_standard",
				Title: "LEGAL STANDARD",
				PromptSkeleton: baseStyle + `Provide the Legal Standard for a TRO and Preliminary Injunction in {jurisdiction}.
Cite relevant Winter v. NRDC or state equivalent factors:
1. Likelihood of success
2. Irreparable harm
3. Balance of equities
4. Public interest`,
			},
			{
				ID:    "argument",
				Title: "ARGUMENT",
				PromptSkeleton: baseStyle + `Draft the Argument section.
Argue that the plaintiff meets all 4 factors for a TRO.
Apply the facts: {globalFacts}
To the harm: {harm}
Argue why monetary damages are insufficient.`,
			},
		},
	}
}

func sanctionsTemplate() *Template {
	return &Template{
		ID:           TypeSanctionsRule11,
		Name:         "Motion for Sanctions (Rule 11)",
		Description:  "Seek penalties for frivolous filings or lack of evidentiary support.",
		Jurisdiction: ScopeFederal,
		Questions: []Question{
			{ID: "conduct", Label: "What specific conduct is sanctionable?", Placeholder: "e.g., Filing a complaint without any basis in fact.", Kind: AnswerTextarea},
			{ID: "safe_harbor", Label: "Date safe harbor letter was served?", Placeholder: "e.g., January 1, 2024", Kind: AnswerText},
		},
		Sections: []Section{
			{
				ID:    "intro",
				Title: "INTRODUCTION",
				PromptSkeleton: baseStyle + `Draft Introduction for a Rule 11 Sanctions Motion.
Conduct: {conduct}
Assert that the filing is frivolous/legally baseless.`,
			},
			{
				ID:    "facts",
				Title: "PROCEDURAL HISTORY",
				PromptSkeleton: baseStyle + `Draft relevant history focusing on the bad faith conduct: {conduct}
Mention the Safe Harbor service date: {safe_harbor}.`,
			},
			{
				ID:    "argument",
				Title: "ARGUMENT",
				PromptSkeleton: baseStyle + `Argue why Rule 11 is violated.
1. Objective unreasonableness.
2. Failure to investigate.
3. Improper purpose (harassment/delay).
Cite standard 9th Circuit/D. Nev Sanctions law.`,
			},
		},
	}
}

func dismissStructuralTemplate() *Template {
	return &Template{
		ID:           TypeDismissStructural,
		Name:         "Motion to Dismiss (Structural/Const.)",
		Description:  "Dismissal based on deep structural or constitutional violations (Due Process, Separation of Powers).",
		Jurisdiction: ScopeAny,
		Questions: []Question{
			{ID: "violation", Label: "Primary Constitutional Violation", Placeholder: "e.g., Violation of Separation of Powers via Executive Order...", Kind: AnswerTextarea},
			{ID: "prejudice", Label: "How does this prejudice the client?", Placeholder: "e.g., Denied a fair tribunal...", Kind: AnswerTextarea},
		},
		Sections: []Section{
			{
				ID:    "intro",
				Title: "INTRODUCTION",
				PromptSkeleton: baseStyle + `Draft a powerful Introduction for a Motion to Dismiss based on structural constitutional errors.
Violation: {violation}
Tone: High-level constitutional analysis, grave concern for the rule of law.`,
			},
			{
				ID:    "argument",
				Title: "LEGAL ARGUMENT",
				PromptSkeleton: baseStyle + `Draft the Argument.
Focus on {violation}.
Cite foundational cases (Marbury, Mathews v. Eldridge, etc. as appropriate for the jurisdiction {jurisdiction}).
Argue that the defect is structural and requires dismissal, not just correction.`,
			},
		},
	}
}

func oppositionTemplate() *Template {
	return &Template{
		ID:           TypeOppositionGeneric,
		Name:         "Opposition to Motion",
		Description:  "General opposition to any motion filed by the other side.",
		Jurisdiction: ScopeAny,
		Questions: []Question{
			{ID: "opposing_motion", Label: "What motion are you opposing?", Placeholder: "e.g., Defendant's Motion to Dismiss (ECF No. 10)", Kind: AnswerText},
			{ID: "core_argument", Label: "Why should it be denied?", Placeholder: "e.g., The complaint adequately alleges facts...", Kind: AnswerTextarea},
		},
		Sections: []Section{
			{
				ID:    "intro",
				Title: "INTRODUCTION",
				PromptSkeleton: baseStyle + `Draft the Introduction for an Opposition to {opposing_motion}.
Summarize why the motion is meritless based on: {core_argument}.`,
			},
			{
				ID:    "legal_standard",
				Title: "LEGAL STANDARD",
				PromptSkeleton: baseStyle + `Provide the Legal Standard for opposing {opposing_motion} in {jurisdiction}.
Focus on the burden of proof which lies with the movant.`,
			},
			{
				ID:    "argument",
				Title: "ARGUMENT",
				PromptSkeleton: baseStyle + `Draft the Argument section.
Refute the points in {opposing_motion}.
Key argument: {core_argument}.
Use the case facts: {globalFacts}.`,
			},
		},
	}
}

func customMotionTemplate() *Template {
	return &Template{
		ID:           TypeCustomMotion,
		Name:         "Custom / Generic Motion",
		Description:  "Draft any type of motion by defining the goal.",
		Jurisdiction: ScopeAny,
		Questions: []Question{
			{ID: MotionTitleQuestion, Label: "Title of Motion", Placeholder: "e.g., Motion for Leave to Amend", Kind: AnswerText},
			{ID: "goal", Label: "What is the goal of this motion?", Placeholder: "e.g., To add a new defendant based on discovery.", Kind: AnswerTextarea},
			{ID: "legal_basis", Label: "Legal Basis (Optional)", Placeholder: "e.g., Rule 15(a)", Kind: AnswerText},
		},
		Sections: []Section{
			{
				ID:    "intro",
				Title: "INTRODUCTION",
				PromptSkeleton: baseStyle + `Draft the Introduction for a {motion_title}.
Goal: {goal}.
Jurisdiction: {jurisdiction}.`,
			},
			{
				ID:    "facts",
				Title: "RELEVANT FACTS",
				PromptSkeleton: baseStyle + `Draft relevant facts supporting {motion_title}.
Context: {globalFacts}.
Focus on why {goal} is necessary now.`,
			},
			{
				ID:    "argument",
				Title: "ARGUMENT",
				PromptSkeleton: baseStyle + `Draft the legal argument for {motion_title}.
Basis: {legal_basis}.
Why the court should grant {goal}.`,
			},
		},
	}
}
