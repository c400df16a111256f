package models

import (
	"time"
)

// Jurisdiction identifies the court system a case is pending in.
// The catalog ships with the Nevada venues the original workspace
// targets; the value is free-form so other venues can be stored.
type Jurisdiction string

const (
	JurisdictionDNev      Jurisdiction = "Federal - District of Nevada (D. Nev.)"
	JurisdictionWashoe    Jurisdiction = "Nevada State - Washoe County (2nd JD)"
	JurisdictionClark     Jurisdiction = "Nevada State - Clark County (8th JD)"
	JurisdictionNVSupreme Jurisdiction = "Nevada Supreme Court"
)

// CaseEventType classifies an entry in the case timeline.
type CaseEventType string

const (
	EventFiling  CaseEventType = "FILING"
	EventHearing CaseEventType = "HEARING"
	EventOrder   CaseEventType = "ORDER"
	EventOther   CaseEventType = "OTHER"
)

// CaseEvent is one entry in a case's timeline, newest first.
type CaseEvent struct {
	ID          string        `json:"id" db:"id"`
	CaseID      string        `json:"case_id" db:"case_id"`
	Date        time.Time     `json:"date" db:"date"`
	Title       string        `json:"title" db:"title"`
	Description string        `json:"description" db:"description"`
	Type        CaseEventType `json:"type" db:"type"`
}

// CaseProfile is the root aggregate of the workspace: the parties,
// venue, and canonical factual narrative everything else hangs off.
// Events and evidence are owned by the case; drafts only reference it.
type CaseProfile struct {
	ID                   string       `json:"id" db:"id"`
	Nickname             string       `json:"nickname" db:"nickname"`
	Jurisdiction         Jurisdiction `json:"jurisdiction" db:"jurisdiction"`
	CaseNumber           string       `json:"case_number" db:"case_number"`
	CourtName            string       `json:"court_name" db:"court_name"`
	Judge                string       `json:"judge" db:"judge"`
	Plaintiff            string       `json:"plaintiff" db:"plaintiff"`
	Defendant            string       `json:"defendant" db:"defendant"`
	GlobalFacts          string       `json:"global_facts" db:"global_facts"` // canonical case narrative
	Notes                *string      `json:"notes,omitempty" db:"notes"`
	Events               []CaseEvent  `json:"events"`
	LastStrategyAnalysis *string      `json:"last_strategy_analysis,omitempty" db:"last_strategy_analysis"`
	LastModified         time.Time    `json:"last_modified" db:"last_modified"`
	CreatedAt            time.Time    `json:"created_at" db:"created_at"`
}

// ExtractedCase holds fields pulled out of an uploaded document by the
// structured-extraction call at intake time. All fields are best-effort
// prefills for the intake form, not a persisted record.
type ExtractedCase struct {
	Nickname     string `json:"nickname"`
	CourtName    string `json:"court_name"`
	CaseNumber   string `json:"case_number"`
	Plaintiff    string `json:"plaintiff"`
	Defendant    string `json:"defendant"`
	Judge        string `json:"judge,omitempty"`
	Jurisdiction string `json:"jurisdiction,omitempty"`
	GlobalFacts  string `json:"global_facts"`
}
