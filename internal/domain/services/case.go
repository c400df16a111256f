package services

import (
	"context"
	"time"

	"motionforge/internal/domain/models"
)

// CreateCaseRequest carries the manual intake form, or the confirmed
// result of an AI extraction.
type CreateCaseRequest struct {
	Nickname     string `json:"nickname"`
	Jurisdiction string `json:"jurisdiction"`
	CaseNumber   string `json:"case_number"`
	CourtName    string `json:"court_name"`
	Judge        string `json:"judge"`
	Plaintiff    string `json:"plaintiff"`
	Defendant    string `json:"defendant"`
	GlobalFacts  string `json:"global_facts"`
	Notes        string `json:"notes"`
}

// UpdateCaseRequest is a whole-record replace of the editable fields.
type UpdateCaseRequest struct {
	Nickname     string `json:"nickname"`
	Jurisdiction string `json:"jurisdiction"`
	CaseNumber   string `json:"case_number"`
	CourtName    string `json:"court_name"`
	Judge        string `json:"judge"`
	Plaintiff    string `json:"plaintiff"`
	Defendant    string `json:"defendant"`
	GlobalFacts  string `json:"global_facts"`
	Notes        string `json:"notes"`
}

// AddEventRequest appends an entry to the case timeline.
type AddEventRequest struct {
	Date        time.Time `json:"date"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
}

// CaseService defines business operations for case profiles.
type CaseService interface {
	CreateCase(ctx context.Context, req *CreateCaseRequest) (*models.CaseProfile, error)
	GetCase(ctx context.Context, id string) (*models.CaseProfile, error)
	ListCases(ctx context.Context) ([]models.CaseProfile, error)
	UpdateCase(ctx context.Context, id string, req *UpdateCaseRequest) (*models.CaseProfile, error)
	DeleteCase(ctx context.Context, id string) error
	AddEvent(ctx context.Context, caseID string, req *AddEventRequest) (*models.CaseEvent, error)

	// ExtractCase runs structured extraction over an uploaded document
	// and returns prefill fields for the intake form. Nothing is
	// persisted; extraction failure leaves the form for manual entry.
	ExtractCase(ctx context.Context, data []byte, mimeType string) (*models.ExtractedCase, error)

	// AnalyzeStrategy regenerates the strategy analysis from the case
	// context and timeline, overwriting the cached result wholesale.
	AnalyzeStrategy(ctx context.Context, caseID string) (string, error)
}
