package models

import (
	"time"
)

// Draft is the persisted output of one completed assembly run.
// Content is the assembled document body: caption block followed by
// "### <title>" markdown sections. It is append-only while the
// pipeline runs and freely editable afterwards.
type Draft struct {
	ID           string    `json:"id" db:"id"`
	CaseID       string    `json:"case_id" db:"case_id"` // reference, not ownership
	FilingTypeID string    `json:"filing_type_id" db:"filing_type_id"`
	Title        string    `json:"title" db:"title"`
	Content      string    `json:"content" db:"content"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
