package models

import (
	"time"
)

// Evidence is an uploaded document in a case's evidence locker.
// Data holds the raw upload (binary-safe). OCRText is nil until text
// extraction has run, then holds the extracted text until a re-run
// overwrites it wholesale.
type Evidence struct {
	ID        string    `json:"id" db:"id"`
	CaseID    string    `json:"case_id" db:"case_id"`
	Filename  string    `json:"filename" db:"filename"`
	MimeType  string    `json:"mime_type" db:"mime_type"`
	Data      []byte    `json:"-" db:"data"`
	Size      int64     `json:"size" db:"size"`
	UploadedAt time.Time `json:"uploaded_at" db:"uploaded_at"`
	OCRText   *string   `json:"ocr_text,omitempty" db:"ocr_text"`
}
