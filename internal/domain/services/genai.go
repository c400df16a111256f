package services

import (
	"context"

	"motionforge/internal/domain/models"
)

// SectionGenerator is the boundary the assembly pipeline calls once
// per section: a resolved natural-language prompt in, generated text
// out. Each call is blocking, cancellable via ctx, and independent of
// every other call - no conversation state is threaded between
// sections.
type SectionGenerator interface {
	GenerateSection(ctx context.Context, prompt string) (string, error)
}

// GenerationProvider is the full surface of the external generative-AI
// service the workspace consumes. Section drafting, strategy analysis
// and refinement all go through GenerateSection-style plain text
// calls; intake and the evidence locker use the document-understanding
// calls.
type GenerationProvider interface {
	SectionGenerator

	// ExtractCase pulls structured case fields out of an uploaded
	// document (PDF, image, or text). Returns domain.ErrExtraction
	// when no parseable record comes back.
	ExtractCase(ctx context.Context, data []byte, mimeType string) (*models.ExtractedCase, error)

	// PerformOCR extracts verbatim text from a document, best-effort.
	PerformOCR(ctx context.Context, data []byte, mimeType string) (string, error)

	// Name identifies the provider for logging.
	Name() string
}
