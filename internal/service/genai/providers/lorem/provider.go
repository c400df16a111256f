package lorem

import (
	"context"
	"fmt"
	"strings"
	"time"

	loremgen "github.com/bozaro/golorem"

	"motionforge/internal/domain/models"
)

// Provider is a mock generation provider that produces lorem ipsum
// text. Used for development and tests without real API keys.
type Provider struct {
	generator *loremgen.Lorem
	delay     time.Duration
}

// NewProvider creates a new lorem ipsum provider. delay simulates the
// latency of a real generation call (zero in tests).
func NewProvider(delay time.Duration) *Provider {
	return &Provider{
		generator: loremgen.New(),
		delay:     delay,
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "lorem"
}

// GenerateSection produces a few paragraphs after the configured delay.
// The delay is cancellable, matching a real blocking API call.
func (p *Provider) GenerateSection(ctx context.Context, prompt string) (string, error) {
	if err := p.wait(ctx); err != nil {
		return "", err
	}

	paragraphs := make([]string, 3)
	for i := range paragraphs {
		paragraphs[i] = p.generator.Paragraph(3, 6)
	}
	return strings.Join(paragraphs, "\n\n"), nil
}

// ExtractCase returns a canned intake record.
func (p *Provider) ExtractCase(ctx context.Context, data []byte, mimeType string) (*models.ExtractedCase, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	return &models.ExtractedCase{
		Nickname:    fmt.Sprintf("Doe v. Roe (%s)", p.generator.Word(4, 8)),
		CourtName:   "UNITED STATES DISTRICT COURT FOR THE DISTRICT OF NEVADA",
		CaseNumber:  "2:24-cv-01234",
		Plaintiff:   "Jane Doe",
		Defendant:   "Richard Roe",
		Judge:       "Hon. " + capitalize(p.generator.Word(4, 8)),
		GlobalFacts: p.generator.Paragraph(4, 8),
	}, nil
}

// PerformOCR returns lorem text standing in for extracted document text.
func (p *Provider) PerformOCR(ctx context.Context, data []byte, mimeType string) (string, error) {
	if err := p.wait(ctx); err != nil {
		return "", err
	}
	return p.generator.Paragraph(5, 10), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (p *Provider) wait(ctx context.Context) error {
	if p.delay <= 0 {
		return nil
	}
	select {
	case <-time.After(p.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
