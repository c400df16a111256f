package anthropic

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"motionforge/internal/domain"
	"motionforge/internal/domain/models"
)

// Provider implements the GenerationProvider interface against the
// Anthropic Messages API.
type Provider struct {
	client *anthropic.Client
	model  string
}

// NewProvider creates a new Anthropic provider with the given API key.
func NewProvider(apiKey, model string) (*Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &Provider{
		client: &client,
		model:  model,
	}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "anthropic"
}

// GenerateSection sends a resolved prompt and returns the generated
// text. Low temperature for legal precision.
func (p *Provider) GenerateSection(ctx context.Context, prompt string) (string, error) {
	message, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   4096,
		Temperature: anthropic.Float(0.2),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	return textContent(message), nil
}

// extractionPrompt asks for the intake fields as strict JSON.
const extractionPrompt = `Analyze this legal document. Extract the case details as a single JSON object with these keys:
"nickname" (short memorable case name, e.g. "State v. Jones"),
"court_name" (full court name),
"case_number" (alphanumeric case number),
"plaintiff", "defendant",
"judge" (presiding judge/department, empty string if unknown),
"jurisdiction" (most likely jurisdiction based on the court name, empty string if unclear),
"global_facts" (comprehensive summary of the factual background alleged).
Output ONLY the JSON object, no prose, no code fences.`

// ExtractCase pulls structured case fields out of an uploaded document.
func (p *Provider) ExtractCase(ctx context.Context, data []byte, mimeType string) (*models.ExtractedCase, error) {
	message, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: 4096,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				documentBlock(data, mimeType),
				anthropic.NewTextBlock(extractionPrompt),
			),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API call failed: %w", err)
	}

	raw := stripFences(textContent(message))
	if raw == "" {
		return nil, fmt.Errorf("%w: empty extraction response", domain.ErrExtraction)
	}

	var extracted models.ExtractedCase
	if err := json.Unmarshal([]byte(raw), &extracted); err != nil {
		return nil, fmt.Errorf("%w: unparseable extraction response: %v", domain.ErrExtraction, err)
	}

	return &extracted, nil
}

// PerformOCR extracts verbatim text from a document.
func (p *Provider) PerformOCR(ctx context.Context, data []byte, mimeType string) (string, error) {
	message, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: 8192,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				documentBlock(data, mimeType),
				anthropic.NewTextBlock("Extract all legible text from this document verbatim. Preserve formatting where possible (newlines, etc.)."),
			),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	return textContent(message), nil
}

// documentBlock wraps upload bytes in the content block the API expects
// for the mime type: image block for images, document block for PDFs,
// and inline text otherwise.
func documentBlock(data []byte, mimeType string) anthropic.ContentBlockParamUnion {
	encoded := base64.StdEncoding.EncodeToString(data)

	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return anthropic.NewImageBlockBase64(mimeType, encoded)
	case mimeType == "application/pdf":
		return anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{Data: encoded})
	default:
		return anthropic.NewTextBlock(string(data))
	}
}

// textContent concatenates the text blocks of a response.
func textContent(msg *anthropic.Message) string {
	var sb strings.Builder
	for _, content := range msg.Content {
		if content.Type == "text" {
			sb.WriteString(content.Text)
		}
	}
	return sb.String()
}

// stripFences removes markdown code fences models sometimes wrap JSON
// in despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
