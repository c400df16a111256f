package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"

	"motionforge/internal/domain"
	"motionforge/internal/domain/models"
)

// Provider implements the GenerationProvider interface against the
// OpenAI Chat Completions API.
type Provider struct {
	client *openai.Client
	model  string
}

// NewProvider creates a new OpenAI provider
func NewProvider(apiKey, model string) (*Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		model = openai.GPT4o
	}

	return &Provider{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "openai"
}

// GenerateSection sends a resolved prompt and returns the generated text
func (p *Provider) GenerateSection(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   4096,
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}

	return resp.Choices[0].Message.Content, nil
}

const extractionPrompt = `Analyze this legal document. Extract the case details as a single JSON object with these keys:
"nickname", "court_name", "case_number", "plaintiff", "defendant",
"judge" (empty string if unknown), "jurisdiction" (best guess from the court name, empty string if unclear),
"global_facts" (comprehensive summary of the factual background alleged).`

// ExtractCase pulls structured case fields out of an uploaded document.
// Images go through the vision path; textual uploads are inlined.
// Binary formats the chat API cannot ingest fail as extraction errors.
func (p *Provider) ExtractCase(ctx context.Context, data []byte, mimeType string) (*models.ExtractedCase, error) {
	message, err := documentMessage(data, mimeType, extractionPrompt)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     p.model,
		Messages:  []openai.ChatCompletionMessage{message},
		MaxTokens: 4096,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty extraction response", domain.ErrExtraction)
	}

	var extracted models.ExtractedCase
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &extracted); err != nil {
		return nil, fmt.Errorf("%w: unparseable extraction response: %v", domain.ErrExtraction, err)
	}

	return &extracted, nil
}

// PerformOCR extracts verbatim text from a document
func (p *Provider) PerformOCR(ctx context.Context, data []byte, mimeType string) (string, error) {
	message, err := documentMessage(data, mimeType,
		"Extract all legible text from this document verbatim. Preserve formatting where possible (newlines, etc.).")
	if err != nil {
		return "", err
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     p.model,
		Messages:  []openai.ChatCompletionMessage{message},
		MaxTokens: 8192,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}

	return resp.Choices[0].Message.Content, nil
}

// documentMessage builds a user message carrying the uploaded document:
// a data-URL image part for images, inline text for textual uploads.
func documentMessage(data []byte, mimeType, instruction string) (openai.ChatCompletionMessage, error) {
	if strings.HasPrefix(mimeType, "image/") {
		dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
		return openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: dataURL}},
				{Type: openai.ChatMessagePartTypeText, Text: instruction},
			},
		}, nil
	}

	if !utf8.Valid(data) {
		return openai.ChatCompletionMessage{}, fmt.Errorf(
			"%w: mime type %s is not supported by the openai provider", domain.ErrExtraction, mimeType)
	}

	return openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: fmt.Sprintf("%s\n\nDOCUMENT:\n%s", instruction, string(data)),
	}, nil
}
